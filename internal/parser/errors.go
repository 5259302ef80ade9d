package parser

import (
	"errors"
	"fmt"
)

// Structural failures abort the whole parse. Row- and cell-level problems are
// recovered locally and never surface as errors.
var (
	// ErrEmptyInput means the file had no non-blank lines.
	ErrEmptyInput = errors.New("statement file contains no data")

	// ErrHeaderNotFound means no header row could be located by content
	// heuristics.
	ErrHeaderNotFound = errors.New("could not locate a header row in the statement")

	// ErrDateColumnNotFound means a header was located but none of its
	// columns maps to the date role.
	ErrDateColumnNotFound = errors.New("could not identify a date column in the header")

	// ErrNoTransactions means the header and columns resolved but every data
	// row was rejected by per-row validation.
	ErrNoTransactions = errors.New("no valid transactions extracted from statement")
)

// MalformedTableError wraps a tokenizer failure so callers can distinguish
// "the table structure itself could not be read" from the sentinel kinds.
type MalformedTableError struct {
	Err error
}

func (e *MalformedTableError) Error() string {
	return fmt.Sprintf("statement table could not be tokenized: %v", e.Err)
}

func (e *MalformedTableError) Unwrap() error { return e.Err }
