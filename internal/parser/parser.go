// Package parser turns heterogeneous bank statement exports (CSV, XLSX and
// best-effort PDF text) into a clean, typed sequence of transactions with a
// detected currency and date range.
//
// The pipeline is a pure function of the file bytes: it holds no state
// between calls, performs no I/O of its own beyond the PDF temp file the
// Parse convenience path writes, and is safe to run concurrently on
// independent files.
package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/insightdelivered/statement-analyzer/internal/models"
)

// ErrUnsupportedFormat means the filename extension selects no known path.
var ErrUnsupportedFormat = errors.New("only CSV, XLSX and PDF statements are supported")

// Result is the output of a successful parse: the ordered surviving
// transactions, derived statement metadata, and an account of every row the
// pipeline dropped.
type Result struct {
	Transactions []models.Transaction     `json:"transactions"`
	Metadata     models.StatementMetadata `json:"metadata"`
	Skipped      []SkippedRow             `json:"skipped,omitempty"`
}

// StatementParser is the statement ingestion pipeline. The zero value is
// ready to use.
type StatementParser struct {
	// TempDir receives the scratch file the PDF path needs; empty means the
	// system default.
	TempDir string
}

// New returns a statement parser.
func New() *StatementParser {
	return &StatementParser{}
}

// Parse dispatches on the filename extension. CSV and XLSX statements are
// parsed straight from the byte buffer; PDF content is spooled to a temp file
// because the extractor needs a readable path.
func (p *StatementParser) Parse(content []byte, filename string) (*Result, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return p.ParseCSV(content)
	case ".xlsx":
		return p.ParseXLSX(content)
	case ".pdf":
		return p.parsePDFBytes(content)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filename)
	}
}

// ParseCSV parses a delimited statement export. Metadata preamble lines above
// the detected header feed currency detection and are otherwise ignored.
func (p *StatementParser) ParseCSV(content []byte) (*Result, error) {
	lines := decodeLines(content)
	if len(lines) == 0 {
		return nil, ErrEmptyInput
	}

	headerIdx := findHeaderIndex(lines)
	if headerIdx < 0 {
		return nil, ErrHeaderNotFound
	}
	delimiter := detectDelimiter(lines[headerIdx])

	headers, err := tokenizeLine(lines[headerIdx], delimiter)
	if err != nil {
		return nil, &MalformedTableError{Err: err}
	}

	currency := currencyOrDefault(detectCurrency(lines[:headerIdx]))

	reader := csv.NewReader(strings.NewReader(strings.Join(lines[headerIdx+1:], "\n")))
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	var records [][]string
	var tokenizeSkips []SkippedRow
	for line := headerIdx + 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			tokenizeSkips = append(tokenizeSkips, SkippedRow{Line: line, Reason: SkipRowError})
			continue
		}
		records = append(records, record)
	}

	result, err := p.translateRows(headers, records, currency, headerIdx+2)
	if err != nil {
		return nil, err
	}
	result.Skipped = append(result.Skipped, tokenizeSkips...)
	return result, nil
}

// translateRows runs the column mapper and row translator over tokenized data
// rows. firstLine is the 1-based statement line of the first data row, used
// for skip accounting.
func (p *StatementParser) translateRows(rawHeaders []string, records [][]string, currency string, firstLine int) (*Result, error) {
	headers := normalizeHeaders(rawHeaders)
	cols, err := mapColumns(headers)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	for i, record := range records {
		record = padRecord(record, len(headers))
		txn, reason, ok := translateRow(record, headers, cols, currency)
		if !ok {
			result.Skipped = append(result.Skipped, SkippedRow{Line: firstLine + i, Reason: reason})
			continue
		}
		result.Transactions = append(result.Transactions, txn)
	}

	if len(result.Transactions) == 0 {
		return nil, ErrNoTransactions
	}
	result.Metadata = metadataFor(result.Transactions, currency)
	return result, nil
}

// parsePDFBytes spools PDF bytes to a scratch file for the extractor.
func (p *StatementParser) parsePDFBytes(content []byte) (*Result, error) {
	tmp, err := os.CreateTemp(p.TempDir, "statement-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp pdf: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp pdf: %w", err)
	}
	tmp.Close()

	return p.ParsePDF(tmp.Name())
}

// padRecord aligns a tokenized row to the header width: short rows are padded
// with empty cells, long rows truncated.
func padRecord(record []string, width int) []string {
	if len(record) == width {
		return record
	}
	if len(record) > width {
		return record[:width]
	}
	padded := make([]string, width)
	copy(padded, record)
	return padded
}

// tokenizeLine splits a single line using the detected delimiter, honouring
// CSV quoting.
func tokenizeLine(line string, delimiter rune) ([]string, error) {
	r := csv.NewReader(strings.NewReader(line))
	r.Comma = delimiter
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	return r.Read()
}

// metadataFor derives statement metadata from the surviving transactions.
func metadataFor(txns []models.Transaction, currency string) models.StatementMetadata {
	meta := models.StatementMetadata{
		Currency:       currency,
		DateRangeStart: txns[0].Date,
		DateRangeEnd:   txns[0].Date,
	}
	for _, t := range txns[1:] {
		if t.Date.Before(meta.DateRangeStart) {
			meta.DateRangeStart = t.Date
		}
		if t.Date.After(meta.DateRangeEnd) {
			meta.DateRangeEnd = t.Date
		}
	}
	return meta
}
