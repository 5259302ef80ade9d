package models

import "time"

// TxnType is the direction of a transaction. Every transaction that survives
// parsing is exactly one of credit (money in) or debit (money out).
type TxnType string

const (
	TxnCredit TxnType = "credit"
	TxnDebit  TxnType = "debit"
)

// NoDescription is the sentinel used when a statement row has a blank
// description field.
const NoDescription = "No Description"

// Transaction represents a single parsed bank statement transaction.
// Amount is always a non-negative magnitude; the sign lives in Type.
type Transaction struct {
	ID          string            `json:"id,omitempty"`
	Date        time.Time         `json:"date"`
	Description string            `json:"description"`
	Amount      float64           `json:"amount"`
	Currency    string            `json:"currency"`
	Type        TxnType           `json:"type"`
	Balance     *float64          `json:"balance,omitempty"`
	Category    string            `json:"category,omitempty"`
	RawData     map[string]string `json:"raw_data,omitempty"`
}

// StatementMetadata describes a successfully parsed statement. It is derived
// from the surviving transactions and immutable after the parse.
type StatementMetadata struct {
	Currency       string    `json:"currency"`
	DateRangeStart time.Time `json:"date_range_start"`
	DateRangeEnd   time.Time `json:"date_range_end"`
}
