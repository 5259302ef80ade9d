package parser

import (
	"strings"

	"github.com/insightdelivered/statement-analyzer/internal/models"
)

// SkipReason classifies why a data row was dropped instead of producing a
// transaction. Dropped rows are parse loss, not errors.
type SkipReason string

const (
	// SkipMissingDate — the date cell was blank.
	SkipMissingDate SkipReason = "missing_date"
	// SkipBadDate — the date cell could not be parsed.
	SkipBadDate SkipReason = "unparseable_date"
	// SkipAmbiguous — both debit and credit carried positive values, so the
	// direction cannot be resolved. Guessing would corrupt totals.
	SkipAmbiguous SkipReason = "ambiguous_direction"
	// SkipNoAmount — no positive magnitude in any amount-bearing column.
	SkipNoAmount SkipReason = "no_amount"
	// SkipRowError — the row failed in an unexpected way; one malformed row
	// must never abort the batch.
	SkipRowError SkipReason = "row_error"
)

// SkippedRow records one dropped data row. Line counts non-blank statement
// lines, 1-based, so callers can report where the loss happened.
type SkippedRow struct {
	Line   int        `json:"line"`
	Reason SkipReason `json:"reason"`
}

// translateRow turns one data row into a transaction, or reports why it was
// skipped. The record must already be padded/truncated to the header width.
func translateRow(record, headers []string, cols columnMap, currency string) (txn models.Transaction, reason SkipReason, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			txn, reason, ok = models.Transaction{}, SkipRowError, false
		}
	}()

	dateCell := strings.TrimSpace(record[cols.date])
	if dateCell == "" {
		return txn, SkipMissingDate, false
	}
	date, parsed := parseDate(dateCell)
	if !parsed {
		return txn, SkipBadDate, false
	}

	desc := models.NoDescription
	if cols.description >= 0 {
		if v := strings.TrimSpace(record[cols.description]); v != "" {
			desc = v
		}
	}

	amount, txnType, reason := resolveDirection(record, cols)
	if reason != "" {
		return txn, reason, false
	}

	txn = models.Transaction{
		Date:        date,
		Description: desc,
		Amount:      amount,
		Currency:    currency,
		Type:        txnType,
		RawData:     rawData(record, headers),
	}
	if cols.balance >= 0 {
		b := normalizeAmount(record[cols.balance])
		txn.Balance = &b
	}
	return txn, "", true
}

// resolveDirection applies the debit/credit disambiguation rule. When the
// statement has dedicated debit and credit columns, exactly one of them must
// carry a positive value. Statements with a single signed amount column fall
// back to an explicit type column, then to the sign of the amount.
func resolveDirection(record []string, cols columnMap) (float64, models.TxnType, SkipReason) {
	if cols.debit >= 0 || cols.credit >= 0 {
		var debit, credit float64
		if cols.debit >= 0 {
			debit = normalizeAmount(record[cols.debit])
		}
		if cols.credit >= 0 {
			credit = normalizeAmount(record[cols.credit])
		}
		switch {
		case credit > 0 && debit <= 0:
			return credit, models.TxnCredit, ""
		case debit > 0 && credit <= 0:
			return debit, models.TxnDebit, ""
		case debit <= 0 && credit <= 0:
			return 0, "", SkipNoAmount
		default:
			return 0, "", SkipAmbiguous
		}
	}

	if cols.amount < 0 {
		return 0, "", SkipNoAmount
	}
	value := normalizeAmount(record[cols.amount])
	if value == 0 {
		return 0, "", SkipNoAmount
	}

	if cols.txnType >= 0 {
		switch strings.ToLower(strings.TrimSpace(record[cols.txnType])) {
		case "credit", "cr":
			return abs(value), models.TxnCredit, ""
		case "debit", "dr":
			return abs(value), models.TxnDebit, ""
		}
	}
	if value < 0 {
		return -value, models.TxnDebit, ""
	}
	return value, models.TxnCredit, ""
}

// rawData retains the original row cells keyed by header name for debugging.
func rawData(record, headers []string) map[string]string {
	m := make(map[string]string, len(headers))
	for i, h := range headers {
		if i < len(record) && strings.TrimSpace(record[i]) != "" {
			m[h] = record[i]
		}
	}
	return m
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
