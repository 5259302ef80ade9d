package writer

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/insightdelivered/statement-analyzer/internal/models"
)

func TestCSVWriterWrite(t *testing.T) {
	balance := 995.50
	txns := []models.Transaction{
		{
			Date:        time.Date(2023, 10, 1, 0, 0, 0, 0, time.UTC),
			Description: "COFFEE SHOP",
			Amount:      4.5,
			Currency:    "USD",
			Type:        models.TxnDebit,
			Category:    "Food & Dining",
			Balance:     &balance,
		},
		{
			Date:        time.Date(2023, 10, 5, 0, 0, 0, 0, time.UTC),
			Description: "PAYROLL, OCTOBER",
			Amount:      2500,
			Currency:    "USD",
			Type:        models.TxnCredit,
		},
	}

	var buf bytes.Buffer
	w := CSVWriter{}
	if err := w.Write(&buf, txns, nil); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), buf.String())
	}
	if lines[0] != "Date,Description,Type,Amount,Currency,Category,Balance" {
		t.Errorf("header: got %q", lines[0])
	}
	if lines[1] != "2023-10-01,COFFEE SHOP,debit,4.50,USD,Food & Dining,995.50" {
		t.Errorf("debit row: got %q", lines[1])
	}
	// Comma in the description forces quoting; balance stays blank when nil.
	if lines[2] != `2023-10-05,"PAYROLL, OCTOBER",credit,2500.00,USD,,` {
		t.Errorf("credit row: got %q", lines[2])
	}
}

func TestCSVWriterIncludeMetadata(t *testing.T) {
	meta := &models.StatementMetadata{
		Currency:       "PKR",
		DateRangeStart: time.Date(2023, 10, 1, 0, 0, 0, 0, time.UTC),
		DateRangeEnd:   time.Date(2023, 10, 31, 0, 0, 0, 0, time.UTC),
	}

	var buf bytes.Buffer
	w := CSVWriter{IncludeMetadata: true}
	if err := w.Write(&buf, nil, meta); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if lines[0] != "# Currency,PKR" {
		t.Errorf("currency row: got %q", lines[0])
	}
	if lines[1] != "# Period,2023-10-01 to 2023-10-31" {
		t.Errorf("period row: got %q", lines[1])
	}
}

func TestCSVWriterNilMetadataSkipped(t *testing.T) {
	var buf bytes.Buffer
	w := CSVWriter{IncludeMetadata: true}
	if err := w.Write(&buf, nil, nil); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "Date,") {
		t.Errorf("expected header first, got %q", buf.String())
	}
}
