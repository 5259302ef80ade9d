package parser

import (
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/insightdelivered/statement-analyzer/internal/models"
)

func buildXLSX(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetList()[0]
	for i, row := range rows {
		for j, cell := range row {
			name, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := f.SetCellValue(sheet, name, cell); err != nil {
				t.Fatalf("set cell: %v", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write xlsx: %v", err)
	}
	return buf.Bytes()
}

func TestParseXLSX(t *testing.T) {
	content := buildXLSX(t, [][]interface{}{
		{"Account", "00300109448879"},
		{"Currency", "Pakistan Rupee(PKR)"},
		{"Booking Date", "Description", "Debit", "Credit", "Balance"},
		{"01 Dec 2025", "UTILITY BILL", "1100.00", "", "373057.29"},
		{"02 Dec 2025", "SALARY", "", "50000.00", "423057.29"},
	})

	result, err := New().ParseXLSX(content)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Transactions) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(result.Transactions))
	}
	if result.Metadata.Currency != "PKR" {
		t.Errorf("currency: got %q, want PKR", result.Metadata.Currency)
	}
	if got := result.Transactions[0].Type; got != models.TxnDebit {
		t.Errorf("first txn type: got %s, want debit", got)
	}
	if got := result.Transactions[1].Amount; got != 50000 {
		t.Errorf("second txn amount: got %v, want 50000", got)
	}
}

func TestParseXLSXEmptySheet(t *testing.T) {
	f := excelize.NewFile()
	buf, err := f.WriteToBuffer()
	f.Close()
	if err != nil {
		t.Fatalf("write xlsx: %v", err)
	}

	if _, err := New().ParseXLSX(buf.Bytes()); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("got %v, want ErrEmptyInput", err)
	}
}

func TestParseXLSXMalformed(t *testing.T) {
	var malformed *MalformedTableError
	_, err := New().ParseXLSX([]byte("definitely not a zip archive"))
	if !errors.As(err, &malformed) {
		t.Fatalf("got %v, want MalformedTableError", err)
	}
}
