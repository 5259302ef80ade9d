package analytics

import (
	"testing"

	"github.com/insightdelivered/statement-analyzer/internal/models"
)

func TestSearchTransactions(t *testing.T) {
	txns := []models.Transaction{
		txn("2023-01-02", "AMAZON MARKETPLACE", 45, models.TxnDebit, ""),
		txn("2023-01-03", "Amazon  Marketplace", 12, models.TxnDebit, ""),
		txn("2023-01-04", "AMAZON PRIME VIDEO", 8.99, models.TxnDebit, ""),
		txn("2023-01-05", "PAYROLL", 5000, models.TxnCredit, ""),
	}

	tests := []struct {
		name    string
		keyword string
		want    int
	}{
		{"exact match wins over substring", "amazon marketplace", 2},
		{"normalized whitespace still exact", "  AMAZON   MARKETPLACE ", 2},
		{"substring fallback", "amazon", 3},
		{"case-insensitive fallback", "PrIme", 1},
		{"no match", "netflix", 0},
		{"blank keyword", "   ", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SearchTransactions(txns, tt.keyword)
			if len(got) != tt.want {
				t.Errorf("SearchTransactions(%q) returned %d results, want %d", tt.keyword, len(got), tt.want)
			}
		})
	}
}

func TestSearchTransactionsExactExcludesSubstring(t *testing.T) {
	txns := []models.Transaction{
		txn("2023-01-02", "TESCO", 10, models.TxnDebit, ""),
		txn("2023-01-03", "TESCO EXPRESS", 5, models.TxnDebit, ""),
	}

	got := SearchTransactions(txns, "tesco")
	if len(got) != 1 || got[0].Description != "TESCO" {
		t.Fatalf("expected only the exact match, got %+v", got)
	}
}
