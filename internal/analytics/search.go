package analytics

import (
	"strings"

	"github.com/insightdelivered/statement-analyzer/internal/models"
)

// SearchTransactions finds transactions by description keyword. Exact matches
// on the normalized description win; only when none exist does it fall back
// to a case-insensitive substring scan.
func SearchTransactions(txns []models.Transaction, keyword string) []models.Transaction {
	k := normalizeText(keyword)
	if k == "" {
		return nil
	}

	var exact []models.Transaction
	for _, t := range txns {
		if normalizeText(t.Description) == k {
			exact = append(exact, t)
		}
	}
	if len(exact) > 0 {
		return exact
	}

	var partial []models.Transaction
	for _, t := range txns {
		if strings.Contains(strings.ToLower(t.Description), strings.ToLower(strings.TrimSpace(keyword))) {
			partial = append(partial, t)
		}
	}
	return partial
}

// normalizeText trims, lower-cases and collapses interior whitespace.
func normalizeText(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
