package parser

import "strings"

// columnMap holds the resolved index of each semantic column role, -1 when the
// role is absent from the header. Only the date role is mandatory.
type columnMap struct {
	date        int
	description int
	debit       int
	credit      int
	balance     int
	amount      int
	txnType     int
}

// Candidate header names per role, in priority order. Matching is two-tier:
// every candidate is tried for an exact match first, and only if none hits is
// substring matching attempted. The exact pass keeps e.g. a bare "balance"
// column from losing to "available balance" by accident of column order.
var (
	dateCandidates        = []string{"booking date", "transaction date", "value date", "date"}
	descriptionCandidates = []string{"description", "details", "narrative"}
	debitCandidates       = []string{"debit", "paid out", "money out", "withdrawal"}
	creditCandidates      = []string{"credit", "paid in", "money in", "deposit"}
	balanceCandidates     = []string{"available balance", "running balance", "balance"}
	amountCandidates      = []string{"amount", "transaction amount", "value"}
	typeCandidates        = []string{"type", "transaction type", "dr/cr", "cr/dr"}
)

// mapColumns resolves header names to semantic roles. Headers must already be
// lower-cased and trimmed. A missing date column is fatal; every other role
// degrades to absent.
func mapColumns(headers []string) (columnMap, error) {
	cols := columnMap{
		date:        findColumn(headers, dateCandidates),
		description: findColumn(headers, descriptionCandidates),
		debit:       findColumn(headers, debitCandidates),
		credit:      findColumn(headers, creditCandidates),
		balance:     findColumn(headers, balanceCandidates),
		amount:      findColumn(headers, amountCandidates),
		txnType:     findColumn(headers, typeCandidates),
	}
	if cols.date < 0 {
		return cols, ErrDateColumnNotFound
	}
	return cols, nil
}

// findColumn returns the index of the first header matching a candidate,
// exact matches before substring matches, candidates in priority order.
// Returns -1 when nothing matches.
func findColumn(headers []string, candidates []string) int {
	for _, cand := range candidates {
		for i, h := range headers {
			if h == cand {
				return i
			}
		}
	}
	for _, cand := range candidates {
		for i, h := range headers {
			if strings.Contains(h, cand) {
				return i
			}
		}
	}
	return -1
}

// normalizeHeaders lower-cases and trims raw header cells in place and
// returns them.
func normalizeHeaders(headers []string) []string {
	for i, h := range headers {
		headers[i] = strings.ToLower(strings.TrimSpace(h))
	}
	return headers
}
