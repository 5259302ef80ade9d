// Package analytics provides pure aggregation functions over parsed
// transactions. Every function is stateless and idempotent, and none of them
// depends on the order of the input slice.
package analytics

import (
	"math"
	"sort"
	"strings"

	"github.com/insightdelivered/statement-analyzer/internal/models"
)

// DefaultMerchantLimit caps the top-merchant ranking when the caller passes
// no limit.
const DefaultMerchantLimit = 5

// Uncategorized buckets debit transactions with no category assigned.
const Uncategorized = "Uncategorized"

// Summary holds the high-level totals for a transaction set.
type Summary struct {
	TotalIncome      float64 `json:"total_income"`
	TotalExpense     float64 `json:"total_expense"`
	NetBalance       float64 `json:"net_balance"`
	TransactionCount int     `json:"transaction_count"`
}

// MonthlyTrend is the income/expense aggregate for one calendar month.
type MonthlyTrend struct {
	Month   string  `json:"month"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

// MerchantTotal is one entry in the top-merchant ranking.
type MerchantTotal struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// CalculateSummary totals income (credits), expense (debits) and the net
// difference. Empty input yields all zeros.
func CalculateSummary(txns []models.Transaction) Summary {
	var income, expense float64
	for _, t := range txns {
		switch t.Type {
		case models.TxnCredit:
			income += t.Amount
		case models.TxnDebit:
			expense += t.Amount
		}
	}
	return Summary{
		TotalIncome:      round2(income),
		TotalExpense:     round2(expense),
		NetBalance:       round2(income - expense),
		TransactionCount: len(txns),
	}
}

// CalculateCategoryBreakdown sums spending per category. Only debit
// transactions count — this is a spending view, credits never appear.
func CalculateCategoryBreakdown(txns []models.Transaction) map[string]float64 {
	breakdown := make(map[string]float64)
	for _, t := range txns {
		if t.Type != models.TxnDebit {
			continue
		}
		cat := t.Category
		if cat == "" {
			cat = Uncategorized
		}
		breakdown[cat] += t.Amount
	}
	for cat, amt := range breakdown {
		breakdown[cat] = round2(amt)
	}
	return breakdown
}

// CalculateMonthlyTrends groups income and expense by calendar year-month,
// ordered ascending by month key.
func CalculateMonthlyTrends(txns []models.Transaction) []MonthlyTrend {
	byMonth := make(map[string]*MonthlyTrend)
	for _, t := range txns {
		key := t.Date.Format("2006-01")
		trend, ok := byMonth[key]
		if !ok {
			trend = &MonthlyTrend{Month: key}
			byMonth[key] = trend
		}
		switch t.Type {
		case models.TxnCredit:
			trend.Income += t.Amount
		case models.TxnDebit:
			trend.Expense += t.Amount
		}
	}

	trends := make([]MonthlyTrend, 0, len(byMonth))
	for _, trend := range byMonth {
		trend.Income = round2(trend.Income)
		trend.Expense = round2(trend.Expense)
		trends = append(trends, *trend)
	}
	sort.Slice(trends, func(i, j int) bool { return trends[i].Month < trends[j].Month })
	return trends
}

// CalculateTopMerchants ranks debit transactions by total spend per merchant.
// The merchant key is the description truncated at the first hyphen — a crude
// grouping for statement lines like "MERCHANT - REF123" that will misgroup
// merchants whose names legitimately contain a hyphen.
func CalculateTopMerchants(txns []models.Transaction, limit int) []MerchantTotal {
	if limit <= 0 {
		limit = DefaultMerchantLimit
	}

	totals := make(map[string]float64)
	for _, t := range txns {
		if t.Type != models.TxnDebit {
			continue
		}
		merchant := strings.TrimSpace(strings.SplitN(t.Description, "-", 2)[0])
		totals[merchant] += t.Amount
	}

	merchants := make([]MerchantTotal, 0, len(totals))
	for name, amt := range totals {
		merchants = append(merchants, MerchantTotal{Name: name, Value: round2(amt)})
	}
	sort.Slice(merchants, func(i, j int) bool {
		if merchants[i].Value != merchants[j].Value {
			return merchants[i].Value > merchants[j].Value
		}
		return merchants[i].Name < merchants[j].Name
	})
	if len(merchants) > limit {
		merchants = merchants[:limit]
	}
	return merchants
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
