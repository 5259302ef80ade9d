package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/insightdelivered/statement-analyzer/internal/extractor"
	"github.com/insightdelivered/statement-analyzer/internal/models"
)

// The PDF path is a lower-precision sibling of the CSV pipeline: unstructured
// page text is scanned line by line with date and amount patterns. The first
// amount on a line is taken as the transaction amount, which is known to
// misfire when a balance column is interleaved inline.

var (
	pdfDatePattern   = regexp.MustCompile(`\d{1,2}[/-]\d{1,2}[/-]\d{2,4}`)
	pdfAmountPattern = regexp.MustCompile(`-?\d{1,3}(?:,\d{3})*(?:\.\d{2})?`)
	whitespaceRun    = regexp.MustCompile(`\s+`)
)

// ParsePDF extracts transactions from a PDF statement on disk. A wholly
// failed extraction is reported as ErrNoTransactions: the heuristic path
// never produces a partial result worth distinguishing from "nothing found".
func (p *StatementParser) ParsePDF(path string) (*Result, error) {
	pages, err := extractor.ExtractText(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoTransactions, err)
	}
	text := strings.Join(pages, "\n")

	currency := currencyOrDefault(detectCurrencyText(text))
	txns := extractFromText(text, currency)
	if len(txns) == 0 {
		return nil, ErrNoTransactions
	}

	return &Result{
		Transactions: txns,
		Metadata:     metadataFor(txns, currency),
	}, nil
}

// extractFromText scans every non-blank line for a transaction.
func extractFromText(text, currency string) []models.Transaction {
	var txns []models.Transaction
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if txn, ok := translateLine(line, currency); ok {
			txns = append(txns, txn)
		}
	}
	return txns
}

// translateLine runs the heuristic steps over one line: locate the date,
// strip it, find amount-like substrings, take the first as the amount, and
// keep whatever text remains as the description.
func translateLine(line, currency string) (models.Transaction, bool) {
	dateStr, ok := findLineDate(line)
	if !ok {
		return models.Transaction{}, false
	}
	date, ok := parseDate(dateStr)
	if !ok {
		return models.Transaction{}, false
	}

	remaining := stripLineDate(line, dateStr)
	amounts := findAmounts(remaining)
	if len(amounts) == 0 {
		return models.Transaction{}, false
	}

	value := normalizeAmount(amounts[0])
	txnType := models.TxnCredit
	if value < 0 {
		txnType = models.TxnDebit
	}

	return models.Transaction{
		Date:        date,
		Description: cleanDescription(remaining, amounts[0]),
		Amount:      abs(value),
		Currency:    currency,
		Type:        txnType,
		RawData:     map[string]string{"raw_line": line},
	}, true
}

// findLineDate locates the first date-like substring anywhere in the line.
func findLineDate(line string) (string, bool) {
	m := pdfDatePattern.FindString(line)
	return m, m != ""
}

// stripLineDate removes the matched date so it cannot be misread as an amount.
func stripLineDate(line, date string) string {
	return strings.TrimSpace(strings.Replace(line, date, "", 1))
}

// findAmounts returns every amount-like substring in order of appearance.
func findAmounts(s string) []string {
	return pdfAmountPattern.FindAllString(s, -1)
}

// cleanDescription drops the chosen amount substring and collapses the
// leftover whitespace. Blank leftovers get the usual sentinel.
func cleanDescription(s, amount string) string {
	s = strings.Replace(s, amount, "", 1)
	s = strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
	if s == "" {
		return models.NoDescription
	}
	return s
}
