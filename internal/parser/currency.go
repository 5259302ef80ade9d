package parser

import (
	"regexp"
	"strings"
)

// defaultCurrency is assumed when nothing in the statement identifies one.
const defaultCurrency = "USD"

// knownCurrencyCodes is the whitelist scanned for in statement metadata, in
// match priority order.
var knownCurrencyCodes = []string{"PKR", "USD", "EUR", "GBP", "INR", "AED", "CAD", "AUD"}

// parenCodePattern matches a parenthesized code, e.g. "Pakistan Rupee(PKR)".
var parenCodePattern = regexp.MustCompile(`\(([A-Z]{3})\)`)

// currencySymbols maps symbols to codes for the lower-confidence PDF path.
var currencySymbols = []struct {
	symbol string
	code   string
}{
	{"$", "USD"},
	{"€", "EUR"},
	{"£", "GBP"},
}

// detectCurrency scans the metadata lines that precede the table header for a
// currency. It prefers an explicitly labeled "Currency" line, then falls back
// to any known code anywhere in the metadata. Returns "" when inconclusive.
func detectCurrency(metaLines []string) string {
	for _, line := range metaLines {
		if !strings.Contains(strings.ToLower(line), "currency") {
			continue
		}
		upper := strings.ToUpper(line)

		if m := parenCodePattern.FindStringSubmatch(upper); m != nil {
			return m[1]
		}

		// A code following the label separator, e.g. "Currency,PKR Rupee".
		if parts := strings.SplitN(line, ",", 2); len(parts) > 1 {
			value := strings.ToUpper(strings.TrimSpace(parts[1]))
			if len(value) >= 3 {
				for _, code := range knownCurrencyCodes {
					if strings.Contains(value, code) {
						return code
					}
				}
			}
		}

		for _, code := range knownCurrencyCodes {
			if strings.Contains(upper, code) {
				return code
			}
		}
	}

	// Second pass: any known code across all metadata text.
	all := strings.ToUpper(strings.Join(metaLines, " "))
	for _, code := range knownCurrencyCodes {
		if strings.Contains(all, code) {
			return code
		}
	}
	return ""
}

// detectCurrencyText scans free-form text (extracted PDF pages) for a
// currency, falling back to bare symbols when no code appears.
func detectCurrencyText(text string) string {
	upper := strings.ToUpper(text)
	for _, code := range knownCurrencyCodes {
		if strings.Contains(upper, code) {
			return code
		}
	}
	for _, s := range currencySymbols {
		if strings.Contains(text, s.symbol) {
			return s.code
		}
	}
	return ""
}

// currencyOrDefault collapses an inconclusive detection to the default.
func currencyOrDefault(code string) string {
	if code == "" {
		return defaultCurrency
	}
	return code
}
