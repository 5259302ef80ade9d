package parser

import (
	"regexp"
	"strconv"
	"strings"
)

// currencyCodeToken strips whitelist currency codes embedded in amount cells,
// e.g. "PKR 2,000".
var currencyCodeToken = regexp.MustCompile(`(?i)\b(PKR|USD|EUR|GBP|INR|AED|CAD|AUD)\b`)

var currencyStripper = strings.NewReplacer(
	"£", "",
	"$", "",
	"€", "",
	"₹", "",
	" ", "",
	" ", "", // non-breaking space
)

// normalizeAmount parses a locale-ambiguous amount cell into a float64.
//
// A blank or missing cell yields 0.0 — "no value in this column for this row"
// — and so does any cell that still fails to parse after normalization: a
// malformed cell must never abort the whole statement. Separator rules:
// when both comma and period appear, whichever comes later is the decimal
// point; a lone comma is decimal only when exactly two digits follow it.
func normalizeAmount(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	s = currencyCodeToken.ReplaceAllString(s, "")
	s = currencyStripper.Replace(s)
	if s == "" || s == "-" {
		return 0
	}

	comma := strings.LastIndex(s, ",")
	period := strings.LastIndex(s, ".")
	switch {
	case comma >= 0 && period >= 0:
		if comma > period {
			// "1.234,56" — comma is the decimal point
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		} else {
			// "1,234.56" — commas are thousands separators
			s = strings.ReplaceAll(s, ",", "")
		}
	case comma >= 0:
		if len(s)-comma-1 == 2 {
			// "123,45" — two digits after the last comma, decimal comma
			s = strings.ReplaceAll(s, ",", ".")
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
