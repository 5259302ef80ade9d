package extractor

import (
	"strings"
	"unicode"
)

// Identity-encoded fonts decode into plausible-looking garbage, so a length
// check alone is not enough: the text must be mostly plain ASCII and must
// contain at least one word every bank statement has.

// statementWords — extracted text containing none of these is almost
// certainly not a decoded statement.
var statementWords = []string{
	"bank", "account", "balance", "date", "payment", "statement",
	"total", "amount", "credit", "debit", "transaction", "currency",
	"opening", "closing", "transfer", "number", "period", "page",
}

// looksReadable reports whether extracted pages amount to usable statement
// text: more than 50 characters, over 60% readable ASCII, and at least one
// recognizable statement word.
func looksReadable(pages []string) bool {
	total := 0
	for _, p := range pages {
		total += len(strings.TrimSpace(p))
	}
	if total <= 50 {
		return false
	}
	if readableRatio(pages) <= 0.6 {
		return false
	}
	combined := strings.ToLower(strings.Join(pages, " "))
	for _, word := range statementWords {
		if strings.Contains(combined, word) {
			return true
		}
	}
	return false
}

// readableRatio is the share of characters that are plain ASCII letters,
// digits, whitespace or statement punctuation. unicode.IsLetter is too
// permissive here: garbage from identity-encoded fonts is full of accented
// letters.
func readableRatio(pages []string) float64 {
	total, readable := 0, 0
	for _, page := range pages {
		for _, r := range page {
			total++
			if isReadableRune(r) {
				readable++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(readable) / float64(total)
}

func isReadableRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case unicode.IsSpace(r):
		return true
	}
	return strings.ContainsRune(`.,-/:;()'"£$€%&@#!?+=*`, r)
}
