package parser

import (
	"bytes"
	"strings"
)

// Bank exports commonly prepend metadata lines (account number, opening and
// closing balances, currency) before the tabular header, so the header has to
// be found by content rather than by a fixed line offset.

// dateHeaderLabels mark a line as the transaction table header when present.
var dateHeaderLabels = []string{"booking date", "transaction date"}

// delimiterCandidates in priority order; ties during detection resolve to the
// earlier candidate.
var delimiterCandidates = []rune{',', ';', '\t', '|'}

// decodeLines converts raw file bytes into trimmed, non-empty lines. Invalid
// UTF-8 sequences are replaced rather than failing the parse.
func decodeLines(content []byte) []string {
	text := string(bytes.ToValidUTF8(content, []byte("�")))

	var lines []string
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// findHeaderIndex locates the header row among the statement lines. A line
// carrying a known date label wins; otherwise the first line with at least
// three commas or semicolons (four or more columns) is taken. Returns -1 when
// no candidate exists.
func findHeaderIndex(lines []string) int {
	for i, line := range lines {
		lower := strings.ToLower(line)
		for _, label := range dateHeaderLabels {
			if strings.Contains(lower, label) {
				return i
			}
		}
	}
	for i, line := range lines {
		if strings.Count(line, ",") >= 3 || strings.Count(line, ";") >= 3 {
			return i
		}
	}
	return -1
}

// detectDelimiter picks the candidate with the most occurrences in the header
// line. Comma wins outright ties by candidate order.
func detectDelimiter(headerLine string) rune {
	best := ','
	bestCount := -1
	for _, cand := range delimiterCandidates {
		if c := strings.Count(headerLine, string(cand)); c > bestCount {
			bestCount = c
			best = cand
		}
	}
	return best
}
