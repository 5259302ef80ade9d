package extractor

import (
	"strings"
	"testing"
)

func TestLooksReadable(t *testing.T) {
	statement := "Bank Statement for account 12345678\n" +
		"Opening balance 1,200.00\n" +
		"12/01/2023 COFFEE SHOP -4.50 1,195.50\n"

	tests := []struct {
		name  string
		pages []string
		want  bool
	}{
		{"plain statement text", []string{statement}, true},
		{"empty", nil, false},
		{"too short", []string{"bank balance"}, false},
		{
			"long but no statement words",
			[]string{strings.Repeat("lorem ipsum dolor sit amet ", 10)},
			false,
		},
		{
			"mostly garbage runes",
			[]string{"bank " + strings.Repeat("þéß☃", 40)},
			false,
		},
		{
			"statement word on a later page",
			[]string{strings.Repeat("plain readable filler text ", 5), "closing balance 100.00"},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := looksReadable(tt.pages); got != tt.want {
				t.Errorf("looksReadable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReadableRatio(t *testing.T) {
	if got := readableRatio(nil); got != 0 {
		t.Errorf("empty input: got %v, want 0", got)
	}
	if got := readableRatio([]string{"abc 123"}); got != 1 {
		t.Errorf("pure ascii: got %v, want 1", got)
	}
	if got := readableRatio([]string{"þþþþ"}); got != 0 {
		t.Errorf("pure garbage: got %v, want 0", got)
	}
}

func TestIsReadableRune(t *testing.T) {
	for _, r := range "aZ9 .£$€(" {
		if !isReadableRune(r) {
			t.Errorf("isReadableRune(%q) = false, want true", r)
		}
	}
	for _, r := range "é☃ß" {
		if isReadableRune(r) {
			t.Errorf("isReadableRune(%q) = true, want false", r)
		}
	}
}
