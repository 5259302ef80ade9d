package parser

import (
	"bytes"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ParseXLSX parses a spreadsheet statement export. The first sheet is read as
// rows of cells; header location, column mapping and row translation then
// work exactly as they do for CSV, just on cells instead of delimited text.
func (p *StatementParser) ParseXLSX(content []byte) (*Result, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, &MalformedTableError{Err: err}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyInput
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, &MalformedTableError{Err: err}
	}

	// Drop rows with no content at all; blank spreadsheet rows carry no
	// information, same as blank statement lines.
	var cellRows [][]string
	for _, row := range rows {
		if rowHasContent(row) {
			cellRows = append(cellRows, row)
		}
	}
	if len(cellRows) == 0 {
		return nil, ErrEmptyInput
	}

	headerIdx := findHeaderRow(cellRows)
	if headerIdx < 0 {
		return nil, ErrHeaderNotFound
	}

	var metaLines []string
	for _, row := range cellRows[:headerIdx] {
		metaLines = append(metaLines, strings.Join(row, " "))
	}
	currency := currencyOrDefault(detectCurrency(metaLines))

	return p.translateRows(cellRows[headerIdx], cellRows[headerIdx+1:], currency, headerIdx+2)
}

// findHeaderRow is the cell-based sibling of findHeaderIndex: a row holding a
// known date label wins, otherwise the first row with four or more non-empty
// cells.
func findHeaderRow(rows [][]string) int {
	for i, row := range rows {
		lower := strings.ToLower(strings.Join(row, " "))
		for _, label := range dateHeaderLabels {
			if strings.Contains(lower, label) {
				return i
			}
		}
	}
	for i, row := range rows {
		filled := 0
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				filled++
			}
		}
		if filled >= 4 {
			return i
		}
	}
	return -1
}

func rowHasContent(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return true
		}
	}
	return false
}
