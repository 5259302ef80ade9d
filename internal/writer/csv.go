// Package writer renders parsed transactions back out as CSV for download.
package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/insightdelivered/statement-analyzer/internal/models"
)

const dateLayout = "2006-01-02"

// CSVWriter writes transactions to CSV format.
type CSVWriter struct {
	// IncludeMetadata prepends statement metadata as comment rows.
	IncludeMetadata bool
}

// Write writes the transactions in CSV format to out. Metadata may be nil.
func (w *CSVWriter) Write(out io.Writer, txns []models.Transaction, meta *models.StatementMetadata) error {
	cw := csv.NewWriter(out)
	defer cw.Flush()

	if w.IncludeMetadata && meta != nil {
		cw.Write([]string{"# Currency", meta.Currency})
		cw.Write([]string{"# Period", meta.DateRangeStart.Format(dateLayout) + " to " + meta.DateRangeEnd.Format(dateLayout)})
	}

	header := []string{"Date", "Description", "Type", "Amount", "Currency", "Category", "Balance"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, t := range txns {
		balance := ""
		if t.Balance != nil {
			balance = formatAmount(*t.Balance)
		}
		row := []string{
			t.Date.Format(dateLayout),
			t.Description,
			string(t.Type),
			formatAmount(t.Amount),
			t.Currency,
			t.Category,
			balance,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	return nil
}

func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', 2, 64)
}
