package parser

import (
	"errors"
	"reflect"
	"testing"

	"github.com/insightdelivered/statement-analyzer/internal/models"
)

const pkrStatement = `00300109448879,
Opening Balance,PKR      174157.29
Closing Balance,PKR      48336.29
Currency,Pakistan Rupee(PKR)
Booking Date,Value Date,Doc No,Description,Debit,Credit,Available Balance
01 Dec 2025,01 Dec 2025,,UTILITY BILL PAYMENT,1100.00,,373057.29
02 Dec 2025,02 Dec 2025,,SALARY CREDIT,,50000.00,423057.29
03 Dec 2025,03 Dec 2025,,,2500.00,,420557.29
`

func TestParseCSVStatementWithPreamble(t *testing.T) {
	p := New()

	result, err := p.ParseCSV([]byte(pkrStatement))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Transactions) != 3 {
		t.Fatalf("expected 3 transactions, got %d", len(result.Transactions))
	}

	first := result.Transactions[0]
	if first.Type != models.TxnDebit || first.Amount != 1100.00 {
		t.Errorf("first txn: got %s %.2f, want debit 1100.00", first.Type, first.Amount)
	}
	if first.Currency != "PKR" {
		t.Errorf("currency: got %q, want PKR", first.Currency)
	}
	if first.Balance == nil || *first.Balance != 373057.29 {
		t.Errorf("balance: got %v, want 373057.29", first.Balance)
	}

	second := result.Transactions[1]
	if second.Type != models.TxnCredit || second.Amount != 50000.00 {
		t.Errorf("second txn: got %s %.2f, want credit 50000.00", second.Type, second.Amount)
	}

	// Blank description falls back to the sentinel.
	if got := result.Transactions[2].Description; got != models.NoDescription {
		t.Errorf("blank description: got %q, want %q", got, models.NoDescription)
	}

	meta := result.Metadata
	if meta.Currency != "PKR" {
		t.Errorf("metadata currency: got %q, want PKR", meta.Currency)
	}
	if meta.DateRangeStart.Day() != 1 || meta.DateRangeEnd.Day() != 3 {
		t.Errorf("date range: got %v .. %v", meta.DateRangeStart, meta.DateRangeEnd)
	}
}

func TestParseCSVAmountTypeColumns(t *testing.T) {
	input := `Date,Description,Amount,Type
2023-10-01,Salary,5000,credit
2023-10-02,Rent,1500,debit
2023-10-05,Groceries,200,debit
`
	result, err := New().ParseCSV([]byte(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Transactions) != 3 {
		t.Fatalf("expected 3 transactions, got %d", len(result.Transactions))
	}

	var income, expense float64
	for _, txn := range result.Transactions {
		switch txn.Type {
		case models.TxnCredit:
			income += txn.Amount
		case models.TxnDebit:
			expense += txn.Amount
		}
	}
	if income != 5000 || expense != 1700 {
		t.Errorf("totals: got income %.2f expense %.2f, want 5000.00 1700.00", income, expense)
	}
	if result.Metadata.Currency != "USD" {
		t.Errorf("currency should default to USD, got %q", result.Metadata.Currency)
	}
}

func TestParseCSVSignedAmountWithoutType(t *testing.T) {
	input := `Date,Description,Amount,Reference
2023-10-01,Salary,5000.00,r1
2023-10-02,Rent,-1500.00,r2
`
	result, err := New().ParseCSV([]byte(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := result.Transactions[0].Type; got != models.TxnCredit {
		t.Errorf("positive amount: got %s, want credit", got)
	}
	rent := result.Transactions[1]
	if rent.Type != models.TxnDebit || rent.Amount != 1500 {
		t.Errorf("negative amount: got %s %.2f, want debit 1500.00", rent.Type, rent.Amount)
	}
}

func TestParseCSVEmptyInput(t *testing.T) {
	for _, input := range []string{"", "\n\n", "   \n\t\n"} {
		if _, err := New().ParseCSV([]byte(input)); !errors.Is(err, ErrEmptyInput) {
			t.Errorf("ParseCSV(%q): got %v, want ErrEmptyInput", input, err)
		}
	}
}

func TestParseCSVHeaderNotFound(t *testing.T) {
	input := "Account,123\nOpening Balance,500.00\n"
	if _, err := New().ParseCSV([]byte(input)); !errors.Is(err, ErrHeaderNotFound) {
		t.Fatalf("got %v, want ErrHeaderNotFound", err)
	}
}

func TestParseCSVDateColumnNotFound(t *testing.T) {
	input := "Description,Debit,Credit,Balance\nRent,100.00,,900.00\n"
	if _, err := New().ParseCSV([]byte(input)); !errors.Is(err, ErrDateColumnNotFound) {
		t.Fatalf("got %v, want ErrDateColumnNotFound", err)
	}
}

func TestParseCSVAllRowsRejected(t *testing.T) {
	input := `Booking Date,Description,Debit,Credit
01 Dec 2025,Nothing,0.00,0.00
02 Dec 2025,Still nothing,,
`
	_, err := New().ParseCSV([]byte(input))
	if !errors.Is(err, ErrNoTransactions) {
		t.Fatalf("got %v, want ErrNoTransactions", err)
	}
}

func TestParseCSVSkipsAmbiguousAndBadRows(t *testing.T) {
	input := `Booking Date,Description,Debit,Credit
01 Dec 2025,Valid debit,100.00,
02 Dec 2025,Both sides positive,50.00,50.00
not a date,Broken date,25.00,
03 Dec 2025,Valid credit,,200.00
`
	result, err := New().ParseCSV([]byte(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Transactions) != 2 {
		t.Fatalf("expected 2 surviving transactions, got %d", len(result.Transactions))
	}
	if len(result.Skipped) != 2 {
		t.Fatalf("expected 2 skipped rows, got %d (%+v)", len(result.Skipped), result.Skipped)
	}

	reasons := map[SkipReason]bool{}
	for _, s := range result.Skipped {
		reasons[s.Reason] = true
	}
	if !reasons[SkipAmbiguous] {
		t.Error("expected an ambiguous_direction skip")
	}
	if !reasons[SkipBadDate] {
		t.Error("expected an unparseable_date skip")
	}

	// Ambiguous rows must not leak into either total.
	for _, txn := range result.Transactions {
		if txn.Description == "Both sides positive" {
			t.Error("ambiguous row survived the parse")
		}
	}
}

func TestParseCSVSemicolonDelimiter(t *testing.T) {
	input := `Booking Date;Description;Debit;Credit
01 Dec 2025;Rent;1500,00;
02 Dec 2025;Salary;;5000,00
`
	result, err := New().ParseCSV([]byte(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Transactions) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(result.Transactions))
	}
	if got := result.Transactions[0].Amount; got != 1500 {
		t.Errorf("decimal-comma amount: got %v, want 1500", got)
	}
}

func TestParseCSVIdempotent(t *testing.T) {
	p := New()
	first, err := p.ParseCSV([]byte(pkrStatement))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := p.ParseCSV([]byte(pkrStatement))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("re-parsing identical bytes produced a different result")
	}
}

func TestParseUnsupportedFormat(t *testing.T) {
	_, err := New().Parse([]byte("data"), "statement.docx")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("got %v, want ErrUnsupportedFormat", err)
	}
}

func TestParseTransactionInvariants(t *testing.T) {
	result, err := New().Parse([]byte(pkrStatement), "statement.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, txn := range result.Transactions {
		if txn.Date.IsZero() {
			t.Errorf("txn %d: zero date", i)
		}
		if txn.Description == "" {
			t.Errorf("txn %d: empty description", i)
		}
		if txn.Amount < 0 {
			t.Errorf("txn %d: negative amount %v", i, txn.Amount)
		}
		if txn.Type != models.TxnCredit && txn.Type != models.TxnDebit {
			t.Errorf("txn %d: bad type %q", i, txn.Type)
		}
	}
}
