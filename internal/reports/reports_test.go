package reports

import (
	"math"
	"testing"
	"time"
)

func TestBuildTrialBalanceTotalsAgree(t *testing.T) {
	accounts := []AccountActivity{
		{Code: "1.1.1.001", Name: "Cash", Type: "ASSET", Debit: 1000, Credit: 200},
		{Code: "1.1.2.001", Name: "Receivables", Type: "ASSET", Debit: 500, Credit: 300},
		{Code: "2.1.1.001", Name: "Payables", Type: "LIABILITY", Debit: 100, Credit: 600},
		{Code: "4.1.1.001", Name: "Sales", Type: "INCOME", Debit: 0, Credit: 500},
	}

	tb := BuildTrialBalance(accounts)
	if len(tb.Groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(tb.Groups))
	}
	if tb.TotalDebit != 1600 {
		t.Fatalf("unexpected total debit: %v", tb.TotalDebit)
	}
	if tb.TotalCredit != 1600 {
		t.Fatalf("unexpected total credit: %v", tb.TotalCredit)
	}
	if math.Abs(tb.TotalDebitBalance-tb.TotalCreditBalance) > 0.001 {
		t.Fatalf("balance columns disagree: %v vs %v", tb.TotalDebitBalance, tb.TotalCreditBalance)
	}
}

func TestBuildTrialBalanceSplitsBalanceColumns(t *testing.T) {
	accounts := []AccountActivity{
		{Code: "1.1.1.001", Name: "Cash", Type: "ASSET", Debit: 300, Credit: 100},
		{Code: "2.1.1.001", Name: "Payables", Type: "LIABILITY", Debit: 50, Credit: 250},
	}

	tb := BuildTrialBalance(accounts)
	cash := tb.Groups[0].Rows[0]
	if cash.DebitBalance != 200 || cash.CreditBalance != 0 {
		t.Fatalf("cash balance columns wrong: %+v", cash)
	}
	payables := tb.Groups[1].Rows[0]
	if payables.DebitBalance != 0 || payables.CreditBalance != 200 {
		t.Fatalf("payables balance columns wrong: %+v", payables)
	}
}

func TestBuildBalanceSheetAddsResultLine(t *testing.T) {
	accounts := []AccountActivity{
		{Code: "1.1.1.001", Name: "Cash", Type: "ASSET", Debit: 1500, Credit: 0},
		{Code: "2.1.1.001", Name: "Payables", Type: "LIABILITY", Debit: 0, Credit: 500},
		{Code: "3.1.1.001", Name: "Capital", Type: "EQUITY", Debit: 0, Credit: 600},
		{Code: "4.1.1.001", Name: "Sales", Type: "INCOME", Debit: 0, Credit: 700},
		{Code: "5.1.1.001", Name: "Expenses", Type: "EXPENSE", Debit: 300, Credit: 0},
	}

	bs := BuildBalanceSheet(accounts)
	if bs.Assets.Total != 1500 {
		t.Fatalf("unexpected assets total: %v", bs.Assets.Total)
	}

	last := bs.Equity.Rows[len(bs.Equity.Rows)-1]
	if last.Name != ResultLineName {
		t.Fatalf("expected synthetic result row, got %q", last.Name)
	}
	if last.Balance != 400 {
		t.Fatalf("expected result 400, got %v", last.Balance)
	}
	if bs.TotalLiabilitiesAndEquity != bs.Assets.Total {
		t.Fatalf("balance sheet does not balance: %v vs %v", bs.TotalLiabilitiesAndEquity, bs.Assets.Total)
	}
}

func TestBuildIncomeStatement(t *testing.T) {
	accounts := []AccountActivity{
		{Code: "4.1.1.001", Name: "Sales", Type: "INCOME", Debit: 100, Credit: 1300},
		{Code: "5.1.1.001", Name: "Services", Type: "EXPENSE", Debit: 500, Credit: 0},
		{Code: "1.1.1.001", Name: "Cash", Type: "ASSET", Debit: 700, Credit: 0},
	}

	is := BuildIncomeStatement(accounts)
	if is.Income.Total != 1200 {
		t.Fatalf("expected income 1200 got %v", is.Income.Total)
	}
	if is.Expense.Total != 500 {
		t.Fatalf("expected expense 500 got %v", is.Expense.Total)
	}
	if is.NetResult != 700 {
		t.Fatalf("expected net result 700 got %v", is.NetResult)
	}
	if len(is.Income.Rows)+len(is.Expense.Rows) != 2 {
		t.Fatalf("asset account leaked into income statement")
	}
}

func TestBuildGeneralLedgerRunningBalance(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2026, 5, d, 0, 0, 0, 0, time.UTC) }
	lines := []LedgerLine{
		{EntryNumber: 1, Date: day(1), Debit: 1000},
		{EntryNumber: 2, Date: day(2), Credit: 400},
		{EntryNumber: 3, Date: day(3), Debit: 150},
	}

	gl := BuildGeneralLedger("1.1.1.001", "Cash", "ASSET", lines)
	want := []float64{1000, 600, 750}
	for i, line := range gl.Lines {
		if line.Balance != want[i] {
			t.Fatalf("line %d balance = %v, want %v", i, line.Balance, want[i])
		}
	}
	if gl.Closing != 750 {
		t.Fatalf("unexpected closing: %v", gl.Closing)
	}
	if gl.TotalDebit != 1150 || gl.TotalCredit != 400 {
		t.Fatalf("unexpected totals: %v / %v", gl.TotalDebit, gl.TotalCredit)
	}
}

func TestBuildGeneralLedgerCreditNature(t *testing.T) {
	lines := []LedgerLine{
		{EntryNumber: 1, Date: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC), Credit: 900},
		{EntryNumber: 2, Date: time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC), Debit: 200},
	}

	gl := BuildGeneralLedger("2.1.1.001", "Payables", "LIABILITY", lines)
	if gl.Lines[0].Balance != 900 {
		t.Fatalf("expected 900 after credit, got %v", gl.Lines[0].Balance)
	}
	if gl.Closing != 700 {
		t.Fatalf("expected closing 700, got %v", gl.Closing)
	}
}
