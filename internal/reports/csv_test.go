package reports

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"
)

func TestWriteTrialBalanceCSV(t *testing.T) {
	tb := BuildTrialBalance([]AccountActivity{
		{Code: "1.1.1.001", Name: "Cash", Type: "ASSET", Debit: 100, Credit: 40},
		{Code: "4.1.1.001", Name: "Sales", Type: "INCOME", Debit: 0, Credit: 60},
	})

	buf := &bytes.Buffer{}
	if err := WriteTrialBalanceCSV(buf, tb); err != nil {
		t.Fatalf("tb csv error: %v", err)
	}
	records, err := csv.NewReader(bytes.NewReader(buf.Bytes())).ReadAll()
	if err != nil {
		t.Fatalf("csv read error: %v", err)
	}
	// header + 2 accounts + total row
	if len(records) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(records))
	}
	total := records[len(records)-1]
	if total[2] != "100.00" || total[3] != "100.00" {
		t.Fatalf("unexpected totals row: %v", total)
	}
}

func TestWriteGeneralLedgerCSV(t *testing.T) {
	gl := BuildGeneralLedger("1.1.1.001", "Cash", "ASSET", []LedgerLine{
		{EntryNumber: 1, Date: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), Description: "Opening", Debit: 500},
	})

	buf := &bytes.Buffer{}
	if err := WriteGeneralLedgerCSV(buf, gl); err != nil {
		t.Fatalf("gl csv error: %v", err)
	}
	records, err := csv.NewReader(bytes.NewReader(buf.Bytes())).ReadAll()
	if err != nil {
		t.Fatalf("csv read error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(records))
	}
	if records[1][0] != "2026-06-01" || records[1][5] != "500.00" {
		t.Fatalf("unexpected line row: %v", records[1])
	}
}
