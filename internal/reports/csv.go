package reports

import (
	"encoding/csv"
	"io"
	"strconv"
)

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// WriteTrialBalanceCSV serialises a trial balance to CSV.
func WriteTrialBalanceCSV(w io.Writer, tb TrialBalance) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()
	if err := writer.Write([]string{"Code", "Name", "Debit", "Credit", "Debit Balance", "Credit Balance"}); err != nil {
		return err
	}
	for _, grp := range tb.Groups {
		for _, row := range grp.Rows {
			if err := writer.Write([]string{
				row.Code,
				row.Name,
				formatFloat(row.Debit),
				formatFloat(row.Credit),
				formatFloat(row.DebitBalance),
				formatFloat(row.CreditBalance),
			}); err != nil {
				return err
			}
		}
	}
	if err := writer.Write([]string{
		"", "Total",
		formatFloat(tb.TotalDebit),
		formatFloat(tb.TotalCredit),
		formatFloat(tb.TotalDebitBalance),
		formatFloat(tb.TotalCreditBalance),
	}); err != nil {
		return err
	}
	writer.Flush()
	return writer.Error()
}

// WriteBalanceSheetCSV serialises a balance sheet to CSV.
func WriteBalanceSheetCSV(w io.Writer, bs BalanceSheet) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()
	if err := writer.Write([]string{"Section", "Code", "Name", "Balance"}); err != nil {
		return err
	}
	for _, section := range []BalanceSheetSection{bs.Assets, bs.Liabilities, bs.Equity} {
		for _, row := range section.Rows {
			if err := writer.Write([]string{section.Label, row.Code, row.Name, formatFloat(row.Balance)}); err != nil {
				return err
			}
		}
		if err := writer.Write([]string{section.Label, "", "Total", formatFloat(section.Total)}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteIncomeStatementCSV serialises an income statement to CSV.
func WriteIncomeStatementCSV(w io.Writer, is IncomeStatement) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()
	if err := writer.Write([]string{"Section", "Code", "Name", "Amount"}); err != nil {
		return err
	}
	for _, section := range []IncomeStatementSection{is.Income, is.Expense} {
		for _, row := range section.Rows {
			if err := writer.Write([]string{section.Label, row.Code, row.Name, formatFloat(row.Amount)}); err != nil {
				return err
			}
		}
		if err := writer.Write([]string{section.Label, "", "Total", formatFloat(section.Total)}); err != nil {
			return err
		}
	}
	if err := writer.Write([]string{"", "", "Net Result", formatFloat(is.NetResult)}); err != nil {
		return err
	}
	writer.Flush()
	return writer.Error()
}

// WriteGeneralLedgerCSV serialises an account statement to CSV.
func WriteGeneralLedgerCSV(w io.Writer, gl GeneralLedger) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()
	if err := writer.Write([]string{"Date", "Entry", "Description", "Debit", "Credit", "Balance"}); err != nil {
		return err
	}
	for _, line := range gl.Lines {
		if err := writer.Write([]string{
			line.Date.Format("2006-01-02"),
			strconv.FormatInt(line.EntryNumber, 10),
			line.Description,
			formatFloat(line.Debit),
			formatFloat(line.Credit),
			formatFloat(line.Balance),
		}); err != nil {
			return err
		}
	}
	if err := writer.Write([]string{
		"", "", "Total",
		formatFloat(gl.TotalDebit),
		formatFloat(gl.TotalCredit),
		formatFloat(gl.Closing),
	}); err != nil {
		return err
	}
	writer.Flush()
	return writer.Error()
}
