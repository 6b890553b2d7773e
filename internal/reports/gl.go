package reports

// GeneralLedgerLine is one movement with the balance after applying it.
type GeneralLedgerLine struct {
	LedgerLine
	Balance float64 `json:"balance"`
}

// GeneralLedger is the chronological statement of a single account.
type GeneralLedger struct {
	AccountCode string              `json:"account_code"`
	AccountName string              `json:"account_name"`
	AccountType string              `json:"account_type"`
	Lines       []GeneralLedgerLine `json:"lines"`
	TotalDebit  float64             `json:"total_debit"`
	TotalCredit float64             `json:"total_credit"`
	Closing     float64             `json:"closing"`
}

// BuildGeneralLedger walks the account's movements in order, accumulating a
// running balance from zero at the start of the window. The balance follows
// the account type's sign convention.
func BuildGeneralLedger(code, name, accountType string, lines []LedgerLine) GeneralLedger {
	out := GeneralLedger{AccountCode: code, AccountName: name, AccountType: accountType}
	var balance float64
	for _, line := range lines {
		switch accountType {
		case "ASSET", "EXPENSE":
			balance += line.Debit - line.Credit
		default:
			balance += line.Credit - line.Debit
		}
		out.Lines = append(out.Lines, GeneralLedgerLine{LedgerLine: line, Balance: balance})
		out.TotalDebit += line.Debit
		out.TotalCredit += line.Credit
	}
	out.Closing = balance
	return out
}
