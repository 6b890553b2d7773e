package reports

import "sort"

// ResultLineName labels the synthetic equity row carrying the accumulated
// result. The ledger has no closing entries, so the balance sheet derives it
// from income and expense activity at report time.
const ResultLineName = "Period Result"

// BalanceSheetRow summarises one account inside a section.
type BalanceSheetRow struct {
	Code    string  `json:"code"`
	Name    string  `json:"name"`
	Balance float64 `json:"balance"`
}

// BalanceSheetSection contains the rows and total for a classification.
type BalanceSheetSection struct {
	Label string            `json:"label"`
	Rows  []BalanceSheetRow `json:"rows"`
	Total float64           `json:"total"`
}

// BalanceSheet is the structured output of the balance sheet report. Assets
// equal liabilities plus equity once the synthetic result row is included.
type BalanceSheet struct {
	Assets                    BalanceSheetSection `json:"assets"`
	Liabilities               BalanceSheetSection `json:"liabilities"`
	Equity                    BalanceSheetSection `json:"equity"`
	TotalLiabilitiesAndEquity float64             `json:"total_liabilities_and_equity"`
}

// BuildBalanceSheet aggregates signed balances into sections and appends the
// accumulated result to equity.
func BuildBalanceSheet(accounts []AccountActivity) BalanceSheet {
	assets := BalanceSheetSection{Label: "Assets"}
	liabilities := BalanceSheetSection{Label: "Liabilities"}
	equity := BalanceSheetSection{Label: "Equity"}
	var result float64

	for _, acc := range accounts {
		balance := acc.Signed()
		row := BalanceSheetRow{Code: acc.Code, Name: acc.Name, Balance: balance}
		switch acc.Type {
		case "ASSET":
			assets.Rows = append(assets.Rows, row)
			assets.Total += balance
		case "LIABILITY":
			liabilities.Rows = append(liabilities.Rows, row)
			liabilities.Total += balance
		case "EQUITY":
			equity.Rows = append(equity.Rows, row)
			equity.Total += balance
		case "INCOME":
			result += balance
		case "EXPENSE":
			result -= balance
		}
	}

	sort.Slice(assets.Rows, func(i, j int) bool { return assets.Rows[i].Code < assets.Rows[j].Code })
	sort.Slice(liabilities.Rows, func(i, j int) bool { return liabilities.Rows[i].Code < liabilities.Rows[j].Code })
	sort.Slice(equity.Rows, func(i, j int) bool { return equity.Rows[i].Code < equity.Rows[j].Code })

	equity.Rows = append(equity.Rows, BalanceSheetRow{Name: ResultLineName, Balance: result})
	equity.Total += result

	return BalanceSheet{
		Assets:                    assets,
		Liabilities:               liabilities,
		Equity:                    equity,
		TotalLiabilitiesAndEquity: liabilities.Total + equity.Total,
	}
}
