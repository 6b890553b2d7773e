package reports

import "sort"

// IncomeStatementRow represents an income or expense account summary.
type IncomeStatementRow struct {
	Code   string  `json:"code"`
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// IncomeStatementSection groups accounts by nature.
type IncomeStatementSection struct {
	Label string               `json:"label"`
	Rows  []IncomeStatementRow `json:"rows"`
	Total float64              `json:"total"`
}

// IncomeStatement contains the structured output for the report.
type IncomeStatement struct {
	Income    IncomeStatementSection `json:"income"`
	Expense   IncomeStatementSection `json:"expense"`
	NetResult float64                `json:"net_result"`
}

// BuildIncomeStatement aggregates period activity into income and expense
// sections. Only income and expense accounts participate.
func BuildIncomeStatement(accounts []AccountActivity) IncomeStatement {
	income := IncomeStatementSection{Label: "Income"}
	expense := IncomeStatementSection{Label: "Expense"}

	for _, acc := range accounts {
		row := IncomeStatementRow{Code: acc.Code, Name: acc.Name, Amount: acc.Signed()}
		switch acc.Type {
		case "INCOME":
			income.Rows = append(income.Rows, row)
			income.Total += row.Amount
		case "EXPENSE":
			expense.Rows = append(expense.Rows, row)
			expense.Total += row.Amount
		}
	}

	sort.Slice(income.Rows, func(i, j int) bool { return income.Rows[i].Code < income.Rows[j].Code })
	sort.Slice(expense.Rows, func(i, j int) bool { return expense.Rows[i].Code < expense.Rows[j].Code })

	return IncomeStatement{
		Income:    income,
		Expense:   expense,
		NetResult: income.Total - expense.Total,
	}
}
