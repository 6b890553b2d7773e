package reports

import (
	"sort"
	"strings"
)

// TrialBalanceRow is one account in the trial balance. The closing balance
// lands in exactly one of the two balance columns depending on its sign.
type TrialBalanceRow struct {
	Code          string  `json:"code"`
	Name          string  `json:"name"`
	Debit         float64 `json:"debit"`
	Credit        float64 `json:"credit"`
	DebitBalance  float64 `json:"debit_balance"`
	CreditBalance float64 `json:"credit_balance"`
}

// TrialBalanceGroup aggregates rows under a top-level chart segment.
type TrialBalanceGroup struct {
	Key           string            `json:"key"`
	Rows          []TrialBalanceRow `json:"rows"`
	Debit         float64           `json:"debit"`
	Credit        float64           `json:"credit"`
	DebitBalance  float64           `json:"debit_balance"`
	CreditBalance float64           `json:"credit_balance"`
}

// TrialBalance lists every account with movements plus control totals. For a
// consistent ledger TotalDebit equals TotalCredit and the two balance columns
// agree.
type TrialBalance struct {
	Groups             []TrialBalanceGroup `json:"groups"`
	TotalDebit         float64             `json:"total_debit"`
	TotalCredit        float64             `json:"total_credit"`
	TotalDebitBalance  float64             `json:"total_debit_balance"`
	TotalCreditBalance float64             `json:"total_credit_balance"`
}

func groupKey(code string) string {
	if idx := strings.Index(code, "."); idx > 0 {
		return code[:idx]
	}
	return code
}

// BuildTrialBalance converts account activity into grouped trial balance data.
func BuildTrialBalance(accounts []AccountActivity) TrialBalance {
	groups := make(map[string]*TrialBalanceGroup)
	keys := make([]string, 0)
	for _, acc := range accounts {
		key := groupKey(acc.Code)
		grp, ok := groups[key]
		if !ok {
			grp = &TrialBalanceGroup{Key: key}
			groups[key] = grp
			keys = append(keys, key)
		}
		row := TrialBalanceRow{Code: acc.Code, Name: acc.Name, Debit: acc.Debit, Credit: acc.Credit}
		if net := acc.Debit - acc.Credit; net >= 0 {
			row.DebitBalance = net
		} else {
			row.CreditBalance = -net
		}
		grp.Rows = append(grp.Rows, row)
		grp.Debit += row.Debit
		grp.Credit += row.Credit
		grp.DebitBalance += row.DebitBalance
		grp.CreditBalance += row.CreditBalance
	}

	sort.Strings(keys)
	result := TrialBalance{}
	for _, key := range keys {
		grp := groups[key]
		sort.Slice(grp.Rows, func(i, j int) bool {
			return grp.Rows[i].Code < grp.Rows[j].Code
		})
		result.Groups = append(result.Groups, *grp)
		result.TotalDebit += grp.Debit
		result.TotalCredit += grp.Credit
		result.TotalDebitBalance += grp.DebitBalance
		result.TotalCreditBalance += grp.CreditBalance
	}
	return result
}
