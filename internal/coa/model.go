package coa

import "time"

// AccountType enumerates chart of accounts categories.
type AccountType string

const (
	AccountTypeAsset     AccountType = "ASSET"
	AccountTypeLiability AccountType = "LIABILITY"
	AccountTypeEquity    AccountType = "EQUITY"
	AccountTypeIncome    AccountType = "INCOME"
	AccountTypeExpense   AccountType = "EXPENSE"
)

// Valid reports whether the account type is a known category.
func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeAsset, AccountTypeLiability, AccountTypeEquity, AccountTypeIncome, AccountTypeExpense:
		return true
	}
	return false
}

// Account models a chart of accounts node. Level and ParentID are derived
// from the segmented code; AcceptsEntries marks detail accounts that journal
// lines may reference.
type Account struct {
	ID             int64
	Code           string
	Name           string
	Type           AccountType
	Level          int
	ParentID       *int64
	AcceptsEntries bool
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
