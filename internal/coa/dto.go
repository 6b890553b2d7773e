package coa

// CreateAccountInput groups fields required to create one account.
type CreateAccountInput struct {
	Code           string      `json:"code" validate:"required"`
	Name           string      `json:"name" validate:"required"`
	Type           AccountType `json:"type" validate:"required,oneof=ASSET LIABILITY EQUITY INCOME EXPENSE"`
	AcceptsEntries bool        `json:"accepts_entries"`
}

// UpdateAccountInput patches mutable account fields. The code is the
// structural key and cannot change.
type UpdateAccountInput struct {
	Name           *string      `json:"name"`
	Type           *AccountType `json:"type" validate:"omitempty,oneof=ASSET LIABILITY EQUITY INCOME EXPENSE"`
	AcceptsEntries *bool        `json:"accepts_entries"`
	IsActive       *bool        `json:"is_active"`
}

// ListFilter narrows account listings. Zero values mean "no filter".
type ListFilter struct {
	Type         AccountType
	Level        int
	ActiveOnly   bool
	PostableOnly bool
	Page         int
	PerPage      int
}

// AccountDefinition is one row of a bulk chart seed.
type AccountDefinition struct {
	Code           string      `json:"code" validate:"required"`
	Name           string      `json:"name" validate:"required"`
	Type           AccountType `json:"type" validate:"required,oneof=ASSET LIABILITY EQUITY INCOME EXPENSE"`
	AcceptsEntries bool        `json:"accepts_entries"`
}
