package coa

import "errors"

var (
	// ErrDuplicateCode indicates the account code already exists.
	ErrDuplicateCode = errors.New("coa: account code already exists")
	// ErrParentNotFound indicates a non-root code with no resolvable parent.
	ErrParentNotFound = errors.New("coa: parent account not found")
	// ErrTypeMismatch indicates a child typed differently from its parent.
	ErrTypeMismatch = errors.New("coa: account type must match parent type")
	// ErrHasChildren blocks deletion of an account with children.
	ErrHasChildren = errors.New("coa: account has child accounts")
	// ErrHasMovements blocks deletion of an account referenced by journal lines.
	ErrHasMovements = errors.New("coa: account has journal movements")
	// ErrAlreadyInitialized blocks bulk initialization over an existing chart.
	ErrAlreadyInitialized = errors.New("coa: chart of accounts already initialized")
	// ErrAccountNotFound indicates a missing account.
	ErrAccountNotFound = errors.New("coa: account not found")
)
