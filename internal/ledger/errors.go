package ledger

import "errors"

var (
	// ErrEntryNotFound indicates a missing journal entry.
	ErrEntryNotFound = errors.New("ledger: journal entry not found")
	// ErrAlreadyFinalized indicates an attempted confirm or edit of a POSTED entry.
	ErrAlreadyFinalized = errors.New("ledger: journal entry already posted")
	// ErrUnbalanced indicates debit != credit beyond tolerance at posting time.
	ErrUnbalanced = errors.New("ledger: journal entry does not balance")
	// ErrAccountNotPostable indicates a line referencing a non-detail or inactive account.
	ErrAccountNotPostable = errors.New("ledger: account does not accept entries")
	// ErrTooFewLines indicates less than two lines.
	ErrTooFewLines = errors.New("ledger: journal entry requires at least two lines")
	// ErrSourceAlreadyLinked indicates the originating document was already posted.
	ErrSourceAlreadyLinked = errors.New("ledger: source document already linked to an entry")
)
