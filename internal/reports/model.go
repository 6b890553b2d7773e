package reports

import "time"

// AccountActivity aggregates posted movements for one account over a window.
type AccountActivity struct {
	AccountID int64
	Code      string
	Name      string
	Type      string
	Debit     float64
	Credit    float64
}

// Signed returns the account balance following the sign convention of its
// type: assets and expenses grow with debits, the rest grow with credits.
func (a AccountActivity) Signed() float64 {
	switch a.Type {
	case "ASSET", "EXPENSE":
		return a.Debit - a.Credit
	default:
		return a.Credit - a.Debit
	}
}

// LedgerLine is one posted journal line seen from a single account's side.
type LedgerLine struct {
	EntryID     int64     `json:"entry_id"`
	EntryNumber int64     `json:"entry_number"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	Debit       float64   `json:"debit"`
	Credit      float64   `json:"credit"`
}

// Period bounds a report window. A zero From means "since inception"; a zero
// To means "up to now".
type Period struct {
	From time.Time
	To   time.Time
}
