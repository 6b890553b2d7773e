package posting

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RefKind tags how a template line names its account.
type RefKind string

const (
	// RefFixed references an account by its chart code.
	RefFixed RefKind = "FIXED"
	// RefDynamic references an account supplied at trigger time through
	// the context's account hints (e.g. the treasury account the user
	// chose for a receipt).
	RefDynamic RefKind = "DYNAMIC"
)

// AccountRef is the tagged variant Fixed(code) | Dynamic(contextKey).
type AccountRef struct {
	Kind       RefKind
	Code       string
	ContextKey string
}

// FixedRef builds a fixed account reference.
func FixedRef(code string) AccountRef {
	return AccountRef{Kind: RefFixed, Code: code}
}

// DynamicRef builds a context-resolved account reference.
func DynamicRef(key string) AccountRef {
	return AccountRef{Kind: RefDynamic, ContextKey: key}
}

// Side places a computed amount on the debit or credit column.
type Side string

const (
	SideDebit  Side = "DEBIT"
	SideCredit Side = "CREDIT"
)

// RuleKind selects how a template line derives its amount from the trigger.
type RuleKind string

const (
	// RuleFull takes the trigger amount unchanged.
	RuleFull RuleKind = "FULL"
	// RuleProportion takes ratio x trigger amount (e.g. a tax portion).
	RuleProportion RuleKind = "PROPORTION"
	// RuleBalance takes whatever amount balances the entry computed so
	// far. A template closing with a balance line is balanced by
	// construction. Must be the last line.
	RuleBalance RuleKind = "BALANCE"
)

// AmountRule computes one line's amount from the triggering event's amount.
type AmountRule struct {
	Kind  RuleKind
	Ratio decimal.Decimal
}

// TemplateLine is one declarative row of a template.
type TemplateLine struct {
	Position    int
	Ref         AccountRef
	Side        Side
	Rule        AmountRule
	Description string
}

// Template is a reusable blueprint mapping a business event to a balanced
// journal entry.
type Template struct {
	Code        string
	TriggerType string
	Description string
	IsActive    bool
	Lines       []TemplateLine
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Context carries the triggering business event into template application.
type Context struct {
	TriggerType  string
	Amount       float64
	Currency     string
	Date         time.Time
	SourceModule string
	SourceID     uuid.UUID
	Memo         string
	// AccountHints resolves dynamic references: context key -> account code.
	AccountHints map[string]string
}

// ValidationResult reports the structural check of a template.
type ValidationResult struct {
	Code     string  `json:"code"`
	Balanced bool    `json:"balanced"`
	Debit    float64 `json:"debit"`
	Credit   float64 `json:"credit"`
}
