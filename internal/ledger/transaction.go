package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultCategory is assigned to transactions until a rule or the user
// picks something better.
const DefaultCategory = "Uncategorized"

// Renewal interval types written by the subscription detector.
const (
	IntervalMonthly    = "monthly"
	IntervalWeekly     = "weekly"
	IntervalAnnual     = "annual"
	IntervalCustomDays = "custom_days"
)

const maxNotesLen = 2048

// Transaction is a single ledger entry. Amounts are signed decimals:
// negative = outflow/spending, positive = inflow/income.
type Transaction struct {
	ID string

	Date           time.Time
	Description    string // normalized merchant/memo used for matching
	DescriptionRaw string // original bank description, kept for audit
	Amount         decimal.Decimal

	PostedDate *time.Time
	Merchant   string
	Currency   string
	TxnType    string
	Balance    *decimal.Decimal

	Category     string
	Notes        string
	UserOverride bool

	// StatementMonth is a display label assigned per upload batch,
	// orthogonal to Date.
	StatementMonth string

	// Fields owned by the subscription detector; reset on every pass.
	IsSubscription      bool
	NextDueDate         *time.Time
	RenewalIntervalType string
	CustomIntervalDays  int
	AlertSent           bool

	SourceName     string
	SourceUploadID string
}

// IsSpending reports whether the transaction is an outflow.
func (t *Transaction) IsSpending() bool { return t.Amount.Sign() < 0 }

// IsIncome reports whether the transaction is an inflow.
func (t *Transaction) IsIncome() bool { return t.Amount.Sign() > 0 }

// CategoryOrDefault returns the category, falling back to the
// uncategorized bucket for blank values.
func (t *Transaction) CategoryOrDefault() string {
	if t.Category == "" {
		return DefaultCategory
	}
	return t.Category
}
