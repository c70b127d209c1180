package subscription

import (
	"github.com/shopspring/decimal"

	"github.com/lushenghe96vt/budgetcore/internal/ledger"
)

// Totals summarizes flagged subscription spend.
type Totals struct {
	Total   decimal.Decimal
	Count   int
	Average decimal.Decimal // per-subscription average charge
}

// Summarize totals the transactions currently flagged as
// subscriptions. Run DetectAndAnnotate first; this only reads flags.
func Summarize(txns []*ledger.Transaction) Totals {
	total := decimal.Zero
	count := 0
	for _, t := range txns {
		if !t.IsSubscription {
			continue
		}
		total = total.Add(t.Amount.Abs())
		count++
	}
	avg := decimal.Zero
	if count > 0 {
		avg = total.Div(decimal.NewFromInt(int64(count)))
	}
	return Totals{Total: total, Count: count, Average: avg}
}
