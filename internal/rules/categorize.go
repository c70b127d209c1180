package rules

import (
	"strings"

	"github.com/lushenghe96vt/budgetcore/internal/ledger"
)

// Reserved transfer categories. A rule match on either is re-derived
// from the raw description because pattern matching alone cannot tell
// direction apart.
const (
	CategoryTransferIn  = "Transfer In"
	CategoryTransferOut = "Transfer Out"
)

// AutoCategorize runs the rule engine across a batch of transactions,
// mutating Category in place. With overwrite false it never touches
// user overrides or transactions already carrying a real category.
func AutoCategorize(txns []*ledger.Transaction, cr *CategoryRules, overwrite bool) {
	for _, t := range txns {
		if !overwrite && t.UserOverride {
			continue
		}
		if !overwrite && t.Category != "" && t.Category != ledger.DefaultCategory {
			continue
		}
		suggestion, ok := cr.Suggest(t.Description)
		if !ok {
			continue
		}
		t.Category = resolveTransferDirection(t, suggestion)
	}
}

// resolveTransferDirection disambiguates transfer matches using the
// raw description, which keeps the "from"/"to" wording the normalizer
// may have scrubbed.
func resolveTransferDirection(t *ledger.Transaction, suggestion string) string {
	if suggestion != CategoryTransferIn && suggestion != CategoryTransferOut {
		return suggestion
	}
	raw := strings.ToLower(t.DescriptionRaw)
	if strings.Contains(raw, "from") && t.Amount.Sign() > 0 {
		return CategoryTransferIn
	}
	if strings.Contains(raw, "to") && t.Amount.Sign() < 0 {
		return CategoryTransferOut
	}
	return suggestion
}
