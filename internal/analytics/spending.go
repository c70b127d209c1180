package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/lushenghe96vt/budgetcore/internal/ledger"
)

var hundred = decimal.NewFromInt(100)

// TotalSpending sums the absolute values of negative amounts.
func TotalSpending(txns []*ledger.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, t := range txns {
		if t.IsSpending() {
			total = total.Add(t.Amount.Abs())
		}
	}
	return total
}

// SpendingByCategory totals outflows per category, with blank
// categories folded into the uncategorized bucket.
func SpendingByCategory(txns []*ledger.Transaction) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for _, t := range txns {
		if !t.IsSpending() {
			continue
		}
		cat := t.CategoryOrDefault()
		totals[cat] = totals[cat].Add(t.Amount.Abs())
	}
	return totals
}

// CategorySummaryRow is one row of a spending breakdown.
type CategorySummaryRow struct {
	Category string
	Amount   decimal.Decimal
	Percent  decimal.Decimal
}

// SpendingSummary breaks total spending down by category with each
// category's share of the total, sorted by amount descending. Zero
// total spending yields an empty summary, not an error.
func SpendingSummary(txns []*ledger.Transaction) []CategorySummaryRow {
	total := TotalSpending(txns)
	if total.IsZero() {
		return nil
	}

	byCategory := SpendingByCategory(txns)
	rows := make([]CategorySummaryRow, 0, len(byCategory))
	for category, amount := range byCategory {
		rows = append(rows, CategorySummaryRow{
			Category: category,
			Amount:   amount,
			Percent:  amount.Div(total).Mul(hundred),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Amount.Equal(rows[j].Amount) {
			return rows[i].Category < rows[j].Category
		}
		return rows[i].Amount.GreaterThan(rows[j].Amount)
	})
	return rows
}

// CategoryTotal pairs a category with its spending total.
type CategoryTotal struct {
	Category string
	Amount   decimal.Decimal
}

// DefaultTopCategories is the ranking cutoff when none is given.
const DefaultTopCategories = 5

// TopCategories ranks categories by spending, truncated to limit
// (DefaultTopCategories when limit is not positive).
func TopCategories(txns []*ledger.Transaction, limit int) []CategoryTotal {
	if limit <= 0 {
		limit = DefaultTopCategories
	}
	byCategory := SpendingByCategory(txns)
	out := make([]CategoryTotal, 0, len(byCategory))
	for category, amount := range byCategory {
		out = append(out, CategoryTotal{Category: category, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount.Equal(out[j].Amount) {
			return out[i].Category < out[j].Category
		}
		return out[i].Amount.GreaterThan(out[j].Amount)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
