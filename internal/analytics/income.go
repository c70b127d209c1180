package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/lushenghe96vt/budgetcore/internal/ledger"
)

// TotalIncome sums positive amounts.
func TotalIncome(txns []*ledger.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, t := range txns {
		if t.IsIncome() {
			total = total.Add(t.Amount)
		}
	}
	return total
}

// NetBalance is income minus spending; positive means surplus.
func NetBalance(txns []*ledger.Transaction) decimal.Decimal {
	return TotalIncome(txns).Sub(TotalSpending(txns))
}

// IncomeVsSpending splits the ledger into an Income row and a Spending
// row, each with its share of total money movement. Empty when nothing
// moved.
func IncomeVsSpending(txns []*ledger.Transaction) []CategorySummaryRow {
	income := TotalIncome(txns)
	spending := TotalSpending(txns)
	total := income.Add(spending)
	if total.IsZero() {
		return nil
	}
	return []CategorySummaryRow{
		{Category: "Income", Amount: income, Percent: income.Div(total).Mul(hundred)},
		{Category: "Spending", Amount: spending, Percent: spending.Div(total).Mul(hundred)},
	}
}
