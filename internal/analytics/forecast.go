package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/lushenghe96vt/budgetcore/internal/ledger"
)

// DefaultForecastLookback is the moving-average window in months.
const DefaultForecastLookback = 3

// MonthSpend is one month of historical spending.
type MonthSpend struct {
	Month    string
	Spending decimal.Decimal
}

// Forecast is the historical per-month spending series (ascending by
// month) plus the projected value for the month after the series ends.
type Forecast struct {
	History   []MonthSpend
	NextMonth decimal.Decimal
}

// ForecastSpending projects next month's spending as a moving average
// of the trailing lookback months (DefaultForecastLookback when
// lookback is not positive, fewer months when history is shorter).
// Zero history yields a zero forecast, not an error.
func ForecastSpending(txns []*ledger.Transaction, lookback int) Forecast {
	if lookback <= 0 {
		lookback = DefaultForecastLookback
	}

	groups := GroupByMonth(txns)
	keys := make([]string, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	history := make([]MonthSpend, 0, len(keys))
	for _, key := range keys {
		history = append(history, MonthSpend{Month: key, Spending: TotalSpending(groups[key])})
	}

	next := decimal.Zero
	if len(history) > 0 {
		window := history
		if len(window) > lookback {
			window = window[len(window)-lookback:]
		}
		total := decimal.Zero
		for _, m := range window {
			total = total.Add(m.Spending)
		}
		next = total.Div(decimal.NewFromInt(int64(len(window))))
	}

	return Forecast{History: history, NextMonth: next}
}
