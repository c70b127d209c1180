package analytics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/lushenghe96vt/budgetcore/internal/ledger"
)

func TestForecastSpendingMovingAverage(t *testing.T) {
	t.Parallel()

	txns := []*ledger.Transaction{
		txn("Groceries", "-100.00", day(2026, time.January, 10)),
		txn("Groceries", "-200.00", day(2026, time.February, 10)),
		txn("Groceries", "-300.00", day(2026, time.March, 10)),
	}

	got := ForecastSpending(txns, 3)
	require.Len(t, got.History, 3)
	require.Equal(t, "2026-01", got.History[0].Month)
	require.Equal(t, "2026-03", got.History[2].Month)
	require.True(t, got.NextMonth.Equal(decimal.RequireFromString("200.00")), got.NextMonth.String())
}

func TestForecastSpendingTrailingWindow(t *testing.T) {
	t.Parallel()

	txns := []*ledger.Transaction{
		txn("Groceries", "-900.00", day(2025, time.December, 10)),
		txn("Groceries", "-100.00", day(2026, time.January, 10)),
		txn("Groceries", "-300.00", day(2026, time.February, 10)),
	}

	// Lookback of 2 ignores December.
	got := ForecastSpending(txns, 2)
	require.True(t, got.NextMonth.Equal(decimal.RequireFromString("200.00")), got.NextMonth.String())
}

func TestForecastSpendingShortHistory(t *testing.T) {
	t.Parallel()

	txns := []*ledger.Transaction{txn("Groceries", "-150.00", day(2026, time.March, 10))}
	got := ForecastSpending(txns, 3)
	require.Len(t, got.History, 1)
	require.True(t, got.NextMonth.Equal(decimal.RequireFromString("150.00")))
}

func TestForecastSpendingEmpty(t *testing.T) {
	t.Parallel()

	got := ForecastSpending(nil, 3)
	require.Empty(t, got.History)
	require.True(t, got.NextMonth.IsZero())
}
