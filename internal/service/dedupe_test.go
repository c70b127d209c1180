package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/lushenghe96vt/budgetcore/internal/ledger"
)

func dupTxn(desc, amount string, date time.Time) *ledger.Transaction {
	return &ledger.Transaction{
		DescriptionRaw: desc,
		Amount:         decimal.RequireFromString(amount),
		Date:           date,
	}
}

func TestFindDuplicatesNearIdenticalPair(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC)
	a := dupTxn("STARBUCKS STORE #123 SEATTLE", "-6.45", base)
	b := dupTxn("STARBUCKS STORE #123 SEATTLE WA", "-6.45", base.AddDate(0, 0, 2))
	c := dupTxn("WHOLE FOODS MARKET", "-6.45", base)

	pairs := (&Deduper{}).FindDuplicates([]*ledger.Transaction{a, b, c})
	require.Len(t, pairs, 1)
	require.Same(t, a, pairs[0].A)
	require.Same(t, b, pairs[0].B)
	require.Greater(t, pairs[0].Similarity, 0.6)
}

func TestFindDuplicatesRequiresEqualAmounts(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC)
	a := dupTxn("STARBUCKS STORE #123", "-6.45", base)
	b := dupTxn("STARBUCKS STORE #123", "-6.46", base)

	require.Empty(t, (&Deduper{}).FindDuplicates([]*ledger.Transaction{a, b}))
}

func TestFindDuplicatesRespectsDateWindow(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC)
	a := dupTxn("STARBUCKS STORE #123", "-6.45", base)
	b := dupTxn("STARBUCKS STORE #123", "-6.45", base.AddDate(0, 0, 20))

	require.Empty(t, (&Deduper{}).FindDuplicates([]*ledger.Transaction{a, b}))

	// Wider window picks the pair back up.
	wide := &Deduper{MaxDaysApart: 30}
	require.Len(t, wide.FindDuplicates([]*ledger.Transaction{a, b}), 1)
}

func TestFindDuplicatesDissimilarDescriptions(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC)
	a := dupTxn("STARBUCKS STORE #123", "-6.45", base)
	b := dupTxn("SHELL GAS 9981 PORTLAND", "-6.45", base)

	require.Empty(t, (&Deduper{}).FindDuplicates([]*ledger.Transaction{a, b}))
}
