package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lushenghe96vt/budgetcore/internal/ledger"
)

// LimitStatus reports spending against an optional limit. UsedPercent
// is deliberately uncapped so callers can see how far over budget the
// period ran; a nil limit yields the neutral result rather than an
// error.
type LimitStatus struct {
	Spent       decimal.Decimal
	Limit       *decimal.Decimal
	Remaining   *decimal.Decimal
	UsedPercent int64
	OverLimit   bool
}

// CheckSpendingLimit evaluates total spending in txns (pre-filter to a
// period first) against limit.
func CheckSpendingLimit(txns []*ledger.Transaction, limit *decimal.Decimal) LimitStatus {
	spent := TotalSpending(txns)
	if limit == nil {
		return LimitStatus{Spent: spent}
	}
	remaining := limit.Sub(spent)
	return LimitStatus{
		Spent:       spent,
		Limit:       limit,
		Remaining:   &remaining,
		UsedPercent: percentOf(spent, *limit),
		OverLimit:   spent.GreaterThan(*limit),
	}
}

// GoalStatus reports saving progress against an optional goal.
// ProgressPercent is capped at 100 for display; MetGoal carries the
// uncapped comparison.
type GoalStatus struct {
	Saved           decimal.Decimal
	Goal            *decimal.Decimal
	ProgressPercent int64
	MetGoal         bool
}

// CheckSavingsGoal evaluates net balance in txns against goal.
func CheckSavingsGoal(txns []*ledger.Transaction, goal *decimal.Decimal) GoalStatus {
	saved := NetBalance(txns)
	if goal == nil {
		return GoalStatus{Saved: saved}
	}
	progress := percentOf(saved, *goal)
	if progress > 100 {
		progress = 100
	}
	return GoalStatus{
		Saved:           saved,
		Goal:            goal,
		ProgressPercent: progress,
		MetGoal:         saved.GreaterThanOrEqual(*goal),
	}
}

// CategoryLimitStatus reports one category's spending against its
// limit. UsedPercent follows the same uncapped policy as the overall
// limit check.
type CategoryLimitStatus struct {
	Category    string
	Limit       decimal.Decimal
	Spent       decimal.Decimal
	Remaining   decimal.Decimal
	UsedPercent int64
	OverLimit   bool
}

// PerCategoryLimits checks spending per category against the supplied
// limits, sorted by category name for stable output. Categories with
// no spending report zero spent.
func PerCategoryLimits(txns []*ledger.Transaction, limits map[string]decimal.Decimal) []CategoryLimitStatus {
	spending := SpendingByCategory(txns)

	out := make([]CategoryLimitStatus, 0, len(limits))
	for category, limit := range limits {
		spent := spending[category]
		out = append(out, CategoryLimitStatus{
			Category:    category,
			Limit:       limit,
			Spent:       spent,
			Remaining:   limit.Sub(spent),
			UsedPercent: percentOf(spent, limit),
			OverLimit:   spent.GreaterThan(limit),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}

// GoalStreak counts consecutive months, newest first, whose net
// balance met the savings goal. The walk starts at the most recent
// month with data and stops at the first month that misses the goal
// or has no transactions. A nil or non-positive goal yields zero.
func GoalStreak(txns []*ledger.Transaction, goal *decimal.Decimal) int {
	if goal == nil || goal.Sign() <= 0 {
		return 0
	}

	groups := GroupByMonth(txns)
	if len(groups) == 0 {
		return 0
	}

	nets := make(map[string]decimal.Decimal, len(groups))
	latest := ""
	for key, members := range groups {
		nets[key] = NetBalance(members)
		if key > latest {
			latest = key
		}
	}

	year, month := splitMonthKey(latest)
	streak := 0
	for {
		key := fmt.Sprintf("%04d-%02d", year, month)
		net, ok := nets[key]
		if !ok || net.LessThan(*goal) {
			break
		}
		streak++
		if month == 1 {
			year, month = year-1, 12
		} else {
			month--
		}
	}
	return streak
}

func splitMonthKey(key string) (int, int) {
	t, err := time.Parse(monthKeyLayout, key)
	if err != nil {
		return 0, 0
	}
	return t.Year(), int(t.Month())
}

// percentOf truncates numerator/denominator to a whole percentage,
// returning zero for a zero or negative denominator.
func percentOf(numerator, denominator decimal.Decimal) int64 {
	if denominator.Sign() <= 0 {
		return 0
	}
	return numerator.Div(denominator).Mul(hundred).IntPart()
}
