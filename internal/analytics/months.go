package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lushenghe96vt/budgetcore/internal/ledger"
)

const monthKeyLayout = "2006-01"

// MonthKey formats a calendar month grouping key ("YYYY-MM").
func MonthKey(t time.Time) string { return t.Format(monthKeyLayout) }

// GroupByMonth buckets transactions by calendar month of their date.
// Transactions without a valid date are omitted; partial data must not
// abort a whole-ledger pass.
func GroupByMonth(txns []*ledger.Transaction) map[string][]*ledger.Transaction {
	groups := make(map[string][]*ledger.Transaction)
	for _, t := range txns {
		if t.Date.IsZero() {
			continue
		}
		key := MonthKey(t.Date)
		groups[key] = append(groups[key], t)
	}
	return groups
}

// MonthTrend is one month's income/spending/net row.
type MonthTrend struct {
	Month    string
	Income   decimal.Decimal
	Spending decimal.Decimal
	Net      decimal.Decimal
}

// MonthlyTrends computes per-month income, spending and net balance,
// most recent month first.
func MonthlyTrends(txns []*ledger.Transaction) []MonthTrend {
	groups := GroupByMonth(txns)
	trends := make([]MonthTrend, 0, len(groups))
	for month, members := range groups {
		income := TotalIncome(members)
		spending := TotalSpending(members)
		trends = append(trends, MonthTrend{
			Month:    month,
			Income:   income,
			Spending: spending,
			Net:      income.Sub(spending),
		})
	}
	sort.Slice(trends, func(i, j int) bool { return trends[i].Month > trends[j].Month })
	return trends
}

// MonthOption is a selectable period for the presentation layer.
type MonthOption struct {
	Label  string
	Filter Filter
}

// AvailableMonths lists the filter options present in the ledger:
// "All Time" first, then calendar months newest-first, then statement
// labels newest-first.
func AvailableMonths(txns []*ledger.Transaction) []MonthOption {
	options := []MonthOption{{Label: "All Time"}}

	type dateMonth struct{ key, name string }
	seen := make(map[string]bool)
	var months []dateMonth
	statements := make(map[string]bool)

	for _, t := range txns {
		if !t.Date.IsZero() {
			key := MonthKey(t.Date)
			if !seen[key] {
				seen[key] = true
				months = append(months, dateMonth{key: key, name: t.Date.Format("January 2006")})
			}
		}
		if t.StatementMonth != "" {
			statements[t.StatementMonth] = true
		}
	}

	sort.Slice(months, func(i, j int) bool { return months[i].key > months[j].key })
	for _, m := range months {
		options = append(options, MonthOption{
			Label:  m.name,
			Filter: Filter{Kind: FilterKindDate, Value: m.key},
		})
	}

	labels := make([]string, 0, len(statements))
	for label := range statements {
		labels = append(labels, label)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(labels)))
	for _, label := range labels {
		options = append(options, MonthOption{
			Label:  "Statement: " + label,
			Filter: Filter{Kind: FilterKindStatement, Value: label},
		})
	}
	return options
}

// PeriodSummary aggregates one filtered period.
type PeriodSummary struct {
	Period           string
	TotalIncome      decimal.Decimal
	TotalSpending    decimal.Decimal
	NetBalance       decimal.Decimal
	TransactionCount int
	CategoryCount    int
}

// SummarizePeriod filters txns and returns headline statistics for the
// period.
func SummarizePeriod(txns []*ledger.Transaction, f Filter) PeriodSummary {
	filtered := f.Apply(txns)

	categories := make(map[string]bool)
	for _, t := range filtered {
		if t.Category != "" {
			categories[t.Category] = true
		}
	}

	income := TotalIncome(filtered)
	spending := TotalSpending(filtered)
	return PeriodSummary{
		Period:           periodLabel(f),
		TotalIncome:      income,
		TotalSpending:    spending,
		NetBalance:       income.Sub(spending),
		TransactionCount: len(filtered),
		CategoryCount:    len(categories),
	}
}

func periodLabel(f Filter) string {
	switch {
	case f.StatementMonth != "":
		return "Statement: " + f.StatementMonth
	case f.Kind == FilterKindStatement && f.Value != "":
		return "Statement: " + f.Value
	case f.Year != 0 && f.Month != 0:
		return time.Date(f.Year, f.Month, 1, 0, 0, 0, 0, time.UTC).Format("January 2006")
	case f.Kind == FilterKindDate && f.Value != "":
		if year, month, ok := parseMonthValue(f.Value); ok {
			return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Format("January 2006")
		}
		return f.Value
	default:
		return "All Time"
	}
}
