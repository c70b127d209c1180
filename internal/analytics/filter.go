package analytics

import (
	"strconv"
	"strings"
	"time"

	"github.com/lushenghe96vt/budgetcore/internal/ledger"
)

// Filter kinds accepted by the Kind/Value form.
const (
	FilterKindDate      = "date"
	FilterKindStatement = "statement"
)

// Filter selects transactions for a period. Three equivalent forms are
// accepted: Kind+Value ("date" with "YYYY-MM", or "statement" with a
// label), explicit Year+Month, or an explicit StatementMonth label.
// The zero Filter selects everything ("all time").
type Filter struct {
	Kind  string
	Value string

	Year  int
	Month time.Month

	StatementMonth string
}

// IsZero reports whether the filter selects all time.
func (f Filter) IsZero() bool {
	return f.Kind == "" && f.Value == "" && f.Year == 0 && f.Month == 0 && f.StatementMonth == ""
}

// Apply narrows txns to the filter's period. The input is returned
// unchanged for the zero filter, and an unparseable date Value is
// ignored rather than treated as matching nothing.
func (f Filter) Apply(txns []*ledger.Transaction) []*ledger.Transaction {
	if f.IsZero() {
		return txns
	}

	out := txns
	switch {
	case f.Kind == FilterKindDate && f.Value != "":
		if year, month, ok := parseMonthValue(f.Value); ok {
			out = filterYearMonth(out, year, month)
		}
	case f.Kind == FilterKindStatement && f.Value != "":
		out = filterStatement(out, f.Value)
	}

	if f.Year != 0 && f.Month != 0 {
		out = filterYearMonth(out, f.Year, f.Month)
	}
	if f.StatementMonth != "" {
		out = filterStatement(out, f.StatementMonth)
	}
	return out
}

func filterYearMonth(txns []*ledger.Transaction, year int, month time.Month) []*ledger.Transaction {
	out := make([]*ledger.Transaction, 0, len(txns))
	for _, t := range txns {
		if t.Date.IsZero() {
			continue
		}
		if t.Date.Year() == year && t.Date.Month() == month {
			out = append(out, t)
		}
	}
	return out
}

func filterStatement(txns []*ledger.Transaction, label string) []*ledger.Transaction {
	out := make([]*ledger.Transaction, 0, len(txns))
	for _, t := range txns {
		if t.StatementMonth == label {
			out = append(out, t)
		}
	}
	return out
}

// ParseMonthFilter builds a date filter from a "YYYY-MM" string.
func ParseMonthFilter(value string) (Filter, bool) {
	year, month, ok := parseMonthValue(value)
	if !ok {
		return Filter{}, false
	}
	return Filter{Year: year, Month: month}, true
}

func parseMonthValue(v string) (int, time.Month, bool) {
	parts := strings.SplitN(v, "-", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return 0, 0, false
	}
	return year, time.Month(month), true
}
