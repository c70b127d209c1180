package subscription

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lushenghe96vt/budgetcore/internal/ledger"
)

// Keyword vocabulary for the description signal: known recurring
// brands plus generic subscription wording.
var keywordVocab = []string{
	"subscription", "recurring", "monthly",
	"netflix", "spotify", "amazon prime", "disney", "hulu",
	"gym", "membership", "premium", "pro", "plus",
}

const recurrenceWindowDays = 90

var oneCent = decimal.New(1, -2)

// Canonical interval lengths in days.
const (
	monthlyDays = 30
	weeklyDays  = 7
	annualDays  = 365
)

// DetectAndAnnotate flags likely-recurring transactions and writes the
// subscription fields in place. Repeated calls on unchanged input
// yield identical annotations; fields on transactions that are no
// longer flagged are cleared first so a shrinking ledger does not
// leave stale due dates behind.
func DetectAndAnnotate(txns []*ledger.Transaction) {
	flagged := make(map[*ledger.Transaction]bool, len(txns))
	for _, t := range txns {
		if hasSubscriptionWording(t) {
			flagged[t] = true
			continue
		}
		// A recurrence match flags both ends of the pair, so the first
		// charge of a series is annotated along with its repeats.
		for _, partner := range recurrencePartners(t, txns) {
			flagged[t] = true
			flagged[partner] = true
		}
	}

	// Reset pass: anything not flagged this run loses its annotations.
	for _, t := range txns {
		if flagged[t] {
			continue
		}
		t.IsSubscription = false
		t.NextDueDate = nil
		t.RenewalIntervalType = ""
		t.CustomIntervalDays = 0
		t.AlertSent = false
	}

	groups := make(map[string][]*ledger.Transaction)
	for t := range flagged {
		t.IsSubscription = true
		key, ok := groupKey(t)
		if !ok {
			// No usable merchant identity; flagged but no projection.
			t.NextDueDate = nil
			continue
		}
		groups[key] = append(groups[key], t)
	}

	for _, group := range groups {
		annotateGroup(group)
	}
}

func hasSubscriptionWording(t *ledger.Transaction) bool {
	if strings.Contains(strings.ToLower(t.Category), "subscription") {
		return true
	}
	desc := strings.ToLower(t.Description)
	for _, kw := range keywordVocab {
		if strings.Contains(desc, kw) {
			return true
		}
	}
	return false
}

// recurrencePartners finds earlier outflows with the same description
// and an amount within one cent, inside a trailing 90-day window.
func recurrencePartners(t *ledger.Transaction, all []*ledger.Transaction) []*ledger.Transaction {
	if t.Amount.Sign() >= 0 {
		return nil
	}
	cutoff := t.Date.AddDate(0, 0, -recurrenceWindowDays)
	var partners []*ledger.Transaction
	for _, other := range all {
		if other == t {
			continue
		}
		if other.Date.Before(cutoff) || !other.Date.Before(t.Date) {
			continue
		}
		if other.Description != t.Description {
			continue
		}
		if other.Amount.Sub(t.Amount).Abs().LessThan(oneCent) {
			partners = append(partners, other)
		}
	}
	return partners
}

// groupKey identifies a recurring series: merchant (or description as
// fallback) plus amount to the cent.
func groupKey(t *ledger.Transaction) (string, bool) {
	name := strings.ToLower(strings.TrimSpace(t.Merchant))
	if name == "" {
		name = strings.ToLower(strings.TrimSpace(t.Description))
	}
	if name == "" {
		return "", false
	}
	return name + "|" + t.Amount.StringFixed(2), true
}

func annotateGroup(group []*ledger.Transaction) {
	sortByDate(group)
	intervalType, canonicalDays := bucketInterval(estimateIntervalDays(group))
	for _, t := range group {
		t.RenewalIntervalType = intervalType
		t.CustomIntervalDays = canonicalDays
		due := t.Date.AddDate(0, 0, canonicalDays)
		t.NextDueDate = &due
	}
}

// estimateIntervalDays averages the positive day-gaps between
// consecutive dated members, defaulting to 30 when there is not
// enough history to estimate from.
func estimateIntervalDays(sorted []*ledger.Transaction) float64 {
	var dated []*ledger.Transaction
	for _, t := range sorted {
		if !t.Date.IsZero() {
			dated = append(dated, t)
		}
	}
	if len(dated) < 2 {
		return monthlyDays
	}
	var total float64
	var n int
	for i := 1; i < len(dated); i++ {
		gap := dated[i].Date.Sub(dated[i-1].Date).Hours() / 24
		if gap > 0 {
			total += gap
			n++
		}
	}
	if n == 0 {
		return monthlyDays
	}
	return total / float64(n)
}

// bucketInterval snaps an estimated gap onto a canonical renewal
// interval. Tolerance windows absorb month-length jitter; first match
// wins.
func bucketInterval(avgDays float64) (string, int) {
	switch {
	case avgDays >= 25 && avgDays <= 35:
		return ledger.IntervalMonthly, monthlyDays
	case avgDays >= 6 && avgDays <= 8:
		return ledger.IntervalWeekly, weeklyDays
	case avgDays >= 350 && avgDays <= 380:
		return ledger.IntervalAnnual, annualDays
	default:
		days := int(math.Round(avgDays))
		if days < 1 {
			days = 1
		}
		return ledger.IntervalCustomDays, days
	}
}

func sortByDate(txns []*ledger.Transaction) {
	sort.Slice(txns, func(i, j int) bool { return txns[i].Date.Before(txns[j].Date) })
}

// NextDueWithin lists flagged subscriptions whose projected due date
// falls inside the coming horizon, for renewal alerts.
func NextDueWithin(txns []*ledger.Transaction, now time.Time, horizon time.Duration) []*ledger.Transaction {
	var due []*ledger.Transaction
	limit := now.Add(horizon)
	for _, t := range txns {
		if !t.IsSubscription || t.NextDueDate == nil {
			continue
		}
		if t.NextDueDate.After(now) && !t.NextDueDate.After(limit) {
			due = append(due, t)
		}
	}
	sortByDueDate(due)
	return due
}

func sortByDueDate(txns []*ledger.Transaction) {
	sort.Slice(txns, func(i, j int) bool { return txns[i].NextDueDate.Before(*txns[j].NextDueDate) })
}
