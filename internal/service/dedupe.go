package service

import (
	"strings"
	"time"

	"github.com/agnivade/levenshtein"

	"github.com/lushenghe96vt/budgetcore/internal/ledger"
)

// Deduper finds probable duplicate pairs inside an in-memory ledger,
// typically after overlapping statement uploads. Candidates must have
// equal amounts, dates within MaxDaysApart, and raw descriptions whose
// edit-distance ratio stays under MaxDistanceRatio.
type Deduper struct {
	MaxDaysApart     int     // default 7
	MaxDistanceRatio float64 // default 0.4
}

// DuplicatePair is one suspected duplicate, with a 0..1 similarity.
type DuplicatePair struct {
	A          *ledger.Transaction
	B          *ledger.Transaction
	Similarity float64
}

// FindDuplicates scans all pairs. Quadratic, which is fine for a
// single user's ledger.
func (d *Deduper) FindDuplicates(txns []*ledger.Transaction) []DuplicatePair {
	maxDays := d.MaxDaysApart
	if maxDays <= 0 {
		maxDays = 7
	}
	maxRatio := d.MaxDistanceRatio
	if maxRatio <= 0 {
		maxRatio = 0.4
	}

	var pairs []DuplicatePair
	for i := 0; i < len(txns); i++ {
		for j := i + 1; j < len(txns); j++ {
			a, b := txns[i], txns[j]
			if !a.Amount.Equal(b.Amount) {
				continue
			}
			if daysApart(a.Date, b.Date) > maxDays {
				continue
			}
			if ratio := distanceRatio(a.DescriptionRaw, b.DescriptionRaw); ratio >= maxRatio {
				continue
			}
			pairs = append(pairs, DuplicatePair{A: a, B: b, Similarity: similarity(a.DescriptionRaw, b.DescriptionRaw)})
		}
	}
	return pairs
}

func distanceRatio(a, b string) float64 {
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	if maxLen == 0 {
		return 0
	}
	dist := levenshtein.ComputeDistance(strings.ToUpper(a), strings.ToUpper(b))
	return float64(dist) / float64(maxLen)
}

func similarity(a, b string) float64 {
	return 1 - distanceRatio(a, b)
}

func daysApart(a, b time.Time) int {
	d := a.Sub(b)
	if d < 0 {
		d = -d
	}
	return int(d.Hours() / 24)
}
