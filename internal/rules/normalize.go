package rules

import (
	"regexp"
	"strings"
)

// Phrases banks prepend to card transactions. Removed literally before
// any pattern matching; order within the list does not matter because
// each is substituted independently.
var boilerFragments = []string{
	"purchase authorized", "purchase auth", "pos purchase",
	"debit card purchase", "debit purchase", "card purchase",
	"signature purchase", "contactless",
	"recurring payment authorized", "recurring payment",
	"authorization", "authorized",
	"atm withdrawal", "non-wf atm", "withdrawal authorized",
	"online transfer", "internal transfer",
	"posted on", "post date",
}

var (
	dateRE    = regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}(?:[/-]\d{2,4})?\b`)
	cardRE    = regexp.MustCompile(`\b(?:card|debit)\s*\d{2,6}\b`)
	numBlobRE = regexp.MustCompile(`\b\d{6,}\b`)
	suffixRE  = regexp.MustCompile(`\b(?:llc|inc|co|corp|ltd|llp|plc)\b`)
	punctRE   = regexp.MustCompile(`[^a-z0-9\s&'-]+`)
	spaceRE   = regexp.MustCompile(`\s+`)
)

// Normalize reduces a raw bank description to a canonical matching
// string. The steps run in a fixed order: lowering first so the
// literal fragment substitution hits, digit scrubbing before
// punctuation stripping so date and card shapes are still intact when
// their patterns run. The output is only ever used for matching; the
// raw description stays on the transaction.
func Normalize(raw string) string {
	s := strings.ToLower(raw)
	for _, frag := range boilerFragments {
		s = strings.ReplaceAll(s, frag, " ")
	}
	s = dateRE.ReplaceAllString(s, " ")
	s = cardRE.ReplaceAllString(s, " ")
	s = numBlobRE.ReplaceAllString(s, " ")
	s = punctRE.ReplaceAllString(s, " ")
	s = suffixRE.ReplaceAllString(s, " ")
	return strings.TrimSpace(spaceRE.ReplaceAllString(s, " "))
}
