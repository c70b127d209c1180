package ledger

import "strings"

// SetCategory assigns a category manually. Blank input falls back to
// the uncategorized bucket. When markOverride is true the transaction
// is exempted from later automatic re-categorization.
func SetCategory(t *Transaction, category string, markOverride bool) {
	c := strings.TrimSpace(category)
	if c == "" {
		c = DefaultCategory
	}
	t.Category = c
	if markOverride {
		t.UserOverride = true
	}
}

// SetNotes attaches or replaces free-text notes, trimmed and capped.
func SetNotes(t *Transaction, notes string) {
	n := strings.TrimSpace(notes)
	if len(n) > maxNotesLen {
		n = n[:maxNotesLen]
	}
	t.Notes = n
}
