package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseKeepsDocumentOrder(t *testing.T) {
	t.Parallel()

	// "Dining" appears first so it must win even though both match.
	cr, err := Parse([]byte(`{
		"Dining": ["starbucks"],
		"Coffee": ["starbucks"]
	}`))
	require.NoError(t, err)
	require.Equal(t, []string{"Dining", "Coffee"}, cr.Categories())

	got, ok := cr.Suggest("Starbucks Coffee Co")
	require.True(t, ok)
	require.Equal(t, "Dining", got)
}

func TestSuggestLiteralIsCaseInsensitiveSubstring(t *testing.T) {
	t.Parallel()

	cr, err := Parse([]byte(`{"Groceries": ["whole foods"]}`))
	require.NoError(t, err)

	got, ok := cr.Suggest("WHOLE FOODS MARKET #123")
	require.True(t, ok)
	require.Equal(t, "Groceries", got)

	_, ok = cr.Suggest("TRADER JOES")
	require.False(t, ok)
}

func TestSuggestRegexMarker(t *testing.T) {
	t.Parallel()

	cr, err := Parse([]byte(`{"Transport": ["re:^uber\\b"]}`))
	require.NoError(t, err)

	got, ok := cr.Suggest("UBER TRIP 12345")
	require.True(t, ok)
	require.Equal(t, "Transport", got)

	// Anchored pattern must not match mid-string.
	_, ok = cr.Suggest("SUPER UBER RIDES")
	require.False(t, ok)
}

func TestSuggestLiteralEscapesRegexMeta(t *testing.T) {
	t.Parallel()

	// Without the re: marker metacharacters are literal text; they get
	// scrubbed by normalization on the lookup side, so the pattern
	// simply never matches rather than exploding.
	cr, err := Parse([]byte(`{"Weird": ["a+b"]}`))
	require.NoError(t, err)

	_, ok := cr.Suggest("aab")
	require.False(t, ok)
}

func TestParseRejectsMalformedDocuments(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
	}{
		{"top level array", `["a"]`},
		{"category maps to string", `{"Cat": "starbucks"}`},
		{"pattern is a number", `{"Cat": [42]}`},
		{"invalid regex", `{"Cat": ["re:("]}`},
		{"truncated document", `{"Cat": ["a"]`},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse([]byte(tc.in))
			require.Error(t, err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "rules.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"Dining": ["chipotle"]}`), 0o644))

	cr, err := LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, 1, cr.Len())

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

func TestEmptyNeverMatches(t *testing.T) {
	t.Parallel()

	cr := Empty()
	require.Equal(t, 0, cr.Len())
	_, ok := cr.Suggest("anything at all")
	require.False(t, ok)
}
