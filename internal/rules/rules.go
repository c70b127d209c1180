package rules

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// RegexMarker prefixes patterns that should compile as regular
// expressions instead of literal substrings.
const RegexMarker = "re:"

type ruleEntry struct {
	name     string
	patterns []*regexp.Regexp
}

// CategoryRules is an ordered set of category -> pattern-list pairs.
// Evaluation order is the insertion order of the rule document:
// rule authors list specific categories before general ones and rely
// on the first match winning. Immutable once built, safe for
// concurrent readers.
type CategoryRules struct {
	entries []ruleEntry
}

// Empty returns a ruleset with no categories. Suggest never matches.
func Empty() *CategoryRules { return &CategoryRules{} }

// Load reads a rule document from r and compiles it.
//
// The document is a JSON object of {"Category": ["pattern", ...]}.
// Key order in the document is the evaluation order, so the object is
// walked with a token decoder rather than unmarshalled into a Go map.
func Load(r io.Reader) (*CategoryRules, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("rules: read: %w", err)
	}
	return Parse(data)
}

// LoadFile compiles the rule document at path.
func LoadFile(path string) (*CategoryRules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("rules: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse compiles a rule document held in memory.
func Parse(data []byte) (*CategoryRules, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("rules: parse: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("rules: top level must be an object of {category: [patterns...]}")
	}

	var entries []ruleEntry
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("rules: parse: %w", err)
		}
		category, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("rules: category name must be a string")
		}

		openTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("rules: parse category %q: %w", category, err)
		}
		if d, ok := openTok.(json.Delim); !ok || d != '[' {
			return nil, fmt.Errorf("rules: category %q must map to a list of patterns", category)
		}

		var patterns []*regexp.Regexp
		for dec.More() {
			pTok, err := dec.Token()
			if err != nil {
				return nil, fmt.Errorf("rules: parse category %q: %w", category, err)
			}
			raw, ok := pTok.(string)
			if !ok {
				return nil, fmt.Errorf("rules: pattern in %q must be a string", category)
			}
			re, err := compilePattern(raw)
			if err != nil {
				return nil, fmt.Errorf("rules: category %q: %w", category, err)
			}
			patterns = append(patterns, re)
		}
		if _, err := dec.Token(); err != nil { // closing ]
			return nil, fmt.Errorf("rules: parse category %q: %w", category, err)
		}
		entries = append(entries, ruleEntry{name: category, patterns: patterns})
	}
	if _, err := dec.Token(); err != nil { // closing }
		return nil, fmt.Errorf("rules: parse: %w", err)
	}

	return &CategoryRules{entries: entries}, nil
}

func compilePattern(raw string) (*regexp.Regexp, error) {
	if strings.HasPrefix(raw, RegexMarker) {
		re, err := regexp.Compile("(?i)" + strings.TrimPrefix(raw, RegexMarker))
		if err != nil {
			return nil, fmt.Errorf("invalid regex pattern %q: %w", raw, err)
		}
		return re, nil
	}
	return regexp.MustCompile("(?i)" + regexp.QuoteMeta(raw)), nil
}

// Suggest returns the first category whose any pattern matches the
// normalized description, scanning categories and patterns in rule
// document order. Substring search, not full match.
func (cr *CategoryRules) Suggest(description string) (string, bool) {
	text := Normalize(description)
	for _, e := range cr.entries {
		for _, re := range e.patterns {
			if re.MatchString(text) {
				return e.name, true
			}
		}
	}
	return "", false
}

// Categories lists category names in evaluation order.
func (cr *CategoryRules) Categories() []string {
	out := make([]string, 0, len(cr.entries))
	for _, e := range cr.entries {
		out = append(out, e.name)
	}
	return out
}

// Len reports the number of categories.
func (cr *CategoryRules) Len() int { return len(cr.entries) }
