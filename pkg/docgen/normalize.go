package docgen

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// Canonical severities accepted by the document generator.
const (
	SeverityMild     = "mild"
	SeverityModerate = "moderate"
	SeveritySevere   = "severe"
)

var severitySynonyms = map[string]string{
	SeverityMild:     SeverityMild,
	SeverityModerate: SeverityModerate,
	SeveritySevere:   SeveritySevere,
	"low":            SeverityMild,
	"medium":         SeverityModerate,
	"high":           SeveritySevere,
	"critical":       SeveritySevere,
}

// NormalizeSeverity maps UI synonyms onto mild/moderate/severe. Empty input
// yields ("", true); unknown values yield ("", false).
func NormalizeSeverity(raw string) (string, bool) {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" {
		return "", true
	}
	canonical, ok := severitySynonyms[trimmed]
	return canonical, ok
}

// Severities lists the accepted severity spellings, canonical first.
func Severities() []string {
	return []string{SeverityMild, SeverityModerate, SeveritySevere, "low", "medium", "high", "critical"}
}

// NormalizeName lower-cases s and drops every non-letter rune, so
// "Rats / Mice" and "rats-mice" both become "ratsmice".
func NormalizeName(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// namesMatch applies bidirectional substring containment on normalized names.
func namesMatch(entry, option string) bool {
	if entry == "" || option == "" {
		return false
	}
	return strings.Contains(entry, option) || strings.Contains(option, entry)
}

// truthy accepts JSON booleans and the usual checkbox spellings.
func truthy(v interface{}) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "yes", "on", "1":
			return true
		}
	case float64:
		return t == 1
	case int:
		return t == 1
	case json.Number:
		return t.String() == "1"
	}
	return false
}

// text returns a trimmed string for scalar values and "" otherwise.
func text(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	case float64, int, int64:
		return fmt.Sprint(t)
	case fmt.Stringer:
		return strings.TrimSpace(t.String())
	}
	return ""
}

// list returns the string entries of an array value. A bare string counts
// as a single entry; non-string elements are skipped.
func list(v interface{}) []string {
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		if strings.TrimSpace(t) == "" {
			return nil
		}
		return []string{t}
	case []string:
		return t
	case []interface{}:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
