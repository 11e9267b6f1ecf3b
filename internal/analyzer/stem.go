package analyzer

import "strings"

// suffixRule is one entry in the stemming cascade: if a word ends with
// Suffix, it is replaced by Replacement. The cascade is evaluated in order;
// the first rule whose suffix matches wins. Ordering is a contract — do not
// reorder without re-checking the fixture mappings in stem_test.go.
type suffixRule struct {
	suffix      string
	replacement string
}

var stemRules = []suffixRule{
	{"ations", ""},
	{"tion", ""},
	{"ment", ""},
	{"ness", ""},
	{"ings", ""},
	{"ally", ""},
	{"ing", ""},
	{"ies", "y"},
	{"ers", "er"},
	{"ted", "t"},
	{"es", ""},
	{"ed", ""},
	{"ly", ""},
	{"s", ""},
}

// Stem applies the deterministic suffix-stripping cascade to a single
// lowercase word. Words of length <=4 are returned unchanged. The "s" rule
// additionally refuses to fire on words ending in "ss" (e.g. "class").
func Stem(word string) string {
	w := strings.ToLower(word)
	if len(w) <= 4 {
		return w
	}
	for _, rule := range stemRules {
		if !strings.HasSuffix(w, rule.suffix) {
			continue
		}
		if rule.suffix == "s" && strings.HasSuffix(w, "ss") {
			continue
		}
		return strings.TrimSuffix(w, rule.suffix) + rule.replacement
	}
	return w
}
