package analyzer

import (
	"regexp"
	"strings"
)

var nonWordChar = regexp.MustCompile(`[^a-z0-9 _-]`)

// Keywords extracts the stemmed keyword set from free text: lowercase,
// replace anything outside [a-z0-9 _-] with a space, split on whitespace,
// drop tokens of length <=2 and stopwords, keep hyphenated compounds but
// also emit each hyphen-separated part that independently passes the same
// filters, then stem every surviving token.
func Keywords(text string) map[string]bool {
	lower := strings.ToLower(text)
	cleaned := nonWordChar.ReplaceAllString(lower, " ")
	tokens := strings.Fields(cleaned)

	out := make(map[string]bool)
	for _, tok := range tokens {
		addToken(out, tok)
		if strings.Contains(tok, "-") {
			for _, part := range strings.Split(tok, "-") {
				addToken(out, part)
			}
		}
	}
	return out
}

func addToken(out map[string]bool, tok string) {
	if len(tok) <= 2 || isStopword(tok) {
		return
	}
	out[Stem(tok)] = true
}

// KeywordsFromAll builds the keyword set over the concatenation of several
// text fields. The result is a set, so a field the caller repeats (as
// dedup/conflict scoring does with the title) adds no extra weight.
func KeywordsFromAll(parts ...string) map[string]bool {
	return Keywords(strings.Join(parts, " "))
}
