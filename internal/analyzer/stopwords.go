package analyzer

// stopwords is the fixed set of common English words excluded from keyword
// extraction. Kept as a map literal for O(1) membership tests, mirroring
// the regex-registry style used elsewhere in this codebase: the list is
// data, not logic.
var stopwords = map[string]bool{
	"the": true, "a": true, "an": true, "is": true, "are": true, "was": true, "were": true,
	"be": true, "been": true, "being": true, "have": true, "has": true, "had": true,
	"do": true, "does": true, "did": true, "will": true, "would": true, "could": true,
	"should": true, "may": true, "might": true, "shall": true, "can": true, "to": true,
	"of": true, "in": true, "for": true, "on": true, "with": true, "at": true, "by": true,
	"from": true, "as": true, "into": true, "through": true, "during": true, "before": true,
	"after": true, "and": true, "but": true, "or": true, "nor": true, "not": true, "so": true,
	"yet": true, "both": true, "either": true, "neither": true, "each": true, "every": true,
	"all": true, "any": true, "few": true, "more": true, "most": true, "other": true,
	"some": true, "such": true, "no": true, "only": true, "own": true, "same": true,
	"than": true, "too": true, "very": true, "just": true, "because": true, "if": true,
	"when": true, "where": true, "how": true, "what": true, "which": true, "who": true,
	"whom": true, "this": true, "that": true, "these": true, "those": true, "it": true,
	"its": true, "i": true, "me": true, "my": true, "we": true, "our": true, "you": true,
	"your": true, "he": true, "him": true, "his": true, "she": true, "her": true,
	"they": true, "them": true, "their": true, "about": true, "up": true, "out": true,
	"then": true, "also": true, "use": true, "used": true, "using": true,
}

func isStopword(w string) bool {
	return stopwords[w]
}
