package ephemeral

import (
	"math"
	"regexp"
	"strings"
)

// model is a tiny, hand-curated TF-IDF logistic regression used as the
// fallback layer when the regex registry found nothing. Its vocabulary and
// weights are a fixed, embedded table rather than a loaded artifact: there
// is no training pipeline in this repository, so the weights were chosen
// to lean positive on words that independently correlate with ephemeral,
// session-scoped language and negative on words that correlate with
// durable architectural/preference language. Loaded once per process and
// memoized via sync.Once (see Classifier).
type model struct {
	version int
	idf     map[string]float64
	weights map[string]float64
	bias    float64
}

var tokenRE = regexp.MustCompile(`[a-z][a-z0-9_]+`)

// defaultModel is version 2: unigram+bigram TF-IDF plus the engineered
// linguistic/topic features described in the registry's sibling doc.
var defaultModel = &model{
	version: 2,
	idf: map[string]float64{
		"currently": 2.1, "trying": 2.0, "todo": 2.3, "investigating": 2.4,
		"broken": 1.9, "temporary": 2.2, "wip": 2.5, "draft": 2.0,
		"probably": 1.8, "maybe": 1.7, "debugging": 2.2, "session": 1.9,
		"today": 1.8, "now": 1.5, "later": 1.6, "fix": 1.4, "bug": 1.4,
		"architecture": 1.2, "convention": 1.2, "pattern": 1.1, "standard": 1.2,
		"always": 1.3, "prefer": 1.3, "policy": 1.4,
	},
	weights: map[string]float64{
		"currently": 1.8, "trying": 1.4, "todo": 2.0, "investigating": 2.2,
		"broken": 1.1, "temporary": 1.9, "wip": 2.1, "draft": 1.3,
		"probably": 1.0, "maybe": 0.9, "debugging": 1.6, "session": 1.2,
		"today": 1.0, "now": 0.6, "later": 0.5, "fix": 0.3, "bug": 0.2,
		"architecture": -1.6, "convention": -1.4, "pattern": -0.8, "standard": -1.2,
		"always": -1.0, "prefer": -1.1, "policy": -1.3,
		"content_short": 0.9, "content_medium": 0.2, "content_long": -0.6,
		"ratio_first_person_plural": -0.4, "ratio_past_tense": 0.6,
		"ratio_prescriptive": -0.9, "ratio_conjunction": 0.1,
		"topic_modules": -0.3, "topic_gotchas": 0.4, "topic_architecture": -1.1,
		"topic_conventions": -1.0, "sentence_proxy": 0.05,
	},
	bias: -1.2,
}

func tokenize(text string) []string {
	return tokenRE.FindAllString(strings.ToLower(text), -1)
}

func bigrams(tokens []string) []string {
	if len(tokens) < 2 {
		return nil
	}
	out := make([]string, 0, len(tokens)-1)
	for i := 0; i < len(tokens)-1; i++ {
		out = append(out, tokens[i]+"_"+tokens[i+1])
	}
	return out
}

// tf computes the double-normalized term frequency: 0.5 + 0.5*(count/max).
func tf(tokens []string) map[string]float64 {
	counts := map[string]int{}
	maxCount := 0
	for _, t := range tokens {
		counts[t]++
		if counts[t] > maxCount {
			maxCount = counts[t]
		}
	}
	out := make(map[string]float64, len(counts))
	if maxCount == 0 {
		return out
	}
	for term, c := range counts {
		out[term] = 0.5 + 0.5*(float64(c)/float64(maxCount))
	}
	return out
}

func ratio(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total) * 10
}

var firstPersonPluralRE = regexp.MustCompile(`\b(we|us|our)\b`)
var pastTenseRE = regexp.MustCompile(`\b\w+ed\b`)
var prescriptiveRE = regexp.MustCompile(`\b(always|never|must|should)\b`)
var conjunctionRE = regexp.MustCompile(`\b(and|but|because|so)\b`)
var sentenceBoundaryRE = regexp.MustCompile(`[.!?]+`)

// engineeredFeatures computes version-2's additional non-bag-of-words
// signals: content-length buckets, linguistic ratios x10, one-hot topic
// encoding, and a sentence-count proxy.
func engineeredFeatures(content, topic string) map[string]float64 {
	f := map[string]float64{}
	n := len(content)
	switch {
	case n < 100:
		f["content_short"] = 1
	case n < 250:
		f["content_medium"] = 1
	default:
		f["content_long"] = 1
	}

	lower := strings.ToLower(content)
	words := strings.Fields(lower)
	total := len(words)
	f["ratio_first_person_plural"] = ratio(len(firstPersonPluralRE.FindAllString(lower, -1)), total)
	f["ratio_past_tense"] = ratio(len(pastTenseRE.FindAllString(lower, -1)), total)
	f["ratio_prescriptive"] = ratio(len(prescriptiveRE.FindAllString(lower, -1)), total)
	f["ratio_conjunction"] = ratio(len(conjunctionRE.FindAllString(lower, -1)), total)

	switch {
	case strings.HasPrefix(topic, "modules/"):
		f["topic_modules"] = 1
	case topic == "gotchas":
		f["topic_gotchas"] = 1
	case topic == "architecture":
		f["topic_architecture"] = 1
	case topic == "conventions":
		f["topic_conventions"] = 1
	}

	f["sentence_proxy"] = float64(len(sentenceBoundaryRE.FindAllString(content, -1)))
	return f
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// score runs the full TF-IDF + engineered-feature logistic regression and
// returns a probability in [0,1].
func (m *model) score(title, content, topic string) float64 {
	tokens := tokenize(title + " " + content)
	terms := append([]string{}, tokens...)
	if m.version >= 2 {
		terms = append(terms, bigrams(tokens)...)
	}
	tfs := tf(terms)

	// Build the TF-IDF vector, L2-normalize it, then dot with weights.
	vec := make(map[string]float64, len(tfs))
	var normSq float64
	for term, f := range tfs {
		idf := m.idf[term]
		if idf == 0 {
			continue
		}
		v := f * idf
		vec[term] = v
		normSq += v * v
	}
	norm := math.Sqrt(normSq)

	var dot float64
	if norm > 0 {
		for term, v := range vec {
			dot += (v / norm) * m.weights[term]
		}
	}

	if m.version >= 2 {
		for feat, v := range engineeredFeatures(content, topic) {
			dot += v * m.weights[feat]
		}
	}

	return sigmoid(dot + m.bias)
}

// classify applies the two-tier threshold: >=0.65 for content <200 chars,
// >=0.55 otherwise.
func (m *model) classify(title, content, topic string) (fired bool, probability float64) {
	p := m.score(title, content, topic)
	threshold := 0.55
	if len(content) < 200 {
		threshold = 0.65
	}
	return p >= threshold, p
}
