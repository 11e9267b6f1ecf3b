package analyzer

// Jaccard computes |A∩B| / |A∪B|, 0 when both sets are empty.
func Jaccard(a, b map[string]bool) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	inter := intersectionSize(a, b)
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// Containment computes |A∩B| / min(|A|,|B|), 0 when either set is empty.
func Containment(a, b map[string]bool) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := intersectionSize(a, b)
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}
	return float64(inter) / float64(minLen)
}

func intersectionSize(a, b map[string]bool) int {
	small, big := a, b
	if len(b) < len(a) {
		small, big = b, a
	}
	n := 0
	for k := range small {
		if big[k] {
			n++
		}
	}
	return n
}

// HybridSimilarity is max(jaccard, containment) over keyword sets: each
// side's keyword set is built from (title, title, content). The sets hold
// each keyword once, so the repeated title adds no extra weight.
func HybridSimilarity(titleA, contentA, titleB, contentB string) float64 {
	ka := KeywordsFromAll(titleA, titleA, contentA)
	kb := KeywordsFromAll(titleB, titleB, contentB)
	j := Jaccard(ka, kb)
	c := Containment(ka, kb)
	if c > j {
		return c
	}
	return j
}
