package match

// Levenshtein computes the edit distance between two strings, counted in
// runes: the minimum number of single-rune insertions, deletions or
// substitutions that turn a into b.
func Levenshtein(a, b string) int {
	if a == b {
		return 0
	}

	ra, rb := []rune(a), []rune(b)

	if len(ra) == 0 {
		return len(rb)
	}

	if len(rb) == 0 {
		return len(ra)
	}

	// keep the rows as short as the shorter string
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}

	prev := make([]int, len(ra)+1)
	curr := make([]int, len(ra)+1)

	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(rb); j++ {
		curr[0] = j

		for i := 1; i <= len(ra); i++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}

			curr[i] = min(prev[i]+1, curr[i-1]+1, prev[i-1]+cost)
		}

		prev, curr = curr, prev
	}

	return prev[len(ra)]
}

// Similarity turns the edit distance into a score between 0 and 1, where 1
// means identical: 1 - distance / max(len(a), len(b)).
func Similarity(a, b string) float64 {
	la, lb := len([]rune(a)), len([]rune(b))
	if la == 0 && lb == 0 {
		return 1.0
	}

	return 1.0 - float64(Levenshtein(a, b))/float64(max(la, lb))
}

// FieldSimilarity compares two field names after normalization. Names that
// only differ by a known affix ("shorttitle" and "title") are scored on the
// stripped forms as well, and the better score wins.
func FieldSimilarity(a, b string) float64 {
	na, nb := NormalizeField(a), NormalizeField(b)
	score := Similarity(na, nb)

	if stripped := Similarity(StripAffixes(na), StripAffixes(nb)); stripped > score {
		// an affix is still a real difference
		score = max(score, stripped-affixPenalty)
	}

	return score
}

const affixPenalty = 0.1
