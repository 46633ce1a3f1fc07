package match

import "sort"

// DefaultSuggestThreshold is the minimum similarity for a suggestion.
const DefaultSuggestThreshold = 0.6

// Candidate is a known name scored against an unknown one.
type Candidate struct {
	Name       string
	Normalized string
	Score      float64
}

// CandidateList is a list of candidates, best first once ranked.
type CandidateList []Candidate

// RankNames scores every known name against target and sorts them by score,
// then by name.
func RankNames(target string, names []string) CandidateList {
	candidates := make(CandidateList, 0, len(names))

	for _, name := range names {
		candidates = append(candidates, Candidate{
			Name:       name,
			Normalized: NormalizeField(name),
			Score:      FieldSimilarity(target, name),
		})
	}

	sort.Sort(candidates)

	return candidates
}

// Suggest returns up to n known names that resemble target, best first.
func Suggest(target string, names []string, n int) []string {
	return RankNames(target, names).AboveThreshold(DefaultSuggestThreshold).Top(n).Names()
}

// Len implements sort.Interface.
func (c CandidateList) Len() int { return len(c) }

// Swap implements sort.Interface.
func (c CandidateList) Swap(i, j int) { c[i], c[j] = c[j], c[i] }

// Less implements sort.Interface.
func (c CandidateList) Less(i, j int) bool {
	if c[i].Score != c[j].Score {
		return c[i].Score > c[j].Score
	}

	return c[i].Name < c[j].Name
}

// Top returns the top n candidates.
func (c CandidateList) Top(n int) CandidateList {
	if n >= len(c) {
		return c
	}

	return c[:n]
}

// Best returns the best candidate, or nil if there are none.
func (c CandidateList) Best() *Candidate {
	if len(c) == 0 {
		return nil
	}

	return &c[0]
}

// AboveThreshold returns candidates scoring at least threshold.
func (c CandidateList) AboveThreshold(threshold float64) CandidateList {
	var result CandidateList

	for _, cand := range c {
		if cand.Score >= threshold {
			result = append(result, cand)
		}
	}

	return result
}

// Names returns the candidate names in order.
func (c CandidateList) Names() []string {
	if len(c) == 0 {
		return nil
	}

	names := make([]string, len(c))
	for i, cand := range c {
		names[i] = cand.Name
	}

	return names
}
