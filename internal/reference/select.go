package reference

import (
	"sort"
	"strings"
)

// Select returns up to k sections ranked by how many terms they mention,
// case-insensitively. Ties keep document order. When no term matches
// anything, the first k sections are returned.
func Select(sections []Section, terms []string, k int) []Section {
	if k <= 0 || len(sections) == 0 {
		return nil
	}
	if k > len(sections) {
		k = len(sections)
	}
	type scored struct {
		idx   int
		score int
	}
	ranked := make([]scored, 0, len(sections))
	for i, s := range sections {
		lower := strings.ToLower(s.Text)
		n := 0
		for _, t := range terms {
			if t != "" && strings.Contains(lower, strings.ToLower(t)) {
				n++
			}
		}
		ranked = append(ranked, scored{idx: i, score: n})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	var out []Section
	for _, r := range ranked[:k] {
		if r.score > 0 {
			out = append(out, sections[r.idx])
		}
	}
	if len(out) == 0 {
		return append([]Section(nil), sections[:k]...)
	}
	return out
}
