package match

import "sort"

const (
	// DefaultMinScore is the minimum similarity for a name to be suggested.
	DefaultMinScore = 0.5
	// DefaultMaxSuggestions caps the number of suggestions returned.
	DefaultMaxSuggestions = 3
)

type scored struct {
	name  string
	score float64
}

// Suggest returns up to limit candidates whose similarity to name is at least
// minScore, best first. Ties keep the candidates' input order.
func Suggest(name string, candidates []string, minScore float64, limit int) []string {
	if limit <= 0 {
		limit = DefaultMaxSuggestions
	}

	ranked := make([]scored, 0, len(candidates))

	for _, c := range candidates {
		if c == name {
			continue
		}

		if s := Similarity(name, c); s >= minScore {
			ranked = append(ranked, scored{name: c, score: s})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	out := make([]string, len(ranked))
	for i, r := range ranked {
		out[i] = r.name
	}

	return out
}
