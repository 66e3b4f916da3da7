package match

import (
	"sort"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

// Match is one scored candidate, score 0-100.
type Match struct {
	Candidate string
	Score     int
}

// Ranker scores a query against a candidate set.
type Ranker interface {
	// Rank returns all candidates ordered by descending score.
	Rank(query string, candidates []string) []Match
}

// WRatio ranks with the weighted-ratio metric, which is insensitive to
// word order and tolerant of partial overlap.
type WRatio struct{}

func NewWRatio() WRatio {
	return WRatio{}
}

func (WRatio) Rank(query string, candidates []string) []Match {
	out := make([]Match, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, Match{Candidate: c, Score: fuzzy.WRatio(query, c)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

// Best is a convenience for callers that only need the top match.
func Best(r Ranker, query string, candidates []string) (Match, bool) {
	ranked := r.Rank(query, candidates)
	if len(ranked) == 0 {
		return Match{}, false
	}
	return ranked[0], true
}
