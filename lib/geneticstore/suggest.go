package geneticstore

import (
	"sort"

	"straindex-backend/lib/textutil"

	"github.com/antzucaro/matchr"
)

// similarity floor below which a strain is not worth suggesting
const suggestThreshold = 0.82

func suggestFromIndex(index *Index, name string, max int) []string {
	if max <= 0 {
		max = 3
	}
	query := textutil.Slug(name)
	if query == "" {
		return nil
	}

	type scored struct {
		name  string
		score float64
	}
	var candidates []scored
	for slug, entry := range index.Strains {
		score := matchr.JaroWinkler(query, slug, false)
		if score >= suggestThreshold {
			candidates = append(candidates, scored{name: entry.Name, score: score})
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].name < candidates[j].name
	})

	if len(candidates) > max {
		candidates = candidates[:max]
	}
	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = c.name
	}
	return out
}
