package search_test

import (
	"testing"

	"github.com/katalvlaran/itineria/search"
)

// BenchmarkStrategies runs every strategy between the two ends of a seeded
// random graph of 500 locations.
func BenchmarkStrategies(b *testing.B) {
	g := randomGraph(b, 2024, 500, 1500)
	locs := g.Locations()
	from, to := locs[0], locs[len(locs)-1]

	for _, strategy := range search.Strategies() {
		b.Run(strategy.String(), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_, _ = search.Search(g, strategy, from, to, search.Distance, search.WithMaxDepth(len(locs)))
			}
		})
	}
}
