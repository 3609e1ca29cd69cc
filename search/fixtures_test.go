package search_test

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/itineria/core"
	"github.com/katalvlaran/itineria/heuristic"
	"github.com/katalvlaran/itineria/search"
)

// triangle builds P, Q, R with
//
//	P–Q distance 10, time 5
//	Q–R distance 10, time 20
//	P–R distance 30, time 3
//
// plus an isolated location S. Coordinates are a few km apart so the
// crow-flies estimate stays below every link distance.
func triangle(t testing.TB) (g *core.Graph, p, q, r, s *core.Location) {
	t.Helper()
	g = core.NewGraph()
	p = mustLocation(t, g, 1, "P", 48.00, 2.00)
	q = mustLocation(t, g, 2, "Q", 48.05, 2.05)
	r = mustLocation(t, g, 3, "R", 48.10, 2.10)
	s = mustLocation(t, g, 4, "S", 43.00, 5.00)
	mustLink(t, g, 1, 2, 10, 5)
	mustLink(t, g, 2, 3, 10, 20)
	mustLink(t, g, 1, 3, 30, 3)

	return g, p, q, r, s
}

func mustLocation(t testing.TB, g *core.Graph, id int, name string, lat, lon float64) *core.Location {
	t.Helper()
	loc, err := g.AddLocation(id, name, lat, lon)
	require.NoError(t, err)

	return loc
}

func mustLink(t testing.TB, g *core.Graph, a, b int, distance, time float64) {
	t.Helper()
	_, err := g.AddLink(a, b, distance, time)
	require.NoError(t, err)
}

// randomGraph builds a connected graph of n locations inside a 2°×2° box.
// A chain L0-L1-...-L(n-1) guarantees connectivity, then extra random links
// are added. Each link distance is at least the crow-flies distance between its
// endpoints, so the crow-flies heuristic stays admissible and consistent.
// The generator is seeded so every run builds the same graph.
func randomGraph(t testing.TB, seed int64, n, extra int) *core.Graph {
	t.Helper()
	r := rand.New(rand.NewSource(seed))
	g := core.NewGraph()
	for i := 0; i < n; i++ {
		mustLocation(t, g, i, fmt.Sprintf("L%d", i), 45+2*r.Float64(), 2+2*r.Float64())
	}

	link := func(a, b int) bool {
		la, _ := g.Location(a)
		lb, _ := g.Location(b)
		d := heuristic.CrowFlies(la, lb) * (1 + r.Float64())
		tm := 1 + float64(r.Intn(120))
		_, err := g.AddLink(a, b, d, tm)

		return err == nil
	}

	for i := 1; i < n; i++ {
		require.True(t, link(i-1, i))
	}
	for added := 0; added < extra; {
		a, b := r.Intn(n), r.Intn(n)
		if a == b {
			continue
		}
		// duplicates are rejected by core.Graph and simply retried
		if link(a, b) {
			added++
		}
	}

	return g
}

// allPairs computes reference shortest-path costs with Floyd-Warshall.
// Loop order is fixed (k → i → j); +Inf marks "no path".
func allPairs(g *core.Graph, metric search.Metric) [][]float64 {
	locs := g.Locations()
	n := len(locs)
	pos := make(map[*core.Location]int, n)
	for i, l := range locs {
		pos[l] = i
	}

	d := make([][]float64, n)
	for i := range d {
		d[i] = make([]float64, n)
		for j := range d[i] {
			if i != j {
				d[i][j] = math.Inf(1)
			}
		}
	}
	for _, l := range g.Links() {
		a, b := pos[l.A], pos[l.B]
		w := metric.Weight(l)
		if w < d[a][b] {
			d[a][b], d[b][a] = w, w
		}
	}

	for k := 0; k < n; k++ {
		for i := 0; i < n; i++ {
			if math.IsInf(d[i][k], 1) {
				continue
			}
			for j := 0; j < n; j++ {
				if cand := d[i][k] + d[k][j]; cand < d[i][j] {
					d[i][j] = cand
				}
			}
		}
	}

	return d
}

// requireValidPath checks that the links of goal chain start→…→goal and that
// their summed weights equal the reported cost.
func requireValidPath(t testing.TB, goal *search.Node, start, end *core.Location, metric search.Metric) {
	t.Helper()
	require.NotNil(t, goal)
	links, cost := search.ReconstructPath(goal)
	require.Len(t, links, goal.Depth)

	cur := start
	sum := 0.0
	for i, l := range links {
		next := l.Other(cur)
		require.NotNil(t, next, "link %d (%v) does not touch %s", i, l, cur.Name)
		sum += metric.Weight(l)
		cur = next
	}
	require.Same(t, end, cur, "path must end at the goal")
	require.InDelta(t, sum, cost, 1e-9)
	require.Equal(t, goal.Cost, cost)
}

// requireSimplePath checks that no location repeats along the path of goal.
func requireSimplePath(t testing.TB, goal *search.Node) {
	t.Helper()
	seen := make(map[*core.Location]bool)
	for _, l := range goal.Path() {
		require.False(t, seen[l], "location %s visited twice on the path", l.Name)
		seen[l] = true
	}
}

func names(locs []*core.Location) []string {
	out := make([]string, len(locs))
	for i, l := range locs {
		out[i] = l.Name
	}

	return out
}
