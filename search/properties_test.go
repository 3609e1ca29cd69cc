package search_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/itineria/core"
	"github.com/katalvlaran/itineria/heuristic"
	"github.com/katalvlaran/itineria/search"
)

var seeds = []int64{1, 7, 42, 1234}

// TestUniformCost_MatchesFloydWarshall compares UCS against an all-pairs
// reference on random connected graphs, for both metrics.
func TestUniformCost_MatchesFloydWarshall(t *testing.T) {
	for _, seed := range seeds {
		g := randomGraph(t, seed, 18, 30)
		locs := g.Locations()
		for _, metric := range search.Metrics() {
			ref := allPairs(g, metric)
			for i, from := range locs {
				for j, to := range locs {
					n, err := search.UCS(g, from, to, metric)
					require.NoError(t, err)
					requireValidPath(t, n, from, to, metric)
					require.InDelta(t, ref[i][j], n.Cost, 1e-9,
						"seed=%d %v %s→%s", seed, metric, from.Name, to.Name)
				}
			}
		}
	}
}

// TestAStar_OptimalUnderDistance: crow-flies is admissible for Distance, so
// A* must return the uniform-cost optimum.
func TestAStar_OptimalUnderDistance(t *testing.T) {
	for _, seed := range seeds {
		g := randomGraph(t, seed, 18, 30)
		ref := allPairs(g, search.Distance)
		locs := g.Locations()
		for i, from := range locs {
			for j, to := range locs {
				n, err := search.AStarSearch(g, from, to, search.Distance)
				require.NoError(t, err)
				requireValidPath(t, n, from, to, search.Distance)
				require.InDelta(t, ref[i][j], n.Cost, 1e-9, "seed=%d %s→%s", seed, from.Name, to.Name)
			}
		}
	}
}

// TestAStar_TimeBoundHeuristic: the speed-scaled heuristic makes A* optimal
// under Time as well.
func TestAStar_TimeBoundHeuristic(t *testing.T) {
	g := randomGraph(t, 99, 20, 35)
	ref := allPairs(g, search.Time)
	h := heuristic.TimeBound(g)
	locs := g.Locations()
	for i, from := range locs {
		for j, to := range locs {
			n, err := search.AStarSearch(g, from, to, search.Time, search.WithHeuristic(h))
			require.NoError(t, err)
			require.InDelta(t, ref[i][j], n.Cost, 1e-9, "%s→%s", from.Name, to.Name)
		}
	}
}

// TestAStar_ExpandsNoMoreThanUniformCost: a consistent heuristic never widens the search.
func TestAStar_ExpandsNoMoreThanUniformCost(t *testing.T) {
	g := randomGraph(t, 5, 40, 60)
	locs := g.Locations()
	from, to := locs[0], locs[len(locs)-1]

	var ucs, astar search.Stats
	_, err := search.UCS(g, from, to, search.Distance, search.WithStats(&ucs))
	require.NoError(t, err)
	_, err = search.AStarSearch(g, from, to, search.Distance, search.WithStats(&astar))
	require.NoError(t, err)
	assert.LessOrEqual(t, astar.Expanded, ucs.Expanded)
}

// TestIncompleteStrategies_ReachGoalWithValidPath covers BFS, DFS, IDDFS and
// greedy: each must reach every goal of a connected graph with a well-formed
// path that is never cheaper than the optimum.
func TestIncompleteStrategies_ReachGoalWithValidPath(t *testing.T) {
	strategies := []search.Strategy{search.BreadthFirst, search.DepthFirst, search.IterativeDeepening, search.Greedy}
	for _, seed := range seeds {
		g := randomGraph(t, seed, 14, 20)
		ref := allPairs(g, search.Distance)
		locs := g.Locations()
		for _, strategy := range strategies {
			t.Run(fmt.Sprintf("%v/seed=%d", strategy, seed), func(t *testing.T) {
				for i, from := range locs {
					for j, to := range locs {
						n, err := search.Search(g, strategy, from, to, search.Distance, search.WithMaxDepth(len(locs)))
						require.NoError(t, err)
						requireValidPath(t, n, from, to, search.Distance)
						requireSimplePath(t, n)
						require.GreaterOrEqual(t, n.Cost+1e-9, ref[i][j])
					}
				}
			})
		}
	}
}

// TestBreadthFirst_FewestLinks: BFS paths have the minimum number of links.
func TestBreadthFirst_FewestLinks(t *testing.T) {
	g := randomGraph(t, 3, 16, 20)
	locs := g.Locations()
	for _, from := range locs {
		hops := hopCounts(g, from)
		for _, to := range locs {
			n, err := search.BFS(g, from, to, search.Distance)
			require.NoError(t, err)
			require.Equal(t, hops[to], n.Depth, "%s→%s", from.Name, to.Name)
		}
	}
}

// hopCounts is a plain level-order traversal used as reference.
func hopCounts(g *core.Graph, from *core.Location) map[*core.Location]int {
	dist := map[*core.Location]int{from: 0}
	queue := []*core.Location{from}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, adj := range g.Neighbours(cur) {
			if _, ok := dist[adj.Location]; !ok {
				dist[adj.Location] = dist[cur] + 1
				queue = append(queue, adj.Location)
			}
		}
	}

	return dist
}

// TestReachability_TwoComponents: every complete strategy reaches a goal iff it
// lies in the start's component.
func TestReachability_TwoComponents(t *testing.T) {
	g := core.NewGraph()
	// component A: ring 0-1-2-3-0, component B: 10-11
	for i, name := range []string{"A0", "A1", "A2", "A3"} {
		mustLocation(t, g, i, name, 46+0.1*float64(i), 3)
	}
	mustLocation(t, g, 10, "B0", 44, 1)
	mustLocation(t, g, 11, "B1", 44.1, 1)
	mustLink(t, g, 0, 1, 20, 10)
	mustLink(t, g, 1, 2, 20, 10)
	mustLink(t, g, 2, 3, 20, 10)
	mustLink(t, g, 3, 0, 20, 10)
	mustLink(t, g, 10, 11, 20, 10)

	start, _ := g.Location(0)
	inside, _ := g.Location(2)
	outside, _ := g.Location(11)

	for _, strategy := range []search.Strategy{
		search.BreadthFirst, search.DepthFirst, search.UniformCost, search.Greedy, search.AStar,
	} {
		n, err := search.Search(g, strategy, start, inside, search.Distance)
		require.NoError(t, err)
		require.NotNil(t, n, strategy.String())

		n, err = search.Search(g, strategy, start, outside, search.Distance)
		require.NoError(t, err)
		require.Nil(t, n, strategy.String())
	}
}

// TestDepthFirst_CycleSafety runs the depth-first strategies on a ring with a
// pendant goal: both must terminate without repeating a location on the path.
func TestDepthFirst_CycleSafety(t *testing.T) {
	g := core.NewGraph()
	const ring = 8
	for i := 0; i < ring; i++ {
		mustLocation(t, g, i, fmt.Sprintf("C%d", i), 45+0.05*float64(i), 4)
	}
	for i := 0; i < ring; i++ {
		mustLink(t, g, i, (i+1)%ring, 10, 10)
	}
	mustLocation(t, g, 100, "Goal", 46, 4.2)
	mustLink(t, g, 5, 100, 30, 30)

	start, _ := g.Location(0)
	goal, _ := g.Location(100)
	for _, strategy := range []search.Strategy{search.DepthFirst, search.IterativeDeepening} {
		n, err := search.Search(g, strategy, start, goal, search.Distance)
		require.NoError(t, err)
		requireSimplePath(t, n)
		requireValidPath(t, n, start, goal, search.Distance)
	}
}

// TestDepthFirst_DeepChain: the explicit stack copes with long paths.
func TestDepthFirst_DeepChain(t *testing.T) {
	const n = 20000
	g := core.NewGraph()
	for i := 0; i < n; i++ {
		mustLocation(t, g, i, fmt.Sprintf("D%d", i), -80+160*float64(i)/n, 0)
	}
	for i := 1; i < n; i++ {
		mustLink(t, g, i-1, i, 1, 1)
	}
	start, _ := g.Location(0)
	goal, _ := g.Location(n - 1)

	node, err := search.DFS(g, start, goal, search.Time)
	require.NoError(t, err)
	require.Equal(t, n-1, node.Depth)
	require.Equal(t, float64(n-1), node.Cost)
}
