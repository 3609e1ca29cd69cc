package search

import "github.com/katalvlaran/itineria/core"

// UCS runs uniform-cost search: the frontier is a priority queue keyed by the
// accumulated path cost and the goal test happens on pop.
//
// The best known cost of every location generated so far is tracked. A child
// is pushed only if it strictly improves that cost, and a popped entry is
// discarded when its location was already expanded or when a cheaper entry
// for it has since been found (stale entry). UCS is complete and optimal
// (equivalent to Dijkstra) for non-negative weights.
//
// Complexity: Time O((V + E) log E), Memory O(V + E).
func UCS(g *core.Graph, start, goal *core.Location, metric Metric, opts ...Option) (*Node, error) {
	r, err := prepare(g, UniformCost, start, goal, metric, opts)
	if err != nil {
		return nil, err
	}

	return r.run(func() (*Node, error) {
		return r.bestFirst(func(cost float64, _ *core.Location) float64 { return cost })
	})
}

// AStarSearch runs A*: like UCS, but keyed by cost + heuristic estimate to the
// goal. With an admissible heuristic (the default crow-flies distance under the
// Distance metric) and non-negative weights it is complete and optimal.
func AStarSearch(g *core.Graph, start, goal *core.Location, metric Metric, opts ...Option) (*Node, error) {
	r, err := prepare(g, AStar, start, goal, metric, opts)
	if err != nil {
		return nil, err
	}
	h := r.opts.Heuristic

	return r.run(func() (*Node, error) {
		return r.bestFirst(func(cost float64, loc *core.Location) float64 { return cost + h(loc, r.goal) })
	})
}

// bestFirst is the shared uniform-cost / A* loop; key turns an accumulated
// cost and a location into the frontier priority.
func (r *runner) bestFirst(key func(cost float64, loc *core.Location) float64) (*Node, error) {
	frontier := NewPriorityQueue()
	frontier.Push(newRoot(r.start, key(0, r.start)))
	best := map[*core.Location]float64{r.start: 0}
	explored := make(locationSet, r.g.LocationCount())

	for !frontier.IsEmpty() {
		n := frontier.Pop()
		if explored.has(n.State) || n.Cost > best[n.State] {
			// stale entry
			continue
		}
		if err := r.visit(n); err != nil {
			return nil, err
		}
		if n.State == r.goal {
			return n, nil
		}

		explored.add(n.State)
		for _, adj := range r.g.Neighbours(n.State) {
			if explored.has(adj.Location) {
				continue
			}
			cost := r.cost(n, adj)
			if known, ok := best[adj.Location]; ok && cost >= known {
				continue
			}
			best[adj.Location] = cost
			frontier.Push(newChild(n, adj, cost, key(cost, adj.Location)))
			r.stats.Generated++
		}
		r.observe(frontier)
	}

	return nil, nil
}

// GreedyBestFirst runs greedy best-first search: the frontier is keyed by the
// heuristic estimate alone and the goal test happens on pop.
//
// Locations are skipped once expanded, both on pop and when generating
// children. Thanks to that explored set the search always terminates on a
// finite graph and finds a path whenever one exists, but the path is not
// optimal in general. The returned node's Cost is the actual accumulated cost;
// its Priority holds the heuristic value.
func GreedyBestFirst(g *core.Graph, start, goal *core.Location, metric Metric, opts ...Option) (*Node, error) {
	r, err := prepare(g, Greedy, start, goal, metric, opts)
	if err != nil {
		return nil, err
	}

	return r.run(r.greedy)
}

func (r *runner) greedy() (*Node, error) {
	h := r.opts.Heuristic
	frontier := NewPriorityQueue()
	frontier.Push(newRoot(r.start, h(r.start, r.goal)))
	explored := make(locationSet, r.g.LocationCount())

	for !frontier.IsEmpty() {
		n := frontier.Pop()
		if explored.has(n.State) {
			continue
		}
		if err := r.visit(n); err != nil {
			return nil, err
		}
		if n.State == r.goal {
			return n, nil
		}

		explored.add(n.State)
		for _, adj := range r.g.Neighbours(n.State) {
			if explored.has(adj.Location) {
				continue
			}
			frontier.Push(newChild(n, adj, r.cost(n, adj), h(adj.Location, r.goal)))
			r.stats.Generated++
		}
		r.observe(frontier)
	}

	return nil, nil
}
