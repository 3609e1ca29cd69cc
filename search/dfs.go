package search

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/itineria/core"
)

// DFS runs depth-first search from start to goal without a depth bound.
//
// The first unexplored neighbour is always followed before its siblings; the
// goal test happens when a node is visited. Pending nodes live on an explicit
// LIFO stack rather than the goroutine stack, so arbitrarily deep graphs are
// safe. A single explored set spans the whole traversal, which rules out cycles.
//
// DFS is complete on finite graphs and not optimal.
//
// Complexity: Time O(V + E), Memory O(E) for the stack.
func DFS(g *core.Graph, start, goal *core.Location, metric Metric, opts ...Option) (*Node, error) {
	r, err := prepare(g, DepthFirst, start, goal, metric, opts)
	if err != nil {
		return nil, err
	}

	return r.run(func() (*Node, error) {
		n, _, err := r.depthLimited(-1)
		return n, err
	})
}

// IDDFS runs iterative-deepening depth-first search: a depth-bounded DFS is
// repeated with bounds 0, 1, 2, ..., each time with a fresh explored set.
//
// When goal is unreachable the bound grows without end. This is an inherent
// property of the algorithm: callers must impose a ceiling with WithMaxDepth
// (→ ErrDepthLimitReached), WithMaxExpansions (→ ErrBudgetExhausted) or a
// cancellable context.
func IDDFS(g *core.Graph, start, goal *core.Location, metric Metric, opts ...Option) (*Node, error) {
	r, err := prepare(g, IterativeDeepening, start, goal, metric, opts)
	if err != nil {
		return nil, err
	}

	return r.run(r.iddfs)
}

func (r *runner) iddfs() (*Node, error) {
	for depth := 0; ; depth++ {
		if r.opts.MaxDepth > 0 && depth > r.opts.MaxDepth {
			return nil, fmt.Errorf("%w: no path within depth %d", ErrDepthLimitReached, r.opts.MaxDepth)
		}
		r.stats.Iterations = depth + 1

		n, cutoff, err := r.depthLimited(depth)
		if err != nil || n != nil {
			return n, err
		}
		r.log.WithFields(logrus.Fields{"depth": depth, "cutoff": cutoff}).Debug("deepening")
	}
}

// depthLimited performs one depth-first traversal from the start, expanding
// nodes whose depth is below limit (limit < 0 means unbounded). A node at the
// limit is visited and goal-tested but neither expanded nor marked explored.
//
// The traversal order is the one of the recursive formulation: neighbours are
// pushed in reverse so the first one is popped first, and the explored test is
// repeated on pop, i.e. at the moment the recursion would have reached it.
//
// cutoff reports whether some node was left unexpanded because of the limit.
func (r *runner) depthLimited(limit int) (found *Node, cutoff bool, err error) {
	stack := NewLIFO()
	stack.Push(newRoot(r.start, 0))
	explored := make(locationSet, r.g.LocationCount())

	for !stack.IsEmpty() {
		n := stack.Pop()
		if explored.has(n.State) {
			continue
		}
		if err = r.visit(n); err != nil {
			return nil, cutoff, err
		}
		if n.State == r.goal {
			return n, cutoff, nil
		}
		if limit >= 0 && n.Depth >= limit {
			cutoff = true
			continue
		}

		explored.add(n.State)
		nbrs := r.g.Neighbours(n.State)
		for i := len(nbrs) - 1; i >= 0; i-- {
			adj := nbrs[i]
			if explored.has(adj.Location) {
				continue
			}
			stack.Push(newChild(n, adj, r.cost(n, adj), 0))
			r.stats.Generated++
		}
		r.observe(stack)
	}

	return nil, cutoff, nil
}
