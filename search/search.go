package search

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/itineria/core"
)

// Func is the signature shared by the six strategy entry points.
type Func func(g *core.Graph, start, goal *core.Location, metric Metric, opts ...Option) (*Node, error)

// Lookup returns the entry point for s.
func Lookup(s Strategy) (Func, error) {
	switch s {
	case BreadthFirst:
		return BFS, nil
	case DepthFirst:
		return DFS, nil
	case IterativeDeepening:
		return IDDFS, nil
	case UniformCost:
		return UCS, nil
	case Greedy:
		return GreedyBestFirst, nil
	case AStar:
		return AStarSearch, nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownStrategy, s)
	}
}

// Search runs strategy from start to goal, accumulating costs under metric.
//
// It returns the goal-reaching node (see ReconstructPath), or (nil, nil) when
// the frontier is exhausted without reaching goal. Errors are reserved for
// invalid input (ErrNilGraph, ErrUnknownStrategy, ErrInvalidMetric,
// ErrLocationNotFound, ErrOptionViolation), for an exceeded ceiling
// (ErrBudgetExhausted, ErrDepthLimitReached) and for context cancellation.
//
// The search is synchronous and single-threaded; concurrent calls on the same
// graph are safe because each owns its frontier and explored set.
func Search(g *core.Graph, strategy Strategy, start, goal *core.Location, metric Metric, opts ...Option) (*Node, error) {
	fn, err := Lookup(strategy)
	if err != nil {
		return nil, err
	}

	return fn(g, start, goal, metric, opts...)
}

// runner holds the mutable state of a single search.
type runner struct {
	g        *core.Graph
	strategy Strategy
	start    *core.Location
	goal     *core.Location
	metric   Metric
	opts     Options
	stats    Stats
	log      logrus.FieldLogger
}

// prepare validates the input in a fixed order and builds a runner:
//  1. g non-nil (ErrNilGraph)
//  2. options valid (ErrOptionViolation)
//  3. metric valid (ErrInvalidMetric)
//  4. start and goal belong to g (ErrLocationNotFound)
func prepare(g *core.Graph, s Strategy, start, goal *core.Location, metric Metric, opts []Option) (*runner, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if !metric.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMetric, metric)
	}
	if !g.Has(start) {
		return nil, fmt.Errorf("%w: start %v", ErrLocationNotFound, start)
	}
	if !g.Has(goal) {
		return nil, fmt.Errorf("%w: goal %v", ErrLocationNotFound, goal)
	}

	return &runner{
		g:        g,
		strategy: s,
		start:    start,
		goal:     goal,
		metric:   metric,
		opts:     o,
		stats:    Stats{Iterations: 1},
		log: o.Logger.WithFields(logrus.Fields{
			"strategy": s.String(),
			"metric":   metric.String(),
			"from":     start.Name,
			"to":       goal.Name,
		}),
	}, nil
}

// run executes body unless start == goal, then publishes stats and logs the outcome.
func (r *runner) run(body func() (*Node, error)) (*Node, error) {
	var (
		n   *Node
		err error
	)
	if r.start == r.goal {
		// zero-cost root, no edge expanded
		n = newRoot(r.start, 0)
	} else {
		n, err = body()
	}

	if r.opts.Stats != nil {
		*r.opts.Stats = r.stats
	}

	entry := r.log.WithFields(logrus.Fields{
		"expanded":  r.stats.Expanded,
		"generated": r.stats.Generated,
	})
	switch {
	case err != nil:
		entry.WithError(err).Debug("search aborted")
	case n == nil:
		entry.Debug("no path found")
	default:
		entry.WithField("cost", n.Cost).Debug("goal reached")
	}

	return n, err
}

// visit accounts one expansion of n: it honours cancellation and the
// expansion budget, then calls the notifier.
func (r *runner) visit(n *Node) error {
	select {
	case <-r.opts.Ctx.Done():
		return r.opts.Ctx.Err()
	default:
	}
	if r.opts.MaxExpansions > 0 && r.stats.Expanded >= r.opts.MaxExpansions {
		return fmt.Errorf("%w: %d expansions", ErrBudgetExhausted, r.stats.Expanded)
	}
	r.stats.Expanded++
	r.opts.Notify(n.State)

	return nil
}

// cost returns the accumulated cost of reaching adj from parent.
func (r *runner) cost(parent *Node, adj core.Adjacent) float64 {
	return parent.Cost + r.metric.Weight(adj.Link)
}

// observe records the frontier size after a push.
func (r *runner) observe(f Frontier) {
	if l := f.Len(); l > r.stats.MaxFrontier {
		r.stats.MaxFrontier = l
	}
}

// locationSet is the explored set: O(1) amortized membership by location.
type locationSet map[*core.Location]struct{}

func (s locationSet) has(l *core.Location) bool {
	_, ok := s[l]

	return ok
}

func (s locationSet) add(l *core.Location) { s[l] = struct{}{} }
