// Package compare runs several search strategies on the same query side by
// side, one independent single-threaded search per strategy, and collects
// their results for comparison.
package compare

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/itineria/core"
	"github.com/katalvlaran/itineria/route"
	"github.com/katalvlaran/itineria/search"
)

// ErrReleased is returned by Run after Release.
var ErrReleased = errors.New("compare: runner released")

// Result is the outcome of one strategy.
type Result struct {
	Strategy search.Strategy
	Metric   search.Metric

	// Goal is nil when no path was found or Err is set.
	Goal    *search.Node
	Stats   search.Stats
	Elapsed time.Duration
	Err     error
}

// Found reports whether the strategy reached the goal.
func (r Result) Found() bool { return r.Err == nil && r.Goal != nil }

// Cost returns the path cost, or 0 when nothing was found.
func (r Result) Cost() float64 {
	if !r.Found() {
		return 0
	}

	return r.Goal.Cost
}

// Route converts the result into an itinerary.
func (r Result) Route() route.Route {
	return route.New(r.Strategy, r.Metric, r.Goal, r.Stats)
}

// Option configures a Runner.
type Option func(*Runner) error

// WithPoolSize sets the number of searches that may run at once.
// Default is runtime.NumCPU(), with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(r *Runner) error {
		if size < 1 {
			size = 1
		}
		if r.pool != nil {
			r.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		r.pool = pool

		return nil
	}
}

// WithLogger sets the logger. Default is logrus.StandardLogger().
func WithLogger(logger logrus.FieldLogger) Option {
	return func(r *Runner) error {
		if logger == nil {
			logger = logrus.StandardLogger()
		}
		r.log = logger

		return nil
	}
}

// Runner owns the worker pool shared by successive comparisons.
// It is safe for concurrent use.
type Runner struct {
	pool *ants.Pool
	log  logrus.FieldLogger
}

// NewRunner creates a Runner. Call Release when done with it.
func NewRunner(opts ...Option) (*Runner, error) {
	size := runtime.NumCPU()
	if size < 1 {
		size = 1
	}
	pool, err := ants.NewPool(size)
	if err != nil {
		return nil, err
	}

	r := &Runner{pool: pool, log: logrus.StandardLogger()}
	for _, opt := range opts {
		if optErr := opt(r); optErr != nil {
			r.Release()
			return nil, optErr
		}
	}

	return r, nil
}

// Release stops the worker pool. The Runner must not be used afterwards.
func (r *Runner) Release() {
	if r.pool != nil {
		r.pool.Release()
	}
}

// Run searches from start to goal with every strategy in strategies and
// returns one Result per strategy, in the same order.
//
// Each search gets ctx and its own Stats; opts are appended to every search,
// so a notifier passed here is called from several goroutines at once and
// must be safe for that. Failures of individual strategies land in
// Result.Err; the returned error is reserved for pool failures.
func (r *Runner) Run(
	ctx context.Context,
	g *core.Graph,
	start, goal *core.Location,
	metric search.Metric,
	strategies []search.Strategy,
	opts ...search.Option,
) ([]Result, error) {
	if r.pool.IsClosed() {
		return nil, ErrReleased
	}

	results := make([]Result, len(strategies))
	var wg sync.WaitGroup
	for i, s := range strategies {
		i, s := i, s
		results[i] = Result{Strategy: s, Metric: metric}
		wg.Add(1)
		err := r.pool.Submit(func() {
			defer wg.Done()
			res := &results[i]
			all := make([]search.Option, 0, len(opts)+2)
			all = append(all, search.WithContext(ctx))
			all = append(all, opts...)
			all = append(all, search.WithStats(&res.Stats))

			began := time.Now()
			res.Goal, res.Err = search.Search(g, s, start, goal, metric, all...)
			res.Elapsed = time.Since(began)
		})
		if err != nil {
			wg.Done()
			wg.Wait()
			return nil, fmt.Errorf("compare: submit %v: %w", s, err)
		}
	}
	wg.Wait()

	for _, res := range results {
		entry := r.log.WithFields(logrus.Fields{
			"strategy": res.Strategy.String(),
			"expanded": res.Stats.Expanded,
			"elapsed":  res.Elapsed,
		})
		switch {
		case res.Err != nil:
			entry.WithError(res.Err).Debug("strategy failed")
		case res.Goal == nil:
			entry.Debug("strategy found no path")
		default:
			entry.WithField("cost", res.Goal.Cost).Debug("strategy reached goal")
		}
	}

	return results, nil
}

// Run is a one-shot comparison on a temporary Runner.
func Run(
	ctx context.Context,
	g *core.Graph,
	start, goal *core.Location,
	metric search.Metric,
	strategies []search.Strategy,
	opts ...search.Option,
) ([]Result, error) {
	r, err := NewRunner(WithPoolSize(len(strategies)))
	if err != nil {
		return nil, err
	}
	defer r.Release()

	return r.Run(ctx, g, start, goal, metric, strategies, opts...)
}

// Best returns the index of the cheapest successful result, the earliest one
// among equals, or -1 when no strategy found a path.
func Best(results []Result) int {
	best := -1
	for i, r := range results {
		if !r.Found() {
			continue
		}
		if best < 0 || r.Goal.Cost < results[best].Goal.Cost {
			best = i
		}
	}

	return best
}

// WriteTable prints results as an aligned table, marking the cheapest row.
func WriteTable(w io.Writer, results []Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "STRATEGY\tCOST\tLINKS\tEXPANDED\tGENERATED\tELAPSED\t")
	best := Best(results)
	for i, r := range results {
		cost := "no path"
		links := "-"
		switch {
		case r.Err != nil:
			cost = "error: " + r.Err.Error()
		case r.Goal != nil:
			cost = fmt.Sprintf("%g %s", r.Goal.Cost, r.Metric.Unit())
			links = fmt.Sprint(r.Goal.Depth)
		}
		mark := ""
		if i == best {
			mark = "*"
		}
		fmt.Fprintf(tw, "%s%s\t%s\t%s\t%d\t%d\t%s\t\n",
			r.Strategy, mark, cost, links, r.Stats.Expanded, r.Stats.Generated, r.Elapsed.Round(time.Microsecond))
	}

	return tw.Flush()
}
