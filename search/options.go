package search

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/itineria/core"
	"github.com/katalvlaran/itineria/heuristic"
)

// Option configures a search via functional arguments.
// An invalid Option (e.g. negative depth) is recorded internally and surfaced
// as ErrOptionViolation before the search begins.
type Option func(*Options)

// Options holds parameters and callbacks to customize a search.
type Options struct {
	// Ctx allows an external caller to stop a search. It is checked once per
	// expansion; a cancelled context aborts with ctx.Err().
	Ctx context.Context

	// Notify is invoked once per expansion with the location being expanded,
	// before that expansion's children are generated. Pure observability:
	// it must not block and has no effect on the result.
	Notify func(loc *core.Location)

	// Heuristic estimates the remaining cost for Greedy and AStar.
	// Defaults to heuristic.CrowFlies for both metrics.
	Heuristic heuristic.Func

	// MaxDepth, if > 0, is the largest depth bound iterative deepening will try.
	// 0 means no ceiling: on an unreachable goal iterative deepening then only
	// stops through Ctx or MaxExpansions.
	MaxDepth int

	// MaxExpansions, if > 0, caps the number of expansions. Exceeding it
	// yields ErrBudgetExhausted.
	MaxExpansions int

	// Logger receives debug-level progress records.
	Logger logrus.FieldLogger

	// Stats, if non-nil, is filled with the effort of the search.
	Stats *Stats

	err error
}

// DefaultOptions returns Options with:
//   - context.Background()
//   - a no-op notifier
//   - the crow-flies heuristic
//   - no depth ceiling and no expansion budget
//   - the logrus standard logger
func DefaultOptions() Options {
	return Options{
		Ctx:       context.Background(),
		Notify:    func(*core.Location) {},
		Heuristic: heuristic.CrowFlies,
		Logger:    logrus.StandardLogger(),
	}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithNotifier registers the visited-location hook.
func WithNotifier(fn func(loc *core.Location)) Option {
	return func(o *Options) {
		if fn != nil {
			o.Notify = fn
		}
	}
}

// WithHeuristic overrides the heuristic used by Greedy and AStar.
func WithHeuristic(h heuristic.Func) Option {
	return func(o *Options) {
		if h != nil {
			o.Heuristic = h
		}
	}
}

// WithMaxDepth bounds iterative deepening.
//
//	d > 0: try depth bounds 0..d, then fail with ErrDepthLimitReached
//	d == 0: explicit "no ceiling"
//	d < 0: invalid option → ErrOptionViolation
func WithMaxDepth(d int) Option {
	return func(o *Options) {
		if d < 0 {
			o.err = fmt.Errorf("%w: MaxDepth cannot be negative (%d)", ErrOptionViolation, d)
			return
		}
		o.MaxDepth = d
	}
}

// WithMaxExpansions caps the number of expansions.
//
//	n > 0: fail with ErrBudgetExhausted once n expansions were made without reaching the goal
//	n == 0: no budget
//	n < 0: invalid option → ErrOptionViolation
func WithMaxExpansions(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: MaxExpansions cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxExpansions = n
	}
}

// WithLogger routes debug records to logger.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(o *Options) {
		if logger != nil {
			o.Logger = logger
		}
	}
}

// WithStats asks the search to record its effort into st.
func WithStats(st *Stats) Option {
	return func(o *Options) {
		o.Stats = st
	}
}
