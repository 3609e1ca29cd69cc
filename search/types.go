package search

import (
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/itineria/core"
)

// Sentinel errors returned by Search and the per-strategy entry points.
//
// Note that "no path" is never an error: an exhausted frontier is reported as
// a nil *Node with a nil error.
var (
	// ErrNilGraph is returned when a nil *core.Graph is passed.
	ErrNilGraph = errors.New("search: graph is nil")

	// ErrLocationNotFound is returned when start or goal is nil or does not
	// belong to the searched graph.
	ErrLocationNotFound = errors.New("search: location not in graph")

	// ErrInvalidMetric is returned for a cost metric outside {Distance, Time}.
	ErrInvalidMetric = errors.New("search: invalid cost metric")

	// ErrUnknownStrategy is returned for a strategy outside the six supported ones.
	ErrUnknownStrategy = errors.New("search: unknown strategy")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("search: invalid option supplied")

	// ErrBudgetExhausted is returned when the expansion budget set with
	// WithMaxExpansions runs out. It means "no path found within budget",
	// which is distinct from "no path exists".
	ErrBudgetExhausted = errors.New("search: expansion budget exhausted")

	// ErrDepthLimitReached is returned by iterative deepening when the depth
	// bound set with WithMaxDepth is exceeded without reaching the goal.
	ErrDepthLimitReached = errors.New("search: depth limit reached")
)

// Metric selects which link weight a search accumulates along a path.
type Metric int

const (
	// Distance sums Link.Distance (kilometres in the bundled data).
	Distance Metric = iota

	// Time sums Link.Time (minutes in the bundled data).
	Time
)

// Metrics lists every supported metric.
func Metrics() []Metric { return []Metric{Distance, Time} }

// Valid reports whether m is a supported metric.
func (m Metric) Valid() bool { return m == Distance || m == Time }

// Weight returns the weight of link under m.
func (m Metric) Weight(link *core.Link) float64 {
	if m == Time {
		return link.Time
	}

	return link.Distance
}

// Unit returns the display unit of m.
func (m Metric) Unit() string {
	switch m {
	case Distance:
		return "km"
	case Time:
		return "min"
	default:
		return ""
	}
}

func (m Metric) String() string {
	switch m {
	case Distance:
		return "distance"
	case Time:
		return "time"
	default:
		return fmt.Sprintf("Metric(%d)", int(m))
	}
}

// ParseMetric converts a name ("distance", "time"; "temps" is accepted too)
// into a Metric. Unknown names yield ErrInvalidMetric.
func ParseMetric(s string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "distance", "dist", "d":
		return Distance, nil
	case "time", "temps", "t":
		return Time, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidMetric, s)
	}
}

// Strategy identifies one of the six search algorithms.
type Strategy int

const (
	// BreadthFirst expands nodes in FIFO order. Complete, not optimal on weighted links.
	BreadthFirst Strategy = iota

	// DepthFirst expands the first unexplored neighbour, depth-unbounded.
	DepthFirst

	// IterativeDeepening repeats a depth-bounded DepthFirst with bounds 0, 1, 2, ...
	IterativeDeepening

	// UniformCost expands the lowest accumulated cost first (Dijkstra). Optimal.
	UniformCost

	// Greedy expands the lowest heuristic estimate first. Not optimal.
	Greedy

	// AStar expands the lowest cost + heuristic first. Optimal with an admissible heuristic.
	AStar
)

var strategyNames = [...]string{
	BreadthFirst:       "bfs",
	DepthFirst:         "dfs",
	IterativeDeepening: "iddfs",
	UniformCost:        "ucs",
	Greedy:             "greedy",
	AStar:              "astar",
}

var strategyLabels = [...]string{
	BreadthFirst:       "Breadth-first search",
	DepthFirst:         "Depth-first search",
	IterativeDeepening: "Iterative deepening depth-first search",
	UniformCost:        "Uniform-cost search",
	Greedy:             "Greedy best-first search",
	AStar:              "A* search",
}

// Strategies lists the six strategies in their canonical order.
func Strategies() []Strategy {
	return []Strategy{BreadthFirst, DepthFirst, IterativeDeepening, UniformCost, Greedy, AStar}
}

// Valid reports whether s is one of the six strategies.
func (s Strategy) Valid() bool { return s >= BreadthFirst && s <= AStar }

// Informed reports whether s consults a heuristic.
func (s Strategy) Informed() bool { return s == Greedy || s == AStar }

// String returns the short name of s, as accepted by ParseStrategy.
func (s Strategy) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Strategy(%d)", int(s))
	}

	return strategyNames[s]
}

// Label returns the long, human readable name of s.
func (s Strategy) Label() string {
	if !s.Valid() {
		return s.String()
	}

	return strategyLabels[s]
}

// ParseStrategy converts a short name or a common alias into a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "bfs", "breadth-first", "breadth":
		return BreadthFirst, nil
	case "dfs", "depth-first", "depth":
		return DepthFirst, nil
	case "iddfs", "ids", "iterative-deepening":
		return IterativeDeepening, nil
	case "ucs", "uniform-cost", "dijkstra":
		return UniformCost, nil
	case "greedy", "best-first", "gbfs":
		return Greedy, nil
	case "astar", "a*", "a-star":
		return AStar, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

// Stats reports the effort spent by one search.
type Stats struct {
	// Expanded counts visited nodes (one notifier call each).
	Expanded int `json:"expanded"`

	// Generated counts child nodes created.
	Generated int `json:"generated"`

	// MaxFrontier is the largest frontier size observed.
	MaxFrontier int `json:"max_frontier"`

	// Iterations counts depth bounds tried by iterative deepening (1 for other strategies).
	Iterations int `json:"iterations"`
}
