// Package search finds paths between two locations of a core.Graph with six
// interchangeable strategies sharing one Node type and one Frontier abstraction.
//
// What
//
//   - BreadthFirst       FIFO frontier, goal test on pop, explored checked before expanding.
//   - DepthFirst         explicit LIFO stack, goal test on visit, explored set prevents cycles.
//   - IterativeDeepening DepthFirst with depth bounds 0, 1, 2, ..., explored set rebuilt per bound.
//   - UniformCost        priority queue keyed by accumulated cost; stale entries skipped on pop.
//   - Greedy             priority queue keyed by the heuristic only; explored skipped on pop.
//   - AStar              priority queue keyed by cost + heuristic; same stale/explored policy as UniformCost.
//
// Every strategy short-circuits start == goal with a zero-cost root node, and
// invokes the notifier once per expansion, before generating children.
//
// Cost accounting
//
// Node.Cost always holds the actual accumulated cost under the chosen Metric
// (Distance or Time). Node.Priority holds the frontier key. ReconstructPath
// therefore returns the true cost for every strategy, greedy included.
//
// Tie-breaking
//
// PriorityQueue entries with equal keys pop in push order: a monotonically
// increasing sequence number is attached at push time and used as secondary key.
// Neighbours are generated in link insertion order (see core.Graph), so every
// search is fully reproducible.
//
// Results
//
//	goal, err := search.Search(g, search.AStar, from, to, search.Distance)
//	switch {
//	case err != nil:
//	    // invalid input, exhausted budget or cancelled context
//	case goal == nil:
//	    // no path exists
//	default:
//	    links, cost := search.ReconstructPath(goal)
//	}
//
// Options
//
//   - WithContext(ctx):          stop the search from outside.
//   - WithNotifier(fn):          visited-location hook.
//   - WithHeuristic(h):          override the crow-flies estimate (Greedy, AStar).
//   - WithMaxDepth(d):           ceiling for IterativeDeepening (ErrDepthLimitReached).
//   - WithMaxExpansions(n):      expansion budget (ErrBudgetExhausted).
//   - WithLogger(l):             logrus logger for debug records.
//   - WithStats(&st):            collect Stats.
//
// Known limitations
//
//   - The crow-flies heuristic is admissible for Distance only. Under Time, A*
//     may return a suboptimal path unless heuristic.TimeBound is supplied.
//   - IterativeDeepening does not terminate on an unreachable goal without a ceiling.
//   - Negative weights are rejected by core.Graph; optimality relies on it.
//
// Complexity (V = |locations|, E = |links|)
//
//   - BreadthFirst, DepthFirst: O(V + E)
//   - UniformCost, AStar, Greedy: O((V + E) log E)
//   - IterativeDeepening: O(d · (V + E)) for solution depth d
package search
