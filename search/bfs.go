package search

import "github.com/katalvlaran/itineria/core"

// BFS runs breadth-first search from start to goal.
//
// Nodes are expanded in insertion (FIFO) order. The explored set is consulted
// when a node is popped, not when it is enqueued, so a location may sit in the
// queue several times; only its first pop is expanded. The goal test happens
// on pop.
//
// BFS is complete on finite graphs. It minimises the number of links, not the
// accumulated cost, so it is not optimal when weights differ.
//
// Complexity: Time O(V + E), Memory O(E) for the queue.
func BFS(g *core.Graph, start, goal *core.Location, metric Metric, opts ...Option) (*Node, error) {
	r, err := prepare(g, BreadthFirst, start, goal, metric, opts)
	if err != nil {
		return nil, err
	}

	return r.run(r.bfs)
}

func (r *runner) bfs() (*Node, error) {
	frontier := NewFIFO()
	frontier.Push(newRoot(r.start, 0))
	explored := make(locationSet, r.g.LocationCount())

	for !frontier.IsEmpty() {
		n := frontier.Pop()
		if explored.has(n.State) {
			// duplicate entry of an already expanded location
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
			frontier.Push(newChild(n, adj, r.cost(n, adj), 0))
			r.stats.Generated++
		}
		r.observe(frontier)
	}

	return nil, nil
}
