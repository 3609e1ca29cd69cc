// File: methods_links.go
// Role: Link lifecycle, neighbourhood queries and adjacency helpers.
//
// Determinism:
//   - Links() and Neighbours() preserve insertion order.
//
// Concurrency:
//   - AddLink holds the write lock while it mirrors adjacency on both endpoints.
package core

import (
	"fmt"
	"math"
)

// Other returns the endpoint of the link opposite to l.
// It returns nil if l is not an endpoint.
func (k *Link) Other(l *Location) *Location {
	switch l {
	case k.A:
		return k.B
	case k.B:
		return k.A
	default:
		return nil
	}
}

// Joins reports whether the link connects a and b, in either order.
func (k *Link) Joins(a, b *Location) bool {
	return (k.A == a && k.B == b) || (k.A == b && k.B == a)
}

// String renders the link as "A <-> B (distance, time)".
func (k *Link) String() string {
	return fmt.Sprintf("%s <-> %s (%g, %g)", k.A.Name, k.B.Name, k.Distance, k.Time)
}

// AddLink joins two existing locations with an undirected link.
//
// Implementation:
//   - Stage 1: Reject negative or NaN weights (ErrNegativeWeight).
//   - Stage 2: Under the write lock, resolve both endpoint ids (ErrLocationNotFound).
//   - Stage 3: Reject self-loops and parallel links (ErrSelfLoop, ErrDuplicateLink).
//   - Stage 4: Append the link and mirror it into both adjacency lists.
//
// Errors:
//   - All failures wrap ErrMalformedGraph.
//
// Complexity:
//   - Time O(1) amortized, Space O(1).
func (g *Graph) AddLink(a, b int, distance, time float64) (*Link, error) {
	if distance < 0 || time < 0 || math.IsNaN(distance) || math.IsNaN(time) {
		return nil, fmt.Errorf("%w: %w: %d-%d distance=%v time=%v",
			ErrMalformedGraph, ErrNegativeWeight, a, b, distance, time)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	la, ok := g.locations[a]
	if !ok {
		return nil, fmt.Errorf("%w: %w: link endpoint %d", ErrMalformedGraph, ErrLocationNotFound, a)
	}
	lb, ok := g.locations[b]
	if !ok {
		return nil, fmt.Errorf("%w: %w: link endpoint %d", ErrMalformedGraph, ErrLocationNotFound, b)
	}
	if la == lb {
		return nil, fmt.Errorf("%w: %w: %d", ErrMalformedGraph, ErrSelfLoop, a)
	}
	if _, dup := la.index[b]; dup {
		return nil, fmt.Errorf("%w: %w: %d-%d", ErrMalformedGraph, ErrDuplicateLink, a, b)
	}

	link := &Link{A: la, B: lb, Distance: distance, Time: time}
	g.links = append(g.links, link)
	attach(la, lb, link)
	attach(lb, la, link)

	return link, nil
}

// attach records nbr as a neighbour of l through link. Caller holds the write lock.
func attach(l, nbr *Location, link *Link) {
	l.index[nbr.ID] = len(l.adj)
	l.adj = append(l.adj, Adjacent{Location: nbr, Link: link})
}

// Neighbours returns the locations adjacent to l with the link reaching each,
// in the order the links were added.
//
// The returned slice is shared with the graph and must be treated as read-only.
// A location that does not belong to any graph has no neighbours.
//
// Complexity: O(1).
func (g *Graph) Neighbours(l *Location) []Adjacent {
	if l == nil {
		return nil
	}
	g.mu.RLock()
	defer g.mu.RUnlock()

	return l.adj
}

// Link returns the link joining the locations with ids a and b.
func (g *Graph) Link(a, b int) (*Link, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	la, ok := g.locations[a]
	if !ok {
		return nil, false
	}
	i, ok := la.index[b]
	if !ok {
		return nil, false
	}

	return la.adj[i].Link, true
}

// Links returns every link in insertion order. The slice is a copy; the links
// themselves are shared.
func (g *Graph) Links() []*Link {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]*Link, len(g.links))
	copy(out, g.links)

	return out
}

// LinkCount returns the number of undirected links.
func (g *Graph) LinkCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.links)
}
