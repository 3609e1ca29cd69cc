// Package core provides the graph model searched by itineria: named
// geographic Locations joined by undirected Links that carry two independent,
// non-negative costs (distance and time).
//
// The Graph G = (V,E) guarantees:
//
//   - Symmetric adjacency: if A reaches B through link L, B reaches A through the same L.
//   - One *Link per undirected connection (no parallel links, no self-loops).
//   - Deterministic neighbour order: links are reported in the order they were added.
//   - O(1) amortized neighbour lookup by location (Location.LinkTo, Graph.Link).
//
// Construction
//
//	g := core.NewGraph()
//	paris, _ := g.AddLocation(75, "Paris", 48.8566, 2.3522)
//	lyon, _ := g.AddLocation(69, "Lyon", 45.7640, 4.8357)
//	_, err := g.AddLink(75, 69, 465, 270)
//
// Every construction error wraps ErrMalformedGraph:
//
//	ErrLocationNotFound   - link endpoint id is not registered (dangling link).
//	ErrDuplicateLocation  - location id registered twice.
//	ErrDuplicateLink      - second link between the same pair.
//	ErrNegativeWeight     - negative or NaN distance/time.
//	ErrSelfLoop           - link from a location to itself.
//	ErrBadCoordinate      - latitude/longitude out of range.
//
// Concurrency
//
// A single sync.RWMutex guards the catalog and adjacency. Construction takes the
// write lock; queries take the read lock. After construction the graph is
// effectively immutable and may be shared by any number of concurrent searches.
//
// Coordinates are stored as orb.Point (longitude, latitude), so a graph plugs
// straight into the paulmach/orb geometry and GeoJSON tooling; Bounds returns
// the orb.Bound enclosing every location.
package core
