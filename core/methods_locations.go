// File: methods_locations.go
// Role: Location lifecycle and queries.
//
// Determinism:
//   - Locations() returns locations sorted by ID ascending.
//
// Concurrency:
//   - AddLocation takes the write lock; every query takes the read lock.
package core

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

// Lat returns the latitude of the location in degrees.
func (l *Location) Lat() float64 { return l.Point.Lat() }

// Lon returns the longitude of the location in degrees.
func (l *Location) Lon() float64 { return l.Point.Lon() }

// String returns "id - name", the label used by the CLI.
func (l *Location) String() string {
	if l == nil {
		return "<nil>"
	}

	return fmt.Sprintf("%d - %s", l.ID, l.Name)
}

// Degree returns the number of links incident to l.
func (l *Location) Degree() int { return len(l.adj) }

// LinkTo returns the link joining l and other, if any.
// Complexity: O(1) amortized.
func (l *Location) LinkTo(other *Location) (*Link, bool) {
	if l == nil || other == nil {
		return nil, false
	}
	i, ok := l.index[other.ID]
	if !ok {
		return nil, false
	}

	return l.adj[i].Link, true
}

// AddLocation registers a new location.
//
// Implementation:
//   - Stage 1: Validate coordinates (finite, lat in [-90,90], lon in [-180,180]).
//   - Stage 2: Under the write lock, reject a reused id.
//   - Stage 3: Allocate the Location with an empty adjacency and index it by id and name.
//
// Errors:
//   - ErrBadCoordinate, ErrDuplicateLocation; both wrap ErrMalformedGraph.
//
// Complexity:
//   - Time O(1), Space O(1).
func (g *Graph) AddLocation(id int, name string, lat, lon float64) (*Location, error) {
	if !validCoordinate(lat, 90) || !validCoordinate(lon, 180) {
		return nil, fmt.Errorf("%w: %w: location %d (%q) at lat=%v lon=%v",
			ErrMalformedGraph, ErrBadCoordinate, id, name, lat, lon)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.locations[id]; exists {
		return nil, fmt.Errorf("%w: %w: %d", ErrMalformedGraph, ErrDuplicateLocation, id)
	}

	loc := &Location{
		ID:    id,
		Name:  name,
		Point: orb.Point{lon, lat},
		adj:   make([]Adjacent, 0),
		index: make(map[int]int),
	}
	g.locations[id] = loc
	if name != "" {
		key := strings.ToLower(name)
		// first registration wins for name lookups
		if _, taken := g.byName[key]; !taken {
			g.byName[key] = loc
		}
	}

	return loc, nil
}

func validCoordinate(v, limit float64) bool {
	return !math.IsNaN(v) && v >= -limit && v <= limit
}

// Location returns the location registered under id.
func (g *Graph) Location(id int) (*Location, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	loc, ok := g.locations[id]

	return loc, ok
}

// LookupByName returns the first location registered with the given name,
// compared case-insensitively.
func (g *Graph) LookupByName(name string) (*Location, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	loc, ok := g.byName[strings.ToLower(strings.TrimSpace(name))]

	return loc, ok
}

// Find resolves ref as a numeric id first, then as a name.
func (g *Graph) Find(ref string) (*Location, bool) {
	ref = strings.TrimSpace(ref)
	if id, err := strconv.Atoi(ref); err == nil {
		if loc, ok := g.Location(id); ok {
			return loc, true
		}
	}

	return g.LookupByName(ref)
}

// Has reports whether loc belongs to g (same pointer registered under its id).
func (g *Graph) Has(loc *Location) bool {
	if loc == nil {
		return false
	}
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.locations[loc.ID] == loc
}

// Locations returns every location sorted by ID ascending.
// Complexity: O(V log V).
func (g *Graph) Locations() []*Location {
	g.mu.RLock()
	out := make([]*Location, 0, len(g.locations))
	for _, loc := range g.locations {
		out = append(out, loc)
	}
	g.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out
}

// LocationCount returns the number of locations.
func (g *Graph) LocationCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.locations)
}

// Bounds returns the bounding box of all locations. An empty graph yields
// the zero orb.Bound.
func (g *Graph) Bounds() orb.Bound {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var (
		b     orb.Bound
		first = true
	)
	for _, loc := range g.locations {
		if first {
			b = loc.Point.Bound()
			first = false
			continue
		}
		b = b.Extend(loc.Point)
	}

	return b
}
