// SPDX-License-Identifier: MIT
//
// File: types.go
// Role: Location, Link and Graph declarations, sentinel errors, NewGraph.
// Policy:
//   - Exactly one *Link represents each undirected connection.
//   - Adjacency is symmetric and keeps link insertion order.
//   - Weights are non-negative; the graph is read-only once a search starts.

package core

import (
	"errors"
	"sync"

	"github.com/paulmach/orb"
)

// Sentinel errors for graph construction and lookup.
//
// Every construction failure wraps ErrMalformedGraph, so callers that only care
// about "the input data is broken" can test a single sentinel.
var (
	// ErrMalformedGraph groups all construction failures (dangling links, bad weights...).
	ErrMalformedGraph = errors.New("core: malformed graph")

	// ErrLocationNotFound indicates an operation referenced a non-existent location.
	ErrLocationNotFound = errors.New("core: location not found")

	// ErrDuplicateLocation indicates a location id was registered twice.
	ErrDuplicateLocation = errors.New("core: duplicate location id")

	// ErrDuplicateLink indicates a second link between the same two locations.
	ErrDuplicateLink = errors.New("core: duplicate link")

	// ErrNegativeWeight indicates a link with a negative distance or time.
	ErrNegativeWeight = errors.New("core: negative link weight")

	// ErrSelfLoop indicates a link whose two endpoints are the same location.
	ErrSelfLoop = errors.New("core: self-loop not allowed")

	// ErrBadCoordinate indicates a latitude/longitude outside the valid range or NaN.
	ErrBadCoordinate = errors.New("core: coordinate out of range")
)

// Location is a graph vertex: a named geographic point.
//
// Point stores the coordinates in orb order (longitude, latitude), in degrees.
// The adjacency of a Location is owned by its Graph and must not be modified
// by callers.
type Location struct {
	// ID is the stable numeric identifier of the location.
	ID int

	// Name is a human readable label, e.g. a town name.
	Name string

	// Point holds longitude and latitude in degrees.
	Point orb.Point

	adj   []Adjacent  // neighbours in link insertion order
	index map[int]int // neighbour ID → position in adj
}

// Link is an undirected weighted connection between two locations.
//
// Distance and Time are two independent, non-negative costs. A search selects
// which one to accumulate through its cost metric.
type Link struct {
	// A and B are the two endpoints; the order carries no meaning.
	A, B *Location

	// Distance is the length of the link (kilometres in the bundled data).
	Distance float64

	// Time is the travel time of the link (minutes in the bundled data).
	Time float64
}

// Adjacent pairs a neighbouring location with the link that reaches it.
type Adjacent struct {
	Location *Location
	Link     *Link
}

// Graph is an undirected graph of Locations joined by Links.
//
// mu protects the location catalog, the link list and every adjacency slice.
// Searches only read the graph, so any number of them may run concurrently once
// construction is finished.
type Graph struct {
	mu sync.RWMutex

	locations map[int]*Location // id → Location
	byName    map[string]*Location
	links     []*Link // insertion order
}

// NewGraph creates an empty Graph.
// Complexity: O(1)
func NewGraph() *Graph {
	return &Graph{
		locations: make(map[int]*Location),
		byName:    make(map[string]*Location),
		links:     make([]*Link, 0),
	}
}
