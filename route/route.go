// Package route turns a goal node returned by package search into an
// itinerary: ordered stops, per-link steps with both weights, totals, and a
// GeoJSON rendering of the path for map clients.
package route

import (
	"fmt"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/katalvlaran/itineria/core"
	"github.com/katalvlaran/itineria/search"
)

// Stop is one location along a route.
type Stop struct {
	ID   int     `json:"id"`
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// StopOf converts a graph location into a Stop.
func StopOf(l *core.Location) Stop {
	return Stop{ID: l.ID, Name: l.Name, Lat: l.Lat(), Lon: l.Lon()}
}

// Point returns the stop in orb (longitude, latitude) order.
func (s Stop) Point() orb.Point { return orb.Point{s.Lon, s.Lat} }

// Step is one traversed link.
type Step struct {
	From     Stop    `json:"from"`
	To       Stop    `json:"to"`
	Distance float64 `json:"distance"`
	Time     float64 `json:"time"`

	// Cost is the link weight under the route metric.
	Cost float64 `json:"cost"`

	// Cumulative is the route cost up to and including this step.
	Cumulative float64 `json:"cumulative"`
}

// Route is the presentation form of one search result.
type Route struct {
	Strategy string `json:"strategy"`
	Metric   string `json:"metric"`
	Unit     string `json:"unit"`

	// Found is false when the search exhausted its frontier.
	Found bool `json:"found"`

	Stops []Stop `json:"stops"`
	Steps []Step `json:"steps"`

	// Cost is the total under Metric; Distance and Time are both totals
	// regardless of the metric that drove the search.
	Cost     float64 `json:"cost"`
	Distance float64 `json:"distance"`
	Time     float64 `json:"time"`

	Stats search.Stats `json:"stats"`
}

// New builds the Route for goal, as returned by a strategy run under metric.
// A nil goal yields a Route with Found == false.
func New(strategy search.Strategy, metric search.Metric, goal *search.Node, stats search.Stats) Route {
	r := Route{
		Strategy: strategy.String(),
		Metric:   metric.String(),
		Unit:     metric.Unit(),
		Stats:    stats,
		Stops:    []Stop{},
		Steps:    []Step{},
	}
	if goal == nil {
		return r
	}
	r.Found = true

	path := goal.Path()
	links, cost := search.ReconstructPath(goal)
	r.Cost = cost
	r.Stops = make([]Stop, len(path))
	for i, l := range path {
		r.Stops[i] = StopOf(l)
	}

	r.Steps = make([]Step, len(links))
	cumulative := 0.0
	for i, link := range links {
		w := metric.Weight(link)
		cumulative += w
		r.Distance += link.Distance
		r.Time += link.Time
		r.Steps[i] = Step{
			From:       r.Stops[i],
			To:         r.Stops[i+1],
			Distance:   link.Distance,
			Time:       link.Time,
			Cost:       w,
			Cumulative: cumulative,
		}
	}

	return r
}

// LineString returns the path geometry, or nil when no path was found.
func (r Route) LineString() orb.LineString {
	if !r.Found {
		return nil
	}
	ls := make(orb.LineString, len(r.Stops))
	for i, s := range r.Stops {
		ls[i] = s.Point()
	}

	return ls
}

// Bound returns the bounding box of the stops.
func (r Route) Bound() orb.Bound {
	if len(r.Stops) == 0 {
		return orb.Bound{}
	}

	return r.LineString().Bound()
}

// FeatureCollection renders the route as GeoJSON: one LineString feature for
// the path, followed by one Point feature per stop. An unfound route yields an
// empty collection.
func (r Route) FeatureCollection() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	if !r.Found {
		return fc
	}

	path := geojson.NewFeature(r.LineString())
	path.Properties["strategy"] = r.Strategy
	path.Properties["metric"] = r.Metric
	path.Properties["cost"] = r.Cost
	path.Properties["unit"] = r.Unit
	path.Properties["distance"] = r.Distance
	path.Properties["time"] = r.Time
	fc.Append(path)

	for i, s := range r.Stops {
		f := geojson.NewFeature(s.Point())
		f.ID = s.ID
		f.Properties["name"] = s.Name
		f.Properties["order"] = i
		fc.Append(f)
	}

	return fc
}

// String renders a multi-line itinerary, e.g.
//
//	Uniform-cost search by distance: 20 km over 2 links
//	  P -> Q   10 km
//	  Q -> R   10 km (20 km)
func (r Route) String() string {
	label := r.Strategy
	if s, err := search.ParseStrategy(r.Strategy); err == nil {
		label = s.Label()
	}

	var b strings.Builder
	if !r.Found {
		fmt.Fprintf(&b, "%s by %s: no path", label, r.Metric)
		return b.String()
	}
	fmt.Fprintf(&b, "%s by %s: %g %s over %d links", label, r.Metric, r.Cost, r.Unit, len(r.Steps))
	for i, s := range r.Steps {
		fmt.Fprintf(&b, "\n  %s -> %s   %g %s", s.From.Name, s.To.Name, s.Cost, r.Unit)
		if i > 0 {
			fmt.Fprintf(&b, " (%g %s)", s.Cumulative, r.Unit)
		}
	}

	return b.String()
}
