// Package heuristic provides the distance estimates that drive informed search.
//
// CrowFlies is the great-circle (haversine) distance between two locations in
// kilometres. It never overestimates the length of a road path, so it is
// admissible for the distance metric. It is NOT admissible for the time metric:
// travel time is not bounded by geographic distance in general. TimeBound
// rescales it by the fastest link of a graph when an admissible time estimate
// is needed.
package heuristic

import (
	"math"

	"github.com/katalvlaran/itineria/core"
)

// EarthRadiusKm is the mean Earth radius used by CrowFlies.
const EarthRadiusKm = 6371.0

// Func estimates the remaining cost from a location to the goal.
// Implementations must be non-negative and must not block.
type Func func(from, goal *core.Location) float64

// deg2rad converts degrees to radians.
func deg2rad(deg float64) float64 { return deg * (math.Pi / 180) }

// CrowFlies returns the haversine great-circle distance between a and b in km.
// It is symmetric: CrowFlies(a, b) == CrowFlies(b, a).
func CrowFlies(a, b *core.Location) float64 {
	lat1, lon1 := a.Lat(), a.Lon()
	lat2, lon2 := b.Lat(), b.Lon()

	dLat := deg2rad(lat2 - lat1)
	dLon := deg2rad(lon2 - lon1)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(deg2rad(lat1))*math.Cos(deg2rad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusKm * c
}

// Zero is the trivial heuristic. A* with Zero behaves like uniform-cost search.
func Zero(_, _ *core.Location) float64 { return 0 }

// TimeBound returns a heuristic admissible for the time metric of g: the
// crow-flies distance divided by the highest speed (distance/time) found on
// any link. Links with zero time and positive distance make the speed unbounded,
// in which case TimeBound degrades to Zero.
func TimeBound(g *core.Graph) Func {
	var maxSpeed float64
	for _, l := range g.Links() {
		if l.Time == 0 {
			if l.Distance > 0 {
				return Zero
			}
			continue
		}
		if s := l.Distance / l.Time; s > maxSpeed {
			maxSpeed = s
		}
	}
	if maxSpeed == 0 {
		return Zero
	}

	return func(from, goal *core.Location) float64 {
		return CrowFlies(from, goal) / maxSpeed
	}
}
