package route

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/katalvlaran/itineria/core"
)

// Network renders the whole graph as GeoJSON: one Point feature per location,
// ordered by id, then one LineString feature per link in insertion order.
func Network(g *core.Graph) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, l := range g.Locations() {
		f := geojson.NewFeature(l.Point)
		f.ID = l.ID
		f.Properties["name"] = l.Name
		f.Properties["degree"] = l.Degree()
		fc.Append(f)
	}
	for _, k := range g.Links() {
		f := geojson.NewFeature(orb.LineString{k.A.Point, k.B.Point})
		f.Properties["from"] = k.A.ID
		f.Properties["to"] = k.B.ID
		f.Properties["distance"] = k.Distance
		f.Properties["time"] = k.Time
		fc.Append(f)
	}
	if g.LocationCount() > 0 {
		fc.BBox = geojson.NewBBox(g.Bounds())
	}

	return fc
}
