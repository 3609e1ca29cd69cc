package heuristic_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/itineria/core"
	"github.com/katalvlaran/itineria/heuristic"
)

func newGraph(t *testing.T) (*core.Graph, *core.Location, *core.Location) {
	t.Helper()
	g := core.NewGraph()
	paris, err := g.AddLocation(75, "Paris", 48.8566, 2.3522)
	require.NoError(t, err)
	lyon, err := g.AddLocation(69, "Lyon", 45.7640, 4.8357)
	require.NoError(t, err)

	return g, paris, lyon
}

func TestCrowFlies_KnownDistance(t *testing.T) {
	_, paris, lyon := newGraph(t)

	assert.InDelta(t, 391.499, heuristic.CrowFlies(paris, lyon), 0.01)
}

func TestCrowFlies_OneDegreeAlongEquator(t *testing.T) {
	g := core.NewGraph()
	a, _ := g.AddLocation(1, "a", 0, 0)
	b, _ := g.AddLocation(2, "b", 0, 1)
	c, _ := g.AddLocation(3, "c", 1, 0)

	// 2πR/360
	assert.InDelta(t, 111.1949, heuristic.CrowFlies(a, b), 1e-3)
	assert.InDelta(t, 111.1949, heuristic.CrowFlies(a, c), 1e-3)
	assert.Zero(t, heuristic.CrowFlies(a, a))
}

func TestCrowFlies_Symmetric(t *testing.T) {
	_, paris, lyon := newGraph(t)

	assert.Equal(t, heuristic.CrowFlies(paris, lyon), heuristic.CrowFlies(lyon, paris))
}

func TestCrowFlies_NeverExceedsRoadDistance(t *testing.T) {
	g, paris, lyon := newGraph(t)
	link, err := g.AddLink(75, 69, 465, 270)
	require.NoError(t, err)

	assert.LessOrEqual(t, heuristic.CrowFlies(paris, lyon), link.Distance)
}

func TestTimeBound(t *testing.T) {
	g, paris, lyon := newGraph(t)
	_, err := g.AddLocation(13, "Marseille", 43.2965, 5.3698)
	require.NoError(t, err)
	_, err = g.AddLink(75, 69, 465, 270)
	require.NoError(t, err)
	_, err = g.AddLink(69, 13, 315, 180)
	require.NoError(t, err)

	h := heuristic.TimeBound(g)
	// fastest link: 315/180 = 1.75 km/min
	want := heuristic.CrowFlies(paris, lyon) / 1.75
	assert.InDelta(t, want, h(paris, lyon), 1e-9)
	assert.LessOrEqual(t, h(paris, lyon), 270.0, "must not exceed the actual travel time")
}

func TestTimeBound_DegeneratesToZero(t *testing.T) {
	g, paris, lyon := newGraph(t)
	_, err := g.AddLink(75, 69, 465, 0)
	require.NoError(t, err)

	assert.Zero(t, heuristic.TimeBound(g)(paris, lyon))
	assert.Zero(t, heuristic.TimeBound(core.NewGraph())(paris, lyon))
}
