package compare_test

import (
	"bytes"
	"context"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/itineria/compare"
	"github.com/katalvlaran/itineria/core"
	"github.com/katalvlaran/itineria/loader"
	"github.com/katalvlaran/itineria/search"
)

func bundled(t *testing.T) (*core.Graph, *core.Location, *core.Location) {
	t.Helper()
	g, err := loader.Bundled()
	require.NoError(t, err)
	brest, ok := g.LookupByName("Brest")
	require.True(t, ok)
	nice, ok := g.LookupByName("Nice")
	require.True(t, ok)

	return g, brest, nice
}

func TestRun_AllStrategies(t *testing.T) {
	g, from, to := bundled(t)
	results, err := compare.Run(context.Background(), g, from, to, search.Distance, search.Strategies(),
		search.WithMaxDepth(g.LocationCount()))
	require.NoError(t, err)
	require.Len(t, results, len(search.Strategies()))

	for i, s := range search.Strategies() {
		r := results[i]
		require.Equal(t, s, r.Strategy, "results keep input order")
		require.NoError(t, r.Err)
		require.True(t, r.Found(), s.String())
		assert.Positive(t, r.Stats.Expanded)
		assert.True(t, r.Route().Found)
	}

	// sequential reference
	ucs, err := search.UCS(g, from, to, search.Distance)
	require.NoError(t, err)
	best := compare.Best(results)
	require.GreaterOrEqual(t, best, 0)
	assert.Equal(t, ucs.Cost, results[best].Cost())
	for _, r := range results {
		assert.GreaterOrEqual(t, r.Cost(), ucs.Cost, r.Strategy.String())
	}
}

func TestRunner_ReuseAndErrors(t *testing.T) {
	g, from, to := bundled(t)
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	r, err := compare.NewRunner(compare.WithPoolSize(2), compare.WithLogger(logger))
	require.NoError(t, err)

	strategies := []search.Strategy{search.AStar, search.Strategy(99), search.UniformCost}
	for round := 0; round < 3; round++ {
		results, err := r.Run(context.Background(), g, from, to, search.Time, strategies)
		require.NoError(t, err)
		require.Len(t, results, 3)
		assert.ErrorIs(t, results[1].Err, search.ErrUnknownStrategy)
		assert.False(t, results[1].Found())
		assert.Zero(t, results[1].Cost())
		assert.LessOrEqual(t, results[2].Cost(), results[0].Cost(), "UCS is optimal under time")
	}
	assert.Len(t, hook.AllEntries(), 9)

	r.Release()
	_, err = r.Run(context.Background(), g, from, to, search.Time, strategies)
	require.ErrorIs(t, err, compare.ErrReleased)
}

func TestRun_SharedNotifierAndCancellation(t *testing.T) {
	g, from, to := bundled(t)

	var calls atomic.Int64
	results, err := compare.Run(context.Background(), g, from, to, search.Distance,
		[]search.Strategy{search.BreadthFirst, search.UniformCost},
		search.WithNotifier(func(*core.Location) { calls.Add(1) }))
	require.NoError(t, err)
	assert.Equal(t, int64(results[0].Stats.Expanded+results[1].Stats.Expanded), calls.Load())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results, err = compare.Run(ctx, g, from, to, search.Distance, search.Strategies())
	require.NoError(t, err)
	for _, r := range results {
		assert.ErrorIs(t, r.Err, context.Canceled, r.Strategy.String())
	}
	assert.Equal(t, -1, compare.Best(results))
}

func TestRun_Empty(t *testing.T) {
	g, from, to := bundled(t)
	results, err := compare.Run(context.Background(), g, from, to, search.Distance, nil)
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Equal(t, -1, compare.Best(results))
}

func TestWriteTable(t *testing.T) {
	g, from, to := bundled(t)
	results, err := compare.Run(context.Background(), g, from, to, search.Distance,
		[]search.Strategy{search.UniformCost, search.Greedy, search.Strategy(99)})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, compare.WriteTable(&buf, results))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "STRATEGY"))
	assert.True(t, strings.HasPrefix(lines[1], "ucs*"), lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "greedy "), lines[2])
	assert.Contains(t, lines[3], "error: search: unknown strategy")
}
