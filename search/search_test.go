package search_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slidejewels/board"
	"slidejewels/config"
	"slidejewels/direction"
	"slidejewels/metric"
	"slidejewels/movegraph"
	"slidejewels/potential"
	"slidejewels/rng"
	"slidejewels/scc"
	"slidejewels/search"
)

// buildAll constructs every piece search.Run needs from a literal board. Every
// literal carries a full wall perimeter: Build's 8-directional exploration
// would otherwise walk an unbordered strip off the grid forever.
func buildAll(t *testing.T, s string) (*movegraph.Graph, *metric.Matrix, *scc.Decomposition, *potential.Field) {
	t.Helper()
	lvl, err := board.Parse(strings.NewReader(s))
	require.NoError(t, err)
	g := movegraph.Build(lvl)
	met := metric.Build(g)
	dec := scc.Build(g)
	fld := potential.Build(g)
	return g, met, dec, fld
}

func TestRun_NoJewelsReturnsEmptySolution(t *testing.T) {
	g, met, dec, fld := buildAll(t, "3 3 20\n###\n#.#\n###\n")
	cfg := config.Default()

	res := search.Run(g, met, dec, fld, cfg, 5, rng.New(cfg.RNGSeed))
	require.True(t, res.Found)
	assert.Empty(t, res.Directions)
}

func TestRun_FindsDirectSolutionWithinBudget(t *testing.T) {
	g, met, dec, fld := buildAll(t, "3 6 20\n######\n#.++O#\n######\n")
	cfg := config.Default()

	res := search.Run(g, met, dec, fld, cfg, 1, rng.New(cfg.RNGSeed))
	require.True(t, res.Found)
	assert.Equal(t, []direction.Direction{direction.East}, res.Directions)
}

func TestRun_FailsWhenBudgetIsTooTight(t *testing.T) {
	g, met, dec, fld := buildAll(t, "3 6 20\n######\n#.++O#\n######\n")
	cfg := config.Default()

	res := search.Run(g, met, dec, fld, cfg, 0, rng.New(cfg.RNGSeed))
	assert.False(t, res.Found, "collecting both jewels needs at least one move, which a zero-move budget cannot afford")
	assert.Empty(t, res.Directions)
}

func TestRun_FailsWhenACollectibleIsUnreachable(t *testing.T) {
	g, met, dec, fld := buildAll(t, "3 6 20\n######\n#.+#+#\n######\n")
	require.False(t, g.Reachable())
	cfg := config.Default()

	res := search.Run(g, met, dec, fld, cfg, 20, rng.New(cfg.RNGSeed))
	assert.False(t, res.Found)
	assert.Empty(t, res.Directions)
}
