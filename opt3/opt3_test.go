package opt3_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slidejewels/board"
	"slidejewels/cah"
	"slidejewels/config"
	"slidejewels/direction"
	"slidejewels/metric"
	"slidejewels/movegraph"
	"slidejewels/opt3"
	"slidejewels/rng"
	"slidejewels/scc"
)

func buildLevel(t *testing.T, s string) *board.Level {
	t.Helper()
	lvl, err := board.Parse(strings.NewReader(s))
	require.NoError(t, err)
	return lvl
}

func TestOptimize_NilCandidatePassesThrough(t *testing.T) {
	cfg := config.Default()
	assert.Nil(t, opt3.Optimize(nil, nil, nil, 10, cfg))
}

func TestOptimize_AlreadyWithinBudgetReturnsUnchanged(t *testing.T) {
	cand := &cah.Candidate{
		Moves:      []*movegraph.Move{{ID: 0, Dir: direction.East}},
		Directions: []direction.Direction{direction.East},
		Length:     1,
	}
	cfg := config.Default()
	got := opt3.Optimize(nil, nil, cand, 5, cfg)
	assert.Same(t, cand, got, "a candidate already within maxMoves must be returned unchanged, without touching g or met")
}

func TestOptimize_TooFewNodesForAWindowLeavesCandidateIntact(t *testing.T) {
	lvl := buildLevel(t, "3 6 20\n######\n#.++O#\n######\n")
	g := movegraph.Build(lvl)
	met := metric.Build(g)
	dec := scc.Build(g)

	cfg := config.Default(config.WithStochasticBudget(20 * time.Millisecond))
	cand := cah.Run(g, met, dec, cfg, rng.New(cfg.RNGSeed))
	require.NotNil(t, cand)
	require.Equal(t, 1, cand.Length)

	cfg3 := config.Default(config.WithOpt3Budget(5 * time.Millisecond))
	got := opt3.Optimize(g, met, cand, 0, cfg3)
	require.NotNil(t, got)
	assert.Equal(t, 1, got.Length, "a single-segment tour has too few coalesced nodes for any 3-opt window, so it passes through unchanged")
	assert.Len(t, got.Directions, len(got.Moves))
}
