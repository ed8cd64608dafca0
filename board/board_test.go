package board_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slidejewels/board"
	"slidejewels/direction"
)

func parse(t *testing.T, s string) *board.Level {
	t.Helper()
	lvl, err := board.Parse(strings.NewReader(s))
	require.NoError(t, err)
	return lvl
}

func TestParse_MinimalBoard(t *testing.T) {
	lvl := parse(t, "3 3 10\n# # \n . +\n# # \n")
	assert.Equal(t, 3, lvl.Board.Width)
	assert.Equal(t, 3, lvl.Board.Height)
	assert.Equal(t, 10, lvl.MaxMoves)
}

func TestParse_Errors(t *testing.T) {
	_, err := board.Parse(strings.NewReader(""))
	assert.ErrorIs(t, err, board.ErrEmptyInput)

	_, err = board.Parse(strings.NewReader("2 2 5\n##\n##\n"))
	assert.ErrorIs(t, err, board.ErrNoVehicle)

	_, err = board.Parse(strings.NewReader("2 2 5\n..\n##\n"))
	assert.ErrorIs(t, err, board.ErrMultipleVehicles)
}

func TestSlide_ImmediateWallIsDead(t *testing.T) {
	lvl := parse(t, "1 3 5\n.#+\n")
	_, _, ok, _ := lvl.Board.Slide(0, 0, direction.East, false)
	assert.False(t, ok, "a wall in the very next cell yields a zero-length, dead move")
}

func TestSlide_StopsBeforeWall(t *testing.T) {
	lvl := parse(t, "1 4 5\n.+#+\n")
	ex, ey, ok, hit := lvl.Board.Slide(0, 0, direction.East, false)
	assert.True(t, ok)
	assert.Equal(t, 1, ex)
	assert.Equal(t, 0, ey)
	assert.Len(t, hit, 1)
}

func TestSlide_CollectsJewelsAndStopsAtHole(t *testing.T) {
	lvl := parse(t, "1 4 5\n.++O\n")
	ex, ey, ok, hit := lvl.Board.Slide(0, 0, direction.East, false)
	assert.True(t, ok)
	assert.Equal(t, 3, ex)
	assert.Equal(t, 0, ey)
	assert.Len(t, hit, 2)
}

func TestSlide_MineIsDead(t *testing.T) {
	lvl := parse(t, "1 3 5\n.*+\n")
	_, _, ok, _ := lvl.Board.Slide(0, 0, direction.East, false)
	assert.False(t, ok)
}

func TestValidate_RejectsIncompleteCollection(t *testing.T) {
	lvl := parse(t, "1 4 5\n.++O\n")
	assert.Error(t, lvl.Validate(nil))
}

func TestValidate_AcceptsCompleteCollection(t *testing.T) {
	lvl := parse(t, "1 4 5\n.++O\n")
	err := lvl.Validate([]direction.Direction{direction.East})
	assert.NoError(t, err)
}
