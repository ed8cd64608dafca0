package direction_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"slidejewels/direction"
)

func TestDelta_MatchesCompassOrder(t *testing.T) {
	n := direction.North.Delta()
	assert.Equal(t, direction.Delta{DX: 0, DY: -1}, n)

	e := direction.East.Delta()
	assert.Equal(t, direction.Delta{DX: 1, DY: 0}, e)
}

func TestOpposite(t *testing.T) {
	assert.Equal(t, direction.South, direction.North.Opposite())
	assert.Equal(t, direction.West, direction.East.Opposite())
	assert.Equal(t, direction.North, direction.South.Opposite())
}

func TestIsDiagonal(t *testing.T) {
	for _, d := range direction.All() {
		want := d == direction.NorthEast || d == direction.SouthEast || d == direction.SouthWest || d == direction.NorthWest
		assert.Equal(t, want, d.IsDiagonal(), "direction %v", d)
	}
}

func TestToID_IsSingleDecimalDigit(t *testing.T) {
	for i, d := range direction.All() {
		assert.Equal(t, byte('0'+i), d.ToID())
	}
}

func TestAll_HasEightEntries(t *testing.T) {
	assert.Len(t, direction.All(), 8)
}
