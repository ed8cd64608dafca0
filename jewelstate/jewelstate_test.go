package jewelstate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"slidejewels/jewelstate"
)

func TestNew_AllUncollected(t *testing.T) {
	s := jewelstate.New(3)
	assert.Equal(t, 3, s.NumLeft())
	for id := 0; id < 3; id++ {
		assert.False(t, s.Collected(id))
		assert.Equal(t, 0, s.Count(id))
	}
}

func TestAdd_FlipsOnlyOnZeroToPositive(t *testing.T) {
	s := jewelstate.New(1)
	assert.True(t, s.Add(0), "first traversal crosses the boundary")
	assert.False(t, s.Add(0), "second traversal while already collected does not flip")
	assert.Equal(t, 2, s.Count(0))
	assert.True(t, s.Collected(0))
	assert.Equal(t, 0, s.NumLeft())
}

func TestRemove_FlipsOnlyOnPositiveToZero(t *testing.T) {
	s := jewelstate.New(1)
	s.Add(0)
	s.Add(0)
	assert.False(t, s.Remove(0), "still collected once after this removal")
	assert.True(t, s.Remove(0), "drops back to zero, crossing the boundary")
	assert.Equal(t, 1, s.NumLeft())
}

func TestAddAllRemoveAll_ExactInverse(t *testing.T) {
	s := jewelstate.New(4)
	ids := []int{0, 1, 0, 2}

	flippedUp := s.AddAll(ids)
	assert.Equal(t, []int{0, 1, 2}, flippedUp)
	assert.Equal(t, 1, s.NumLeft())
	assert.Equal(t, 2, s.Count(0))

	flippedDown := s.RemoveAll(ids)
	assert.Equal(t, []int{2, 1, 0}, flippedDown, "RemoveAll walks ids in reverse order")
	assert.Equal(t, 4, s.NumLeft())
	for id := 0; id < 4; id++ {
		assert.Equal(t, 0, s.Count(id))
	}
}

func TestClone_IsIndependent(t *testing.T) {
	s := jewelstate.New(2)
	s.Add(0)

	clone := s.Clone()
	clone.Add(1)

	assert.False(t, s.Collected(1), "mutating the clone must not affect the original")
	assert.True(t, clone.Collected(0))
	assert.True(t, clone.Collected(1))
	assert.Equal(t, 1, s.NumLeft())
	assert.Equal(t, 0, clone.NumLeft())
}
