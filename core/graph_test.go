package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slidejewels/core"
)

func TestAddVertex_IsIdempotent(t *testing.T) {
	g := core.NewGraph()
	require.NoError(t, g.AddVertex("0,0"))
	require.NoError(t, g.AddVertex("0,0"))
	assert.Equal(t, 1, g.VertexCount())
}

func TestAddVertex_RejectsEmptyID(t *testing.T) {
	g := core.NewGraph()
	assert.ErrorIs(t, g.AddVertex(""), core.ErrEmptyCellID)
}

func TestAddEdge_AutoCreatesEndpoints(t *testing.T) {
	g := core.NewGraph()
	_, err := g.AddEdge("0,0", "1,0")
	require.NoError(t, err)
	assert.True(t, g.HasVertex("0,0"))
	assert.True(t, g.HasVertex("1,0"))
	assert.Equal(t, 2, g.VertexCount())
}

func TestAddEdge_ToleratesParallelLinks(t *testing.T) {
	g := core.NewGraph()
	id1, err := g.AddEdge("0,0", "1,0")
	require.NoError(t, err)
	id2, err := g.AddEdge("0,0", "1,0")
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2, "two links over the same pair of cells must get distinct ids")

	neighbors, err := g.NeighborIDs("0,0")
	require.NoError(t, err)
	assert.Equal(t, []string{"1,0"}, neighbors, "NeighborIDs is a unique vertex set, not a link count")
}

func TestNeighborIDs_SortedAndUnregisteredIsError(t *testing.T) {
	g := core.NewGraph()
	_, err := g.AddEdge("0,0", "1,0")
	require.NoError(t, err)
	_, err = g.AddEdge("0,0", "0,1")
	require.NoError(t, err)

	neighbors, err := g.NeighborIDs("0,0")
	require.NoError(t, err)
	assert.Equal(t, []string{"0,1", "1,0"}, neighbors)

	_, err = g.NeighborIDs("9,9")
	assert.ErrorIs(t, err, core.ErrCellNotFound)
}

func TestVertices_SortedAscending(t *testing.T) {
	g := core.NewGraph()
	require.NoError(t, g.AddVertex("2,0"))
	require.NoError(t, g.AddVertex("0,0"))
	require.NoError(t, g.AddVertex("1,0"))
	assert.Equal(t, []string{"0,0", "1,0", "2,0"}, g.Vertices())
}
