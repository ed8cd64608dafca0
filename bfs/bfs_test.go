package bfs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slidejewels/bfs"
	"slidejewels/core"
)

func TestBFS_RejectsNilGraph(t *testing.T) {
	_, err := bfs.BFS(nil, "0,0")
	assert.ErrorIs(t, err, bfs.ErrGraphNil)
}

func TestBFS_RejectsMissingStart(t *testing.T) {
	g := core.NewGraph()
	require.NoError(t, g.AddVertex("0,0"))
	_, err := bfs.BFS(g, "9,9")
	assert.ErrorIs(t, err, bfs.ErrStartVertexNotFound)
}

func TestBFS_SingleVertexHasOnlyItself(t *testing.T) {
	g := core.NewGraph()
	require.NoError(t, g.AddVertex("0,0"))
	res, err := bfs.BFS(g, "0,0")
	require.NoError(t, err)
	assert.Equal(t, []string{"0,0"}, res.Order)
	assert.Equal(t, map[string]int{"0,0": 0}, res.Depth)
	assert.Empty(t, res.Parent)
}

// A -> B -> C, a simple directed chain.
func TestBFS_DepthAndParentAlongAChain(t *testing.T) {
	g := core.NewGraph()
	_, err := g.AddEdge("A", "B")
	require.NoError(t, err)
	_, err = g.AddEdge("B", "C")
	require.NoError(t, err)

	res, err := bfs.BFS(g, "A")
	require.NoError(t, err)
	assert.Equal(t, 0, res.Depth["A"])
	assert.Equal(t, 1, res.Depth["B"])
	assert.Equal(t, 2, res.Depth["C"])
	assert.Equal(t, "A", res.Parent["B"])
	assert.Equal(t, "B", res.Parent["C"])
}

func TestBFS_UnreachableVertexHasNoDepthEntry(t *testing.T) {
	g := core.NewGraph()
	_, err := g.AddEdge("A", "B")
	require.NoError(t, err)
	require.NoError(t, g.AddVertex("Z")) // isolated, no link to or from A

	res, err := bfs.BFS(g, "A")
	require.NoError(t, err)
	_, reached := res.Depth["Z"]
	assert.False(t, reached)
}

func TestBFS_ParallelLinksDoNotAffectDistance(t *testing.T) {
	g := core.NewGraph()
	_, err := g.AddEdge("A", "B")
	require.NoError(t, err)
	_, err = g.AddEdge("A", "B")
	require.NoError(t, err)

	res, err := bfs.BFS(g, "A")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Depth["B"])
}
