package bfs

import (
	"errors"

	"slidejewels/core"
)

// ErrGraphNil is returned if a nil graph pointer is passed.
var ErrGraphNil = errors.New("bfs: graph is nil")

// ErrStartVertexNotFound is returned when the start id is absent.
var ErrStartVertexNotFound = errors.New("bfs: start vertex not found")

// Result holds the outcome of one traversal:
//   - Order: vertices visited, in visit sequence.
//   - Depth: map from vertex id to its distance (in edges) from the start.
//   - Parent: map from vertex id to its predecessor in the BFS tree.
type Result struct {
	Order  []string
	Depth  map[string]int
	Parent map[string]string
}

// BFS runs breadth-first search on g starting from startID, visiting
// neighbors in core.Graph's own deterministic (sorted) NeighborIDs order so
// the result is fully reproducible for a given graph and start vertex.
func BFS(g *core.Graph, startID string) (*Result, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	if !g.HasVertex(startID) {
		return nil, ErrStartVertexNotFound
	}

	n := g.VertexCount()
	res := &Result{
		Order:  make([]string, 0, n),
		Depth:  map[string]int{startID: 0},
		Parent: make(map[string]string, n),
	}

	queue := []string{startID}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		res.Order = append(res.Order, id)

		neighbors, err := g.NeighborIDs(id)
		if err != nil {
			// id came from the queue, which only ever holds ids already
			// validated by HasVertex/NeighborIDs; this cannot happen.
			panic("bfs: unexpected NeighborIDs error: " + err.Error())
		}
		depth := res.Depth[id]
		for _, nbr := range neighbors {
			if _, seen := res.Depth[nbr]; seen {
				continue
			}
			res.Depth[nbr] = depth + 1
			res.Parent[nbr] = id
			queue = append(queue, nbr)
		}
	}
	return res, nil
}
