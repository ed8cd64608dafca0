// Package metric computes the all-pairs shortest-path distance matrix over
// the move graph (spec.md §4.2), by running one BFS per node against the
// graph's own bfs.BFS implementation and writing each resulting depth map
// into one row of a dense distance matrix.
package metric

import (
	"math"

	"slidejewels/bfs"
	"slidejewels/movegraph"
)

// Matrix is a row-major dense distance matrix, grounded on the corpus's
// Dense design (flat backing slice, explicit i*cols+j indexing) but
// specialized to the solver's unit-edge BFS metric: entries are either a
// small non-negative integer distance or +Inf for unreachable pairs.
type Matrix struct {
	n    int
	data []float64 // flat, row-major; data[u*n+v] == dist[u][v]

	// Index maps a cell id (e.g. "3,4") to its dense node id in [0, n).
	Index map[string]int
	// Nodes is the reverse lookup: Nodes[id] is the cell id of dense node id.
	Nodes []string
}

// At returns dist[u][v]; math.Inf(1) if v is unreachable from u.
func (m *Matrix) At(u, v int) float64 {
	return m.data[u*m.n+v]
}

func (m *Matrix) set(u, v int, d float64) {
	m.data[u*m.n+v] = d
}

// N returns the number of nodes (matrix dimension).
func (m *Matrix) N() int { return m.n }

// Build computes dist[u][v] for every pair of nodes in g via one BFS per
// source (spec.md §4.2). Node ids are the dense index into g.Core.Vertices()
// (already returned in deterministic sorted order by core.Graph).
func Build(g *movegraph.Graph) *Matrix {
	nodes := g.Core.Vertices()
	n := len(nodes)

	m := &Matrix{
		n:     n,
		data:  make([]float64, n*n),
		Index: make(map[string]int, n),
		Nodes: nodes,
	}
	for i, id := range nodes {
		m.Index[id] = i
	}
	for i := range m.data {
		m.data[i] = math.Inf(1)
	}
	for u := range nodes {
		m.set(u, u, 0)
	}

	for u, id := range nodes {
		res, err := bfs.BFS(g.Core, id)
		if err != nil {
			// g.Core is never nil here, and id is always a vertex of it (it
			// came from g.Core.Vertices()); bfs.BFS can only fail on a nil
			// graph or a missing start vertex.
			panic("metric: unexpected bfs.BFS error: " + err.Error())
		}
		for vID, d := range res.Depth {
			m.set(u, m.Index[vID], float64(d))
		}
	}
	return m
}
