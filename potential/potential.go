// Package potential implements the potential field of spec.md §4.9: a
// per-(collectible, edge) value representing the "pull" of an uncollected
// collectible along that edge, propagated backward across the move graph
// with attenuation and summed per-edge into the backtracking search's
// ordering heuristic.
package potential

import (
	"math"

	"slidejewels/movegraph"
)

const maxPotential = 255

// Field holds P[j][e] and the live per-edge sum T[e].
type Field struct {
	numJewels int
	numEdges  int

	p [][]float64 // p[j][e]
	t []float64   // t[e], current sum over uncollected jewels

	// contributing[j] is true while jewel j is currently uncollected and
	// thus contributing its row to t.
	contributing []bool
}

// saturate implements the attenuation function of spec.md §4.9/§9:
// saturate(p) = floor(p/7)*3, an approximately 0.43x decay per hop.
func saturate(p float64) float64 {
	return math.Floor(p/7) * 3
}

// Build initializes and fully propagates the field for g (spec.md §4.9
// "Initialization" and "Propagation"), then applies the diagonal-edge
// de-weighting and initial summarization (all jewels start uncollected).
func Build(g *movegraph.Graph) *Field {
	numEdges := len(g.Arena)
	f := &Field{
		numJewels:    g.NumJewels,
		numEdges:     numEdges,
		p:            make([][]float64, g.NumJewels),
		t:            make([]float64, numEdges),
		contributing: make([]bool, g.NumJewels),
	}
	for j := 0; j < g.NumJewels; j++ {
		f.p[j] = make([]float64, numEdges)
		f.propagateOne(g, j)
		f.contributing[j] = true
	}
	f.applyDiagonalScaling(g)
	f.recomputeT()
	return f
}

// propagateOne seeds P[j][e]=255 for every edge traversing j, then BFS's
// backward across predecessor edges (found via movesByEnd), attenuating by
// saturate at each hop and enqueuing only strictly-improved edges.
func (f *Field) propagateOne(g *movegraph.Graph, j int) {
	row := f.p[j]
	queue := make([]int, 0, len(g.MovesCollecting(j)))
	for _, e := range g.MovesCollecting(j) {
		row[e] = maxPotential
		queue = append(queue, e)
	}

	for len(queue) > 0 {
		e := queue[0]
		queue = queue[1:]
		candidate := saturate(row[e])
		if candidate <= 0 {
			continue
		}
		start := g.Arena[e].Start
		for _, pe := range g.MovesEndingAt(movegraph.CellID(start[0], start[1])) {
			if candidate > row[pe] {
				row[pe] = candidate
				queue = append(queue, pe)
			}
		}
	}
}

// applyDiagonalScaling offsets that diagonal slides traverse more distance
// per step (spec.md §4.9 "Summarization").
func (f *Field) applyDiagonalScaling(g *movegraph.Graph) {
	const diagonalFactor = 1 / math.Sqrt2
	for e, mv := range g.Arena {
		if !mv.Dir.IsDiagonal() {
			continue
		}
		for j := 0; j < f.numJewels; j++ {
			f.p[j][e] *= diagonalFactor
		}
	}
}

// recomputeT rebuilds T[e] from scratch as the sum over currently
// contributing jewels. Used only at Build time; live updates use Collect/
// Uncollect instead of a full recompute.
func (f *Field) recomputeT() {
	for e := 0; e < f.numEdges; e++ {
		f.t[e] = 0
	}
	for j := 0; j < f.numJewels; j++ {
		if !f.contributing[j] {
			continue
		}
		f.addRow(j)
	}
}

func (f *Field) addRow(j int) {
	row := f.p[j]
	for e := 0; e < f.numEdges; e++ {
		f.t[e] += row[e]
	}
}

func (f *Field) subRow(j int) {
	row := f.p[j]
	for e := 0; e < f.numEdges; e++ {
		f.t[e] -= row[e]
	}
}

// Collect disables jewel j's contribution to T (called on the 0->positive
// boundary flip reported by jewelstate.State.Add). No-op if already disabled.
func (f *Field) Collect(j int) {
	if !f.contributing[j] {
		return
	}
	f.contributing[j] = false
	f.subRow(j)
}

// Uncollect re-enables jewel j's contribution to T (called on the
// positive->0 boundary flip reported by jewelstate.State.Remove, i.e. on
// backtrack). No-op if already enabled.
func (f *Field) Uncollect(j int) {
	if f.contributing[j] {
		return
	}
	f.contributing[j] = true
	f.addRow(j)
}

// T returns the current total potential of edge e.
func (f *Field) T(e int) float64 {
	return f.t[e]
}
