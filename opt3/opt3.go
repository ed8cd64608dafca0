// Package opt3 implements the windowed non-reversing 3-opt optimizer of
// spec.md §4.7, applied to a CAH candidate that still exceeds maxMoves.
//
// The soft-deadline check-every-iteration discipline and the "recompute via
// the distance matrix, commit on strict improvement, restart the scan"
// shape are grounded on the corpus's tsp package (its own three-opt pass
// used the identical soft-budget loop structure); the reconnection rule
// itself is adapted from the spec's directed, move-graph setting rather
// than the corpus's symmetric-TSP segment reversal.
package opt3

import (
	"math"

	"slidejewels/bench"
	"slidejewels/cah"
	"slidejewels/config"
	"slidejewels/direction"
	"slidejewels/metric"
	"slidejewels/movegraph"
)

// tour is the coalesced representation spec.md §4.7 operates on: N node
// positions (dense metric indices) joined by N-1 segments, each segment
// being the run of original moves between two consecutive important-edge
// boundaries (an edge is "important" if it collects a first-time
// collectible, so splitting never discards a jewel-collecting move).
type tour struct {
	nodes    []int
	segments [][]*movegraph.Move
}

// Optimize runs spec.md §4.7 within cfg.MaxTimeForOpt3, returning the
// possibly-shortened candidate. If cand already fits maxMoves, it is
// returned unchanged (the optimizer only spends its budget on over-length
// candidates, per spec).
func Optimize(g *movegraph.Graph, met *metric.Matrix, cand *cah.Candidate, maxMoves int, cfg *config.Config) *cah.Candidate {
	if cand == nil || cand.Length <= maxMoves {
		return cand
	}
	sw := bench.NewStopwatch(cfg.Clock, cfg.MaxTimeForOpt3)

	t := coalesce(g, met, cand.Moves)
	window := cfg.MinimalOpt3WindowSize
	if root := int(math.Sqrt(float64(len(t.nodes) - 1))); root > window {
		window = root
	}

	for !sw.Expired() {
		if tryImprove(g, met, t, window) {
			continue
		}
		maxWindow := len(t.nodes) - 1
		if length(t) <= maxMoves || window >= maxWindow {
			break
		}
		window = int(float64(window) * cfg.Opt3WindowIncreaseFactor)
		if window > maxWindow {
			window = maxWindow
		}
	}

	return toCandidate(t)
}

// coalesce builds the initial coalesced tour from a flat move sequence.
func coalesce(g *movegraph.Graph, met *metric.Matrix, moves []*movegraph.Move) *tour {
	if len(moves) == 0 {
		return &tour{nodes: []int{met.Index[g.VehicleNode]}}
	}
	seen := make(map[int]bool)
	nodes := []int{met.Index[movegraph.CellID(moves[0].Start[0], moves[0].Start[1])]}
	var segments [][]*movegraph.Move
	var cur []*movegraph.Move

	for _, mv := range moves {
		cur = append(cur, mv)
		important := false
		for _, jid := range mv.Jewels {
			if !seen[jid] {
				seen[jid] = true
				important = true
			}
		}
		if important {
			nodes = append(nodes, met.Index[movegraph.CellID(mv.End[0], mv.End[1])])
			segments = append(segments, cur)
			cur = nil
		}
	}
	if len(cur) > 0 {
		last := moves[len(moves)-1]
		nodes = append(nodes, met.Index[movegraph.CellID(last.End[0], last.End[1])])
		segments = append(segments, cur)
	}
	return &tour{nodes: nodes, segments: segments}
}

func length(t *tour) int {
	n := 0
	for _, seg := range t.segments {
		n += len(seg)
	}
	return n
}

// tryImprove scans every admissible triple (i, j, k) within window and
// commits the first strictly-improving non-reversing reconnection found,
// per spec.md §4.7 ("on any commit, break to the outer loop").
func tryImprove(g *movegraph.Graph, met *metric.Matrix, t *tour, window int) bool {
	n := len(t.nodes)
	for i := 0; i <= n-6; i++ {
		jMax := min(i+window, n-4)
		for j := i + 2; j <= jMax; j++ {
			kMax := min(j+window, n-2)
			for k := j + 2; k <= kMax; k++ {
				if tryReconnect(g, met, t, i, j, k) {
					return true
				}
			}
		}
	}
	return false
}

// tryReconnect evaluates the unique non-reversing reconnection removing
// edges i, j, k and, if it strictly shrinks the tour, commits it.
func tryReconnect(g *movegraph.Graph, met *metric.Matrix, t *tour, i, j, k int) bool {
	nodes := t.nodes
	oldCost := met.At(nodes[i], nodes[i+1]) + met.At(nodes[j], nodes[j+1]) + met.At(nodes[k], nodes[k+1])
	newCost := met.At(nodes[i], nodes[j+1]) + met.At(nodes[k], nodes[i+1]) + met.At(nodes[j], nodes[k+1])
	if newCost >= oldCost {
		return false
	}

	gap1, ok1 := gapPath(g, met, nodes[i], nodes[j+1])
	gap2, ok2 := gapPath(g, met, nodes[k], nodes[i+1])
	gap3, ok3 := gapPath(g, met, nodes[j], nodes[k+1])
	if !ok1 || !ok2 || !ok3 {
		return false // the distance matrix promised a shorter route that the move graph cannot realize directly
	}

	p0n, p0s := nodes[:i+1], t.segments[:i]
	p1n, p1s := nodes[i+1:j+1], t.segments[i+1:j]
	p2n, p2s := nodes[j+1:k+1], t.segments[j+1:k]
	p3n, p3s := nodes[k+1:], t.segments[k+1:]

	newNodes := make([]int, 0, len(nodes))
	newNodes = append(newNodes, p0n...)
	newNodes = append(newNodes, p2n...)
	newNodes = append(newNodes, p1n...)
	newNodes = append(newNodes, p3n...)

	newSegs := make([][]*movegraph.Move, 0, len(t.segments)+2)
	// A gap between identical nodes is an empty segment, still appended so
	// that segments stay aligned one-per-edge with nodes.
	newSegs = append(newSegs, p0s...)
	newSegs = append(newSegs, gap1)
	newSegs = append(newSegs, p2s...)
	newSegs = append(newSegs, gap2)
	newSegs = append(newSegs, p1s...)
	newSegs = append(newSegs, gap3)
	newSegs = append(newSegs, p3s...)

	t.nodes = newNodes
	t.segments = newSegs
	return true
}

// gapPath returns the move path between two coalesced node indices, or an
// empty (but ok) path if they are already the same node.
func gapPath(g *movegraph.Graph, met *metric.Matrix, fromIdx, toIdx int) ([]*movegraph.Move, bool) {
	if fromIdx == toIdx {
		return nil, true
	}
	path := g.ShortestPath(met.Nodes[fromIdx], met.Nodes[toIdx])
	return path, path != nil
}

func toCandidate(t *tour) *cah.Candidate {
	var moves []*movegraph.Move
	for _, seg := range t.segments {
		moves = append(moves, seg...)
	}
	dirs := make([]direction.Direction, len(moves))
	for i, mv := range moves {
		dirs[i] = mv.Dir
	}
	return &cah.Candidate{Moves: moves, Directions: dirs, Length: len(dirs)}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
