// Package runremoval implements spec.md §4.8's subpath-shortening pass: find
// the contiguous run of moves with the largest slack (length minus the
// distance between its endpoints) whose collectibles are all provably
// redundant (each collected at least twice elsewhere in the solution), and
// replace it with a shorter greedy walk toward the same endpoint, iterated
// to fixpoint. Both the CAH heuristic (end of §4.6 step 6) and the
// backtracking search (§4.10 point 4) call this to compress a solution
// below the move budget.
package runremoval

import (
	"slidejewels/metric"
	"slidejewels/movegraph"
)

// ReduceToFixpoint repeatedly applies Reduce until no further shortening is
// found, returning the (possibly unchanged) compressed move sequence.
func ReduceToFixpoint(g *movegraph.Graph, met *metric.Matrix, moves []*movegraph.Move) []*movegraph.Move {
	for {
		next, changed := Reduce(g, met, moves)
		if !changed {
			return moves
		}
		moves = next
	}
}

// Reduce performs a single pass of spec.md §4.8: among every redundant
// slice, the one maximizing (length - dist[start,end]) is replaced by a
// greedy decreasing-distance walk of at most length-1 steps. Returns the new
// sequence and whether a replacement was made.
func Reduce(g *movegraph.Graph, met *metric.Matrix, moves []*movegraph.Move) ([]*movegraph.Move, bool) {
	if len(moves) == 0 {
		return moves, false
	}
	counts := jewelCounts(moves)

	bestBegin, bestEnd, bestSlack := -1, -1, -1.0
	for begin := 0; begin < len(moves); begin++ {
		within := make(map[int]int)
		for end := begin; end <= len(moves); end++ {
			if end > begin {
				for _, jid := range moves[end-1].Jewels {
					within[jid]++
				}
			}
			if end == begin {
				continue
			}
			if !redundant(within, counts) {
				continue
			}
			startNode := met.Index[movegraph.CellID(moves[begin].Start[0], moves[begin].Start[1])]
			endNode := met.Index[movegraph.CellID(moves[end-1].End[0], moves[end-1].End[1])]
			length := end - begin
			slack := float64(length) - met.At(startNode, endNode)
			if slack > bestSlack {
				bestSlack = slack
				bestBegin, bestEnd = begin, end
			}
		}
	}
	if bestBegin < 0 || bestSlack <= 0 {
		return moves, false
	}

	startCoord := moves[bestBegin].Start
	endCoord := moves[bestEnd-1].End
	budget := (bestEnd - bestBegin) - 1
	replacement, ok := greedyWalk(g, met, startCoord, endCoord, budget)
	if !ok {
		return moves, false
	}

	out := make([]*movegraph.Move, 0, len(moves)-(bestEnd-bestBegin)+len(replacement))
	out = append(out, moves[:bestBegin]...)
	out = append(out, replacement...)
	out = append(out, moves[bestEnd:]...)
	return out, true
}

// jewelCounts totals how many times each collectible id is collected across
// the full move sequence.
func jewelCounts(moves []*movegraph.Move) map[int]int {
	counts := make(map[int]int)
	for _, mv := range moves {
		for _, jid := range mv.Jewels {
			counts[jid]++
		}
	}
	return counts
}

// redundant reports whether every collectible occurrence inside the
// candidate slice (within) still has at least two occurrences left over
// elsewhere in the full solution (spec.md §4.8).
func redundant(within, total map[int]int) bool {
	for jid, n := range within {
		if total[jid]-n < 2 {
			return false
		}
	}
	return true
}

// greedyWalk builds a path from start to end of at most budget moves by
// repeatedly taking the live outgoing move whose destination minimizes
// distance-to-target (spec.md §4.8 "greedy decreasing-distance direction
// choice"). Fails if it cannot reach end within budget steps.
func greedyWalk(g *movegraph.Graph, met *metric.Matrix, start, end [2]int, budget int) ([]*movegraph.Move, bool) {
	if start == end {
		return nil, true
	}
	targetIdx := met.Index[movegraph.CellID(end[0], end[1])]
	path := make([]*movegraph.Move, 0, budget)
	cur := start
	for step := 0; step < budget; step++ {
		if cur == end {
			return path, true
		}
		best := bestStepToward(g, met, cur, targetIdx)
		if best == nil {
			return nil, false
		}
		path = append(path, best)
		cur = best.End
	}
	return path, cur == end
}

func bestStepToward(g *movegraph.Graph, met *metric.Matrix, from [2]int, targetIdx int) *movegraph.Move {
	var best *movegraph.Move
	bestDist := 0.0
	for _, mv := range g.MovesFrom(from[0], from[1]) {
		endIdx := met.Index[movegraph.CellID(mv.End[0], mv.End[1])]
		d := met.At(endIdx, targetIdx)
		if best == nil || d < bestDist {
			best = mv
			bestDist = d
		}
	}
	return best
}
