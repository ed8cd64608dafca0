// Package cah implements the Cheapest-Addition-with-penalty-learning
// heuristic of spec.md §4.6: repeated randomized insertion-based tour
// construction over the move graph, run until a soft time budget expires,
// returning the best complete direction sequence found.
//
// The insertion-cost bookkeeping and penalty-escalation loop are grounded on
// the corpus's tsp package (randomized construction plus a learned-penalty
// pass was its only precedent for this shape of heuristic), adapted from its
// symmetric-TSP insertion rule to the spec's directed, move-graph-specific
// cheapest-insertion formula and SCC-admission filter.
package cah

import (
	"slidejewels/bench"
	"slidejewels/config"
	"slidejewels/direction"
	"slidejewels/metric"
	"slidejewels/movegraph"
	"slidejewels/rng"
	"slidejewels/runremoval"
	"slidejewels/scc"
)

// Candidate is one complete, expanded solution: a direction sequence plus
// its length (number of slide moves), the unit both CAH and 3-opt compare
// candidates by.
type Candidate struct {
	Moves      []*movegraph.Move
	Directions []direction.Direction
	Length     int
}

// engine bundles the read-only problem data and the mutable penalty-learning
// state carried across CAH iterations.
type engine struct {
	g    *movegraph.Graph
	met  *metric.Matrix
	dec  *scc.Decomposition
	cfg  *config.Config
	r    *rng.RNG

	jewelSCCs [][]int // jewelSCCs[j] = SCC ids containing collectible j

	penalty    map[int]float64 // move arena id -> learned penalty
	strikeRun  map[int]int     // move arena id -> consecutive-strike run length
	struckLast map[int]bool    // move arena id -> struck on the previous failed iteration
}

// Run executes spec.md §4.6's outer loop until sw expires, returning the
// best complete candidate found (nil if not a single iteration completed,
// e.g. the budget expired before the first insertion finished). r is the
// caller-owned substream CAH draws its jewel permutations from (spec.md §5:
// one PRNG for the whole run, not a freshly reseeded one per package).
func Run(g *movegraph.Graph, met *metric.Matrix, dec *scc.Decomposition, cfg *config.Config, r *rng.RNG) *Candidate {
	e := &engine{
		g:          g,
		met:        met,
		dec:        dec,
		cfg:        cfg,
		r:          r,
		penalty:    make(map[int]float64),
		strikeRun:  make(map[int]int),
		struckLast: make(map[int]bool),
	}
	e.jewelSCCs = make([][]int, g.NumJewels)
	for _, s := range dec.SCCs {
		for _, jid := range s.Jewels {
			e.jewelSCCs[jid] = append(e.jewelSCCs[jid], s.ID)
		}
	}

	sw := bench.NewStopwatch(cfg.Clock, cfg.MaxTimeForStochasticHeuristic)
	var best *Candidate

	for !sw.Expired() {
		nodeIdx, usedMoves, ok := e.buildTour()
		if !ok {
			continue // learning-only iteration: no complete tour produced
		}
		nodeIdx, usedMoves = e.twoSwapPass(nodeIdx, usedMoves)

		cand := e.expand(nodeIdx, usedMoves)
		if best == nil || cand.Length < best.Length {
			best = cand
			for _, mv := range usedMoves {
				e.penalty[mv]--
			}
		}
		if sw.Expired() {
			break
		}
	}
	return best
}

// buildTour runs one randomized construction (spec.md §4.6 steps 1-4). ok is
// false if some jewel had no admissible insertion, in which case the tour is
// abandoned and the learning step (penalty escalation) has already run.
func (e *engine) buildTour() (nodeIdx []int, usedMoves []int, ok bool) {
	start := e.met.Index[e.g.VehicleNode]
	nodeIdx = []int{start}
	usedMoves = nil
	collected := make([]bool, e.g.NumJewels)

	for _, j := range e.r.Perm(e.g.NumJewels) {
		if collected[j] {
			continue
		}
		pos, mv, found := e.cheapestInsertion(nodeIdx, collected)
		if !found {
			e.learnFromFailure(usedMoves)
			return nil, nil, false
		}
		nodeIdx = spliceTour(nodeIdx, pos, e.met.Index[cellID(mv.Start)], e.met.Index[cellID(mv.End)])
		usedMoves = spliceMoves(usedMoves, pos/2, mv.ID)
		for _, jid := range mv.Jewels {
			collected[jid] = true
		}
	}
	return nodeIdx, usedMoves, true
}

// cheapestInsertion finds the minimum-cost (position, move) pair across
// every uncollected collectible and every move that collects it (spec.md
// §4.6 step 2), honoring the SCC-admission filter of step 3.
func (e *engine) cheapestInsertion(nodeIdx []int, collected []bool) (pos int, best *movegraph.Move, found bool) {
	bestCost := 0.0
	last := len(nodeIdx) - 1

	for jid := 0; jid < e.g.NumJewels; jid++ {
		if collected[jid] {
			continue
		}
		for _, idx := range e.g.MovesCollecting(jid) {
			mv := e.g.Arena[idx]
			if !e.admissible(mv, collected) {
				continue
			}
			su := e.met.Index[cellID(mv.Start)]
			eu := e.met.Index[cellID(mv.End)]
			gain := -float64(len(mv.Jewels)) + e.penalty[mv.ID]

			for i := 0; i <= last; i += 2 {
				var cost float64
				if i == last {
					cost = e.met.At(nodeIdx[i], su) + gain
				} else {
					cost = e.met.At(nodeIdx[i], su) + e.met.At(eu, nodeIdx[i+1]) - e.met.At(nodeIdx[i], nodeIdx[i+1]) + gain
				}
				if !found || cost < bestCost {
					found = true
					bestCost = cost
					pos = i
					best = mv
				}
			}
		}
	}
	return pos, best, found
}

// admissible implements spec.md §4.6 step 3: reject mv if entering its
// start- or end-SCC would permanently strand some still-required
// collectible, per the conditional-unreachability matrix U.
func (e *engine) admissible(mv *movegraph.Move, collected []bool) bool {
	startSCC := e.dec.Of[cellID(mv.Start)]
	endSCC := e.dec.Of[cellID(mv.End)]
	for jid := 0; jid < e.g.NumJewels; jid++ {
		if collected[jid] {
			continue
		}
		if !e.reachableFrom(startSCC, jid) || !e.reachableFrom(endSCC, jid) {
			return false
		}
	}
	return true
}

// reachableFrom reports whether collectible jid can still be reached after
// the vehicle enters scc s: true if s itself holds jid, or s is not
// mutually-exclusive (per U) with at least one SCC holding jid.
func (e *engine) reachableFrom(s, jid int) bool {
	for _, hs := range e.jewelSCCs[jid] {
		if hs == s || !e.dec.U[s][hs] {
			return true
		}
	}
	return false
}

// learnFromFailure applies spec.md §4.6 step 4's penalty escalation to every
// move on the abandoned tour: consecutive strikes (struck both this and the
// previous failed iteration) escalate quadratically; a non-consecutive
// strike resets the run to 1.
func (e *engine) learnFromFailure(usedMoves []int) {
	struckNow := make(map[int]bool, len(usedMoves))
	for _, mv := range usedMoves {
		struckNow[mv] = true
		if e.struckLast[mv] {
			e.strikeRun[mv]++
		} else {
			e.strikeRun[mv] = 1
		}
		run := e.strikeRun[mv]
		e.penalty[mv] += float64(run * run)
	}
	e.struckLast = struckNow
}

// twoSwapPass repeatedly applies spec.md §4.6 step 5's 2-swap exchange: for
// each even index, remove one move and reinsert its jewels, keeping the
// change iff the tour strictly shortened. Stops after a full pass produces
// no improvement.
func (e *engine) twoSwapPass(nodeIdx []int, usedMoves []int) ([]int, []int) {
	improved := true
	for improved {
		improved = false
		for i := 0; i < len(usedMoves); i++ {
			origLen := tourLength(e.met, nodeIdx)
			removedMove := e.g.Arena[usedMoves[i]]

			trialNodes := removeTourPair(nodeIdx, i)
			trialMoves := removeAt(usedMoves, i)

			collected := make([]bool, e.g.NumJewels)
			for _, mvID := range trialMoves {
				for _, jid := range e.g.Arena[mvID].Jewels {
					collected[jid] = true
				}
			}
			ok := true
			for _, jid := range removedMove.Jewels {
				if collected[jid] {
					continue
				}
				pos, mv, found := e.cheapestInsertion(trialNodes, collected)
				if !found {
					ok = false
					break
				}
				trialNodes = spliceTour(trialNodes, pos, e.met.Index[cellID(mv.Start)], e.met.Index[cellID(mv.End)])
				trialMoves = spliceMoves(trialMoves, pos/2, mv.ID)
				for _, jid2 := range mv.Jewels {
					collected[jid2] = true
				}
			}
			if ok && tourLength(e.met, trialNodes) < origLen {
				nodeIdx, usedMoves = trialNodes, trialMoves
				improved = true
			}
		}
	}
	return nodeIdx, usedMoves
}

// expand converts a (node index, used move) tour into a full direction
// sequence (spec.md §4.6 step 6), filling the gaps between consecutive
// move-pairs with a realized shortest path.
func (e *engine) expand(nodeIdx []int, usedMoves []int) *Candidate {
	var moves []*movegraph.Move
	for k, mvID := range usedMoves {
		gapFrom := nodeIdx[2*k]
		gapTo := nodeIdx[2*k+1]
		if gapFrom != gapTo {
			moves = append(moves, e.g.ShortestPath(e.met.Nodes[gapFrom], e.met.Nodes[gapTo])...)
		}
		moves = append(moves, e.g.Arena[mvID])
	}

	moves = runremoval.ReduceToFixpoint(e.g, e.met, moves)

	return toCandidate(moves)
}

func toCandidate(moves []*movegraph.Move) *Candidate {
	dirs := make([]direction.Direction, len(moves))
	for i, mv := range moves {
		dirs[i] = mv.Dir
	}
	return &Candidate{Moves: moves, Directions: dirs, Length: len(dirs)}
}

func cellID(c [2]int) string { return movegraph.CellID(c[0], c[1]) }

func tourLength(met *metric.Matrix, nodeIdx []int) float64 {
	total := 0.0
	for i := 0; i+1 < len(nodeIdx); i++ {
		total += met.At(nodeIdx[i], nodeIdx[i+1])
	}
	return total
}

func spliceTour(nodeIdx []int, pos, startIdx, endIdx int) []int {
	out := make([]int, 0, len(nodeIdx)+2)
	out = append(out, nodeIdx[:pos+1]...)
	out = append(out, startIdx, endIdx)
	out = append(out, nodeIdx[pos+1:]...)
	return out
}

func spliceMoves(usedMoves []int, pairPos, mvID int) []int {
	out := make([]int, 0, len(usedMoves)+1)
	out = append(out, usedMoves[:pairPos]...)
	out = append(out, mvID)
	out = append(out, usedMoves[pairPos:]...)
	return out
}

// removeTourPair deletes the move-pair (start,end) beginning at node index
// 2*i+1, the inverse of spliceTour at pairPos==i.
func removeTourPair(nodeIdx []int, i int) []int {
	out := make([]int, 0, len(nodeIdx)-2)
	out = append(out, nodeIdx[:2*i+1]...)
	out = append(out, nodeIdx[2*i+3:]...)
	return out
}

func removeAt(usedMoves []int, i int) []int {
	out := make([]int, 0, len(usedMoves)-1)
	out = append(out, usedMoves[:i]...)
	out = append(out, usedMoves[i+1:]...)
	return out
}
