// Package search implements the potential-field-guided backtracking DFS of
// spec.md §4.10: the final stage, which either produces a
// move-budget-conforming solution or reports failure. Probabilistic sibling
// skipping and the bail rule cut the search short, so a failure does not
// prove that no solution exists.
//
// The push/pop-exactly-inverted mutation discipline on the search stack is
// grounded on the corpus's dfs package (its recursive White/Gray/Black walk
// is the only precedent in the corpus for a graph traversal that must leave
// shared state byte-identical on return); the pruning/detour/skip heuristics
// themselves are new, adapted directly from spec.md §4.10 since nothing in
// the corpus models probabilistic backtracking search.
package search

import (
	"math"
	"sort"

	"slidejewels/config"
	"slidejewels/direction"
	"slidejewels/jewelstate"
	"slidejewels/metric"
	"slidejewels/movegraph"
	"slidejewels/potential"
	"slidejewels/rng"
	"slidejewels/runremoval"
	"slidejewels/scc"
)

// Result is the outcome of a search run (spec.md §3 Solution: empty iff the
// board has no collectibles, invalid iff Found is false).
type Result struct {
	Directions []direction.Direction
	Found      bool
}

type engine struct {
	g   *movegraph.Graph
	met *metric.Matrix
	dec *scc.Decomposition
	fld *potential.Field
	cfg *config.Config
	r   *rng.RNG

	maxMoves        int
	additionalTotal int
	additionalLeft  int

	jstate  *jewelstate.State
	numLeftAt map[string]int // cell id -> numLeft recorded on the latest arrival at that cell along the current path
	solution  []*movegraph.Move

	baseSkip []float64

	bail   bool // "no hope" global abort, spec.md §4.10 point 4's bail branch
	bestOver int // shortest over-budget complete solution length seen so far
}

// Run executes spec.md §4.10 from the vehicle's starting cell. r is the
// caller-owned substream the search draws its skip coin flips from (spec.md
// §5: one PRNG for the whole run, not a freshly reseeded one per package).
func Run(g *movegraph.Graph, met *metric.Matrix, dec *scc.Decomposition, fld *potential.Field, cfg *config.Config, maxMoves int, r *rng.RNG) *Result {
	e := &engine{
		g: g, met: met, dec: dec, fld: fld, cfg: cfg,
		r:        r,
		maxMoves: maxMoves,
		jstate:   jewelstate.New(g.NumJewels),
		numLeftAt: make(map[string]int),
		bestOver: math.MaxInt32,
	}
	e.additionalTotal = int(float64(maxMoves) * cfg.AdditionalMovesFactor)
	e.additionalLeft = e.additionalTotal
	e.baseSkip = precomputeBaseSkip(maxMoves)

	if g.NumJewels == 0 {
		return &Result{Found: true} // spec.md §3: empty solution for a jewel-free board
	}

	movesLeft := maxMoves - 1
	ok := e.dfs(g.VehicleNode, movesLeft)
	if !ok {
		return &Result{Found: false}
	}
	dirs := make([]direction.Direction, len(e.solution))
	for i, mv := range e.solution {
		dirs[i] = mv.Dir
	}
	return &Result{Directions: dirs, Found: true}
}

// precomputeBaseSkip implements spec.md §4.10 point 4's baseSkip table:
// zero for depth <= 10 or a perfect square, otherwise 1 - 1/s^2 where
// s = floor(maxMoves/sqrt(maxMoves-depth)) + 1.
func precomputeBaseSkip(maxMoves int) []float64 {
	out := make([]float64, maxMoves+1)
	for depth := 0; depth <= maxMoves; depth++ {
		if depth <= 10 || isPerfectSquare(depth) {
			out[depth] = 0
			continue
		}
		denom := maxMoves - depth
		if denom <= 0 {
			out[depth] = 0
			continue
		}
		s := float64(int(float64(maxMoves)/math.Sqrt(float64(denom)))) + 1
		out[depth] = 1 - 1/(s*s)
	}
	return out
}

func isPerfectSquare(n int) bool {
	if n < 0 {
		return false
	}
	r := int(math.Sqrt(float64(n)))
	return r*r == n || (r+1)*(r+1) == n
}

// canMoveToScc implements spec.md §4.10 point 1: a target SCC is disallowed
// if some still-uncollected collectible's last-reachable SCC id precedes it.
func (e *engine) canMoveToScc(targetSCC int) bool {
	for jid := 0; jid < e.g.NumJewels; jid++ {
		if e.jstate.Collected(jid) {
			continue
		}
		if e.dec.LastSccWithJewel[jid] < targetSCC {
			return false
		}
	}
	return true
}

// dfs implements spec.md §4.10. It returns true iff a conforming solution
// was found; on false, every mutation made during this call has already
// been exactly inverted (spec.md §5 "Shared resources").
func (e *engine) dfs(cellID string, movesLeft int) bool {
	if e.bail {
		return false
	}

	x, y := movegraph.ParseCellID(cellID)
	candidates := e.g.MovesFrom(x, y)

	type scored struct {
		mv *movegraph.Move
		t  float64
	}
	ordered := make([]scored, 0, len(candidates))
	for _, mv := range candidates {
		targetSCC := e.dec.Of[movegraph.CellID(mv.End[0], mv.End[1])]
		if !e.canMoveToScc(targetSCC) {
			continue
		}
		ordered = append(ordered, scored{mv, e.fld.T(mv.ID)})
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].t > ordered[j].t })
	if len(ordered) == 0 {
		return false
	}
	best := ordered[0].t
	threshold := best * e.cfg.PruningFactor

	depth := e.maxMoves - 1 - movesLeft
	for idx, sc := range ordered {
		if sc.t < threshold {
			break
		}
		mv := sc.mv
		endID := movegraph.CellID(mv.End[0], mv.End[1])

		prevNumLeftAt, hadPrev := e.numLeftAt[endID]
		wouldProgress := e.jstate.NumLeft()-countNewlyCollected(e.jstate, mv.Jewels) < prevNumLeftAt || !hadPrev

		if hadPrev && !wouldProgress {
			if sc.t < float64(e.cfg.UncertainPotentialThreshold) {
				if e.tryDetour(movesLeft) {
					return true
				}
			}
			continue
		}

		flipped := e.jstate.AddAll(mv.Jewels)
		for _, jid := range flipped {
			e.fld.Collect(jid)
		}
		e.solution = append(e.solution, mv)
		prevRecorded, hadRecorded := e.numLeftAt[endID]
		e.numLeftAt[endID] = e.jstate.NumLeft()

		ok := false
		if e.jstate.NumLeft() == 0 {
			ok = e.finishAt(movesLeft)
		} else if movesLeft-1 > -e.additionalLeft {
			ok = e.dfs(endID, movesLeft-1)
		}

		if ok {
			return true
		}

		// unwind, exactly inverting every mutation made above.
		if hadRecorded {
			e.numLeftAt[endID] = prevRecorded
		} else {
			delete(e.numLeftAt, endID)
		}
		e.solution = e.solution[:len(e.solution)-1]
		unflipped := e.jstate.RemoveAll(mv.Jewels)
		for _, jid := range unflipped {
			e.fld.Uncollect(jid)
		}
		if e.bail {
			return false
		}

		if movesLeft > 0 && idx+1 < len(ordered) {
			skip := 1 - (1-e.baseSkip[depth])*sc.t/(best+1)
			if e.r.Chance(skip) {
				break
			}
		}
	}
	return false
}

// finishAt implements spec.md §4.10 point 4's completion branch: accept
// directly if within budget, else try run-removal to fixpoint.
func (e *engine) finishAt(movesLeft int) bool {
	if len(e.solution) <= e.maxMoves {
		return true
	}
	compressed := runremoval.ReduceToFixpoint(e.g, e.met, e.solution)
	if len(compressed) <= e.maxMoves {
		e.solution = compressed
		return true
	}
	if len(compressed) < e.bestOver {
		e.bestOver = len(compressed)
	}
	if float64(e.bestOver-e.maxMoves) <= 0.707*float64(e.additionalTotal) {
		e.bail = true
	}
	return false
}

// tryDetour implements spec.md §4.10 point 4's detour branch: route to the
// start of the globally nearest move still collecting an uncollected
// collectible, spending additionalMoves budget on the detour itself.
func (e *engine) tryDetour(movesLeft int) bool {
	cur := e.solution
	curCellID := e.g.VehicleNode
	if len(cur) > 0 {
		last := cur[len(cur)-1]
		curCellID = movegraph.CellID(last.End[0], last.End[1])
	}
	curIdx := e.met.Index[curCellID]

	var nearest *movegraph.Move
	nearestDist := math.Inf(1)
	for _, mv := range e.g.Arena {
		if !e.hasUncollected(mv.Jewels) {
			continue
		}
		startIdx := e.met.Index[movegraph.CellID(mv.Start[0], mv.Start[1])]
		d := e.met.At(curIdx, startIdx)
		if d < nearestDist {
			nearestDist = d
			nearest = mv
		}
	}
	if nearest == nil {
		return false
	}
	path := e.g.ShortestPath(curCellID, movegraph.CellID(nearest.Start[0], nearest.Start[1]))
	cost := len(path) + 1
	if cost > e.additionalLeft {
		return false
	}

	e.additionalLeft -= cost
	flippedAll := make([][]int, 0, len(path)+1)
	for _, mv := range path {
		flipped := e.jstate.AddAll(mv.Jewels)
		for _, jid := range flipped {
			e.fld.Collect(jid)
		}
		flippedAll = append(flippedAll, flipped)
		e.solution = append(e.solution, mv)
	}
	flipped := e.jstate.AddAll(nearest.Jewels)
	for _, jid := range flipped {
		e.fld.Collect(jid)
	}
	flippedAll = append(flippedAll, flipped)
	e.solution = append(e.solution, nearest)

	endID := movegraph.CellID(nearest.End[0], nearest.End[1])
	ok := false
	if e.jstate.NumLeft() == 0 {
		ok = e.finishAt(movesLeft)
	} else {
		ok = e.dfs(endID, movesLeft-cost)
	}

	if !ok {
		full := append(append([]*movegraph.Move{}, path...), nearest)
		for i := len(full) - 1; i >= 0; i-- {
			e.solution = e.solution[:len(e.solution)-1]
			for _, jid := range reversed(flippedAll[i]) {
				e.fld.Uncollect(jid)
			}
			e.jstate.RemoveAll(full[i].Jewels)
		}
		e.additionalLeft += cost
	}
	return ok
}

func (e *engine) hasUncollected(jewels []int) bool {
	for _, jid := range jewels {
		if !e.jstate.Collected(jid) {
			return true
		}
	}
	return false
}

func countNewlyCollected(js *jewelstate.State, jewels []int) int {
	n := 0
	for _, jid := range jewels {
		if !js.Collected(jid) {
			n++
		}
	}
	return n
}

func reversed(ids []int) []int {
	out := make([]int, len(ids))
	for i, id := range ids {
		out[len(ids)-1-i] = id
	}
	return out
}
