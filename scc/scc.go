// Package scc decomposes the move graph into strongly connected components
// via Tarjan's algorithm (spec.md §4.3), derives the per-SCC neighbour
// lists and collectible assignment (spec.md §4.4), and computes the
// conditional-unreachability matrix U used by the solvability prefilter,
// the CAH heuristic's SCC-admission filter, and the backtracking search.
//
// The traversal itself follows the three-color (White/Gray/Black) vocabulary
// the corpus's dfs package uses for its own recursive graph walks, adapted
// here to Tarjan's low-link bookkeeping rather than dfs's Order/Depth/Parent
// result shape.
package scc

import (
	"slidejewels/core"
	"slidejewels/movegraph"
)

const (
	white = iota
	gray
	black
)

// SCC is one strongly connected component of the move graph.
type SCC struct {
	ID      int      // topological rank; 0 is the source-most SCC
	Members []string // cell ids belonging to this SCC
	Succ    []int    // successor SCC ids (outgoing bridge edges)
	Pred    []int    // predecessor SCC ids
	Jewels  []int    // jewel ids assignable to this SCC (spec.md §4.4)
}

// Decomposition is the full result of §4.3/§4.4/§4.5's prerequisite data.
type Decomposition struct {
	SCCs  []*SCC
	Of    map[string]int // cell id -> scc id

	// U[a][b] is true iff traversing SCC a makes SCC b permanently
	// unreachable (spec.md §3 "Conditional-unreachability matrix").
	U [][]bool

	LastSccWithJewel map[int]int // jewel id -> max SCC id containing it
	NumSccsWithJewel map[int]int // jewel id -> count of SCCs containing it
}

// tarjan holds the mutable state of one Tarjan run.
type tarjan struct {
	g         *core.Graph
	index     map[string]int
	lowlink   map[string]int
	state     map[string]int
	stack     []string
	onStack   map[string]bool
	counter   int
	sccsRev   [][]string // components in Tarjan's natural (reverse-topological) order
}

// Build decomposes g's move graph into SCCs and computes all derived tables
// of spec.md §4.3/§4.4.
func Build(g *movegraph.Graph) *Decomposition {
	nodes := g.Core.Vertices()

	t := &tarjan{
		g:       g.Core,
		index:   make(map[string]int, len(nodes)),
		lowlink: make(map[string]int, len(nodes)),
		state:   make(map[string]int, len(nodes)),
		onStack: make(map[string]bool, len(nodes)),
	}
	for _, id := range nodes {
		if t.state[id] == white {
			t.strongconnect(id)
		}
	}

	// Tarjan yields components in reverse-topological order; reverse so
	// SCC 0 is source-most (spec.md §4.3).
	n := len(t.sccsRev)
	sccs := make([]*SCC, n)
	of := make(map[string]int)
	for i, members := range t.sccsRev {
		id := n - 1 - i
		sccs[id] = &SCC{ID: id, Members: members}
		for _, m := range members {
			of[m] = id
		}
	}

	assignBridgesAndJewels(g, sccs, of)

	d := &Decomposition{
		SCCs:             sccs,
		Of:               of,
		LastSccWithJewel: make(map[int]int),
		NumSccsWithJewel: make(map[int]int),
	}
	d.U = computeUnreachability(sccs)
	computeJewelSpan(sccs, d)

	return d
}

// strongconnect is Tarjan's recursive core, iterative neighbor lookup via
// core.Graph.NeighborIDs (directed graph: outgoing neighbors only).
func (t *tarjan) strongconnect(v string) {
	t.index[v] = t.counter
	t.lowlink[v] = t.counter
	t.counter++
	t.stack = append(t.stack, v)
	t.onStack[v] = true
	t.state[v] = gray

	neighbors, err := t.g.NeighborIDs(v)
	if err != nil {
		// v came from t.g.Vertices(); NeighborIDs only fails on an unknown
		// vertex, which cannot happen here.
		panic("scc: unexpected NeighborIDs error: " + err.Error())
	}
	for _, w := range neighbors {
		switch t.state[w] {
		case white:
			t.strongconnect(w)
			if t.lowlink[w] < t.lowlink[v] {
				t.lowlink[v] = t.lowlink[w]
			}
		case gray:
			if t.onStack[w] && t.index[w] < t.lowlink[v] {
				t.lowlink[v] = t.index[w]
			}
		case black:
			// w is in an already-closed component; ignore.
		}
	}

	if t.lowlink[v] == t.index[v] {
		var comp []string
		for {
			w := t.stack[len(t.stack)-1]
			t.stack = t.stack[:len(t.stack)-1]
			t.onStack[w] = false
			t.state[w] = black
			comp = append(comp, w)
			if w == v {
				break
			}
		}
		t.sccsRev = append(t.sccsRev, comp)
	}
}

// assignBridgesAndJewels scans every live move; bridges between distinct
// SCCs populate Succ/Pred, and the collectible-to-SCC assignment rule of
// spec.md §4.4 is applied: a collectible on a cross-SCC move is assigned to
// the destination SCC, except when it sits at the move's start cell, in
// which case it is assigned to the source SCC.
func assignBridgesAndJewels(g *movegraph.Graph, sccs []*SCC, of map[string]int) {
	seenBridge := make(map[[2]int]bool)
	jewelSet := make([]map[int]bool, len(sccs))
	for i := range jewelSet {
		jewelSet[i] = make(map[int]bool)
	}

	for _, m := range g.Arena {
		startID := movegraph.CellID(m.Start[0], m.Start[1])
		endID := movegraph.CellID(m.End[0], m.End[1])
		a, b := of[startID], of[endID]

		if a != b {
			key := [2]int{a, b}
			if !seenBridge[key] {
				seenBridge[key] = true
				sccs[a].Succ = append(sccs[a].Succ, b)
				sccs[b].Pred = append(sccs[b].Pred, a)
			}
		}

		startJewel, hasStartJewel := startCellJewel(m)
		for _, jid := range m.Jewels {
			if a == b {
				jewelSet[a][jid] = true
				continue
			}
			if hasStartJewel && jid == startJewel {
				jewelSet[a][jid] = true // collectible at the entry cell stays with the source SCC
			} else {
				jewelSet[b][jid] = true
			}
		}
	}

	for i, s := range sccs {
		for jid := range jewelSet[i] {
			s.Jewels = append(s.Jewels, jid)
		}
	}
}

// startCellJewel returns the jewel id located at m's start cell, if any.
// Move.Jewels is built by board.Slide in walk order starting at Start, so
// when StartIsJewel is set the start cell's id is always Jewels[0].
func startCellJewel(m *movegraph.Move) (int, bool) {
	if !m.StartIsJewel {
		return 0, false
	}
	return m.Jewels[0], true
}

// computeUnreachability computes U[a][b] for every pair (spec.md §4.3):
// mark all forward- and backward-reachable SCCs from a in the condensation
// DAG; U[a][b] holds iff b is in neither set.
func computeUnreachability(sccs []*SCC) [][]bool {
	n := len(sccs)
	u := make([][]bool, n)
	for a := 0; a < n; a++ {
		fwd := reachableSet(sccs, a, func(s *SCC) []int { return s.Succ })
		bwd := reachableSet(sccs, a, func(s *SCC) []int { return s.Pred })

		row := make([]bool, n)
		for b := 0; b < n; b++ {
			row[b] = b != a && !fwd[b] && !bwd[b]
		}
		u[a] = row
	}
	return u
}

func reachableSet(sccs []*SCC, start int, edgesOf func(*SCC) []int) map[int]bool {
	seen := map[int]bool{start: true}
	stack := []int{start}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, nxt := range edgesOf(sccs[cur]) {
			if !seen[nxt] {
				seen[nxt] = true
				stack = append(stack, nxt)
			}
		}
	}
	return seen
}

// computeJewelSpan derives lastSccWithJewel and numSccsWithJewel (spec.md §3).
func computeJewelSpan(sccs []*SCC, d *Decomposition) {
	seen := make(map[int]bool)
	for _, s := range sccs {
		for _, jid := range s.Jewels {
			d.NumSccsWithJewel[jid]++
			if !seen[jid] || s.ID > d.LastSccWithJewel[jid] {
				d.LastSccWithJewel[jid] = s.ID
			}
			seen[jid] = true
		}
	}
}

// Unsolvable implements the prefilter of spec.md §4.5: reject iff two
// single-SCC collectibles reside in mutually exclusive SCCs.
func (d *Decomposition) Unsolvable() bool {
	sccOf := make(map[int]int) // jewel id -> its sole SCC, for count==1 jewels
	for _, s := range d.SCCs {
		for _, jid := range s.Jewels {
			if d.NumSccsWithJewel[jid] == 1 {
				sccOf[jid] = s.ID
			}
		}
	}
	single := make([]int, 0, len(sccOf))
	for jid := range sccOf {
		single = append(single, jid)
	}
	for i := 0; i < len(single); i++ {
		for j := i + 1; j < len(single); j++ {
			a, b := sccOf[single[i]], sccOf[single[j]]
			if d.U[a][b] {
				return true
			}
		}
	}
	return false
}
