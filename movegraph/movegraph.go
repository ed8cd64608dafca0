// Package movegraph builds the slide-move graph (spec.md §4.1): starting
// from the vehicle cell, a work-queue exploration computes the at-most-eight
// directed slide moves out of every reachable cell and registers them as
// links of a *core.Graph, while a parallel Move arena (spec.md §9 "Graph
// with back-references") carries the per-move domain data core.Link has no
// room for (direction, jewel list, stability id).
package movegraph

import (
	"fmt"

	"slidejewels/bfs"
	"slidejewels/board"
	"slidejewels/core"
	"slidejewels/direction"
)

// Move is a directed edge start->end (spec.md §3 "Slide move").
type Move struct {
	ID     int
	Start  [2]int
	End    [2]int
	Dir    direction.Direction
	Jewels []int // jewel ids traversed, in walk order, interior and at start

	// StartIsJewel reports whether Start itself holds a jewel (in which case
	// it is Jewels[0]); needed to resolve the boundary case of spec.md §4.4.
	StartIsJewel bool
}

// Graph is the built move graph: the core.Graph edge set plus the arena and
// auxiliary indices needed by the rest of the pipeline.
type Graph struct {
	Core *core.Graph

	Arena []*Move // append-only; Move.ID is its index

	// byStart[cellID][d] is the arena index of the move leaving that cell in
	// direction d, or -1 if that direction yields no live move.
	byStart map[string][8]int

	// byEnd[cellID] lists arena indices of moves ending at that cell.
	byEnd map[string][]int

	// byJewel[jewelID] lists arena indices of moves that traverse that jewel.
	byJewel map[int][]int

	// byEdge[(startID,endID)] is the arena index of the move directly
	// connecting two adjacent cells. Distinct directions out of one cell
	// walk distinct rays and so never stop at the same destination, which
	// makes this pair unique per move; ShortestPath uses it for its
	// gap-filling hops.
	byEdge map[[2]string]int

	VehicleNode string
	NumJewels   int
}

// CellID formats the dense vertex identifier for a board cell, matching the
// gridgraph convention of "x,y" stable string ids.
func CellID(x, y int) string {
	return fmt.Sprintf("%d,%d", x, y)
}

// Build runs the work-queue exploration of spec.md §4.1 over lvl, returning
// the complete move graph. There is no failure mode at this stage; an empty
// edge set is a valid (if uninteresting) result.
func Build(lvl *board.Level) *Graph {
	b := lvl.Board
	jewelIDs, numJewels := b.JewelIDs()

	g := &Graph{
		// Each live direction out of a cell ends at a different cell, so
		// Build adds at most one link per (start, end) pair.
		Core:        core.NewGraph(),
		byStart:     make(map[string][8]int),
		byEnd:       make(map[string][]int),
		byJewel:     make(map[int][]int),
		byEdge:      make(map[[2]string]int),
		VehicleNode: CellID(b.VehicleX, b.VehicleY),
		NumJewels:   numJewels,
	}

	visited := make(map[string]bool)
	queue := []string{g.VehicleNode}
	visited[g.VehicleNode] = true
	_ = g.Core.AddVertex(g.VehicleNode)

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		x, y := parseCellID(id)

		var slots [8]int
		for i := range slots {
			slots[i] = -1
		}

		for _, d := range direction.All() {
			ex, ey, ok, hit := b.Slide(x, y, d, lvl.IsVehicleSpotAHole)
			if !ok || (ex == x && ey == y) {
				continue // dead direction or zero-length slide: excluded from the graph
			}

			jewels := make([]int, 0, len(hit))
			for _, c := range hit {
				if jid, isJewel := jewelIDs[c]; isJewel {
					jewels = append(jewels, jid)
				}
			}

			_, startIsJewel := jewelIDs[[2]int{x, y}]
			endID := CellID(ex, ey)
			mv := &Move{
				ID:           len(g.Arena),
				Start:        [2]int{x, y},
				End:          [2]int{ex, ey},
				Dir:          d,
				Jewels:       jewels,
				StartIsJewel: startIsJewel,
			}
			g.Arena = append(g.Arena, mv)
			slots[d] = mv.ID

			// the move arena carries the domain payload; the link itself is bare.
			if _, err := g.Core.AddEdge(id, endID); err != nil {
				// AddEdge only fails on an empty id, which never occurs for a
				// valid cell id produced by CellID.
				panic("movegraph: unexpected AddEdge error: " + err.Error())
			}

			g.byEnd[endID] = append(g.byEnd[endID], mv.ID)
			g.byEdge[[2]string{id, endID}] = mv.ID
			for _, jid := range jewels {
				g.byJewel[jid] = append(g.byJewel[jid], mv.ID)
			}

			if !visited[endID] {
				visited[endID] = true
				queue = append(queue, endID)
			}
		}
		g.byStart[id] = slots
	}

	return g
}

// MoveAt returns the arena Move leaving cell (x,y) in direction d, or nil if
// that direction is not live (or the cell was never reached).
func (g *Graph) MoveAt(x, y int, d direction.Direction) *Move {
	slots, ok := g.byStart[CellID(x, y)]
	if !ok {
		return nil
	}
	idx := slots[d]
	if idx < 0 {
		return nil
	}
	return g.Arena[idx]
}

// MovesFrom returns the up-to-8 live moves leaving cell (x,y), in direction order.
func (g *Graph) MovesFrom(x, y int) []*Move {
	slots, ok := g.byStart[CellID(x, y)]
	if !ok {
		return nil
	}
	out := make([]*Move, 0, 8)
	for _, idx := range slots {
		if idx >= 0 {
			out = append(out, g.Arena[idx])
		}
	}
	return out
}

// MovesEndingAt returns the arena indices of moves ending at the given cell id.
func (g *Graph) MovesEndingAt(cellID string) []int {
	return g.byEnd[cellID]
}

// MovesCollecting returns the arena indices of moves that traverse jewel jid.
func (g *Graph) MovesCollecting(jid int) []int {
	return g.byJewel[jid]
}

// Reachable reports whether every jewel id in [0, NumJewels) appears on at
// least one live move (spec.md §4 step 3 "Reachability check").
func (g *Graph) Reachable() bool {
	for jid := 0; jid < g.NumJewels; jid++ {
		if len(g.byJewel[jid]) == 0 {
			return false
		}
	}
	return true
}

// MoveBetween returns the unique move directly connecting fromID to toID, or
// nil if they are not directly adjacent in the move graph.
func (g *Graph) MoveBetween(fromID, toID string) *Move {
	idx, ok := g.byEdge[[2]string{fromID, toID}]
	if !ok {
		return nil
	}
	return g.Arena[idx]
}

// ShortestPath returns one shortest sequence of moves from fromID to toID
// (spec.md §4.6 step 6 "expand the tour to a direction sequence via
// shortest-paths between successive tour nodes"), reconstructed from the
// corpus's bfs.BFS parent chain. Returns nil if toID is unreachable from
// fromID or fromID == toID.
func (g *Graph) ShortestPath(fromID, toID string) []*Move {
	if fromID == toID {
		return nil
	}
	res, err := bfs.BFS(g.Core, fromID)
	if err != nil {
		panic("movegraph: unexpected bfs.BFS error: " + err.Error())
	}
	if _, reached := res.Depth[toID]; !reached {
		return nil
	}

	var cellPath []string
	for cur := toID; ; {
		cellPath = append(cellPath, cur)
		if cur == fromID {
			break
		}
		cur = res.Parent[cur]
	}
	// cellPath is toID..fromID; reverse it and convert hops to moves.
	moves := make([]*Move, 0, len(cellPath)-1)
	for i := len(cellPath) - 1; i > 0; i-- {
		mv := g.MoveBetween(cellPath[i], cellPath[i-1])
		if mv == nil {
			panic("movegraph: bfs parent chain missing a direct move")
		}
		moves = append(moves, mv)
	}
	return moves
}

// ParseCellID recovers the board coordinates encoded by CellID.
func ParseCellID(id string) (x, y int) {
	return parseCellID(id)
}

func parseCellID(id string) (x, y int) {
	var i int
	for i = 0; i < len(id) && id[i] != ','; i++ {
	}
	x = atoiFast(id[:i])
	y = atoiFast(id[i+1:])
	return x, y
}

// atoiFast parses a small non-negative decimal integer without importing
// strconv into this hot-path identifier parser.
func atoiFast(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		n = n*10 + int(s[i]-'0')
	}
	return n
}
