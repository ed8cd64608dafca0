package core

import "errors"

// Sentinel errors, in the corpus's own style (errors.New + exported Err*
// vars rather than ad hoc fmt.Errorf).
var (
	// ErrEmptyCellID is returned when an empty string is used as a cell id.
	ErrEmptyCellID = errors.New("core: cell id must not be empty")

	// ErrCellNotFound is returned when an operation references a cell id
	// that was never registered via AddVertex.
	ErrCellNotFound = errors.New("core: cell not found")
)

// Cell is one vertex of the move graph: a board cell identified by its
// movegraph.CellID string ("x,y"). Unlike the corpus's generic Vertex, a
// Cell carries no metadata — every piece of per-move domain data lives in
// movegraph's own Move arena instead.
type Cell struct {
	ID string
}

// Link is one directed edge of the move graph: a single live slide move
// from one cell to another. Unlike the corpus's generic Edge, a Link has no
// Weight (the move graph is always unweighted) and no Directed flag (it is
// always directed) — both were configuration knobs with exactly one setting
// in this domain, so they are not knobs here at all.
type Link struct {
	ID   string
	From string
	To   string
}
