// Package bfs runs breadth-first search over a move graph's *core.Graph,
// returning unweighted shortest-path distances and parent links.
//
// This is a narrow slice of the corpus's own general-purpose bfs package
// (context cancellation, OnEnqueue/OnDequeue/OnVisit hooks, neighbor
// filtering, MaxDepth, and weighted-graph rejection): the move graph is
// always unweighted and finite, every caller runs it to completion against
// the whole graph, and nothing in this repo ever needs to cancel, filter,
// or cap a BFS mid-traversal, so that surface is dropped rather than kept
// unexercised.
package bfs
