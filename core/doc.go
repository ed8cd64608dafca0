// Package core is the move graph's directed multigraph backbone: cells are
// vertices, slide moves are links between them. It is a deliberately small
// slice of the corpus's general-purpose graph library (core.Graph there
// supports weighted/undirected/mixed/looped graphs behind a functional-
// options surface) — the move graph is always directed, always tolerates
// parallel links (AddEdge never rejects a repeated pair), and never carries
// weights, so those dimensions are dropped rather than configured.
package core
