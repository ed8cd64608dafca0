// Package solver wires the full pipeline of spec.md §2 together: move-graph
// construction, the BFS distance metric, SCC decomposition and the
// solvability prefilter, the CAH heuristic, the 3-opt optimizer, the
// potential field, and finally the backtracking search — logging each stage
// transition the way the corpus's own multi-stage algorithms log a single
// line per phase rather than per iteration.
package solver

import (
	"slidejewels/board"
	"slidejewels/cah"
	"slidejewels/config"
	"slidejewels/direction"
	"slidejewels/metric"
	"slidejewels/movegraph"
	"slidejewels/opt3"
	"slidejewels/potential"
	"slidejewels/rng"
	"slidejewels/scc"
	"slidejewels/search"
)

// RNG substream identifiers: one root RNG per run (spec.md §5), with CAH's
// jewel permutations and the backtracking search's skip coin flips each
// drawing from their own derived substream so neither can perturb the
// other's sequence.
const (
	cahRNGStream    = 1
	searchRNGStream = 2
)

// Solution is the final verdict of spec.md §3: Exists is false when no
// solution was found (an unreachable collectible, the solvability
// prefilter, or a failed backtracking search); Directions is empty (not
// nil) for a jewel-free board that is trivially solved by doing nothing.
type Solution struct {
	Directions []direction.Direction
	Exists     bool
}

// Solve runs the complete pipeline against lvl using cfg's tuning constants.
func Solve(lvl *board.Level, cfg *config.Config) Solution {
	log := cfg.Logger

	g := movegraph.Build(lvl)
	log.Info("move graph built", "cells", g.Core.VertexCount(), "moves", len(g.Arena), "jewels", g.NumJewels)

	if !g.Reachable() {
		log.Info("solver: unreachable collectible detected")
		return Solution{Exists: false}
	}

	met := metric.Build(g)
	log.Info("distance matrix built", "nodes", met.N())

	dec := scc.Build(g)
	log.Info("scc decomposition built", "sccs", len(dec.SCCs))

	if dec.Unsolvable() {
		log.Info("solver: solvability prefilter rejected the level")
		return Solution{Exists: false}
	}

	if g.NumJewels == 0 {
		log.Info("solver: no collectibles, trivial empty solution")
		return Solution{Directions: []direction.Direction{}, Exists: true}
	}

	root := rng.New(cfg.RNGSeed)

	best := cah.Run(g, met, dec, cfg, root.Derive(cahRNGStream))
	maxMoves := lvl.MaxMoves
	if best != nil {
		log.Info("cah heuristic finished", "length", best.Length, "maxMoves", maxMoves)
		if best.Length <= maxMoves {
			return Solution{Directions: best.Directions, Exists: true}
		}
		optimized := opt3.Optimize(g, met, best, maxMoves, cfg)
		log.Info("3-opt finished", "length", optimized.Length)
		if optimized.Length <= maxMoves {
			return Solution{Directions: optimized.Directions, Exists: true}
		}
	} else {
		log.Info("cah heuristic produced no complete candidate within budget")
	}

	log.Info("falling back to backtracking search")
	field := potential.Build(g)
	res := search.Run(g, met, dec, field, cfg, maxMoves, root.Derive(searchRNGStream))
	if !res.Found {
		log.Info("solver: backtracking search exhausted, no solution")
		return Solution{Exists: false}
	}
	return Solution{Directions: res.Directions, Exists: true}
}
