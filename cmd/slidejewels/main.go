// Command slidejewels reads a grid-puzzle level (spec.md §6.1), runs the
// full solver pipeline, and writes the collection route (spec.md §6.3) to
// stdout. Flag handling and the stdin/file input split follow the corpus's
// own small-CLI idiom: flag.Parse, a default reading from os.Stdin, an exit
// code that is 0 unless I/O itself failed.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"slidejewels/board"
	"slidejewels/config"
	"slidejewels/direction"
	"slidejewels/solver"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("slidejewels", flag.ContinueOnError)
	filePath := fs.String("file", "", "read the level from this path instead of stdin")
	verbose := fs.Bool("v", false, "enable debug-level logging")
	verify := fs.Bool("verify", false, "replay and validate the emitted solution before printing it")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	var in *os.File
	if *filePath != "" {
		f, err := os.Open(*filePath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		defer f.Close()
		in = f
	} else {
		in = os.Stdin
	}

	lvl, err := board.Parse(in)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	rest := fs.Args()
	if len(rest) > 0 {
		if n, err := strconv.Atoi(rest[0]); err == nil {
			lvl.OverrideMaxMoves(n)
		}
	}

	cfg := config.Default(config.WithLogger(logger))
	sol := solver.Solve(lvl, cfg)

	if !sol.Exists {
		fmt.Print("BRAK")
		return 0
	}
	if *verify {
		if err := lvl.Validate(sol.Directions); err != nil {
			fmt.Fprintln(os.Stderr, "verify: "+err.Error())
		}
	}
	for _, d := range sol.Directions {
		if d == direction.None {
			continue
		}
		fmt.Print(string(rune(d.ToID())))
	}
	return 0
}
