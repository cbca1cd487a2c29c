// Command mazeview generates a maze and lets you walk it in the terminal.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/beka-birhanu/maze-collapse/maze"
	"github.com/gdamore/tcell/v2"
)

func main() {
	rows := flag.Int("rows", 8, "number of maze rows")
	cols := flag.Int("cols", 16, "number of maze columns")
	seed := flag.Int64("seed", 0, "random seed, 0 picks one")
	flag.Parse()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	rng := rand.New(rand.NewSource(*seed))
	start := maze.CellPosition{}
	if *rows > 0 && *cols > 0 {
		start = maze.CellPosition{Row: rng.Intn(*rows), Col: rng.Intn(*cols)}
	}

	m, err := maze.Generate(*rows, *cols, start, rng)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to generate maze: %v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize screen: %v\n", err)
		os.Exit(1)
	}

	v := newViewer(screen, m)
	v.run()
	screen.Fini()

	fmt.Printf("seed %d\n", *seed)
}
