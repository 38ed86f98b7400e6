// Command perft is a node-counting and move-generator verification tool,
// generalizing Blunder's tests/perftest.go EPD-suite driver and
// treepeck-chego's internal/perft/perft.go CLI into a standalone binary
// against the core package's pseudolegal-to-legal move generator.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/cdeanmorgan/chesscore/core"
	"github.com/cdeanmorgan/chesscore/notation"
)

func main() {
	fen := flag.String("fen", notation.StartingFEN, "FEN of the position to run perft on")
	depth := flag.Int("depth", 5, "perft depth")
	divide := flag.Bool("divide", false, "print a per-root-move node count breakdown")
	parallel := flag.Bool("parallel", false, "split root moves across goroutines")
	suite := flag.String("suite", "", "path to an EPD perft suite file (overrides -fen/-depth)")
	flag.Parse()

	if *suite != "" {
		if err := runSuite(*suite); err != nil {
			log.Fatal(err)
		}
		return
	}

	pos, err := core.NewPosition(*fen)
	if err != nil {
		log.Fatalf("parsing fen: %v", err)
	}

	start := time.Now()

	if *divide {
		entries := core.DividePerft(pos, *depth)
		var total uint64
		for _, e := range entries {
			fmt.Printf("%s: %d\n", e.Move.String(), e.Nodes)
			total += e.Nodes
		}
		fmt.Printf("\nNodes searched: %d\n", total)
	} else if *parallel {
		nodes, err := core.ParallelPerft(context.Background(), pos, *depth)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Nodes searched: %d\n", nodes)
	} else {
		nodes := core.Perft(pos, *depth)
		fmt.Printf("Nodes searched: %d\n", nodes)
	}

	fmt.Printf("Elapsed: %s\n", time.Since(start))
}

// suiteCase is one EPD perft suite line: a FEN followed by ";Dn <count>"
// fields, one per depth, generalizing tests/perftest.go's PerftTest.
type suiteCase struct {
	fen    string
	counts map[int]uint64
}

func loadSuite(path string) ([]suiteCase, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cases []suiteCase
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Split(line, ";")
		c := suiteCase{fen: strings.TrimSpace(fields[0]), counts: map[int]uint64{}}

		for _, field := range fields[1:] {
			field = strings.TrimSpace(field)
			// field looks like "D3 8902"
			parts := strings.Fields(field)
			if len(parts) != 2 || len(parts[0]) < 2 {
				return nil, fmt.Errorf("malformed perft suite field %q", field)
			}
			depth, err := strconv.Atoi(parts[0][1:])
			if err != nil {
				return nil, fmt.Errorf("malformed depth in field %q: %w", field, err)
			}
			count, err := strconv.ParseUint(parts[1], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("malformed node count in field %q: %w", field, err)
			}
			c.counts[depth] = count
		}
		cases = append(cases, c)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return cases, nil
}

func runSuite(path string) error {
	cases, err := loadSuite(filepath.Clean(path))
	if err != nil {
		return err
	}

	var g errgroup.Group
	results := make([][]string, len(cases))

	for i, c := range cases {
		i, c := i, c
		g.Go(func() error {
			pos, err := core.NewPosition(c.fen)
			if err != nil {
				return fmt.Errorf("position %q: %w", c.fen, err)
			}
			var lines []string
			for depth := 1; depth <= len(c.counts)+6; depth++ {
				want, ok := c.counts[depth]
				if !ok {
					continue
				}
				got := core.Perft(pos.Clone(), depth)
				if got == want {
					lines = append(lines, fmt.Sprintf("OK   depth %d: %d", depth, got))
				} else {
					lines = append(lines, fmt.Sprintf("FAIL depth %d: want %d, got %d", depth, want, got))
				}
			}
			results[i] = append([]string{fmt.Sprintf("position %s", c.fen)}, lines...)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	for _, lines := range results {
		for _, line := range lines {
			fmt.Println(line)
		}
		fmt.Println()
	}
	return nil
}
