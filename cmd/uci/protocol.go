package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/cdeanmorgan/chesscore/core"
	"github.com/cdeanmorgan/chesscore/notation"
)

// goCommand is a parsed "go" command line, generalizing the teacher's
// getTimeLeftInGame (interface/uci.go) into a single struct covering every
// field UCI's "go" can carry.
type goCommand struct {
	Depth       int
	WhiteTime   int
	BlackTime   int
	WhiteInc    int
	BlackInc    int
	MovesToGo   int
	MoveTime    int
	Infinite    bool
	WhiteToMove bool
}

func parseGoCommand(fields []string, whiteToMove bool) goCommand {
	g := goCommand{WhiteToMove: whiteToMove}
	for i := 0; i < len(fields); i++ {
		switch fields[i] {
		case "depth":
			i++
			g.Depth = atoiOr(fields, i, 0)
		case "wtime":
			i++
			g.WhiteTime = atoiOr(fields, i, 0)
		case "btime":
			i++
			g.BlackTime = atoiOr(fields, i, 0)
		case "winc":
			i++
			g.WhiteInc = atoiOr(fields, i, 0)
		case "binc":
			i++
			g.BlackInc = atoiOr(fields, i, 0)
		case "movestogo":
			i++
			g.MovesToGo = atoiOr(fields, i, 0)
		case "movetime":
			i++
			g.MoveTime = atoiOr(fields, i, 0)
		case "infinite":
			g.Infinite = true
		}
	}
	return g
}

func atoiOr(fields []string, i, fallback int) int {
	if i < 0 || i >= len(fields) {
		return fallback
	}
	v, err := strconv.Atoi(fields[i])
	if err != nil {
		return fallback
	}
	return v
}

// Protocol drives the UCI command loop (teacher's interface/uci.go
// RunUCIProtocol, generalized to dispatch through an Engine and to run
// searches cancellably in their own goroutine so "stop" can interrupt
// them).
type Protocol struct {
	engine *Engine

	mu     sync.Mutex
	search *core.Search
}

// NewProtocol wires a Protocol around an already-constructed Engine.
func NewProtocol(engine *Engine) *Protocol {
	return &Protocol{engine: engine}
}

// Run reads UCI commands from r and writes responses to w until "quit" or
// EOF.
func (p *Protocol) Run(r io.Reader, w io.Writer) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if p.dispatch(line, w) {
			return
		}
	}
}

// dispatch handles one command line and reports whether the protocol loop
// should terminate (the "quit" command).
func (p *Protocol) dispatch(line string, w io.Writer) bool {
	fields := strings.Fields(line)
	cmd := fields[0]

	switch cmd {
	case "uci":
		fmt.Fprintf(w, "id name %s\n", p.engine.cfg.Name)
		fmt.Fprintf(w, "id author %s\n", p.engine.cfg.Author)
		fmt.Fprintln(w, "uciok")

	case "isready":
		fmt.Fprintln(w, "readyok")

	case "ucinewgame":
		p.engine.newGame()

	case "setoption":
		log.Debugf("ignoring setoption: %s", line)

	case "position":
		if err := p.handlePosition(fields); err != nil {
			log.Warningf("position command failed: %v", err)
		}

	case "go":
		p.handleGo(fields, w)

	case "stop":
		p.mu.Lock()
		if p.search != nil {
			p.search.Stop()
		}
		p.mu.Unlock()

	case "quit":
		return true

	default:
		log.Debugf("ignoring unrecognized command: %s", line)
	}
	return false
}

// handlePosition implements "position [startpos|fen <fen>] [moves ...]",
// generalizing the teacher's positionCommandResponse.
func (p *Protocol) handlePosition(fields []string) error {
	if len(fields) < 2 {
		return fmt.Errorf("position command missing argument")
	}

	rest := fields[1:]
	fen := notation.StartingFEN
	idx := 0

	switch rest[0] {
	case "startpos":
		idx = 1
	case "fen":
		if len(rest) < 7 {
			return fmt.Errorf("position fen command missing fields")
		}
		fen = strings.Join(rest[1:7], " ")
		idx = 7
	default:
		return fmt.Errorf("position command expects startpos or fen, got %q", rest[0])
	}

	var moves []string
	if idx < len(rest) && rest[idx] == "moves" {
		moves = rest[idx+1:]
	}
	return p.engine.SetPosition(fen, moves)
}

// handleGo runs a search for the current position, first checking the
// opening book (spec.md section 6), and writes "bestmove" when done. The
// search itself runs in its own goroutine, matching the teacher's own
// `go goCommandResponse(...)` so the protocol's reader loop stays free to
// read an incoming "stop" line while the search is still in flight.
func (p *Protocol) handleGo(fields []string, w io.Writer) {
	if bookMove, ok := p.engine.BookMove(); ok {
		fmt.Fprintf(w, "bestmove %s\n", bookMove.String())
		if err := p.engine.Play(bookMove); err != nil {
			log.Warningf("playing book move failed: %v", err)
		}
		return
	}

	g := parseGoCommand(fields[1:], p.engine.pos.SideToMove == core.White)
	tc := timeControlFromGoCommand(g)

	search := core.NewSearch(p.engine.tt, p.engine.eval, p.engine.playedHashes)
	p.mu.Lock()
	p.search = search
	p.mu.Unlock()

	opts := core.SearchOptions{MaxDepth: tc.MaxDepth, TimeControl: tc, Tuning: p.engine.cfg.tuning()}
	pos := p.engine.pos

	go func() {
		result := search.Run(pos, opts)

		p.mu.Lock()
		p.search = nil
		p.mu.Unlock()

		if result.Move.IsNone() {
			log.Warningf("search returned no move")
			return
		}
		log.Infof("depth %d score %d nodes %d pv %v", result.Depth, result.Score, result.Nodes, result.PV)
		fmt.Fprintf(w, "bestmove %s\n", result.Move.String())
		if err := p.engine.Play(result.Move); err != nil {
			log.Warningf("playing search move failed: %v", err)
		}
	}()
}
