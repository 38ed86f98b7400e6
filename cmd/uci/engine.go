package main

import (
	"time"

	"github.com/op/go-logging"

	"github.com/cdeanmorgan/chesscore/book"
	"github.com/cdeanmorgan/chesscore/core"
	"github.com/cdeanmorgan/chesscore/notation"
)

var log = logging.MustGetLogger("uci")

// Engine bundles one game's worth of mutable state: the current position,
// a search owned exclusively by this goroutine (spec.md 5's ownership
// rule), the process-lifetime transposition table, and an optional
// opening book. It generalizes the teacher's Searcher (core/legacy/
// search.go) from a single fused board+search struct into a driver that
// composes the core package's independent Position/Search/TranspositionTable
// types.
type Engine struct {
	cfg Config
	pos *core.Position
	tt  *core.TranspositionTable
	eval core.Evaluator
	book *book.Book

	playedHashes []uint64

	searching bool
	stop      chan struct{}
}

// NewEngine constructs an Engine from cfg, loading the opening book if
// present at cfg.BookPath (a missing book is not fatal: the engine plays
// without one, logged once at startup, matching the teacher's own
// tolerant book-load failure handling in interface/uci.go).
func NewEngine(cfg Config) *Engine {
	e := &Engine{
		cfg:  cfg,
		tt:   core.NewTranspositionTable(cfg.TranspositionTableMB * 1024 * 1024),
		eval: core.TaperedEvaluator{},
	}
	e.newGame()

	if cfg.BookPath != "" {
		b, err := book.LoadFile(cfg.BookPath)
		if err != nil {
			log.Warningf("opening book not loaded from %s: %v", cfg.BookPath, err)
		} else {
			e.book = b
			log.Infof("opening book loaded from %s", cfg.BookPath)
		}
	}
	return e
}

func (e *Engine) newGame() {
	pos, err := core.NewPosition(notation.StartingFEN)
	if err != nil {
		panic(err) // the starting FEN is a compile-time constant; this cannot fail
	}
	e.pos = pos
	e.playedHashes = []uint64{pos.Hash}
	e.tt.Clear()
}

// SetPosition replaces the current game with fen followed by each move in
// moves, applied in order (the UCI "position" command's semantics).
func (e *Engine) SetPosition(fen string, moves []string) error {
	pos, err := core.NewPosition(fen)
	if err != nil {
		return err
	}
	e.pos = pos
	e.playedHashes = make([]uint64, pos.Ply+1)
	e.playedHashes[pos.Ply] = pos.Hash

	for _, text := range moves {
		m, err := core.ParseUCIMove(e.pos, text)
		if err != nil {
			return err
		}
		if err := core.MakeLegalMove(e.pos, m); err != nil {
			return err
		}
		e.playedHashes = append(e.playedHashes, e.pos.Hash)
	}
	return nil
}

// BookMove looks up the current position in the loaded book, if any,
// adjusting any castling-shape move per spec.md section 6.
func (e *Engine) BookMove() (core.Move, bool) {
	if e.book == nil {
		return core.Move{}, false
	}
	entry, ok := e.book.Lookup(book.PolyglotHash(e.pos))
	if !ok {
		return core.Move{}, false
	}
	m := core.AdjustBookMove(e.pos, entry.From, entry.To, entry.Promotion)
	if !core.IsLegal(e.pos, m) {
		return core.Move{}, false
	}
	return m, true
}

// Go runs a search under tc and returns the chosen result. It blocks until
// the search finishes or Stop is called; callers that want the non-
// blocking "go" UCI command should invoke this from its own goroutine.
func (e *Engine) Go(tc core.TimeControl) core.Result {
	search := core.NewSearch(e.tt, e.eval, e.playedHashes)
	opts := core.SearchOptions{
		MaxDepth:    tc.MaxDepth,
		TimeControl: tc,
		Tuning:      e.cfg.tuning(),
	}
	return search.Run(e.pos, opts)
}

// Play applies m to the engine's current position and records its hash as
// played (as opposed to merely searched), per spec.md 4.10's distinction
// between game history and in-tree search history.
func (e *Engine) Play(m core.Move) error {
	if err := core.MakeLegalMove(e.pos, m); err != nil {
		return err
	}
	e.playedHashes = append(e.playedHashes, e.pos.Hash)
	return nil
}

// timeControlFromGoCommand derives a core.TimeControl from a parsed "go"
// command's fields, falling back to a generous default when the client
// gives no clock information at all (spec.md 4.12's "otherwise: unlimited"
// branch, bounded here so a hand-typed "go" doesn't search forever).
func timeControlFromGoCommand(g goCommand) core.TimeControl {
	tc := core.TimeControl{MaxDepth: g.Depth}

	switch {
	case g.MoveTime > 0:
		tc.TimeForThisMove = time.Duration(g.MoveTime) * time.Millisecond
	case g.WhiteTime > 0 || g.BlackTime > 0:
		remaining := g.WhiteTime
		if !g.WhiteToMove {
			remaining = g.BlackTime
		}
		tc.TotalTimeRemaining = time.Duration(remaining) * time.Millisecond
		tc.MovesUntilControl = g.MovesToGo
	case g.Infinite:
		// leave TimeControl zero-valued: Search.Run treats an unlimited
		// TimeManager as "run to MaxDepth or until Stop".
	default:
		tc.TimeForThisMove = 5 * time.Second
	}
	return tc
}
