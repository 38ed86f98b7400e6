package core

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Clone returns an independent deep copy of p, safe to mutate without
// affecting the original -- the board arrays copy by value, but the undo
// stack's backing slice must be copied explicitly or the two positions
// would alias it across DoMove/UndoMove calls.
func (p *Position) Clone() *Position {
	clone := *p
	clone.undo = append([]UndoInfo(nil), p.undo...)
	return &clone
}

// Perft counts the number of leaf positions reachable from p at exactly
// depth plies, walking legal moves only (spec.md 8's perft scenarios).
// depth 0 counts the root itself as one node.
func Perft(p *Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	moves := LegalMoves(p)
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		p.DoMove(m)
		nodes += Perft(p, depth-1)
		p.UndoMove(m)
	}
	return nodes
}

// DividePerft returns the perft count broken down by root move, in move-
// generation order -- the standard "divide" debugging aid for isolating
// which root branch a node-count mismatch comes from.
func DividePerft(p *Position, depth int) []DivideEntry {
	moves := LegalMoves(p)
	entries := make([]DivideEntry, 0, len(moves))
	for _, m := range moves {
		p.DoMove(m)
		var nodes uint64
		if depth > 1 {
			nodes = Perft(p, depth-1)
		} else {
			nodes = 1
		}
		p.UndoMove(m)
		entries = append(entries, DivideEntry{Move: m, Nodes: nodes})
	}
	return entries
}

// DivideEntry is one root move's contribution to a DividePerft call.
type DivideEntry struct {
	Move  Move
	Nodes uint64
}

// ParallelPerft computes the same count as Perft but fans the root moves
// out across goroutines, one board clone per root move (spec.md 4 section
// 5's "embarrassingly parallel over root moves using board-clone-per-task"
// scheduling model). It returns the first error any worker produces, which
// in practice can only come from ctx cancellation.
func ParallelPerft(ctx context.Context, p *Position, depth int) (uint64, error) {
	if depth == 0 {
		return 1, nil
	}
	moves := LegalMoves(p)
	if depth == 1 {
		return uint64(len(moves)), nil
	}

	g, ctx := errgroup.WithContext(ctx)
	counts := make([]uint64, len(moves))

	for i, m := range moves {
		i, m := i, m
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			clone := p.Clone()
			clone.DoMove(m)
			counts[i] = Perft(clone, depth-1)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return 0, err
	}
	var total uint64
	for _, c := range counts {
		total += c
	}
	return total, nil
}
