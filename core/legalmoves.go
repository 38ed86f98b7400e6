package core

// LegalMoves filters PseudolegalMoves by make + InCheck + unmake (spec.md
// 4.8): a pseudolegal move is legal iff, after playing it, the mover's own
// king is not attacked. This is the architecture spec.md mandates in place
// of generation-time pin detection.
func LegalMoves(p *Position) []Move {
	us := p.SideToMove
	pseudo := PseudolegalMoves(p)
	legal := make([]Move, 0, len(pseudo))
	for _, m := range pseudo {
		p.DoMove(m)
		if !p.InCheck(us) {
			legal = append(legal, m)
		}
		p.UndoMove(m)
	}
	return legal
}

// IsLegal reports whether m appears in LegalMoves(p). It is a convenience
// for validating an externally supplied move (e.g. from notation.ParseMove)
// without the caller building the full list itself.
func IsLegal(p *Position, m Move) bool {
	for _, lm := range LegalMoves(p) {
		if lm == m {
			return true
		}
	}
	return false
}

// MakeLegalMove applies m to p if and only if m is legal, returning
// *IllegalMoveError otherwise (spec.md 7). On success p is mutated in
// place; the caller is responsible for calling UndoMove to reverse it.
func MakeLegalMove(p *Position, m Move) error {
	if !IsLegal(p, m) {
		return &IllegalMoveError{Move: m}
	}
	p.DoMove(m)
	return nil
}

// HasLegalMoves reports whether the side to move has at least one legal
// move, without allocating the full move list -- used by checkmate/
// stalemate detection (spec.md 4.8, 4.10).
func HasLegalMoves(p *Position) bool {
	us := p.SideToMove
	for _, m := range PseudolegalMoves(p) {
		p.DoMove(m)
		inCheck := p.InCheck(us)
		p.UndoMove(m)
		if !inCheck {
			return true
		}
	}
	return false
}

// IsCheckmate reports whether the side to move is in check with no legal
// moves.
func IsCheckmate(p *Position) bool {
	return p.InCheck(p.SideToMove) && !HasLegalMoves(p)
}

// IsStalemate reports whether the side to move is not in check but has no
// legal moves.
func IsStalemate(p *Position) bool {
	return !p.InCheck(p.SideToMove) && !HasLegalMoves(p)
}
