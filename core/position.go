package core

import "fmt"

// UndoInfo is the undo record from spec.md 3 ("Undo record"): everything
// needed to exactly invert one applied move without recomputing it from
// scratch.
type UndoInfo struct {
	Castling        CastlingRights
	EPSquare        Square
	HalfMoveClock   int
	Hash            uint64
	Controlled      [2]Bitboard
	CapturedType    PieceType // NoPieceType if the move was not a capture
	CapturedColor   Color
	WasEPCapture    bool
	MovedFromPiece  Piece // the piece as it stood on From before the move
	PrevLastTo      Square
}

// Position is the primary internal representation (spec.md 3). It mirrors
// the teacher's hybrid bitboard + mailbox Board: bitboards drive move
// generation, the mailbox gives O(1) "what's on this square" during
// make/unmake.
type Position struct {
	pieceBB [6]Bitboard // indexed by PieceType
	colorBB [2]Bitboard // indexed by Color
	allBB   Bitboard
	mailbox [64]Piece

	SideToMove Color
	Castling   CastlingRights
	EPSquare   Square // NoSquare if none

	HalfMoveClock  int
	FullMoveNumber int
	Ply            int

	Hash uint64

	// lastTo is the destination square of the most recently applied move
	// (NoSquare if none yet), used by move ordering's recapture band
	// (spec.md 4.11) and restored verbatim by UndoMove.
	lastTo Square

	// controlled[c] is the set of squares color c attacks under the current
	// occupancy, counting pawn captures but not pawn pushes (spec.md 4.4).
	// Recomputed from scratch after every DoMove (spec.md 4.5 step 9) and
	// restored from the undo record by UndoMove.
	controlled [2]Bitboard

	undo []UndoInfo
}

// NewEmptyPosition returns a Position with no pieces, White to move, and no
// castling/EP rights -- the base that FEN construction and tests build on.
func NewEmptyPosition() *Position {
	p := &Position{SideToMove: White, EPSquare: NoSquare, lastTo: NoSquare}
	for i := range p.mailbox {
		p.mailbox[i] = NoPiece
	}
	return p
}

// Piece returns the piece on sq, or NoPiece if empty.
func (p *Position) Piece(sq Square) Piece {
	return p.mailbox[sq]
}

// PieceBB returns the bitboard of all pieces of type pt (either color).
func (p *Position) PieceBB(pt PieceType) Bitboard {
	return p.pieceBB[pt]
}

// ColorBB returns the bitboard of all pieces belonging to c.
func (p *Position) ColorBB(c Color) Bitboard {
	return p.colorBB[c]
}

// AllBB returns the union of all occupied squares.
func (p *Position) AllBB() Bitboard {
	return p.allBB
}

// Controlled returns the cached controlled-square bitboard for c.
func (p *Position) Controlled(c Color) Bitboard {
	return p.controlled[c]
}

// King returns the square of c's king. Construction guarantees exactly one
// king per side (spec.md 3 invariant 3), so this never returns NoSquare for
// a validly-constructed Position.
func (p *Position) King(c Color) Square {
	bb := p.pieceBB[King] & p.colorBB[c]
	if bb.IsEmpty() {
		return NoSquare
	}
	return bb.LSB()
}

// InCheck reports whether c's king is attacked under the current position,
// per spec.md 4.8: the king bitboard intersects the opponent's controlled
// cache.
func (p *Position) InCheck(c Color) bool {
	king := p.pieceBB[King] & p.colorBB[c]
	return king&p.controlled[c.Other()] != 0
}

// placePiece sets pt/c on sq in all three representations without touching
// the hash; callers that need the hash updated too should use setPiece.
func (p *Position) placePiece(pt PieceType, c Color, sq Square) {
	bb := squareBit(sq)
	p.pieceBB[pt] |= bb
	p.colorBB[c] |= bb
	p.allBB |= bb
	p.mailbox[sq] = Piece{Type: pt, Color: c}
}

// removePieceAt clears whatever occupies sq from all three representations.
func (p *Position) removePieceAt(sq Square) {
	bb := squareBit(sq)
	piece := p.mailbox[sq]
	if piece.IsNone() {
		return
	}
	p.pieceBB[piece.Type] &^= bb
	p.colorBB[piece.Color] &^= bb
	p.allBB &^= bb
	p.mailbox[sq] = NoPiece
}

// setPiece places pt/c on sq and XORs its hash contribution in.
func (p *Position) setPiece(pt PieceType, c Color, sq Square) {
	p.placePiece(pt, c, sq)
	p.Hash ^= pieceKey(Piece{Type: pt, Color: c}, sq)
}

// clearPiece removes whatever is on sq and XORs its hash contribution out.
// It is a no-op if sq is empty.
func (p *Position) clearPiece(sq Square) {
	piece := p.mailbox[sq]
	if piece.IsNone() {
		return
	}
	p.Hash ^= pieceKey(piece, sq)
	p.removePieceAt(sq)
}

// computeHash recomputes the Zobrist hash from scratch (spec.md 4.2, 4.3),
// used at construction time and by AssertInvariants to cross-check the
// incrementally-maintained hash.
func (p *Position) computeHash() uint64 {
	var h uint64
	for sq := 0; sq < 64; sq++ {
		piece := p.mailbox[sq]
		if !piece.IsNone() {
			h ^= pieceKey(piece, Square(sq))
		}
	}
	h ^= castlingKey(p.Castling)
	if epIsAttacked(p, p.SideToMove, p.EPSquare) {
		h ^= epFileKey(p.EPSquare)
	}
	if p.SideToMove == Black {
		h ^= sideToMoveKey()
	}
	return h
}

// recomputeControlled rebuilds both controlled-square caches from scratch
// (spec.md 4.5 step 9's "simplest correct implementation").
func (p *Position) recomputeControlled() {
	p.controlled[White] = controlledSquares(p, White)
	p.controlled[Black] = controlledSquares(p, Black)
}

// AssertInvariants checks the quantified invariants from spec.md 3 and
// returns an *InternalInvariantError describing the first violation found,
// or nil. It is intended for debug builds and tests; release builds may
// skip calling it entirely (spec.md 7).
func (p *Position) AssertInvariants() error {
	var union Bitboard
	for pt := Pawn; pt <= King; pt++ {
		union |= p.pieceBB[pt]
	}
	if union != p.allBB {
		return &InternalInvariantError{Reason: "piece bitboard union does not match all-pieces bitboard"}
	}
	if p.colorBB[White]|p.colorBB[Black] != p.allBB {
		return &InternalInvariantError{Reason: "color union does not match all-pieces bitboard"}
	}
	if p.colorBB[White]&p.colorBB[Black] != 0 {
		return &InternalInvariantError{Reason: "white and black bitboards overlap"}
	}
	for sq := 0; sq < 64; sq++ {
		piece := p.mailbox[sq]
		onBB := p.allBB.Has(Square(sq))
		if piece.IsNone() == onBB {
			return &InternalInvariantError{Reason: fmt.Sprintf("mailbox/bitboard desync at %s", Square(sq))}
		}
		if !piece.IsNone() {
			if !p.pieceBB[piece.Type].Has(Square(sq)) || !p.colorBB[piece.Color].Has(Square(sq)) {
				return &InternalInvariantError{Reason: fmt.Sprintf("mailbox piece at %s not reflected in bitboards", Square(sq))}
			}
		}
	}
	if (p.pieceBB[King] & p.colorBB[White]).Count() != 1 {
		return &InternalInvariantError{Reason: "white does not have exactly one king"}
	}
	if (p.pieceBB[King] & p.colorBB[Black]).Count() != 1 {
		return &InternalInvariantError{Reason: "black does not have exactly one king"}
	}
	if p.computeHash() != p.Hash {
		return &InternalInvariantError{Reason: "incremental hash diverged from scratch recompute"}
	}
	if p.EPSquare != NoSquare && p.EPSquare.Rank() != 2 && p.EPSquare.Rank() != 5 {
		return &InternalInvariantError{Reason: fmt.Sprintf("en passant square %s is not on rank 3 or rank 6", p.EPSquare)}
	}
	if p.HalfMoveClock < 0 {
		return &InternalInvariantError{Reason: "half-move clock is negative"}
	}
	return nil
}
