package core

// Pseudolegal move generation (spec.md 4.4). Moves are generated without
// regard to whether they leave the mover's own king in check; LegalMoves
// (legalmoves.go) filters this list by make + InCheck + unmake, per spec.md
// 4.8, rather than detecting pins during generation.

var promotionPieces = [4]PieceType{Queen, Rook, Bishop, Knight}

// controlledSquares computes the set of squares color c attacks under the
// current occupancy (spec.md 4.4: pawn captures count, pawn pushes do not).
// It is the basis for InCheck and for pin-free legality filtering.
func controlledSquares(p *Position, c Color) Bitboard {
	var bb Bitboard
	occ := p.allBB

	pawns := p.pieceBB[Pawn] & p.colorBB[c]
	for pawns != 0 {
		sq := pawns.PopLSB()
		bb |= pawnAttacks[c][sq]
	}

	knights := p.pieceBB[Knight] & p.colorBB[c]
	for knights != 0 {
		sq := knights.PopLSB()
		bb |= knightAttacks[sq]
	}

	bishops := (p.pieceBB[Bishop] | p.pieceBB[Queen]) & p.colorBB[c]
	for bishops != 0 {
		sq := bishops.PopLSB()
		bb |= BishopAttacks(sq, occ)
	}

	rooks := (p.pieceBB[Rook] | p.pieceBB[Queen]) & p.colorBB[c]
	for rooks != 0 {
		sq := rooks.PopLSB()
		bb |= RookAttacks(sq, occ)
	}

	king := p.pieceBB[King] & p.colorBB[c]
	if king != 0 {
		bb |= kingAttacks[king.LSB()]
	}

	return bb
}

// PseudolegalMoves generates every pseudolegal move for the side to move,
// per spec.md 4.4. Castling moves are the one piece of "legality" spec.md
// assigns to generation time rather than the make/unmake filter: they are
// only emitted when the king and rook have rights, the intervening squares
// are empty, and the king's start, transit, and destination squares are not
// controlled by the opponent.
func PseudolegalMoves(p *Position) []Move {
	moves := make([]Move, 0, 48)
	us := p.SideToMove
	them := us.Other()
	own := p.colorBB[us]
	occ := p.allBB

	genPawnMoves(p, us, &moves)

	knights := p.pieceBB[Knight] & own
	for knights != 0 {
		from := knights.PopLSB()
		dests := knightAttacks[from] &^ own
		for dests != 0 {
			moves = append(moves, NewNormalMove(from, dests.PopLSB()))
		}
	}

	bishops := p.pieceBB[Bishop] & own
	for bishops != 0 {
		from := bishops.PopLSB()
		dests := BishopAttacks(from, occ) &^ own
		for dests != 0 {
			moves = append(moves, NewNormalMove(from, dests.PopLSB()))
		}
	}

	rooks := p.pieceBB[Rook] & own
	for rooks != 0 {
		from := rooks.PopLSB()
		dests := RookAttacks(from, occ) &^ own
		for dests != 0 {
			moves = append(moves, NewNormalMove(from, dests.PopLSB()))
		}
	}

	queens := p.pieceBB[Queen] & own
	for queens != 0 {
		from := queens.PopLSB()
		dests := QueenAttacks(from, occ) &^ own
		for dests != 0 {
			moves = append(moves, NewNormalMove(from, dests.PopLSB()))
		}
	}

	kingBB := p.pieceBB[King] & own
	if kingBB != 0 {
		from := kingBB.LSB()
		dests := kingAttacks[from] &^ own
		for dests != 0 {
			moves = append(moves, NewNormalMove(from, dests.PopLSB()))
		}
		genCastlingMoves(p, us, them, &moves)
	}

	return moves
}

// CaptureMoves generates the capture-and-promotion subset used by
// quiescence search (spec.md 4.10): every pseudolegal move that captures an
// enemy piece or an en passant target, plus every pawn promotion, since
// promotions carry material swings large enough to matter at quiescence
// depth too.
func CaptureMoves(p *Position) []Move {
	all := PseudolegalMoves(p)
	out := all[:0]
	enemy := p.colorBB[p.SideToMove.Other()]
	for _, m := range all {
		isEPCapture := m.To == p.EPSquare && p.Piece(m.From).Type == Pawn
		if m.Kind == MovePromotion || enemy.Has(m.To) || isEPCapture {
			out = append(out, m)
		}
	}
	return out
}

func genPawnMoves(p *Position, us Color, moves *[]Move) {
	occ := p.allBB
	enemy := p.colorBB[us.Other()]
	pawns := p.pieceBB[Pawn] & p.colorBB[us]

	homeRank := 1
	promoRank := 7
	pushDir := 1
	if us == Black {
		homeRank = 6
		promoRank = 0
		pushDir = -1
	}

	for bb := pawns; bb != 0; {
		from := bb.PopLSB()
		file, rank := from.File(), from.Rank()

		single := pawnPushes[us][from] &^ occ
		if single != 0 {
			to := single.LSB()
			appendPawnDest(moves, from, to, to.Rank() == promoRank)
			if rank == homeRank {
				doubleRank := rank + 2*pushDir
				if onBoard(file, doubleRank) {
					doubleTo := NewSquare(file, doubleRank)
					if !occ.Has(doubleTo) {
						*moves = append(*moves, NewNormalMove(from, doubleTo))
					}
				}
			}
		}

		captures := pawnAttacks[us][from] & enemy
		for captures != 0 {
			to := captures.PopLSB()
			appendPawnDest(moves, from, to, to.Rank() == promoRank)
		}

		if p.EPSquare != NoSquare && pawnAttacks[us][from].Has(p.EPSquare) {
			*moves = append(*moves, NewNormalMove(from, p.EPSquare))
		}
	}
}

func appendPawnDest(moves *[]Move, from, to Square, isPromotion bool) {
	if !isPromotion {
		*moves = append(*moves, NewNormalMove(from, to))
		return
	}
	for _, pt := range promotionPieces {
		*moves = append(*moves, NewPromotionMove(from, to, pt))
	}
}

func genCastlingMoves(p *Position, us, them Color, moves *[]Move) {
	occ := p.allBB
	opponentControl := p.controlled[them]

	if us == White {
		if p.Castling.Has(WhiteShort) &&
			!occ.Has(F1) && !occ.Has(G1) &&
			!opponentControl.Has(E1) && !opponentControl.Has(F1) && !opponentControl.Has(G1) {
			*moves = append(*moves, ShortCastleMove(us))
		}
		if p.Castling.Has(WhiteLong) &&
			!occ.Has(D1) && !occ.Has(C1) && !occ.Has(B1) &&
			!opponentControl.Has(E1) && !opponentControl.Has(D1) && !opponentControl.Has(C1) {
			*moves = append(*moves, LongCastleMove(us))
		}
		return
	}

	if p.Castling.Has(BlackShort) &&
		!occ.Has(F8) && !occ.Has(G8) &&
		!opponentControl.Has(E8) && !opponentControl.Has(F8) && !opponentControl.Has(G8) {
		*moves = append(*moves, ShortCastleMove(us))
	}
	if p.Castling.Has(BlackLong) &&
		!occ.Has(D8) && !occ.Has(C8) && !occ.Has(B8) &&
		!opponentControl.Has(E8) && !opponentControl.Has(D8) && !opponentControl.Has(C8) {
		*moves = append(*moves, LongCastleMove(us))
	}
}
