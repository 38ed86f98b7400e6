package core

// Make/unmake (spec.md 4.5, 4.6): DoMove applies a pseudolegal move in
// place and pushes an UndoInfo record; UndoMove pops that record and
// restores the exact prior state. Neither checks legality -- that is
// LegalMoves' job, built on top of these two (spec.md 4.8).

// DoMove applies m to p. m is assumed pseudolegal; callers that need a
// legality guarantee should go through LegalMoves/MakeLegalMove instead.
func (p *Position) DoMove(m Move) {
	us := p.SideToMove
	them := us.Other()

	undo := UndoInfo{
		Castling:      p.Castling,
		EPSquare:      p.EPSquare,
		HalfMoveClock: p.HalfMoveClock,
		Hash:          p.Hash,
		Controlled:    p.controlled,
		CapturedType:  NoPieceType,
		MovedFromPiece: p.mailbox[m.From],
		PrevLastTo:    p.lastTo,
	}

	prevEPAttacked := epIsAttacked(p, us, p.EPSquare)
	p.Hash ^= castlingKey(p.Castling)

	mover := p.mailbox[m.From]

	switch m.Kind {
	case MoveShortCastle:
		p.clearPiece(kingHome[us])
		p.clearPiece(kingsideRookFrom[us])
		p.setPiece(King, us, kingsideKingTo[us])
		p.setPiece(Rook, us, kingsideRookTo[us])
		p.Castling = p.Castling.DisableColor(us)

	case MoveLongCastle:
		p.clearPiece(kingHome[us])
		p.clearPiece(queensideRookFrom[us])
		p.setPiece(King, us, queensideKingTo[us])
		p.setPiece(Rook, us, queensideRookTo[us])
		p.Castling = p.Castling.DisableColor(us)

	default:
		isEPCapture := mover.Type == Pawn && m.To == p.EPSquare && p.mailbox[m.To].IsNone()
		if isEPCapture {
			captureSq := epCaptureSquare(us, m.To)
			undo.CapturedType = Pawn
			undo.CapturedColor = them
			undo.WasEPCapture = true
			p.clearPiece(captureSq)
		} else if captured := p.mailbox[m.To]; !captured.IsNone() {
			undo.CapturedType = captured.Type
			undo.CapturedColor = captured.Color
			p.clearPiece(m.To)
		}

		p.clearPiece(m.From)
		if m.Kind == MovePromotion {
			p.setPiece(m.PromoteTo, us, m.To)
		} else {
			p.setPiece(mover.Type, us, m.To)
		}

		p.Castling = updateCastlingRights(p.Castling, us, mover.Type, m.From, m.To, undo.CapturedType, undo.CapturedColor)
	}

	if mover.Type == Pawn && absInt(int(m.To)-int(m.From)) == 16 {
		p.EPSquare = Square((int(m.From) + int(m.To)) / 2)
	} else {
		p.EPSquare = NoSquare
	}

	if mover.Type == Pawn || undo.CapturedType != NoPieceType {
		p.HalfMoveClock = 0
	} else {
		p.HalfMoveClock++
	}

	if us == Black {
		p.FullMoveNumber++
	}
	p.Ply++

	p.Hash ^= castlingKey(p.Castling)
	if prevEPAttacked {
		p.Hash ^= epFileKey(undo.EPSquare)
	}
	p.SideToMove = them
	p.Hash ^= sideToMoveKey()
	p.recomputeControlled()
	if epIsAttacked(p, p.SideToMove, p.EPSquare) {
		p.Hash ^= epFileKey(p.EPSquare)
	}

	p.lastTo = m.To
	p.undo = append(p.undo, undo)
}

// UndoMove reverses the most recent DoMove call.
func (p *Position) UndoMove(m Move) {
	n := len(p.undo) - 1
	undo := p.undo[n]
	p.undo = p.undo[:n]

	them := p.SideToMove
	us := them.Other()

	switch m.Kind {
	case MoveShortCastle:
		p.removePieceAt(kingsideKingTo[us])
		p.removePieceAt(kingsideRookTo[us])
		p.placePiece(King, us, kingHome[us])
		p.placePiece(Rook, us, kingsideRookFrom[us])

	case MoveLongCastle:
		p.removePieceAt(queensideKingTo[us])
		p.removePieceAt(queensideRookTo[us])
		p.placePiece(King, us, kingHome[us])
		p.placePiece(Rook, us, queensideRookFrom[us])

	default:
		movedPiece := undo.MovedFromPiece
		p.removePieceAt(m.To)
		p.placePiece(movedPiece.Type, us, m.From)

		if undo.WasEPCapture {
			captureSq := epCaptureSquare(us, m.To)
			p.placePiece(Pawn, them, captureSq)
		} else if undo.CapturedType != NoPieceType {
			p.placePiece(undo.CapturedType, undo.CapturedColor, m.To)
		}
	}

	p.SideToMove = us
	p.Castling = undo.Castling
	p.EPSquare = undo.EPSquare
	p.HalfMoveClock = undo.HalfMoveClock
	p.Hash = undo.Hash
	p.controlled = undo.Controlled
	p.lastTo = undo.PrevLastTo
	if us == Black {
		p.FullMoveNumber--
	}
	p.Ply--
}

// DoNullMove flips the side to move without touching the board, for null-
// move pruning (spec.md 4.7). The en passant square is cleared, since a
// pass forfeits any pending en passant capture.
func (p *Position) DoNullMove() UndoInfo {
	undo := UndoInfo{
		Castling:      p.Castling,
		EPSquare:      p.EPSquare,
		HalfMoveClock: p.HalfMoveClock,
		Hash:          p.Hash,
		Controlled:    p.controlled,
		CapturedType:  NoPieceType,
	}
	if epIsAttacked(p, p.SideToMove, p.EPSquare) {
		p.Hash ^= epFileKey(p.EPSquare)
	}
	p.EPSquare = NoSquare
	p.SideToMove = p.SideToMove.Other()
	p.Hash ^= sideToMoveKey()
	p.Ply++
	return undo
}

// UndoNullMove reverses DoNullMove using the record it returned.
func (p *Position) UndoNullMove(undo UndoInfo) {
	p.SideToMove = p.SideToMove.Other()
	p.Castling = undo.Castling
	p.EPSquare = undo.EPSquare
	p.HalfMoveClock = undo.HalfMoveClock
	p.Hash = undo.Hash
	p.controlled = undo.Controlled
	p.Ply--
}

func epCaptureSquare(us Color, epTarget Square) Square {
	if us == White {
		return epTarget - 8
	}
	return epTarget + 8
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// updateCastlingRights clears castling rights affected by a non-castling
// move: a king move forfeits both rights for its side, a rook moving off
// (or being captured on) its home square forfeits that one right.
func updateCastlingRights(cr CastlingRights, us Color, movedType PieceType, from, to Square, capturedType PieceType, capturedColor Color) CastlingRights {
	if movedType == King {
		cr = cr.DisableColor(us)
	}
	if from == kingsideRookFrom[us] || (capturedType == Rook && to == kingsideRookFrom[us] && capturedColor == us) {
		cr = cr.Without(shortFlag(us))
	}
	if from == queensideRookFrom[us] || (capturedType == Rook && to == queensideRookFrom[us] && capturedColor == us) {
		cr = cr.Without(longFlag(us))
	}
	them := us.Other()
	if capturedType == Rook && capturedColor == them {
		if to == kingsideRookFrom[them] {
			cr = cr.Without(shortFlag(them))
		}
		if to == queensideRookFrom[them] {
			cr = cr.Without(longFlag(them))
		}
	}
	return cr
}
