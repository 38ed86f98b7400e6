package core

import "github.com/cdeanmorgan/chesscore/notation"

// ParseUCIMove resolves a UCI move string against pos, turning
// notation.ParseMove's side-agnostic descriptor into a concrete Move. It
// does not check legality -- callers that need that guarantee should pass
// the result through IsLegal or MakeLegalMove.
func ParseUCIMove(pos *Position, s string) (Move, error) {
	d, err := notation.ParseMove(s)
	if err != nil {
		return Move{}, &InvalidMoveNotationError{Text: s}
	}

	switch d.Kind {
	case notation.MoveShortCastle:
		return ShortCastleMove(pos.SideToMove), nil
	case notation.MoveLongCastle:
		return LongCastleMove(pos.SideToMove), nil
	}

	from, err := ParseSquare(d.From)
	if err != nil {
		return Move{}, &InvalidMoveNotationError{Text: s}
	}
	to, err := ParseSquare(d.To)
	if err != nil {
		return Move{}, &InvalidMoveNotationError{Text: s}
	}

	if d.Kind == notation.MovePromotion {
		return NewPromotionMove(from, to, promotionPieceFromLetter(d.Promotion)), nil
	}

	// A from/to pair of a king moving two squares is how most UCI clients
	// (and the opening book) express castling, rather than the O-O literal.
	piece := pos.Piece(from)
	if piece.Type == King {
		delta := int(to) - int(from)
		if delta == -2 {
			return ShortCastleMove(piece.Color), nil
		}
		if delta == 2 {
			return LongCastleMove(piece.Color), nil
		}
	}
	return NewNormalMove(from, to), nil
}

// FormatUCIMove renders m in UCI coordinate notation. Move already
// implements this via String; FormatUCIMove exists so callers working
// purely in terms of notation descriptors don't need to know that.
func FormatUCIMove(m Move) string {
	return m.String()
}

func promotionPieceFromLetter(letter byte) PieceType {
	switch letter {
	case 'n':
		return Knight
	case 'b':
		return Bishop
	case 'r':
		return Rook
	default:
		return Queen
	}
}
