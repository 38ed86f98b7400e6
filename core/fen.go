package core

import (
	"fmt"

	"github.com/cdeanmorgan/chesscore/notation"
)

// StartingFEN is the standard chess starting position.
const StartingFEN = notation.StartingFEN

var fenPieceTypes = map[byte]PieceType{
	'p': Pawn, 'n': Knight, 'b': Bishop, 'r': Rook, 'q': Queen, 'k': King,
}

// NewPosition constructs a Position from a FEN string (spec.md 4.3). FEN
// syntax is delegated to notation.ParseFEN; this function additionally
// enforces the semantic invariant spec.md 4.3 requires at construction:
// both sides must have exactly one king.
func NewPosition(fen string) (*Position, error) {
	d, err := notation.ParseFEN(fen)
	if err != nil {
		return nil, &InvalidFenError{Reason: err.Error()}
	}

	p := NewEmptyPosition()
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			ch := d.Placement[rank][file]
			if ch == '.' {
				continue
			}
			color := White
			lower := ch
			if ch >= 'a' && ch <= 'z' {
				color = Black
			} else {
				lower = ch + ('a' - 'A')
			}
			pt, ok := fenPieceTypes[lower]
			if !ok {
				return nil, &InvalidFenError{Reason: fmt.Sprintf("unrecognized piece letter %q", ch)}
			}
			p.placePiece(pt, color, NewSquare(file, rank))
		}
	}

	if (p.pieceBB[King] & p.colorBB[White]).Count() != 1 {
		return nil, &InvalidFenError{Reason: "white has no king"}
	}
	if (p.pieceBB[King] & p.colorBB[Black]).Count() != 1 {
		return nil, &InvalidFenError{Reason: "black has no king"}
	}

	if d.WhiteToMove {
		p.SideToMove = White
	} else {
		p.SideToMove = Black
	}

	for _, ch := range d.Castling {
		switch ch {
		case 'K':
			p.Castling |= WhiteShort
		case 'Q':
			p.Castling |= WhiteLong
		case 'k':
			p.Castling |= BlackShort
		case 'q':
			p.Castling |= BlackLong
		}
	}

	p.EPSquare = NoSquare
	if d.EPSquare != "-" && d.EPSquare != "" {
		sq, err := ParseSquare(d.EPSquare)
		if err != nil {
			return nil, &InvalidFenError{Reason: err.Error()}
		}
		p.EPSquare = sq
	}

	p.HalfMoveClock = d.HalfMoveClock
	p.FullMoveNumber = d.FullMoveNumber
	p.Ply = 2*(p.FullMoveNumber-1) + boolToInt(p.SideToMove == Black)

	p.recomputeControlled()
	p.Hash = p.computeHash()

	return p, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// FEN renders the position back to a FEN string (spec.md 6); for positions
// originally parsed from a well-formed FEN, this round-trips the input
// modulo numeric canonicalization.
func (p *Position) FEN() string {
	var d notation.FENDescriptor
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			piece := p.mailbox[NewSquare(file, rank)]
			if piece.IsNone() {
				d.Placement[rank][file] = '.'
			} else {
				d.Placement[rank][file] = piece.Letter()
			}
		}
	}
	d.WhiteToMove = p.SideToMove == White
	d.Castling = p.Castling.String()
	if p.EPSquare == NoSquare {
		d.EPSquare = "-"
	} else {
		d.EPSquare = p.EPSquare.String()
	}
	d.HalfMoveClock = p.HalfMoveClock
	d.FullMoveNumber = p.FullMoveNumber
	return notation.FormatFEN(d)
}
