package core

import "fmt"

// Square is a board square in 0..63. This package fixes the mapping
// square = rank*8 + (7 - file), so file 0 (the a-file) sits in the high
// bits of each rank's byte; every attack table, magic, castling mask and
// notation routine in this package agrees with that convention.
type Square int

const (
	NoSquare Square = -1
)

// Named squares used by castling and make/unmake.
const (
	H1 Square = 0
	G1 Square = 1
	F1 Square = 2
	E1 Square = 3
	D1 Square = 4
	C1 Square = 5
	B1 Square = 6
	A1 Square = 7
	H8 Square = 56
	G8 Square = 57
	F8 Square = 58
	E8 Square = 59
	D8 Square = 60
	C8 Square = 61
	B8 Square = 62
	A8 Square = 63
)

// File returns the file (0=a..7=h) of sq.
func (sq Square) File() int {
	return 7 - int(sq)%8
}

// Rank returns the rank (0=first..7=eighth) of sq.
func (sq Square) Rank() int {
	return int(sq) / 8
}

// NewSquare builds a Square from a file (0..7) and rank (0..7).
func NewSquare(file, rank int) Square {
	return Square(rank*8 + (7 - file))
}

// Bitboard returns the single-square bitboard for sq.
func (sq Square) Bitboard() Bitboard {
	return squareBit(sq)
}

// String renders sq in algebraic notation, e.g. "e4".
func (sq Square) String() string {
	if sq < 0 || sq > 63 {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'a'+rune(sq.File()), '1'+rune(sq.Rank()))
}

// ParseSquare parses algebraic notation ("a1".."h8") into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("invalid square %q", s)
	}
	file := int(s[0] - 'a')
	rank := int(s[1] - '1')
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return NoSquare, fmt.Errorf("invalid square %q", s)
	}
	return NewSquare(file, rank), nil
}
