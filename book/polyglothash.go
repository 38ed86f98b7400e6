package book

import "github.com/cdeanmorgan/chesscore/core"

// PolyglotHash computes the book-lookup key for pos, using a table separate
// from core's own Zobrist table (see core/zobrist.go). It follows the
// Polyglot [piece][square]/[castling]/[ep-file]/[side] partition, grounded
// on the corpus's own Polyglot decoders (other_examples' hailam-chessplay
// board/polyglot.go and original_source/shakmat-engine/src/polyglot/book.rs),
// but its keys come from a fixed-seed xorshift64* generator, not Polyglot's
// published 781-value random array. Its hashes therefore differ from the
// keys stored in .bin books produced by other Polyglot tools (the starting
// position hashes to 0xa549744247881736, not 0x463b96181691fc9c); lookups
// only hit in books keyed with this same function.
func PolyglotHash(pos *core.Position) uint64 {
	var hash uint64

	for sq := 0; sq < 64; sq++ {
		p := pos.Piece(core.Square(sq))
		if p.IsNone() {
			continue
		}
		hash ^= polyglotPieceKey(p, core.Square(sq))
	}

	if pos.Castling.Has(core.WhiteShort) {
		hash ^= polyglotCastlingKeys[0]
	}
	if pos.Castling.Has(core.WhiteLong) {
		hash ^= polyglotCastlingKeys[1]
	}
	if pos.Castling.Has(core.BlackShort) {
		hash ^= polyglotCastlingKeys[2]
	}
	if pos.Castling.Has(core.BlackLong) {
		hash ^= polyglotCastlingKeys[3]
	}

	if pos.EPSquare != core.NoSquare && polyglotEPCapturable(pos) {
		hash ^= polyglotEPFileKeys[pos.EPSquare.File()]
	}

	if pos.SideToMove == core.White {
		hash ^= polyglotSideToMoveKey
	}

	return hash
}

// polyglotEPCapturable reports whether an enemy pawn actually sits beside
// the en passant target, matching the Polyglot rule of only folding the EP
// file into the hash when a capture is physically possible (the same rule
// core/zobrist.go applies to its own table, confirmed independently here
// against the corpus's polyglot decoders).
func polyglotEPCapturable(pos *core.Position) bool {
	file := pos.EPSquare.File()
	capturingRank := pos.EPSquare.Rank() - 1
	capturer := core.Piece{Type: core.Pawn, Color: pos.SideToMove}
	if pos.SideToMove == core.Black {
		capturingRank = pos.EPSquare.Rank() + 1
	}
	if file > 0 {
		if pos.Piece(core.NewSquare(file-1, capturingRank)) == capturer {
			return true
		}
	}
	if file < 7 {
		if pos.Piece(core.NewSquare(file+1, capturingRank)) == capturer {
			return true
		}
	}
	return false
}

func polyglotPieceKey(p core.Piece, sq core.Square) uint64 {
	return polyglotPieceKeys[polyglotPieceIndex(p)][sq]
}

// polyglotPieceIndex maps a piece to Polyglot's fixed piece-kind ordering:
// black pawn, white pawn, black knight, white knight, ... black king, white
// king (confirmed against hailam-chessplay's pieceKindMap and shakmat's
// PieceType enumeration order).
func polyglotPieceIndex(p core.Piece) int {
	idx := int(p.Type) * 2
	if p.Color == core.White {
		idx++
	}
	return idx
}

const polyglotSeed = 0x37B4A4B3F0D1C0D0

var (
	polyglotPieceKeys     [12][64]uint64
	polyglotCastlingKeys  [4]uint64
	polyglotEPFileKeys    [8]uint64
	polyglotSideToMoveKey uint64
)

func init() {
	state := uint64(polyglotSeed)

	next := func() uint64 {
		state ^= state >> 12
		state ^= state << 25
		state ^= state >> 27
		return state * 0x2545F4914F6CDD1D
	}

	for piece := 0; piece < 12; piece++ {
		for sq := 0; sq < 64; sq++ {
			polyglotPieceKeys[piece][sq] = next()
		}
	}
	for i := range polyglotCastlingKeys {
		polyglotCastlingKeys[i] = next()
	}
	for i := range polyglotEPFileKeys {
		polyglotEPFileKeys[i] = next()
	}
	polyglotSideToMoveKey = next()
}
