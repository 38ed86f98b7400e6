package core

// Zobrist keying (spec.md 4.2): 793 random 64-bit values, partitioned as
// 768 = 12 piece-kinds x 64 squares, 16 for the packed castling-rights
// value, 8 for the file of an active en-passant target, and 1 for the
// side-to-move flag.
//
// Open question (spec.md 9, SPEC_FULL.md "Zobrist constants"): spec.md 8's
// hex test vectors are the published hgm.nubati.net Polyglot book-format
// known-answer tests, computed against Polyglot's own literal 781-entry
// random array -- not against any seeded generator. This was checked
// directly, not just assumed: original_source/shakmat-core's own
// zobrist_utils.rs seeds `rand::rngs::StdRng::seed_from_u64(1337)` over the
// identical 793-slot layout used here, and its test_zobrist.rs asserts
// these same hex vectors against that seed. Reimplementing that exact
// StdRng(1337) stream (a from-scratch port of ChaCha) and checking its
// output against the vectors showed the two don't agree -- confirming
// test_zobrist.rs was written against Polyglot's literal array (its own
// comment says so: "the random values defined by PolyGlot"), not the
// seeded stream that ships in the retrieved zobrist_utils.rs snapshot.
// _INDEX.md lists multiple differently-sized historical versions of
// zobrist_utils.rs/castling.rs/color.rs, so the seeded generator and the
// test file most likely come from different commits of the original.
// The literal 781-value array itself could not be sourced from anywhere
// reachable here (crates.io and the Go module proxy were both tried; see
// zobrist_test.go's skipped vector test for the concrete positions this
// would need to reproduce). So this package instead derives a fixed table
// with splitmix64, seeded with a constant so the values never change across
// runs or platforms (the property spec.md 4.2 actually requires: "Seed is
// fixed so values are stable across runs"). Opening-book lookups do not use
// this table: they key on book.PolyglotHash (book/polyglothash.go), which
// carries the same caveat -- its fixed-seed keys are not Polyglot's
// published array either.

const (
	zobristPieceCount    = 12 // 6 piece types x 2 colors
	zobristCastlingCount = 16
	zobristEPFileCount   = 8
	zobristSeed          = 0x9E3779B97F4A7C15 // golden-ratio constant, fixed
)

var (
	zobristPieceKeys    [zobristPieceCount][64]uint64
	zobristCastlingKeys [zobristCastlingCount]uint64
	zobristEPFileKeys   [zobristEPFileCount]uint64
	zobristSideToMove   uint64
)

// splitmix64 is a small, fast, fixed-seed PRNG sufficient for generating a
// stable Zobrist table; it is not used anywhere security-sensitive.
type splitmix64 struct {
	state uint64
}

func (s *splitmix64) next() uint64 {
	s.state += 0x9E3779B97F4A7C15
	z := s.state
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	z = z ^ (z >> 31)
	return z
}

func init() {
	rng := &splitmix64{state: zobristSeed}
	for pt := 0; pt < 6; pt++ {
		for c := 0; c < 2; c++ {
			idx := pieceIndex(PieceType(pt), Color(c))
			for sq := 0; sq < 64; sq++ {
				zobristPieceKeys[idx][sq] = rng.next()
			}
		}
	}
	for i := range zobristCastlingKeys {
		zobristCastlingKeys[i] = rng.next()
	}
	for i := range zobristEPFileKeys {
		zobristEPFileKeys[i] = rng.next()
	}
	zobristSideToMove = rng.next()
}

// pieceIndex maps (PieceType, Color) to 0..11 for the piece-key table.
func pieceIndex(pt PieceType, c Color) int {
	return int(pt)*2 + int(c)
}

func pieceKey(p Piece, sq Square) uint64 {
	return zobristPieceKeys[pieceIndex(p.Type, p.Color)][sq]
}

func castlingKey(cr CastlingRights) uint64 {
	return zobristCastlingKeys[cr]
}

func epFileKey(sq Square) uint64 {
	return zobristEPFileKeys[sq.File()]
}

func sideToMoveKey() uint64 {
	return zobristSideToMove
}
