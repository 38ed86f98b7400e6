package book

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cdeanmorgan/chesscore/core"
	"github.com/cdeanmorgan/chesscore/notation"
)

// encodeEntry builds one 16-byte Polyglot record for key/packedMove/weight,
// mirroring the layout Load decodes (8-byte key, 2-byte move, 2-byte
// weight, 4 ignored "learn" bytes).
func encodeEntry(buf *bytes.Buffer, key uint64, packedMove, weight uint16) {
	var rec [16]byte
	binary.BigEndian.PutUint64(rec[0:8], key)
	binary.BigEndian.PutUint16(rec[8:10], packedMove)
	binary.BigEndian.PutUint16(rec[10:12], weight)
	buf.Write(rec[:])
}

// packMove mirrors unpackMove's bit layout in reverse, for building test
// fixtures without a real .bin file.
func packMove(fromFile, fromRank, toFile, toRank, promoID int) uint16 {
	return uint16(toFile | toRank<<3 | fromFile<<6 | fromRank<<9 | promoID<<12)
}

func TestLoadAndLookup(t *testing.T) {
	var buf bytes.Buffer
	// e2e4, packed as from(file 4, rank 1) -> to(file 4, rank 3), no promotion.
	encodeEntry(&buf, 42, packMove(4, 1, 4, 3, 0), 10)

	b, err := Load(&buf)
	require.NoError(t, err)

	m, ok := b.Lookup(42)
	require.True(t, ok)
	e2, _ := core.ParseSquare("e2")
	e4, _ := core.ParseSquare("e4")
	require.Equal(t, e2, m.From)
	require.Equal(t, e4, m.To)
	require.Equal(t, core.NoPieceType, m.Promotion)

	_, ok = b.Lookup(999)
	require.False(t, ok)
}

func TestLoadSortsByWeightDescending(t *testing.T) {
	var buf bytes.Buffer
	encodeEntry(&buf, 7, packMove(4, 1, 4, 2, 0), 5)
	encodeEntry(&buf, 7, packMove(4, 1, 4, 3, 0), 50)

	b, err := Load(&buf)
	require.NoError(t, err)

	best, ok := b.Lookup(7)
	require.True(t, ok)
	e4, _ := core.ParseSquare("e4")
	require.Equal(t, e4, best.To, "the higher-weighted move should be returned first")
}

func TestLoadRejectsTruncatedRecord(t *testing.T) {
	_, err := Load(bytes.NewReader([]byte{1, 2, 3}))
	require.Error(t, err)
}

// TestPolyglotHashDrivesBookLookup exercises the full book-consulting path:
// a record keyed by a real position's PolyglotHash is found by Lookup, and
// the decoded e2e4 adjusts to a legal core.Move. The castling-shape
// adjustment is covered by TestAdjustBookMoveRecognizesCastlingShape.
func TestPolyglotHashDrivesBookLookup(t *testing.T) {
	pos, err := core.NewPosition(notation.StartingFEN)
	require.NoError(t, err)

	key := PolyglotHash(pos)

	var buf bytes.Buffer
	encodeEntry(&buf, key, packMove(4, 1, 4, 3, 0), 1)
	b, err := Load(&buf)
	require.NoError(t, err)

	m, ok := b.Lookup(key)
	require.True(t, ok)

	adjusted := core.AdjustBookMove(pos, m.From, m.To, m.Promotion)
	e2, _ := core.ParseSquare("e2")
	e4, _ := core.ParseSquare("e4")
	require.Equal(t, core.NewNormalMove(e2, e4), adjusted)
	require.True(t, core.IsLegal(pos, adjusted))
}

func TestAdjustBookMoveRecognizesCastlingShape(t *testing.T) {
	pos, err := core.NewPosition("4k3/8/8/8/8/8/8/4K2R w K - 0 1")
	require.NoError(t, err)

	e1, _ := core.ParseSquare("e1")
	g1, _ := core.ParseSquare("g1")
	m := core.AdjustBookMove(pos, e1, g1, core.NoPieceType)
	require.Equal(t, core.ShortCastleMove(core.White), m)
}
