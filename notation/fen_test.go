package notation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseFENStartpos(t *testing.T) {
	d, err := ParseFEN(StartingFEN)
	require.NoError(t, err)
	require.True(t, d.WhiteToMove)
	require.Equal(t, "KQkq", d.Castling)
	require.Equal(t, "-", d.EPSquare)
	require.Equal(t, 0, d.HalfMoveClock)
	require.Equal(t, 1, d.FullMoveNumber)
	require.Equal(t, byte('R'), d.Placement[0][0])
	require.Equal(t, byte('r'), d.Placement[7][0])
}

func TestParseFENRejectsMalformed(t *testing.T) {
	cases := []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0", // missing field
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w KQkq - 0 1",        // 7 ranks
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNX w KQkq - 0 1", // invalid letter
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1", // invalid side
	}
	for _, fen := range cases {
		_, err := ParseFEN(fen)
		require.Error(t, err, fen)
	}
}

func TestFormatFENRoundTrip(t *testing.T) {
	d, err := ParseFEN(KiwipeteFEN)
	require.NoError(t, err)
	require.Equal(t, KiwipeteFEN, FormatFEN(d))
}
