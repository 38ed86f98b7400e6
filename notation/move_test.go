package notation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseMoveNormal(t *testing.T) {
	d, err := ParseMove("e2e4")
	require.NoError(t, err)
	require.Equal(t, MoveDescriptor{Kind: MoveNormal, From: "e2", To: "e4"}, d)
}

func TestParseMovePromotion(t *testing.T) {
	d, err := ParseMove("e7e8Q")
	require.NoError(t, err)
	require.Equal(t, MoveDescriptor{Kind: MovePromotion, From: "e7", To: "e8", Promotion: 'q'}, d)
}

func TestParseMoveCastlingLiterals(t *testing.T) {
	short, err := ParseMove("O-O")
	require.NoError(t, err)
	require.Equal(t, MoveShortCastle, short.Kind)

	long, err := ParseMove("0-0-0")
	require.NoError(t, err)
	require.Equal(t, MoveLongCastle, long.Kind)
}

func TestParseMoveRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "e2", "e2e4q5", "i2e4", "e2e9"} {
		_, err := ParseMove(s)
		require.Error(t, err, s)
	}
}

func TestFormatMoveRoundTrip(t *testing.T) {
	cases := []string{"e2e4", "a7a8q", "O-O", "O-O-O"}
	for _, s := range cases {
		d, err := ParseMove(s)
		require.NoError(t, err)
		require.Equal(t, s, FormatMove(d))
	}
}
