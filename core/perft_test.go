package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cdeanmorgan/chesscore/notation"
)

// TestPerftStartpos checks the well-known starting-position node counts
// (https://www.chessprogramming.org/Perft_Results), kept shallow here so
// the package test run stays fast.
func TestPerftStartpos(t *testing.T) {
	p, err := NewPosition(StartingFEN)
	require.NoError(t, err)

	want := map[int]uint64{
		1: 20,
		2: 400,
		3: 8902,
		4: 197281,
	}
	for depth, nodes := range want {
		got := Perft(p, depth)
		require.Equal(t, nodes, got, "perft(%d)", depth)
	}
}

// TestPerftKiwipete checks the standard "Kiwipete" position, which exercises
// castling, en passant and promotion move generation much more heavily than
// the starting position.
func TestPerftKiwipete(t *testing.T) {
	p, err := NewPosition(notation.KiwipeteFEN)
	require.NoError(t, err)

	want := map[int]uint64{
		1: 48,
		2: 2039,
		3: 97862,
	}
	for depth, nodes := range want {
		got := Perft(p, depth)
		require.Equal(t, nodes, got, "perft(%d)", depth)
	}
}

func TestDividePerftSumsToPerft(t *testing.T) {
	p, err := NewPosition(StartingFEN)
	require.NoError(t, err)

	entries := DividePerft(p, 3)
	var total uint64
	for _, e := range entries {
		total += e.Nodes
	}
	require.Equal(t, Perft(p, 3), total)
	require.Len(t, entries, 20)
}

func TestParallelPerftMatchesSerial(t *testing.T) {
	p, err := NewPosition(StartingFEN)
	require.NoError(t, err)

	serial := Perft(p, 3)
	parallel, err := ParallelPerft(context.Background(), p, 3)
	require.NoError(t, err)
	require.Equal(t, serial, parallel)
}

func TestCloneDoesNotAliasUndoStack(t *testing.T) {
	p, err := NewPosition(StartingFEN)
	require.NoError(t, err)

	clone := p.Clone()
	m := NewNormalMove(mustSquare(t, "e2"), mustSquare(t, "e4"))
	clone.DoMove(m)

	require.Equal(t, 0, len(p.undo))
	require.Equal(t, 1, len(clone.undo))
}
