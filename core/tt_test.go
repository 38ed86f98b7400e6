package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTranspositionTableProbeMiss(t *testing.T) {
	tt := NewTranspositionTable(1 << 16)
	_, ok := tt.Probe(12345)
	require.False(t, ok)
}

func TestTranspositionTableStoreAndProbe(t *testing.T) {
	tt := NewTranspositionTable(1 << 16)
	move := NewNormalMove(mustSquare(t, "e2"), mustSquare(t, "e4"))
	tt.Store(99, 4, 120, BoundExact, move)

	entry, ok := tt.Probe(99)
	require.True(t, ok)
	require.Equal(t, 4, entry.Depth)
	require.Equal(t, 120, entry.Score)
	require.Equal(t, BoundExact, entry.Bound)
	require.Equal(t, move, entry.BestMove)
}

func TestTranspositionTableKeyMismatchIsMiss(t *testing.T) {
	tt := NewTranspositionTable(1 << 10)
	tt.Store(1, 3, 10, BoundExact, Move{})

	// A different key that happens to land on the same slot must not be
	// served the first key's entry.
	collidingKey := uint64(1 + len(tt.entries))
	tt.Store(collidingKey, 5, 20, BoundExact, Move{})

	entry, ok := tt.Probe(collidingKey)
	require.True(t, ok)
	require.Equal(t, 20, entry.Score)

	_, ok = tt.Probe(1)
	require.False(t, ok)
}

func TestTranspositionTableKeepsBestMoveOnMoveLessUpdate(t *testing.T) {
	tt := NewTranspositionTable(1 << 16)
	move := NewNormalMove(mustSquare(t, "d2"), mustSquare(t, "d4"))
	tt.Store(7, 4, 50, BoundUpperbound, move)

	// A same-depth store that tightens the bound to Exact but carries no
	// move of its own must not erase the previously stored best move.
	tt.Store(7, 4, 55, BoundExact, Move{})

	entry, ok := tt.Probe(7)
	require.True(t, ok)
	require.Equal(t, move, entry.BestMove)
	require.Equal(t, BoundExact, entry.Bound)
	require.Equal(t, 55, entry.Score)
}

func TestTranspositionTableClear(t *testing.T) {
	tt := NewTranspositionTable(1 << 16)
	tt.Store(1, 1, 1, BoundExact, Move{})
	tt.Clear()

	_, ok := tt.Probe(1)
	require.False(t, ok)
}
