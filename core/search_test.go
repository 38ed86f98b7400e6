package core

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func newTestSearch() *Search {
	tt := NewTranspositionTable(1 << 16)
	return NewSearch(tt, TaperedEvaluator{}, nil)
}

// TestSearchFindsMateInOne checks that the iterative-deepening driver
// returns the mating move when one is available at shallow depth, the
// minimal sanity property spec.md 8 asks every search implementation to
// satisfy before trusting deeper results.
func TestSearchFindsMateInOne(t *testing.T) {
	// White to move: the a1 rook's only check is along the back rank, and
	// Black's own f7/g7/h7 pawns block every escape square, so Ra1-a8 is
	// the unique mate in one.
	p, err := NewPosition("6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1")
	require.NoError(t, err)

	s := newTestSearch()
	result := s.Run(p, SearchOptions{MaxDepth: 3, TimeControl: TimeControl{TimeForThisMove: 2 * time.Second}})

	a1, _ := ParseSquare("a1")
	a8, _ := ParseSquare("a8")
	require.Equal(t, a8, result.Move.To)
	require.GreaterOrEqual(t, result.Score, MateValue-MaxPly)

	// The PV for a one-move mate is exactly the mating move itself; anything
	// longer would mean the driver kept appending moves past a terminal node.
	wantPV := []Move{NewNormalMove(a1, a8)}
	if diff := cmp.Diff(wantPV, result.PV); diff != "" {
		t.Errorf("PV mismatch (-want +got):\n%s", diff)
	}
}

// TestSearchStopInterruptsRun checks that a Stop call delivered from another
// goroutine while a deep, time-unbounded search is in flight causes Run to
// return promptly instead of running to MaxDepth, the property the UCI
// "stop" command depends on.
func TestSearchStopInterruptsRun(t *testing.T) {
	p, err := NewPosition(StartingFEN)
	require.NoError(t, err)

	s := newTestSearch()
	go func() {
		time.Sleep(50 * time.Millisecond)
		s.Stop()
	}()

	done := make(chan Result, 1)
	go func() {
		done <- s.Run(p, SearchOptions{MaxDepth: MaxPly - 1})
	}()

	select {
	case result := <-done:
		require.False(t, result.Move.IsNone())
	case <-time.After(10 * time.Second):
		t.Fatal("search did not return after Stop")
	}
}
