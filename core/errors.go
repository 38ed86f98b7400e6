package core

import "fmt"

// The four error kinds from spec.md 7. FEN and notation errors surface to
// external collaborators (NewPosition and ParseUCIMove wrap the notation
// package's plain errors in these);
// IllegalMove is reported to whatever requested the move; InternalInvariant
// is fatal and, outside of debug builds, may be disabled at the caller's
// discretion (see Position.AssertInvariants).

// InvalidFenError reports that a FEN string could not be decoded, or decoded
// to a position that violates a required invariant (most commonly: missing
// king for one side).
type InvalidFenError struct {
	Reason string
}

func (e *InvalidFenError) Error() string {
	return fmt.Sprintf("invalid fen: %s", e.Reason)
}

// InvalidMoveNotationError reports that a move string could not be parsed.
type InvalidMoveNotationError struct {
	Text string
}

func (e *InvalidMoveNotationError) Error() string {
	return fmt.Sprintf("invalid move notation: %q", e.Text)
}

// IllegalMoveError reports that a caller-supplied move is not a member of
// the current position's legal move list.
type IllegalMoveError struct {
	Move Move
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("illegal move: %s", e.Move)
}

// InternalInvariantError reports a debug-only assertion failure: bitboard
// and mailbox desync, a hash that doesn't match a from-scratch recompute, or
// an unmake that didn't restore the pre-make state. It is always fatal when
// raised; AssertInvariants may be compiled out entirely in release builds.
type InternalInvariantError struct {
	Reason string
}

func (e *InternalInvariantError) Error() string {
	return fmt.Sprintf("internal invariant violated: %s", e.Reason)
}
