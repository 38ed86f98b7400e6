// Package notation implements the two external wire formats the chess core
// consumes but does not own, per spec.md section 1's "OUT OF SCOPE
// (external collaborators)" list and section 6's "EXTERNAL INTERFACES":
// FEN parsing/printing and UCI-style move notation. It has no dependency on
// package core -- it works entirely in plain Go types -- so that core can
// depend on notation without an import cycle; core's constructors and
// printers translate to and from the descriptors defined here.
package notation

import (
	"fmt"
	"strconv"
	"strings"
)

// FENDescriptor is a parsed, pre-validated (at the syntax level) FEN
// record. Placement is indexed [rank][file] with rank 0 = rank 1 and file 0
// = the a-file; '.' marks an empty square, otherwise the field holds one of
// "PNBRQKpnbrqk".
type FENDescriptor struct {
	Placement      [8][8]byte
	WhiteToMove    bool
	Castling       string // subset of "KQkq", or "-"
	EPSquare       string // algebraic square, or "-"
	HalfMoveClock  int
	FullMoveNumber int
}

// ParseFEN tokenizes and syntax-checks a FEN string into a FENDescriptor.
// It does not know about chess semantics (e.g. "does each side have a
// king?") -- that validation belongs to whatever builds a position from
// the descriptor, per spec.md 4.3.
func ParseFEN(fen string) (FENDescriptor, error) {
	var d FENDescriptor
	fields := strings.Fields(strings.TrimSpace(fen))
	if len(fields) != 6 {
		return d, fmt.Errorf("fen must have 6 fields, got %d", len(fields))
	}

	for i := range d.Placement {
		for j := range d.Placement[i] {
			d.Placement[i][j] = '.'
		}
	}

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return d, fmt.Errorf("fen board must have 8 ranks, got %d", len(ranks))
	}
	for i, rankStr := range ranks {
		rank := 7 - i // FEN lists rank 8 first
		file := 0
		for _, ch := range rankStr {
			switch {
			case ch >= '1' && ch <= '8':
				file += int(ch - '0')
			case strings.ContainsRune("PNBRQKpnbrqk", ch):
				if file > 7 {
					return d, fmt.Errorf("fen rank %q overflows the board", rankStr)
				}
				d.Placement[rank][file] = byte(ch)
				file++
			default:
				return d, fmt.Errorf("fen rank %q has invalid character %q", rankStr, ch)
			}
		}
		if file != 8 {
			return d, fmt.Errorf("fen rank %q does not sum to 8 files", rankStr)
		}
	}

	switch fields[1] {
	case "w":
		d.WhiteToMove = true
	case "b":
		d.WhiteToMove = false
	default:
		return d, fmt.Errorf("fen side to move must be w or b, got %q", fields[1])
	}

	if fields[2] != "-" {
		for _, ch := range fields[2] {
			if !strings.ContainsRune("KQkq", ch) {
				return d, fmt.Errorf("fen castling field has invalid character %q", ch)
			}
		}
	}
	d.Castling = fields[2]

	if fields[3] != "-" {
		if len(fields[3]) != 2 || fields[3][0] < 'a' || fields[3][0] > 'h' ||
			fields[3][1] < '1' || fields[3][1] > '8' {
			return d, fmt.Errorf("fen en passant field %q is not a valid square", fields[3])
		}
	}
	d.EPSquare = fields[3]

	halfMove, err := strconv.Atoi(fields[4])
	if err != nil || halfMove < 0 {
		return d, fmt.Errorf("fen half-move counter %q is not a valid non-negative integer", fields[4])
	}
	d.HalfMoveClock = halfMove

	fullMove, err := strconv.Atoi(fields[5])
	if err != nil || fullMove < 1 {
		return d, fmt.Errorf("fen full-move counter %q is not a valid positive integer", fields[5])
	}
	d.FullMoveNumber = fullMove

	return d, nil
}

// FormatFEN renders a descriptor back into a FEN string. Round-tripping
// ParseFEN -> FormatFEN reproduces the input for any well-formed FEN,
// modulo numeric canonicalization (spec.md 6).
func FormatFEN(d FENDescriptor) string {
	var sb strings.Builder
	for i := 7; i >= 0; i-- {
		empty := 0
		for file := 0; file < 8; file++ {
			ch := d.Placement[i][file]
			if ch == '.' {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(ch)
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if i > 0 {
			sb.WriteByte('/')
		}
	}

	side := "b"
	if d.WhiteToMove {
		side = "w"
	}
	castling := d.Castling
	if castling == "" {
		castling = "-"
	}
	ep := d.EPSquare
	if ep == "" {
		ep = "-"
	}

	return fmt.Sprintf("%s %s %s %s %d %d", sb.String(), side, castling, ep, d.HalfMoveClock, d.FullMoveNumber)
}

// StartingFEN is the standard chess starting position.
const StartingFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// KiwipeteFEN is a well-known move-generator torture position.
const KiwipeteFEN = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
