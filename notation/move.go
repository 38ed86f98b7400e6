package notation

import (
	"fmt"
	"strings"
)

// MoveKind mirrors core.MoveKind at the notation layer, without importing
// core (see package doc).
type MoveKind int

const (
	MoveNormal MoveKind = iota
	MovePromotion
	MoveShortCastle
	MoveLongCastle
)

// MoveDescriptor is a parsed UCI-style move string (spec.md 6): four or
// five characters, or one of the castling literals. From/To are algebraic
// square strings; Promotion is a lowercase piece letter ('q','r','b','n')
// valid only when Kind == MovePromotion.
type MoveDescriptor struct {
	Kind      MoveKind
	From      string
	To        string
	Promotion byte
}

// ParseMove parses a UCI move string. It recognizes the castling literals
// "O-O"/"0-0" and "O-O-O"/"0-0-0" directly; any other 4- or 5-character
// string is treated as <from><to>[promotion]. Resolving a castling literal
// or a from/to pair against which side is actually castling is the job of
// whatever holds position state (package core), since notation has none.
func ParseMove(s string) (MoveDescriptor, error) {
	switch s {
	case "O-O", "0-0":
		return MoveDescriptor{Kind: MoveShortCastle}, nil
	case "O-O-O", "0-0-0":
		return MoveDescriptor{Kind: MoveLongCastle}, nil
	}

	if len(s) != 4 && len(s) != 5 {
		return MoveDescriptor{}, fmt.Errorf("move %q must be 4 or 5 characters", s)
	}
	from, to := s[0:2], s[2:4]
	if !isSquare(from) || !isSquare(to) {
		return MoveDescriptor{}, fmt.Errorf("move %q has an invalid square", s)
	}

	if len(s) == 5 {
		promo := s[4]
		if promo >= 'A' && promo <= 'Z' {
			promo += 'a' - 'A'
		}
		if !strings.ContainsRune("qrbn", rune(promo)) {
			return MoveDescriptor{}, fmt.Errorf("move %q has an invalid promotion piece", s)
		}
		return MoveDescriptor{Kind: MovePromotion, From: from, To: to, Promotion: promo}, nil
	}

	return MoveDescriptor{Kind: MoveNormal, From: from, To: to}, nil
}

func isSquare(s string) bool {
	return len(s) == 2 && s[0] >= 'a' && s[0] <= 'h' && s[1] >= '1' && s[1] <= '8'
}

// FormatMove renders a descriptor back to its UCI string.
func FormatMove(d MoveDescriptor) string {
	switch d.Kind {
	case MoveShortCastle:
		return "O-O"
	case MoveLongCastle:
		return "O-O-O"
	case MovePromotion:
		return d.From + d.To + string(d.Promotion)
	default:
		return d.From + d.To
	}
}
