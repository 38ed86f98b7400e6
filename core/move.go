package core

// MoveKind tags the variant a Move carries, per spec.md 3 ("Move"):
// Normal, PawnPromotion, ShortCastle, LongCastle.
type MoveKind uint8

const (
	MoveNormal MoveKind = iota
	MovePromotion
	MoveShortCastle
	MoveLongCastle
)

// Move is the tagged-variant move representation from spec.md 3. For the
// two castle kinds, From/To hold the king's start and destination squares
// (set by ShortCastleMove/LongCastleMove and used by String); make/unmake
// derive the king and rook squares from the side to move instead.
//
// Equality is structural: two Move values compare equal with == iff they
// represent the same move, since every field participates in comparison.
type Move struct {
	Kind       MoveKind
	From       Square
	To         Square
	PromoteTo  PieceType // valid only when Kind == MovePromotion
}

// NewNormalMove builds a Normal{from, to} move.
func NewNormalMove(from, to Square) Move {
	return Move{Kind: MoveNormal, From: from, To: to}
}

// NewPromotionMove builds a PawnPromotion{from, to, promoteTo} move.
// promoteTo must be one of Queen, Rook, Bishop, Knight.
func NewPromotionMove(from, to Square, promoteTo PieceType) Move {
	return Move{Kind: MovePromotion, From: from, To: to, PromoteTo: promoteTo}
}

// ShortCastleMove and LongCastleMove build the two castle variants, whose
// king/rook endpoints are derived from the side to move at apply time.
func ShortCastleMove(us Color) Move {
	return Move{Kind: MoveShortCastle, From: kingHome[us], To: kingsideKingTo[us]}
}

func LongCastleMove(us Color) Move {
	return Move{Kind: MoveLongCastle, From: kingHome[us], To: queensideKingTo[us]}
}

// IsNone reports whether m is the zero Move, used as a "no move" sentinel
// in the transposition table and search results.
func (m Move) IsNone() bool {
	return m == Move{}
}

// IsCastle reports whether m is either castling variant.
func (m Move) IsCastle() bool {
	return m.Kind == MoveShortCastle || m.Kind == MoveLongCastle
}

// String renders m in UCI coordinate notation: e2e4, e7e8q, e1g1 (white
// short castle), e8c8 (black long castle). UCI has no SAN-style "O-O"
// literal; castling is always the king's historical two-square step, which
// is also what ParseUCIMove's from/to fallback expects back.
func (m Move) String() string {
	switch m.Kind {
	case MovePromotion:
		return m.From.String() + m.To.String() + string(promotionLetter(m.PromoteTo))
	default:
		return m.From.String() + m.To.String()
	}
}

func promotionLetter(pt PieceType) byte {
	switch pt {
	case Knight:
		return 'n'
	case Bishop:
		return 'b'
	case Rook:
		return 'r'
	default:
		return 'q'
	}
}

// kingHome, kingsideKingTo, queensideKingTo, and the matching rook squares
// are indexed by Color and used both by castling-move construction and by
// make/unmake (section 4.5/4.6).
var (
	kingHome        = [2]Square{E1, E8}
	kingsideKingTo  = [2]Square{G1, G8}
	queensideKingTo = [2]Square{C1, C8}
	kingsideRookFrom  = [2]Square{H1, H8}
	kingsideRookTo    = [2]Square{F1, F8}
	queensideRookFrom = [2]Square{A1, A8}
	queensideRookTo   = [2]Square{D1, D8}
)
