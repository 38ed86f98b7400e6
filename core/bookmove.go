package core

// AdjustBookMove turns a raw (from, to, promotion) triple decoded from an
// opening book into this package's Move representation, applying spec.md
// section 6's castling-shape rule: a book move whose king-destination is
// from-2 or from+2 is a short/long castle, not a two-square king step,
// because book moves encode castling as the king's two-square step
// (e1g1/e1c1-style) rather than as a tagged variant.
func AdjustBookMove(p *Position, from, to Square, promotion PieceType) Move {
	piece := p.Piece(from)
	if piece.Type == King {
		delta := int(to) - int(from)
		if delta == -2 {
			return ShortCastleMove(piece.Color)
		}
		if delta == 2 {
			return LongCastleMove(piece.Color)
		}
	}
	if promotion != NoPieceType {
		return NewPromotionMove(from, to, promotion)
	}
	return NewNormalMove(from, to)
}
