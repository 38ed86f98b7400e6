// Package book implements the opening-book "external collaborator" spec.md
// section 6 names: a pure lookup from a position's hash to a candidate move,
// plus a decoder for the Polyglot .bin format most chess tools already
// produce books in.
package book

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math/rand"
	"os"
	"sort"

	"github.com/cdeanmorgan/chesscore/core"
)

// entrySize is the Polyglot format's fixed per-position record length: an
// 8-byte zobrist key, a 2-byte packed move, a 2-byte weight, and a 4-byte
// "learn" field this decoder ignores.
const entrySize = 16

// Move is a book move before it has been reconciled against a live
// Position: From/To/Promotion describe the raw Polyglot encoding, which
// represents castling as the king's historical two-square step rather than
// as a tagged variant. Callers pass these through core.AdjustBookMove to
// get a core.Move.
type Move struct {
	From      core.Square
	To        core.Square
	Promotion core.PieceType // NoPieceType if not a promotion
}

type bookEntry struct {
	move   Move
	weight uint16
}

// Book is an in-memory Polyglot opening book: every position hash maps to
// zero or more weighted candidate moves, sorted by decreasing weight so the
// "strongest" entry is always first.
type Book struct {
	entries map[uint64][]bookEntry
}

// Load reads a Polyglot .bin book from r in full.
func Load(r io.Reader) (*Book, error) {
	br := bufio.NewReader(r)
	b := &Book{entries: make(map[uint64][]bookEntry)}

	var record [entrySize]byte
	for {
		_, err := io.ReadFull(br, record[:])
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("book: reading entry: %w", err)
		}

		key := binary.BigEndian.Uint64(record[0:8])
		packed := binary.BigEndian.Uint16(record[8:10])
		weight := binary.BigEndian.Uint16(record[10:12])

		b.entries[key] = append(b.entries[key], bookEntry{
			move:   unpackMove(packed),
			weight: weight,
		})
	}

	for key := range b.entries {
		list := b.entries[key]
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].weight > list[j].weight
		})
	}
	return b, nil
}

// unpackMove decodes Polyglot's 16-bit move encoding (spec.md 6, confirmed
// against original_source/shakmat-engine's polyglot/book.rs): bits 0-2 are
// the destination file, 3-5 the destination rank, 6-8 the source file, 9-11
// the source rank, and 12-14 a promotion-piece id (0 = none, 1..4 = N/B/R/Q).
func unpackMove(bits uint16) Move {
	toFile := int(bits & 0x7)
	toRank := int((bits >> 3) & 0x7)
	fromFile := int((bits >> 6) & 0x7)
	fromRank := int((bits >> 9) & 0x7)
	promoID := int((bits >> 12) & 0x7)

	var promo core.PieceType
	switch promoID {
	case 1:
		promo = core.Knight
	case 2:
		promo = core.Bishop
	case 3:
		promo = core.Rook
	case 4:
		promo = core.Queen
	default:
		promo = core.NoPieceType
	}

	return Move{
		From:      core.NewSquare(fromFile, fromRank),
		To:        core.NewSquare(toFile, toRank),
		Promotion: promo,
	}
}

// LoadFile opens and decodes a Polyglot book file at path.
func LoadFile(path string) (*Book, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("book: opening %s: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}

// Lookup returns the highest-weighted book move for hash, the interface
// spec.md section 6 names as "book.lookup(hash) -> Option<Move>".
func (b *Book) Lookup(hash uint64) (Move, bool) {
	list := b.entries[hash]
	if len(list) == 0 {
		return Move{}, false
	}
	return list[0].move, true
}

// LookupWeighted picks randomly among hash's candidate moves, weighted by
// their book frequency, for callers that want book variety instead of
// always the single best-known line.
func (b *Book) LookupWeighted(hash uint64, rng *rand.Rand) (Move, bool) {
	list := b.entries[hash]
	if len(list) == 0 {
		return Move{}, false
	}
	total := 0
	for _, e := range list {
		total += int(e.weight)
	}
	if total == 0 {
		return list[0].move, true
	}
	pick := rng.Intn(total)
	for _, e := range list {
		pick -= int(e.weight)
		if pick < 0 {
			return e.move, true
		}
	}
	return list[len(list)-1].move, true
}
