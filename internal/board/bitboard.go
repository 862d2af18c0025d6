package board

import (
	"math/bits"
	"strings"
)

// Bitboard is a set of squares over the fixed 64-square universe.
// Bit 0 = A1, Bit 7 = H1, Bit 56 = A8, Bit 63 = H8.
//
// Callers outside this package combine sets through the named methods
// below rather than through bit operators.
type Bitboard uint64

// File masks
const (
	FileA Bitboard = 0x0101010101010101
	FileB Bitboard = 0x0202020202020202
	FileC Bitboard = 0x0404040404040404
	FileD Bitboard = 0x0808080808080808
	FileE Bitboard = 0x1010101010101010
	FileF Bitboard = 0x2020202020202020
	FileG Bitboard = 0x4040404040404040
	FileH Bitboard = 0x8080808080808080
)

// Rank masks
const (
	Rank1 Bitboard = 0x00000000000000FF
	Rank2 Bitboard = 0x000000000000FF00
	Rank3 Bitboard = 0x0000000000FF0000
	Rank4 Bitboard = 0x00000000FF000000
	Rank5 Bitboard = 0x000000FF00000000
	Rank6 Bitboard = 0x0000FF0000000000
	Rank7 Bitboard = 0x00FF000000000000
	Rank8 Bitboard = 0xFF00000000000000
)

const (
	Empty    Bitboard = 0
	Universe Bitboard = 0xFFFFFFFFFFFFFFFF

	// Backranks holds the first and eighth ranks, where pawns never stand.
	Backranks Bitboard = Rank1 | Rank8

	notFileA  Bitboard = ^FileA
	notFileH  Bitboard = ^FileH
	notFileAB Bitboard = ^(FileA | FileB)
	notFileGH Bitboard = ^(FileG | FileH)
)

// FileMask returns the file mask for a given file (0-7).
var FileMask = [8]Bitboard{FileA, FileB, FileC, FileD, FileE, FileF, FileG, FileH}

// RankMask returns the rank mask for a given rank (0-7).
var RankMask = [8]Bitboard{Rank1, Rank2, Rank3, Rank4, Rank5, Rank6, Rank7, Rank8}

// RelativeRankBB returns the mask of the rank seen from c's side (0 = own first rank).
func RelativeRankBB(c Color, rank int) Bitboard {
	if c == White {
		return RankMask[rank]
	}
	return RankMask[7-rank]
}

// SquareBB returns the set holding only sq.
func SquareBB(sq Square) Bitboard {
	if sq >= NoSquare {
		return Empty
	}
	return 1 << sq
}

// Union returns the squares in b or o.
func (b Bitboard) Union(o Bitboard) Bitboard {
	return b | o
}

// Intersect returns the squares in both b and o.
func (b Bitboard) Intersect(o Bitboard) Bitboard {
	return b & o
}

// Without returns the squares of b that are not in o.
func (b Bitboard) Without(o Bitboard) Bitboard {
	return b &^ o
}

// Complement returns every square not in b.
func (b Bitboard) Complement() Bitboard {
	return ^b
}

// With returns b plus sq.
func (b Bitboard) With(sq Square) Bitboard {
	return b | SquareBB(sq)
}

// Toggle flips membership of sq.
func (b Bitboard) Toggle(sq Square) Bitboard {
	return b ^ SquareBB(sq)
}

// Contains reports whether sq is in the set.
func (b Bitboard) Contains(sq Square) bool {
	return b&SquareBB(sq) != 0
}

// Count returns the number of squares in the set.
func (b Bitboard) Count() int {
	return bits.OnesCount64(uint64(b))
}

// IsEmpty returns true if no square is set.
func (b Bitboard) IsEmpty() bool {
	return b == 0
}

// Any returns true if at least one square is set.
func (b Bitboard) Any() bool {
	return b != 0
}

// First returns the lowest square of the set, NoSquare when empty.
func (b Bitboard) First() Square {
	if b == 0 {
		return NoSquare
	}
	return Square(bits.TrailingZeros64(uint64(b)))
}

// Last returns the highest square of the set, NoSquare when empty.
func (b Bitboard) Last() Square {
	if b == 0 {
		return NoSquare
	}
	return Square(63 - bits.LeadingZeros64(uint64(b)))
}

// PopFirst removes and returns the lowest square.
func (b *Bitboard) PopFirst() Square {
	sq := b.First()
	*b &= *b - 1
	return sq
}

// Shift moves every square delta indices along the board: +8 is one rank
// up, -8 one rank down. Squares leaving the board are dropped.
func (b Bitboard) Shift(delta int) Bitboard {
	if delta >= 0 {
		return b << uint(delta)
	}
	return b >> uint(-delta)
}

// FlipVertical mirrors the set across the horizontal middle line.
func (b Bitboard) FlipVertical() Bitboard {
	return Bitboard(bits.ReverseBytes64(uint64(b)))
}

// Squares returns the members in ascending order.
func (b Bitboard) Squares() []Square {
	squares := make([]Square, 0, b.Count())
	for b != 0 {
		squares = append(squares, b.PopFirst())
	}
	return squares
}

// String returns a visual representation of the bitboard.
func (b Bitboard) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		sb.WriteByte(byte('1' + rank))
		sb.WriteByte(' ')
		for file := 0; file < 8; file++ {
			if b.Contains(NewSquare(file, rank)) {
				sb.WriteString("1 ")
			} else {
				sb.WriteString(". ")
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h\n")
	return sb.String()
}
