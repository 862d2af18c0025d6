package board

import "strings"

// Board is a piece placement: who stands where, nothing more. Turn,
// counters and pockets live with the retrograde position that owns it.
type Board struct {
	// Piece bitboards: [Color][PieceType]
	Pieces [2][6]Bitboard

	// Occupancy bitboards (cached for efficiency)
	ByColorBB [2]Bitboard
	All       Bitboard
}

// PieceAt returns the piece at the given square, or NoPiece if empty.
func (b *Board) PieceAt(sq Square) Piece {
	bb := SquareBB(sq)
	if b.All&bb == 0 {
		return NoPiece
	}

	c := White
	if b.ByColorBB[Black]&bb != 0 {
		c = Black
	}

	for pt := Pawn; pt <= King; pt++ {
		if b.Pieces[c][pt]&bb != 0 {
			return NewPiece(pt, c)
		}
	}
	return NoPiece
}

// IsEmpty returns true if the square is empty.
func (b *Board) IsEmpty(sq Square) bool {
	return b.All&SquareBB(sq) == 0
}

// SetPiece places piece on sq. The square must be empty.
func (b *Board) SetPiece(piece Piece, sq Square) {
	if piece == NoPiece {
		return
	}
	c := piece.Color()
	bb := SquareBB(sq)

	b.Pieces[c][piece.Type()] |= bb
	b.ByColorBB[c] |= bb
	b.All |= bb
}

// RemovePiece empties sq and returns what stood there (NoPiece if nothing).
func (b *Board) RemovePiece(sq Square) Piece {
	piece := b.PieceAt(sq)
	if piece == NoPiece {
		return NoPiece
	}

	c := piece.Color()
	bb := SquareBB(sq)

	b.Pieces[c][piece.Type()] &^= bb
	b.ByColorBB[c] &^= bb
	b.All &^= bb

	return piece
}

// Occupied returns every occupied square.
func (b *Board) Occupied() Bitboard {
	return b.All
}

// ByColor returns the squares holding pieces of c.
func (b *Board) ByColor(c Color) Bitboard {
	return b.ByColorBB[c]
}

// ByType returns the squares holding pieces of type pt, either color.
func (b *Board) ByType(pt PieceType) Bitboard {
	return b.Pieces[White][pt] | b.Pieces[Black][pt]
}

// ByPiece returns the squares holding pieces of type pt and color c.
func (b *Board) ByPiece(c Color, pt PieceType) Bitboard {
	return b.Pieces[c][pt]
}

// Sliders returns the bishops, rooks and queens of c.
func (b *Board) Sliders(c Color) Bitboard {
	return b.Pieces[c][Bishop] | b.Pieces[c][Rook] | b.Pieces[c][Queen]
}

// KingOf returns the king square of c, or NoSquare without a king.
func (b *Board) KingOf(c Color) Square {
	return b.Pieces[c][King].First()
}

// AttackersByColor returns the pieces of color c attacking sq given occupancy.
func (b *Board) AttackersByColor(sq Square, c Color, occupied Bitboard) Bitboard {
	return (pawnAttacks[c.Other()][sq] & b.Pieces[c][Pawn]) |
		(knightAttacks[sq] & b.Pieces[c][Knight]) |
		(kingAttacks[sq] & b.Pieces[c][King]) |
		(BishopAttacks(sq, occupied) & (b.Pieces[c][Bishop] | b.Pieces[c][Queen])) |
		(RookAttacks(sq, occupied) & (b.Pieces[c][Rook] | b.Pieces[c][Queen]))
}

// Mirror returns the board flipped vertically with colors swapped, so the
// result is the same position seen from the other side.
func (b *Board) Mirror() Board {
	var m Board
	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			m.Pieces[c.Other()][pt] = b.Pieces[c][pt].FlipVertical()
		}
		m.ByColorBB[c.Other()] = b.ByColorBB[c].FlipVertical()
	}
	m.All = b.All.FlipVertical()
	return m
}

// Equal reports whether both boards hold the same placement.
func (b *Board) Equal(o *Board) bool {
	return b.Pieces == o.Pieces
}

// String returns a visual representation of the board.
func (b *Board) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		sb.WriteByte(byte('1' + rank))
		sb.WriteString("  ")
		for file := 0; file < 8; file++ {
			piece := b.PieceAt(NewSquare(file, rank))
			if piece == NoPiece {
				sb.WriteString(". ")
			} else {
				sb.WriteString(piece.String() + " ")
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("\n   a b c d e f g h\n")
	return sb.String()
}
