package board

// Ray directions, positive ones first.
const (
	north = iota
	northEast
	east
	northWest
	south
	southWest
	west
	southEast
	numDirections
)

var (
	knightAttacks [64]Bitboard
	kingAttacks   [64]Bitboard
	pawnAttacks   [2][64]Bitboard // [Color][Square]

	rays [64][numDirections]Bitboard // excludes the origin square

	betweenBB [64][64]Bitboard // Squares strictly between two squares
	lineBB    [64][64]Bitboard // Full line through two squares (including endpoints)
)

var (
	rookDirections   = [4]int{north, east, south, west}
	bishopDirections = [4]int{northEast, northWest, southWest, southEast}
)

func init() {
	initStepperAttacks()
	initRays()
	initLines()
}

func initStepperAttacks() {
	for sq := A1; sq <= H8; sq++ {
		bb := SquareBB(sq)

		knightAttacks[sq] = (bb<<17)&notFileA | (bb<<15)&notFileH |
			(bb>>17)&notFileH | (bb>>15)&notFileA |
			(bb<<10)&notFileAB | (bb<<6)&notFileGH |
			(bb>>10)&notFileGH | (bb>>6)&notFileAB

		kingAttacks[sq] = bb<<8 | bb>>8 |
			(bb<<1)&notFileA | (bb>>1)&notFileH |
			(bb<<9)&notFileA | (bb<<7)&notFileH |
			(bb>>7)&notFileA | (bb>>9)&notFileH

		pawnAttacks[White][sq] = (bb<<9)&notFileA | (bb<<7)&notFileH
		pawnAttacks[Black][sq] = (bb>>7)&notFileA | (bb>>9)&notFileH
	}
}

func initRays() {
	df := [numDirections]int{0, 1, 1, -1, 0, -1, -1, 1}
	dr := [numDirections]int{1, 1, 0, 1, -1, -1, 0, -1}
	for sq := A1; sq <= H8; sq++ {
		for dir := 0; dir < numDirections; dir++ {
			var ray Bitboard
			f, r := sq.File()+df[dir], sq.Rank()+dr[dir]
			for f >= 0 && f <= 7 && r >= 0 && r <= 7 {
				ray |= SquareBB(NewSquare(f, r))
				f += df[dir]
				r += dr[dir]
			}
			rays[sq][dir] = ray
		}
	}
}

// initLines fills betweenBB and lineBB from the ray table: two squares are
// aligned when one lies on a ray of the other.
func initLines() {
	for s1 := A1; s1 <= H8; s1++ {
		for dir := 0; dir < numDirections; dir++ {
			opposite := (dir + 4) % numDirections
			ray := rays[s1][dir]
			for walk := ray; walk != 0; {
				s2 := walk.PopFirst()
				betweenBB[s1][s2] = ray & rays[s2][opposite]
				lineBB[s1][s2] = ray | rays[s1][opposite] | SquareBB(s1)
			}
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func slide(sq Square, occupied Bitboard, dirs [4]int) Bitboard {
	var attacks Bitboard
	for _, dir := range dirs {
		ray := rays[sq][dir]
		blocked := ray & occupied
		if blocked == 0 {
			attacks |= ray
			continue
		}
		// Directions below south increase the square index.
		var stop Square
		if dir < south {
			stop = blocked.First()
		} else {
			stop = blocked.Last()
		}
		attacks |= ray &^ rays[stop][dir]
	}
	return attacks
}

// KnightAttacks returns the knight attack bitboard for a square.
func KnightAttacks(sq Square) Bitboard {
	return knightAttacks[sq]
}

// KingAttacks returns the king attack bitboard for a square.
func KingAttacks(sq Square) Bitboard {
	return kingAttacks[sq]
}

// PawnAttacks returns the squares a pawn of color c on sq attacks.
func PawnAttacks(sq Square, c Color) Bitboard {
	return pawnAttacks[c][sq]
}

// BishopAttacks returns the bishop attack bitboard for a square with given occupancy.
func BishopAttacks(sq Square, occupied Bitboard) Bitboard {
	return slide(sq, occupied, bishopDirections)
}

// RookAttacks returns the rook attack bitboard for a square with given occupancy.
func RookAttacks(sq Square, occupied Bitboard) Bitboard {
	return slide(sq, occupied, rookDirections)
}

// QueenAttacks returns the queen attack bitboard for a square with given occupancy.
func QueenAttacks(sq Square, occupied Bitboard) Bitboard {
	return BishopAttacks(sq, occupied) | RookAttacks(sq, occupied)
}

// Attacks returns the squares attacked by piece standing on sq.
func Attacks(sq Square, piece Piece, occupied Bitboard) Bitboard {
	switch piece.Type() {
	case Pawn:
		return pawnAttacks[piece.Color()][sq]
	case Knight:
		return knightAttacks[sq]
	case Bishop:
		return BishopAttacks(sq, occupied)
	case Rook:
		return RookAttacks(sq, occupied)
	case Queen:
		return QueenAttacks(sq, occupied)
	case King:
		return kingAttacks[sq]
	default:
		return Empty
	}
}

// Between returns the bitboard of squares strictly between two squares.
// Returns empty if squares are not aligned (not on same rank, file, or diagonal).
func Between(sq1, sq2 Square) Bitboard {
	return betweenBB[sq1][sq2]
}

// Line returns the bitboard of the full line through two squares.
// Returns empty if squares are not aligned.
func Line(sq1, sq2 Square) Bitboard {
	return lineBB[sq1][sq2]
}

// Aligned returns true if three squares are on the same line.
func Aligned(sq1, sq2, sq3 Square) bool {
	return Line(sq1, sq2).Contains(sq3)
}
