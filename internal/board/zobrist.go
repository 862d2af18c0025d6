package board

// PocketSlots is the number of pocket counters per color: one per
// uncapturable role (pawn..queen) plus the unpromotion allowance.
const PocketSlots = 6

// pocketKeyCounts bounds the per-counter keys; larger counts share the last key.
const pocketKeyCounts = 16

// Zobrist hash keys for retrograde position hashing.
// Uses PRNG with fixed seed for reproducibility.
var (
	zobristPiece     [2][6][64]uint64                        // [Color][PieceType][Square]
	zobristPocket    [2][PocketSlots][pocketKeyCounts]uint64 // [Color][Slot][Count]
	zobristEnPassant [8]uint64                               // One per file
	zobristRetroTurn uint64                                  // XOR when black unmoves
)

func init() {
	initZobrist()
}

// Simple PRNG for reproducible Zobrist keys
type prng struct {
	state uint64
}

func newPRNG(seed uint64) *prng {
	return &prng{state: seed}
}

// xorshift64* algorithm
func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

func initZobrist() {
	rng := newPRNG(0x98F107A2BEEF1234) // Fixed seed

	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			for sq := A1; sq <= H8; sq++ {
				zobristPiece[c][pt][sq] = rng.next()
			}
		}
	}

	// A zero counter hashes to zero so empty pockets leave the key untouched.
	for c := White; c <= Black; c++ {
		for slot := 0; slot < PocketSlots; slot++ {
			for n := 1; n < pocketKeyCounts; n++ {
				zobristPocket[c][slot][n] = rng.next()
			}
		}
	}

	for file := 0; file < 8; file++ {
		zobristEnPassant[file] = rng.next()
	}

	zobristRetroTurn = rng.next()
}

// ZobristPiece returns the Zobrist key for a piece on a square.
func ZobristPiece(c Color, pt PieceType, sq Square) uint64 {
	return zobristPiece[c][pt][sq]
}

// ZobristPocket returns the key of c's pocket counter slot holding count.
func ZobristPocket(c Color, slot int, count uint8) uint64 {
	if int(count) >= pocketKeyCounts {
		count = pocketKeyCounts - 1
	}
	return zobristPocket[c][slot][count]
}

// ZobristEnPassant returns the Zobrist key for an en passant file.
func ZobristEnPassant(file int) uint64 {
	return zobristEnPassant[file]
}

// ZobristRetroTurn returns the key mixed in when black is to unmove.
func ZobristRetroTurn() uint64 {
	return zobristRetroTurn
}

// Hash returns the Zobrist key of the placement alone.
func (b *Board) Hash() uint64 {
	var h uint64
	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			for bb := b.Pieces[c][pt]; bb != 0; {
				h ^= ZobristPiece(c, pt, bb.PopFirst())
			}
		}
	}
	return h
}
