package retro

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	"github.com/hailam/retroboard/internal/board"
)

// ErrInvalidPosition is wrapped when a placement, side and pockets do not
// form a usable retrograde position.
var ErrInvalidPosition = errors.New("invalid position")

// Position is the state the retro player unmoves from. It is mutated in
// place by Apply; callers exploring several branches Clone it first.
type Position struct {
	board     board.Board
	retroTurn board.Color
	pockets   Pockets
	halfMoves uint16       // plies since the last uncapture or unpromotion
	epTarget  board.Square // NoSquare unless the last unmove was en passant
}

// NewPosition builds a position from a placement and the forward side to
// move; the retro turn belongs to the other side. ep is NoSquare or the
// square a pawn of the retro side just skipped with a double step.
func NewPosition(b board.Board, sideToMove board.Color, pockets Pockets, ep board.Square) (*Position, error) {
	if sideToMove != board.White && sideToMove != board.Black {
		return nil, fmt.Errorf("%w: side to move %v", ErrInvalidPosition, sideToMove)
	}
	for c := board.White; c <= board.Black; c++ {
		if n := b.ByPiece(c, board.King).Count(); n != 1 {
			return nil, fmt.Errorf("%w: %v has %d kings", ErrInvalidPosition, c, n)
		}
	}
	if b.ByType(board.Pawn).Intersect(board.Backranks).Any() {
		return nil, fmt.Errorf("%w: pawn on a back rank", ErrInvalidPosition)
	}

	p := &Position{
		board:     b,
		retroTurn: sideToMove.Other(),
		pockets:   pockets,
		epTarget:  board.NoSquare,
	}
	if ep != board.NoSquare {
		if err := p.checkEnPassant(ep); err != nil {
			return nil, err
		}
		p.epTarget = ep
	}
	return p, nil
}

// checkEnPassant verifies that a retro pawn could just have double-stepped over ep.
func (p *Position) checkEnPassant(ep board.Square) error {
	if !ep.IsValid() || ep.RelativeRank(p.retroTurn) != 2 {
		return fmt.Errorf("%w: en passant square %v on wrong rank", ErrInvalidPosition, ep)
	}
	origin, dest := p.forcedSquares(ep)
	if p.board.PieceAt(origin) != board.NewPiece(board.Pawn, p.retroTurn) {
		return fmt.Errorf("%w: no pawn behind en passant square %v", ErrInvalidPosition, ep)
	}
	if !p.board.IsEmpty(ep) || !p.board.IsEmpty(dest) {
		return fmt.Errorf("%w: en passant path through %v is blocked", ErrInvalidPosition, ep)
	}
	return nil
}

// Parse builds a position from a FEN and two pocket descriptors. Only the
// placement, side to move and en passant fields are read; castling and
// counters are ignored since unmoves start a fresh count.
func Parse(fen, whitePocket, blackPocket string) (*Position, error) {
	fields := strings.Fields(fen)
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: empty FEN", ErrInvalidPosition)
	}

	b, err := board.ParsePlacement(fields[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPosition, err)
	}

	side := board.White
	if len(fields) > 1 {
		switch fields[1] {
		case "w":
		case "b":
			side = board.Black
		default:
			return nil, fmt.Errorf("%w: side to move %q", ErrInvalidPosition, fields[1])
		}
	}

	ep := board.NoSquare
	if len(fields) > 3 && fields[3] != "-" {
		if ep, err = board.ParseSquare(fields[3]); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidPosition, err)
		}
	}

	pockets, err := ParsePockets(whitePocket, blackPocket)
	if err != nil {
		return nil, err
	}

	return NewPosition(b, side, pockets, ep)
}

// MustParse is like Parse but panics on error. Intended for tests and constants.
func MustParse(fen, whitePocket, blackPocket string) *Position {
	p, err := Parse(fen, whitePocket, blackPocket)
	if err != nil {
		panic(err)
	}
	return p
}

// Apply plays m backwards. m must come from this position's generator;
// an empty origin or an exhausted pocket panics.
func (p *Position) Apply(m Unmove) {
	moved := p.board.RemovePiece(m.From)
	if moved == board.NoPiece {
		panic(fmt.Sprintf("retro: unmove %v from empty square", m))
	}
	p.halfMoves++
	p.epTarget = board.NoSquare

	them := p.retroTurn.Other()
	if role, ok := m.UncaptureRole(); ok {
		p.halfMoves = 0
		sq, _ := m.UncaptureSquare()
		if !p.board.IsEmpty(sq) {
			panic(fmt.Sprintf("retro: unmove %v uncaptures onto occupied %v", m, sq))
		}
		p.board.SetPiece(board.NewPiece(role, them), sq)
		p.pockets.Of(them).Decrement(role)
	}

	if m.IsUnpromotion() {
		p.halfMoves = 0
		p.board.SetPiece(board.NewPiece(board.Pawn, p.retroTurn), m.To)
		p.pockets.Of(p.retroTurn).DecrementUnpromotion()
	} else {
		p.board.SetPiece(moved, m.To)
	}

	if m.IsEnPassant() {
		p.epTarget = m.From
	}

	p.retroTurn = them
}

// Clone returns an independent copy.
func (p *Position) Clone() *Position {
	c := *p
	return &c
}

// Mirror returns the position flipped vertically with colors and pockets
// swapped. Unmoves of the result are the mirrored unmoves of p.
func (p *Position) Mirror() *Position {
	return &Position{
		board:     p.board.Mirror(),
		retroTurn: p.retroTurn.Other(),
		pockets:   p.pockets.Swap(),
		halfMoves: p.halfMoves,
		epTarget:  p.epTarget.Mirror(),
	}
}

// Board returns a copy of the placement.
func (p *Position) Board() board.Board { return p.board }

// RetroTurn returns the color about to unmove.
func (p *Position) RetroTurn() board.Color { return p.retroTurn }

// Pockets returns a copy of both pockets.
func (p *Position) Pockets() Pockets { return p.pockets }

// HalfMoves returns the plies since the last uncapture or unpromotion.
func (p *Position) HalfMoves() int { return int(p.halfMoves) }

// EnPassant returns the pending en passant target, or NoSquare.
func (p *Position) EnPassant() board.Square { return p.epTarget }

// Occupied returns every occupied square.
func (p *Position) Occupied() board.Bitboard { return p.board.Occupied() }

// ByColor returns the squares of c's pieces.
func (p *Position) ByColor(c board.Color) board.Bitboard { return p.board.ByColor(c) }

// ByPiece returns the squares of c's pieces of type pt.
func (p *Position) ByPiece(c board.Color, pt board.PieceType) board.Bitboard {
	return p.board.ByPiece(c, pt)
}

// KingOf returns the king square of c.
func (p *Position) KingOf(c board.Color) board.Square { return p.board.KingOf(c) }

// PieceAt returns the piece on sq, or NoPiece.
func (p *Position) PieceAt(sq board.Square) board.Piece { return p.board.PieceAt(sq) }

// Equal compares placement, retro turn, pockets and en passant target.
// The half-move counter is ignored.
func (p *Position) Equal(o *Position) bool {
	return p.board.Equal(&o.board) &&
		p.retroTurn == o.retroTurn &&
		p.pockets == o.pockets &&
		p.epTarget == o.epTarget
}

// Hash returns a Zobrist key over the same fields Equal compares.
func (p *Position) Hash() uint64 {
	h := p.board.Hash()
	if p.retroTurn == board.Black {
		h ^= board.ZobristRetroTurn()
	}
	for c := board.White; c <= board.Black; c++ {
		for slot, n := range p.pockets.Of(c).slots() {
			h ^= board.ZobristPocket(c, slot, n)
		}
	}
	if p.epTarget != board.NoSquare {
		h ^= board.ZobristEnPassant(p.epTarget.File())
	}
	return h
}

// keySize is the length of Key: 12 piece bitboards, turn, 12 pocket
// counters and the en passant square.
const keySize = 12*8 + 1 + 2*board.PocketSlots + 1

// Key returns an exact binary encoding of the fields Equal compares, so
// that equal positions and only equal positions share a key.
func (p *Position) Key() []byte {
	key := make([]byte, 0, keySize)
	for c := board.White; c <= board.Black; c++ {
		for pt := board.Pawn; pt <= board.King; pt++ {
			key = binary.LittleEndian.AppendUint64(key, uint64(p.board.ByPiece(c, pt)))
		}
	}
	key = append(key, byte(p.retroTurn))
	for c := board.White; c <= board.Black; c++ {
		slots := p.pockets.Of(c).slots()
		key = append(key, slots[:]...)
	}
	return append(key, byte(p.epTarget))
}

// FEN returns the forward FEN of the position: the side to move is the
// opponent of the retro turn and castling rights are never claimed.
func (p *Position) FEN() string {
	side := "w"
	if p.retroTurn == board.White {
		side = "b"
	}
	return fmt.Sprintf("%s %s - %s %d 1", p.board.Placement(), side, p.epTarget, p.halfMoves)
}

func (p *Position) String() string {
	var sb strings.Builder
	sb.WriteString(p.board.String())
	fmt.Fprintf(&sb, "retro turn: %v\n", p.retroTurn)
	fmt.Fprintf(&sb, "pockets: %v\n", p.pockets)
	fmt.Fprintf(&sb, "half moves: %d\n", p.halfMoves)
	if p.epTarget != board.NoSquare {
		fmt.Fprintf(&sb, "en passant: %v\n", p.epTarget)
	}
	return sb.String()
}
