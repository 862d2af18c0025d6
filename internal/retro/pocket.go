// Package retro implements retrograde move generation: the position a
// retro player unmoves from, the unmoves themselves and the check-aware
// filter that keeps only the ones a legal game could have played.
package retro

import (
	"errors"
	"fmt"
	"iter"
	"strconv"
	"strings"

	"github.com/hailam/retroboard/internal/board"
)

// ErrInvalidPocket is wrapped by every pocket parsing failure.
var ErrInvalidPocket = errors.New("invalid pocket")

// uncapturable roles, in the order pockets enumerate them.
var pocketRoles = [5]board.PieceType{board.Pawn, board.Knight, board.Bishop, board.Rook, board.Queen}

// Pocket counts the pieces one side may still uncapture, plus the number
// of its pieces that may still unpromote into a pawn.
type Pocket struct {
	Pawn        uint8
	Knight      uint8
	Bishop      uint8
	Rook        uint8
	Queen       uint8
	Unpromotion uint8
}

// ParsePocket reads a pocket such as "PPNQ2": one letter per piece (either
// case) and at most one digit for the unpromotion allowance.
func ParsePocket(s string) (Pocket, error) {
	var p Pocket
	seenDigit := false

	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= '0' && c <= '9' {
			if seenDigit {
				return Pocket{}, fmt.Errorf("%w: more than one unpromotion digit in %q", ErrInvalidPocket, s)
			}
			seenDigit = true
			p.Unpromotion = c - '0'
			continue
		}

		pt := board.PieceTypeFromChar(c)
		if pt == board.NoPieceType || pt == board.King {
			return Pocket{}, fmt.Errorf("%w: unexpected %q in %q", ErrInvalidPocket, c, s)
		}
		counter := p.counter(pt)
		if *counter == 255 {
			return Pocket{}, fmt.Errorf("%w: too many %c in %q", ErrInvalidPocket, pt.Char(), s)
		}
		*counter++
	}

	return p, nil
}

func (p *Pocket) counter(pt board.PieceType) *uint8 {
	switch pt {
	case board.Pawn:
		return &p.Pawn
	case board.Knight:
		return &p.Knight
	case board.Bishop:
		return &p.Bishop
	case board.Rook:
		return &p.Rook
	case board.Queen:
		return &p.Queen
	}
	return nil
}

// Count returns how many pieces of type pt the pocket holds. Kings are
// never pocketed.
func (p Pocket) Count(pt board.PieceType) uint8 {
	if c := p.counter(pt); c != nil {
		return *c
	}
	return 0
}

// Has reports whether at least one piece of type pt can be uncaptured.
func (p Pocket) Has(pt board.PieceType) bool {
	return p.Count(pt) > 0
}

// Decrement removes one piece of type pt. Decrementing the king or an
// empty counter is a caller bug and panics.
func (p *Pocket) Decrement(pt board.PieceType) {
	if pt == board.King {
		panic("retro: cannot uncapture a king")
	}
	c := p.counter(pt)
	if c == nil {
		panic(fmt.Sprintf("retro: no pocket counter for %v", pt))
	}
	if *c == 0 {
		panic(fmt.Sprintf("retro: pocket has no %v left to uncapture", pt))
	}
	*c--
}

// DecrementUnpromotion uses up one unpromotion. It panics when none is left.
func (p *Pocket) DecrementUnpromotion() {
	if p.Unpromotion == 0 {
		panic("retro: no unpromotion left")
	}
	p.Unpromotion--
}

// Roles yields each role present in the pocket once, pawn first and queen
// last, however many copies are held.
func (p Pocket) Roles() iter.Seq[board.PieceType] {
	return func(yield func(board.PieceType) bool) {
		for _, pt := range pocketRoles {
			if p.Has(pt) && !yield(pt) {
				return
			}
		}
	}
}

// String returns the canonical form accepted by ParsePocket, e.g. "PPNB2".
func (p Pocket) String() string {
	var sb strings.Builder
	for _, pt := range pocketRoles {
		for i := uint8(0); i < p.Count(pt); i++ {
			sb.WriteByte(pt.Char())
		}
	}
	if p.Unpromotion > 0 {
		sb.WriteString(strconv.Itoa(int(p.Unpromotion)))
	}
	return sb.String()
}

// slots returns the counters in hashing order: pawn..queen, then unpromotion.
func (p Pocket) slots() [board.PocketSlots]uint8 {
	return [board.PocketSlots]uint8{p.Pawn, p.Knight, p.Bishop, p.Rook, p.Queen, p.Unpromotion}
}

// Pockets holds one Pocket per color.
type Pockets struct {
	White Pocket
	Black Pocket
}

// ParsePockets parses the white and black pocket descriptors.
func ParsePockets(white, black string) (Pockets, error) {
	w, err := ParsePocket(white)
	if err != nil {
		return Pockets{}, fmt.Errorf("white pocket: %w", err)
	}
	b, err := ParsePocket(black)
	if err != nil {
		return Pockets{}, fmt.Errorf("black pocket: %w", err)
	}
	return Pockets{White: w, Black: b}, nil
}

// Of returns the pocket of color c for reading or mutation.
func (ps *Pockets) Of(c board.Color) *Pocket {
	if c == board.White {
		return &ps.White
	}
	return &ps.Black
}

// Swap returns the pockets with colors exchanged.
func (ps Pockets) Swap() Pockets {
	return Pockets{White: ps.Black, Black: ps.White}
}

func (ps Pockets) String() string {
	return fmt.Sprintf("white: %q black: %q", ps.White.String(), ps.Black.String())
}
