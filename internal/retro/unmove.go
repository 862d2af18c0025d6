package retro

import (
	"errors"
	"fmt"

	"github.com/hailam/retroboard/internal/board"
)

// ErrInvalidUnmove is wrapped by every retro UCI parsing failure.
var ErrInvalidUnmove = errors.New("invalid unmove")

// Kind distinguishes the four shapes an unmove can take.
type Kind uint8

const (
	// Normal moves a piece back without restoring anything.
	Normal Kind = iota
	// Uncapture moves a piece back and restores an opponent piece on its origin.
	Uncapture
	// UnPromotion turns the piece back into a pawn, optionally with an uncapture.
	UnPromotion
	// EnPassant moves a pawn back diagonally and restores the pawn it took en passant.
	EnPassant
)

func (k Kind) String() string {
	switch k {
	case Normal:
		return "Normal"
	case Uncapture:
		return "Uncapture"
	case UnPromotion:
		return "UnPromotion"
	case EnPassant:
		return "EnPassant"
	default:
		return "Unknown"
	}
}

// Unmove takes the piece on From back to To. Role is the uncaptured piece
// type for Uncapture, the optional one for UnPromotion (NoPieceType when
// absent), and NoPieceType otherwise.
//
// Unmoves are plain comparable values; construction does not validate them.
type Unmove struct {
	From board.Square
	To   board.Square
	Kind Kind
	Role board.PieceType
}

// NewNormal returns a plain retreat from -> to.
func NewNormal(from, to board.Square) Unmove {
	return Unmove{From: from, To: to, Kind: Normal, Role: board.NoPieceType}
}

// NewUncapture returns a retreat leaving an opponent piece of type role on from.
func NewUncapture(from, to board.Square, role board.PieceType) Unmove {
	return Unmove{From: from, To: to, Kind: Uncapture, Role: role}
}

// NewUnPromotion returns an unpromotion; role is NoPieceType when nothing is uncaptured.
func NewUnPromotion(from, to board.Square, role board.PieceType) Unmove {
	return Unmove{From: from, To: to, Kind: UnPromotion, Role: role}
}

// NewEnPassant returns an en passant uncapture.
func NewEnPassant(from, to board.Square) Unmove {
	return Unmove{From: from, To: to, Kind: EnPassant, Role: board.NoPieceType}
}

// IsUncapture reports whether the kind is Uncapture.
func (m Unmove) IsUncapture() bool { return m.Kind == Uncapture }

// IsUnpromotion reports whether the kind is UnPromotion, with or without uncapture.
func (m Unmove) IsUnpromotion() bool { return m.Kind == UnPromotion }

// IsEnPassant reports whether the kind is EnPassant.
func (m Unmove) IsEnPassant() bool { return m.Kind == EnPassant }

// UncaptureRole returns the type of the opponent piece the unmove restores.
func (m Unmove) UncaptureRole() (board.PieceType, bool) {
	switch m.Kind {
	case Uncapture:
		return m.Role, true
	case UnPromotion:
		return m.Role, m.Role != board.NoPieceType
	case EnPassant:
		return board.Pawn, true
	default:
		return board.NoPieceType, false
	}
}

// UncaptureSquare returns where the restored piece reappears: the origin,
// or for en passant the square on the origin's file and destination's rank.
func (m Unmove) UncaptureSquare() (board.Square, bool) {
	if _, ok := m.UncaptureRole(); !ok {
		return board.NoSquare, false
	}
	if m.Kind == EnPassant {
		return board.NewSquare(m.From.File(), m.To.Rank()), true
	}
	return m.From, true
}

// refillsOrigin reports whether the origin is occupied again right after
// the unmove, by the restored piece.
func (m Unmove) refillsOrigin() bool {
	_, ok := m.UncaptureRole()
	return ok && m.Kind != EnPassant
}

// Mirror reflects both squares vertically, keeping the kind.
func (m Unmove) Mirror() Unmove {
	m.From = m.From.Mirror()
	m.To = m.To.Mirror()
	return m
}

// String returns retro UCI: an optional U or E marker, an optional
// uncaptured role letter, then origin and destination (e.g. "UNe8e7").
func (m Unmove) String() string {
	var prefix string
	switch m.Kind {
	case Uncapture:
		prefix = string(m.Role.Char())
	case UnPromotion:
		prefix = "U"
		if m.Role != board.NoPieceType {
			prefix += string(m.Role.Char())
		}
	case EnPassant:
		prefix = "E"
	}
	return prefix + m.From.String() + m.To.String()
}

// ParseUnmove reads retro UCI. The grammar is [UE]?[PNBRQ]?<square><square>;
// a role letter after E is rejected since en passant always restores a pawn.
// A syntactically valid unmove is not necessarily legal anywhere.
func ParseUnmove(s string) (Unmove, error) {
	rest := s
	marker := byte(0)
	if len(rest) > 0 && (rest[0] == 'U' || rest[0] == 'E') {
		marker = rest[0]
		rest = rest[1:]
	}

	role := board.NoPieceType
	if len(rest) > 0 {
		switch rest[0] {
		case 'P', 'N', 'B', 'R', 'Q':
			role = board.PieceTypeFromChar(rest[0])
			rest = rest[1:]
		}
	}

	if len(rest) != 4 {
		return Unmove{}, fmt.Errorf("%w: %q", ErrInvalidUnmove, s)
	}
	from, err := board.ParseSquare(rest[:2])
	if err != nil {
		return Unmove{}, fmt.Errorf("%w: %q: %v", ErrInvalidUnmove, s, err)
	}
	to, err := board.ParseSquare(rest[2:])
	if err != nil {
		return Unmove{}, fmt.Errorf("%w: %q: %v", ErrInvalidUnmove, s, err)
	}

	switch {
	case marker == 'U':
		return NewUnPromotion(from, to, role), nil
	case marker == 'E' && role != board.NoPieceType:
		return Unmove{}, fmt.Errorf("%w: %q: en passant takes no role", ErrInvalidUnmove, s)
	case marker == 'E':
		return NewEnPassant(from, to), nil
	case role != board.NoPieceType:
		return NewUncapture(from, to, role), nil
	default:
		return NewNormal(from, to), nil
	}
}

// MustParseUnmove is like ParseUnmove but panics on malformed input.
func MustParseUnmove(s string) Unmove {
	m, err := ParseUnmove(s)
	if err != nil {
		panic(err)
	}
	return m
}

// UnmoveList is a growable list of unmoves, in generation order.
type UnmoveList struct {
	moves []Unmove
}

// NewUnmoveList creates an empty list with room for typical positions.
func NewUnmoveList() *UnmoveList {
	return &UnmoveList{moves: make([]Unmove, 0, 64)}
}

// Add appends an unmove.
func (ml *UnmoveList) Add(m Unmove) {
	ml.moves = append(ml.moves, m)
}

// Len returns the number of unmoves in the list.
func (ml *UnmoveList) Len() int {
	return len(ml.moves)
}

// Get returns the unmove at index i.
func (ml *UnmoveList) Get(i int) Unmove {
	return ml.moves[i]
}

// Slice returns the unmoves as a slice.
func (ml *UnmoveList) Slice() []Unmove {
	return ml.moves
}

// Strings returns the retro UCI of each unmove.
func (ml *UnmoveList) Strings() []string {
	out := make([]string, len(ml.moves))
	for i, m := range ml.moves {
		out[i] = m.String()
	}
	return out
}
