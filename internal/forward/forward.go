// Package forward relates unmoves to ordinary chess. It renders the forward
// move that an unmove takes back and checks it against an independent
// forward move generator.
package forward

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dylhunn/dragontoothmg"

	"github.com/hailam/retroboard/internal/retro"
)

// ErrNotLegalForward is returned by Check when the forward move is not
// legal in the position the unmove leads to.
var ErrNotLegalForward = errors.New("forward move not legal")

// FEN returns the forward FEN of pos.
func FEN(pos *retro.Position) string {
	return pos.FEN()
}

// Move returns the forward UCI move undone by m in pos: To back to From,
// with the promotion letter of the piece on From for unpromotions.
func Move(pos *retro.Position, m retro.Unmove) string {
	uci := m.To.String() + m.From.String()
	if m.IsUnpromotion() {
		promoted := pos.PieceAt(m.From).Type()
		uci += strings.ToLower(string(promoted.Char()))
	}
	return uci
}

// Check applies m to a clone of pos and verifies that the forward move
// leading back to pos is legal there.
func Check(pos *retro.Position, m retro.Unmove) error {
	uci := Move(pos, m)
	prev := pos.Clone()
	prev.Apply(m)

	moves, err := legalMoves(FEN(prev))
	if err != nil {
		return err
	}
	for i := range moves {
		if moves[i].String() == uci {
			return nil
		}
	}
	return fmt.Errorf("%w: %s after %v in %s", ErrNotLegalForward, uci, m, FEN(prev))
}

// legalMoves generates forward moves for fen, turning parser panics into
// errors.
func legalMoves(fen string) (moves []dragontoothmg.Move, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("forward: parse %q: %v", fen, r)
		}
	}()
	b := dragontoothmg.ParseFen(fen)
	return b.GenerateLegalMoves(), nil
}

// CheckAll runs Check on every legal unmove of pos and returns the first
// failure.
func CheckAll(pos *retro.Position) error {
	for _, m := range pos.LegalUnmoves().Slice() {
		if err := Check(pos, m); err != nil {
			return err
		}
	}
	return nil
}
