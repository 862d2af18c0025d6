package retro

import "github.com/hailam/retroboard/internal/board"

// LegalUnmoves returns the pseudo-legal unmoves after which the side that
// did not unmove is in a check the unmoved piece could actually have given.
//
// The defending king belongs to the opponent of the retro turn: in the
// position being unmoved from it may be in check, and every check must be
// explained by the single forward move being taken back.
func (p *Position) LegalUnmoves() *UnmoveList {
	us, them := p.retroTurn, p.retroTurn.Other()
	king := p.board.KingOf(them)
	checkers := p.board.AttackersByColor(king, us, p.board.Occupied())
	pseudo := p.PseudoLegalUnmoves()
	legal := NewUnmoveList()

	switch n := checkers.Count(); {
	case n > 2:
		return legal
	case n == 2:
		for _, pair := range orderCheckers(&p.board, king, checkers) {
			for _, m := range pseudo.Slice() {
				if p.interposes(m, king, pair) && !p.givesCheck(m, king) {
					legal.Add(m)
				}
			}
		}
		return legal
	}

	blockers := p.blockers(king)
	for _, m := range pseudo.Slice() {
		if blockers.Contains(m.From) && !keepsShield(m, king) {
			continue
		}
		if p.givesCheck(m, king) {
			continue
		}
		if checkers.Any() && !p.resolvesCheck(m, king, checkers.First()) {
			continue
		}
		legal.Add(m)
	}
	return legal
}

// blockers returns the retro side's pieces that alone shield king from one
// of their own sliders.
func (p *Position) blockers(king board.Square) board.Bitboard {
	us := p.retroTurn
	occupied := p.board.Occupied()

	var blockers board.Bitboard
	for snipers := board.QueenAttacks(king, board.Empty).Intersect(p.board.Sliders(us)); snipers.Any(); {
		sniper := snipers.PopFirst()
		if !board.Attacks(sniper, p.board.PieceAt(sniper), board.Empty).Contains(king) {
			continue
		}
		between := board.Between(king, sniper).Intersect(occupied)
		if between.Count() == 1 && between.Intersect(p.board.ByColor(us)).Any() {
			blockers = blockers.Union(between)
		}
	}
	return blockers
}

// keepsShield reports whether the line through king and m.From stays closed
// after m. Uncaptures refill the origin; en passant may put the restored
// pawn on the line instead.
func keepsShield(m Unmove, king board.Square) bool {
	if m.refillsOrigin() || board.Aligned(king, m.From, m.To) {
		return true
	}
	if m.IsEnPassant() {
		sq, _ := m.UncaptureSquare()
		return board.Aligned(king, m.From, sq)
	}
	return false
}

// givesCheck reports whether the piece landing on m.To would attack king.
// An unpromoted piece attacks as a pawn; the origin counts as empty unless
// the unmove restores a piece there.
func (p *Position) givesCheck(m Unmove, king board.Square) bool {
	role := p.board.PieceAt(m.From).Type()
	if m.IsUnpromotion() {
		role = board.Pawn
	}
	occupied := p.board.Occupied()
	if !m.refillsOrigin() {
		occupied = occupied.Without(board.SquareBB(m.From))
	}
	return board.Attacks(m.To, board.NewPiece(role, p.retroTurn), occupied).Contains(king)
}

// resolvesCheck reports whether m takes back the single check given by the
// piece on checker: either that piece retreats, or a slider's line gets
// blocked by the retreating piece or by a pawn restored en passant.
func (p *Position) resolvesCheck(m Unmove, king, checker board.Square) bool {
	if m.From == checker {
		return true
	}
	if !p.board.PieceAt(checker).Type().IsSlider() {
		return false
	}
	between := board.Between(checker, king)
	if between.Contains(m.To) {
		return true
	}
	if m.IsEnPassant() {
		sq, _ := m.UncaptureSquare()
		return between.Contains(sq)
	}
	return false
}

// checkerPair names the two pieces of a double check: the closer one gave
// check by moving, uncovering the further one.
type checkerPair struct {
	closer  board.Square
	further board.Square
}

// orderCheckers decides which of two checkers moved last. The one nearer
// the king moved; at equal distance a non-slider is taken as nearer, and
// two equidistant sliders yield both orders, lower square first. Two
// non-sliders cannot both have checked after one move, so nil is returned.
func orderCheckers(b *board.Board, king board.Square, checkers board.Bitboard) []checkerPair {
	first := checkers.PopFirst()
	second := checkers.PopFirst()
	firstSlides := b.PieceAt(first).Type().IsSlider()
	secondSlides := b.PieceAt(second).Type().IsSlider()
	if !firstSlides && !secondSlides {
		return nil
	}

	d1, d2 := first.Distance(king), second.Distance(king)
	switch {
	case d1 < d2:
		return []checkerPair{{first, second}}
	case d2 < d1:
		return []checkerPair{{second, first}}
	case !firstSlides:
		return []checkerPair{{first, second}}
	case !secondSlides:
		return []checkerPair{{second, first}}
	default:
		return []checkerPair{{first, second}, {second, first}}
	}
}

// interposes reports whether m moves the closer checker back onto the line
// between king and the further checker, which is the only way one forward
// move gives a double check.
func (p *Position) interposes(m Unmove, king board.Square, pair checkerPair) bool {
	if m.From != pair.closer {
		return false
	}
	line := board.Between(king, pair.further)

	switch m.Kind {
	case Normal:
		// A straight pawn step cannot uncover a line, except the forced
		// double step, whose starting square may.
		if p.board.PieceAt(m.From).Type() == board.Pawn && p.epTarget == board.NoSquare {
			return false
		}
		return line.Contains(m.To)
	case EnPassant:
		sq, _ := m.UncaptureSquare()
		return line.Contains(m.To) || line.Contains(sq)
	default:
		return line.Contains(m.To)
	}
}
