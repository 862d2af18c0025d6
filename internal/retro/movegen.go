package retro

import "github.com/hailam/retroboard/internal/board"

// PseudoLegalUnmoves returns every unmove the retro side's pieces can make,
// without checking whether the earlier position would be legal.
func (p *Position) PseudoLegalUnmoves() *UnmoveList {
	ml := NewUnmoveList()

	// A pending target leaves only the double step that created it.
	if p.epTarget != board.NoSquare {
		origin, dest := p.forcedSquares(p.epTarget)
		ml.Add(NewNormal(origin, dest))
		return ml
	}

	p.genPieces(ml)
	p.genUnpromotions(ml)
	p.genPawns(ml)
	p.genEnPassant(ml)
	return ml
}

// forcedSquares returns where the pawn that double-stepped over ep stands
// and the square it started from.
func (p *Position) forcedSquares(ep board.Square) (origin, dest board.Square) {
	fwd := p.retroTurn.Forward()
	origin, _ = ep.Offset(fwd)
	dest, _ = ep.Offset(-fwd)
	return origin, dest
}

// genPieces generates retreats of every non-pawn piece, each with its
// uncapture variants.
func (p *Position) genPieces(ml *UnmoveList) {
	us := p.retroTurn
	occupied := p.board.Occupied()
	pieces := p.board.ByColor(us).Without(p.board.ByPiece(us, board.Pawn))

	for pieces.Any() {
		from := pieces.PopFirst()
		targets := board.Attacks(from, p.board.PieceAt(from), occupied).Without(occupied)
		for targets.Any() {
			to := targets.PopFirst()
			ml.Add(NewNormal(from, to))
			p.genUncaptures(ml, from, to, false)
		}
	}
}

// genUnpromotions turns pieces on the last rank back into pawns.
func (p *Position) genUnpromotions(ml *UnmoveList) {
	us := p.retroTurn
	if p.pockets.Of(us).Unpromotion == 0 {
		return
	}

	pieces := p.board.ByColor(us).
		Intersect(board.RelativeRankBB(us, 7)).
		Without(p.board.ByPiece(us, board.King))
	for pieces.Any() {
		from := pieces.PopFirst()
		if to, ok := from.Offset(-us.Forward()); ok && p.board.IsEmpty(to) {
			ml.Add(NewUnPromotion(from, to, board.NoPieceType))
		}
		p.genPawnUncaptures(ml, from, true)
	}
}

// genPawns generates diagonal uncaptures and straight retreats.
func (p *Position) genPawns(ml *UnmoveList) {
	us := p.retroTurn
	pawns := p.board.ByPiece(us, board.Pawn)

	// From the second rank a diagonal retreat would land on the first.
	for capturers := pawns.Without(board.RelativeRankBB(us, 1)); capturers.Any(); {
		p.genPawnUncaptures(ml, capturers.PopFirst(), false)
	}

	back := -us.Forward()
	for pawns.Any() {
		from := pawns.PopFirst()
		to, ok := from.Offset(back)
		if !ok || !p.board.IsEmpty(to) || board.Backranks.Contains(to) {
			continue
		}
		ml.Add(NewNormal(from, to))

		if from.RelativeRank(us) == 3 {
			if to2, ok := to.Offset(back); ok && p.board.IsEmpty(to2) {
				ml.Add(NewNormal(from, to2))
			}
		}
	}
}

// genEnPassant generates pawns stepping back from the sixth rank while
// restoring the pawn they took en passant.
func (p *Position) genEnPassant(ml *UnmoveList) {
	us, them := p.retroTurn, p.retroTurn.Other()
	if !p.pockets.Of(them).Has(board.Pawn) {
		return
	}

	occupied := p.board.Occupied()
	pawns := p.board.ByPiece(us, board.Pawn).Intersect(board.RelativeRankBB(us, 5))
	for pawns.Any() {
		from := pawns.PopFirst()
		below, _ := from.Offset(-us.Forward())
		above, _ := from.Offset(us.Forward())
		if !p.board.IsEmpty(below) || !p.board.IsEmpty(above) {
			continue
		}
		targets := board.PawnAttacks(from, them).Without(occupied)
		for targets.Any() {
			ml.Add(NewEnPassant(from, targets.PopFirst()))
		}
	}
}

// genPawnUncaptures generates pawn-shaped retreats from `from`, which
// always uncapture something.
func (p *Position) genPawnUncaptures(ml *UnmoveList, from board.Square, unpromotion bool) {
	them := p.retroTurn.Other()
	targets := board.PawnAttacks(from, them).Without(p.board.Occupied())
	for targets.Any() {
		p.genUncaptures(ml, from, targets.PopFirst(), unpromotion)
	}
}

// genUncaptures adds one unmove per role in the opponent's pocket. Pawns
// are never restored on a back rank.
func (p *Position) genUncaptures(ml *UnmoveList, from, to board.Square, unpromotion bool) {
	onBackrank := board.Backranks.Contains(from)
	for role := range p.pockets.Of(p.retroTurn.Other()).Roles() {
		if role == board.Pawn && onBackrank {
			continue
		}
		if unpromotion {
			ml.Add(NewUnPromotion(from, to, role))
		} else {
			ml.Add(NewUncapture(from, to, role))
		}
	}
}
