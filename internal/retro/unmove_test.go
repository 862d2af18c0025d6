package retro

import (
	"testing"

	"github.com/hailam/retroboard/internal/board"
	"github.com/hailam/retroboard/internal/testutil"
)

func TestParseUnmove(t *testing.T) {
	tests := []struct {
		in   string
		want Unmove
	}{
		{"e2e4", NewNormal(board.E2, board.E4)},
		{"Pe2e4", NewUncapture(board.E2, board.E4, board.Pawn)},
		{"Ue8e7", NewUnPromotion(board.E8, board.E7, board.NoPieceType)},
		{"UNe8e7", NewUnPromotion(board.E8, board.E7, board.Knight)},
		{"Ee3d4", NewEnPassant(board.E3, board.D4)},
		{"Qa1a2", NewUncapture(board.A1, board.A2, board.Queen)},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseUnmove(tc.in)
			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, got, tc.want)
			testutil.AssertEqual(t, got.String(), tc.in)
		})
	}
}

func TestParseUnmoveErrors(t *testing.T) {
	for _, s := range []string{"", "e2", "e2e9", "Ke2e4", "pe2e4", "EPe5d6", "XUe8e7", "e2e4q", "NUe8e7"} {
		_, err := ParseUnmove(s)
		testutil.AssertErrorIs(t, err, ErrInvalidUnmove, "ParseUnmove(%q)", s)
	}
}

func TestUnmovePredicates(t *testing.T) {
	normal := MustParseUnmove("e2e4")
	testutil.AssertTrue(t, !normal.IsUncapture() && !normal.IsUnpromotion() && !normal.IsEnPassant())
	_, ok := normal.UncaptureRole()
	testutil.AssertTrue(t, !ok, "normal unmove uncaptures nothing")

	uncapture := MustParseUnmove("Pe2e4")
	testutil.AssertTrue(t, uncapture.IsUncapture())
	role, ok := uncapture.UncaptureRole()
	testutil.AssertTrue(t, ok && role == board.Pawn)

	plain := MustParseUnmove("Ue8e7")
	testutil.AssertTrue(t, plain.IsUnpromotion() && !plain.IsEnPassant())
	_, ok = plain.UncaptureRole()
	testutil.AssertTrue(t, !ok, "plain unpromotion uncaptures nothing")

	withRole := MustParseUnmove("URe8d7")
	role, ok = withRole.UncaptureRole()
	testutil.AssertTrue(t, ok && role == board.Rook)

	ep := MustParseUnmove("Ee3d4")
	testutil.AssertTrue(t, ep.IsEnPassant() && !ep.IsUnpromotion())
	role, ok = ep.UncaptureRole()
	testutil.AssertTrue(t, ok && role == board.Pawn)
}

func TestUncaptureSquare(t *testing.T) {
	tests := []struct {
		in   string
		want board.Square
		ok   bool
	}{
		{"Ed3e4", board.D4, true},
		{"Eb6c5", board.B5, true},
		{"Qa8h1", board.A8, true},
		{"UNe8d7", board.E8, true},
		{"Ue8e7", board.NoSquare, false},
		{"a1a2", board.NoSquare, false},
	}
	for _, tc := range tests {
		sq, ok := MustParseUnmove(tc.in).UncaptureSquare()
		testutil.AssertEqual(t, ok, tc.ok, tc.in)
		testutil.AssertEqual(t, sq, tc.want, tc.in)
	}
}

func TestUnmoveMirror(t *testing.T) {
	pairs := [][2]string{
		{"a1a8", "a8a1"},
		{"Qa1a8", "Qa8a1"},
		{"Ua1a2", "Ua8a7"},
		{"Ua1b2", "Ua8b7"},
		{"URa1b2", "URa8b7"},
		{"Ef3e4", "Ef6e5"},
	}
	for _, pair := range pairs {
		testutil.AssertEqual(t, MustParseUnmove(pair[0]).Mirror(), MustParseUnmove(pair[1]))
		testutil.AssertEqual(t, MustParseUnmove(pair[1]).Mirror(), MustParseUnmove(pair[0]))
	}
}

func TestRefillsOrigin(t *testing.T) {
	testutil.AssertTrue(t, MustParseUnmove("Ne2e4").refillsOrigin())
	testutil.AssertTrue(t, MustParseUnmove("UQe8d7").refillsOrigin())
	testutil.AssertTrue(t, !MustParseUnmove("Ue8e7").refillsOrigin())
	testutil.AssertTrue(t, !MustParseUnmove("Ee6d5").refillsOrigin())
	testutil.AssertTrue(t, !MustParseUnmove("e2e4").refillsOrigin())
}

func TestUnmoveList(t *testing.T) {
	ml := NewUnmoveList()
	ml.Add(MustParseUnmove("e2e4"))
	ml.Add(MustParseUnmove("Pe2e3"))
	testutil.AssertEqual(t, ml.Len(), 2)
	testutil.AssertEqual(t, ml.Get(1), MustParseUnmove("Pe2e3"))
	testutil.AssertEqual(t, ml.Strings(), []string{"e2e4", "Pe2e3"})
}
