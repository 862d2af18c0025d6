package retro

import (
	"strings"
	"testing"

	"github.com/hailam/retroboard/internal/testutil"
)

// generate runs one generator stage, or the full pseudo-legal or legal set.
func generate(p *Position, stage string) []string {
	ml := NewUnmoveList()
	switch stage {
	case "pawn":
		p.genPawns(ml)
	case "piece":
		p.genPieces(ml)
	case "unpromotion":
		p.genUnpromotions(ml)
	case "enpassant":
		p.genEnPassant(ml)
	case "pseudo":
		ml = p.PseudoLegalUnmoves()
	default:
		ml = p.LegalUnmoves()
	}
	return ml.Strings()
}

// checkUnmoves compares a generator stage with want, on the position and on
// its mirror image with pockets swapped.
func checkUnmoves(t *testing.T, fen, whitePocket, blackPocket, stage, want string) {
	t.Helper()
	pos := MustParse(fen, whitePocket, blackPocket)
	expected := strings.Fields(want)

	testutil.AssertSameSet(t, generate(pos, stage), expected, "%s %s", stage, fen)

	mirrored := make([]string, len(expected))
	for i, s := range expected {
		mirrored[i] = MustParseUnmove(s).Mirror().String()
	}
	testutil.AssertSameSet(t, generate(pos.Mirror(), stage), mirrored, "mirrored %s %s", stage, fen)
}

type unmoveCase struct {
	name        string
	fen         string
	whitePocket string
	blackPocket string
	stage       string
	want        string
}

func runUnmoveCases(t *testing.T, cases []unmoveCase) {
	t.Helper()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			checkUnmoves(t, tc.fen, tc.whitePocket, tc.blackPocket, tc.stage, tc.want)
		})
	}
}

func TestGeneratorStages(t *testing.T) {
	runUnmoveCases(t, []unmoveCase{
		{"simple pawn", "2k5/8/8/5P2/8/8/8/K7 b", "", "", "pawn", "f5f4"},
		{"double pawn", "2k5/8/8/8/5P2/8/nn6/Kn6 b", "", "", "pawn", "f4f3 f4f2"},
		{"pawn on second rank", "1k6/8/8/8/8/8/3P2nn/6nK b", "", "", "pawn", ""},
		{"boxed king", "1k6/8/8/8/8/8/nn6/Kn6 b", "", "", "piece", ""},
		{"knight", "1k6/8/8/8/8/5N2/nn6/Kn6 b", "", "", "piece", "f3e1 f3g1 f3h2 f3h4 f3g5 f3e5 f3d4 f3d2"},
		{"bishop", "1k6/8/8/8/3r4/8/nn3B2/Kn6 b", "", "", "piece", "f2e1 f2g1 f2g3 f2h4 f2e3"},
		{"rook", "1k6/8/8/8/8/5nnn/nn3n2/Kn3n1R b", "", "", "piece", "h1h2 h1g1"},
		{"queen", "1k6/8/8/8/8/5nnn/nn3n2/Kn3n1Q b", "", "", "piece", "h1h2 h1g1 h1g2"},
	})
}

func TestGeneratorUncaptures(t *testing.T) {
	runUnmoveCases(t, []unmoveCase{
		{"pawn uncapture", "3k4/8/8/8/4K3/7P/8/8 b", "", "PNBRQ", "pawn", "h3h2 Ph3g2 Nh3g2 Bh3g2 Rh3g2 Qh3g2"},
		{"pawn uncapture blocked", "2k5/8/8/8/5P2/4q1q1/nn6/Kn6 b", "", "PNBRQ", "pawn", "f4f3 f4f2"},
		{"rook uncapture", "1k6/8/8/8/8/5nnn/nn3n2/Kn3n1R b", "", "PBNRQ", "piece",
			"h1h2 h1g1 Bh1h2 Bh1g1 Nh1h2 Nh1g1 Rh1h2 Rh1g1 Qh1h2 Qh1g1"},
		{"queen uncapture", "1k6/8/8/8/8/5nnn/nn3n2/Kn3n1Q b", "", "PN", "piece", "h1h2 h1g1 h1g2 Nh1h2 Nh1g1 Nh1g2"},
		{"bishop uncapture", "1k6/8/8/8/8/5nnn/nn3n2/Kn3n1B b", "", "PN", "piece", "h1g2 Nh1g2"},
		{"knight uncapture", "1k6/8/8/8/8/8/nn6/Kn5N b", "", "PQ", "piece", "h1g3 h1f2 Qh1g3 Qh1f2"},
		{"knight uncapture with pawns", "k7/8/8/8/8/8/nn5N/Kn6 b", "", "PQ", "piece",
			"h2g4 h2f3 h2f1 Qh2g4 Qh2f3 Qh2f1 Ph2g4 Ph2f3 Ph2f1"},
	})
}

func TestGeneratorUnpromotions(t *testing.T) {
	runUnmoveCases(t, []unmoveCase{
		{"unpromotion and uncapture", "6N1/k3n3/5n1n/8/8/8/nn6/Kn6 b", "1", "PR", "unpromotion", "Ug8g7 URg8f7 URg8h7"},
		{"unpromotion without uncapture", "6N1/k3n3/5n1n/8/8/8/nn6/Kn6 b", "1", "", "unpromotion", "Ug8g7"},
		{"no allowance", "6N1/k3n3/5n1n/8/8/8/nn6/Kn6 b", "", "PQ", "unpromotion", ""},
		{"king never unpromotes", "6K1/k7/8/8/8/8/8/8 b", "1", "", "unpromotion", ""},
	})
}

func TestGeneratorEnPassant(t *testing.T) {
	runUnmoveCases(t, []unmoveCase{
		{"both sides", "1k6/8/4P3/8/8/8/nn6/Kn6 b", "", "P", "enpassant", "Ee6d5 Ee6f5"},
		{"no pawn in pocket", "1k6/8/4P3/8/8/8/nn6/Kn6 b", "", "NQ", "enpassant", ""},
		{"square behind occupied", "1k6/8/4P3/4n3/8/8/nn6/Kn6 b", "", "P", "enpassant", ""},
		{"square ahead occupied", "1k6/4n3/4P3/8/8/8/nn6/Kn6 b", "", "P", "enpassant", ""},
		{"one side blocked", "1k6/8/4P3/3n4/8/8/nn6/Kn6 b", "", "P", "enpassant", "Ee6f5"},
	})
}

func TestPseudoLegalUnmoves(t *testing.T) {
	runUnmoveCases(t, []unmoveCase{
		{"mixed", "5BN1/k3n3/5n1n/8/5P2/8/nn6/K7 b", "1", "PQ", "pseudo",
			"a1b1 Qa1b1 Ug8g7 UQg8f7 UQg8h7 Uf8f7 UQf8g7 Qf8g7 f8g7 f4f2 f4f3 Pf4g3 Pf4e3 Qf4g3 Qf4e3"},
		{"pending en passant", "1k6/8/8/3Pp3/8/8/nn6/Kn6 w - e6", "", "", "pseudo", "e5e7"},
	})
}

func TestPseudoLegalHasNoDuplicates(t *testing.T) {
	p := MustParse("1N6/1r5k/8/8/2P5/8/1Q2P3/n5Kb w", "2PNBRQ", "3NBRQP")
	for _, m := range p.PseudoLegalUnmoves().Slice() {
		child := p.Clone()
		child.Apply(m)
		got := child.PseudoLegalUnmoves().Strings()
		testutil.AssertSameSet(t, got, uniqueStrings(got), "after %v", m)
	}
}

func uniqueStrings(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
