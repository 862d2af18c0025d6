package config

import (
	"flag"
	"io"
	"testing"

	"github.com/hailam/retroboard/internal/retro"
	"github.com/hailam/retroboard/internal/testutil"
)

func env(vars map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func load(args []string, vars map[string]string) (Config, error) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return Load(fs, args, env(vars))
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(nil, nil)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, cfg, Default())
}

func TestLoadPrecedence(t *testing.T) {
	vars := map[string]string{
		EnvDepth:       "2",
		EnvWorkers:     "4",
		EnvWhitePocket: "Q",
		EnvCache:       "true",
		EnvLogLevel:    "debug",
	}

	cfg, err := load(nil, vars)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, cfg.Depth, 2)
	testutil.AssertEqual(t, cfg.Workers, 4)
	testutil.AssertEqual(t, cfg.WhitePocket, "Q")
	testutil.AssertTrue(t, cfg.Cache)
	testutil.AssertEqual(t, cfg.LogLevel, "debug")

	cfg, err = load([]string{"-depth", "5", "-white", "PP1"}, vars)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, cfg.Depth, 5, "flag should win over environment")
	testutil.AssertEqual(t, cfg.WhitePocket, "PP1")
	testutil.AssertEqual(t, cfg.Workers, 4)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		vars map[string]string
	}{
		{"bad depth variable", nil, map[string]string{EnvDepth: "deep"}},
		{"bad cache variable", nil, map[string]string{EnvCache: "maybe"}},
		{"negative depth", []string{"-depth", "-1"}, nil},
		{"depth too large", []string{"-depth", "17"}, nil},
		{"negative workers", []string{"-workers", "-2"}, nil},
		{"divide with cache", []string{"-divide", "-cache"}, nil},
		{"cache dir without cache", []string{"-cache-dir", "/tmp/x"}, nil},
		{"bad pocket", []string{"-white", "K"}, nil},
		{"bad fen", []string{"-fen", "8/8/8/8/8/8/8/8 w"}, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := load(tc.args, tc.vars)
			testutil.AssertErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestPosition(t *testing.T) {
	cfg := Default()
	cfg.FEN = "1k6/8/4P3/8/8/8/nn6/Kn6 b"
	cfg.WhitePocket = ""
	cfg.BlackPocket = "P"

	pos, err := cfg.Position()
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, pos.Pockets(), retro.Pockets{Black: retro.Pocket{Pawn: 1}})
	testutil.AssertEqual(t, pos.LegalUnmoves().Len(), 5)
}

func TestLoadDefaultCacheDir(t *testing.T) {
	cfg, err := load([]string{"-cache"}, map[string]string{EnvCacheDir: CacheDirDefault})
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, cfg.Cache)
	testutil.AssertEqual(t, cfg.CacheDir, CacheDirDefault)
}
