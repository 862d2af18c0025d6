package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/hailam/retroboard/internal/config"
	"github.com/hailam/retroboard/internal/retro"
	"github.com/hailam/retroboard/internal/testutil"
)

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Depth = 2
	return cfg
}

func TestRunModesAgree(t *testing.T) {
	pos, err := testConfig().Position()
	testutil.AssertNoError(t, err)
	want := fmt.Sprintf("perft(2) = %d\n", retro.Perft(pos, 2))

	modes := map[string]func(*config.Config){
		"parallel": func(c *config.Config) {},
		"divide":   func(c *config.Config) { c.Divide = true },
		"cache":    func(c *config.Config) { c.Cache = true },
		"cache on disk": func(c *config.Config) {
			c.Cache = true
			c.CacheDir = t.TempDir()
		},
	}
	for name, apply := range modes {
		t.Run(name, func(t *testing.T) {
			cfg := testConfig()
			apply(&cfg)
			var out bytes.Buffer
			testutil.AssertNoError(t, run(context.Background(), cfg, zerolog.Nop(), &out))
			testutil.AssertTrue(t, strings.HasSuffix(out.String(), want), "output %q", out.String())
		})
	}
}

func TestRunListAndVerify(t *testing.T) {
	cfg := testConfig()
	cfg.FEN = "1k6/8/4P3/8/8/8/nn6/Kn6 b"
	cfg.WhitePocket = ""
	cfg.BlackPocket = "P"
	cfg.Depth = 1
	cfg.List = true
	cfg.Verify = true

	var out bytes.Buffer
	testutil.AssertNoError(t, run(context.Background(), cfg, zerolog.Nop(), &out))
	testutil.AssertTrue(t, strings.Contains(out.String(), "Ee6d5\td5e6\n"), "output %q", out.String())
	testutil.AssertTrue(t, strings.HasSuffix(out.String(), "perft(1) = 5\n"), "output %q", out.String())
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := run(ctx, testConfig(), zerolog.Nop(), &bytes.Buffer{})
	testutil.AssertErrorIs(t, err, context.Canceled)
}

func TestRunDefaultCacheDir(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	t.Setenv("APPDATA", t.TempDir())

	dir, err := resolveCacheDir(config.CacheDirDefault)
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, dir != "" && dir != config.CacheDirDefault, "unresolved directory %q", dir)

	passthrough, err := resolveCacheDir("/some/where")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, passthrough, "/some/where")

	cfg := testConfig()
	cfg.Cache = true
	cfg.CacheDir = config.CacheDirDefault
	testutil.AssertNoError(t, run(context.Background(), cfg, zerolog.Nop(), &bytes.Buffer{}))

	entries, err := os.ReadDir(dir)
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, len(entries) > 0, "node store not written to %s", dir)
}
