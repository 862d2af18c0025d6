// Command retroperft counts retrograde unmove paths from a position.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/pprof"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hailam/retroboard/internal/config"
	"github.com/hailam/retroboard/internal/forward"
	"github.com/hailam/retroboard/internal/logx"
	"github.com/hailam/retroboard/internal/retro"
	"github.com/hailam/retroboard/internal/store"
)

func main() {
	cfg, err := config.LoadFromOS()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger, err := logx.NewLogger(os.Stderr, cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger = logger.With().Str("run", uuid.NewString()).Logger()

	if cfg.CPUProfile != "" {
		f, err := os.Create(cfg.CPUProfile)
		if err != nil {
			logger.Fatal().Err(err).Msg("could not create CPU profile")
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			logger.Fatal().Err(err).Msg("could not start CPU profile")
		}
		defer pprof.StopCPUProfile()
		logger.Info().Str("path", cfg.CPUProfile).Msg("CPU profiling enabled")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger, os.Stdout); err != nil {
		logger.Error().Err(err).Msg("retroperft failed")
		stop()
		pprof.StopCPUProfile()
		os.Exit(1)
	}
}

// run executes one configured analysis, writing results to out.
func run(ctx context.Context, cfg config.Config, logger zerolog.Logger, out io.Writer) error {
	pos, err := cfg.Position()
	if err != nil {
		return err
	}
	logger.Info().
		Str("fen", forward.FEN(pos)).
		Stringer("retro_turn", pos.RetroTurn()).
		Stringer("pockets", pos.Pockets()).
		Int("depth", cfg.Depth).
		Msg("position loaded")

	if cfg.List {
		for _, m := range pos.LegalUnmoves().Slice() {
			fmt.Fprintf(out, "%v\t%s\n", m, forward.Move(pos, m))
		}
	}

	if cfg.Verify {
		if err := forward.CheckAll(pos); err != nil {
			return err
		}
		logger.Info().Msg("root unmoves verified against forward move generation")
	}

	start := time.Now()
	nodes, err := count(ctx, cfg, pos, logger, out)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	nps := 0.0
	if elapsed > 0 {
		nps = float64(nodes) / elapsed.Seconds()
	}
	logger.Info().
		Uint64("nodes", nodes).
		Dur("elapsed", elapsed).
		Float64("nps", nps).
		Msg("perft done")
	fmt.Fprintf(out, "perft(%d) = %d\n", cfg.Depth, nodes)
	return nil
}

// count runs the perft flavour selected by cfg.
func count(ctx context.Context, cfg config.Config, pos *retro.Position, logger zerolog.Logger, out io.Writer) (uint64, error) {
	switch {
	case cfg.Divide:
		var total uint64
		for _, e := range retro.Divide(pos, cfg.Depth) {
			fmt.Fprintf(out, "%v: %d\n", e.Unmove, e.Nodes)
			total += e.Nodes
		}
		return total, nil

	case cfg.Cache:
		dir, err := resolveCacheDir(cfg.CacheDir)
		if err != nil {
			return 0, err
		}
		ns, err := store.Open(store.Options{
			Dir:      dir,
			InMemory: dir == "",
			Logger:   logger.With().Str("component", "store").Logger(),
		})
		if err != nil {
			return 0, err
		}
		defer ns.Close()

		nodes, err := retro.CachedPerft(pos, cfg.Depth, ns)
		stats := ns.Stats()
		logger.Debug().
			Uint64("hits", stats.Hits).
			Uint64("misses", stats.Misses).
			Uint64("writes", stats.Writes).
			Msg("node store traffic")
		return nodes, err

	default:
		return retro.ParallelPerft(ctx, pos, cfg.Depth, cfg.Workers)
	}
}

// resolveCacheDir maps config.CacheDirDefault to the per-user cache
// directory; other values pass through.
func resolveCacheDir(dir string) (string, error) {
	if dir != config.CacheDirDefault {
		return dir, nil
	}
	return store.DefaultCacheDir()
}
