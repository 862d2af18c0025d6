// Package config holds the run configuration of the retroperft command.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/hailam/retroboard/internal/retro"
)

// Default position: a middlegame with both pockets well stocked.
const (
	DefaultFEN         = "q4N2/1p5k/8/8/6P1/4Q3/1K1PB3/7r b"
	DefaultWhitePocket = "2PNBRQ"
	DefaultBlackPocket = "3NBRQP"
)

// Environment variables read by Load. A flag given on the command line
// takes precedence over its variable.
const (
	EnvFEN         = "RETRO_FEN"
	EnvWhitePocket = "RETRO_WHITE_POCKET"
	EnvBlackPocket = "RETRO_BLACK_POCKET"
	EnvDepth       = "RETRO_DEPTH"
	EnvWorkers     = "RETRO_WORKERS"
	EnvCache       = "RETRO_CACHE"
	EnvCacheDir    = "RETRO_CACHE_DIR"
	EnvLogLevel    = "RETRO_LOG_LEVEL"
	EnvCPUProfile  = "CPUPROFILE"
)

// CacheDirDefault as CacheDir selects the per-user data directory.
const CacheDirDefault = "default"

// ErrInvalidConfig is wrapped by Validate and Load.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds all settings of one run.
type Config struct {
	FEN         string
	WhitePocket string
	BlackPocket string

	Depth   int
	Workers int // 0 = GOMAXPROCS
	Divide  bool
	List    bool // print the legal unmoves of the root
	Verify  bool // check root unmoves against a forward move generator

	Cache    bool   // memoise subtree counts
	CacheDir string // empty = in memory, CacheDirDefault = per-user data dir

	LogLevel   string
	CPUProfile string
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		FEN:         DefaultFEN,
		WhitePocket: DefaultWhitePocket,
		BlackPocket: DefaultBlackPocket,
		Depth:       3,
		LogLevel:    "info",
	}
}

// Load fills a Config from the environment and then from args parsed on
// fs. lookup is os.LookupEnv outside tests.
func Load(fs *flag.FlagSet, args []string, lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()
	if err := cfg.applyEnv(lookup); err != nil {
		return cfg, err
	}

	fs.StringVar(&cfg.FEN, "fen", cfg.FEN, "position to unmove from (placement [side [castling [ep]]])")
	fs.StringVar(&cfg.WhitePocket, "white", cfg.WhitePocket, "white pocket, e.g. PNBRQ2")
	fs.StringVar(&cfg.BlackPocket, "black", cfg.BlackPocket, "black pocket, e.g. PNBRQ2")
	fs.IntVar(&cfg.Depth, "depth", cfg.Depth, "perft depth")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "perft goroutines (0 = GOMAXPROCS)")
	fs.BoolVar(&cfg.Divide, "divide", cfg.Divide, "print node counts per root unmove")
	fs.BoolVar(&cfg.List, "list", cfg.List, "print the legal unmoves of the position")
	fs.BoolVar(&cfg.Verify, "verify", cfg.Verify, "check root unmoves with a forward move generator")
	fs.BoolVar(&cfg.Cache, "cache", cfg.Cache, "memoise subtree counts in a node store")
	fs.StringVar(&cfg.CacheDir, "cache-dir", cfg.CacheDir, "node store directory (empty = in memory, \"default\" = per-user data dir)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "trace, debug, info, warn or error")
	fs.StringVar(&cfg.CPUProfile, "cpuprofile", cfg.CPUProfile, "write cpu profile to file")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// LoadFromOS is Load over the process arguments and environment.
func LoadFromOS() (Config, error) {
	return Load(flag.CommandLine, os.Args[1:], os.LookupEnv)
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvFEN); ok {
		c.FEN = v
	}
	if v, ok := lookup(EnvWhitePocket); ok {
		c.WhitePocket = v
	}
	if v, ok := lookup(EnvBlackPocket); ok {
		c.BlackPocket = v
	}
	if v, ok := lookup(EnvCacheDir); ok {
		c.CacheDir = v
	}
	if v, ok := lookup(EnvLogLevel); ok {
		c.LogLevel = v
	}
	if v, ok := lookup(EnvCPUProfile); ok {
		c.CPUProfile = v
	}

	var err error
	if v, ok := lookup(EnvDepth); ok {
		if c.Depth, err = strconv.Atoi(v); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidConfig, EnvDepth, err)
		}
	}
	if v, ok := lookup(EnvWorkers); ok {
		if c.Workers, err = strconv.Atoi(v); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidConfig, EnvWorkers, err)
		}
	}
	if v, ok := lookup(EnvCache); ok {
		if c.Cache, err = strconv.ParseBool(v); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidConfig, EnvCache, err)
		}
	}
	return nil
}

// Validate reports settings that cannot be run.
func (c Config) Validate() error {
	if c.Depth < 0 || c.Depth > retro.MaxPerftDepth {
		return fmt.Errorf("%w: depth %d outside 0..%d", ErrInvalidConfig, c.Depth, retro.MaxPerftDepth)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: negative worker count %d", ErrInvalidConfig, c.Workers)
	}
	if c.Cache && c.Divide {
		return fmt.Errorf("%w: -divide cannot be combined with -cache", ErrInvalidConfig)
	}
	if c.CacheDir != "" && !c.Cache {
		return fmt.Errorf("%w: -cache-dir needs -cache", ErrInvalidConfig)
	}
	if _, err := c.Position(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Position parses the configured position and pockets.
func (c Config) Position() (*retro.Position, error) {
	return retro.Parse(c.FEN, c.WhitePocket, c.BlackPocket)
}
