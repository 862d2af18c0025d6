package store

import (
	"os"
	"testing"

	"github.com/rs/zerolog"

	"github.com/hailam/retroboard/internal/retro"
	"github.com/hailam/retroboard/internal/testutil"
)

func openMemory(t *testing.T) *NodeStore {
	t.Helper()
	s, err := Open(Options{InMemory: true, Logger: zerolog.Nop()})
	testutil.AssertNoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestNodeStoreRoundTrip(t *testing.T) {
	s := openMemory(t)
	key := retro.MustParse("1k6/8/4P3/8/8/8/nn6/Kn6 b", "", "P").Key()

	_, ok, err := s.Get(key, 3)
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, !ok, "empty store")

	testutil.AssertNoError(t, s.Put(key, 3, 12345))
	testutil.AssertNoError(t, s.Put(key, 4, 99))

	n, ok, err := s.Get(key, 3)
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, ok)
	testutil.AssertEqual(t, n, uint64(12345))

	n, ok, err = s.Get(key, 4)
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, ok)
	testutil.AssertEqual(t, n, uint64(99))

	testutil.AssertEqual(t, s.Stats(), Stats{Hits: 2, Misses: 1, Writes: 2})

	size, err := s.Len()
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, size, 2)
}

func TestNodeStoreBacksCachedPerft(t *testing.T) {
	s := openMemory(t)
	pos := retro.MustParse("q4N2/1p5k/8/8/6P1/4Q3/1K1PB3/7r b", "2PNBRQ", "3NBRQP")

	got, err := retro.CachedPerft(pos, 3, s)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, got, retro.Perft(pos, 3))

	before := s.Stats()
	again, err := retro.CachedPerft(pos, 3, s)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, again, got)
	testutil.AssertEqual(t, s.Stats().Hits, before.Hits+1)
}

func TestNodeStorePersists(t *testing.T) {
	dir := t.TempDir()
	key := []byte("position")

	s, err := Open(Options{Dir: dir, Logger: zerolog.Nop()})
	testutil.AssertNoError(t, err)
	testutil.AssertNoError(t, s.Put(key, 2, 7))
	testutil.AssertNoError(t, s.Close())

	s, err = Open(Options{Dir: dir, Logger: zerolog.Nop()})
	testutil.AssertNoError(t, err)
	defer s.Close()
	n, ok, err := s.Get(key, 2)
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, ok)
	testutil.AssertEqual(t, n, uint64(7))
}

func TestOpenWithoutDir(t *testing.T) {
	_, err := Open(Options{Logger: zerolog.Nop()})
	testutil.AssertTrue(t, err != nil, "expected an error without a directory")
}

func TestDataDir(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	t.Setenv("APPDATA", t.TempDir())

	dir, err := DefaultCacheDir()
	testutil.AssertNoError(t, err)
	_, err = os.Stat(dir)
	testutil.AssertNoError(t, err, "cache directory should exist")
}
