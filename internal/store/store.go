// Package store persists perft subtree counts in BadgerDB so that
// positions reached along several unmove paths are expanded once.
package store

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"
)

// Key layout: prefix, position key, depth byte.
const keyPrefix = 'n'

// Options configures a NodeStore.
type Options struct {
	Dir      string // ignored when InMemory is set
	InMemory bool
	Logger   zerolog.Logger
}

// Stats counts cache traffic since Open.
type Stats struct {
	Hits   uint64
	Misses uint64
	Writes uint64
}

// NodeStore maps (position key, depth) to a node count.
type NodeStore struct {
	db     *badger.DB
	logger zerolog.Logger

	hits   atomic.Uint64
	misses atomic.Uint64
	writes atomic.Uint64
}

// Open opens or creates a node store.
func Open(opts Options) (*NodeStore, error) {
	var bopts badger.Options
	if opts.InMemory {
		bopts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if opts.Dir == "" {
			return nil, errors.New("store: no directory given")
		}
		bopts = badger.DefaultOptions(opts.Dir)
	}
	bopts.Logger = badgerLogger{opts.Logger.With().Str("component", "badger").Logger()}

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("store: open: %w", err)
	}

	opts.Logger.Debug().
		Str("dir", opts.Dir).
		Bool("in_memory", opts.InMemory).
		Msg("node store opened")

	return &NodeStore{db: db, logger: opts.Logger}, nil
}

// Close closes the database.
func (s *NodeStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func nodeKey(key []byte, depth int) []byte {
	k := make([]byte, 0, len(key)+2)
	k = append(k, keyPrefix)
	k = append(k, key...)
	return append(k, byte(depth))
}

// Get returns the stored count for key at depth.
func (s *NodeStore) Get(key []byte, depth int) (uint64, bool, error) {
	var nodes uint64
	found := false

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(nodeKey(key, depth))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			if len(val) != 8 {
				return fmt.Errorf("store: corrupt value of %d bytes", len(val))
			}
			nodes = binary.LittleEndian.Uint64(val)
			found = true
			return nil
		})
	})
	if err != nil {
		return 0, false, err
	}

	if found {
		s.hits.Add(1)
	} else {
		s.misses.Add(1)
	}
	return nodes, found, nil
}

// Put stores the count for key at depth.
func (s *NodeStore) Put(key []byte, depth int, nodes uint64) error {
	val := binary.LittleEndian.AppendUint64(nil, nodes)
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(nodeKey(key, depth), val)
	})
	if err != nil {
		return err
	}
	s.writes.Add(1)
	return nil
}

// Stats returns the traffic counters.
func (s *NodeStore) Stats() Stats {
	return Stats{
		Hits:   s.hits.Load(),
		Misses: s.misses.Load(),
		Writes: s.writes.Load(),
	}
}

// Len counts the stored entries.
func (s *NodeStore) Len() (int, error) {
	n := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte{keyPrefix}
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			n++
		}
		return nil
	})
	return n, err
}

// badgerLogger forwards badger's internal messages to zerolog.
type badgerLogger struct {
	zerolog.Logger
}

func (l badgerLogger) Errorf(format string, args ...any) {
	l.Logger.Error().Msgf(format, args...)
}

func (l badgerLogger) Warningf(format string, args ...any) {
	l.Logger.Warn().Msgf(format, args...)
}

func (l badgerLogger) Infof(format string, args ...any) {
	l.Logger.Debug().Msgf(format, args...)
}

func (l badgerLogger) Debugf(format string, args ...any) {
	l.Logger.Trace().Msgf(format, args...)
}
