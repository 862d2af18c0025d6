package retro

import (
	"context"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// MaxPerftDepth bounds the recursion of the perft walkers. Deeper requests
// are clamped; the tree grows far too fast for larger depths to finish.
const MaxPerftDepth = 16

// Perft counts the legal unmove paths of exactly depth plies.
// Shorter paths, ending in positions without unmoves, are not counted.
func Perft(p *Position, depth int) uint64 {
	depth = min(depth, MaxPerftDepth)
	if depth <= 0 {
		return 1
	}

	moves := p.LegalUnmoves()
	if depth == 1 {
		return uint64(moves.Len())
	}

	var nodes uint64
	for _, m := range moves.Slice() {
		child := p.Clone()
		child.Apply(m)
		nodes += Perft(child, depth-1)
	}
	return nodes
}

// DivideEntry is the subtree size below one root unmove.
type DivideEntry struct {
	Unmove Unmove
	Nodes  uint64
}

// Divide runs Perft below each legal root unmove, in generation order.
func Divide(p *Position, depth int) []DivideEntry {
	depth = min(depth, MaxPerftDepth)
	if depth <= 0 {
		return nil
	}

	moves := p.LegalUnmoves()
	entries := make([]DivideEntry, 0, moves.Len())
	for _, m := range moves.Slice() {
		child := p.Clone()
		child.Apply(m)
		entries = append(entries, DivideEntry{Unmove: m, Nodes: Perft(child, depth-1)})
	}
	return entries
}

// ParallelPerft is Perft with the root unmoves spread over workers
// goroutines (GOMAXPROCS when workers <= 0). Each branch works on its own
// clone. Cancellation is checked before each root branch starts.
func ParallelPerft(ctx context.Context, p *Position, depth, workers int) (uint64, error) {
	depth = min(depth, MaxPerftDepth)
	if depth <= 1 {
		return Perft(p, depth), ctx.Err()
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	var nodes atomic.Uint64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, m := range p.LegalUnmoves().Slice() {
		if gctx.Err() != nil {
			break
		}
		child := p.Clone()
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			child.Apply(m)
			nodes.Add(Perft(child, depth-1))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nodes.Load(), err
	}
	return nodes.Load(), ctx.Err()
}

// NodeCache memoises subtree sizes by exact position key and depth.
type NodeCache interface {
	Get(key []byte, depth int) (uint64, bool, error)
	Put(key []byte, depth int, nodes uint64) error
}

// CachedPerft is Perft consulting cache for every interior node, so a
// position reached along several paths is expanded once per depth.
func CachedPerft(p *Position, depth int, cache NodeCache) (uint64, error) {
	depth = min(depth, MaxPerftDepth)
	if depth <= 1 {
		return Perft(p, depth), nil
	}

	key := p.Key()
	if nodes, ok, err := cache.Get(key, depth); err != nil || ok {
		return nodes, err
	}

	var nodes uint64
	for _, m := range p.LegalUnmoves().Slice() {
		child := p.Clone()
		child.Apply(m)
		n, err := CachedPerft(child, depth-1, cache)
		if err != nil {
			return 0, err
		}
		nodes += n
	}

	if err := cache.Put(key, depth, nodes); err != nil {
		return 0, err
	}
	return nodes, nil
}
