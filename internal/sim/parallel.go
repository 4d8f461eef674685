package sim

import (
	"math/rand/v2"
	"runtime"

	"github.com/sourcegraph/conc"
)

// BlockSize is the number of adjacent paths that share one random stream.
const BlockSize = 1024

// ParallelGenerator simulates paths across several goroutines. Paths are split
// into blocks of BlockSize columns and every block draws from its own stream
// seeded from (Seed, block index), so the result depends on Seed only and not
// on Workers.
//
// Time steps stay sequential: all blocks finish step t-1 before any block
// starts step t.
type ParallelGenerator struct {
	Seed    uint64
	Workers int // <= 0 means GOMAXPROCS
}

func (g ParallelGenerator) workers(blocks int) int {
	w := g.Workers
	if w <= 0 {
		w = runtime.GOMAXPROCS(0)
	}
	return min(w, blocks)
}

// Generate builds the price matrix for cfg.
func (g ParallelGenerator) Generate(cfg Config) *PriceMatrix {
	pm := newPriceMatrix(cfg)
	st := newStepper(cfg)

	blocks := (cfg.numPaths + BlockSize - 1) / BlockSize
	sources := make([]*rand.Rand, blocks)
	for b := range sources {
		sources[b] = blockSource(g.Seed, b)
	}
	workers := g.workers(blocks)

	for t := 1; t < cfg.stepsPerYear; t++ {
		prev, next := pm.m.RawRowView(t-1), pm.m.RawRowView(t)

		var wg conc.WaitGroup
		for w := range workers {
			wg.Go(func() {
				// each worker owns blocks w, w+workers, ...; columns are disjoint
				for b := w; b < blocks; b += workers {
					lo := b * BlockSize
					hi := min(lo+BlockSize, cfg.numPaths)
					st.advance(prev[lo:hi], next[lo:hi], sources[b])
				}
			})
		}
		wg.Wait()
	}
	return pm
}
