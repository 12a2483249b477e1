//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package dcf

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/xymeng16/dcf/group"
	"github.com/xymeng16/dcf/prg"
)

// poolChunk is the number of points a worker claims at a time.
const poolChunk = 64

// Pool is a parallel batch evaluation driver: a fixed number of
// workers claim chunks of the input index range with an atomic
// counter and write results into their slots of a pre-allocated
// output buffer. Output order never depends on scheduling. A Pool
// holds no state between calls and is safe for concurrent use.
type Pool struct {
	workers int
}

// NewPool creates a batch evaluation pool. A workers value of zero or
// less selects the number of CPUs.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Pool{
		workers: workers,
	}
}

// Workers returns the pool's worker count.
func (p *Pool) Workers() int {
	return p.workers
}

// BatchEval evaluates the key at every point of xs in order,
// fanning the points out over the pool's workers. The result is
// elementwise identical to the sequential BatchEval.
func (p *Pool) BatchEval(key *Key, xs []group.Elem, g prg.Expander) ([]group.Value, error) {
	if err := key.validate(g); err != nil {
		return nil, err
	}
	elemBytes := group.ElemBytes(key.Params.Bits)
	for i, x := range xs {
		if len(x) != elemBytes {
			return nil, fmt.Errorf(
				"%w: point %d is %d bytes, domain needs %d",
				ErrInvalidParameter, i, len(x), elemBytes)
		}
	}

	workers := p.workers
	if workers > (len(xs)+poolChunk-1)/poolChunk {
		workers = (len(xs) + poolChunk - 1) / poolChunk
	}
	if workers <= 1 {
		out := make([]group.Value, len(xs))
		var e prg.Expansion
		for i, x := range xs {
			out[i] = evalPoint(key, x, g, &e)
		}
		return out, nil
	}

	out := make([]group.Value, len(xs))

	// The claim counter is the only shared mutable state; each
	// worker writes disjoint out slots.
	var next atomic.Int64
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var e prg.Expansion
			for {
				end := int(next.Add(poolChunk))
				start := end - poolChunk
				if start >= len(xs) {
					return
				}
				if end > len(xs) {
					end = len(xs)
				}
				for j := start; j < end; j++ {
					out[j] = evalPoint(key, xs[j], g, &e)
				}
			}
		}()
	}
	wg.Wait()

	return out, nil
}
