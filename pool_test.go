//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package dcf

import (
	"crypto/rand"
	"errors"
	mrand "math/rand"
	"sync"
	"testing"

	"github.com/xymeng16/dcf/group"
)

func TestPoolMatchesSequential(t *testing.T) {
	g := mustExpander(t, "aes", 128)
	params := Params{Lambda: 128, Bits: 16, Width: 64}

	k0, _, err := Gen(params, group.ElemFromUint64(30000, 16),
		group.ValueFromUint64(0x1234), g, rand.Reader)
	if err != nil {
		t.Fatalf("Gen: %v", err)
	}

	rng := mrand.New(mrand.NewSource(11))
	xs := make([]group.Elem, 10000)
	for i := range xs {
		xs[i] = group.ElemFromUint64(uint64(rng.Intn(1<<16)), 16)
	}

	expected, err := BatchEval(k0, xs, g)
	if err != nil {
		t.Fatalf("BatchEval: %v", err)
	}

	for _, workers := range []int{1, 4, 0} {
		pool := NewPool(workers)
		got, err := pool.BatchEval(k0, xs, g)
		if err != nil {
			t.Fatalf("workers=%d: %v", workers, err)
		}
		if len(got) != len(expected) {
			t.Fatalf("workers=%d: %d results, expected %d",
				workers, len(got), len(expected))
		}
		for i := range got {
			if !got[i].Equal(expected[i]) {
				t.Fatalf("workers=%d: point %d: %v != %v",
					workers, i, got[i], expected[i])
			}
		}
	}
}

func TestPoolSmallBatches(t *testing.T) {
	g := mustExpander(t, "aes", 128)
	params := Params{Lambda: 128, Bits: 8, Width: 32}

	k0, _, err := Gen(params, group.ElemFromUint64(100, 8),
		group.ValueFromUint64(7), g, rand.Reader)
	if err != nil {
		t.Fatalf("Gen: %v", err)
	}

	pool := NewPool(8)
	for _, n := range []int{0, 1, 2, 63, 64, 65, 200} {
		xs := make([]group.Elem, n)
		for i := range xs {
			xs[i] = group.ElemFromUint64(uint64(i%256), 8)
		}
		got, err := pool.BatchEval(k0, xs, g)
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}
		expected, err := BatchEval(k0, xs, g)
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}
		for i := range got {
			if !got[i].Equal(expected[i]) {
				t.Fatalf("n=%d: point %d differs", n, i)
			}
		}
	}
}

func TestPoolValidation(t *testing.T) {
	g := mustExpander(t, "aes", 128)
	params := Params{Lambda: 128, Bits: 8, Width: 32}

	k0, _, err := Gen(params, group.ElemFromUint64(100, 8),
		group.ValueFromUint64(7), g, rand.Reader)
	if err != nil {
		t.Fatalf("Gen: %v", err)
	}

	pool := NewPool(4)
	_, err = pool.BatchEval(k0, []group.Elem{
		group.ElemFromUint64(1, 8),
		group.ElemFromUint64(1, 16),
	}, g)
	if !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("malformed input: %v", err)
	}
}

func TestPoolWorkers(t *testing.T) {
	if got := NewPool(4).Workers(); got != 4 {
		t.Errorf("Workers() = %d", got)
	}
	if got := NewPool(0).Workers(); got < 1 {
		t.Errorf("default Workers() = %d", got)
	}
	if got := NewPool(-1).Workers(); got < 1 {
		t.Errorf("negative Workers() = %d", got)
	}
}

// Keys are read-only after Gen: concurrent Eval calls on the same key
// must agree with a sequential baseline.
func TestConcurrentEval(t *testing.T) {
	g := mustExpander(t, "aes", 128)
	params := Params{Lambda: 128, Bits: 8, Width: 64}

	k0, _, err := Gen(params, group.ElemFromUint64(77, 8),
		group.ValueFromUint64(5), g, rand.Reader)
	if err != nil {
		t.Fatalf("Gen: %v", err)
	}

	var expected [256]group.Value
	for x := 0; x < 256; x++ {
		v, err := Eval(k0, group.ElemFromUint64(uint64(x), 8), g)
		if err != nil {
			t.Fatal(err)
		}
		expected[x] = v
	}

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(off int) {
			defer wg.Done()
			for j := 0; j < 256; j++ {
				x := (off*31 + j) % 256
				v, err := Eval(k0, group.ElemFromUint64(uint64(x), 8), g)
				if err != nil {
					errs <- err
					return
				}
				if !v.Equal(expected[x]) {
					errs <- errors.New("concurrent Eval diverged")
					return
				}
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}
