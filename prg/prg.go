//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package prg implements the pseudorandom seed expanders driving the
// comparison function tree. An expander maps a λ-bit seed
// deterministically into the 2·(λ+1) bits of a tree level — two child
// seeds and two control bits — and converts seeds into output group
// values on a domain-separated stream. The same seed always expands
// identically, across calls and across expander instances of the same
// construction.
package prg

import (
	"github.com/xymeng16/dcf/group"
)

// MinLambda is the smallest supported seed length in bits.
const MinLambda = 128

// Expander expands seeds for key generation and evaluation. An
// expander is an immutable scheme context: it holds no per-call
// state and is safe for concurrent use.
type Expander interface {
	// SeedBytes returns the seed length λ/8 in bytes.
	SeedBytes() int

	// Expand fills e with the expansion of seed: child seeds SL and
	// SR of λ bits each and control bits TL and TR, the partition
	// seedL | bitL | seedR | bitR of the 2·(λ+1) output bits.
	Expand(seed []byte, e *Expansion)

	// Convert derives a group value of width w from seed, on a
	// stream domain-separated from Expand.
	Convert(seed []byte, w group.Width) group.Value
}

// Expansion holds the output of a single seed expansion. The SL and
// SR slices alias an internal buffer that is reused by subsequent
// Expand calls on the same Expansion.
type Expansion struct {
	SL []byte
	SR []byte
	TL byte
	TR byte

	buf []byte
}

// scratch returns a zeroed buffer of 2*seedBytes+1 bytes and points
// SL and SR into it.
func (e *Expansion) scratch(seedBytes int) []byte {
	need := 2*seedBytes + 1
	if cap(e.buf) < need {
		e.buf = make([]byte, need)
	}
	buf := e.buf[:need]
	clear(buf)
	e.SL = buf[:seedBytes]
	e.SR = buf[seedBytes : 2*seedBytes]
	return buf
}

// setBits sets the control bits from the trailing byte of the
// expansion buffer.
func (e *Expansion) setBits(buf []byte) {
	bits := buf[len(buf)-1]
	e.TL = bits & 1
	e.TR = (bits >> 1) & 1
}
