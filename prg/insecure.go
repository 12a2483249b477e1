//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package prg

import (
	"fmt"

	"github.com/xymeng16/dcf/group"
)

// Insecure is a splitmix64-based expander for unit tests. It is not
// cryptographic: the seed is folded into 64 bits of state before
// expansion. Production key generation and evaluation must use the
// AES or ChaCha20 expanders.
type Insecure struct {
	seedBytes int
}

// NewInsecure creates an insecure test expander for λ-bit seeds.
func NewInsecure(lambda int) (*Insecure, error) {
	if lambda < MinLambda || lambda%8 != 0 {
		return nil, fmt.Errorf(
			"prg: insecure expander needs lambda >= %d in byte steps, got %d",
			MinLambda, lambda)
	}
	return &Insecure{
		seedBytes: lambda / 8,
	}, nil
}

// SeedBytes implements Expander.SeedBytes.
func (g *Insecure) SeedBytes() int {
	return g.seedBytes
}

// fold folds the seed bytes into a 64-bit stream state.
func fold(seed []byte, tag uint64) uint64 {
	state := tag ^ 0xcbf29ce484222325
	for _, b := range seed {
		state ^= uint64(b)
		state *= 0x100000001b3
	}
	return state
}

func splitmix64(x uint64) uint64 {
	z := x + 0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// stream fills out with pseudorandom bytes derived from state.
func stream(state uint64, out []byte) {
	for i := 0; i < len(out); i += 8 {
		state += 0x9e3779b97f4a7c15
		v := splitmix64(state)
		for j := 0; j < 8 && i+j < len(out); j++ {
			out[i+j] = byte(v >> (8 * j))
		}
	}
}

// Expand implements Expander.Expand.
func (g *Insecure) Expand(seed []byte, e *Expansion) {
	buf := e.scratch(g.seedBytes)
	stream(fold(seed, 0x657870616e64), buf)
	e.setBits(buf)
}

// Convert implements Expander.Convert.
func (g *Insecure) Convert(seed []byte, w group.Width) group.Value {
	var out [16]byte
	stream(fold(seed, 0x636f6e76657274), out[:])
	v, err := w.SetBytes(out[:w.ByteLen()])
	if err != nil {
		panic(err)
	}
	return v
}
