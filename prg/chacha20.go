//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package prg

import (
	"fmt"

	"golang.org/x/crypto/chacha20"

	"github.com/xymeng16/dcf/group"
)

// Fixed public nonces separating the ChaCha20 expansion and
// conversion streams.
var (
	chachaExpandNonce  = [chacha20.NonceSize]byte{'d', 'c', 'f', ':', 'e', 'x', 'p', 0, 0, 0, 0, 0}
	chachaConvertNonce = [chacha20.NonceSize]byte{'d', 'c', 'f', ':', 'c', 'n', 'v', 0, 0, 0, 0, 0}
)

// ChaCha20 is an alternate production expander over the ChaCha20
// stream cipher keyed by the seed. Seeds shorter than the 256-bit
// ChaCha20 key are repeated to fill it.
type ChaCha20 struct {
	seedBytes int
}

// NewChaCha20 creates a ChaCha20 expander for λ-bit seeds.
func NewChaCha20(lambda int) (*ChaCha20, error) {
	if lambda < MinLambda || lambda > 256 || lambda%8 != 0 {
		return nil, fmt.Errorf(
			"prg: ChaCha20 expander needs lambda 128-256 in byte steps, got %d",
			lambda)
	}
	return &ChaCha20{
		seedBytes: lambda / 8,
	}, nil
}

// SeedBytes implements Expander.SeedBytes.
func (g *ChaCha20) SeedBytes() int {
	return g.seedBytes
}

func (g *ChaCha20) key(seed []byte) []byte {
	key := make([]byte, chacha20.KeySize)
	for i := range key {
		key[i] = seed[i%len(seed)]
	}
	return key
}

// Expand implements Expander.Expand.
func (g *ChaCha20) Expand(seed []byte, e *Expansion) {
	c, err := chacha20.NewUnauthenticatedCipher(g.key(seed), chachaExpandNonce[:])
	if err != nil {
		panic(err)
	}
	buf := e.scratch(g.seedBytes)
	c.XORKeyStream(buf, buf)
	e.setBits(buf)
}

// Convert implements Expander.Convert.
func (g *ChaCha20) Convert(seed []byte, w group.Width) group.Value {
	c, err := chacha20.NewUnauthenticatedCipher(g.key(seed), chachaConvertNonce[:])
	if err != nil {
		panic(err)
	}
	var out [16]byte
	c.XORKeyStream(out[:], out[:])
	v, err := w.SetBytes(out[:w.ByteLen()])
	if err != nil {
		panic(err)
	}
	return v
}
