//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package prg

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	"github.com/xymeng16/dcf/group"
)

// Fixed public scheme constants. The expansion and conversion streams
// run AES-CTR keyed by the seed over these initial counter blocks;
// the distinct tags keep the two streams disjoint. The constants are
// public: security reduces to the pseudorandomness of AES keyed by
// the secret seed.
var (
	aesExpandIV  = [16]byte{'d', 'c', 'f', ':', 'e', 'x', 'p', 'a', 'n', 'd', 0, 0, 0, 0, 0, 0}
	aesConvertIV = [16]byte{'d', 'c', 'f', ':', 'c', 'o', 'n', 'v', 'e', 'r', 't', 0, 0, 0, 0, 0}
)

// AES is the production expander: AES in counter mode, keyed by the
// seed, chaining as many blocks as the output needs. The seed lengths
// 128, 192, and 256 bits map onto the AES key sizes.
type AES struct {
	seedBytes int
}

// NewAES creates an AES expander for λ-bit seeds.
func NewAES(lambda int) (*AES, error) {
	switch lambda {
	case 128, 192, 256:
	default:
		return nil, fmt.Errorf(
			"prg: AES expander needs lambda 128, 192, or 256, got %d",
			lambda)
	}
	return &AES{
		seedBytes: lambda / 8,
	}, nil
}

// SeedBytes implements Expander.SeedBytes.
func (g *AES) SeedBytes() int {
	return g.seedBytes
}

// Expand implements Expander.Expand.
func (g *AES) Expand(seed []byte, e *Expansion) {
	block, err := aes.NewCipher(seed)
	if err != nil {
		// The seed length is enforced by the SeedBytes contract.
		panic(err)
	}
	buf := e.scratch(g.seedBytes)
	cipher.NewCTR(block, aesExpandIV[:]).XORKeyStream(buf, buf)
	e.setBits(buf)
}

// Convert implements Expander.Convert.
func (g *AES) Convert(seed []byte, w group.Width) group.Value {
	block, err := aes.NewCipher(seed)
	if err != nil {
		panic(err)
	}
	var out [16]byte
	cipher.NewCTR(block, aesConvertIV[:]).XORKeyStream(out[:], out[:])
	v, err := w.SetBytes(out[:w.ByteLen()])
	if err != nil {
		panic(err)
	}
	return v
}
