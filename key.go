//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package dcf

import (
	"bytes"
	"fmt"

	"github.com/xymeng16/dcf/group"
	"github.com/xymeng16/dcf/prg"
)

// Params fixes the scheme parameters: seed length λ in bits, domain
// width n in bits, and output group width m.
type Params struct {
	// Lambda is the seed security parameter in bits.
	Lambda int

	// Bits is the domain bit width n.
	Bits int

	// Width is the output group width m.
	Width group.Width
}

// Validate checks the parameters.
func (p Params) Validate() error {
	if p.Lambda < prg.MinLambda || p.Lambda%8 != 0 {
		return fmt.Errorf("%w: lambda %d", ErrInvalidParameter, p.Lambda)
	}
	if p.Bits < 1 || p.Bits > MaxBits {
		return fmt.Errorf("%w: domain bits %d", ErrUnsupported, p.Bits)
	}
	if !p.Width.Valid() {
		return fmt.Errorf("%w: width %d", ErrUnsupported, p.Width)
	}
	return nil
}

// SeedBytes returns the seed length in bytes.
func (p Params) SeedBytes() int {
	return p.Lambda / 8
}

func (p Params) String() string {
	return fmt.Sprintf("λ=%d, n=%d, m=%d", p.Lambda, p.Bits, p.Width)
}

// CorrectionWord is the public per-level correction data, identical
// in both keys. Seed and the TL/TR bits are applied to a party's
// child seeds and control bits when its current control bit is set; V
// is accumulated into the output share.
type CorrectionWord struct {
	Seed []byte
	TL   byte
	TR   byte
	V    group.Value
}

// Key is one party's share of the comparison function. A key is
// created by Gen, is read-only afterwards, and is safe for concurrent
// use by Eval and BatchEval. Only Party and Seed differ between the
// two keys of a pair; CW and FinalCW are public and identical.
type Key struct {
	Party   uint8
	Params  Params
	Seed    []byte
	CW      []CorrectionWord
	FinalCW group.Value
}

// validate checks the key's internal consistency and its match with
// the expander g.
func (k *Key) validate(g prg.Expander) error {
	if k.Party > 1 {
		return fmt.Errorf("%w: party %d", ErrInvalidParameter, k.Party)
	}
	if err := k.Params.Validate(); err != nil {
		return err
	}
	if len(k.Seed) != k.Params.SeedBytes() {
		return fmt.Errorf("%w: seed length %d, expected %d",
			ErrInvalidParameter, len(k.Seed), k.Params.SeedBytes())
	}
	if len(k.CW) != k.Params.Bits {
		return fmt.Errorf("%w: %d correction words for %d domain bits",
			ErrInvalidParameter, len(k.CW), k.Params.Bits)
	}
	if g.SeedBytes() != k.Params.SeedBytes() {
		return fmt.Errorf("%w: expander seed length %d, key lambda %d",
			ErrInvalidParameter, g.SeedBytes()*8, k.Params.Lambda)
	}
	return nil
}

// Equal tests if the keys are bit-for-bit equal.
func (k *Key) Equal(o *Key) bool {
	if k.Party != o.Party || k.Params != o.Params {
		return false
	}
	if !bytes.Equal(k.Seed, o.Seed) {
		return false
	}
	if len(k.CW) != len(o.CW) {
		return false
	}
	for i, cw := range k.CW {
		ocw := o.CW[i]
		if !bytes.Equal(cw.Seed, ocw.Seed) || cw.TL != ocw.TL ||
			cw.TR != ocw.TR || !cw.V.Equal(ocw.V) {
			return false
		}
	}
	return k.FinalCW.Equal(o.FinalCW)
}

func (k *Key) String() string {
	return fmt.Sprintf("dcf.Key{party=%d, %s}", k.Party, k.Params)
}
