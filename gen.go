//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package dcf

import (
	"fmt"
	"io"

	"github.com/xymeng16/dcf/group"
	"github.com/xymeng16/dcf/prg"
)

// Gen generates a key pair for the comparison function f(x) = β if
// x < α, else 0. The threshold α must have exactly params.Bits bits;
// β is reduced to params.Width. The initial seeds are read from rnd,
// the caller's entropy source (crypto/rand.Reader in production); a
// failing read fails the call with ErrRandomness and is never
// retried here. The expander g must match params.Lambda.
//
// The construction walks the α path of the evaluation tree level by
// level. At each level the branch diverging from α is "lost": its
// seed correction forces the two parties' lost-branch states to
// coincide, so every subtree off the α path evaluates to equal shares
// that cancel under reconstruction. The output correction carries the
// β mass of the lost subtrees that lie below α, telescoped through
// the running accumulator so the per-path sums come out to β exactly
// for x < α and to 0 otherwise. The final correction cancels the
// residual x == α term.
func Gen(params Params, alpha group.Elem, beta group.Value,
	g prg.Expander, rnd io.Reader) (*Key, *Key, error) {

	if err := params.Validate(); err != nil {
		return nil, nil, err
	}
	if g.SeedBytes()*8 != params.Lambda {
		return nil, nil, fmt.Errorf("%w: expander seed length %d, lambda %d",
			ErrInvalidParameter, g.SeedBytes()*8, params.Lambda)
	}
	if len(alpha) != group.ElemBytes(params.Bits) {
		return nil, nil, fmt.Errorf("%w: alpha is %d bytes, domain needs %d",
			ErrInvalidParameter, len(alpha), group.ElemBytes(params.Bits))
	}
	w := params.Width
	beta = w.Reduce(beta)

	seedBytes := params.SeedBytes()
	init0 := make([]byte, seedBytes)
	init1 := make([]byte, seedBytes)
	if _, err := io.ReadFull(rnd, init0); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrRandomness, err)
	}
	if _, err := io.ReadFull(rnd, init1); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrRandomness, err)
	}

	// Per-party walk state: current seed and control bit. The
	// control bits start complementary; the convention is fixed and
	// mirrored by Eval.
	s0 := append([]byte(nil), init0...)
	s1 := append([]byte(nil), init1...)
	var t0, t1 byte = 0, 1

	// Running α-path output accumulator.
	var va group.Value

	cws := make([]CorrectionWord, params.Bits)

	var e0, e1 prg.Expansion
	for i := 0; i < params.Bits; i++ {
		g.Expand(s0, &e0)
		g.Expand(s1, &e1)

		// The α_i child continues the α path; the other child is
		// resolved at this level.
		var keep0, keep1, lose0, lose1 []byte
		var keepT0, keepT1 byte
		ai := alpha.Bit(i)
		if ai == 0 {
			keep0, keep1 = e0.SL, e1.SL
			lose0, lose1 = e0.SR, e1.SR
			keepT0, keepT1 = e0.TL, e1.TL
		} else {
			keep0, keep1 = e0.SR, e1.SR
			lose0, lose1 = e0.SL, e1.SL
			keepT0, keepT1 = e0.TR, e1.TR
		}

		// Seed correction: XOR of the lost-branch child seeds, so
		// that the corrected lost-branch states coincide.
		scw := make([]byte, seedBytes)
		for j := range scw {
			scw[j] = lose0[j] ^ lose1[j]
		}

		// Output correction. The lost subtree holds values below α
		// exactly when it is the left child (α_i == 1); only then it
		// contributes the β mass.
		vcw := w.Sub(w.Sub(g.Convert(lose1, w), g.Convert(lose0, w)), va)
		if ai == 1 {
			vcw = w.Add(vcw, beta)
		}
		if t1 == 1 {
			vcw = w.Neg(vcw)
		}

		// Telescope the kept branch into the accumulator.
		va = w.Add(w.Sub(va, g.Convert(keep1, w)), g.Convert(keep0, w))
		if t1 == 1 {
			va = w.Sub(va, vcw)
		} else {
			va = w.Add(va, vcw)
		}

		tlcw := e0.TL ^ e1.TL ^ ai ^ 1
		trcw := e0.TR ^ e1.TR ^ ai

		cws[i] = CorrectionWord{
			Seed: scw,
			TL:   tlcw,
			TR:   trcw,
			V:    vcw,
		}

		tcw := tlcw
		if ai == 1 {
			tcw = trcw
		}

		// Descend along the kept branch, applying the correction
		// conditioned on each party's control bit.
		next0 := append([]byte(nil), keep0...)
		if t0 == 1 {
			for j := range next0 {
				next0[j] ^= scw[j]
			}
		}
		next1 := append([]byte(nil), keep1...)
		if t1 == 1 {
			for j := range next1 {
				next1[j] ^= scw[j]
			}
		}
		s0, s1 = next0, next1
		t0, t1 = keepT0^(t0&tcw), keepT1^(t1&tcw)
	}

	// Final correction: cancels the leftover α-path term so that
	// x == α reconstructs to 0.
	fcw := w.Sub(w.Sub(g.Convert(s1, w), g.Convert(s0, w)), va)
	if t1 == 1 {
		fcw = w.Neg(fcw)
	}

	key0 := &Key{
		Party:   0,
		Params:  params,
		Seed:    init0,
		CW:      cws,
		FinalCW: fcw,
	}
	key1 := &Key{
		Party:   1,
		Params:  params,
		Seed:    init1,
		CW:      copyCWs(cws),
		FinalCW: fcw,
	}
	return key0, key1, nil
}

// copyCWs deep-copies a correction word sequence so the two keys of a
// pair share no buffers.
func copyCWs(cws []CorrectionWord) []CorrectionWord {
	out := make([]CorrectionWord, len(cws))
	for i, cw := range cws {
		out[i] = CorrectionWord{
			Seed: append([]byte(nil), cw.Seed...),
			TL:   cw.TL,
			TR:   cw.TR,
			V:    cw.V,
		}
	}
	return out
}
