//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package dcf

import (
	"fmt"

	"github.com/xymeng16/dcf/group"
	"github.com/xymeng16/dcf/prg"
)

// Eval evaluates the key at the point x and returns this party's
// output share. The reconstruction convention is fixed:
//
//	Eval(key0, x) - Eval(key1, x) ≡ f(x) (mod 2^m)
//
// Eval is a pure function of (key, x): it performs no I/O, never
// mutates the key, and is safe to call concurrently against the same
// key. It fails only on malformed input: x of the wrong length or an
// expander mismatching the key's parameters.
func Eval(key *Key, x group.Elem, g prg.Expander) (group.Value, error) {
	if err := key.validate(g); err != nil {
		return group.Value{}, err
	}
	if len(x) != group.ElemBytes(key.Params.Bits) {
		return group.Value{}, fmt.Errorf(
			"%w: point is %d bytes, domain needs %d",
			ErrInvalidParameter, len(x), group.ElemBytes(key.Params.Bits))
	}

	var e prg.Expansion
	return evalPoint(key, x, g, &e), nil
}

// evalPoint walks the tree for a validated point, reusing the
// expansion scratch e across levels.
func evalPoint(key *Key, x group.Elem, g prg.Expander, e *prg.Expansion) group.Value {
	w := key.Params.Width

	seed := append([]byte(nil), key.Seed...)
	t := key.Party

	var out group.Value
	for i := 0; i < key.Params.Bits; i++ {
		g.Expand(seed, e)
		cw := &key.CW[i]

		// Child selected by x_i: 0 descends left, 1 right. The
		// output term uses the child seed before correction.
		var taken []byte
		var takenT byte
		if x.Bit(i) == 0 {
			taken = e.SL
			takenT = e.TL ^ (t & cw.TL)
		} else {
			taken = e.SR
			takenT = e.TR ^ (t & cw.TR)
		}

		term := g.Convert(taken, w)
		if t == 1 {
			term = w.Add(term, cw.V)
		}
		out = w.Add(out, term)

		// Adopt the corrected child state.
		seed = append(seed[:0], taken...)
		if t == 1 {
			for j := range seed {
				seed[j] ^= cw.Seed[j]
			}
		}
		t = takenT
	}

	// Terminal node: the final correction applies under the last
	// control bit.
	fin := g.Convert(seed, w)
	if t == 1 {
		fin = w.Add(fin, key.FinalCW)
	}
	return w.Add(out, fin)
}

// BatchEval evaluates the key at every point of xs in order. The
// result is elementwise identical to calling Eval on each point; the
// key is validated once for the whole batch. For large batches see
// Pool.BatchEval.
func BatchEval(key *Key, xs []group.Elem, g prg.Expander) ([]group.Value, error) {
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

	out := make([]group.Value, len(xs))
	var e prg.Expansion
	for i, x := range xs {
		out[i] = evalPoint(key, x, g, &e)
	}
	return out, nil
}
