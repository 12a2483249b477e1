//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package dcf implements a two-party distributed comparison function
// (DCF): key generation and evaluation for the function f(x) = β if
// x < α, else 0, over an n-bit domain with outputs in Z/2^m. Gen
// splits f into two keys; each key alone is pseudorandom, and the
// difference of the two parties' evaluations at any point x
// reconstructs f(x):
//
//	Eval(key0, x) - Eval(key1, x) ≡ f(x) (mod 2^m)
//
// Keys are immutable after generation and safe for concurrent
// evaluation.
package dcf

import (
	"errors"

	"github.com/xymeng16/dcf/group"
)

// Error sentinels. All package errors wrap one of these.
var (
	// ErrInvalidParameter is returned for parameter violations: α or
	// x of the wrong bit length, unsupported output width, or a seed
	// length below the minimum.
	ErrInvalidParameter = errors.New("dcf: invalid parameter")

	// ErrRandomness is returned when the entropy source cannot
	// supply the initial seeds during key generation.
	ErrRandomness = errors.New("dcf: randomness failure")

	// ErrDecode is returned for malformed key encodings.
	ErrDecode = errors.New("dcf: malformed key encoding")

	// ErrUnsupported is returned for requested widths or domain
	// sizes outside the supported range.
	ErrUnsupported = errors.New("dcf: unsupported")
)

// MaxBits is the largest supported domain bit width. The limit comes
// from the 16-bit domain size field of the binary key encoding.
const MaxBits = 1<<16 - 1

// Combine reconstructs the function output from the two parties'
// shares: share0 - share1 mod 2^m. It is the trivial final step run
// by whoever sees both evaluation results.
func Combine(w group.Width, share0, share1 group.Value) group.Value {
	return w.Sub(share0, share1)
}
