//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package prg

import (
	"bytes"
	"testing"

	"github.com/xymeng16/dcf/group"
)

func expanders(t *testing.T, lambda int) map[string]Expander {
	t.Helper()
	result := make(map[string]Expander)

	aes, err := NewAES(lambda)
	if err == nil {
		result["aes"] = aes
	} else if lambda == 128 || lambda == 192 || lambda == 256 {
		t.Fatalf("NewAES(%d): %v", lambda, err)
	}

	cc, err := NewChaCha20(lambda)
	if err != nil {
		t.Fatalf("NewChaCha20(%d): %v", lambda, err)
	}
	result["chacha20"] = cc

	ins, err := NewInsecure(lambda)
	if err != nil {
		t.Fatalf("NewInsecure(%d): %v", lambda, err)
	}
	result["insecure"] = ins

	return result
}

func testSeed(n int) []byte {
	seed := make([]byte, n)
	for i := range seed {
		seed[i] = byte(i*37 + 5)
	}
	return seed
}

func TestExpandDeterministic(t *testing.T) {
	for _, lambda := range []int{128, 192, 256} {
		for name, g := range expanders(t, lambda) {
			seed := testSeed(g.SeedBytes())

			var e1, e2 Expansion
			g.Expand(seed, &e1)
			g.Expand(seed, &e2)

			if !bytes.Equal(e1.SL, e2.SL) || !bytes.Equal(e1.SR, e2.SR) ||
				e1.TL != e2.TL || e1.TR != e2.TR {
				t.Errorf("%s-%d: expansion not deterministic", name, lambda)
			}
			if len(e1.SL) != g.SeedBytes() || len(e1.SR) != g.SeedBytes() {
				t.Errorf("%s-%d: child seed length %d/%d",
					name, lambda, len(e1.SL), len(e1.SR))
			}
			if e1.TL > 1 || e1.TR > 1 {
				t.Errorf("%s-%d: control bits %d/%d",
					name, lambda, e1.TL, e1.TR)
			}
			if bytes.Equal(e1.SL, e1.SR) {
				t.Errorf("%s-%d: left and right children equal",
					name, lambda)
			}
		}
	}
}

func TestExpandFreshInstance(t *testing.T) {
	// A new expander with the same parameters must produce the same
	// expansion. No hidden per-instance state.
	seed := testSeed(16)

	g1, err := NewAES(128)
	if err != nil {
		t.Fatal(err)
	}
	g2, err := NewAES(128)
	if err != nil {
		t.Fatal(err)
	}

	var e1, e2 Expansion
	g1.Expand(seed, &e1)
	g2.Expand(seed, &e2)
	if !bytes.Equal(e1.SL, e2.SL) || !bytes.Equal(e1.SR, e2.SR) ||
		e1.TL != e2.TL || e1.TR != e2.TR {
		t.Errorf("instances disagree")
	}
}

func TestExpandSeedDependent(t *testing.T) {
	for name, g := range expanders(t, 128) {
		s1 := testSeed(g.SeedBytes())
		s2 := testSeed(g.SeedBytes())
		s2[0] ^= 1

		var e1, e2 Expansion
		g.Expand(s1, &e1)
		g.Expand(s2, &e2)
		if bytes.Equal(e1.SL, e2.SL) && bytes.Equal(e1.SR, e2.SR) {
			t.Errorf("%s: expansion ignores seed", name)
		}
	}
}

func TestConvertDeterministic(t *testing.T) {
	for name, g := range expanders(t, 128) {
		seed := testSeed(g.SeedBytes())
		for _, w := range []group.Width{8, 16, 32, 64, 128} {
			v1 := g.Convert(seed, w)
			v2 := g.Convert(seed, w)
			if !v1.Equal(v2) {
				t.Errorf("%s-%d: convert not deterministic", name, w)
			}
			if !w.Reduce(v1).Equal(v1) {
				t.Errorf("%s-%d: convert not reduced: %v", name, w, v1)
			}
		}
	}
}

func TestConvertSeparateFromExpand(t *testing.T) {
	// The conversion stream is domain-separated from the expansion
	// stream: the converted value must not be a prefix of the left
	// child seed.
	for name, g := range expanders(t, 128) {
		seed := testSeed(g.SeedBytes())

		var e Expansion
		g.Expand(seed, &e)
		v := g.Convert(seed, 64)

		prefix, err := group.Width(64).SetBytes(e.SL[:8])
		if err != nil {
			t.Fatal(err)
		}
		if v.Equal(prefix) {
			t.Errorf("%s: conversion stream equals expansion stream", name)
		}
	}
}

func TestNewExpanderErrors(t *testing.T) {
	if _, err := NewAES(160); err == nil {
		t.Errorf("NewAES(160) accepted")
	}
	if _, err := NewChaCha20(96); err == nil {
		t.Errorf("NewChaCha20(96) accepted")
	}
	if _, err := NewChaCha20(129); err == nil {
		t.Errorf("NewChaCha20(129) accepted")
	}
	if _, err := NewInsecure(64); err == nil {
		t.Errorf("NewInsecure(64) accepted")
	}
}
