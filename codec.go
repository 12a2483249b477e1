//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package dcf

import (
	"encoding/binary"
	"fmt"

	"github.com/xymeng16/dcf/group"
)

// FormatVersion is the binary key encoding version.
const FormatVersion = 1

// headerLen is the fixed encoding header: version u8, lambda u16,
// domain bits u16, width u8, party u8.
const headerLen = 7

// EncodedLen returns the byte length of an encoded key with the given
// parameters. The length depends only on (λ, n, m), never on the
// function the key shares.
func EncodedLen(p Params) int {
	seedBytes := p.SeedBytes()
	valBytes := p.Width.ByteLen()
	return headerLen + seedBytes + p.Bits*(seedBytes+1+valBytes) + valBytes
}

// Marshal encodes the key into the fixed binary layout: header,
// initial seed, one record per correction word (seed correction,
// packed control bits, output correction), final correction. All
// multi-byte fields are little-endian.
func (k *Key) Marshal() ([]byte, error) {
	if err := k.Params.Validate(); err != nil {
		return nil, err
	}
	if k.Party > 1 {
		return nil, fmt.Errorf("%w: party %d", ErrInvalidParameter, k.Party)
	}
	seedBytes := k.Params.SeedBytes()
	if len(k.Seed) != seedBytes || len(k.CW) != k.Params.Bits {
		return nil, fmt.Errorf("%w: inconsistent key", ErrInvalidParameter)
	}
	w := k.Params.Width

	buf := make([]byte, 0, EncodedLen(k.Params))
	buf = append(buf, FormatVersion)
	buf = binary.LittleEndian.AppendUint16(buf, uint16(k.Params.Lambda))
	buf = binary.LittleEndian.AppendUint16(buf, uint16(k.Params.Bits))
	buf = append(buf, byte(k.Params.Width), k.Party)

	buf = append(buf, k.Seed...)
	for _, cw := range k.CW {
		if len(cw.Seed) != seedBytes {
			return nil, fmt.Errorf("%w: inconsistent key", ErrInvalidParameter)
		}
		buf = append(buf, cw.Seed...)
		buf = append(buf, cw.TL|cw.TR<<1)
		buf = append(buf, w.Bytes(cw.V)...)
	}
	buf = append(buf, w.Bytes(k.FinalCW)...)

	return buf, nil
}

// Unmarshal decodes a key from the binary layout. The declared
// parameters are validated against the buffer length before any field
// content is interpreted; truncation, trailing bytes, and header
// mismatches yield ErrDecode.
func Unmarshal(data []byte) (*Key, error) {
	if len(data) < headerLen {
		return nil, fmt.Errorf("%w: %d bytes, header needs %d",
			ErrDecode, len(data), headerLen)
	}
	if data[0] != FormatVersion {
		return nil, fmt.Errorf("%w: version %d, expected %d",
			ErrDecode, data[0], FormatVersion)
	}
	params := Params{
		Lambda: int(binary.LittleEndian.Uint16(data[1:3])),
		Bits:   int(binary.LittleEndian.Uint16(data[3:5])),
		Width:  group.Width(data[5]),
	}
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	party := data[6]
	if party > 1 {
		return nil, fmt.Errorf("%w: party %d", ErrDecode, party)
	}
	if len(data) != EncodedLen(params) {
		return nil, fmt.Errorf("%w: %d bytes, %v needs %d",
			ErrDecode, len(data), params, EncodedLen(params))
	}

	seedBytes := params.SeedBytes()
	w := params.Width
	valBytes := w.ByteLen()
	pos := headerLen

	key := &Key{
		Party:  party,
		Params: params,
		Seed:   append([]byte(nil), data[pos:pos+seedBytes]...),
		CW:     make([]CorrectionWord, params.Bits),
	}
	pos += seedBytes

	for i := range key.CW {
		cw := &key.CW[i]
		cw.Seed = append([]byte(nil), data[pos:pos+seedBytes]...)
		pos += seedBytes

		bits := data[pos]
		pos++
		if bits > 3 {
			return nil, fmt.Errorf("%w: correction bits %#x", ErrDecode, bits)
		}
		cw.TL = bits & 1
		cw.TR = bits >> 1

		v, err := w.SetBytes(data[pos : pos+valBytes])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecode, err)
		}
		cw.V = v
		pos += valBytes
	}

	v, err := w.SetBytes(data[pos : pos+valBytes])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	key.FinalCW = v

	return key, nil
}
