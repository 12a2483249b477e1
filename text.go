//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package dcf

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/xymeng16/dcf/group"
)

// textMagic is the first line of the textual key form.
const textMagic = "dcf key v1"

// MarshalText encodes the key into a line-oriented textual form for
// test fixtures and debugging. The binary Marshal is the
// interchange format; the textual form carries the same fields and
// round-trips bit-exactly, but is not meant for the performance path.
func (k *Key) MarshalText() ([]byte, error) {
	if err := k.Params.Validate(); err != nil {
		return nil, err
	}
	w := k.Params.Width

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n", textMagic)
	fmt.Fprintf(&sb, "party %d\n", k.Party)
	fmt.Fprintf(&sb, "lambda %d\n", k.Params.Lambda)
	fmt.Fprintf(&sb, "bits %d\n", k.Params.Bits)
	fmt.Fprintf(&sb, "width %d\n", k.Params.Width)
	fmt.Fprintf(&sb, "seed %x\n", k.Seed)
	for _, cw := range k.CW {
		fmt.Fprintf(&sb, "cw %x %d %d %x\n",
			cw.Seed, cw.TL, cw.TR, w.Bytes(cw.V))
	}
	fmt.Fprintf(&sb, "final %x\n", w.Bytes(k.FinalCW))

	return []byte(sb.String()), nil
}

// UnmarshalText decodes the textual key form.
func (k *Key) UnmarshalText(data []byte) error {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)

	if !scanner.Scan() || scanner.Text() != textMagic {
		return fmt.Errorf("%w: missing %q header", ErrDecode, textMagic)
	}

	var key Key
	fields := map[string]string{}
	for _, name := range []string{"party", "lambda", "bits", "width"} {
		if !scanner.Scan() {
			return fmt.Errorf("%w: truncated header", ErrDecode)
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) != 2 || parts[0] != name {
			return fmt.Errorf("%w: expected %q line, got %q",
				ErrDecode, name, scanner.Text())
		}
		fields[name] = parts[1]
	}

	party, err := strconv.ParseUint(fields["party"], 10, 8)
	if err != nil || party > 1 {
		return fmt.Errorf("%w: party %q", ErrDecode, fields["party"])
	}
	key.Party = uint8(party)

	lambda, err := strconv.Atoi(fields["lambda"])
	if err != nil {
		return fmt.Errorf("%w: lambda %q", ErrDecode, fields["lambda"])
	}
	bits, err := strconv.Atoi(fields["bits"])
	if err != nil {
		return fmt.Errorf("%w: bits %q", ErrDecode, fields["bits"])
	}
	width, err := strconv.ParseUint(fields["width"], 10, 16)
	if err != nil {
		return fmt.Errorf("%w: width %q", ErrDecode, fields["width"])
	}
	key.Params = Params{
		Lambda: lambda,
		Bits:   bits,
		Width:  group.Width(width),
	}
	if err := key.Params.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	w := key.Params.Width
	seedBytes := key.Params.SeedBytes()

	if !scanner.Scan() {
		return fmt.Errorf("%w: truncated at seed", ErrDecode)
	}
	parts := strings.Fields(scanner.Text())
	if len(parts) != 2 || parts[0] != "seed" {
		return fmt.Errorf("%w: expected seed line, got %q",
			ErrDecode, scanner.Text())
	}
	key.Seed, err = decodeHex(parts[1], seedBytes)
	if err != nil {
		return err
	}

	key.CW = make([]CorrectionWord, key.Params.Bits)
	for i := range key.CW {
		if !scanner.Scan() {
			return fmt.Errorf("%w: truncated at correction word %d",
				ErrDecode, i)
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) != 5 || parts[0] != "cw" {
			return fmt.Errorf("%w: expected cw line, got %q",
				ErrDecode, scanner.Text())
		}
		cw := &key.CW[i]
		cw.Seed, err = decodeHex(parts[1], seedBytes)
		if err != nil {
			return err
		}
		cw.TL, err = decodeBit(parts[2])
		if err != nil {
			return err
		}
		cw.TR, err = decodeBit(parts[3])
		if err != nil {
			return err
		}
		val, err := decodeHex(parts[4], w.ByteLen())
		if err != nil {
			return err
		}
		cw.V, _ = w.SetBytes(val)
	}

	if !scanner.Scan() {
		return fmt.Errorf("%w: truncated at final correction", ErrDecode)
	}
	parts = strings.Fields(scanner.Text())
	if len(parts) != 2 || parts[0] != "final" {
		return fmt.Errorf("%w: expected final line, got %q",
			ErrDecode, scanner.Text())
	}
	val, err := decodeHex(parts[1], w.ByteLen())
	if err != nil {
		return err
	}
	key.FinalCW, _ = w.SetBytes(val)

	if scanner.Scan() && len(strings.TrimSpace(scanner.Text())) > 0 {
		return fmt.Errorf("%w: trailing data %q", ErrDecode, scanner.Text())
	}

	*k = key
	return nil
}

func decodeHex(s string, length int) ([]byte, error) {
	data, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: bad hex %q", ErrDecode, s)
	}
	if len(data) != length {
		return nil, fmt.Errorf("%w: %d hex bytes, expected %d",
			ErrDecode, len(data), length)
	}
	return data, nil
}

func decodeBit(s string) (byte, error) {
	switch s {
	case "0":
		return 0, nil
	case "1":
		return 1, nil
	}
	return 0, fmt.Errorf("%w: bad bit %q", ErrDecode, s)
}
