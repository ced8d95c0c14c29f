// arg.go: Arg is the single runtime representation of one positional
// logged value, type-directed by its ArgKind.
//
// Copyright (c) 2025 The binlog Authors
// SPDX-License-Identifier: MPL-2.0
package binlog

import (
	"encoding/binary"
	"io"
	"math"
)

// maxStringLen is the largest string payload binlog can encode: the
// length prefix is a u16, so 65535 bytes is the hard ceiling.
const maxStringLen = 1<<16 - 1

// Arg is one positional argument to a call site. It carries its own
// ArgKind and constant-ness so the Packer never needs a side schema
// lookup to know how to encode it.
//
// Construct Arg values with the Bool/Char/U8.../Str family below, and
// wrap any of them in Const to mark them as schema-resident constants
// per the format spec's ConstantMarker.
type Arg struct {
	Kind     ArgKind
	Constant bool
	bits     uint64
	str      string
}

// Const marks a, recording its value once in the call site's schema
// instead of writing it to LOG on every call.
func Const(a Arg) Arg {
	a.Constant = true
	return a
}

// Bool builds a bool argument.
func Bool(v bool) Arg {
	var b uint64
	if v {
		b = 1
	}
	return Arg{Kind: KindBool, bits: b}
}

// Char builds a single-byte char argument.
func Char(v byte) Arg { return Arg{Kind: KindChar, bits: uint64(v)} }

// U8 builds an unsigned 8-bit argument.
func U8(v uint8) Arg { return Arg{Kind: KindU8, bits: uint64(v)} }

// U16 builds an unsigned 16-bit argument.
func U16(v uint16) Arg { return Arg{Kind: KindU16, bits: uint64(v)} }

// U32 builds an unsigned 32-bit argument.
func U32(v uint32) Arg { return Arg{Kind: KindU32, bits: uint64(v)} }

// U64 builds an unsigned 64-bit argument.
func U64(v uint64) Arg { return Arg{Kind: KindU64, bits: v} }

// I8 builds a signed 8-bit argument.
func I8(v int8) Arg { return Arg{Kind: KindI8, bits: uint64(uint8(v))} }

// I16 builds a signed 16-bit argument.
func I16(v int16) Arg { return Arg{Kind: KindI16, bits: uint64(uint16(v))} }

// I32 builds a signed 32-bit argument.
func I32(v int32) Arg { return Arg{Kind: KindI32, bits: uint64(uint32(v))} }

// I64 builds a signed 64-bit argument.
func I64(v int64) Arg { return Arg{Kind: KindI64, bits: uint64(v)} }

// F32 builds a 32-bit float argument, preserving the exact IEEE-754 bit
// pattern end to end.
func F32(v float32) Arg { return Arg{Kind: KindF32, bits: uint64(math.Float32bits(v))} }

// F64 builds a 64-bit float argument, preserving the exact IEEE-754 bit
// pattern end to end.
func F64(v float64) Arg { return Arg{Kind: KindF64, bits: math.Float64bits(v)} }

// Str builds a string argument. Strings longer than 65535 bytes are
// rejected at encode time with ErrCodeUnsupportedArg, per the format
// spec's boundary behavior.
func Str(v string) Arg { return Arg{Kind: KindString, str: v} }

// Bool returns the decoded bool value. Valid only for KindBool.
func (a Arg) Bool() bool { return a.bits != 0 }

// Char returns the decoded byte value. Valid only for KindChar.
func (a Arg) Char() byte { return byte(a.bits) }

// Uint returns the decoded value widened to uint64, for any unsigned
// or bool/char kind.
func (a Arg) Uint() uint64 { return a.bits }

// Int returns the decoded value as the correctly sign-extended int64,
// for any signed kind.
func (a Arg) Int() int64 {
	switch a.Kind {
	case KindI8:
		return int64(int8(a.bits))
	case KindI16:
		return int64(int16(a.bits))
	case KindI32:
		return int64(int32(a.bits))
	default:
		return int64(a.bits)
	}
}

// Float32 returns the decoded 32-bit float value. Valid only for KindF32.
func (a Arg) Float32() float32 { return math.Float32frombits(uint32(a.bits)) }

// Float64 returns the decoded 64-bit float value. Valid only for KindF64.
func (a Arg) Float64() float64 { return math.Float64frombits(a.bits) }

// String returns the decoded string value. Valid only for KindString.
func (a Arg) String() string { return a.str }

// appendTo encodes a's value (not its constant flag) onto dst per the
// wire format's §6.3 value encodings and returns the extended slice.
func (a Arg) appendTo(dst []byte) ([]byte, error) {
	switch a.Kind {
	case KindBool, KindChar, KindU8, KindI8:
		return append(dst, byte(a.bits)), nil
	case KindU16, KindI16:
		return binary.LittleEndian.AppendUint16(dst, uint16(a.bits)), nil
	case KindU32, KindI32, KindF32:
		return binary.LittleEndian.AppendUint32(dst, uint32(a.bits)), nil
	case KindU64, KindI64, KindF64:
		return binary.LittleEndian.AppendUint64(dst, a.bits), nil
	case KindString:
		if len(a.str) > maxStringLen {
			return nil, newUnsupportedArgError("string exceeds 65535 bytes")
		}
		dst = binary.LittleEndian.AppendUint16(dst, uint16(len(a.str)))
		return append(dst, a.str...), nil
	default:
		return nil, newUnsupportedArgError("unknown ArgKind")
	}
}

// DecodeArg reads one value of kind from r per §6.3 and returns the
// resulting Arg. It reports ErrCodeTruncated if r runs out of bytes
// mid-value.
func DecodeArg(kind ArgKind, r io.Reader) (Arg, error) {
	if kind == KindString {
		var lenBuf [2]byte
		if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
			return Arg{}, wrapReadError(err)
		}
		n := binary.LittleEndian.Uint16(lenBuf[:])
		buf := make([]byte, n)
		if n > 0 {
			if _, err := io.ReadFull(r, buf); err != nil {
				return Arg{}, wrapReadError(err)
			}
		}
		return Str(string(buf)), nil
	}

	width, ok := kind.FixedWidth()
	if !ok {
		return Arg{}, newUnsupportedArgError("unknown ArgKind")
	}
	buf := make([]byte, width)
	if _, err := io.ReadFull(r, buf); err != nil {
		return Arg{}, wrapReadError(err)
	}

	var bits uint64
	switch width {
	case 1:
		bits = uint64(buf[0])
	case 2:
		bits = uint64(binary.LittleEndian.Uint16(buf))
	case 4:
		bits = uint64(binary.LittleEndian.Uint32(buf))
	case 8:
		bits = binary.LittleEndian.Uint64(buf)
	}
	return Arg{Kind: kind, bits: bits}, nil
}

// wrapReadError normalizes an io.Reader error mid-value into the
// decoder's Truncated FormatError, with the stream left empty and the
// offset set to -1.
func wrapReadError(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return newTruncatedError("", -1)
	}
	return newIOError(err, "")
}
