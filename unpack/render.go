// render.go: turns a resolved Record into a formatted output line.
// Text formatting is explicitly named as an external collaborator in
// spec.md §1; fasttemplate fills that role here.
//
// Copyright (c) 2025 The binlog Authors
// SPDX-License-Identifier: MPL-2.0
package unpack

import (
	"io"
	"strconv"
	"strings"

	"github.com/valyala/fasttemplate"
	"github.com/nanolog-go/binlog"
)

// Render formats rec's schema-format string against its resolved
// values. Placeholders are the bare "{}" markers spec.md's scenarios
// use; each occurrence consumes the next value in positional order.
// fasttemplate parses named tags, so each "{}" is rewritten to a
// unique "{argN}" before execution.
func Render(rec Record) string {
	format := rewritePlaceholders(rec.Schema.Format)
	t, err := fasttemplate.NewTemplate(format, "{", "}")
	if err != nil {
		return rec.Schema.Format
	}

	i := 0
	return t.ExecuteFuncString(func(w io.Writer, tag string) (int, error) {
		_ = tag
		if i >= len(rec.Values) {
			return 0, nil
		}
		s := displayValue(rec.Values[i])
		i++
		return w.Write([]byte(s))
	})
}

// rewritePlaceholders turns every bare "{}" into a distinct "{argN}"
// tag so fasttemplate can walk them in order.
func rewritePlaceholders(format string) string {
	var sb strings.Builder
	n := 0
	for i := 0; i < len(format); i++ {
		if format[i] == '{' && i+1 < len(format) && format[i+1] == '}' {
			sb.WriteByte('{')
			sb.WriteString("arg")
			sb.WriteString(strconv.Itoa(n))
			sb.WriteByte('}')
			n++
			i++
			continue
		}
		sb.WriteByte(format[i])
	}
	return sb.String()
}

// displayValue renders a's value the way the decoder's CLI output
// expects: plain decimal for integers, Go's shortest round-trip
// representation for floats, raw bytes for strings/chars.
func displayValue(a binlog.Arg) string {
	switch a.Kind {
	case binlog.KindBool:
		return strconv.FormatBool(a.Bool())
	case binlog.KindChar:
		return string([]byte{a.Char()})
	case binlog.KindU8, binlog.KindU16, binlog.KindU32, binlog.KindU64:
		return strconv.FormatUint(a.Uint(), 10)
	case binlog.KindI8, binlog.KindI16, binlog.KindI32, binlog.KindI64:
		return strconv.FormatInt(a.Int(), 10)
	case binlog.KindF32:
		return strconv.FormatFloat(float64(a.Float32()), 'g', -1, 32)
	case binlog.KindF64:
		return strconv.FormatFloat(a.Float64(), 'g', -1, 64)
	case binlog.KindString:
		return a.String()
	default:
		return ""
	}
}
