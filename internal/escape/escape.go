// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package escape handles quoting and unquoting of JSON string contents.
package escape

import (
	"errors"
	"fmt"
	"unicode/utf16"
	"unicode/utf8"

	"go4.org/mem"
)

const hexDigits = "0123456789abcdef"

// Quote encodes src for inclusion in a JSON string. Quotation marks,
// backslashes, and control characters are escaped; all other bytes pass
// through unmodified. The enclosing quotation marks are not added.
func Quote(src mem.RO) []byte {
	buf := make([]byte, 0, src.Len())
	for i := 0; i < src.Len(); i++ {
		b := src.At(i)
		switch {
		case b == '"' || b == '\\':
			buf = append(buf, '\\', b)
		case b >= ' ':
			buf = append(buf, b)
		case b == '\b':
			buf = append(buf, '\\', 'b')
		case b == '\f':
			buf = append(buf, '\\', 'f')
		case b == '\n':
			buf = append(buf, '\\', 'n')
		case b == '\r':
			buf = append(buf, '\\', 'r')
		case b == '\t':
			buf = append(buf, '\\', 't')
		default:
			buf = append(buf, '\\', 'u', '0', '0', hexDigits[b>>4], hexDigits[b&15])
		}
	}
	return buf
}

// Unquote decodes the contents of a JSON string, with the enclosing
// quotation marks already removed, replacing escape sequences by their
// unescaped equivalents. Surrogate pairs written as consecutive \u
// escapes are combined; an unpaired surrogate half decodes to U+FFFD.
// Unquote reports an error for an incomplete or invalid escape sequence.
func Unquote(src mem.RO) (string, error) {
	i := mem.IndexByte(src, '\\')
	if i < 0 {
		return src.StringCopy(), nil
	}

	dec := make([]byte, 0, src.Len())
	for {
		dec = mem.Append(dec, src.SliceTo(i))
		src = src.SliceFrom(i + 1)
		if src.Len() == 0 {
			return "", errors.New("incomplete escape sequence")
		}

		b := src.At(0)
		src = src.SliceFrom(1)
		switch b {
		case '"', '\\', '/':
			dec = append(dec, b)
		case 'b':
			dec = append(dec, '\b')
		case 'f':
			dec = append(dec, '\f')
		case 'n':
			dec = append(dec, '\n')
		case 'r':
			dec = append(dec, '\r')
		case 't':
			dec = append(dec, '\t')
		case 'u':
			r, rest, err := decodeHex4(src)
			if err != nil {
				return "", err
			}
			src = rest
			if utf16.IsSurrogate(r) {
				r, src = combineSurrogate(r, src)
			}
			dec = utf8.AppendRune(dec, r)
		default:
			return "", fmt.Errorf("invalid escape %q", string(rune(b)))
		}

		i = mem.IndexByte(src, '\\')
		if i < 0 {
			dec = mem.Append(dec, src)
			break
		}
	}
	return string(dec), nil
}

// combineSurrogate merges the surrogate half r1 with a following \uXXXX
// escape, if one is present and forms a valid pair. It returns the
// decoded rune and the remaining input; without a valid partner the
// result is utf8.RuneError and the input is unchanged.
func combineSurrogate(r1 rune, src mem.RO) (rune, mem.RO) {
	if src.Len() >= 6 && src.At(0) == '\\' && src.At(1) == 'u' {
		r2, rest, err := decodeHex4(src.SliceFrom(2))
		if err == nil {
			if r := utf16.DecodeRune(r1, r2); r != utf8.RuneError {
				return r, rest
			}
		}
	}
	return utf8.RuneError, src
}

// decodeHex4 decodes exactly four hex digits from the front of src.
func decodeHex4(src mem.RO) (rune, mem.RO, error) {
	if src.Len() < 4 {
		return 0, src, errors.New("incomplete Unicode escape")
	}
	var v rune
	for i := 0; i < 4; i++ {
		b := src.At(i)
		v <<= 4
		switch {
		case '0' <= b && b <= '9':
			v += rune(b - '0')
		case 'a' <= b && b <= 'f':
			v += rune(b-'a') + 10
		case 'A' <= b && b <= 'F':
			v += rune(b-'A') + 10
		default:
			return 0, src, fmt.Errorf("invalid hex digit %q", string(rune(b)))
		}
	}
	return v, src.SliceFrom(4), nil
}
