// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/creachadair/jcomb"
	"github.com/creachadair/jcomb/internal/escape"
	"go4.org/mem"
)

// Parse parses text as a single JSON document. The input must contain
// exactly one JSON value, surrounded by optional whitespace; anything
// else after a complete value is an error. On failure the returned error
// is a *jcomb.ParseError locating the problem in text.
func Parse(text string) (Value, error) {
	return jcomb.Run(document, text)
}

// The grammar below is written in lexeme style: each production matches
// its own text exactly and tok wraps a parser to consume the whitespace
// that follows it. Leading whitespace is consumed once, by document.

// tok runs p and consumes any whitespace after it.
func tok[T any](p jcomb.Parser[T]) jcomb.Parser[T] {
	return jcomb.Left(p, jcomb.Space)
}

// jsonValue is the top-level alternative over all six productions. The
// grammar is recursive through arrays and objects, so jsonValue is
// assigned in init rather than initialized in place, and parseValue
// forwards to it by name; the indirection breaks what would otherwise be
// an initialization cycle.
var jsonValue jcomb.Parser[Value]

func parseValue(s jcomb.State) (Value, jcomb.State, *jcomb.ParseError) {
	return jsonValue(s)
}

func init() {
	jsonValue = jcomb.Label(
		jcomb.Or(jsonObject, jsonArray, jsonString, jsonNumber, jsonBool, jsonNull),
		"a JSON value")
}

var (
	// element is a full JSON value with its trailing whitespace.
	element = tok[Value](parseValue)

	// document is the whole-input rule: optional leading whitespace, one
	// value, and nothing but whitespace after it.
	document = jcomb.Right(jcomb.Space, jcomb.Left(element, jcomb.End))

	jsonNull = jcomb.Map(jcomb.Lit("null"), func(string) Value { return Null })

	jsonBool = jcomb.Map(jcomb.Or(jcomb.Lit("true"), jcomb.Lit("false")),
		func(text string) Value { return Bool(text == "true") })

	// Numbers follow RFC 8259: an optional minus sign, an integer part
	// with no redundant leading zero, an optional fraction, and an
	// optional exponent. The productions only recognize the shape; the
	// matched text is handed to strconv for the float value.
	digits1 = jcomb.Many1(jcomb.Digit)

	intPart = jcomb.Or(
		jcomb.Text(jcomb.And(jcomb.Rune(func(r rune) bool { return '1' <= r && r <= '9' }, "nonzero digit"), jcomb.Many(jcomb.Digit))),
		jcomb.Lit("0"),
	)

	fracPart = jcomb.Right(jcomb.Lit("."), digits1)

	expPart = jcomb.Right(
		jcomb.Rune(func(r rune) bool { return r == 'e' || r == 'E' }, "exponent"),
		jcomb.Right(jcomb.Opt(jcomb.Or(jcomb.Lit("+"), jcomb.Lit("-"))), digits1),
	)

	numberText = jcomb.Text(
		jcomb.And(jcomb.Opt(jcomb.Lit("-")),
			jcomb.And(intPart, jcomb.And(jcomb.Opt(fracPart), jcomb.Opt(expPart)))))

	jsonNumber = jcomb.Check(numberText, func(text string) (Value, error) {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, fmt.Errorf("number %q out of range", text)
		}
		return Number(f), nil
	})

	// Strings are scanned as a quoted run of plain characters and escape
	// sequences; the matched contents are then unquoted in one pass.
	// Scanning first means a malformed escape or unterminated string is
	// reported at its own offset.
	plainChar = jcomb.Rune(func(r rune) bool {
		return r != '"' && r != '\\' && r >= 0x20
	}, "string character")

	escChar = jcomb.Rune(func(r rune) bool {
		return strings.ContainsRune(`"\/bfnrt`, r)
	}, "escape character")

	uEscape = jcomb.Right(jcomb.Lit("u"), jcomb.Count(4, jcomb.HexDigit))

	escSeq = jcomb.Right(jcomb.Lit(`\`),
		jcomb.Or(escChar, jcomb.Map(uEscape, func([]rune) rune { return 0 })))

	stringChar = jcomb.Or(plainChar, escSeq)

	stringText = jcomb.Right(jcomb.Lit(`"`),
		jcomb.Left(jcomb.Text(jcomb.Many(stringChar)), jcomb.Lit(`"`)))

	stringValue = jcomb.Check(stringText, func(text string) (string, error) {
		return escape.Unquote(mem.S(text))
	})

	jsonString = jcomb.Map(stringValue, func(s string) Value { return String(s) })

	comma = tok(jcomb.Lit(","))

	jsonArray = jcomb.Map(
		jcomb.Right(tok(jcomb.Lit("[")),
			jcomb.Left(jcomb.SepBy(element, comma), jcomb.Lit("]"))),
		func(vs []Value) Value {
			if vs == nil {
				vs = []Value{}
			}
			return Array(vs)
		})

	member = jcomb.Map(
		jcomb.And(jcomb.Left(tok(stringValue), tok(jcomb.Lit(":"))), element),
		func(p jcomb.Pair[string, Value]) *Member {
			return &Member{Key: p.First, Value: p.Second}
		})

	jsonObject = jcomb.Map(
		jcomb.Right(tok(jcomb.Lit("{")),
			jcomb.Left(jcomb.SepBy(member, comma), jcomb.Lit("}"))),
		func(ms []*Member) Value {
			// Duplicate keys: the later member wins, in the position where
			// the key first appeared.
			o := Object{}
			for _, m := range ms {
				if prev := o.Find(m.Key); prev != nil {
					prev.Value = m.Value
				} else {
					o = append(o, m)
				}
			}
			return o
		})
)
