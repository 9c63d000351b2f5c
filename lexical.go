// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jcomb

import (
	"strconv"
	"unicode/utf8"

	"go4.org/mem"
)

// Rune returns a parser that consumes a single rune satisfying f, or
// fails without consuming input. The want string describes the expected
// rune in failure messages.
func Rune(f func(rune) bool, want string) Parser[rune] {
	return func(s State) (rune, State, *ParseError) {
		ch, ok := s.Peek()
		if !ok || !f(ch) {
			return 0, s, failAt(s, want)
		}
		next, err := s.Advance(utf8.RuneLen(ch))
		if err != nil {
			return 0, s, failAt(s, want)
		}
		return ch, next, nil
	}
}

// Any consumes any single rune, failing only at the end of the input.
var Any = Rune(func(rune) bool { return true }, "any character")

// Lit returns a parser that consumes exactly the given text. The match is
// atomic: on a partial match nothing is consumed, so a following Or may
// still try other alternatives.
func Lit(text string) Parser[string] {
	want := strconv.Quote(text)
	return func(s State) (string, State, *ParseError) {
		if !mem.HasPrefix(s.Rest(), mem.S(text)) {
			return "", s, failAt(s, want)
		}
		next, err := s.Advance(len(text))
		if err != nil {
			return "", s, failAt(s, want)
		}
		return text, next, nil
	}
}

// Space consumes zero or more whitespace characters (space, tab, carriage
// return, line feed) and reports how many bytes it consumed. It always
// succeeds.
var Space Parser[int] = func(s State) (int, State, *ParseError) {
	var n int
	for n < s.remaining() && isSpace(rune(s.at(n))) {
		n++
	}
	next, err := s.Advance(n)
	if err != nil {
		return 0, s, failAt(s, "whitespace")
	}
	return n, next, nil
}

// Digit consumes a single decimal digit.
var Digit = Rune(isDigit, "digit")

// HexDigit consumes a single hexadecimal digit.
var HexDigit = Rune(isHexDigit, "hex digit")

func isSpace(ch rune) bool {
	return ch == ' ' || ch == '\r' || ch == '\n' || ch == '\t'
}

func isDigit(ch rune) bool { return '0' <= ch && ch <= '9' }

func isHexDigit(ch rune) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}
