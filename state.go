// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jcomb

import (
	"fmt"

	"go4.org/mem"
)

// A State is an immutable cursor over an input text. It pairs a read-only
// view of the complete source with a byte offset marking how much of the
// input has been consumed. Advancing a state produces a new value; the
// original remains valid, so a parser can backtrack simply by holding on
// to an earlier state.
//
// The offset always falls on a rune boundary of the source.
type State struct {
	src mem.RO
	pos int
}

// NewState constructs a state positioned at the start of text.
func NewState(text string) State { return State{src: mem.S(text)} }

// Offset reports the byte offset of s in the original input.
func (s State) Offset() int { return s.pos }

// Rest returns a read-only view of the unconsumed input.
func (s State) Rest() mem.RO { return s.src.SliceFrom(s.pos) }

// AtEOF reports whether the input at s is exhausted.
func (s State) AtEOF() bool { return s.pos >= s.src.Len() }

// Peek decodes the next rune of the input without consuming it.
// It reports false at the end of the input.
func (s State) Peek() (rune, bool) {
	if s.AtEOF() {
		return 0, false
	}
	r, _ := mem.DecodeRune(s.Rest())
	return r, true
}

// Advance returns a state n bytes further along the input. It reports an
// error without moving if n is negative or exceeds the remaining length.
func (s State) Advance(n int) (State, error) {
	if n < 0 || s.pos+n > s.src.Len() {
		return s, fmt.Errorf("advance %d bytes: past end of input", n)
	}
	return State{src: s.src, pos: s.pos + n}, nil
}

// textTo returns a copy of the input text between s and end, which must
// be a later state over the same source.
func (s State) textTo(end State) string {
	return s.src.SliceFrom(s.pos).SliceTo(end.pos - s.pos).StringCopy()
}

// at returns the byte of the input at offset i from s without bounds
// checking beyond the source length.
func (s State) at(i int) byte { return s.src.At(s.pos + i) }

// remaining reports the number of unconsumed bytes at s.
func (s State) remaining() int { return s.src.Len() - s.pos }
