// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jcomb

// A Span describes a contiguous span of a source input.
type Span struct {
	Pos int // the start offset, 0-based
	End int // the end offset, 0-based (noninclusive)
}

// A LineCol describes the line number and column offset of a location in
// source text.
type LineCol struct {
	Line   int // line number, 1-based
	Column int // byte offset of column in line, 0-based
}

// Pos translates a byte offset into src to a line and column position.
// Offsets outside src are clamped to its boundaries.
func Pos(src string, offset int) LineCol {
	if offset < 0 {
		offset = 0
	} else if offset > len(src) {
		offset = len(src)
	}
	lc := LineCol{Line: 1}
	for i := 0; i < offset; i++ {
		if src[i] == '\n' {
			lc.Line++
			lc.Column = 0
		} else {
			lc.Column++
		}
	}
	return lc
}
