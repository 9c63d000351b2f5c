// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package jcomb implements a small parser combinator library.
//
// # Parsers
//
// A Parser[T] is a function that consumes input from a State, an
// immutable cursor over the source text, and either produces a value of
// type T or reports a *ParseError with the offset and a description of
// what was expected:
//
//	hello := jcomb.Lit("hello")
//	v, rest, err := hello(jcomb.NewState("hello, world"))
//
// Parsers are descriptions, not machines: they hold no state of their
// own, may be reused freely, and the same input always yields the same
// result. Running a parser concurrently from multiple goroutines is safe.
//
// # Combinators
//
// Larger grammars are composed from smaller ones with the combinators in
// this package: Map and Check transform results, And, Left, Right, and
// Then sequence parsers, Or chooses between alternatives, and Many,
// Many1, Count, Opt, and SepBy handle repetition. Label rewrites the
// expectation text of a failure to keep error messages readable.
//
// # Failure and backtracking
//
// Every failure records the offset at which it occurred. A parser that
// fails at its starting offset consumed no input, and combinators treat
// only such failures as recoverable: Or tries its next alternative, Many
// and SepBy end their loops, and Opt substitutes an absent value. A
// failure past the starting offset means part of a construct was already
// consumed, and it propagates to the caller unchanged. This discipline
// keeps error positions accurate and rules out exponential re-parsing.
//
// The ast subpackage builds a complete JSON grammar on these primitives.
package jcomb
