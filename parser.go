// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jcomb

import "fmt"

// A ParseError reports that the input did not match a grammar at a
// particular location. Parsers return failures as ordinary values; no
// parser in this package panics on malformed input.
type ParseError struct {
	Pos      int    // byte offset in the input where the failure occurred
	Expected string // a description of what the failing parser wanted
}

// Error satisfies the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("expected %s (offset %d)", e.Expected, e.Pos)
}

// A Parser consumes input from a state and either produces a value of
// type T together with the state after the consumed input, or reports a
// *ParseError. On success the returned state is never earlier than the
// argument. A failure whose Pos equals the offset of the argument state
// consumed no input; combinators such as Or and Many use this to decide
// whether an alternative may still be tried.
//
// A Parser is a pure description: running it has no side effects, and the
// same parser may be run any number of times on any states.
type Parser[T any] func(State) (T, State, *ParseError)

// failAt constructs a failure at the offset of s wanting the given
// description.
func failAt(s State, want string) *ParseError {
	return &ParseError{Pos: s.Offset(), Expected: want}
}

// End succeeds exactly when the input at s is exhausted.
var End Parser[struct{}] = func(s State) (struct{}, State, *ParseError) {
	if !s.AtEOF() {
		return struct{}{}, s, failAt(s, "end of input")
	}
	return struct{}{}, s, nil
}

// Run applies p to text and returns its result. The input need not be
// fully consumed; sequence p with End to require that.
func Run[T any](p Parser[T], text string) (T, error) {
	v, _, err := p(NewState(text))
	if err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}
