// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jcomb

// A Pair holds the results of two sequenced parsers.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Map runs p and transforms its result with f. Failures pass through
// unchanged.
func Map[A, B any](p Parser[A], f func(A) B) Parser[B] {
	return func(s State) (B, State, *ParseError) {
		a, next, err := p(s)
		if err != nil {
			var zero B
			return zero, s, err
		}
		return f(a), next, nil
	}
}

// Then runs p and feeds its result to f, whose parser is then run on the
// remaining input. This permits context-sensitive grammars; for plain
// sequencing prefer And, Left, or Right.
func Then[A, B any](p Parser[A], f func(A) Parser[B]) Parser[B] {
	return func(s State) (B, State, *ParseError) {
		a, next, err := p(s)
		if err != nil {
			var zero B
			return zero, s, err
		}
		return f(a)(next)
	}
}

// Check runs p and converts its result with f. An error from f becomes a
// parse failure at the position where p began.
func Check[A, B any](p Parser[A], f func(A) (B, error)) Parser[B] {
	return func(s State) (B, State, *ParseError) {
		a, next, err := p(s)
		if err != nil {
			var zero B
			return zero, s, err
		}
		b, cerr := f(a)
		if cerr != nil {
			var zero B
			return zero, s, failAt(s, cerr.Error())
		}
		return b, next, nil
	}
}

// And runs p then q, succeeding with the pair of their results only if
// both succeed. A failure of q is reported at the position q began, so it
// counts as consuming if p consumed input.
func And[A, B any](p Parser[A], q Parser[B]) Parser[Pair[A, B]] {
	return func(s State) (Pair[A, B], State, *ParseError) {
		a, mid, err := p(s)
		if err != nil {
			return Pair[A, B]{}, s, err
		}
		b, next, err := q(mid)
		if err != nil {
			return Pair[A, B]{}, s, err
		}
		return Pair[A, B]{First: a, Second: b}, next, nil
	}
}

// Left runs p then q and keeps only the result of p.
func Left[A, B any](p Parser[A], q Parser[B]) Parser[A] {
	return Map(And(p, q), func(r Pair[A, B]) A { return r.First })
}

// Right runs p then q and keeps only the result of q.
func Right[A, B any](p Parser[A], q Parser[B]) Parser[B] {
	return Map(And(p, q), func(r Pair[A, B]) B { return r.Second })
}

// Or tries each alternative in order on the same starting state, and
// returns the result of the first that succeeds. An alternative that
// fails after consuming input stops the search and its failure is
// returned; alternatives are only retried after failures that consumed
// nothing. If every alternative fails without consuming, the failures
// are merged into a single expectation at the starting offset.
func Or[A any](ps ...Parser[A]) Parser[A] {
	return func(s State) (A, State, *ParseError) {
		var zero A
		var merged *ParseError
		for _, p := range ps {
			v, next, err := p(s)
			if err == nil {
				return v, next, nil
			}
			if err.Pos != s.Offset() {
				return zero, s, err
			}
			if merged == nil {
				merged = err
			} else {
				merged = &ParseError{Pos: s.Offset(), Expected: merged.Expected + " or " + err.Expected}
			}
		}
		if merged == nil {
			merged = failAt(s, "one of no alternatives")
		}
		return zero, s, merged
	}
}

// Many runs p repeatedly and collects its results until p fails without
// consuming input, then succeeds with the values gathered so far (possibly
// none). A failure of p that consumed input is propagated. Each successful
// iteration must consume at least one byte; a non-consuming success ends
// the loop rather than repeating forever.
func Many[A any](p Parser[A]) Parser[[]A] {
	return func(s State) ([]A, State, *ParseError) {
		var vs []A
		for {
			v, next, err := p(s)
			if err != nil {
				if err.Pos != s.Offset() {
					return nil, s, err
				}
				return vs, s, nil
			}
			if next.Offset() == s.Offset() {
				return vs, s, nil
			}
			vs = append(vs, v)
			s = next
		}
	}
}

// Many1 is like Many but requires at least one match.
func Many1[A any](p Parser[A]) Parser[[]A] {
	return func(s State) ([]A, State, *ParseError) {
		first, mid, err := p(s)
		if err != nil {
			return nil, s, err
		}
		rest, next, err := Many(p)(mid)
		if err != nil {
			return nil, s, err
		}
		return append([]A{first}, rest...), next, nil
	}
}

// Count runs p exactly n times and collects the results.
func Count[A any](n int, p Parser[A]) Parser[[]A] {
	return func(s State) ([]A, State, *ParseError) {
		vs := make([]A, 0, n)
		for range n {
			v, next, err := p(s)
			if err != nil {
				return nil, s, err
			}
			vs = append(vs, v)
			s = next
		}
		return vs, s, nil
	}
}

// Opt runs p and succeeds with a pointer to its result, or with nil if p
// failed without consuming input. A failure of p that consumed input is
// propagated.
func Opt[A any](p Parser[A]) Parser[*A] {
	return func(s State) (*A, State, *ParseError) {
		v, next, err := p(s)
		if err != nil {
			if err.Pos != s.Offset() {
				return nil, s, err
			}
			return nil, s, nil
		}
		return &v, next, nil
	}
}

// SepBy parses zero or more values of p separated by sep, with no
// trailing separator: once a separator has been consumed, another value
// is required. The separator results are discarded.
func SepBy[A, S any](p Parser[A], sep Parser[S]) Parser[[]A] {
	return func(s State) ([]A, State, *ParseError) {
		first, next, err := p(s)
		if err != nil {
			if err.Pos != s.Offset() {
				return nil, s, err
			}
			return nil, s, nil // zero values
		}
		vs := []A{first}
		s = next
		for {
			_, afterSep, err := sep(s)
			if err != nil {
				if err.Pos != s.Offset() {
					return nil, s, err
				}
				return vs, s, nil
			}
			v, afterVal, err := p(afterSep)
			if err != nil {
				return nil, s, err
			}
			vs = append(vs, v)
			s = afterVal
		}
	}
}

// Label replaces the expectation text of failures of p that consumed no
// input. Failures after partial consumption keep their original message,
// which points at the actual trouble spot.
func Label[A any](p Parser[A], want string) Parser[A] {
	return func(s State) (A, State, *ParseError) {
		v, next, err := p(s)
		if err != nil && err.Pos == s.Offset() {
			var zero A
			return zero, s, failAt(s, want)
		}
		return v, next, err
	}
}

// Text runs p and returns the exact input text it consumed, discarding
// its value.
func Text[A any](p Parser[A]) Parser[string] {
	return func(s State) (string, State, *ParseError) {
		_, next, err := p(s)
		if err != nil {
			return "", s, err
		}
		return s.textTo(next), next, nil
	}
}
