// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jcomb_test

import (
	"errors"
	"strconv"
	"testing"

	"github.com/creachadair/jcomb"
	"github.com/google/go-cmp/cmp"
)

// runAt applies p to input and returns its value, the offset after the
// consumed text, and the failure, if any.
func runAt[T any](t *testing.T, p jcomb.Parser[T], input string) (T, int, *jcomb.ParseError) {
	t.Helper()
	v, next, err := p(jcomb.NewState(input))
	return v, next.Offset(), err
}

func mustFailAt[T any](t *testing.T, p jcomb.Parser[T], input string, wantPos int) *jcomb.ParseError {
	t.Helper()
	_, _, err := p(jcomb.NewState(input))
	if err == nil {
		t.Fatalf("Parse %q: unexpectedly succeeded", input)
	}
	if err.Pos != wantPos {
		t.Errorf("Parse %q: failed at offset %d, want %d (%v)", input, err.Pos, wantPos, err)
	}
	return err
}

func TestLit(t *testing.T) {
	hello := jcomb.Lit("Hello")

	v, pos, err := runAt(t, hello, "Hello Jello")
	if err != nil {
		t.Fatalf("Parse: unexpected error: %v", err)
	}
	if v != "Hello" || pos != 5 {
		t.Errorf("Parse: got %q at offset %d, want %q at 5", v, pos, v)
	}

	// A partial match consumes nothing.
	mustFailAt(t, hello, "Help", 0)
	mustFailAt(t, hello, "Yello", 0)
	mustFailAt(t, hello, "", 0)
}

func TestMap(t *testing.T) {
	length := jcomb.Map(jcomb.Lit("true"), func(s string) int { return len(s) })

	v, _, err := runAt(t, length, "true")
	if err != nil {
		t.Fatalf("Parse: unexpected error: %v", err)
	}
	if v != 4 {
		t.Errorf("Parse: got %d, want 4", v)
	}
	mustFailAt(t, length, "false", 0)
}

func TestThen(t *testing.T) {
	// A context-sensitive rule: a digit N followed by exactly N "x" runes.
	repeat := jcomb.Then(jcomb.Digit, func(d rune) jcomb.Parser[[]string] {
		return jcomb.Count(int(d-'0'), jcomb.Lit("x"))
	})

	v, pos, err := runAt(t, repeat, "3xxx!")
	if err != nil {
		t.Fatalf("Parse: unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"x", "x", "x"}, v); diff != "" {
		t.Errorf("Parse result (-want, +got):\n%s", diff)
	}
	if pos != 4 {
		t.Errorf("Parse: stopped at offset %d, want 4", pos)
	}

	mustFailAt(t, repeat, "2x", 2)
}

func TestCheck(t *testing.T) {
	num := jcomb.Check(jcomb.Text(jcomb.Many1(jcomb.Digit)), strconv.Atoi)

	v, _, err := runAt(t, num, "1024")
	if err != nil {
		t.Fatalf("Parse: unexpected error: %v", err)
	}
	if v != 1024 {
		t.Errorf("Parse: got %d, want 1024", v)
	}

	fail := jcomb.Check(jcomb.Lit("ok"), func(string) (int, error) {
		return 0, errors.New("rejected")
	})
	if err := mustFailAt(t, fail, "ok", 0); err.Expected != "rejected" {
		t.Errorf("Expected text: got %q, want %q", err.Expected, "rejected")
	}
}

func TestSequence(t *testing.T) {
	ab := jcomb.And(jcomb.Lit("a"), jcomb.Lit("b"))

	v, _, err := runAt(t, ab, "ab")
	if err != nil {
		t.Fatalf("Parse: unexpected error: %v", err)
	}
	want := jcomb.Pair[string, string]{First: "a", Second: "b"}
	if v != want {
		t.Errorf("Parse: got %+v, want %+v", v, want)
	}

	// The second half fails after the first consumed input.
	mustFailAt(t, ab, "ac", 1)
	mustFailAt(t, ab, "cb", 0)

	l, _, err := runAt(t, jcomb.Left(jcomb.Lit("key"), jcomb.Lit(":")), "key:")
	if err != nil || l != "key" {
		t.Errorf("Left: got %q, %v; want %q, nil", l, err, "key")
	}
	r, _, err := runAt(t, jcomb.Right(jcomb.Lit(":"), jcomb.Lit("val")), ":val")
	if err != nil || r != "val" {
		t.Errorf("Right: got %q, %v; want %q, nil", r, err, "val")
	}
}

func TestOr(t *testing.T) {
	either := jcomb.Or(jcomb.Lit("Hello"), jcomb.Lit("Goodbye"))

	for _, input := range []string{"Hello", "Goodbye"} {
		v, _, err := runAt(t, either, input)
		if err != nil {
			t.Fatalf("Parse %q: unexpected error: %v", input, err)
		}
		if v != input {
			t.Errorf("Parse %q: got %q", input, v)
		}
	}

	// Both alternatives failing without consumption merge expectations.
	err := mustFailAt(t, either, "Howdy", 0)
	if want := `"Hello" or "Goodbye"`; err.Expected != want {
		t.Errorf("Expected text: got %q, want %q", err.Expected, want)
	}
}

func TestOrNoBacktrack(t *testing.T) {
	// Once the first branch has consumed input, the second must not be
	// tried, even though it would succeed.
	first := jcomb.Text(jcomb.And(jcomb.Lit("a"), jcomb.Lit("b")))
	p := jcomb.Or(first, jcomb.Lit("ac"))

	err := mustFailAt(t, p, "ac", 1)
	if want := `"b"`; err.Expected != want {
		t.Errorf("Expected text: got %q, want %q", err.Expected, want)
	}
}

func TestMany(t *testing.T) {
	words := jcomb.Many(jcomb.Lit("ab"))

	tests := []struct {
		input string
		want  []string
		pos   int
	}{
		{"", nil, 0},
		{"ab", []string{"ab"}, 2},
		{"abababab", []string{"ab", "ab", "ab", "ab"}, 8},
		{"abaX", []string{"ab"}, 2}, // partial trailing match is not consumed
		{"cd", nil, 0},
	}
	for _, test := range tests {
		v, pos, err := runAt(t, words, test.input)
		if err != nil {
			t.Errorf("Parse %q: unexpected error: %v", test.input, err)
			continue
		}
		if diff := cmp.Diff(test.want, v); diff != "" {
			t.Errorf("Parse %q (-want, +got):\n%s", test.input, diff)
		}
		if pos != test.pos {
			t.Errorf("Parse %q: stopped at offset %d, want %d", test.input, pos, test.pos)
		}
	}

	// An iteration that fails after consuming input fails the loop.
	pair := jcomb.Text(jcomb.And(jcomb.Lit("a"), jcomb.Lit("b")))
	mustFailAt(t, jcomb.Many(pair), "abac", 3)

	// A non-consuming success ends the loop instead of spinning.
	v, pos, err := runAt(t, jcomb.Many(jcomb.Space), "  x")
	if err != nil {
		t.Fatalf("Parse: unexpected error: %v", err)
	}
	if pos != 2 || len(v) > 1 {
		t.Errorf("Parse: got %d results at offset %d, want at most 1 at 2", len(v), pos)
	}
}

func TestMany1(t *testing.T) {
	digits := jcomb.Many1(jcomb.Digit)

	v, _, err := runAt(t, digits, "2026!")
	if err != nil {
		t.Fatalf("Parse: unexpected error: %v", err)
	}
	if diff := cmp.Diff([]rune("2026"), v); diff != "" {
		t.Errorf("Parse (-want, +got):\n%s", diff)
	}

	mustFailAt(t, digits, "x1", 0)
	mustFailAt(t, digits, "", 0)
}

func TestCount(t *testing.T) {
	four := jcomb.Count(4, jcomb.HexDigit)

	v, pos, err := runAt(t, four, "beefcake")
	if err != nil {
		t.Fatalf("Parse: unexpected error: %v", err)
	}
	if got := string(v); got != "beef" || pos != 4 {
		t.Errorf("Parse: got %q at offset %d, want %q at 4", got, pos, "beef")
	}

	mustFailAt(t, four, "bee", 3)
}

func TestOpt(t *testing.T) {
	sign := jcomb.Opt(jcomb.Lit("-"))

	v, pos, err := runAt(t, sign, "-5")
	if err != nil {
		t.Fatalf("Parse: unexpected error: %v", err)
	}
	if v == nil || *v != "-" || pos != 1 {
		t.Errorf("Parse: got %v at offset %d, want \"-\" at 1", v, pos)
	}

	v, pos, err = runAt(t, sign, "5")
	if err != nil {
		t.Fatalf("Parse: unexpected error: %v", err)
	}
	if v != nil || pos != 0 {
		t.Errorf("Parse: got %v at offset %d, want nil at 0", v, pos)
	}

	// A failure that consumed input is not recoverable.
	pair := jcomb.Text(jcomb.And(jcomb.Lit("a"), jcomb.Lit("b")))
	mustFailAt(t, jcomb.Opt(pair), "ax", 1)
}

func TestSepBy(t *testing.T) {
	list := jcomb.SepBy(jcomb.Text(jcomb.Many1(jcomb.Digit)), jcomb.Lit(","))

	tests := []struct {
		input string
		want  []string
		pos   int
	}{
		{"", nil, 0},
		{"1", []string{"1"}, 1},
		{"1,2,3", []string{"1", "2", "3"}, 5},
		{"10,20]", []string{"10", "20"}, 5},
	}
	for _, test := range tests {
		v, pos, err := runAt(t, list, test.input)
		if err != nil {
			t.Errorf("Parse %q: unexpected error: %v", test.input, err)
			continue
		}
		if diff := cmp.Diff(test.want, v); diff != "" {
			t.Errorf("Parse %q (-want, +got):\n%s", test.input, diff)
		}
		if pos != test.pos {
			t.Errorf("Parse %q: stopped at offset %d, want %d", test.input, pos, test.pos)
		}
	}

	// A trailing separator requires another value.
	mustFailAt(t, list, "1,2,", 4)
	mustFailAt(t, list, "1,,2", 2)
}

func TestLabel(t *testing.T) {
	p := jcomb.Label(jcomb.Lit("null"), "the null constant")

	err := mustFailAt(t, p, "nope", 0)
	if want := "the null constant"; err.Expected != want {
		t.Errorf("Expected text: got %q, want %q", err.Expected, want)
	}

	// A failure past the start keeps its own message.
	q := jcomb.Label(jcomb.Text(jcomb.And(jcomb.Lit("a"), jcomb.Lit("b"))), "ab")
	err = mustFailAt(t, q, "ax", 1)
	if want := `"b"`; err.Expected != want {
		t.Errorf("Expected text: got %q, want %q", err.Expected, want)
	}
}

func TestText(t *testing.T) {
	num := jcomb.Text(jcomb.And(jcomb.Opt(jcomb.Lit("-")), jcomb.Many1(jcomb.Digit)))

	v, _, err := runAt(t, num, "-250;")
	if err != nil {
		t.Fatalf("Parse: unexpected error: %v", err)
	}
	if v != "-250" {
		t.Errorf("Parse: got %q, want %q", v, "-250")
	}
}

func TestEnd(t *testing.T) {
	p := jcomb.Left(jcomb.Lit("done"), jcomb.End)

	if _, err := jcomb.Run(p, "done"); err != nil {
		t.Errorf("Run: unexpected error: %v", err)
	}

	_, err := jcomb.Run(p, "done!")
	var perr *jcomb.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("Run: got error %v, want *ParseError", err)
	}
	if perr.Pos != 4 || perr.Expected != "end of input" {
		t.Errorf("Run: got failure %+v, want end of input at 4", perr)
	}
}

func TestDeterminism(t *testing.T) {
	// A parser value is reusable; repeated runs on the same input agree.
	p := jcomb.SepBy(jcomb.Text(jcomb.Many1(jcomb.Digit)), jcomb.Lit(","))
	const input = "5,10,15"

	first, _, err := runAt(t, p, input)
	if err != nil {
		t.Fatalf("Parse: unexpected error: %v", err)
	}
	for range 3 {
		again, _, err := runAt(t, p, input)
		if err != nil {
			t.Fatalf("Parse: unexpected error: %v", err)
		}
		if diff := cmp.Diff(first, again); diff != "" {
			t.Errorf("Results differ between runs (-first, +again):\n%s", diff)
		}
	}
}
