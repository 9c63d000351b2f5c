// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package ast defines a syntax tree for JSON values and a parser, built
// from the combinators of package jcomb, that constructs trees from JSON
// source text.
package ast

import (
	"math"
	"strconv"
	"strings"

	"github.com/creachadair/jcomb/internal/escape"
	"go4.org/mem"
)

// A Value is an arbitrary JSON value. Values are immutable once
// constructed: arrays and objects own their elements exclusively, and a
// parsed tree shares no storage with the input it came from.
type Value interface {
	// JSON renders the value as JSON source text.
	JSON() string
}

// Null represents the JSON null constant.
var Null Value = nullValue{}

type nullValue struct{}

// JSON satisfies the Value interface.
func (nullValue) JSON() string { return "null" }

// A Bool is a Boolean constant, true or false.
type Bool bool

// JSON satisfies the Value interface.
func (b Bool) JSON() string {
	if b {
		return "true"
	}
	return "false"
}

// A Number is a JSON number, represented as a 64-bit float.
type Number float64

// JSON satisfies the Value interface. It panics if n is NaN or an
// infinity, neither of which JSON can represent.
func (n Number) JSON() string {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		panic("number has no JSON representation: " + strconv.FormatFloat(f, 'g', -1, 64))
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// A String is a JSON string value, stored unescaped.
type String string

// JSON satisfies the Value interface.
func (s String) JSON() string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('"')
	sb.Write(escape.Quote(mem.S(string(s))))
	sb.WriteByte('"')
	return sb.String()
}

// An Array is an ordered sequence of values.
type Array []Value

// JSON satisfies the Value interface.
func (a Array) JSON() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range a {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(v.JSON())
	}
	sb.WriteByte(']')
	return sb.String()
}

// A Member is a single key-value pair belonging to an object.
type Member struct {
	Key   string
	Value Value
}

// Field constructs an object member with the given key and value.
func Field(key string, v Value) *Member { return &Member{Key: key, Value: v} }

// JSON satisfies the Value interface.
func (m *Member) JSON() string { return String(m.Key).JSON() + ":" + m.Value.JSON() }

// An Object is an ordered collection of key-value members. A parsed
// object has unique keys: when the source contains duplicates, the later
// member wins and keeps the position of the first occurrence.
type Object []*Member

// Find returns the first member of o with the given key, or nil.
func (o Object) Find(key string) *Member {
	for _, m := range o {
		if m.Key == key {
			return m
		}
	}
	return nil
}

// JSON satisfies the Value interface.
func (o Object) JSON() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(m.JSON())
	}
	sb.WriteByte('}')
	return sb.String()
}

// Equal reports whether two values are structurally equal: equal kinds,
// equal contents, and for objects the same members in the same order.
func Equal(a, b Value) bool {
	switch t := a.(type) {
	case nullValue:
		_, ok := b.(nullValue)
		return ok
	case Bool:
		u, ok := b.(Bool)
		return ok && t == u
	case Number:
		u, ok := b.(Number)
		return ok && t == u
	case String:
		u, ok := b.(String)
		return ok && t == u
	case Array:
		u, ok := b.(Array)
		if !ok || len(t) != len(u) {
			return false
		}
		for i, v := range t {
			if !Equal(v, u[i]) {
				return false
			}
		}
		return true
	case Object:
		u, ok := b.(Object)
		if !ok || len(t) != len(u) {
			return false
		}
		for i, m := range t {
			if m.Key != u[i].Key || !Equal(m.Value, u[i].Value) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
