// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for backend portfolio payloads.
package model

import (
	"math"
	"strconv"
	"strings"
)

// =============================================================================
// KIND
// =============================================================================

// Kind identifies which variant of a Value is active.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// =============================================================================
// VALUE
// =============================================================================

// Member is a key/value pair of an object.
type Member struct {
	Key   string
	Value Value
}

// Value is a decoded JSON value. The zero Value is Null.
type Value struct {
	kind    Kind
	boolean bool
	number  float64
	str     string
	items   []Value
	members []Member
}

// Null returns the null value.
func Null() Value {
	return Value{}
}

// Bool returns a boolean value.
func Bool(b bool) Value {
	return Value{kind: KindBool, boolean: b}
}

// Number returns a numeric value.
func Number(n float64) Value {
	return Value{kind: KindNumber, number: n}
}

// String returns a string value.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Array returns an array holding items in order.
func Array(items ...Value) Value {
	return Value{kind: KindArray, items: items}
}

// Object returns an object holding members in order.
// A repeated key replaces the earlier value but keeps the earlier position.
func Object(members ...Member) Value {
	out := make([]Member, 0, len(members))
	seen := make(map[string]int, len(members))
	for _, m := range members {
		if i, ok := seen[m.Key]; ok {
			out[i].Value = m.Value
			continue
		}
		seen[m.Key] = len(out)
		out = append(out, m)
	}
	return Value{kind: KindObject, members: out}
}

// Field is shorthand for building a Member.
func Field(key string, v Value) Member {
	return Member{Key: key, Value: v}
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Kind returns the active variant.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether v is null (or absent).
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// IsArray reports whether v is an array.
func (v Value) IsArray() bool {
	return v.kind == KindArray
}

// IsObject reports whether v is an object.
func (v Value) IsObject() bool {
	return v.kind == KindObject
}

// IsObjectLike reports whether v is an object, an array or null.
// These are the values a generic traversal descends into.
func (v Value) IsObjectLike() bool {
	return v.kind == KindNull || v.kind == KindArray || v.kind == KindObject
}

// Bool returns the boolean payload, false for other kinds.
func (v Value) Bool() bool {
	return v.kind == KindBool && v.boolean
}

// Num returns the numeric payload, 0 for other kinds.
func (v Value) Num() float64 {
	if v.kind != KindNumber {
		return 0
	}
	return v.number
}

// Str returns the string payload, "" for other kinds.
// Use String for the coerced textual form of any kind.
func (v Value) Str() string {
	if v.kind != KindString {
		return ""
	}
	return v.str
}

// Items returns the elements of an array, nil for other kinds.
func (v Value) Items() []Value {
	if v.kind != KindArray {
		return nil
	}
	return v.items
}

// Members returns the members of an object in order, nil for other kinds.
func (v Value) Members() []Member {
	if v.kind != KindObject {
		return nil
	}
	return v.members
}

// Len returns the number of array items or object members.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.items)
	case KindObject:
		return len(v.members)
	default:
		return 0
	}
}

// Get returns the member named key, or Null when v is not an object
// or has no such member.
func (v Value) Get(key string) Value {
	for _, m := range v.Members() {
		if m.Key == key {
			return m.Value
		}
	}
	return Null()
}

// Has reports whether v is an object with a member named key.
func (v Value) Has(key string) bool {
	for _, m := range v.Members() {
		if m.Key == key {
			return true
		}
	}
	return false
}

// Truthy reports JavaScript truthiness: null, false, 0, NaN and ""
// are falsy, everything else (including empty arrays and objects) is truthy.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindBool:
		return v.boolean
	case KindNumber:
		return v.number != 0 && !math.IsNaN(v.number)
	case KindString:
		return v.str != ""
	case KindArray, KindObject:
		return true
	default:
		return false
	}
}

// Coalesce returns the first non-null value, or Null.
func Coalesce(vals ...Value) Value {
	for _, v := range vals {
		if !v.IsNull() {
			return v
		}
	}
	return Null()
}

// Or returns v unless it is null, in which case it returns fallback.
func (v Value) Or(fallback string) string {
	if v.IsNull() {
		return fallback
	}
	return v.String()
}

// =============================================================================
// STRING COERCION
// =============================================================================

// String returns the default textual form of v, matching how a browser
// would interpolate the value into a template string: null prints as
// "null", arrays join their items with commas and objects print as
// "[object Object]".
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(v.boolean)
	case KindNumber:
		return FormatNumber(v.number)
	case KindString:
		return v.str
	case KindArray:
		parts := make([]string, len(v.items))
		for i, item := range v.items {
			if item.IsNull() {
				continue
			}
			parts[i] = item.String()
		}
		return strings.Join(parts, ",")
	case KindObject:
		return "[object Object]"
	default:
		return ""
	}
}

// FormatNumber renders n the way JavaScript's Number#toString does:
// shortest round-trip digits, exponent notation outside [1e-6, 1e21).
func FormatNumber(n float64) string {
	switch {
	case math.IsNaN(n):
		return "NaN"
	case math.IsInf(n, 1):
		return "Infinity"
	case math.IsInf(n, -1):
		return "-Infinity"
	case n == 0:
		return "0"
	}

	abs := math.Abs(n)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(n, 'e', -1, 64)
		mantissa, exp, ok := strings.Cut(s, "e")
		if !ok {
			return s
		}
		sign := exp[:1]
		digits := strings.TrimLeft(exp[1:], "0")
		if digits == "" {
			digits = "0"
		}
		return mantissa + "e" + sign + digits
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}
