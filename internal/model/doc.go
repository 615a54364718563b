// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for backend portfolio payloads.
//
// Payloads arrive as untyped JSON whose shape is not guaranteed. This package
// represents them as a small closed sum type so formatters can branch on the
// kind of a value instead of guessing at it.
//
// # Key Types
//
//   - Value: Null, Bool, Number, String, Array or Object
//   - Member: a single key/value pair of an Object, kept in document order
//   - Kind: the active variant of a Value
//
// # Usage
//
// Decode a backend body and read fields defensively:
//
//	v, err := model.Parse(body)
//	if err != nil {
//	    return err
//	}
//	name := v.Get("name")          // Null when absent
//	if name.Truthy() {
//	    fmt.Println(name.String())
//	}
//
// Every accessor is total: reading a field of a non-object or an item of a
// non-array yields Null or an empty slice, never a panic.
package model
