// Copyright (C) binwire Authors 2020-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package endian defines the byte orders values can be serialized in and the
// rule that resolves a field's effective order from its enclosing scope.
package endian

import "encoding/binary"

// Order selects the byte order used to serialize a multi-byte value.
type Order byte

const (
	// Inherit is the zero Order. A field declaring Inherit has no order of
	// its own and uses the order of its nearest enclosing scope.
	Inherit Order = iota
	// Big serializes most-significant byte first.
	Big
	// Little serializes least-significant byte first.
	Little
	// Native serializes in the byte order of the encoding host. Output is
	// not portable between hosts of differing endianness; formats that need
	// deterministic bytes should declare Big or Little instead.
	Native
)

// Engine combines the put and append byte-order interfaces from
// encoding/binary. binary.BigEndian, binary.LittleEndian, and
// binary.NativeEndian all satisfy it.
type Engine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// Resolve returns the effective order for a field given the order inherited
// from its enclosing scope and the field's own declaration. The declaration
// wins unless it is Inherit.
func Resolve(inherited, override Order) Order {
	if override != Inherit {
		return override
	}
	return inherited
}

// Engine returns the encoding/binary implementation for o. Inherit behaves
// as Native so that a zero Order is usable at the root of an encode.
func (o Order) Engine() Engine {
	switch o {
	case Big:
		return binary.BigEndian
	case Little:
		return binary.LittleEndian
	default:
		return binary.NativeEndian
	}
}

func (o Order) String() string {
	switch o {
	case Big:
		return "Big"
	case Little:
		return "Little"
	case Native:
		return "Native"
	default:
		return "Inherit"
	}
}
