// Copyright (C) binwire Authors 2020-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package binwire encodes Go values into caller-declared binary layouts.
//
// A struct's layout is the dense concatenation of its exported fields in
// declaration order: no padding, no alignment, no implicit framing. Numeric
// fields occupy exactly the width of their Go type (1, 2, 4, or 8 bytes);
// arrays and slices are the concatenation of their element encodings;
// strings are raw UTF-8. The byte order for multi-byte values defaults to
// the host's native order and can be set per call or per field.
//
// Per-field configuration uses the "bin" struct tag:
//
//	type Packet struct {
//	    Magic   uint32    `bin:"big"`       // big-endian for this subtree
//	    Flags   uint16                      // inherits the caller's order
//	    Name    string    `bin:"cstr"`      // NUL-terminated UTF-8
//	    Payload []byte    `bin:"len=u16"`   // explicit length prefix
//	    Tail    [4]byte
//	}
//
//	out, err := binwire.MarshalWithOrder(endian.Little, pkt)
//
// A field's byte-order flag overrides the inherited order for that field's
// entire encoded subtree; sibling fields keep the inherited order. Slices
// never write an implicit count or terminator. A format that carries a
// count on the wire declares it explicitly, either as a preceding integer
// field the caller keeps consistent or with the len= tag option, which also
// rejects counts that do not fit the declared prefix width.
//
// Encoding stops at the first failure. Bytes already accepted by the
// destination stay written, so a failed encode leaves the destination in a
// partial state the caller should discard.
//
// Custom encoders can be registered per type, interface, or reflect.Kind
// through bincodec.RegistryBuilder and used via MarshalWithRegistry or an
// Encoder.
package binwire
