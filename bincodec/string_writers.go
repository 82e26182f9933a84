// Copyright (C) binwire Authors 2020-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bincodec

import (
	"reflect"
	"unicode/utf16"

	"github.com/binwire/binwire/binrw"
)

var stringWriters StringWriters

// StringWriters is a namespace type for the string encodings struct fields
// opt into via tag flags. The methods are ValueEncoderFuncs and can also be
// registered directly for named string types.
type StringWriters struct{}

// CStringEncodeValue writes a string as its UTF-8 bytes followed by a
// single NUL byte. Byte order does not apply.
func (sw StringWriters) CStringEncodeValue(ec EncodeContext, vw binrw.ValueWriter, val reflect.Value) error {
	if !val.IsValid() || val.Kind() != reflect.String {
		return ValueEncoderError{Name: "CStringEncodeValue", Kinds: []reflect.Kind{reflect.String}, Received: val}
	}
	return vw.WriteBytes(append([]byte(val.String()), 0))
}

// UTF16StringEncodeValue writes a string as UTF-16 code units in the
// effective byte order, with no terminator.
func (sw StringWriters) UTF16StringEncodeValue(ec EncodeContext, vw binrw.ValueWriter, val reflect.Value) error {
	if !val.IsValid() || val.Kind() != reflect.String {
		return ValueEncoderError{Name: "UTF16StringEncodeValue", Kinds: []reflect.Kind{reflect.String}, Received: val}
	}

	bo := ec.Order.Engine()
	units := utf16.Encode([]rune(val.String()))
	buf := make([]byte, 0, 2*len(units))
	for _, u := range units {
		buf = bo.AppendUint16(buf, u)
	}
	if len(buf) == 0 {
		return nil
	}
	return vw.WriteBytes(buf)
}

// UTF16NullStringEncodeValue writes a string as UTF-16 code units in the
// effective byte order, followed by a NUL code unit.
func (sw StringWriters) UTF16NullStringEncodeValue(ec EncodeContext, vw binrw.ValueWriter, val reflect.Value) error {
	if err := sw.UTF16StringEncodeValue(ec, vw, val); err != nil {
		return err
	}
	var buf [2]byte
	return vw.WriteBytes(ec.Order.Engine().AppendUint16(buf[:0], 0))
}
