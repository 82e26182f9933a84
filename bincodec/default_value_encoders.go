// Copyright (C) binwire Authors 2020-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bincodec

import (
	"encoding"
	"math"
	"reflect"

	"github.com/pkg/errors"

	"github.com/binwire/binwire/binrw"
)

var defaultValueEncoders DefaultValueEncoders

// DefaultValueEncoders is a namespace type for the default ValueEncoders
// used when creating a registry.
type DefaultValueEncoders struct{}

// RegisterDefaultEncoders will register the encoder methods attached to
// DefaultValueEncoders with the provided RegistryBuilder.
func (dve DefaultValueEncoders) RegisterDefaultEncoders(rb *RegistryBuilder) {
	if rb == nil {
		panic(errors.New("argument to RegisterDefaultEncoders must not be nil"))
	}
	rb.
		RegisterEncoder(tByteSlice, ValueEncoderFunc(dve.ByteSliceEncodeValue)).
		RegisterEncoder(tBinaryMarshaler, ValueEncoderFunc(dve.BinaryMarshalerEncodeValue)).
		RegisterDefaultEncoder(reflect.Bool, ValueEncoderFunc(dve.BooleanEncodeValue)).
		RegisterDefaultEncoder(reflect.Int, ValueEncoderFunc(dve.IntEncodeValue)).
		RegisterDefaultEncoder(reflect.Int8, ValueEncoderFunc(dve.IntEncodeValue)).
		RegisterDefaultEncoder(reflect.Int16, ValueEncoderFunc(dve.IntEncodeValue)).
		RegisterDefaultEncoder(reflect.Int32, ValueEncoderFunc(dve.IntEncodeValue)).
		RegisterDefaultEncoder(reflect.Int64, ValueEncoderFunc(dve.IntEncodeValue)).
		RegisterDefaultEncoder(reflect.Uint, ValueEncoderFunc(dve.UintEncodeValue)).
		RegisterDefaultEncoder(reflect.Uint8, ValueEncoderFunc(dve.UintEncodeValue)).
		RegisterDefaultEncoder(reflect.Uint16, ValueEncoderFunc(dve.UintEncodeValue)).
		RegisterDefaultEncoder(reflect.Uint32, ValueEncoderFunc(dve.UintEncodeValue)).
		RegisterDefaultEncoder(reflect.Uint64, ValueEncoderFunc(dve.UintEncodeValue)).
		RegisterDefaultEncoder(reflect.Float32, ValueEncoderFunc(dve.FloatEncodeValue)).
		RegisterDefaultEncoder(reflect.Float64, ValueEncoderFunc(dve.FloatEncodeValue)).
		RegisterDefaultEncoder(reflect.Array, ValueEncoderFunc(dve.ArrayEncodeValue)).
		RegisterDefaultEncoder(reflect.Slice, ValueEncoderFunc(dve.SliceEncodeValue)).
		RegisterDefaultEncoder(reflect.String, ValueEncoderFunc(dve.StringEncodeValue)).
		RegisterDefaultEncoder(reflect.Interface, ValueEncoderFunc(dve.EmptyInterfaceEncodeValue)).
		RegisterDefaultEncoder(reflect.Ptr, NewPointerCodec()).
		RegisterDefaultEncoder(reflect.Struct, defaultStructCodec)
}

// BooleanEncodeValue is the ValueEncoderFunc for bool types. A bool encodes
// as a single byte, 1 for true and 0 for false.
func (dve DefaultValueEncoders) BooleanEncodeValue(ec EncodeContext, vw binrw.ValueWriter, val reflect.Value) error {
	if !val.IsValid() || val.Kind() != reflect.Bool {
		return ValueEncoderError{Name: "BooleanEncodeValue", Kinds: []reflect.Kind{reflect.Bool}, Received: val}
	}
	var b byte
	if val.Bool() {
		b = 1
	}
	return vw.WriteBytes([]byte{b})
}

// IntEncodeValue is the ValueEncoderFunc for signed integer types. The
// output width is fixed by the type: int8 is 1 byte, int16 is 2, int32 is 4,
// and int64 is 8. Go's platform-width int always encodes as 8 bytes so
// output does not depend on the host.
func (dve DefaultValueEncoders) IntEncodeValue(ec EncodeContext, vw binrw.ValueWriter, val reflect.Value) error {
	if !val.IsValid() {
		return ValueEncoderError{
			Name:     "IntEncodeValue",
			Kinds:    []reflect.Kind{reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64, reflect.Int},
			Received: val,
		}
	}

	bo := ec.Order.Engine()
	var buf [8]byte
	switch val.Kind() {
	case reflect.Int8:
		return vw.WriteBytes([]byte{byte(val.Int())})
	case reflect.Int16:
		return vw.WriteBytes(bo.AppendUint16(buf[:0], uint16(val.Int())))
	case reflect.Int32:
		return vw.WriteBytes(bo.AppendUint32(buf[:0], uint32(val.Int())))
	case reflect.Int64, reflect.Int:
		return vw.WriteBytes(bo.AppendUint64(buf[:0], uint64(val.Int())))
	}

	return ValueEncoderError{
		Name:     "IntEncodeValue",
		Kinds:    []reflect.Kind{reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64, reflect.Int},
		Received: val,
	}
}

// UintEncodeValue is the ValueEncoderFunc for unsigned integer types. Widths
// follow the type exactly as for IntEncodeValue; the platform-width uint
// always encodes as 8 bytes.
func (dve DefaultValueEncoders) UintEncodeValue(ec EncodeContext, vw binrw.ValueWriter, val reflect.Value) error {
	if !val.IsValid() {
		return ValueEncoderError{
			Name:     "UintEncodeValue",
			Kinds:    []reflect.Kind{reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uint},
			Received: val,
		}
	}

	bo := ec.Order.Engine()
	var buf [8]byte
	switch val.Kind() {
	case reflect.Uint8:
		return vw.WriteBytes([]byte{byte(val.Uint())})
	case reflect.Uint16:
		return vw.WriteBytes(bo.AppendUint16(buf[:0], uint16(val.Uint())))
	case reflect.Uint32:
		return vw.WriteBytes(bo.AppendUint32(buf[:0], uint32(val.Uint())))
	case reflect.Uint64, reflect.Uint:
		return vw.WriteBytes(bo.AppendUint64(buf[:0], val.Uint()))
	}

	return ValueEncoderError{
		Name:     "UintEncodeValue",
		Kinds:    []reflect.Kind{reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uint},
		Received: val,
	}
}

// FloatEncodeValue is the ValueEncoderFunc for float types. Floats encode as
// their IEEE-754 bit pattern, 4 bytes for float32 and 8 for float64, in the
// effective byte order.
func (dve DefaultValueEncoders) FloatEncodeValue(ec EncodeContext, vw binrw.ValueWriter, val reflect.Value) error {
	if !val.IsValid() {
		return ValueEncoderError{
			Name:     "FloatEncodeValue",
			Kinds:    []reflect.Kind{reflect.Float32, reflect.Float64},
			Received: val,
		}
	}

	bo := ec.Order.Engine()
	var buf [8]byte
	switch val.Kind() {
	case reflect.Float32:
		return vw.WriteBytes(bo.AppendUint32(buf[:0], math.Float32bits(float32(val.Float()))))
	case reflect.Float64:
		return vw.WriteBytes(bo.AppendUint64(buf[:0], math.Float64bits(val.Float())))
	}

	return ValueEncoderError{
		Name:     "FloatEncodeValue",
		Kinds:    []reflect.Kind{reflect.Float32, reflect.Float64},
		Received: val,
	}
}

// StringEncodeValue is the ValueEncoderFunc for string types. A string
// encodes as its raw UTF-8 bytes with no terminator and no length prefix;
// framing, if the format needs it, belongs to the enclosing struct.
func (dve DefaultValueEncoders) StringEncodeValue(ec EncodeContext, vw binrw.ValueWriter, val reflect.Value) error {
	if !val.IsValid() || val.Kind() != reflect.String {
		return ValueEncoderError{Name: "StringEncodeValue", Kinds: []reflect.Kind{reflect.String}, Received: val}
	}
	if val.Len() == 0 {
		return nil
	}
	return vw.WriteBytes([]byte(val.String()))
}

// ByteSliceEncodeValue is the ValueEncoderFunc for []byte. The bytes are
// written through untouched; byte order does not apply to single bytes.
func (dve DefaultValueEncoders) ByteSliceEncodeValue(ec EncodeContext, vw binrw.ValueWriter, val reflect.Value) error {
	if !val.IsValid() || val.Type() != tByteSlice {
		return ValueEncoderError{Name: "ByteSliceEncodeValue", Types: []reflect.Type{tByteSlice}, Received: val}
	}
	if val.IsNil() || val.Len() == 0 {
		return nil
	}
	return vw.WriteBytes(val.Bytes())
}

// SliceEncodeValue is the ValueEncoderFunc for slice types. Elements are
// encoded in index order as a plain concatenation: no count, no terminator,
// no separators. A nil slice encodes as zero bytes.
func (dve DefaultValueEncoders) SliceEncodeValue(ec EncodeContext, vw binrw.ValueWriter, val reflect.Value) error {
	if !val.IsValid() || val.Kind() != reflect.Slice {
		return ValueEncoderError{Name: "SliceEncodeValue", Kinds: []reflect.Kind{reflect.Slice}, Received: val}
	}
	if val.IsNil() {
		return nil
	}
	return dve.encodeElements(ec, vw, val)
}

// ArrayEncodeValue is the ValueEncoderFunc for array types. The element
// count is part of the Go type, so the output is exactly the concatenation
// of the N element encodings.
func (dve DefaultValueEncoders) ArrayEncodeValue(ec EncodeContext, vw binrw.ValueWriter, val reflect.Value) error {
	if !val.IsValid() || val.Kind() != reflect.Array {
		return ValueEncoderError{Name: "ArrayEncodeValue", Kinds: []reflect.Kind{reflect.Array}, Received: val}
	}
	return dve.encodeElements(ec, vw, val)
}

func (dve DefaultValueEncoders) encodeElements(ec EncodeContext, vw binrw.ValueWriter, val reflect.Value) error {
	if val.Len() == 0 {
		return nil
	}

	encoder, err := ec.LookupEncoder(val.Type().Elem())
	if err != nil {
		return err
	}

	for idx := 0; idx < val.Len(); idx++ {
		if err := encoder.EncodeValue(ec, vw, val.Index(idx)); err != nil {
			return err
		}
	}
	return nil
}

// EmptyInterfaceEncodeValue is the ValueEncoderFunc for interface values.
// The encoder for the dynamic type is looked up and the inherited byte
// order is threaded through unchanged.
func (dve DefaultValueEncoders) EmptyInterfaceEncodeValue(ec EncodeContext, vw binrw.ValueWriter, val reflect.Value) error {
	if !val.IsValid() || val.Kind() != reflect.Interface {
		return ValueEncoderError{Name: "EmptyInterfaceEncodeValue", Kinds: []reflect.Kind{reflect.Interface}, Received: val}
	}
	if val.IsNil() {
		return ErrNilValue
	}

	encoder, err := ec.LookupEncoder(val.Elem().Type())
	if err != nil {
		return err
	}
	return encoder.EncodeValue(ec, vw, val.Elem())
}

// BinaryMarshalerEncodeValue is the ValueEncoderFunc for types implementing
// encoding.BinaryMarshaler. The marshaled bytes are written through
// verbatim; the implementation owns its own byte order.
func (dve DefaultValueEncoders) BinaryMarshalerEncodeValue(ec EncodeContext, vw binrw.ValueWriter, val reflect.Value) error {
	if !val.IsValid() || !val.Type().Implements(tBinaryMarshaler) {
		return ValueEncoderError{Name: "BinaryMarshalerEncodeValue", Types: []reflect.Type{tBinaryMarshaler}, Received: val}
	}

	m := val.Interface().(encoding.BinaryMarshaler)
	data, err := m.MarshalBinary()
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}
	return vw.WriteBytes(data)
}
