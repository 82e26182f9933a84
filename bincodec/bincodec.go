// Copyright (C) binwire Authors 2020-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package bincodec implements the encoders that turn Go values into their
// declared binary layouts, and the registry used to look them up.
package bincodec

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/pkg/errors"

	"github.com/binwire/binwire/binrw"
	"github.com/binwire/binwire/endian"
)

// ErrNilValue is returned when a nil interface or nil pointer is encoded.
// A binary layout has no representation for the absence of a value.
var ErrNilValue = errors.New("cannot encode a nil value")

// EncodeContext is the contextual information required for an encoder to
// write a value: the registry used to look up encoders for child values and
// the byte order inherited from the enclosing scope.
//
// EncodeContext is passed by value. An encoder that changes Order for a
// subtree does so on its own copy, so the change never leaks to siblings.
type EncodeContext struct {
	*Registry

	// Order is the effective byte order for the current subtree. The struct
	// codec replaces it per field when the field declares an override.
	Order endian.Order
}

// ValueEncoder is the interface implemented by types that can encode a
// reflect.Value onto a binrw.ValueWriter.
type ValueEncoder interface {
	EncodeValue(EncodeContext, binrw.ValueWriter, reflect.Value) error
}

// ValueEncoderFunc is an adapter function that allows a function with the
// correct signature to be used as a ValueEncoder.
type ValueEncoderFunc func(EncodeContext, binrw.ValueWriter, reflect.Value) error

// EncodeValue implements the ValueEncoder interface.
func (fn ValueEncoderFunc) EncodeValue(ec EncodeContext, vw binrw.ValueWriter, val reflect.Value) error {
	return fn(ec, vw, val)
}

// ValueEncoderError is an error returned from a ValueEncoder when the
// provided value can't be encoded by that ValueEncoder.
type ValueEncoderError struct {
	Name     string
	Types    []reflect.Type
	Kinds    []reflect.Kind
	Received reflect.Value
}

func (vee ValueEncoderError) Error() string {
	typeKinds := make([]string, 0, len(vee.Types)+len(vee.Kinds))
	for _, t := range vee.Types {
		typeKinds = append(typeKinds, t.String())
	}
	for _, k := range vee.Kinds {
		typeKinds = append(typeKinds, k.String())
	}
	received := vee.Received.Kind().String()
	if vee.Received.IsValid() {
		received = vee.Received.Type().String()
	}
	return fmt.Sprintf("%s can only encode valid %s, but got %s", vee.Name, strings.Join(typeKinds, ", "), received)
}

// UnrepresentableLengthError is returned when a declared length prefix is
// too narrow to hold the actual count of the value it precedes. It is
// detected before any prefix byte is written.
type UnrepresentableLengthError struct {
	// Width is the prefix width in bytes.
	Width int
	// Count is the actual element or byte count.
	Count int
}

func (ule UnrepresentableLengthError) Error() string {
	return fmt.Sprintf("count %d does not fit in a %d-byte length prefix", ule.Count, ule.Width)
}
