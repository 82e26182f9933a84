// Copyright (C) binwire Authors 2020-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bincodec

import (
	"reflect"
	"strings"

	"github.com/pkg/errors"

	"github.com/binwire/binwire/endian"
)

// StringMode selects how a string field is laid out on the wire.
type StringMode byte

const (
	// StringRaw writes the string's UTF-8 bytes with no terminator.
	StringRaw StringMode = iota
	// StringCString writes the UTF-8 bytes followed by a NUL byte.
	StringCString
	// StringUTF16 writes UTF-16 code units in the field's effective byte
	// order with no terminator.
	StringUTF16
	// StringUTF16Null is StringUTF16 followed by a NUL code unit.
	StringUTF16Null
)

// StructTags represents the struct tag fields the StructCodec uses to
// configure a field's encoding.
//
// The properties are defined below:
//
//	big, little, native  Override the byte order for this field. The
//	                     override applies to the field's entire encoded
//	                     subtree: a nested struct or sequence inherits it
//	                     unless one of its own fields declares an override.
//	                     Without one of these flags the field inherits the
//	                     order of its enclosing struct.
//
//	cstr                 Write a string field as UTF-8 followed by a NUL
//	                     byte.
//
//	utf16, utf16null     Write a string field as UTF-16 code units in the
//	                     field's effective byte order, without or with a
//	                     trailing NUL code unit.
//
//	len=u8|u16|u32|u64   Precede the field with its count in the field's
//	                     effective byte order: the element count for slices
//	                     and arrays, the byte count for strings and byte
//	                     slices. A count outside the prefix's range fails
//	                     with UnrepresentableLengthError.
//
//	-                    Skip this field entirely.
//
// Unknown options are an error rather than being ignored: a misspelled flag
// would otherwise silently change the byte layout.
type StructTags struct {
	Order    endian.Order
	Mode     StringMode
	LenWidth int
	Skip     bool
}

// StructTagParser returns the struct tags for a given struct field.
type StructTagParser interface {
	ParseStructTags(reflect.StructField) (StructTags, error)
}

// StructTagParserFunc is an adapter function that allows a function with the
// correct signature to be used as a StructTagParser.
type StructTagParserFunc func(reflect.StructField) (StructTags, error)

// ParseStructTags implements the StructTagParser interface.
func (stpf StructTagParserFunc) ParseStructTags(sf reflect.StructField) (StructTags, error) {
	return stpf(sf)
}

// DefaultStructTagParser is the StructTagParser used by the StructCodec by
// default. It handles the "bin" struct tag; a bare tag with no key is
// accepted the same way:
//
//	type Header struct {
//	    Magic   uint32 `bin:"big"`
//	    Version uint16
//	    Name    string `bin:"cstr"`
//	    Body    []byte `bin:"len=u32,little"`
//	    scratch int    `bin:"-"`
//	}
var DefaultStructTagParser StructTagParserFunc = func(sf reflect.StructField) (StructTags, error) {
	tag, ok := sf.Tag.Lookup("bin")
	if !ok && !strings.Contains(string(sf.Tag), ":") && len(sf.Tag) > 0 {
		tag = string(sf.Tag)
	}
	return parseTags(tag)
}

func parseTags(tag string) (StructTags, error) {
	var st StructTags
	if tag == "-" {
		st.Skip = true
		return st, nil
	}

	for _, str := range strings.Split(tag, ",") {
		switch {
		case str == "":
		case str == "big":
			st.Order = endian.Big
		case str == "little":
			st.Order = endian.Little
		case str == "native":
			st.Order = endian.Native
		case str == "cstr":
			st.Mode = StringCString
		case str == "utf16":
			st.Mode = StringUTF16
		case str == "utf16null":
			st.Mode = StringUTF16Null
		case strings.HasPrefix(str, "len="):
			switch strings.TrimPrefix(str, "len=") {
			case "u8":
				st.LenWidth = 1
			case "u16":
				st.LenWidth = 2
			case "u32":
				st.LenWidth = 4
			case "u64":
				st.LenWidth = 8
			default:
				return st, errors.Errorf("invalid length prefix width %q", str)
			}
		default:
			return st, errors.Errorf("unknown bin tag option %q", str)
		}
	}

	return st, nil
}
