package bincodec

import (
	"encoding"
	"reflect"
)

var tByteSlice = reflect.TypeOf([]byte(nil))
var tBinaryMarshaler = reflect.TypeOf((*encoding.BinaryMarshaler)(nil)).Elem()
