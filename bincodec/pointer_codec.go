package bincodec

import (
	"reflect"

	"github.com/binwire/binwire/binrw"
)

var _ ValueEncoder = (*PointerCodec)(nil)

// PointerCodec is the ValueEncoder used for pointers. A non-nil pointer
// encodes as its pointee; a nil pointer is an encoding error because a
// binary layout has no representation for a missing value.
type PointerCodec struct{}

// NewPointerCodec returns a PointerCodec.
func NewPointerCodec() *PointerCodec {
	return &PointerCodec{}
}

// EncodeValue implements the ValueEncoder interface.
func (pc *PointerCodec) EncodeValue(ec EncodeContext, vw binrw.ValueWriter, val reflect.Value) error {
	if !val.IsValid() || val.Kind() != reflect.Ptr {
		return ValueEncoderError{Name: "PointerCodec.EncodeValue", Kinds: []reflect.Kind{reflect.Ptr}, Received: val}
	}
	if val.IsNil() {
		return ErrNilValue
	}

	encoder, err := ec.LookupEncoder(val.Type().Elem())
	if err != nil {
		return err
	}
	return encoder.EncodeValue(ec, vw, val.Elem())
}
