package binwire

import (
	"reflect"
	"sync"

	"github.com/pkg/errors"

	"github.com/binwire/binwire/bincodec"
	"github.com/binwire/binwire/binrw"
	"github.com/binwire/binwire/endian"
)

// This pool is used to keep the allocations of Encoders down. This is only
// used for the Marshal* functions and is not consumable from outside of this
// package. The Encoders retrieved from this pool must have Reset,
// SetRegistry, and SetOrder called on them.
var encPool = sync.Pool{
	New: func() interface{} {
		return new(Encoder)
	},
}

// An Encoder writes the binary encoding of values to a ValueWriter.
type Encoder struct {
	r     *bincodec.Registry
	vw    binrw.ValueWriter
	order endian.Order
}

// NewEncoder returns a new encoder that uses Registry r to write to vw. The
// top-level byte order defaults to the host's native order; use SetOrder to
// change it.
func NewEncoder(r *bincodec.Registry, vw binrw.ValueWriter) (*Encoder, error) {
	if r == nil {
		return nil, errors.New("cannot create a new Encoder with a nil Registry")
	}
	if vw == nil {
		return nil, errors.New("cannot create a new Encoder with a nil ValueWriter")
	}

	return &Encoder{
		r:     r,
		vw:    vw,
		order: endian.Native,
	}, nil
}

// Encode writes the binary encoding of val to the stream.
//
// The documentation for Marshal contains details about the conversion of Go
// values to bytes.
func (e *Encoder) Encode(val interface{}) error {
	if val == nil {
		return bincodec.ErrNilValue
	}

	encoder, err := e.r.LookupEncoder(reflect.TypeOf(val))
	if err != nil {
		return err
	}

	ec := bincodec.EncodeContext{
		Registry: e.r,
		Order:    endian.Resolve(endian.Native, e.order),
	}
	return encoder.EncodeValue(ec, e.vw, reflect.ValueOf(val))
}

// Reset will reset the state of the encoder, using the same *Registry used
// in the original construction but writing to vw.
func (e *Encoder) Reset(vw binrw.ValueWriter) error {
	e.vw = vw
	return nil
}

// SetRegistry replaces the current registry of the encoder with r.
func (e *Encoder) SetRegistry(r *bincodec.Registry) error {
	e.r = r
	return nil
}

// SetOrder sets the top-level byte order established before any per-field
// overrides apply. endian.Inherit behaves as endian.Native.
func (e *Encoder) SetOrder(order endian.Order) {
	e.order = order
}
