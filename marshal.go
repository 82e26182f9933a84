package binwire

import (
	"sync"

	"github.com/binwire/binwire/bincodec"
	"github.com/binwire/binwire/binrw"
	"github.com/binwire/binwire/endian"
)

var swPool = sync.Pool{
	New: func() interface{} {
		return binrw.NewSliceWriter(nil)
	},
}

// Marshal returns the binary encoding of val using the default registry and
// the host's native byte order.
//
// Marshal inspects "bin" struct tags and alters the encoding accordingly;
// see the package documentation and bincodec.StructTags for the tag format.
func Marshal(val interface{}) ([]byte, error) {
	return MarshalAppendWithOrder(endian.Native, nil, val)
}

// MarshalWithOrder returns the binary encoding of val with order as the
// top-level byte order. Fields that declare their own byte order keep it.
func MarshalWithOrder(order endian.Order, val interface{}) ([]byte, error) {
	return MarshalAppendWithOrder(order, nil, val)
}

// MarshalAppend will append the binary encoding of val to dst. If dst is
// not large enough to hold the encoding, dst will be grown.
func MarshalAppend(dst []byte, val interface{}) ([]byte, error) {
	return MarshalAppendWithOrder(endian.Native, dst, val)
}

// MarshalWithRegistry returns the binary encoding of val using Registry r.
func MarshalWithRegistry(r *bincodec.Registry, val interface{}) ([]byte, error) {
	return MarshalAppendWithRegistry(r, nil, val)
}

// MarshalAppendWithRegistry will append the binary encoding of val to dst
// using Registry r.
func MarshalAppendWithRegistry(r *bincodec.Registry, dst []byte, val interface{}) ([]byte, error) {
	return marshalAppend(r, endian.Native, dst, val)
}

// MarshalAppendWithOrder will append the binary encoding of val to dst with
// order as the top-level byte order.
func MarshalAppendWithOrder(order endian.Order, dst []byte, val interface{}) ([]byte, error) {
	return marshalAppend(bincodec.DefaultRegistry, order, dst, val)
}

func marshalAppend(r *bincodec.Registry, order endian.Order, dst []byte, val interface{}) ([]byte, error) {
	sw := swPool.Get().(*binrw.SliceWriter)
	defer swPool.Put(sw)
	sw.Reset(dst)

	enc := encPool.Get().(*Encoder)
	defer encPool.Put(enc)

	if err := enc.Reset(sw); err != nil {
		return nil, err
	}
	if err := enc.SetRegistry(r); err != nil {
		return nil, err
	}
	enc.SetOrder(order)

	if err := enc.Encode(val); err != nil {
		return nil, err
	}

	return sw.Bytes(), nil
}
