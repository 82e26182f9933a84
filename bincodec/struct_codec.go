package bincodec

import (
	"reflect"
	"sync"

	"github.com/pkg/errors"

	"github.com/binwire/binwire/binrw"
	"github.com/binwire/binwire/endian"
)

var defaultStructCodec = &StructCodec{
	cache:  make(map[reflect.Type]*structDescription),
	parser: DefaultStructTagParser,
}

// StructCodec is the ValueEncoder used for struct values. A struct encodes
// as the dense concatenation of its exported fields in declaration order,
// with no padding or alignment between fields, so the field order alone
// determines the binary layout.
type StructCodec struct {
	cache  map[reflect.Type]*structDescription
	l      sync.RWMutex
	parser StructTagParser
}

var _ ValueEncoder = (*StructCodec)(nil)

// NewStructCodec returns a StructCodec that uses p for struct tag parsing.
func NewStructCodec(p StructTagParser) (*StructCodec, error) {
	if p == nil {
		return nil, errors.New("a StructTagParser must be provided to NewStructCodec")
	}

	return &StructCodec{
		cache:  make(map[reflect.Type]*structDescription),
		parser: p,
	}, nil
}

// EncodeValue handles encoding generic struct types. Fields are written in
// declaration order; the first failure aborts the remaining fields and
// propagates, leaving any bytes already written on the ValueWriter.
func (sc *StructCodec) EncodeValue(ec EncodeContext, vw binrw.ValueWriter, val reflect.Value) error {
	if !val.IsValid() || val.Kind() != reflect.Struct {
		return ValueEncoderError{Name: "StructCodec.EncodeValue", Kinds: []reflect.Kind{reflect.Struct}, Received: val}
	}

	sd, err := sc.describeStruct(val.Type())
	if err != nil {
		return err
	}

	for _, desc := range sd.fl {
		rv := val.Field(desc.idx)

		fec := ec
		fec.Order = endian.Resolve(ec.Order, desc.order)

		if desc.lenWidth > 0 {
			if err := writeLengthPrefix(fec, vw, desc, rv); err != nil {
				return err
			}
		}

		switch desc.mode {
		case StringCString:
			err = stringWriters.CStringEncodeValue(fec, vw, rv)
		case StringUTF16:
			err = stringWriters.UTF16StringEncodeValue(fec, vw, rv)
		case StringUTF16Null:
			err = stringWriters.UTF16NullStringEncodeValue(fec, vw, rv)
		default:
			var encoder ValueEncoder
			encoder, err = ec.LookupEncoder(rv.Type())
			if err == nil {
				err = encoder.EncodeValue(fec, vw, rv)
			}
		}
		if err != nil {
			return err
		}
	}

	return nil
}

// writeLengthPrefix writes the count of rv in the field's effective order.
// The range check happens before any prefix byte is written.
func writeLengthPrefix(ec EncodeContext, vw binrw.ValueWriter, desc fieldDescription, rv reflect.Value) error {
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.String:
	default:
		return errors.Errorf("cannot write a length prefix for field %s of kind %s", desc.name, rv.Kind())
	}

	width := desc.lenWidth
	n := rv.Len()
	if width < 8 && uint64(n) >= uint64(1)<<(8*uint(width)) {
		return UnrepresentableLengthError{Width: width, Count: n}
	}

	bo := ec.Order.Engine()
	var buf [8]byte
	switch width {
	case 1:
		return vw.WriteBytes([]byte{byte(n)})
	case 2:
		return vw.WriteBytes(bo.AppendUint16(buf[:0], uint16(n)))
	case 4:
		return vw.WriteBytes(bo.AppendUint32(buf[:0], uint32(n)))
	case 8:
		return vw.WriteBytes(bo.AppendUint64(buf[:0], uint64(n)))
	}
	return errors.Errorf("unsupported length prefix width %d", width)
}

type structDescription struct {
	fl []fieldDescription
}

type fieldDescription struct {
	name     string
	idx      int
	order    endian.Order
	mode     StringMode
	lenWidth int
}

func (sc *StructCodec) describeStruct(t reflect.Type) (*structDescription, error) {
	sc.l.RLock()
	ds, exists := sc.cache[t]
	sc.l.RUnlock()
	if exists {
		return ds, nil
	}

	numFields := t.NumField()
	sd := &structDescription{fl: make([]fieldDescription, 0, numFields)}

	for i := 0; i < numFields; i++ {
		sf := t.Field(i)
		if sf.PkgPath != "" {
			// unexported, ignore
			continue
		}

		stags, err := sc.parser.ParseStructTags(sf)
		if err != nil {
			return nil, errors.Wrapf(err, "cannot parse tags of field %s of struct %s", sf.Name, t)
		}
		if stags.Skip {
			continue
		}

		if stags.Mode != StringRaw && sf.Type.Kind() != reflect.String {
			return nil, errors.Errorf("(struct %s) string mode declared on non-string field %s", t, sf.Name)
		}
		if stags.Mode != StringRaw && stags.LenWidth > 0 {
			return nil, errors.Errorf("(struct %s) field %s combines a length prefix with a terminated string mode", t, sf.Name)
		}

		sd.fl = append(sd.fl, fieldDescription{
			name:     sf.Name,
			idx:      i,
			order:    stags.Order,
			mode:     stags.Mode,
			lenWidth: stags.LenWidth,
		})
	}

	sc.l.Lock()
	sc.cache[t] = sd
	sc.l.Unlock()

	return sd, nil
}
