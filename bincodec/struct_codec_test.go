package bincodec

import (
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/binwire/binwire/binrw/binrwtest"
	"github.com/binwire/binwire/endian"
)

func TestStructCodecEncodeValue(t *testing.T) {
	type pair struct {
		A uint16
		B uint16
	}

	type point struct {
		X int32
		Y int32
	}

	type sized struct {
		X    int32
		Y    int32
		Size pair `bin:"big"`
	}

	type mixed struct {
		Inherited uint16
		Forced    uint16 `bin:"big"`
	}

	type outerOverride struct {
		Inner pair `bin:"big"`
	}

	type innerOverride struct {
		A uint16
		B uint16 `bin:"little"`
	}

	type doubleNested struct {
		Inner innerOverride `bin:"big"`
	}

	type skipped struct {
		A uint8
		B uint8 `bin:"-"`
		C uint8
	}

	type unexported struct {
		A uint8
		b uint8
		C uint8
	}

	testCases := []struct {
		name  string
		order endian.Order
		val   interface{}
		want  []byte
	}{
		{
			"fields concatenate in declaration order",
			endian.Little,
			point{X: 1, Y: -2},
			[]byte{0x01, 0x00, 0x00, 0x00, 0xFE, 0xFF, 0xFF, 0xFF},
		},
		{
			"field override applies to its whole subtree",
			endian.Little,
			sized{X: 1, Y: -2, Size: pair{A: 3, B: 4}},
			[]byte{0x01, 0x00, 0x00, 0x00, 0xFE, 0xFF, 0xFF, 0xFF, 0x00, 0x03, 0x00, 0x04},
		},
		{
			"siblings keep the inherited order",
			endian.Little,
			mixed{Inherited: 0x0102, Forced: 0x0102},
			[]byte{0x02, 0x01, 0x01, 0x02},
		},
		{
			"nested override shadows the ancestor override",
			endian.Little,
			doubleNested{Inner: innerOverride{A: 0x0102, B: 0x0102}},
			[]byte{0x01, 0x02, 0x02, 0x01},
		},
		{
			"override propagates through an unannotated level",
			endian.Little,
			outerOverride{Inner: pair{A: 1, B: 2}},
			[]byte{0x00, 0x01, 0x00, 0x02},
		},
		{
			"skipped fields write nothing",
			endian.Big,
			skipped{A: 1, B: 2, C: 3},
			[]byte{0x01, 0x03},
		},
		{
			"unexported fields are ignored",
			endian.Big,
			unexported{A: 1, b: 2, C: 3},
			[]byte{0x01, 0x03},
		},
		{
			"empty struct encodes zero bytes",
			endian.Big,
			struct{}{},
			nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			vw := binrwtest.NewValueWriter()
			err := defaultStructCodec.EncodeValue(testContext(tc.order), vw, reflect.ValueOf(tc.val))
			require.NoError(t, err)
			if diff := cmp.Diff(tc.want, vw.Bytes()); diff != "" {
				t.Errorf("encoded bytes mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStructCodecConcatenationLaw(t *testing.T) {
	// encode(struct{a,b}) must equal encode(a) ++ encode(b) at any nesting
	// depth.
	type inner struct {
		A uint16
		B uint32
	}
	type outer struct {
		I inner
		C uint8
	}

	val := outer{I: inner{A: 0x0102, B: 0x03040506}, C: 0x07}

	whole := binrwtest.NewValueWriter()
	require.NoError(t, defaultStructCodec.EncodeValue(testContext(endian.Big), whole, reflect.ValueOf(val)))

	parts := binrwtest.NewValueWriter()
	require.NoError(t, defaultStructCodec.EncodeValue(testContext(endian.Big), parts, reflect.ValueOf(val.I)))
	var dve DefaultValueEncoders
	require.NoError(t, dve.UintEncodeValue(testContext(endian.Big), parts, reflect.ValueOf(val.C)))

	require.Equal(t, parts.Bytes(), whole.Bytes())
}

func TestStructCodecStringModes(t *testing.T) {
	type cstr struct {
		Name string `bin:"cstr"`
	}
	type utf16be struct {
		Name string `bin:"utf16,big"`
	}
	type utf16le struct {
		Name string `bin:"utf16,little"`
	}
	type utf16null struct {
		Name string `bin:"utf16null,big"`
	}

	testCases := []struct {
		name string
		val  interface{}
		want []byte
	}{
		{"cstr appends NUL", cstr{Name: "ab"}, []byte{'a', 'b', 0x00}},
		{"cstr empty string", cstr{Name: ""}, []byte{0x00}},
		{"utf16 big", utf16be{Name: "ab"}, []byte{0x00, 0x61, 0x00, 0x62}},
		{"utf16 little", utf16le{Name: "ab"}, []byte{0x61, 0x00, 0x62, 0x00}},
		{"utf16 surrogate pair", utf16be{Name: "\U0001F600"}, []byte{0xD8, 0x3D, 0xDE, 0x00}},
		{"utf16null big", utf16null{Name: "a"}, []byte{0x00, 0x61, 0x00, 0x00}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			vw := binrwtest.NewValueWriter()
			err := defaultStructCodec.EncodeValue(testContext(endian.Big), vw, reflect.ValueOf(tc.val))
			require.NoError(t, err)
			require.Equal(t, tc.want, vw.Bytes())
		})
	}
}

func TestStructCodecLengthPrefix(t *testing.T) {
	type u8len struct {
		Data []byte `bin:"len=u8"`
	}
	type u16be struct {
		Items []uint16 `bin:"len=u16,big"`
	}
	type u16le struct {
		Items []uint16 `bin:"len=u16,little"`
	}
	type strlen struct {
		Name string `bin:"len=u8"`
	}

	t.Run("byte slice counts bytes", func(t *testing.T) {
		vw := binrwtest.NewValueWriter()
		err := defaultStructCodec.EncodeValue(testContext(endian.Big), vw, reflect.ValueOf(u8len{Data: []byte{0xAA, 0xBB}}))
		require.NoError(t, err)
		require.Equal(t, []byte{0x02, 0xAA, 0xBB}, vw.Bytes())
	})

	t.Run("slice counts elements in the field order", func(t *testing.T) {
		vw := binrwtest.NewValueWriter()
		err := defaultStructCodec.EncodeValue(testContext(endian.Little), vw, reflect.ValueOf(u16be{Items: []uint16{1, 2}}))
		require.NoError(t, err)
		require.Equal(t, []byte{0x00, 0x02, 0x00, 0x01, 0x00, 0x02}, vw.Bytes())

		vw = binrwtest.NewValueWriter()
		err = defaultStructCodec.EncodeValue(testContext(endian.Big), vw, reflect.ValueOf(u16le{Items: []uint16{1, 2}}))
		require.NoError(t, err)
		require.Equal(t, []byte{0x02, 0x00, 0x01, 0x00, 0x02, 0x00}, vw.Bytes())
	})

	t.Run("string counts bytes", func(t *testing.T) {
		vw := binrwtest.NewValueWriter()
		err := defaultStructCodec.EncodeValue(testContext(endian.Big), vw, reflect.ValueOf(strlen{Name: "abc"}))
		require.NoError(t, err)
		require.Equal(t, []byte{0x03, 'a', 'b', 'c'}, vw.Bytes())
	})

	t.Run("count outside the prefix range", func(t *testing.T) {
		vw := binrwtest.NewValueWriter()
		err := defaultStructCodec.EncodeValue(testContext(endian.Big), vw, reflect.ValueOf(u8len{Data: make([]byte, 256)}))
		var ule UnrepresentableLengthError
		require.ErrorAs(t, err, &ule)
		assert.Equal(t, 1, ule.Width)
		assert.Equal(t, 256, ule.Count)

		// Detected before any prefix byte reaches the sink.
		assert.Empty(t, vw.Bytes())
	})
}

func TestStructCodecFailFast(t *testing.T) {
	type triple struct {
		A uint8
		B uint8
		C uint8
	}

	vw := binrwtest.NewValueWriter()
	vw.FailAfter = 2

	err := defaultStructCodec.EncodeValue(testContext(endian.Big), vw, reflect.ValueOf(triple{A: 1, B: 2, C: 3}))
	require.Equal(t, binrwtest.ErrWriteRejected, err)

	// Bytes accepted before the failure remain written; nothing follows.
	require.Equal(t, []byte{0x01, 0x02}, vw.Bytes())
	require.Equal(t, 2, vw.Writes())
}

func TestStructCodecDescribeErrors(t *testing.T) {
	type modeOnInt struct {
		N int32 `bin:"cstr"`
	}
	type lenWithMode struct {
		S string `bin:"cstr,len=u8"`
	}
	type badOption struct {
		N int32 `bin:"bgi"`
	}
	type badWidth struct {
		Data []byte `bin:"len=u24"`
	}
	type lenOnInt struct {
		N int32 `bin:"len=u8"`
	}

	testCases := []struct {
		name string
		val  interface{}
	}{
		{"string mode on non-string field", modeOnInt{}},
		{"length prefix with terminated mode", lenWithMode{}},
		{"unknown tag option", badOption{}},
		{"invalid prefix width", badWidth{}},
		{"length prefix on integer field", lenOnInt{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			vw := binrwtest.NewValueWriter()
			err := defaultStructCodec.EncodeValue(testContext(endian.Big), vw, reflect.ValueOf(tc.val))
			require.Error(t, err)
			require.Empty(t, vw.Bytes())
		})
	}
}

func TestNewStructCodec(t *testing.T) {
	t.Run("nil parser", func(t *testing.T) {
		_, err := NewStructCodec(nil)
		require.Error(t, err)
	})

	t.Run("custom parser", func(t *testing.T) {
		// A parser that forces every field to big-endian.
		parser := StructTagParserFunc(func(reflect.StructField) (StructTags, error) {
			return StructTags{Order: endian.Big}, nil
		})
		sc, err := NewStructCodec(parser)
		require.NoError(t, err)

		type pair struct {
			A uint16
			B uint16
		}
		vw := binrwtest.NewValueWriter()
		err = sc.EncodeValue(testContext(endian.Little), vw, reflect.ValueOf(pair{A: 1, B: 2}))
		require.NoError(t, err)
		require.Equal(t, []byte{0x00, 0x01, 0x00, 0x02}, vw.Bytes())
	})
}
