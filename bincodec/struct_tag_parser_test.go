package bincodec

import (
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/binwire/binwire/endian"
)

func TestDefaultStructTagParser(t *testing.T) {
	testCases := []struct {
		name    string
		sf      reflect.StructField
		want    StructTags
		wantErr bool
	}{
		{
			"no tag",
			reflect.StructField{Name: "Foo"},
			StructTags{},
			false,
		},
		{
			"big",
			reflect.StructField{Name: "Foo", Tag: `bin:"big"`},
			StructTags{Order: endian.Big},
			false,
		},
		{
			"little",
			reflect.StructField{Name: "Foo", Tag: `bin:"little"`},
			StructTags{Order: endian.Little},
			false,
		},
		{
			"native",
			reflect.StructField{Name: "Foo", Tag: `bin:"native"`},
			StructTags{Order: endian.Native},
			false,
		},
		{
			"skip",
			reflect.StructField{Name: "Foo", Tag: `bin:"-"`},
			StructTags{Skip: true},
			false,
		},
		{
			"cstr",
			reflect.StructField{Name: "Foo", Tag: `bin:"cstr"`},
			StructTags{Mode: StringCString},
			false,
		},
		{
			"utf16",
			reflect.StructField{Name: "Foo", Tag: `bin:"utf16"`},
			StructTags{Mode: StringUTF16},
			false,
		},
		{
			"utf16null",
			reflect.StructField{Name: "Foo", Tag: `bin:"utf16null"`},
			StructTags{Mode: StringUTF16Null},
			false,
		},
		{
			"len=u8",
			reflect.StructField{Name: "Foo", Tag: `bin:"len=u8"`},
			StructTags{LenWidth: 1},
			false,
		},
		{
			"len=u64",
			reflect.StructField{Name: "Foo", Tag: `bin:"len=u64"`},
			StructTags{LenWidth: 8},
			false,
		},
		{
			"combined options",
			reflect.StructField{Name: "Foo", Tag: `bin:"len=u16,big"`},
			StructTags{Order: endian.Big, LenWidth: 2},
			false,
		},
		{
			"bare tag",
			reflect.StructField{Name: "Foo", Tag: `big`},
			StructTags{Order: endian.Big},
			false,
		},
		{
			"other key ignored",
			reflect.StructField{Name: "Foo", Tag: `json:"foo"`},
			StructTags{},
			false,
		},
		{
			"unknown option",
			reflect.StructField{Name: "Foo", Tag: `bin:"bgi"`},
			StructTags{},
			true,
		},
		{
			"bad prefix width",
			reflect.StructField{Name: "Foo", Tag: `bin:"len=u7"`},
			StructTags{},
			true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DefaultStructTagParser.ParseStructTags(tc.sf)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("tags mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
