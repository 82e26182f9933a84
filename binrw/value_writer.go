// Package binrw contains the abstraction encoded bytes are written to, along
// with writers backed by byte slices and io.Writers.
package binrw

import (
	"errors"
	"io"
)

// ValueWriter is the destination the encoders write bytes to. It is
// append-only: implementations must preserve the order writes arrive in and
// must not reorder bytes across calls. A rejected write leaves previously
// accepted bytes in place; implementations must not partially accept a
// write and return nil.
type ValueWriter interface {
	WriteBytes(p []byte) error
}

var errNilWriter = errors.New("cannot create a ValueWriter from a nil io.Writer")

// SliceWriter is a ValueWriter that appends to an in-memory byte slice,
// growing it as needed. The zero value is ready to use.
type SliceWriter struct {
	buf []byte
}

// NewSliceWriter returns a SliceWriter that appends to dst. dst may be nil.
func NewSliceWriter(dst []byte) *SliceWriter {
	return &SliceWriter{buf: dst}
}

// WriteBytes implements ValueWriter. It never fails.
func (sw *SliceWriter) WriteBytes(p []byte) error {
	sw.buf = append(sw.buf, p...)
	return nil
}

// Bytes returns the accumulated bytes.
func (sw *SliceWriter) Bytes() []byte { return sw.buf }

// Reset discards the accumulated bytes and starts appending to dst.
func (sw *SliceWriter) Reset(dst []byte) { sw.buf = dst }

type ioValueWriter struct {
	w io.Writer
}

// NewValueWriter returns a ValueWriter that writes to w. Errors from w are
// returned unchanged; a short write with a nil error is reported as
// io.ErrShortWrite.
func NewValueWriter(w io.Writer) (ValueWriter, error) {
	if w == nil {
		return nil, errNilWriter
	}
	return &ioValueWriter{w: w}, nil
}

func (vw *ioValueWriter) WriteBytes(p []byte) error {
	n, err := vw.w.Write(p)
	if err != nil {
		return err
	}
	if n < len(p) {
		return io.ErrShortWrite
	}
	return nil
}
