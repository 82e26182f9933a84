// Package binrwtest provides ValueWriter implementations for testing
// encoders.
package binrwtest

import (
	"errors"

	"github.com/binwire/binwire/binrw"
)

// ErrWriteRejected is the error a ValueWriter returns once its failure
// point has been reached and no other error was configured.
var ErrWriteRejected = errors.New("binrwtest: write rejected")

// ValueWriter records every write it accepts and can be configured to start
// rejecting writes once a byte limit would be exceeded. Rejection is whole
// write: a write that does not fit is refused entirely and the bytes
// accepted so far remain observable via Bytes.
type ValueWriter struct {
	// FailAfter is the number of bytes to accept before rejecting writes.
	// Negative means never reject.
	FailAfter int

	// Err is returned for rejected writes. ErrWriteRejected when nil.
	Err error

	buf    []byte
	writes int
}

var _ binrw.ValueWriter = (*ValueWriter)(nil)

// NewValueWriter returns a ValueWriter that never rejects.
func NewValueWriter() *ValueWriter {
	return &ValueWriter{FailAfter: -1}
}

// WriteBytes implements binrw.ValueWriter.
func (vw *ValueWriter) WriteBytes(p []byte) error {
	if vw.FailAfter >= 0 && len(vw.buf)+len(p) > vw.FailAfter {
		if vw.Err != nil {
			return vw.Err
		}
		return ErrWriteRejected
	}
	vw.buf = append(vw.buf, p...)
	vw.writes++
	return nil
}

// Bytes returns the accepted bytes in the order they arrived.
func (vw *ValueWriter) Bytes() []byte { return vw.buf }

// Writes returns the number of accepted WriteBytes calls.
func (vw *ValueWriter) Writes() int { return vw.writes }
