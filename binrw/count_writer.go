package binrw

// CountingValueWriter wraps a ValueWriter and tracks how many bytes have
// been accepted through it. Rejected writes do not advance the count.
type CountingValueWriter struct {
	vw ValueWriter
	n  int64
}

// NewCountingValueWriter returns a CountingValueWriter that forwards every
// write to vw.
func NewCountingValueWriter(vw ValueWriter) *CountingValueWriter {
	return &CountingValueWriter{vw: vw}
}

// WriteBytes implements ValueWriter.
func (cw *CountingValueWriter) WriteBytes(p []byte) error {
	if err := cw.vw.WriteBytes(p); err != nil {
		return err
	}
	cw.n += int64(len(p))
	return nil
}

// BytesWritten returns the number of bytes accepted since construction.
func (cw *CountingValueWriter) BytesWritten() int64 { return cw.n }
