package bed

import (
	"bufio"
	"io"
)

// Writer writes BED records as tab-separated lines. BED files carry no
// header; every line is a record.
type Writer struct {
	w *bufio.Writer
}

// NewWriter creates a new BED line writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// Write writes a single record followed by a newline. Nil records (skipped
// features) are ignored.
func (bw *Writer) Write(rec Record) error {
	if rec == nil {
		return nil
	}
	if _, err := bw.w.WriteString(rec.String()); err != nil {
		return err
	}
	return bw.w.WriteByte('\n')
}

// Flush flushes any buffered data to the underlying writer.
func (bw *Writer) Flush() error {
	return bw.w.Flush()
}
