package output

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// LineWriter writes one line per record as records arrive.
type LineWriter struct {
	w      *bufio.Writer
	format func(v any) ([]byte, error)
}

// NewJSONLWriter creates a writer for newline-delimited JSON.
func NewJSONLWriter(w io.Writer) *LineWriter {
	return &LineWriter{
		w:      bufio.NewWriter(w),
		format: marshalLine,
	}
}

func marshalLine(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// NewTextWriter creates a writer that prints each record with fmt.Sprint,
// so records implementing fmt.Stringer control their text form.
func NewTextWriter(w io.Writer) *LineWriter {
	return &LineWriter{
		w: bufio.NewWriter(w),
		format: func(v any) ([]byte, error) {
			return []byte(fmt.Sprint(v)), nil
		},
	}
}

// Write writes a single record followed by a newline.
func (l *LineWriter) Write(data any) error {
	line, err := l.format(data)
	if err != nil {
		return err
	}
	if _, err := l.w.Write(line); err != nil {
		return err
	}
	if err := l.w.WriteByte('\n'); err != nil {
		return err
	}
	return l.w.Flush()
}

// Flush flushes the buffer.
func (l *LineWriter) Flush() error {
	return l.w.Flush()
}
