package output

import (
	"bufio"
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"
)

// DocumentWriter buffers records and encodes them as one document on Flush:
// a single record is written as is, several as a list.
type DocumentWriter struct {
	w      *bufio.Writer
	encode func(w io.Writer, v any) error
	items  []any
}

// NewJSONWriter creates a writer that emits a JSON document.
func NewJSONWriter(w io.Writer, pretty bool, indent string) *DocumentWriter {
	return &DocumentWriter{
		w: bufio.NewWriter(w),
		encode: func(w io.Writer, v any) error {
			enc := json.NewEncoder(w)
			enc.SetEscapeHTML(false)
			if pretty {
				enc.SetIndent("", indent)
			}
			return enc.Encode(v)
		},
		items: make([]any, 0),
	}
}

// NewYAMLWriter creates a writer that emits a YAML document.
func NewYAMLWriter(w io.Writer) *DocumentWriter {
	return &DocumentWriter{
		w: bufio.NewWriter(w),
		encode: func(w io.Writer, v any) error {
			enc := yaml.NewEncoder(w)
			enc.SetIndent(2)
			if err := enc.Encode(v); err != nil {
				return err
			}
			return enc.Close()
		},
		items: make([]any, 0),
	}
}

// Write buffers a single record.
func (d *DocumentWriter) Write(data any) error {
	d.items = append(d.items, data)
	return nil
}

// Flush encodes the buffered records.
func (d *DocumentWriter) Flush() error {
	var doc any = d.items
	if len(d.items) == 1 {
		doc = d.items[0]
	}
	if err := d.encode(d.w, doc); err != nil {
		return err
	}
	return d.w.Flush()
}
