// Package output renders positions as text diagrams or JSON.
package output

import (
	"encoding/json"
	"io"

	"github.com/lgbarn/alderchess-go/internal/engine"
)

// PositionWriter is the interface for writing positions to output.
type PositionWriter interface {
	// WritePosition writes a single position to the output.
	WritePosition(b *engine.BoardState) error

	// Flush flushes any buffered data to the underlying writer.
	Flush() error

	// Close closes the writer and releases any resources.
	// For batch writers (like JSON), this also writes any pending output.
	Close() error
}

// New returns a JSON writer that writes each position immediately when
// jsonFormat is set, and a TextWriter otherwise.
func New(w io.Writer, jsonFormat bool) PositionWriter {
	if jsonFormat {
		return NewJSONWriterSingle(w)
	}
	return NewTextWriter(w)
}

// TextWriter writes a diagram and summary per position.
type TextWriter struct {
	w io.Writer
}

// NewTextWriter creates a new text writer.
func NewTextWriter(w io.Writer) *TextWriter {
	return &TextWriter{w: w}
}

// WritePosition writes the diagram and summary.
func (tw *TextWriter) WritePosition(b *engine.BoardState) error {
	return writeText(tw.w, b)
}

// Flush is a no-op; text is written immediately.
func (tw *TextWriter) Flush() error {
	return nil
}

// Close closes the text writer.
func (tw *TextWriter) Close() error {
	return nil
}

// JSONWriter writes positions in JSON format.
// It buffers positions and writes them as a JSON array on Close or Flush.
type JSONWriter struct {
	w         io.Writer
	positions []*JSONPosition
	single    bool // write each position immediately instead of batching
}

// NewJSONWriter creates a new JSON writer.
// By default, it batches positions and writes them as an array on Close().
func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{w: w}
}

// NewJSONWriterSingle creates a JSON writer that writes each position immediately.
func NewJSONWriterSingle(w io.Writer) *JSONWriter {
	return &JSONWriter{w: w, single: true}
}

// WritePosition buffers a position (or writes it immediately in single mode).
// The position is converted at once, so later changes to b are not seen.
func (jw *JSONWriter) WritePosition(b *engine.BoardState) error {
	jp := PositionToJSON(b)
	if jw.single {
		return jw.encode(jp)
	}
	jw.positions = append(jw.positions, jp)
	return nil
}

// Flush writes all buffered positions as a JSON array.
func (jw *JSONWriter) Flush() error {
	if jw.single || len(jw.positions) == 0 {
		return nil
	}
	err := jw.encode(&JSONOutput{Positions: jw.positions})
	jw.positions = jw.positions[:0]
	return err
}

// Close flushes and closes the JSON writer.
func (jw *JSONWriter) Close() error {
	return jw.Flush()
}

func (jw *JSONWriter) encode(v interface{}) error {
	enc := json.NewEncoder(jw.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
