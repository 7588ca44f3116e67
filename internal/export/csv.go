package export

import (
	"encoding/csv"
	"io"

	"docorch/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the header row shared by both formats.
var columns = []string{"Key", "Value"}

// Writer wraps csv.Writer for exporting key points as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteKeyPoints writes one row per key point.
func (w *Writer) WriteKeyPoints(points []domain.KeyPoint) error {
	for _, p := range points {
		if err := w.csv.Write([]string{p.Key, p.Value}); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}
