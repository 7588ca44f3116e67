package export

import (
	"bytes"
	"fmt"
	"strings"

	"docorch/internal/domain"
)

// Content types of the supported formats.
const (
	ContentTypeCSV  = "text/csv; charset=utf-8"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ParseFormat maps a query value to an ExportFormat. Empty means CSV.
func ParseFormat(s string) (domain.ExportFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "csv":
		return domain.ExportFormatCSV, nil
	case "xlsx":
		return domain.ExportFormatXLSX, nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedExport, s)
	}
}

// Render encodes the key points of result in the given format.
func Render(format domain.ExportFormat, result domain.StructuredResult) (data []byte, contentType string, err error) {
	points := KeyPoints(result)
	switch format {
	case domain.ExportFormatCSV:
		var buf bytes.Buffer
		buf.Write(BOM)
		w := NewWriter(&buf)
		if err := w.WriteHeader(); err != nil {
			return nil, "", err
		}
		if err := w.WriteKeyPoints(points); err != nil {
			return nil, "", err
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), ContentTypeCSV, nil
	case domain.ExportFormatXLSX:
		b, err := XLSX(points)
		if err != nil {
			return nil, "", err
		}
		return b, ContentTypeXLSX, nil
	default:
		return nil, "", fmt.Errorf("%w: %q", domain.ErrUnsupportedExport, format)
	}
}
