package extractor

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// gapRatio is the horizontal gap, relative to font size, that separates two words.
const gapRatio = 0.15

// ExtractLayoutText reads each page as rows of positioned glyph runs and rebuilds the
// lines, inserting spaces where runs are visibly apart. Pages are joined with "\n".
func ExtractLayoutText(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf reader panic: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("opening pdf: %w", err)
	}

	numPages := reader.NumPage()
	pages := make([]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			return "", fmt.Errorf("reading page %d: %w", i, err)
		}
		pages = append(pages, renderRows(rows))
	}
	return strings.Join(pages, "\n"), nil
}

func renderRows(rows pdf.Rows) string {
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		if row == nil {
			continue
		}
		line := strings.TrimRight(renderRow(row.Content), " ")
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

func renderRow(content pdf.TextHorizontal) string {
	runs := make([]pdf.Text, len(content))
	copy(runs, content)
	sort.SliceStable(runs, func(i, j int) bool { return runs[i].X < runs[j].X })

	var b strings.Builder
	for i, run := range runs {
		if i > 0 {
			prev := runs[i-1]
			size := prev.FontSize
			if size < 1 {
				size = 1
			}
			gap := run.X - (prev.X + prev.W)
			if gap > size*gapRatio && !strings.HasSuffix(prev.S, " ") && !strings.HasPrefix(run.S, " ") {
				b.WriteByte(' ')
			}
		}
		b.WriteString(run.S)
	}
	return b.String()
}
