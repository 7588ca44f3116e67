package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"docorch/internal/domain"
)

func sampleResult() map[string]any {
	return map[string]any{
		"key_points": []any{
			map[string]any{"key": "skills", "value": "Python, Go"},
			map[string]any{"key": "years", "value": float64(7)},
			"not an object",
			map[string]any{"key": "remote", "value": true},
		},
		"risk_level": "Low",
		"confidence": 0.8,
	}
}

func TestKeyPoints_FromList(t *testing.T) {
	points := KeyPoints(sampleResult())

	assert.Equal(t, []domain.KeyPoint{
		{Key: "skills", Value: "Python, Go"},
		{Key: "years", Value: "7"},
		{Key: "remote", Value: "true"},
	}, points)
}

func TestKeyPoints_FallsBackToTopLevelFields(t *testing.T) {
	points := KeyPoints(map[string]any{"raw": "not json", "a": map[string]any{"b": 1.5}})

	assert.Equal(t, []domain.KeyPoint{
		{Key: "a", Value: `{"b":1.5}`},
		{Key: "raw", Value: "not json"},
	}, points)
}

func TestKeyPoints_NonObjectResult(t *testing.T) {
	assert.Nil(t, KeyPoints(nil))
	assert.Equal(t, []domain.KeyPoint{{Key: "result", Value: `[1,2]`}}, KeyPoints([]any{1.0, 2.0}))
}

func TestRender_CSV(t *testing.T) {
	data, ct, err := Render(domain.ExportFormatCSV, sampleResult())
	require.NoError(t, err)
	assert.Equal(t, ContentTypeCSV, ct)
	require.True(t, bytes.HasPrefix(data, BOM))

	rows, err := csv.NewReader(bytes.NewReader(data[len(BOM):])).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"Key", "Value"}, rows[0])
	assert.Equal(t, []string{"skills", "Python, Go"}, rows[1])
}

func TestRender_XLSX(t *testing.T) {
	data, ct, err := Render(domain.ExportFormatXLSX, sampleResult())
	require.NoError(t, err)
	assert.Equal(t, ContentTypeXLSX, ct)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"Key", "Value"}, rows[0])
	assert.Equal(t, []string{"remote", "true"}, rows[3])
}

func TestRender_UnsupportedFormat(t *testing.T) {
	_, _, err := Render("pdf", sampleResult())
	assert.ErrorIs(t, err, domain.ErrUnsupportedExport)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, domain.ExportFormatCSV, f)

	f, err = ParseFormat("XLSX")
	require.NoError(t, err)
	assert.Equal(t, domain.ExportFormatXLSX, f)

	_, err = ParseFormat("docx")
	assert.ErrorIs(t, err, domain.ErrUnsupportedExport)
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"resume.pdf", "resume_pdf"},
		{"My  CV (final)", "My_CV_final"},
		{"***", "key_points"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeFilename(tt.input), tt.input)
	}
}

func TestBaseName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"cv.pdf", "cv_key_points"},
		{"uploads/My CV (final).PDF", "My CV (final)_key_points"},
		{`C:\Users\bob\notes.txt`, "notes_key_points"},
		{"", "key_points"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BaseName(tt.input), tt.input)
	}

	date := time.Now().Format("2006-01-02")
	assert.Equal(t, "My_CV_final_key_points_"+date+".csv",
		BuildFilename(BaseName("My CV (final).pdf"), domain.ExportFormatCSV))
}

func TestBuildFilename(t *testing.T) {
	date := time.Now().Format("2006-01-02")
	assert.Equal(t, "notes_txt_"+date+".xlsx", BuildFilename("notes.txt", domain.ExportFormatXLSX))
}
