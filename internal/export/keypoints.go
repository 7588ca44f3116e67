// Package export renders the key points of a structured result as CSV or XLSX downloads.
package export

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"docorch/internal/domain"
)

// KeyPoints returns the {key, value} entries of result["key_points"]. Entries that are not
// objects are skipped. When the result carries no key_points list, the top-level fields of
// an object result are returned instead, sorted by name, so a raw fallback still exports.
func KeyPoints(result domain.StructuredResult) []domain.KeyPoint {
	obj, ok := result.(map[string]any)
	if !ok {
		if result == nil {
			return nil
		}
		return []domain.KeyPoint{{Key: "result", Value: formatValue(result)}}
	}

	if list, ok := obj["key_points"].([]any); ok {
		points := make([]domain.KeyPoint, 0, len(list))
		for _, item := range list {
			kp, ok := item.(map[string]any)
			if !ok {
				continue
			}
			points = append(points, domain.KeyPoint{
				Key:   formatValue(kp["key"]),
				Value: formatValue(kp["value"]),
			})
		}
		return points
	}

	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	points := make([]domain.KeyPoint, 0, len(keys))
	for _, k := range keys {
		points = append(points, domain.KeyPoint{Key: k, Value: formatValue(obj[k])})
	}
	return points
}

func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(b)
	}
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	if s == "" {
		s = "key_points"
	}
	return s
}

// BaseName derives the export base name from the uploaded document name:
// "My CV.pdf" becomes "My CV_key_points" before sanitizing.
func BaseName(document string) string {
	document = filepath.Base(strings.ReplaceAll(document, "\\", "/"))
	document = strings.TrimSuffix(document, filepath.Ext(document))
	if document == "" || document == "." || document == "/" {
		return "key_points"
	}
	return document + "_key_points"
}

// BuildFilename returns {sanitized_base}_{YYYY-MM-DD}.{format}.
func BuildFilename(base string, format domain.ExportFormat) string {
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_%s.%s", SanitizeFilename(base), date, format)
}
