package parser

import (
	"encoding/json"
	"strings"

	"docorch/internal/domain"
)

// DecodeLenient decodes model output in two stages: the whole content, then the span
// from the first '{' to the last '}'. If neither parses, the content is wrapped as
// {"raw": content}. It never fails.
func DecodeLenient(content string) (domain.StructuredResult, domain.ParseMode) {
	var whole any
	if err := json.Unmarshal([]byte(content), &whole); err == nil {
		return whole, domain.ParseModeStrict
	}

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start >= 0 && end > start {
		var span any
		if err := json.Unmarshal([]byte(content[start:end+1]), &span); err == nil {
			return span, domain.ParseModeSpan
		}
	}

	return map[string]any{"raw": content}, domain.ParseModeRaw
}
