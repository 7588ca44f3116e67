package parser

import (
	"strings"

	"docorch/internal/domain"
)

// SystemPrompt is the fixed system instruction for structured extraction.
const SystemPrompt = "You are a precise JSON extraction engine. Return ONLY compact JSON. No extra text."

const userPromptTemplate = `Return JSON with the following shape:
{
  "key_points": [{"key": "…", "value": "…"}],
  "risk_level": "Low|Medium|High",
  "confidence": 0.0
}

Rules:
- Aim for 5–8 key_points if possible; fewer is OK if the document is short.
- Keep values concise.
- If 'risk' doesn't apply, set "Low".
- confidence ∈ [0,1].

QUESTION:
`

// BuildPrompt returns the system and user instructions for a question about text.
// Only the first domain.PromptTextLimit characters of text are embedded.
func BuildPrompt(question, text string) (system, user string) {
	excerpt, _ := TruncateChars(text, domain.PromptTextLimit)

	var b strings.Builder
	b.Grow(len(userPromptTemplate) + len(question) + len(excerpt) + 64)
	b.WriteString(userPromptTemplate)
	b.WriteString(question)
	b.WriteString("\n\nDOCUMENT TEXT (truncated if long):\n")
	b.WriteString(excerpt)

	return SystemPrompt, strings.TrimSpace(b.String())
}

// TruncateChars returns the first limit characters (code points) of s and whether
// anything was cut.
func TruncateChars(s string, limit int) (string, bool) {
	if limit < 0 {
		limit = 0
	}
	if len(s) <= limit {
		return s, false
	}
	n := 0
	for i := range s {
		if n == limit {
			return s[:i], true
		}
		n++
	}
	return s, false
}
