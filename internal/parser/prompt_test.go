package parser_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docorch/internal/domain"
	"docorch/internal/parser"
)

func TestBuildPrompt_ContainsSchemaRulesAndQuestion(t *testing.T) {
	system, user := parser.BuildPrompt("List the skills mentioned.", "Alice has Python and Go skills.")

	assert.Equal(t, parser.SystemPrompt, system)
	assert.Contains(t, system, "JSON")
	assert.True(t, strings.HasPrefix(user, "Return JSON with the following shape:"))
	assert.Contains(t, user, `"key_points": [{"key": "…", "value": "…"}]`)
	assert.Contains(t, user, `"risk_level": "Low|Medium|High"`)
	assert.Contains(t, user, `"confidence": 0.0`)
	assert.Contains(t, user, "Aim for 5–8 key_points")
	assert.Contains(t, user, `set "Low"`)
	assert.Contains(t, user, "confidence ∈ [0,1]")
	assert.Contains(t, user, "QUESTION:\nList the skills mentioned.\n")
	assert.True(t, strings.HasSuffix(user, "DOCUMENT TEXT (truncated if long):\nAlice has Python and Go skills."))
}

func TestBuildPrompt_Idempotent(t *testing.T) {
	text := strings.Repeat("résumé line\n", 3000)

	s1, u1 := parser.BuildPrompt("What is the risk?", text)
	s2, u2 := parser.BuildPrompt("What is the risk?", text)

	assert.Equal(t, s1, s2)
	assert.Equal(t, u1, u2)
}

func TestBuildPrompt_TruncatesDocumentText(t *testing.T) {
	text := strings.Repeat("é", domain.PromptTextLimit) + "TAIL-MARKER"

	_, user := parser.BuildPrompt("q", text)

	assert.NotContains(t, user, "TAIL-MARKER")
	idx := strings.Index(user, "DOCUMENT TEXT (truncated if long):\n")
	require.GreaterOrEqual(t, idx, 0)
	embedded := user[idx+len("DOCUMENT TEXT (truncated if long):\n"):]
	assert.Equal(t, domain.PromptTextLimit, utf8.RuneCountInString(embedded))
}

func TestTruncateChars(t *testing.T) {
	out, cut := parser.TruncateChars("héllo", 3)
	assert.Equal(t, "hél", out)
	assert.True(t, cut)

	out, cut = parser.TruncateChars("héllo", 5)
	assert.Equal(t, "héllo", out)
	assert.False(t, cut)

	out, cut = parser.TruncateChars("", 10)
	assert.Equal(t, "", out)
	assert.False(t, cut)
}

func TestTruncateChars_PromptPrefixOfRetained(t *testing.T) {
	text := strings.Repeat("abcdé", 12000)

	prompt, _ := parser.TruncateChars(text, domain.PromptTextLimit)
	retained, cut := parser.TruncateChars(text, domain.RetainedTextLimit)

	assert.True(t, cut)
	assert.Equal(t, domain.RetainedTextLimit, utf8.RuneCountInString(retained))
	assert.True(t, strings.HasPrefix(retained, prompt))
	assert.LessOrEqual(t, domain.PromptTextLimit, domain.RetainedTextLimit)
}
