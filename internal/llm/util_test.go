package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "json code block",
			input:    "```json\n{\"overall_score\": 80}\n```",
			expected: `{"overall_score": 80}`,
		},
		{
			name:     "generic code block",
			input:    "```\n{\"key\": \"value\"}\n```",
			expected: `{"key": "value"}`,
		},
		{
			name:     "plain JSON",
			input:    `{"key": "value"}`,
			expected: `{"key": "value"}`,
		},
		{
			name:     "preamble before JSON object",
			input:    "Here is the assessment:\n{\"formatting_score\": 90}",
			expected: `{"formatting_score": 90}`,
		},
		{
			name:     "trailing prose",
			input:    "{\"a\": {\"b\": 1}} Let me know if you need more.",
			expected: `{"a": {"b": 1}}`,
		},
		{
			name:     "braces inside strings",
			input:    `{"note": "use {curly} braces \"}\" carefully"}`,
			expected: `{"note": "use {curly} braces \"}\" carefully"}`,
		},
		{
			name:     "no object",
			input:    "  not json  ",
			expected: "not json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanJSONBlock(tt.input))
		})
	}
}

func TestExtractJSONObject_Unbalanced(t *testing.T) {
	assert.Equal(t, "", extractJSONObject(`{"open": true`))
	assert.Equal(t, "", extractJSONObject("no braces"))
}
