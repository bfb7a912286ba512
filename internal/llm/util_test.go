package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONBlock_StripsFences(t *testing.T) {
	input := "```json\n{\"key\": \"value\"}\n```"

	assert.Equal(t, `{"key": "value"}`, CleanJSONBlock(input))
}

func TestCleanJSONBlock_PlainFence(t *testing.T) {
	input := "```\n{\"key\": \"value\"}\n```"

	assert.Equal(t, `{"key": "value"}`, CleanJSONBlock(input))
}

func TestCleanJSONBlock_NoFences(t *testing.T) {
	assert.Equal(t, `{"key": "value"}`, CleanJSONBlock(`  {"key": "value"}  `))
}

func TestExtractJSONObject_SurroundingProse(t *testing.T) {
	input := `Sure, here you go: {"a": 1} hope that helps`

	assert.Equal(t, `{"a": 1}`, ExtractJSONObject(input))
}

func TestExtractJSONObject_NestedBraces(t *testing.T) {
	input := `{"outer": {"inner": 1}}`

	assert.Equal(t, input, ExtractJSONObject(input))
}

func TestExtractJSONObject_NoObject(t *testing.T) {
	assert.Equal(t, "", ExtractJSONObject("no json here"))
	assert.Equal(t, "", ExtractJSONObject("} backwards {"))
}
