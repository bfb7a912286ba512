package qa

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractNumberTokens_Shapes(t *testing.T) {
	tokens := extractNumberTokens("Cut costs by 25% ($120,000) across 3 teams")

	assert.Contains(t, tokens, "25%")
	assert.Contains(t, tokens, "$120,000")
	assert.Contains(t, tokens, "3")
}

func TestExtractNumberTokens_None(t *testing.T) {
	assert.Empty(t, extractNumberTokens("no metrics here"))
}

func TestNumberIsSupported_ExactStringMatch(t *testing.T) {
	originals := map[string]bool{"25%": true}

	assert.True(t, numberIsSupported("25%", originals))
}

func TestNumberIsSupported_WithinTolerance(t *testing.T) {
	originals := map[string]bool{"100": true}

	assert.True(t, numberIsSupported("95", originals))
	assert.True(t, numberIsSupported("110", originals))
	assert.False(t, numberIsSupported("111", originals))
	assert.False(t, numberIsSupported("89", originals))
}

func TestNumberIsSupported_UnparsableIsValid(t *testing.T) {
	assert.True(t, numberIsSupported("$", map[string]bool{}))
}

func TestParseNumeric(t *testing.T) {
	value, ok := parseNumeric("$120,000")
	assert.True(t, ok)
	assert.Equal(t, 120000.0, value)

	value, ok = parseNumeric("25%")
	assert.True(t, ok)
	assert.Equal(t, 25.0, value)

	_, ok = parseNumeric("none")
	assert.False(t, ok)
}
