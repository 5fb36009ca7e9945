package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_RequiresKey(t *testing.T) {
	_, err := New(Options{APIKey: "  "})
	assert.ErrorIs(t, err, ErrNoAPIKey)

	c, err := New(Options{APIKey: "sk-test"})
	assert.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", c.Model())
}

func TestStripFence(t *testing.T) {
	assert.Equal(t, `{"tool":"forecast_decline"}`, StripFence("```json\n{\"tool\":\"forecast_decline\"}\n```"))
	assert.Equal(t, `{}`, StripFence(" {} "))
}
