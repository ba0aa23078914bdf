package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_GetModel(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "gemini-2.5-flash-lite", cfg.GetModel(TierLite))
	assert.Equal(t, "gemini-2.5-flash", cfg.GetModel(TierStandard))

	// Unknown tiers fall back to standard
	assert.Equal(t, "gemini-2.5-flash", cfg.GetModel(ModelTier("turbo")))

	empty := &Config{Models: map[ModelTier]string{}}
	assert.Empty(t, empty.GetModel(TierLite))
}

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain json", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding whitespace", "  {\"a\":1}\n", `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanJSONBlock(tt.input))
		})
	}
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	_, err := NewClient(t.Context(), nil, "")
	assert.Error(t, err)
}
