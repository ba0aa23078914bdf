// Package llm provides the text-generation client the CV builder uses for
// field suggestions and whole-document drafts.
package llm

// ModelTier selects the capability level for a generation call.
type ModelTier string

const (
	// TierLite is for short single-field suggestions.
	TierLite ModelTier = "lite"
	// TierStandard is for whole-document structured generation.
	TierStandard ModelTier = "standard"
)

// Config holds the model configuration for the application.
type Config struct {
	Models map[ModelTier]string
}

// DefaultConfig returns the default Gemini model mapping.
func DefaultConfig() *Config {
	return &Config{
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
		},
	}
}

// GetModel returns the model name for a tier, falling back to the standard
// tier when the requested one is not configured.
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	return ""
}
