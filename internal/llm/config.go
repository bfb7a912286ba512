package llm

// ModelTier represents the capability level required by a task
type ModelTier string

const (
	// TierLite is for cheap, simple calls: transferable skill discovery, keyword checks
	TierLite ModelTier = "lite"
	// TierStandard is for structured extraction of job postings and CVs
	TierStandard ModelTier = "standard"
	// TierAdvanced is for generation tasks that need careful rewriting
	TierAdvanced ModelTier = "advanced"
)

// Config maps model tiers to provider model names
type Config struct {
	Models map[ModelTier]string
}

// DefaultConfig returns the default Gemini model mapping
func DefaultConfig() *Config {
	return &Config{
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
	}
}

// ModelFor returns the model name for a tier, falling back to standard then lite
func (c *Config) ModelFor(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	return c.Models[TierLite]
}

// WithModel returns a copy of the config with one tier overridden
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	models := make(map[ModelTier]string, len(c.Models)+1)
	for k, v := range c.Models {
		models[k] = v
	}
	models[tier] = model
	return &Config{Models: models}
}
