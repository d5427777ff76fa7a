package providers

// Sampling defaults applied when the caller omits a field.
const (
	DefaultTemperature = 0.6
	DefaultTopP        = 0.95
	DefaultMaxTokens   = 8192
)

// GenerationConfig is the full set of sampling parameters sent upstream.
type GenerationConfig struct {
	Temperature float64
	TopP        float64
	MaxTokens   int
}

// DefaultGenerationConfig returns the sampling defaults.
func DefaultGenerationConfig() GenerationConfig {
	return GenerationConfig{
		Temperature: DefaultTemperature,
		TopP:        DefaultTopP,
		MaxTokens:   DefaultMaxTokens,
	}
}

// GenerationOverrides carries the caller-supplied generation_config. Fields
// are pointers so an absent or null key is distinguishable from a zero
// value.
type GenerationOverrides struct {
	Temperature *float64 `json:"temperature"`
	TopP        *float64 `json:"top_p"`
	MaxTokens   *int     `json:"max_tokens"`
}

// Merge applies the overrides on top of base, key by key. A nil field keeps
// the base value; a nil receiver keeps base unchanged.
func (o *GenerationOverrides) Merge(base GenerationConfig) GenerationConfig {
	if o == nil {
		return base
	}
	if o.Temperature != nil {
		base.Temperature = *o.Temperature
	}
	if o.TopP != nil {
		base.TopP = *o.TopP
	}
	if o.MaxTokens != nil {
		base.MaxTokens = *o.MaxTokens
	}
	return base
}
