package providers

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeNilOverridesKeepsDefaults(t *testing.T) {
	var overrides *GenerationOverrides

	merged := overrides.Merge(DefaultGenerationConfig())

	assert.Equal(t, DefaultGenerationConfig(), merged)
}

func TestMergeEmptyOverridesKeepsDefaults(t *testing.T) {
	merged := (&GenerationOverrides{}).Merge(DefaultGenerationConfig())

	assert.Equal(t, 0.6, merged.Temperature)
	assert.Equal(t, 0.95, merged.TopP)
	assert.Equal(t, 8192, merged.MaxTokens)
}

func TestMergePartialOverrides(t *testing.T) {
	temp := 0.2
	merged := (&GenerationOverrides{Temperature: &temp}).Merge(DefaultGenerationConfig())

	assert.Equal(t, 0.2, merged.Temperature)
	assert.Equal(t, 0.95, merged.TopP)
	assert.Equal(t, 8192, merged.MaxTokens)
}

func TestMergeFullOverrides(t *testing.T) {
	temp, topP, maxTokens := 1.0, 0.5, 64
	merged := (&GenerationOverrides{
		Temperature: &temp,
		TopP:        &topP,
		MaxTokens:   &maxTokens,
	}).Merge(DefaultGenerationConfig())

	assert.Equal(t, GenerationConfig{Temperature: 1.0, TopP: 0.5, MaxTokens: 64}, merged)
}

func TestMergeJSONNullIsTreatedAsAbsent(t *testing.T) {
	var overrides GenerationOverrides
	err := json.Unmarshal([]byte(`{"temperature":null,"max_tokens":4096}`), &overrides)
	require.NoError(t, err)

	merged := overrides.Merge(DefaultGenerationConfig())

	assert.Equal(t, 0.6, merged.Temperature, "null temperature keeps default")
	assert.Equal(t, 0.95, merged.TopP)
	assert.Equal(t, 4096, merged.MaxTokens)
}
