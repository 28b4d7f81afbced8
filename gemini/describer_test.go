package gemini_test

import (
	"context"
	"testing"

	"github.com/linkwish/linkwish"
	"github.com/linkwish/linkwish/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescriber_Configured_FalseWithoutClient(t *testing.T) {
	t.Parallel()

	d := gemini.NewDescriber(nil)

	assert.False(t, d.Configured())
}

func TestDescriber_Configured_FalseOnNil(t *testing.T) {
	t.Parallel()

	var d *gemini.Describer

	assert.False(t, d.Configured())
}

func TestDescriber_Describe_ReturnsErrorWhenUnconfigured(t *testing.T) {
	t.Parallel()

	d := gemini.NewDescriber(nil)

	_, err := d.Describe(context.Background(), []byte{0x89}, "describe the page")

	require.Error(t, err)
	assert.Equal(t, linkwish.EUNAVAILABLE, linkwish.ErrorCode(err))
	assert.Contains(t, linkwish.ErrorMessage(err), "not configured")
}

func TestBuildConfig_SetsSystemInstruction(t *testing.T) {
	t.Parallel()

	config := gemini.BuildConfig()

	require.NotNil(t, config.SystemInstruction)
	require.Len(t, config.SystemInstruction.Parts, 1)
	assert.Contains(t, config.SystemInstruction.Parts[0].Text, "JSON only")
}

func TestBuildConfig_SetsTemperature(t *testing.T) {
	t.Parallel()

	config := gemini.BuildConfig()

	require.NotNil(t, config.Temperature)
	assert.InDelta(t, 0.1, *config.Temperature, 0.001)
}
