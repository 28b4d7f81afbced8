package extract_test

import (
	"context"
	"errors"
	"testing"

	"github.com/linkwish/linkwish"
	"github.com/linkwish/linkwish/extract"
	"github.com/linkwish/linkwish/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVisionExtractor_CanExtract(t *testing.T) {
	t.Parallel()

	t.Run("false when describer is unconfigured", func(t *testing.T) {
		t.Parallel()

		describer := &mock.Describer{ConfiguredFn: func() bool { return false }}
		v := extract.NewVisionExtractor(&mock.Renderer{}, describer)

		assert.False(t, v.CanExtract("https://example.com"))
	})

	t.Run("false when renderer is missing", func(t *testing.T) {
		t.Parallel()

		v := extract.NewVisionExtractor(nil, &mock.Describer{})

		assert.False(t, v.CanExtract("https://example.com"))
	})

	t.Run("true when both capabilities are present", func(t *testing.T) {
		t.Parallel()

		v := extract.NewVisionExtractor(&mock.Renderer{}, &mock.Describer{})

		assert.True(t, v.CanExtract("https://example.com"))
	})
}

func TestVisionExtractor_Extract(t *testing.T) {
	t.Parallel()

	image := []byte{0x89, 'P', 'N', 'G'}

	t.Run("parses the model response into a record", func(t *testing.T) {
		t.Parallel()

		renderer := &mock.Renderer{
			RenderFn: func(_ context.Context, url string) ([]byte, error) {
				assert.Equal(t, "https://example.com/p/1", url)
				return image, nil
			},
		}
		describer := &mock.Describer{
			DescribeFn: func(_ context.Context, img []byte, prompt string) (string, error) {
				assert.Equal(t, image, img)
				assert.Contains(t, prompt, "JSON object")
				return `{"title":"Sony WH-1000XM5 Wireless Headphones","price":"348","currency":"USD"}`, nil
			},
		}

		v := extract.NewVisionExtractor(renderer, describer)

		record, err := v.Extract(context.Background(), "https://example.com/p/1")

		require.NoError(t, err)
		assert.Equal(t, "Sony WH-1000XM5 Wireless Headphones", record.Title)
		assert.Equal(t, "348", record.Price)
		assert.Equal(t, "USD", record.Currency)
	})

	t.Run("render failure is a transport error", func(t *testing.T) {
		t.Parallel()

		renderer := &mock.Renderer{
			RenderFn: func(context.Context, string) ([]byte, error) {
				return nil, errors.New("browser crashed")
			},
		}

		v := extract.NewVisionExtractor(renderer, &mock.Describer{})

		_, err := v.Extract(context.Background(), "https://example.com/p/1")

		require.Error(t, err)
		assert.Equal(t, linkwish.EUNAVAILABLE, linkwish.ErrorCode(err))
	})

	t.Run("invalid JSON is a parse error", func(t *testing.T) {
		t.Parallel()

		renderer := &mock.Renderer{
			RenderFn: func(context.Context, string) ([]byte, error) { return image, nil },
		}
		describer := &mock.Describer{
			DescribeFn: func(context.Context, []byte, string) (string, error) {
				return "I could not read the page, sorry.", nil
			},
		}

		v := extract.NewVisionExtractor(renderer, describer)

		_, err := v.Extract(context.Background(), "https://example.com/p/1")

		require.Error(t, err)
		assert.Equal(t, linkwish.EUNPROCESSABLE, linkwish.ErrorCode(err))
	})
}

func TestParseRecord(t *testing.T) {
	t.Parallel()

	t.Run("strips json code fence", func(t *testing.T) {
		t.Parallel()

		record, err := extract.ParseRecord("```json\n{\"title\":\"Fenced Product Title Example\"}\n```")

		require.NoError(t, err)
		assert.Equal(t, "Fenced Product Title Example", record.Title)
	})

	t.Run("strips bare code fence", func(t *testing.T) {
		t.Parallel()

		record, err := extract.ParseRecord("```\n{\"title\":\"Fenced Product Title Example\"}\n```")

		require.NoError(t, err)
		assert.Equal(t, "Fenced Product Title Example", record.Title)
	})

	t.Run("rejects empty response", func(t *testing.T) {
		t.Parallel()

		_, err := extract.ParseRecord("```json\n```")

		require.Error(t, err)
		assert.Equal(t, linkwish.EUNPROCESSABLE, linkwish.ErrorCode(err))
	})

	t.Run("rejects non-object JSON", func(t *testing.T) {
		t.Parallel()

		_, err := extract.ParseRecord(`["not","an","object"]`)

		require.Error(t, err)
		assert.Equal(t, linkwish.EUNPROCESSABLE, linkwish.ErrorCode(err))
	})
}

func TestStripCodeFence(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `{"a":1}`, extract.StripCodeFence("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, extract.StripCodeFence("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, extract.StripCodeFence(`{"a":1}`))
	assert.Equal(t, "plain text", extract.StripCodeFence("  plain text  "))
}
