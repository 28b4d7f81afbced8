package extract

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/linkwish/linkwish"
)

// Default timeouts for the two suspension points of the AI-assisted path.
// Both are independent and each is smaller than a typical request deadline.
const (
	DefaultRenderTimeout    = 20 * time.Second
	DefaultInferenceTimeout = 15 * time.Second
)

// visionPrompt asks the model for a strict JSON object so the response can
// be unmarshaled directly into an ExtractionRecord.
const visionPrompt = `You are looking at a screenshot of a web page. ` +
	`Extract the following metadata about the page's primary product or content. ` +
	`Respond with a single JSON object and nothing else, using exactly these keys ` +
	`(omit keys you cannot determine): ` +
	`"title", "imageUrl", "images", "price", "currency", "originalPrice", ` +
	`"discount", "siteName", "description", "category", "brand", "rating", ` +
	`"reviewCount", "availability", "features", "offers", "contentType". ` +
	`"price" and "originalPrice" must be numeric strings without thousands separators. ` +
	`"currency" must be an ISO 4217 code. "images", "features" and "offers" are ` +
	`arrays of strings. "contentType" is one of "product", "article" or "webpage".`

// Ensure VisionExtractor implements linkwish.Extractor at compile time.
var _ linkwish.Extractor = (*VisionExtractor)(nil)

// VisionExtractor extracts metadata by rendering the page to an image and
// asking a vision model to describe it. It is the most reliable strategy on
// JavaScript-rendered pages and by far the most expensive one.
type VisionExtractor struct {
	renderer         linkwish.Renderer
	describer        linkwish.Describer
	renderTimeout    time.Duration
	inferenceTimeout time.Duration
}

// VisionOption configures a VisionExtractor.
type VisionOption func(*VisionExtractor)

// WithRenderTimeout sets the timeout for the page-rendering call.
func WithRenderTimeout(d time.Duration) VisionOption {
	return func(v *VisionExtractor) {
		v.renderTimeout = d
	}
}

// WithInferenceTimeout sets the timeout for the vision model call.
func WithInferenceTimeout(d time.Duration) VisionOption {
	return func(v *VisionExtractor) {
		v.inferenceTimeout = d
	}
}

// NewVisionExtractor creates a new VisionExtractor.
func NewVisionExtractor(renderer linkwish.Renderer, describer linkwish.Describer, opts ...VisionOption) *VisionExtractor {
	v := &VisionExtractor{
		renderer:         renderer,
		describer:        describer,
		renderTimeout:    DefaultRenderTimeout,
		inferenceTimeout: DefaultInferenceTimeout,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// CanExtract reports whether the vision model is usable. When the model is
// unconfigured the strategy is skipped by the pipeline, not retried.
func (v *VisionExtractor) CanExtract(string) bool {
	return v.renderer != nil && v.describer != nil && v.describer.Configured()
}

// Extract renders the URL to a full-page image and asks the model for a
// strict JSON description of it.
func (v *VisionExtractor) Extract(ctx context.Context, url string) (*linkwish.ExtractionRecord, error) {
	renderCtx, cancel := context.WithTimeout(ctx, v.renderTimeout)
	defer cancel()

	image, err := v.renderer.Render(renderCtx, url)
	if err != nil {
		return nil, linkwish.Errorf(linkwish.EUNAVAILABLE, "render %s: %v", url, err)
	}

	inferCtx, cancel := context.WithTimeout(ctx, v.inferenceTimeout)
	defer cancel()

	text, err := v.describer.Describe(inferCtx, image, visionPrompt)
	if err != nil {
		return nil, linkwish.Errorf(linkwish.EUNAVAILABLE, "describe %s: %v", url, err)
	}

	return ParseRecord(text)
}

// Priority orders the vision strategy after structural extraction.
func (v *VisionExtractor) Priority() int { return 2 }

// Strategy returns the strategy tag.
func (v *VisionExtractor) Strategy() linkwish.Strategy { return linkwish.StrategyAI }

// ParseRecord parses a model response into an ExtractionRecord. Models
// routinely wrap JSON in Markdown code fences despite instructions, so any
// fence is stripped before unmarshaling.
func ParseRecord(text string) (*linkwish.ExtractionRecord, error) {
	cleaned := StripCodeFence(text)
	if cleaned == "" {
		return nil, linkwish.Errorf(linkwish.EUNPROCESSABLE, "model returned empty response")
	}

	var record linkwish.ExtractionRecord
	if err := json.Unmarshal([]byte(cleaned), &record); err != nil {
		return nil, linkwish.Errorf(linkwish.EUNPROCESSABLE, "model response is not valid JSON: %v", err)
	}
	return &record, nil
}

// StripCodeFence removes a Markdown code fence wrapping (```json ... ``` or
// ``` ... ```) from a model response, returning the trimmed inner text.
func StripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```")
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		// Drop the language tag line (e.g. "json").
		text = text[i+1:]
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
