// Package gemini implements linkwish.Describer using Google Gemini's
// vision capability.
package gemini

import (
	"context"

	"github.com/linkwish/linkwish"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used for vision inference. Flash models
// trade a little accuracy for latency, which matters more here because a
// render already precedes every inference call.
const DefaultModel = "gemini-2.5-flash"

// Ensure Describer implements linkwish.Describer at compile time.
var _ linkwish.Describer = (*Describer)(nil)

// Describer implements linkwish.Describer using Google Gemini.
type Describer struct {
	client *genai.Client
	model  string
}

// DescriberOption configures a Describer.
type DescriberOption func(*Describer)

// WithModel overrides the model used for inference.
// Defaults to DefaultModel if not specified.
func WithModel(model string) DescriberOption {
	return func(d *Describer) {
		d.model = model
	}
}

// NewDescriber creates a new Describer. A nil client is allowed and produces
// an unconfigured Describer; callers check Configured before use.
func NewDescriber(client *genai.Client, opts ...DescriberOption) *Describer {
	d := &Describer{client: client, model: DefaultModel}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Configured reports whether the Describer has an API client to call.
func (d *Describer) Configured() bool {
	return d != nil && d.client != nil
}

// Describe sends a PNG screenshot and an instruction prompt to Gemini and
// returns the model's text response.
func (d *Describer) Describe(ctx context.Context, image []byte, prompt string) (string, error) {
	if !d.Configured() {
		return "", linkwish.Errorf(linkwish.EUNAVAILABLE, "gemini client not configured")
	}
	if len(image) == 0 {
		return "", linkwish.Errorf(linkwish.EINVALID, "image required")
	}
	if prompt == "" {
		return "", linkwish.Errorf(linkwish.EINVALID, "prompt required")
	}

	result, err := d.client.Models.GenerateContent(ctx, d.model,
		[]*genai.Content{{
			Parts: []*genai.Part{
				{InlineData: &genai.Blob{MIMEType: "image/png", Data: image}},
				{Text: prompt},
			},
		}},
		BuildConfig(),
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", linkwish.Errorf(linkwish.EINTERNAL, "gemini returned nil result")
	}

	return result.Text(), nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
// Temperature is kept low so field values are read off the page rather
// than invented.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.1)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You extract structured metadata from webpage screenshots. Report only values visible in the image. Respond with JSON only, no prose.",
			}},
		},
		Temperature: &temp,
	}
}
