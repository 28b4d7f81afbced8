package linkwish

import "context"

// Describer answers a prompt about an image using a vision model.
type Describer interface {
	// Describe sends the image and prompt to the model and returns its
	// text response verbatim.
	Describe(ctx context.Context, image []byte, prompt string) (string, error)

	// Configured reports whether the underlying model is usable
	// (e.g., credentials are present). Unconfigured describers cause the
	// AI-assisted strategy to be skipped, not to fail.
	Configured() bool
}
