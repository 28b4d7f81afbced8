package linkwish

import (
	"context"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Strategy identifies which extraction strategy produced a record.
type Strategy string

// The closed set of extraction strategies, in priority order.
const (
	StrategyStructural Strategy = "structural"
	StrategyAI         Strategy = "ai-assisted"
	StrategyFallback   Strategy = "fallback"
)

// ExtractionRecord holds the structured metadata extracted from a page.
// Every field is optional; absence of data is a valid outcome, not an error.
type ExtractionRecord struct {
	Title         string   `json:"title,omitempty"`
	ImageURL      string   `json:"imageUrl,omitempty"`
	Images        []string `json:"images,omitempty"`
	Price         string   `json:"price,omitempty"` // numeric string, commas stripped
	Currency      string   `json:"currency,omitempty"`
	OriginalPrice string   `json:"originalPrice,omitempty"`
	Discount      string   `json:"discount,omitempty"`
	SiteName      string   `json:"siteName,omitempty"`
	Description   string   `json:"description,omitempty"`
	Category      string   `json:"category,omitempty"`
	Brand         string   `json:"brand,omitempty"`
	Rating        string   `json:"rating,omitempty"`
	ReviewCount   string   `json:"reviewCount,omitempty"`
	Availability  string   `json:"availability,omitempty"`
	Features      []string `json:"features,omitempty"`
	Offers        []string `json:"offers,omitempty"`
	ContentType   string   `json:"contentType,omitempty"`
}

// FieldCount returns the number of populated fields. Used by the confidence
// scorer and reported as extraction metadata.
func (r *ExtractionRecord) FieldCount() int {
	n := 0
	for _, s := range []string{
		r.Title, r.ImageURL, r.Price, r.Currency, r.OriginalPrice,
		r.Discount, r.SiteName, r.Description, r.Category, r.Brand,
		r.Rating, r.ReviewCount, r.Availability, r.ContentType,
	} {
		if s != "" {
			n++
		}
	}
	if len(r.Images) > 0 {
		n++
	}
	if len(r.Features) > 0 {
		n++
	}
	if len(r.Offers) > 0 {
		n++
	}
	return n
}

// Hash returns a stable fingerprint of the record's contents, used to skip
// no-op writes on update.
func (r *ExtractionRecord) Hash() string {
	d := xxhash.New()
	for _, s := range []string{
		r.Title, r.ImageURL, r.Price, r.Currency, r.OriginalPrice,
		r.Discount, r.SiteName, r.Description, r.Category, r.Brand,
		r.Rating, r.ReviewCount, r.Availability, r.ContentType,
	} {
		_, _ = d.WriteString(s)
		_, _ = d.WriteString("\x1f")
	}
	for _, list := range [][]string{r.Images, r.Features, r.Offers} {
		for _, s := range list {
			_, _ = d.WriteString(s)
			_, _ = d.WriteString("\x1f")
		}
		_, _ = d.WriteString("\x1e")
	}
	return strconv.FormatUint(d.Sum64(), 16)
}

// ExtractionOutcome wraps a record with the strategy that produced it, its
// confidence score, and the canonical URL it was computed for. Outcomes are
// created once per pipeline run and never mutated afterwards.
type ExtractionOutcome struct {
	Record       *ExtractionRecord `json:"record"`
	Strategy     Strategy          `json:"strategy"`
	Confidence   float64           `json:"confidence"`
	CanonicalURL string            `json:"canonicalUrl"`
}

// Extractor is one pluggable method of extracting metadata from a URL.
// Implementations must be safe for concurrent use.
type Extractor interface {
	// CanExtract reports whether the strategy is usable for the URL.
	// A strategy whose external capability is unconfigured returns false
	// and is skipped by the pipeline rather than treated as a failure.
	CanExtract(url string) bool

	// Extract retrieves metadata for the URL. The context controls
	// timeout and cancellation.
	Extract(ctx context.Context, url string) (*ExtractionRecord, error)

	// Priority orders strategies in the pipeline; lower runs first.
	Priority() int

	// Strategy returns the strategy's identity tag.
	Strategy() Strategy
}

// HTMLExtractor is implemented by extractors that can work from
// caller-supplied HTML, skipping the network fetch.
type HTMLExtractor interface {
	ExtractHTML(ctx context.Context, url, html string) (*ExtractionRecord, error)
}
