package gin

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/linkwish/linkwish"
	"github.com/linkwish/linkwish/extract"
)

// extractRequest is the wire format for POST /api/extract.
type extractRequest struct {
	URL     string `json:"url"`
	RawHTML string `json:"raw_html"`
}

// extractData is the record enriched with the URL it was extracted for.
type extractData struct {
	linkwish.ExtractionRecord
	SourceURL string `json:"sourceUrl"`
}

// extractMetadata describes how a result was produced.
type extractMetadata struct {
	ExtractionMethod string  `json:"extractionMethod"`
	Confidence       float64 `json:"confidence"`
	ProcessingTime   int64   `json:"processingTime"` // milliseconds
	AIUsed           bool    `json:"aiUsed"`
	FieldsExtracted  int     `json:"fieldsExtracted"`
	URL              string  `json:"url"`
	Timestamp        string  `json:"timestamp"`
}

// handleExtract runs the extraction pipeline for one URL.
func (s *Server) handleExtract(c *gin.Context) {
	req, ok := s.bindExtractRequest(c)
	if !ok {
		return
	}

	begin := time.Now()

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.requestTimeout)
	defer cancel()

	outcome, err := s.pipeline.Run(ctx, extract.Request{
		URL:     linkwish.Sanitize(req.URL),
		RawHTML: req.RawHTML,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"data":     extractData{ExtractionRecord: *outcome.Record, SourceURL: outcome.CanonicalURL},
		"metadata": buildMetadata(outcome, begin),
	})
}

// bindExtractRequest decodes and validates the shared extract/create body.
func (s *Server) bindExtractRequest(c *gin.Context) (extractRequest, bool) {
	var req extractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, linkwish.Errorf(linkwish.EINVALID, "invalid request body"))
		return req, false
	}
	if req.URL == "" {
		writeError(c, linkwish.Errorf(linkwish.EINVALID, "URL is required"))
		return req, false
	}
	if len(req.RawHTML) > s.maxRawHTML {
		writeError(c, linkwish.Errorf(linkwish.EINVALID,
			"raw_html exceeds %d byte limit", s.maxRawHTML))
		return req, false
	}
	return req, true
}

// buildMetadata assembles response metadata for an extraction outcome.
func buildMetadata(outcome *linkwish.ExtractionOutcome, begin time.Time) extractMetadata {
	return extractMetadata{
		ExtractionMethod: methodName(outcome.Strategy),
		Confidence:       outcome.Confidence,
		ProcessingTime:   time.Since(begin).Milliseconds(),
		AIUsed:           outcome.Strategy == linkwish.StrategyAI,
		FieldsExtracted:  outcome.Record.FieldCount(),
		URL:              outcome.CanonicalURL,
		Timestamp:        time.Now().UTC().Format(time.RFC3339),
	}
}

// methodName maps a strategy to its wire-level method label.
func methodName(strategy linkwish.Strategy) string {
	switch strategy {
	case linkwish.StrategyStructural:
		return "http_extraction"
	case linkwish.StrategyAI:
		return "fast_ai"
	default:
		return "fallback"
	}
}
