// Package goquery provides the structural extraction strategy. It parses
// static page markup for Open Graph and meta tags and matches price
// patterns in the visible metadata. Cheapest and fastest strategy, least
// reliable on JavaScript-rendered pages.
package goquery

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/linkwish/linkwish"
	"github.com/markusmobius/go-trafilatura"
)

// Ensure Extractor implements the extraction interfaces at compile time.
var (
	_ linkwish.Extractor     = (*Extractor)(nil)
	_ linkwish.HTMLExtractor = (*Extractor)(nil)
)

// Extractor extracts metadata from static page markup.
type Extractor struct {
	fetcher linkwish.Fetcher
}

// NewExtractor creates a new Extractor that fetches pages with the given
// fetcher.
func NewExtractor(fetcher linkwish.Fetcher) *Extractor {
	return &Extractor{fetcher: fetcher}
}

// CanExtract always returns true; static markup parsing needs no external
// capability beyond plain HTTP.
func (e *Extractor) CanExtract(string) bool { return true }

// Extract fetches the page and parses its markup.
func (e *Extractor) Extract(ctx context.Context, url string) (*linkwish.ExtractionRecord, error) {
	html, err := e.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	return e.ExtractHTML(ctx, url, html)
}

// ExtractHTML parses caller-supplied markup, skipping the network fetch.
func (e *Extractor) ExtractHTML(_ context.Context, url, html string) (*linkwish.ExtractionRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, linkwish.Errorf(linkwish.EUNPROCESSABLE, "parse HTML for %s: %v", url, err)
	}

	record := &linkwish.ExtractionRecord{
		Title:        metaContent(doc, "og:title", "twitter:title"),
		Description:  metaContent(doc, "og:description", "twitter:description", "description"),
		ImageURL:     metaContent(doc, "og:image", "twitter:image"),
		SiteName:     metaContent(doc, "og:site_name"),
		Brand:        metaContent(doc, "og:brand", "product:brand"),
		Availability: metaContent(doc, "og:availability", "product:availability"),
	}

	if record.Title == "" {
		record.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	doc.Find(`meta[property="og:image"]`).Each(func(_ int, sel *goquery.Selection) {
		if content, ok := sel.Attr("content"); ok && content != "" {
			record.Images = append(record.Images, content)
		}
	})
	if record.ImageURL == "" && len(record.Images) > 0 {
		record.ImageURL = record.Images[0]
	}

	record.ContentType = contentType(metaContent(doc, "og:type"))

	record.Price = metaContent(doc, "product:price:amount", "og:price:amount")
	record.Currency = metaContent(doc, "product:price:currency", "og:price:currency")
	if record.Price == "" {
		// Structured price tags are absent on most retail pages; fall back
		// to currency-symbol patterns in the visible metadata text.
		if amount, currency, ok := MatchPrice(record.Title + " " + record.Description); ok {
			record.Price = amount
			record.Currency = currency
		}
	}
	record.Price = strings.ReplaceAll(record.Price, ",", "")

	enrich(record, html)

	return record, nil
}

// Priority orders structural extraction first.
func (e *Extractor) Priority() int { return 1 }

// Strategy returns the strategy tag.
func (e *Extractor) Strategy() linkwish.Strategy { return linkwish.StrategyStructural }

// metaContent returns the content of the first matching meta tag, checking
// both property and name attributes.
func metaContent(doc *goquery.Document, keys ...string) string {
	for _, key := range keys {
		for _, sel := range []string{
			`meta[property="` + key + `"]`,
			`meta[name="` + key + `"]`,
		} {
			if content, ok := doc.Find(sel).First().Attr("content"); ok {
				if content = strings.TrimSpace(content); content != "" {
					return content
				}
			}
		}
	}
	return ""
}

// contentType maps an og:type value onto the record's content-type tag.
func contentType(ogType string) string {
	switch {
	case ogType == "":
		return ""
	case strings.HasPrefix(ogType, "product"):
		return "product"
	case strings.HasPrefix(ogType, "article"):
		return "article"
	default:
		return "webpage"
	}
}

// enrich fills description, site name, and category from trafilatura's
// metadata extraction when meta tags didn't provide them. Best effort:
// trafilatura fails on thin pages, which is fine.
func enrich(record *linkwish.ExtractionRecord, html string) {
	if record.Description != "" && record.SiteName != "" && record.Category != "" {
		return
	}

	result, err := trafilatura.Extract(strings.NewReader(html), trafilatura.Options{
		EnableFallback: true,
	})
	if err != nil {
		return
	}

	if record.Description == "" {
		record.Description = strings.TrimSpace(result.Metadata.Description)
	}
	if record.SiteName == "" {
		record.SiteName = strings.TrimSpace(result.Metadata.Sitename)
	}
	if record.Category == "" && len(result.Metadata.Categories) > 0 {
		record.Category = result.Metadata.Categories[0]
	}
}
