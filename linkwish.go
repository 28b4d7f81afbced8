// Package linkwish extracts structured product and content metadata from
// web URLs and saves the results to a local wishlist. Extraction runs a
// prioritized chain of strategies (static markup parsing, AI-assisted page
// description, URL-derived fallback) and returns the first result that
// passes a quality gate, scored for confidence.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, rod/, gemini/, goquery/).
package linkwish
