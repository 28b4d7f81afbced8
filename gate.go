package linkwish

import (
	"strings"
	"unicode/utf8"
)

// minTitleLength is the shortest title the quality gate accepts. Shorter
// titles are almost always site names or navigation labels, not content.
const minTitleLength = 20

// genericPhrases mark titles that describe a site's landing page rather
// than the specific content behind the URL.
var genericPhrases = []string{
	"online shopping",
	"welcome to",
	"home page",
}

// Acceptable reports whether an extraction record is good enough to stop
// the pipeline. The predicate is strategy-agnostic: the same bar applies
// whether the data came from markup parsing or a vision model.
func Acceptable(r *ExtractionRecord) bool {
	if r == nil {
		return false
	}
	title := strings.TrimSpace(r.Title)
	// Count runes, not bytes, so multibyte scripts are not over-counted.
	if utf8.RuneCountInString(title) <= minTitleLength {
		return false
	}
	lower := strings.ToLower(title)
	for _, phrase := range genericPhrases {
		if strings.Contains(lower, phrase) {
			return false
		}
	}
	return true
}
