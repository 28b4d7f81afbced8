package linkwish

// Base confidence by strategy. Strategy identity dominates trust; field
// completeness only provides a small, bounded adjustment so a fallback
// record can never out-score a genuine extraction.
var strategyBaseScore = map[Strategy]float64{
	StrategyAI:         0.9,
	StrategyStructural: 0.8,
	StrategyFallback:   0.5,
}

// Score assigns a confidence in [0,1] to a record produced by the given
// strategy: the strategy's base value plus min(0.1, 0.05*fieldCount),
// capped at 1.0. Fallback records get no completeness bonus because their
// fields are synthesized from the URL, not extracted from the page.
func Score(r *ExtractionRecord, strategy Strategy) float64 {
	base, ok := strategyBaseScore[strategy]
	if !ok {
		return strategyBaseScore[StrategyFallback]
	}
	if strategy == StrategyFallback {
		return base
	}

	bonus := 0.05 * float64(r.FieldCount())
	if bonus > 0.1 {
		bonus = 0.1
	}

	score := base + bonus
	if score > 1.0 {
		score = 1.0
	}
	return score
}
