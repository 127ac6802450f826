package riskmodel

import (
	"math"

	"agrorisk/pkg/features"
)

// FallbackConfidence is reported by every rule-based score, below the
// trained path's range.
const FallbackConfidence = 65.0

// RuleBasedScore is the deterministic scorer used whenever no trained model
// exists. Weather contributes up to 40 points, pest severity up to 30, and
// historical patterns up to 30; the result is clipped to [0,100]. This is
// the regression baseline for tests and must stay bit-for-bit reproducible.
func RuleBasedScore(v []float64) (float64, float64) {
	score := 0.0

	score += 15 * v[features.TempRisk]
	score += 15 * v[features.HumidityRisk]
	score += 10 * v[features.RainfallRisk]

	score += 7.5 * v[features.PestSeverityCode]

	if v[features.RecentInfestations] > 0 {
		score += math.Min(20, v[features.RecentInfestations]*5)
	}
	score += 2 * v[features.AvgHistoricalSeverity]

	return clip(score, 0, 100), FallbackConfidence
}

func clip(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}
