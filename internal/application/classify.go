package app

import "safety-watch/internal/domain/entity"

// ClassifyConfidence maps a raw confidence to its reliability tier.
// Boundaries are closed on the lower bound: exactly 0.8 is HIGH.
// Total over [0,1], no side effects.
func ClassifyConfidence(confidence float64) entity.ConfidenceTier {
	switch {
	case confidence >= 0.8:
		return entity.TierHigh
	case confidence >= 0.6:
		return entity.TierMedium
	case confidence >= 0.5:
		return entity.TierLow
	default:
		return entity.TierUncertain
	}
}
