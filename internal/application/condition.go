package app

import (
	"math"

	"safety-watch/internal/domain/entity"
)

// ConditionAssessor derives a visual-condition view of a detection with
// confidence-based reliability flagging. Pure; historical data is passed
// explicitly and may be empty.
type ConditionAssessor struct{}

func NewConditionAssessor() *ConditionAssessor {
	return &ConditionAssessor{}
}

// Assess scores one detection, flags reliability concerns and, given more
// than three historical entries, adds a dead-band trend block.
func (c *ConditionAssessor) Assess(d entity.Detection, analysis *entity.PlacementAnalysis, history []entity.HistoryEntry) entity.ConditionAssessment {
	out := entity.ConditionAssessment{
		Kind:             d.Kind(),
		Confidence:       d.Confidence,
		ConditionScore:   baseConditionScore(d),
		ReliabilityFlags: []string{},
		Recommendations:  []string{},
	}

	switch {
	case d.Confidence < 0.5:
		out.ReliabilityFlags = append(out.ReliabilityFlags, "VERY_LOW_CONFIDENCE")
		out.Recommendations = append(out.Recommendations,
			"Immediate manual inspection required - AI confidence extremely low")
		out.RequiresInspection = true
	case d.Confidence < 0.6:
		out.ReliabilityFlags = append(out.ReliabilityFlags, "LOW_CONFIDENCE")
		out.Recommendations = append(out.Recommendations,
			"Manual verification recommended - AI confidence low")
		out.RequiresInspection = true
	case d.Confidence < 0.8:
		out.ReliabilityFlags = append(out.ReliabilityFlags, "MEDIUM_CONFIDENCE")
		out.Recommendations = append(out.Recommendations,
			"Visual confirmation suggested - moderate AI confidence")
	}

	if len(history) > 3 {
		out.Trend = analyzeConditionTrend(history)
	}

	out.Indicators, out.Checks = conditionIndicators(d, analysis)
	return out
}

// baseConditionScore starts from confidence and penalizes extreme aspect
// ratios, which may indicate partial occlusion. Zero-height boxes default
// to an aspect ratio of 1.0.
func baseConditionScore(d entity.Detection) float64 {
	score := d.Confidence
	if d.BBox.Valid() {
		ratio := d.BBox.AspectRatio()
		if ratio < 0.3 || ratio > 3.0 {
			score *= 0.9
		}
	}
	return math.Min(1.0, score)
}

// analyzeConditionTrend is the three-way trend with a 0.1 dead-band,
// comparing the newest three entries against the three before them.
func analyzeConditionTrend(history []entity.HistoryEntry) *entity.TrendSummary {
	confidences := make([]float64, len(history))
	var sum float64
	consistent := 0
	for i, e := range history {
		confidences[i] = e.Confidence
		sum += e.Confidence
		if e.Confidence > 0.6 {
			consistent++
		}
	}
	n := float64(len(confidences))
	mean := sum / n

	variance := 0.0
	if len(confidences) > 1 {
		for _, c := range confidences {
			variance += (c - mean) * (c - mean)
		}
		variance /= n
	}

	recent := confidences
	if len(confidences) >= 3 {
		recent = confidences[len(confidences)-3:]
	}

	trend := entity.TrendStable
	if len(confidences) >= 5 {
		recentAvg := avg(confidences[len(confidences)-3:])
		var olderAvg float64
		if len(confidences) >= 6 {
			olderAvg = avg(confidences[len(confidences)-6 : len(confidences)-3])
		} else {
			olderAvg = avg(confidences[:len(confidences)-3])
		}
		if recentAvg > olderAvg+0.1 {
			trend = entity.TrendImproving
		} else if recentAvg < olderAvg-0.1 {
			trend = entity.TrendDeclining
		}
	}

	return &entity.TrendSummary{
		ConfidenceTrend:      trend,
		AverageConfidence:    mean,
		ConfidenceVariance:   variance,
		DetectionConsistency: float64(consistent) / n,
		RecentPerformance:    append([]float64(nil), recent...),
	}
}

func avg(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// conditionIndicators builds the generic indicator strings plus per-kind
// boolean checks.
func conditionIndicators(d entity.Detection, analysis *entity.PlacementAnalysis) (map[string]string, map[string]bool) {
	visibility := "Poor"
	if d.Confidence > 0.7 {
		visibility = "Good"
	}
	positioning := "Needs Attention"
	accessAssessment := "Unknown"
	var accessScore, placementScore float64
	if analysis != nil {
		placementScore = analysis.PlacementScore
		accessScore = analysis.Accessibility.Score
		accessAssessment = analysis.Accessibility.Assessment
		if analysis.PlacementScore > 0.6 {
			positioning = "Acceptable"
		}
	}

	indicators := map[string]string{
		"visibility":    visibility,
		"positioning":   positioning,
		"accessibility": accessAssessment,
	}

	var checks map[string]bool
	switch d.Kind() {
	case "fire_extinguisher":
		checks = map[string]bool{
			"pressure_gauge_visible": d.Confidence > 0.8,
			"mounting_secure":        accessScore > 0.7,
			"unobstructed_access":    placementScore > 0.8,
		}
	case "oxygen_tank":
		checks = map[string]bool{
			"tank_integrity_visible": d.Confidence > 0.8,
			"connection_accessible":  accessScore > 0.7,
			"proper_positioning":     placementScore > 0.7,
		}
	case "first_aid_box":
		checks = map[string]bool{
			"seal_integrity":          d.Confidence > 0.8,
			"easily_accessible":       accessScore > 0.8,
			"content_level_checkable": d.Confidence > 0.7,
		}
	}

	return indicators, checks
}
