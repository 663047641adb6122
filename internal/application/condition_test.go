package app

import (
	"testing"

	"github.com/stretchr/testify/require"

	"safety-watch/internal/domain/entity"
)

func historyWithConfidences(confidences []float64) []entity.HistoryEntry {
	out := make([]entity.HistoryEntry, len(confidences))
	for i, c := range confidences {
		out[i] = entity.HistoryEntry{Confidence: c}
	}
	return out
}

func TestConditionScoreAspectPenalty(t *testing.T) {
	assessor := NewConditionAssessor()

	square := assessor.Assess(entity.Detection{
		Label: "oxygen tank", Confidence: 0.9, BBox: entity.BBox{0, 0, 100, 100},
	}, nil, nil)
	require.InDelta(t, 0.9, square.ConditionScore, 1e-9)

	// Aspect ratio 4.0 takes the occlusion penalty.
	stretched := assessor.Assess(entity.Detection{
		Label: "oxygen tank", Confidence: 0.9, BBox: entity.BBox{0, 0, 400, 100},
	}, nil, nil)
	require.InDelta(t, 0.81, stretched.ConditionScore, 1e-9)
}

func TestConditionReliabilityFlags(t *testing.T) {
	assessor := NewConditionAssessor()
	box := entity.BBox{0, 0, 100, 100}

	veryLow := assessor.Assess(entity.Detection{Label: "fire alarm", Confidence: 0.4, BBox: box}, nil, nil)
	require.Equal(t, []string{"VERY_LOW_CONFIDENCE"}, veryLow.ReliabilityFlags)
	require.True(t, veryLow.RequiresInspection)

	low := assessor.Assess(entity.Detection{Label: "fire alarm", Confidence: 0.55, BBox: box}, nil, nil)
	require.Equal(t, []string{"LOW_CONFIDENCE"}, low.ReliabilityFlags)
	require.True(t, low.RequiresInspection)

	medium := assessor.Assess(entity.Detection{Label: "fire alarm", Confidence: 0.7, BBox: box}, nil, nil)
	require.Equal(t, []string{"MEDIUM_CONFIDENCE"}, medium.ReliabilityFlags)
	require.False(t, medium.RequiresInspection)

	high := assessor.Assess(entity.Detection{Label: "fire alarm", Confidence: 0.9, BBox: box}, nil, nil)
	require.Empty(t, high.ReliabilityFlags)
}

func TestConditionTrendDeadBand(t *testing.T) {
	// Recent three vs the three before them, with a 0.1 dead-band.
	improving := analyzeConditionTrend(historyWithConfidences([]float64{0.5, 0.5, 0.5, 0.8, 0.8, 0.8}))
	require.Equal(t, entity.TrendImproving, improving.ConfidenceTrend)

	declining := analyzeConditionTrend(historyWithConfidences([]float64{0.9, 0.9, 0.9, 0.6, 0.6, 0.6}))
	require.Equal(t, entity.TrendDeclining, declining.ConfidenceTrend)

	// A small drift stays inside the dead-band.
	stable := analyzeConditionTrend(historyWithConfidences([]float64{0.7, 0.7, 0.7, 0.75, 0.75, 0.75}))
	require.Equal(t, entity.TrendStable, stable.ConfidenceTrend)

	// Fewer than five entries never report a direction.
	short := analyzeConditionTrend(historyWithConfidences([]float64{0.2, 0.2, 0.9, 0.9}))
	require.Equal(t, entity.TrendStable, short.ConfidenceTrend)
}

func TestConditionTrendStatistics(t *testing.T) {
	summary := analyzeConditionTrend(historyWithConfidences([]float64{0.5, 0.7, 0.5, 0.7}))
	require.InDelta(t, 0.6, summary.AverageConfidence, 1e-9)
	require.InDelta(t, 0.01, summary.ConfidenceVariance, 1e-9)
	require.InDelta(t, 0.5, summary.DetectionConsistency, 1e-9)
	require.Len(t, summary.RecentPerformance, 3)
}

func TestConditionTrendAttached(t *testing.T) {
	assessor := NewConditionAssessor()
	d := entity.Detection{Label: "oxygen tank", Confidence: 0.9, BBox: entity.BBox{0, 0, 100, 100}}

	noTrend := assessor.Assess(d, nil, historyWithConfidences([]float64{0.8, 0.8, 0.8}))
	require.Nil(t, noTrend.Trend)

	withTrend := assessor.Assess(d, nil, historyWithConfidences([]float64{0.8, 0.8, 0.8, 0.8}))
	require.NotNil(t, withTrend.Trend)
}

func TestConditionIndicatorsAndChecks(t *testing.T) {
	assessor := NewConditionAssessor()
	analysis := &entity.PlacementAnalysis{
		PlacementScore: 0.85,
		Accessibility:  entity.Accessibility{Score: 0.75, Assessment: "Good"},
	}

	out := assessor.Assess(entity.Detection{
		Label: "fire extinguisher", Confidence: 0.85, BBox: entity.BBox{0, 0, 100, 100},
	}, analysis, nil)

	require.Equal(t, "Good", out.Indicators["visibility"])
	require.Equal(t, "Acceptable", out.Indicators["positioning"])
	require.Equal(t, "Good", out.Indicators["accessibility"])

	require.True(t, out.Checks["pressure_gauge_visible"])
	require.True(t, out.Checks["mounting_secure"])
	require.True(t, out.Checks["unobstructed_access"])

	// Kinds without a dedicated checklist get no boolean checks.
	generic := assessor.Assess(entity.Detection{
		Label: "fire alarm", Confidence: 0.85, BBox: entity.BBox{0, 0, 100, 100},
	}, analysis, nil)
	require.Nil(t, generic.Checks)
}
