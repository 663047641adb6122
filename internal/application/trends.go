package app

import (
	"fmt"
	"time"

	"safety-watch/internal/domain/entity"
)

// TrendAnalyzer derives windowed statistics from the state store's history.
// Read-only; safe to call concurrently with updates.
type TrendAnalyzer struct {
	store *EquipmentStateStore
	now   func() time.Time
}

func NewTrendAnalyzer(store *EquipmentStateStore) *TrendAnalyzer {
	return &TrendAnalyzer{store: store, now: time.Now}
}

// Trends filters a kind's history to the last windowDays days and computes
// the windowed statistics. ErrNoHistory when the kind was never detected,
// ErrNoRecentHistory when nothing falls inside the window.
func (t *TrendAnalyzer) Trends(kind string, windowDays int) (*entity.Trends, error) {
	history := t.store.HistoryFor(kind)
	if len(history) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoHistory, kind)
	}

	cutoff := t.now().AddDate(0, 0, -windowDays)
	var recent []entity.HistoryEntry
	for _, e := range history {
		if !e.Timestamp.Before(cutoff) {
			recent = append(recent, e)
		}
	}
	if len(recent) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoRecentHistory, kind)
	}

	var confidenceSum, placementSum float64
	minConf, maxConf := recent[0].Confidence, recent[0].Confidence
	high, low := 0, 0
	for _, e := range recent {
		confidenceSum += e.Confidence
		placementSum += e.PlacementScore
		if e.Confidence >= 0.8 {
			high++
		}
		if e.Confidence < 0.6 {
			low++
		}
		if e.Confidence < minConf {
			minConf = e.Confidence
		}
		if e.Confidence > maxConf {
			maxConf = e.Confidence
		}
	}

	// Binary trend at this layer: last vs first entry in the window.
	trend := entity.TrendDeclining
	if recent[len(recent)-1].Confidence > recent[0].Confidence {
		trend = entity.TrendImproving
	}

	n := float64(len(recent))
	return &entity.Trends{
		Kind:                     kind,
		PeriodDays:               windowDays,
		TotalDetections:          len(recent),
		AverageConfidence:        confidenceSum / n,
		ConfidenceTrend:          trend,
		AveragePlacementScore:    placementSum / n,
		HighConfidenceDetections: high,
		LowConfidenceDetections:  low,
		DetectionFrequency:       n / float64(windowDays),
		LatestDetection:          recent[len(recent)-1].Timestamp,
		ConsistencyScore:         1.0 - (maxConf - minConf),
	}, nil
}
