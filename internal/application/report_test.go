package app

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"safety-watch/internal/domain/entity"
)

func batchesWithKinds(n int, kinds []string) []entity.DetectionBatch {
	base := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	batches := make([]entity.DetectionBatch, n)
	for i := range batches {
		batch := entity.DetectionBatch{
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			ImagePath: "img.jpg",
		}
		for _, kind := range kinds {
			batch.Detections = append(batch.Detections, entity.LoggedDetection{
				Label: kind, Confidence: 0.9,
			})
		}
		batches[i] = batch
	}
	return batches
}

func TestGenerateAllKindsPresent(t *testing.T) {
	gen := NewSafetyReportGenerator(entity.DefaultCatalog())

	report := gen.Generate(batchesWithKinds(10, entity.DefaultCatalog().Kinds()))

	require.True(t, strings.HasPrefix(report.ID, "CSR_"))
	require.Equal(t, 100, report.OverallSafetyScore)
	require.Len(t, report.EquipmentStatus, 7)
	for kind, kr := range report.EquipmentStatus {
		require.InDelta(t, 1.0, kr.DetectionRate, 1e-9, "kind %s", kind)
		require.Equal(t, entity.ReportAvailable, kr.Status)
		require.NotNil(t, kr.LastDetected)
	}

	// Only the standing routine recommendation remains.
	require.Len(t, report.Recommendations, 1)
	require.Equal(t, "ROUTINE", report.Recommendations[0].Priority)
}

func TestGenerateEmptyHistory(t *testing.T) {
	gen := NewSafetyReportGenerator(entity.DefaultCatalog())

	report := gen.Generate(nil)

	// Every kind critical; the score is not clamped at zero.
	require.Equal(t, 100-7*20, report.OverallSafetyScore)
	for _, kr := range report.EquipmentStatus {
		require.Equal(t, entity.ReportCritical, kr.Status)
		require.Nil(t, kr.LastDetected)
	}
	require.Len(t, report.Recommendations, 2)
	require.Equal(t, "IMMEDIATE", report.Recommendations[0].Priority)
	require.Contains(t, report.Recommendations[0].Action, "oxygen_tank")
}

func TestGenerateConcerningRate(t *testing.T) {
	gen := NewSafetyReportGenerator(entity.DefaultCatalog())

	// fire_extinguisher in 6 of 10 batches: a 0.6 rate is concerning.
	batches := batchesWithKinds(6, []string{"fire_extinguisher"})
	batches = append(batches, batchesWithKinds(4, nil)...)

	report := gen.Generate(batches)
	kr := report.EquipmentStatus["fire_extinguisher"]
	require.InDelta(t, 0.6, kr.DetectionRate, 1e-9)
	require.Equal(t, entity.ReportConcerning, kr.Status)

	// One concerning kind and six critical ones.
	require.Equal(t, 100-10-6*20, report.OverallSafetyScore)
}

func TestGenerateWindowsNewestBatches(t *testing.T) {
	gen := NewSafetyReportGenerator(entity.DefaultCatalog())

	// 60 old batches without oxygen, then 50 with it: the window only sees
	// the newest 50, so the rate is a full 1.0.
	batches := batchesWithKinds(60, []string{"fire_extinguisher"})
	batches = append(batches, batchesWithKinds(50, []string{"oxygen_tank"})...)

	report := gen.Generate(batches)
	require.InDelta(t, 1.0, report.EquipmentStatus["oxygen_tank"].DetectionRate, 1e-9)
	require.InDelta(t, 0.0, report.EquipmentStatus["fire_extinguisher"].DetectionRate, 1e-9)
}
