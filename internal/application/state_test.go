package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"safety-watch/internal/domain/entity"
	"safety-watch/internal/domain/port"
	"safety-watch/internal/infrastructure/storage"
)

func newTestStore(t *testing.T) (*EquipmentStateStore, *storage.MemoryRepository) {
	t.Helper()
	repo := storage.NewMemoryRepository()
	store := NewEquipmentStateStore(context.Background(), entity.DefaultCatalog(), repo, nil)
	return store, repo
}

func detectionUpdate(t *testing.T, store *EquipmentStateStore, label string, confidence, placementScore float64) {
	t.Helper()
	d := entity.Detection{Label: label, Confidence: confidence, BBox: entity.BBox{100, 100, 50, 50}}
	analysis := &entity.PlacementAnalysis{
		Kind:           d.Kind(),
		Confidence:     confidence,
		PlacementScore: placementScore,
	}
	require.NoError(t, store.Update(context.Background(), d.Kind(), d, "img.jpg", analysis))
}

func TestStatusFor(t *testing.T) {
	cases := []struct {
		name       string
		confidence float64
		placement  float64
		want       entity.EquipmentStatus
	}{
		{"high confidence good placement", 0.9, 0.8, entity.StatusAvailable},
		{"high confidence poor placement", 0.9, 0.5, entity.StatusNeedsReview},
		{"medium confidence", 0.7, 0.9, entity.StatusNeedsReview},
		{"low confidence", 0.55, 0.9, entity.StatusNeedsReview},
		// Uncertain with good placement is CRITICAL, not review.
		{"uncertain good placement", 0.45, 0.9, entity.StatusCritical},
		{"uncertain poor placement", 0.45, 0.3, entity.StatusNeedsReview},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, statusFor(ClassifyConfidence(tc.confidence), tc.placement))
		})
	}
}

func TestStoreUpdate(t *testing.T) {
	store, _ := newTestStore(t)

	detectionUpdate(t, store, "fire extinguisher", 0.9, 0.8)
	detectionUpdate(t, store, "fire extinguisher", 0.45, 0.9)

	state, ok := store.StateFor("fire_extinguisher")
	require.True(t, ok)
	require.Equal(t, entity.StatusCritical, state.Status)
	require.Equal(t, entity.TierUncertain, state.Tier)
	require.Equal(t, 2, state.DetectionCount)
	require.InDelta(t, 0.45, state.Confidence, 1e-9)

	history := store.HistoryFor("fire_extinguisher")
	require.Len(t, history, 2)
	require.InDelta(t, 0.9, history[0].Confidence, 1e-9)
	require.InDelta(t, 0.45, history[1].Confidence, 1e-9)

	require.Nil(t, store.HistoryFor("oxygen_tank"))
}

func TestStoreHistoryBounded(t *testing.T) {
	store, _ := newTestStore(t)

	for i := 0; i < entity.HistoryCapacity+20; i++ {
		detectionUpdate(t, store, "oxygen tank", 0.9, 0.8)
	}

	history := store.HistoryFor("oxygen_tank")
	require.Len(t, history, entity.HistoryCapacity)

	state, ok := store.StateFor("oxygen_tank")
	require.True(t, ok)
	require.Equal(t, entity.HistoryCapacity+20, state.DetectionCount)
}

func TestStoreRestore(t *testing.T) {
	repo := storage.NewMemoryRepository()
	ctx := context.Background()

	store := NewEquipmentStateStore(ctx, entity.DefaultCatalog(), repo, nil)
	detectionUpdate(t, store, "first aid box", 0.85, 0.9)

	restored := NewEquipmentStateStore(ctx, entity.DefaultCatalog(), repo, nil)
	state, ok := restored.StateFor("first_aid_box")
	require.True(t, ok)
	require.Equal(t, entity.StatusAvailable, state.Status)
	require.Len(t, restored.HistoryFor("first_aid_box"), 1)
}

func TestStoreRestoreCorrupt(t *testing.T) {
	repo := storage.NewMemoryRepository()
	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, port.KeyEquipmentStatus, []byte("{not json")))
	require.NoError(t, repo.Save(ctx, port.KeyDetectionHistory, []byte("[broken")))

	store := NewEquipmentStateStore(ctx, entity.DefaultCatalog(), repo, nil)
	_, ok := store.StateFor("fire_extinguisher")
	require.False(t, ok)
	require.Nil(t, store.HistoryFor("fire_extinguisher"))
}

func TestSummaryEmptyStore(t *testing.T) {
	store, _ := newTestStore(t)

	summary := store.Summary()

	require.Equal(t, 7, summary.TotalEquipmentTypes)
	require.Equal(t, 0, summary.DetectedEquipmentTypes)
	require.Len(t, summary.MissingEquipment, 7)
	for _, missing := range summary.MissingEquipment {
		require.Equal(t, entity.NeverDetected, missing.LastSeen)
	}
	// More than two missing kinds escalates the overall status.
	require.Equal(t, entity.OverallCritical, summary.OverallStatus)
}

func TestSummaryStaleAndLowConfidence(t *testing.T) {
	store, _ := newTestStore(t)
	base := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	store.now = func() time.Time { return base }
	detectionUpdate(t, store, "fire extinguisher", 0.55, 0.9)
	detectionUpdate(t, store, "oxygen tank", 0.9, 0.8)

	store.now = func() time.Time { return base.Add(30 * time.Hour) }
	summary := store.Summary()

	require.Equal(t, 2, summary.DetectedEquipmentTypes)
	require.Equal(t, 1, summary.HighConfidenceDetections)

	require.Len(t, summary.CriticalAlerts, 1)
	require.Equal(t, "fire_extinguisher", summary.CriticalAlerts[0].Kind)

	// 5 never-detected kinds plus both stale ones.
	require.Len(t, summary.MissingEquipment, 7)
	var stale []entity.MissingEquipment
	for _, m := range summary.MissingEquipment {
		if m.LastSeen != entity.NeverDetected {
			stale = append(stale, m)
		}
	}
	require.Len(t, stale, 2)
	for _, m := range stale {
		require.InDelta(t, 30.0, m.HoursAgo, 1e-9)
	}

	require.Equal(t, entity.OverallCritical, summary.OverallStatus)
}

func TestSummaryNeedsAttention(t *testing.T) {
	store, _ := newTestStore(t)

	for _, kind := range entity.DefaultCatalog().Kinds() {
		detectionUpdate(t, store, kind, 0.9, 0.8)
	}
	// One kind drops to review without crossing the critical alert bar.
	detectionUpdate(t, store, "fire_alarm", 0.65, 0.9)

	summary := store.Summary()
	require.Equal(t, 7, summary.DetectedEquipmentTypes)
	require.Equal(t, 6, summary.HighConfidenceDetections)
	require.Equal(t, 1, summary.NeedsReview)
	require.Empty(t, summary.CriticalAlerts)
	require.Empty(t, summary.MissingEquipment)
	require.Equal(t, entity.OverallNeedsAttention, summary.OverallStatus)
}
