package app

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"safety-watch/internal/domain/entity"
	"safety-watch/internal/infrastructure/storage"
)

func TestDetectionLogAppend(t *testing.T) {
	ctx := context.Background()
	repo := storage.NewMemoryRepository()
	log := NewDetectionLog(ctx, repo, nil)

	log.Append(ctx, []entity.Detection{
		{Label: "fire extinguisher", Confidence: 0.9},
		{Label: "oxygen tank", Confidence: 0.8},
	}, "one.jpg")
	log.Append(ctx, nil, "empty.jpg")
	log.Append(ctx, []entity.Detection{
		{Label: "first aid box", Confidence: 0.7},
	}, "two.jpg")

	// The empty batch was not recorded.
	batches := log.Batches()
	require.Len(t, batches, 2)
	require.Equal(t, "one.jpg", batches[0].ImagePath)
	require.Len(t, batches[0].Detections, 2)

	// Restored log sees the same batches.
	restored := NewDetectionLog(ctx, repo, nil)
	require.Len(t, restored.Batches(), 2)
}

func TestDetectionLogRecent(t *testing.T) {
	ctx := context.Background()
	log := NewDetectionLog(ctx, storage.NewMemoryRepository(), nil)

	for i := 0; i < 30; i++ {
		log.Append(ctx, []entity.Detection{
			{Label: fmt.Sprintf("kind_%d", i), Confidence: 0.9},
		}, "img.jpg")
	}

	recent := log.Recent(RecentWindow)
	require.Len(t, recent, RecentWindow)
	require.Equal(t, "kind_10", recent[0].Label)
	require.Equal(t, "kind_29", recent[len(recent)-1].Label)

	all := log.Recent(1000)
	require.Len(t, all, 30)
}

func TestDetectionLogBounded(t *testing.T) {
	ctx := context.Background()
	log := NewDetectionLog(ctx, storage.NewMemoryRepository(), nil)

	for i := 0; i < detectionLogCapacity+50; i++ {
		log.Append(ctx, []entity.Detection{
			{Label: "fire extinguisher", Confidence: 0.9},
		}, fmt.Sprintf("img_%d.jpg", i))
	}

	batches := log.Batches()
	require.Len(t, batches, detectionLogCapacity)
	require.Equal(t, fmt.Sprintf("img_%d.jpg", detectionLogCapacity+49),
		batches[len(batches)-1].ImagePath)
}
