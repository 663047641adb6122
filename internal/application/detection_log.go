package app

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"safety-watch/internal/domain/entity"
	"safety-watch/internal/domain/port"
)

// detectionLogCapacity bounds the system-wide batch log.
const detectionLogCapacity = 1000

// RecentWindow is how many of the newest logged detections feed the
// criticality assessor.
const RecentWindow = 20

// DetectionLog is the bounded system-wide log of ingested detection
// batches. It feeds criticality assessment (newest detections) and safety
// reporting (newest batches).
type DetectionLog struct {
	repo port.StateRepository
	log  *zap.Logger

	mu      sync.RWMutex
	batches []entity.DetectionBatch
}

// NewDetectionLog builds the log and restores persisted entries; corrupt
// data starts the log empty.
func NewDetectionLog(ctx context.Context, repo port.StateRepository, log *zap.Logger) *DetectionLog {
	if log == nil {
		log = zap.NewNop()
	}
	l := &DetectionLog{repo: repo, log: log}

	data, err := repo.Load(ctx, port.KeyDetectionLog)
	if err != nil {
		log.Warn("loading detection log failed, starting empty", zap.Error(err))
		return l
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &l.batches); err != nil {
			log.Warn("detection log unreadable, starting empty", zap.Error(err))
			l.batches = nil
		}
	}
	return l
}

// Append records a batch of detections and persists the log. Empty
// batches are not recorded.
func (l *DetectionLog) Append(ctx context.Context, detections []entity.Detection, imagePath string) {
	if len(detections) == 0 {
		return
	}
	batch := entity.DetectionBatch{
		Timestamp:  time.Now().UTC(),
		ImagePath:  imagePath,
		Detections: make([]entity.LoggedDetection, 0, len(detections)),
	}
	for _, d := range detections {
		batch.Detections = append(batch.Detections, entity.LoggedDetection{
			Label:      d.Label,
			Confidence: d.Confidence,
		})
	}

	l.mu.Lock()
	l.batches = append(l.batches, batch)
	if len(l.batches) > detectionLogCapacity {
		l.batches = l.batches[len(l.batches)-detectionLogCapacity:]
	}
	data, err := json.Marshal(l.batches)
	l.mu.Unlock()

	if err != nil {
		l.log.Error("marshalling detection log failed", zap.Error(err))
		return
	}
	if err := l.repo.Save(ctx, port.KeyDetectionLog, data); err != nil {
		l.log.Error("saving detection log failed", zap.Error(err))
	}
}

// Recent flattens the newest n individual detections, oldest first,
// biasing assessment toward current state over historical presence.
func (l *DetectionLog) Recent(n int) []entity.Detection {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var flat []entity.Detection
	for _, b := range l.batches {
		for _, d := range b.Detections {
			flat = append(flat, entity.Detection{
				Label:      d.Label,
				Confidence: d.Confidence,
				ImagePath:  b.ImagePath,
			})
		}
	}
	if len(flat) > n {
		flat = flat[len(flat)-n:]
	}
	return flat
}

// Batches returns a copy of the whole batch log, oldest first.
func (l *DetectionLog) Batches() []entity.DetectionBatch {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]entity.DetectionBatch(nil), l.batches...)
}
