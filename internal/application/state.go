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

// EquipmentStateStore owns all per-kind equipment state and detection
// history. It is the only component that mutates persisted state and the
// authority for the status state machine.
//
// Updates for different kinds proceed concurrently; updates for the same
// kind are serialized by a per-kind lock so the read-modify-append-persist
// sequence never interleaves.
type EquipmentStateStore struct {
	catalog *entity.Catalog
	repo    port.StateRepository
	log     *zap.Logger

	mu      sync.RWMutex
	states  map[string]*entity.EquipmentState
	history map[string]*entity.HistoryRing
	kindMu  map[string]*sync.Mutex

	now func() time.Time
}

// NewEquipmentStateStore builds the store and restores persisted state.
// Corrupt or unreadable persisted data is logged and treated as empty.
func NewEquipmentStateStore(ctx context.Context, catalog *entity.Catalog, repo port.StateRepository, log *zap.Logger) *EquipmentStateStore {
	if log == nil {
		log = zap.NewNop()
	}
	s := &EquipmentStateStore{
		catalog: catalog,
		repo:    repo,
		log:     log,
		states:  make(map[string]*entity.EquipmentState),
		history: make(map[string]*entity.HistoryRing),
		kindMu:  make(map[string]*sync.Mutex),
		now:     time.Now,
	}
	s.restore(ctx)
	return s
}

func (s *EquipmentStateStore) restore(ctx context.Context) {
	if data, err := s.repo.Load(ctx, port.KeyEquipmentStatus); err != nil {
		s.log.Warn("loading equipment status failed, starting empty", zap.Error(err))
	} else if len(data) > 0 {
		states := make(map[string]*entity.EquipmentState)
		if err := json.Unmarshal(data, &states); err != nil {
			s.log.Warn("equipment status unreadable, starting empty", zap.Error(err))
		} else {
			s.states = states
		}
	}

	if data, err := s.repo.Load(ctx, port.KeyDetectionHistory); err != nil {
		s.log.Warn("loading detection history failed, starting empty", zap.Error(err))
	} else if len(data) > 0 {
		history := make(map[string]*entity.HistoryRing)
		if err := json.Unmarshal(data, &history); err != nil {
			s.log.Warn("detection history unreadable, starting empty", zap.Error(err))
		} else {
			s.history = history
		}
	}
}

// lockKind returns the mutex serializing updates for one kind.
func (s *EquipmentStateStore) lockKind(kind string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.kindMu[kind]
	if !ok {
		m = &sync.Mutex{}
		s.kindMu[kind] = m
	}
	return m
}

// Update records a detection for a kind: classifies the confidence tier,
// runs the status decision, overwrites the current state, appends history
// and persists.
func (s *EquipmentStateStore) Update(ctx context.Context, kind string, d entity.Detection, imagePath string, analysis *entity.PlacementAnalysis) error {
	km := s.lockKind(kind)
	km.Lock()
	defer km.Unlock()

	tier := ClassifyConfidence(d.Confidence)
	status := statusFor(tier, analysis.PlacementScore)
	now := s.now()

	s.mu.Lock()
	state, ok := s.states[kind]
	if !ok {
		state = &entity.EquipmentState{}
		s.states[kind] = state
	}
	state.Status = status
	state.Tier = tier
	state.Confidence = d.Confidence
	state.LastSeen = now
	state.LastImagePath = imagePath
	state.PlacementScore = analysis.PlacementScore
	state.DetectionCount++
	state.Flags = append([]string(nil), analysis.Flags...)
	state.Recommendations = append([]string(nil), analysis.Recommendations...)

	ring, ok := s.history[kind]
	if !ok {
		ring = entity.NewHistoryRing(entity.HistoryCapacity)
		s.history[kind] = ring
	}
	ring.Append(entity.HistoryEntry{
		Timestamp:      now,
		Confidence:     d.Confidence,
		BBox:           d.BBox,
		ImagePath:      imagePath,
		PlacementScore: analysis.PlacementScore,
	})
	s.mu.Unlock()

	s.persist(ctx)

	s.log.Debug("equipment state updated",
		zap.String("kind", kind),
		zap.String("status", string(status)),
		zap.Float64("confidence", d.Confidence),
		zap.Float64("placement_score", analysis.PlacementScore),
	)
	return nil
}

// statusFor is the ordered status decision; first match wins. The ordering
// makes an UNCERTAIN detection with good placement CRITICAL, not
// NEEDS_REVIEW.
func statusFor(tier entity.ConfidenceTier, placementScore float64) entity.EquipmentStatus {
	switch {
	case tier == entity.TierHigh && placementScore > 0.7:
		return entity.StatusAvailable
	case tier == entity.TierMedium || tier == entity.TierLow || placementScore <= 0.7:
		return entity.StatusNeedsReview
	default:
		return entity.StatusCritical
	}
}

// persist writes both keys. In-memory state stays authoritative when a
// save fails; the failure is only logged.
func (s *EquipmentStateStore) persist(ctx context.Context) {
	s.mu.RLock()
	statesJSON, statesErr := json.Marshal(s.states)
	historyJSON, historyErr := json.Marshal(s.history)
	s.mu.RUnlock()

	if statesErr != nil || historyErr != nil {
		s.log.Error("marshalling state failed",
			zap.NamedError("states", statesErr),
			zap.NamedError("history", historyErr))
		return
	}
	if err := s.repo.Save(ctx, port.KeyEquipmentStatus, statesJSON); err != nil {
		s.log.Error("saving equipment status failed", zap.Error(err))
	}
	if err := s.repo.Save(ctx, port.KeyDetectionHistory, historyJSON); err != nil {
		s.log.Error("saving detection history failed", zap.Error(err))
	}
}

// HistoryFor returns a chronological copy of a kind's history, oldest
// first, or nil when the kind was never detected.
func (s *EquipmentStateStore) HistoryFor(kind string) []entity.HistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ring, ok := s.history[kind]
	if !ok {
		return nil
	}
	return ring.Entries()
}

// StateFor returns a copy of the current state for a kind.
func (s *EquipmentStateStore) StateFor(kind string) (entity.EquipmentState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.states[kind]
	if !ok {
		return entity.EquipmentState{}, false
	}
	return *state, true
}

// Summary builds the dashboard view over every catalog kind, including
// kinds never detected.
func (s *EquipmentStateStore) Summary() entity.StatusSummary {
	now := s.now()

	s.mu.RLock()
	defer s.mu.RUnlock()

	summary := entity.StatusSummary{
		OverallStatus:          entity.OverallNominal,
		TotalEquipmentTypes:    s.catalog.Len(),
		DetectedEquipmentTypes: len(s.states),
		MissingEquipment:       []entity.MissingEquipment{},
		CriticalAlerts:         []entity.CriticalAlert{},
		EquipmentDetails:       make(map[string]entity.EquipmentDetail),
		LastUpdated:            now,
	}

	for _, kind := range s.catalog.Kinds() {
		state, ok := s.states[kind]
		if !ok {
			summary.MissingEquipment = append(summary.MissingEquipment, entity.MissingEquipment{
				Kind:     kind,
				LastSeen: entity.NeverDetected,
			})
			continue
		}

		if state.Tier == entity.TierHigh {
			summary.HighConfidenceDetections++
		} else if state.Status == entity.StatusNeedsReview {
			summary.NeedsReview++
		}

		if state.Confidence < 0.6 {
			summary.CriticalAlerts = append(summary.CriticalAlerts, entity.CriticalAlert{
				Kind:       kind,
				Issue:      "Low detection confidence",
				Confidence: state.Confidence,
				LastSeen:   state.LastSeen,
			})
		}

		if elapsed := now.Sub(state.LastSeen); elapsed > 24*time.Hour {
			summary.MissingEquipment = append(summary.MissingEquipment, entity.MissingEquipment{
				Kind:     kind,
				LastSeen: state.LastSeen.Format(time.RFC3339),
				HoursAgo: roundHours(elapsed),
			})
		}

		summary.EquipmentDetails[kind] = entity.EquipmentDetail{
			Status:          state.Status,
			Confidence:      state.Confidence,
			Tier:            state.Tier,
			PlacementScore:  state.PlacementScore,
			LastSeen:        state.LastSeen,
			DetectionCount:  state.DetectionCount,
			Recommendations: append([]string(nil), state.Recommendations...),
			Flags:           append([]string(nil), state.Flags...),
		}
	}

	switch {
	case len(summary.CriticalAlerts) > 0 || len(summary.MissingEquipment) > 2:
		summary.OverallStatus = entity.OverallCritical
	case summary.NeedsReview > 0 || len(summary.MissingEquipment) > 0:
		summary.OverallStatus = entity.OverallNeedsAttention
	}

	return summary
}

// roundHours converts to hours with one decimal place.
func roundHours(d time.Duration) float64 {
	return float64(int(d.Hours()*10+0.5)) / 10
}
