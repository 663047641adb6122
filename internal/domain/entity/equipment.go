package entity

import (
	"encoding/json"
	"time"
)

// ConfidenceTier buckets a raw model confidence into a reliability tier.
type ConfidenceTier string

const (
	TierHigh      ConfidenceTier = "HIGH"      // >=0.8, trust the detection
	TierMedium    ConfidenceTier = "MEDIUM"    // >=0.6, flag for review
	TierLow       ConfidenceTier = "LOW"       // >=0.5, manual verification required
	TierUncertain ConfidenceTier = "UNCERTAIN" // <0.5, highly unreliable
)

// EquipmentStatus is the computed per-kind status. Callers never set it
// directly; the state store drives all transitions.
type EquipmentStatus string

const (
	StatusAvailable   EquipmentStatus = "AVAILABLE"    // high confidence, good position
	StatusNeedsReview EquipmentStatus = "NEEDS_REVIEW" // medium confidence or placement issues
	StatusMissing     EquipmentStatus = "MISSING"      // not detected recently
	StatusCritical    EquipmentStatus = "CRITICAL"     // unreliable detection of critical equipment
)

// HistoryEntry is one detection appended to a kind's history.
// Entries are immutable once appended.
type HistoryEntry struct {
	Timestamp      time.Time `json:"timestamp"`
	Confidence     float64   `json:"confidence"`
	BBox           BBox      `json:"bbox"`
	ImagePath      string    `json:"image_path"`
	PlacementScore float64   `json:"placement_score"`
}

// EquipmentState is the persisted per-kind state, owned exclusively by the
// state store.
type EquipmentState struct {
	Status          EquipmentStatus `json:"status"`
	Tier            ConfidenceTier  `json:"confidence_level"`
	Confidence      float64         `json:"confidence"`
	LastSeen        time.Time       `json:"last_seen"`
	LastImagePath   string          `json:"last_image"`
	PlacementScore  float64         `json:"placement_score"`
	DetectionCount  int             `json:"detection_count"`
	Flags           []string        `json:"flags,omitempty"`
	Recommendations []string        `json:"recommendations,omitempty"`
}

// HistoryCapacity is the fixed per-kind history depth.
const HistoryCapacity = 100

// HistoryRing is a fixed-capacity detection history. Appends past capacity
// evict the oldest entry; iteration order is always chronological.
type HistoryRing struct {
	entries []HistoryEntry
	start   int
	size    int
}

// NewHistoryRing creates an empty ring with the given capacity.
func NewHistoryRing(capacity int) *HistoryRing {
	if capacity <= 0 {
		capacity = HistoryCapacity
	}
	return &HistoryRing{entries: make([]HistoryEntry, capacity)}
}

// Append adds an entry, evicting the oldest one when full.
func (r *HistoryRing) Append(e HistoryEntry) {
	if r.size < len(r.entries) {
		r.entries[(r.start+r.size)%len(r.entries)] = e
		r.size++
		return
	}
	r.entries[r.start] = e
	r.start = (r.start + 1) % len(r.entries)
}

// Len returns the number of stored entries.
func (r *HistoryRing) Len() int { return r.size }

// Entries returns a chronological copy, oldest first.
func (r *HistoryRing) Entries() []HistoryEntry {
	out := make([]HistoryEntry, r.size)
	for i := 0; i < r.size; i++ {
		out[i] = r.entries[(r.start+i)%len(r.entries)]
	}
	return out
}

// MarshalJSON serializes the ring as a chronological array.
func (r *HistoryRing) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Entries())
}

// UnmarshalJSON restores the ring from a chronological array, keeping only
// the newest HistoryCapacity entries.
func (r *HistoryRing) UnmarshalJSON(data []byte) error {
	var entries []HistoryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	*r = *NewHistoryRing(HistoryCapacity)
	for _, e := range entries {
		r.Append(e)
	}
	return nil
}
