package entity

import (
	"time"

	"github.com/google/uuid"
)

// AlertRule is a user-defined trigger: fire when a detection of the target
// label arrives with at least the minimum confidence. Rules are managed by
// operators, not by detections.
type AlertRule struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Label         string    `json:"label"`
	MinConfidence float64   `json:"min_confidence"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewAlertRule creates an active rule with a fresh id.
func NewAlertRule(name, label string, minConfidence float64) AlertRule {
	return AlertRule{
		ID:            uuid.NewString(),
		Name:          name,
		Label:         label,
		MinConfidence: minConfidence,
		Active:        true,
		CreatedAt:     time.Now().UTC(),
	}
}

// Matches reports whether a detection satisfies the rule.
// Label comparison is case-insensitive via kind normalization.
func (r AlertRule) Matches(d Detection) bool {
	return r.Active &&
		d.Kind() == NormalizeLabel(r.Label) &&
		d.Confidence >= r.MinConfidence
}

// TriggeredAlert records one rule firing against a detection batch.
type TriggeredAlert struct {
	RuleID     string    `json:"alert_id"`
	RuleName   string    `json:"alert_name"`
	Label      string    `json:"detected_label"`
	Confidence float64   `json:"confidence"`
	Timestamp  time.Time `json:"timestamp"`
}
