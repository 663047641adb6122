package entity

import (
	"time"

	"github.com/google/uuid"
)

// OverallStatus summarizes the whole system state.
type OverallStatus string

const (
	OverallNominal        OverallStatus = "NOMINAL"
	OverallNeedsAttention OverallStatus = "NEEDS_ATTENTION"
	OverallCritical       OverallStatus = "CRITICAL"
)

// NeverDetected marks a kind that has no detections at all in a summary.
const NeverDetected = "Never detected"

// MissingEquipment is a summary entry for a kind without recent detections.
type MissingEquipment struct {
	Kind     string  `json:"equipment"`
	LastSeen string  `json:"last_seen"` // RFC3339 or NeverDetected
	HoursAgo float64 `json:"hours_ago,omitempty"`
}

// CriticalAlert is a summary entry for a kind with unreliable detections.
type CriticalAlert struct {
	Kind       string    `json:"equipment"`
	Issue      string    `json:"issue"`
	Confidence float64   `json:"confidence"`
	LastSeen   time.Time `json:"last_seen"`
}

// EquipmentDetail is the per-kind slice of a status summary.
type EquipmentDetail struct {
	Status          EquipmentStatus `json:"status"`
	Confidence      float64         `json:"confidence"`
	Tier            ConfidenceTier  `json:"confidence_level"`
	PlacementScore  float64         `json:"placement_score"`
	LastSeen        time.Time       `json:"last_seen"`
	DetectionCount  int             `json:"detection_count"`
	Recommendations []string        `json:"recommendations"`
	Flags           []string        `json:"flags"`
}

// StatusSummary is the full dashboard view over every catalog kind.
type StatusSummary struct {
	OverallStatus            OverallStatus              `json:"overall_status"`
	TotalEquipmentTypes      int                        `json:"total_equipment_types"`
	DetectedEquipmentTypes   int                        `json:"detected_equipment_types"`
	HighConfidenceDetections int                        `json:"high_confidence_detections"`
	NeedsReview              int                        `json:"needs_review"`
	MissingEquipment         []MissingEquipment         `json:"missing_equipment"`
	CriticalAlerts           []CriticalAlert            `json:"critical_alerts"`
	EquipmentDetails         map[string]EquipmentDetail `json:"equipment_details"`
	LastUpdated              time.Time                  `json:"last_updated"`
}

// Trend direction values for the binary windowed trend.
const (
	TrendImproving = "improving"
	TrendDeclining = "declining"
	TrendStable    = "stable"
)

// Trends holds windowed statistics for one kind's detection history.
type Trends struct {
	Kind                     string    `json:"equipment_type"`
	PeriodDays               int       `json:"period_days"`
	TotalDetections          int       `json:"total_detections"`
	AverageConfidence        float64   `json:"average_confidence"`
	ConfidenceTrend          string    `json:"confidence_trend"`
	AveragePlacementScore    float64   `json:"average_placement_score"`
	HighConfidenceDetections int       `json:"high_confidence_detections"`
	LowConfidenceDetections  int       `json:"low_confidence_detections"`
	DetectionFrequency       float64   `json:"detection_frequency"`
	LatestDetection          time.Time `json:"latest_detection"`
	ConsistencyScore         float64   `json:"consistency_score"`
}

// MissingItem is a criticality-assessment entry for an undetected kind.
type MissingItem struct {
	Kind        string        `json:"equipment"`
	Criticality Criticality   `json:"criticality"`
	Description string        `json:"description"`
	Emergency   EmergencyType `json:"emergency_type"`
}

// LowConfidenceItem flags a detection below the mission confidence bar.
type LowConfidenceItem struct {
	Kind       string  `json:"equipment"`
	Confidence float64 `json:"confidence"`
	Status     string  `json:"status"`
}

// RequiresVisualConfirmation is the status set on low-confidence items.
const RequiresVisualConfirmation = "REQUIRES_VISUAL_CONFIRMATION"

// Assessment is the criticality view over a recent detection window.
type Assessment struct {
	OverallStatus           OverallStatus       `json:"overall_status"`
	CriticalItems           []string            `json:"critical_items"`
	MissingEquipment        []MissingItem       `json:"missing_equipment"`
	LowConfidenceDetections []LowConfidenceItem `json:"low_confidence_detections"`
	Recommendations         []string            `json:"recommendations"`
}

// ProtocolStep is one entry of a generated response protocol.
type ProtocolStep struct {
	Priority           string   `json:"priority"`
	Action             string   `json:"action"`
	Description        string   `json:"description"`
	MaxResponseTime    string   `json:"max_response_time"`
	CrewActionRequired bool     `json:"crew_action_required,omitempty"`
	Checklist          []string `json:"emergency_checklist,omitempty"`
}

// Availability statuses used by the safety report, distinct from the
// per-kind EquipmentStatus state machine.
const (
	ReportAvailable  = "AVAILABLE"
	ReportConcerning = "CONCERNING"
	ReportCritical   = "CRITICAL"
)

// KindReport is the per-kind section of a safety report.
type KindReport struct {
	Kind          string      `json:"equipment"`
	DetectionRate float64     `json:"detection_rate"`
	Criticality   Criticality `json:"criticality"`
	LastDetected  *time.Time  `json:"last_detected"`
	Status        string      `json:"status"`
}

// Recommendation is a prioritized report recommendation.
type Recommendation struct {
	Priority  string `json:"priority"`
	Action    string `json:"action"`
	Rationale string `json:"rationale"`
}

// SafetyReport is a fresh on-demand computation over recent history;
// it is never persisted as its own entity.
type SafetyReport struct {
	ID                 string                `json:"report_id"`
	GeneratedAt        time.Time             `json:"generation_time"`
	EquipmentStatus    map[string]KindReport `json:"equipment_status"`
	Recommendations    []Recommendation      `json:"recommendations"`
	OverallSafetyScore int                   `json:"overall_safety_score"`
}

// NewReportID returns a unique safety report identifier.
func NewReportID() string {
	return "CSR_" + uuid.NewString()
}

// TrendSummary is the dead-band trend block of a condition assessment.
type TrendSummary struct {
	ConfidenceTrend      string    `json:"confidence_trend"`
	AverageConfidence    float64   `json:"average_confidence"`
	ConfidenceVariance   float64   `json:"confidence_variance"`
	DetectionConsistency float64   `json:"detection_consistency"`
	RecentPerformance    []float64 `json:"recent_performance"`
}

// ConditionAssessment is the visual-condition view of one detection.
type ConditionAssessment struct {
	Kind                string            `json:"equipment_type"`
	Confidence          float64           `json:"confidence"`
	ConditionScore      float64           `json:"condition_score"`
	ReliabilityFlags    []string          `json:"reliability_flags"`
	Indicators          map[string]string `json:"condition_indicators"`
	Checks              map[string]bool   `json:"condition_checks,omitempty"`
	Recommendations     []string          `json:"recommendations"`
	RequiresInspection  bool              `json:"requires_inspection"`
	Trend               *TrendSummary     `json:"trend_analysis,omitempty"`
}

// LoggedDetection is one detection inside a logged batch.
type LoggedDetection struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// DetectionBatch is one ingested image's worth of detections in the
// bounded system-wide log that feeds criticality assessment and safety
// reporting.
type DetectionBatch struct {
	Timestamp  time.Time         `json:"timestamp"`
	ImagePath  string            `json:"image_path,omitempty"`
	Detections []LoggedDetection `json:"detections"`
}
