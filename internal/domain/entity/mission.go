package entity

import (
	"fmt"
	"time"
)

// MissionLogEntry is one standardized mission log record for an ingested
// detection batch.
type MissionLogEntry struct {
	MissionTime     string         `json:"mission_time"`
	TimestampUTC    time.Time      `json:"timestamp_utc"`
	StationModule   string         `json:"station_module"`
	CrewMember      string         `json:"crew_member,omitempty"`
	System          string         `json:"system"`
	EventType       string         `json:"event_type"`
	Detections      []Detection    `json:"detection_data"`
	Assessment      Assessment     `json:"criticality_assessment"`
	RequiredActions []ProtocolStep `json:"required_actions"`
	LogID           string         `json:"log_id"`
}

// DetectionSummary is the condensed detection block of a station alert.
type DetectionSummary struct {
	TotalDetections  int      `json:"total_detections"`
	DetectedLabels   []string `json:"detected_equipment"`
	MissingCritical  []string `json:"missing_critical"`
	ConfidenceIssues int      `json:"confidence_issues"`
}

// StationAlert is the mission-grade alert raised from one detection batch.
type StationAlert struct {
	AlertType                  string           `json:"alert_type"`
	MissionTime                string           `json:"mission_time"`
	TimestampUTC               time.Time        `json:"timestamp_utc"`
	StationModule              string           `json:"station_module"`
	CrewMember                 string           `json:"crew_member,omitempty"`
	Criticality                OverallStatus    `json:"criticality"`
	AlertID                    string           `json:"alert_id"`
	Summary                    DetectionSummary `json:"detection_summary"`
	RequiredActions            []ProtocolStep   `json:"required_actions"`
	GroundControlNotification  bool             `json:"ground_control_notification"`
	CrewAcknowledgmentRequired bool             `json:"crew_acknowledgment_required"`
}

// MissionTime formats a timestamp as GMT day-of-year clock time,
// e.g. "GMT 152:14:03:27".
func MissionTime(t time.Time) string {
	t = t.UTC()
	return fmt.Sprintf("GMT %03d:%s", t.YearDay(), t.Format("15:04:05"))
}

// NewMissionLogID returns a mission log identifier for a timestamp.
func NewMissionLogID(t time.Time) string {
	t = t.UTC()
	return fmt.Sprintf("EVA_%d%03d_%s", t.Year(), t.YearDay(), t.Format("150405"))
}

// NewStationAlertID returns a station alert identifier for a timestamp.
func NewStationAlertID(t time.Time) string {
	t = t.UTC()
	return fmt.Sprintf("ESA_%d%03d_%s", t.Year(), t.YearDay(), t.Format("150405"))
}
