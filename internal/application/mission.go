package app

import (
	"time"

	"safety-watch/internal/domain/entity"
)

const (
	missionSystem    = "AI_VISION_EMERGENCY_DETECTION"
	missionEventType = "EQUIPMENT_DETECTION"
	stationAlertType = "EQUIPMENT_STATUS_ALERT"
)

// MissionJournal formats detection batches into mission log entries and
// station alerts, reusing the criticality assessment and response
// protocols. Stateless; entries are returned, never stored here.
type MissionJournal struct {
	assessor *CriticalityAssessor
	now      func() time.Time
}

func NewMissionJournal(assessor *CriticalityAssessor) *MissionJournal {
	return &MissionJournal{assessor: assessor, now: time.Now}
}

// LogEntry builds a standardized mission log entry for one batch.
// Module defaults to UNKNOWN, matching the uplink convention.
func (j *MissionJournal) LogEntry(detections []entity.Detection, stationModule, crewMember string) entity.MissionLogEntry {
	if stationModule == "" {
		stationModule = "UNKNOWN"
	}
	now := j.now().UTC()

	return entity.MissionLogEntry{
		MissionTime:     entity.MissionTime(now),
		TimestampUTC:    now,
		StationModule:   stationModule,
		CrewMember:      crewMember,
		System:          missionSystem,
		EventType:       missionEventType,
		Detections:      append([]entity.Detection(nil), detections...),
		Assessment:      j.assessor.Assess(detections),
		RequiredActions: j.assessor.ResponseProtocol(detections),
		LogID:           entity.NewMissionLogID(now),
	}
}

// Alert builds a station alert for one batch. Ground control is notified
// and crew acknowledgment required only when critical kinds are missing.
func (j *MissionJournal) Alert(detections []entity.Detection, stationModule, crewMember string) entity.StationAlert {
	if stationModule == "" {
		stationModule = "UNKNOWN"
	}
	now := j.now().UTC()
	assessment := j.assessor.Assess(detections)

	labels := make([]string, 0, len(detections))
	for _, d := range detections {
		labels = append(labels, d.Label)
	}

	return entity.StationAlert{
		AlertType:     stationAlertType,
		MissionTime:   entity.MissionTime(now),
		TimestampUTC:  now,
		StationModule: stationModule,
		CrewMember:    crewMember,
		Criticality:   assessment.OverallStatus,
		AlertID:       entity.NewStationAlertID(now),
		Summary: entity.DetectionSummary{
			TotalDetections:  len(detections),
			DetectedLabels:   labels,
			MissingCritical:  assessment.CriticalItems,
			ConfidenceIssues: len(assessment.LowConfidenceDetections),
		},
		RequiredActions:            j.assessor.ResponseProtocol(detections),
		GroundControlNotification:  assessment.OverallStatus == entity.OverallCritical,
		CrewAcknowledgmentRequired: len(assessment.CriticalItems) > 0,
	}
}
