package app

import (
	"testing"

	"github.com/stretchr/testify/require"

	"safety-watch/internal/domain/entity"
)

func fullDetectionSet(confidence float64) []entity.Detection {
	var out []entity.Detection
	for _, kind := range entity.DefaultCatalog().Kinds() {
		out = append(out, entity.Detection{Label: kind, Confidence: confidence})
	}
	return out
}

func TestAssessAllPresent(t *testing.T) {
	assessor := NewCriticalityAssessor(entity.DefaultCatalog())

	assessment := assessor.Assess(fullDetectionSet(0.9))
	require.Equal(t, entity.OverallNominal, assessment.OverallStatus)
	require.Empty(t, assessment.MissingEquipment)
	require.Empty(t, assessment.CriticalItems)
	require.Empty(t, assessment.LowConfidenceDetections)
	require.Empty(t, assessment.Recommendations)
}

func TestAssessMissingCriticalEscalates(t *testing.T) {
	assessor := NewCriticalityAssessor(entity.DefaultCatalog())

	var detections []entity.Detection
	for _, kind := range entity.DefaultCatalog().Kinds() {
		if kind == "oxygen_tank" {
			continue
		}
		detections = append(detections, entity.Detection{Label: kind, Confidence: 0.9})
	}

	assessment := assessor.Assess(detections)
	require.Equal(t, entity.OverallCritical, assessment.OverallStatus)
	require.Equal(t, []string{"oxygen_tank"}, assessment.CriticalItems)
	require.Len(t, assessment.MissingEquipment, 1)
	require.Equal(t, entity.EmergencyOxygenCritical, assessment.MissingEquipment[0].Emergency)
	require.Equal(t, "IMMEDIATE: Locate and verify critical safety equipment",
		assessment.Recommendations[0])
}

func TestAssessMissingNonCriticalStaysNominal(t *testing.T) {
	assessor := NewCriticalityAssessor(entity.DefaultCatalog())

	var detections []entity.Detection
	for _, kind := range entity.DefaultCatalog().Kinds() {
		if kind == "emergency_phone" {
			continue
		}
		detections = append(detections, entity.Detection{Label: kind, Confidence: 0.9})
	}

	assessment := assessor.Assess(detections)
	require.Equal(t, entity.OverallNominal, assessment.OverallStatus)
	require.Empty(t, assessment.CriticalItems)
	require.Len(t, assessment.MissingEquipment, 1)
	require.Equal(t, []string{"PRIORITY: Conduct equipment inventory check"},
		assessment.Recommendations)
}

func TestAssessLowConfidenceFloor(t *testing.T) {
	assessor := NewCriticalityAssessor(entity.DefaultCatalog())

	// 0.69 sits below the mission floor even though the tier is MEDIUM.
	assessment := assessor.Assess(fullDetectionSet(0.69))
	require.Equal(t, entity.OverallNominal, assessment.OverallStatus)
	require.Len(t, assessment.LowConfidenceDetections, 7)
	for _, item := range assessment.LowConfidenceDetections {
		require.Equal(t, entity.RequiresVisualConfirmation, item.Status)
	}
	require.Equal(t, []string{"ACTION: Visual confirmation required for flagged items"},
		assessment.Recommendations)
}

func TestResponseProtocol(t *testing.T) {
	assessor := NewCriticalityAssessor(entity.DefaultCatalog())

	protocols := assessor.ResponseProtocol(nil)
	// Activation step first, then one locate step per missing kind.
	require.Len(t, protocols, 8)
	require.Equal(t, "EMERGENCY_RESPONSE_ACTIVATION", protocols[0].Action)
	require.True(t, protocols[0].CrewActionRequired)

	seen := make(map[string]bool)
	for _, p := range protocols[1:] {
		seen[p.Action] = true
		require.NotEmpty(t, p.Checklist)
	}
	require.True(t, seen["LOCATE_OXYGEN_TANK"])
	require.True(t, seen["LOCATE_FIRE_EXTINGUISHER"])
}

func TestResponseProtocolAllPresent(t *testing.T) {
	assessor := NewCriticalityAssessor(entity.DefaultCatalog())
	require.Empty(t, assessor.ResponseProtocol(fullDetectionSet(0.9)))
}
