package app

import (
	"fmt"
	"strings"

	"safety-watch/internal/domain/entity"
)

// MissionConfidenceFloor is the confidence bar applied by criticality
// assessment. Stricter than the general tiers: safety-critical contexts
// require higher trust.
const MissionConfidenceFloor = 0.7

// CriticalityAssessor compares recently detected equipment against the
// catalog. Stateless and pure; callers pass the recent window.
type CriticalityAssessor struct {
	catalog *entity.Catalog
}

func NewCriticalityAssessor(catalog *entity.Catalog) *CriticalityAssessor {
	return &CriticalityAssessor{catalog: catalog}
}

// Assess evaluates a recent detection window: missing catalog kinds,
// CRITICAL escalation, and low-confidence flagging.
func (c *CriticalityAssessor) Assess(detections []entity.Detection) entity.Assessment {
	assessment := entity.Assessment{
		OverallStatus:           entity.OverallNominal,
		CriticalItems:           []string{},
		MissingEquipment:        []entity.MissingItem{},
		LowConfidenceDetections: []entity.LowConfidenceItem{},
		Recommendations:         []string{},
	}

	detected := make(map[string]bool, len(detections))
	for _, d := range detections {
		detected[d.Kind()] = true
	}

	for _, kind := range c.catalog.Kinds() {
		if detected[kind] {
			continue
		}
		req := c.catalog.Requirement(kind)
		assessment.MissingEquipment = append(assessment.MissingEquipment, entity.MissingItem{
			Kind:        kind,
			Criticality: req.Criticality,
			Description: req.Description,
			Emergency:   req.Emergency,
		})
		if req.Criticality == entity.CriticalityCritical {
			assessment.OverallStatus = entity.OverallCritical
			assessment.CriticalItems = append(assessment.CriticalItems, kind)
		}
	}

	for _, d := range detections {
		if d.Confidence < MissionConfidenceFloor {
			assessment.LowConfidenceDetections = append(assessment.LowConfidenceDetections, entity.LowConfidenceItem{
				Kind:       d.Label,
				Confidence: d.Confidence,
				Status:     entity.RequiresVisualConfirmation,
			})
		}
	}

	if len(assessment.CriticalItems) > 0 {
		assessment.Recommendations = append(assessment.Recommendations,
			"IMMEDIATE: Locate and verify critical safety equipment")
	}
	if len(assessment.MissingEquipment) > 0 {
		assessment.Recommendations = append(assessment.Recommendations,
			"PRIORITY: Conduct equipment inventory check")
	}
	if len(assessment.LowConfidenceDetections) > 0 {
		assessment.Recommendations = append(assessment.Recommendations,
			"ACTION: Visual confirmation required for flagged items")
	}

	return assessment
}

// ResponseProtocol turns an assessment of the window into ordered protocol
// steps, one per missing kind plus an emergency-activation step when the
// assessment escalated.
func (c *CriticalityAssessor) ResponseProtocol(detections []entity.Detection) []entity.ProtocolStep {
	assessment := c.Assess(detections)
	var protocols []entity.ProtocolStep

	if assessment.OverallStatus == entity.OverallCritical {
		protocols = append(protocols, entity.ProtocolStep{
			Priority:           "IMMEDIATE",
			Action:             "EMERGENCY_RESPONSE_ACTIVATION",
			Description:        "Critical safety equipment not detected - activate emergency protocols",
			MaxResponseTime:    "30 seconds",
			CrewActionRequired: true,
		})
	}

	for _, missing := range assessment.MissingEquipment {
		req := c.catalog.Requirement(missing.Kind)
		protocols = append(protocols, entity.ProtocolStep{
			Priority:        string(missing.Criticality),
			Action:          "LOCATE_" + strings.ToUpper(missing.Kind),
			Description:     fmt.Sprintf("Locate and verify %s", req.Description),
			MaxResponseTime: fmt.Sprintf("%d seconds", req.MaxResponseTime),
			Checklist:       entity.Checklist(missing.Emergency),
		})
	}

	return protocols
}
