package app

import (
	"fmt"
	"strings"
	"time"

	"safety-watch/internal/domain/entity"
)

// reportWindow is how many of the newest logged batches a safety report
// considers.
const reportWindow = 50

// SafetyReportGenerator builds the crew safety report: per-kind detection
// rates over the recent window and a running safety score. Reports are
// always fresh computations, never persisted.
type SafetyReportGenerator struct {
	catalog *entity.Catalog
}

func NewSafetyReportGenerator(catalog *entity.Catalog) *SafetyReportGenerator {
	return &SafetyReportGenerator{catalog: catalog}
}

// Generate computes the report over the last reportWindow batches of the
// detection log. The safety score starts at 100, drops 20 per CRITICAL
// kind and 10 per CONCERNING kind, and is deliberately not clamped;
// callers must handle negative scores.
func (g *SafetyReportGenerator) Generate(history []entity.DetectionBatch) entity.SafetyReport {
	report := entity.SafetyReport{
		ID:                 entity.NewReportID(),
		GeneratedAt:        time.Now().UTC(),
		EquipmentStatus:    make(map[string]entity.KindReport),
		Recommendations:    []entity.Recommendation{},
		OverallSafetyScore: 100,
	}

	window := history
	if len(window) > reportWindow {
		window = window[len(window)-reportWindow:]
	}

	var criticalKinds []string
	for _, kind := range g.catalog.Kinds() {
		req := g.catalog.Requirement(kind)

		matches := 0
		var lastDetected *time.Time
		for _, batch := range window {
			for _, d := range batch.Detections {
				if entity.NormalizeLabel(d.Label) == kind {
					matches++
					ts := batch.Timestamp
					lastDetected = &ts
					break
				}
			}
		}

		rate := 0.0
		if len(window) > 0 {
			rate = float64(matches) / float64(len(window))
		}

		status := entity.ReportCritical
		if rate > 0.8 {
			status = entity.ReportAvailable
		} else if rate > 0.5 {
			status = entity.ReportConcerning
		}

		switch status {
		case entity.ReportCritical:
			report.OverallSafetyScore -= 20
			criticalKinds = append(criticalKinds, kind)
		case entity.ReportConcerning:
			report.OverallSafetyScore -= 10
		}

		report.EquipmentStatus[kind] = entity.KindReport{
			Kind:          kind,
			DetectionRate: rate,
			Criticality:   req.Criticality,
			LastDetected:  lastDetected,
			Status:        status,
		}
	}

	if len(criticalKinds) > 0 {
		report.Recommendations = append(report.Recommendations, entity.Recommendation{
			Priority:  "IMMEDIATE",
			Action:    fmt.Sprintf("Locate and verify: %s", strings.Join(criticalKinds, ", ")),
			Rationale: "Critical safety equipment not consistently detected",
		})
	}
	report.Recommendations = append(report.Recommendations, entity.Recommendation{
		Priority:  "ROUTINE",
		Action:    "Conduct daily equipment inventory using AI detection system",
		Rationale: "Maintain continuous safety equipment awareness",
	})

	return report
}
