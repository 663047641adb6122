package app

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"safety-watch/internal/domain/entity"
)

// contextCriticalKinds are the four kinds whose coverage grades the
// safety context of an image.
var contextCriticalKinds = []string{
	"fire_extinguisher",
	"oxygen_tank",
	"fire_alarm",
	"first_aid_box",
}

// ContextAnalyzer infers station context from a single image's detection
// batch: equipment distribution, a module guess, safety coverage and
// batch reliability. Pure; every call is a fresh computation.
type ContextAnalyzer struct {
	now func() time.Time
}

func NewContextAnalyzer() *ContextAnalyzer {
	return &ContextAnalyzer{now: time.Now}
}

// Analyze builds the full context view over one detection batch.
func (c *ContextAnalyzer) Analyze(detections []entity.Detection, imagePath string) entity.ContextAnalysis {
	analysis := entity.ContextAnalysis{
		ImagePath:            imagePath,
		Timestamp:            c.now().UTC(),
		EquipmentContext:     equipmentContext(detections),
		ModulePrediction:     predictModule(detections),
		SafetyAssessment:     safetyContext(detections),
		ConfidenceAssessment: batchConfidence(detections),
	}
	analysis.ContextualRecommendations = contextualRecommendations(analysis)
	return analysis
}

func equipmentContext(detections []entity.Detection) entity.EquipmentContext {
	counts := make(map[string]int)
	highCounts := make(map[string]int)
	var total float64
	for _, d := range detections {
		counts[d.Kind()]++
		total += d.Confidence
		if d.Confidence >= 0.8 {
			highCounts[d.Kind()]++
		}
	}

	avg := 0.0
	if len(detections) > 0 {
		avg = total / float64(len(detections))
	}

	density := entity.DensityLow
	if len(detections) > 5 {
		density = entity.DensityHigh
	} else if len(detections) > 2 {
		density = entity.DensityMedium
	}

	return entity.EquipmentContext{
		TotalEquipmentDetected:  len(detections),
		EquipmentTypes:          len(counts),
		EquipmentDistribution:   counts,
		HighConfidenceEquipment: highCounts,
		AverageConfidence:       avg,
		EquipmentDensity:        density,
	}
}

// predictModule scores candidate station modules from equipment
// composition. Diverse equipment points at laboratories, concentrated
// safety gear at crew areas, life support at tranquility.
func predictModule(detections []entity.Detection) entity.ModulePrediction {
	kinds := make(map[string]bool)
	for _, d := range detections {
		kinds[d.Kind()] = true
	}

	scores := make(map[string]float64)

	if len(kinds) >= 4 {
		scores["destiny"] = 0.7
		scores["columbus"] = 0.6
		scores["kibo"] = 0.5
	}

	safetyCount := 0
	for _, kind := range []string{"fire_extinguisher", "fire_alarm", "emergency_phone"} {
		if kinds[kind] {
			safetyCount++
		}
	}
	if safetyCount >= 2 {
		scores["harmony"] = 0.8
		scores["unity"] = 0.6
		scores["tranquility"] = 0.5
	}

	if kinds["oxygen_tank"] || kinds["nitrogen_tank"] {
		scores["tranquility"] += 0.3
	}

	if len(scores) == 0 {
		return entity.ModulePrediction{
			Prediction: "unknown",
			Reasoning:  "Insufficient context for module prediction",
		}
	}

	// Stable tie-break: first alphabetical module with the top score.
	modules := make([]string, 0, len(scores))
	for module := range scores {
		modules = append(modules, module)
	}
	sort.Strings(modules)
	best := modules[0]
	for _, module := range modules[1:] {
		if scores[module] > scores[best] {
			best = module
		}
	}
	return entity.ModulePrediction{
		Prediction: best,
		Confidence: scores[best],
		AllScores:  scores,
		Reasoning:  "Based on equipment distribution and safety equipment presence",
	}
}

func safetyContext(detections []entity.Detection) entity.SafetyContext {
	var detected []string
	var confidenceSum float64
	seen := make(map[string]bool)
	samples := 0
	for _, d := range detections {
		kind := d.Kind()
		for _, critical := range contextCriticalKinds {
			if kind == critical {
				detected = append(detected, kind)
				seen[kind] = true
				confidenceSum += d.Confidence
				samples++
				break
			}
		}
	}

	coverage := float64(len(seen)) / float64(len(contextCriticalKinds))
	avgConfidence := 0.0
	if samples > 0 {
		avgConfidence = confidenceSum / float64(samples)
	}

	status := entity.SafetyContextConcerning
	if coverage >= 0.75 && avgConfidence >= 0.7 {
		status = entity.SafetyContextGood
	} else if coverage >= 0.5 {
		status = entity.SafetyContextAdequate
	}

	var missing []string
	for _, kind := range contextCriticalKinds {
		if !seen[kind] {
			missing = append(missing, kind)
		}
	}

	return entity.SafetyContext{
		SafetyEquipmentDetected:  detected,
		SafetyCoverage:           coverage,
		AverageSafetyConfidence:  avgConfidence,
		SafetyStatus:             status,
		MissingCriticalEquipment: missing,
		Recommendations:          safetyContextRecommendations(status, coverage),
	}
}

func safetyContextRecommendations(status string, coverage float64) []string {
	var recs []string
	switch status {
	case entity.SafetyContextConcerning:
		recs = append(recs,
			"PRIORITY: Locate and verify missing critical safety equipment",
			"Conduct immediate safety equipment inventory check")
	case entity.SafetyContextAdequate:
		recs = append(recs, "Consider additional safety equipment placement for redundancy")
	default:
		recs = append(recs, "Safety equipment coverage is good - maintain current configuration")
	}
	if coverage < 1.0 {
		recs = append(recs,
			"Some critical safety equipment types not detected - verify presence and accessibility")
	}
	return recs
}

func batchConfidence(detections []entity.Detection) entity.BatchConfidence {
	if len(detections) == 0 {
		return entity.BatchConfidence{
			Level:       entity.ConfidenceLevelNoDetections,
			Reliability: "Cannot assess",
		}
	}

	var sum float64
	minConf, maxConf := detections[0].Confidence, detections[0].Confidence
	var dist entity.ConfidenceDistribution
	for _, d := range detections {
		sum += d.Confidence
		if d.Confidence < minConf {
			minConf = d.Confidence
		}
		if d.Confidence > maxConf {
			maxConf = d.Confidence
		}
		switch {
		case d.Confidence >= 0.8:
			dist.High++
		case d.Confidence >= 0.6:
			dist.Medium++
		default:
			dist.Low++
		}
	}
	avg := sum / float64(len(detections))

	level := entity.ConfidenceLevelLow
	reliability := "Low reliability - manual verification strongly recommended"
	if avg >= 0.8 && minConf >= 0.6 {
		level = entity.ConfidenceLevelHigh
		reliability = "Reliable detections - high confidence in results"
	} else if avg >= 0.6 && dist.Low <= 1 {
		level = entity.ConfidenceLevelMedium
		reliability = "Moderately reliable - some detections may need verification"
	}

	return entity.BatchConfidence{
		Level:        level,
		Score:        avg,
		Reliability:  reliability,
		Distribution: dist,
		Range:        entity.ConfidenceRange{Min: minConf, Max: maxConf},
	}
}

func contextualRecommendations(analysis entity.ContextAnalysis) []string {
	var recs []string

	switch analysis.ConfidenceAssessment.Level {
	case entity.ConfidenceLevelLow:
		recs = append(recs,
			"Overall detection confidence is low - conduct manual equipment verification")
	case entity.ConfidenceLevelMedium:
		recs = append(recs,
			"Some detections have medium confidence - verify critical equipment visually")
	}

	switch analysis.SafetyAssessment.SafetyStatus {
	case entity.SafetyContextConcerning:
		recs = append(recs,
			"Critical safety equipment missing or undetected - immediate inspection required")
	case entity.SafetyContextAdequate:
		recs = append(recs, "Safety equipment coverage is adequate but could be improved")
	}

	if module := analysis.ModulePrediction.Prediction; module != "unknown" {
		recs = append(recs, fmt.Sprintf(
			"Equipment configuration suggests %s module - verify module-specific safety protocols",
			strings.ToUpper(module)))
	}

	if analysis.EquipmentContext.EquipmentDensity == entity.DensityLow {
		recs = append(recs,
			"Low equipment density detected - ensure all required equipment is present in this area")
	}

	return recs
}
