package entity

import "time"

// Equipment density buckets for a detection batch.
const (
	DensityHigh   = "High"
	DensityMedium = "Medium"
	DensityLow    = "Low"
)

// EquipmentContext summarizes the equipment distribution in one image.
type EquipmentContext struct {
	TotalEquipmentDetected  int            `json:"total_equipment_detected"`
	EquipmentTypes          int            `json:"equipment_types"`
	EquipmentDistribution   map[string]int `json:"equipment_distribution"`
	HighConfidenceEquipment map[string]int `json:"high_confidence_equipment"`
	AverageConfidence       float64        `json:"average_confidence"`
	EquipmentDensity        string         `json:"equipment_density"`
}

// ModulePrediction is the heuristic guess at which station module the
// image shows, based on equipment composition.
type ModulePrediction struct {
	Prediction string             `json:"prediction"`
	Confidence float64            `json:"confidence"`
	AllScores  map[string]float64 `json:"all_scores,omitempty"`
	Reasoning  string             `json:"reasoning"`
}

// Safety context statuses.
const (
	SafetyContextGood       = "GOOD"
	SafetyContextAdequate   = "ADEQUATE"
	SafetyContextConcerning = "CONCERNING"
)

// SafetyContext grades the coverage of the four most critical kinds.
type SafetyContext struct {
	SafetyEquipmentDetected  []string `json:"safety_equipment_detected"`
	SafetyCoverage           float64  `json:"safety_coverage"`
	AverageSafetyConfidence  float64  `json:"average_safety_confidence"`
	SafetyStatus             string   `json:"safety_status"`
	MissingCriticalEquipment []string `json:"missing_critical_equipment"`
	Recommendations          []string `json:"recommendations"`
}

// Confidence assessment levels over a whole batch.
const (
	ConfidenceLevelHigh         = "HIGH"
	ConfidenceLevelMedium       = "MEDIUM"
	ConfidenceLevelLow          = "LOW"
	ConfidenceLevelNoDetections = "NO_DETECTIONS"
)

// ConfidenceDistribution counts detections per tier bucket.
type ConfidenceDistribution struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// ConfidenceRange is the min/max confidence inside a batch.
type ConfidenceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// BatchConfidence grades how much the batch as a whole can be trusted.
type BatchConfidence struct {
	Level        string                 `json:"level"`
	Score        float64                `json:"score"`
	Reliability  string                 `json:"reliability"`
	Distribution ConfidenceDistribution `json:"confidence_distribution"`
	Range        ConfidenceRange        `json:"confidence_range"`
}

// ContextAnalysis is the full station-context view of one image.
type ContextAnalysis struct {
	ImagePath                 string           `json:"image_path"`
	Timestamp                 time.Time        `json:"timestamp"`
	EquipmentContext          EquipmentContext `json:"equipment_context"`
	ModulePrediction          ModulePrediction `json:"module_prediction"`
	SafetyAssessment          SafetyContext    `json:"safety_assessment"`
	ConfidenceAssessment      BatchConfidence  `json:"confidence_assessment"`
	ContextualRecommendations []string         `json:"contextual_recommendations"`
}
