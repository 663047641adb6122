package entity

// Suggested actions for a labeling candidate.
const (
	LabelAutoAccept      = "AUTO_ACCEPT"
	LabelReviewSuggested = "REVIEW_SUGGESTED"
	LabelManualRequired  = "MANUAL_REQUIRED"
)

// Labeling priorities for a whole image.
const (
	LabelingPriorityHigh   = "HIGH"
	LabelingPriorityMedium = "MEDIUM"
	LabelingPriorityLow    = "LOW"
)

// LabelingSuggestion is the per-detection verdict of the auto-labeling
// advisor.
type LabelingSuggestion struct {
	DetectionID     int      `json:"detection_id"`
	Label           string   `json:"label"`
	Confidence      float64  `json:"confidence"`
	BBox            BBox     `json:"bbox"`
	SuggestedAction string   `json:"suggested_action"`
	Reasons         []string `json:"reasons"`
}

// LabelingSuggestions is the advisor's view of one image's detections,
// split into auto-acceptable labels and those needing a human.
type LabelingSuggestions struct {
	ImagePath            string               `json:"image_path"`
	TotalDetections      int                  `json:"total_detections"`
	HighConfidenceCount  int                  `json:"high_confidence_count"`
	NeedsReviewCount     int                  `json:"needs_review_count"`
	AutoLabelSuggestions []LabelingSuggestion `json:"auto_label_suggestions"`
	ManualReviewRequired []LabelingSuggestion `json:"manual_review_required"`
	QualityFlags         []string             `json:"quality_flags"`
	LabelingPriority     string               `json:"labeling_priority"`
}

// BBoxImprovement is one issue found while reviewing a bounding box.
type BBoxImprovement struct {
	Issue      string `json:"issue"`
	Suggestion string `json:"suggestion"`
	Severity   string `json:"severity"`
}

// BBoxReview is the quality verdict for one bounding box.
type BBoxReview struct {
	OriginalBBox BBox              `json:"original_bbox"`
	Confidence   float64           `json:"confidence"`
	Improvements []BBoxImprovement `json:"improvements"`
	QualityScore float64           `json:"quality_score"`
}
