package entity

// Accessibility holds the averaged accessibility sub-scores for a detection.
// Score averages the three sub-scores; it is intentionally a different
// formula from the accessibility component inside PlacementScore, and both
// are exposed because consumers read both.
type Accessibility struct {
	Score                 float64 `json:"score"`
	EdgeDistance          float64 `json:"edge_distance"`
	HeightAppropriateness float64 `json:"height_appropriateness"`
	SizeVisibility        float64 `json:"size_visibility"`
	Assessment            string  `json:"assessment"`
}

// PlacementAnalysis is the derived positioning result for one detection.
type PlacementAnalysis struct {
	Kind            string        `json:"equipment_type"`
	Confidence      float64       `json:"confidence"`
	CenterX         float64       `json:"center_x"`
	CenterY         float64       `json:"center_y"`
	RelativeSize    float64       `json:"relative_size"`
	Accessibility   Accessibility `json:"accessibility"`
	PlacementScore  float64       `json:"placement_score"`
	Flags           []string      `json:"flags"`
	Recommendations []string      `json:"recommendations"`
}
