package app

import (
	"fmt"
	"math"

	"safety-watch/internal/domain/entity"
)

// PlacementScorer computes accessibility and placement quality from a
// detection's normalized position and size. All methods are pure; identical
// inputs always yield identical output.
type PlacementScorer struct {
	catalog *entity.Catalog
}

func NewPlacementScorer(catalog *entity.Catalog) *PlacementScorer {
	return &PlacementScorer{catalog: catalog}
}

// AnalyzePosition scores one detection against the image it came from.
// Returns ErrInvalidGeometry for a malformed bbox or non-positive dimensions.
func (s *PlacementScorer) AnalyzePosition(d entity.Detection, imageWidth, imageHeight int) (*entity.PlacementAnalysis, error) {
	if !d.BBox.Valid() {
		return nil, fmt.Errorf("%w: bbox must have 4 non-negative values", ErrInvalidGeometry)
	}
	if imageWidth <= 0 || imageHeight <= 0 {
		return nil, fmt.Errorf("%w: image dimensions %dx%d", ErrInvalidGeometry, imageWidth, imageHeight)
	}

	w := float64(imageWidth)
	h := float64(imageHeight)
	centerX := (d.BBox.X() + d.BBox.W()/2) / w
	centerY := (d.BBox.Y() + d.BBox.H()/2) / h
	relativeSize := d.BBox.Area() / (w * h)

	// The catalog lookup keeps unknown labels on the conservative entry.
	_ = s.catalog.Requirement(d.Kind())

	access := analyzeAccessibility(centerX, centerY, relativeSize)
	placement := placementScore(centerX, centerY, relativeSize, d.Confidence)

	analysis := &entity.PlacementAnalysis{
		Kind:            d.Kind(),
		Confidence:      d.Confidence,
		CenterX:         centerX,
		CenterY:         centerY,
		RelativeSize:    relativeSize,
		Accessibility:   access,
		PlacementScore:  placement,
		Flags:           []string{},
		Recommendations: []string{},
	}

	if d.Confidence < 0.6 {
		analysis.Flags = append(analysis.Flags, "LOW_CONFIDENCE_DETECTION")
		analysis.Recommendations = append(analysis.Recommendations,
			"Manual verification required - detection confidence below 60%")
	} else if d.Confidence < 0.8 {
		analysis.Flags = append(analysis.Flags, "MEDIUM_CONFIDENCE_DETECTION")
		analysis.Recommendations = append(analysis.Recommendations,
			"Visual confirmation recommended - detection confidence below 80%")
	}

	if placement < 0.7 {
		analysis.Recommendations = append(analysis.Recommendations,
			positioningRecommendations(analysis)...)
	}

	return analysis, nil
}

// analyzeAccessibility averages the three accessibility heuristics.
// A box reaching past the frame pushes the raw edge and height terms
// negative; both are floored at zero so the score stays within [0,1].
func analyzeAccessibility(centerX, centerY, size float64) entity.Accessibility {
	edgeDistance := math.Max(0, minOf(centerX, 1-centerX, centerY, 1-centerY))
	// Optimal mounting height sits around 60% from the top of frame.
	heightScore := math.Max(0, 1.0-math.Abs(centerY-0.6))
	sizeScore := math.Min(1.0, size*5)

	score := clamp01((edgeDistance + heightScore + sizeScore) / 3)

	assessment := "Poor"
	if score > 0.7 {
		assessment = "Good"
	} else if score > 0.4 {
		assessment = "Needs Improvement"
	}

	return entity.Accessibility{
		Score:                 score,
		EdgeDistance:          edgeDistance,
		HeightAppropriateness: heightScore,
		SizeVisibility:        sizeScore,
		Assessment:            assessment,
	}
}

// placementScore is the weighted composite. Its accessibility component
// (doubled edge distance) deliberately differs from the averaged
// accessibility score; both are consumed downstream.
func placementScore(centerX, centerY, size, confidence float64) float64 {
	const (
		accessibilityWeight = 0.3
		visibilityWeight    = 0.3
		confidenceWeight    = 0.4
	)

	accessibility := minOf(centerX, 1-centerX, centerY, 1-centerY) * 2
	visibility := math.Min(1.0, size*3) * (1 - math.Abs(centerY-0.5))

	score := accessibility*accessibilityWeight +
		visibility*visibilityWeight +
		confidence*confidenceWeight

	return clamp01(score)
}

// positioningRecommendations emits every matching note in fixed order.
func positioningRecommendations(a *entity.PlacementAnalysis) []string {
	var recs []string

	if a.Accessibility.HeightAppropriateness < 0.5 {
		if a.CenterY < 0.3 {
			recs = append(recs, "Equipment positioned too high - consider lowering for better crew access")
		} else if a.CenterY > 0.8 {
			recs = append(recs, "Equipment positioned too low - may be difficult to access in microgravity")
		}
	}

	if a.Accessibility.EdgeDistance < 0.2 {
		recs = append(recs, "Equipment too close to image edge - may indicate poor mounting location")
	}

	if a.RelativeSize < 0.01 {
		recs = append(recs, "Equipment appears small in frame - may be too far from camera or poorly positioned")
	}

	if a.Accessibility.Score < 0.5 {
		recs = append(recs, "Overall accessibility is poor - consider repositioning equipment")
	}

	return recs
}

func minOf(values ...float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
