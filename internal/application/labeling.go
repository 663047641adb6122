package app

import (
	"fmt"
	"math"

	"safety-watch/internal/domain/entity"
)

// DefaultLabelingThreshold separates review-worthy detections from those
// needing full manual labeling.
const DefaultLabelingThreshold = 0.6

// LabelingAdvisor suggests how each detection of an image should be
// handled when building training data. Pure; no state is touched.
type LabelingAdvisor struct{}

func NewLabelingAdvisor() *LabelingAdvisor {
	return &LabelingAdvisor{}
}

// Suggestions sorts an image's detections into auto-acceptable labels and
// ones that need a human, with per-detection reasons and quality flags.
// A non-positive threshold falls back to DefaultLabelingThreshold.
func (a *LabelingAdvisor) Suggestions(detections []entity.Detection, imagePath string, threshold float64) entity.LabelingSuggestions {
	if threshold <= 0 {
		threshold = DefaultLabelingThreshold
	}

	out := entity.LabelingSuggestions{
		ImagePath:            imagePath,
		TotalDetections:      len(detections),
		AutoLabelSuggestions: []entity.LabelingSuggestion{},
		ManualReviewRequired: []entity.LabelingSuggestion{},
		QualityFlags:         []string{},
		LabelingPriority:     entity.LabelingPriorityLow,
	}

	for i, d := range detections {
		suggestion := entity.LabelingSuggestion{
			DetectionID: i,
			Label:       d.Label,
			Confidence:  d.Confidence,
			BBox:        d.BBox,
			Reasons:     []string{},
		}

		switch {
		case d.Confidence >= 0.8:
			out.HighConfidenceCount++
			suggestion.SuggestedAction = entity.LabelAutoAccept
			suggestion.Reasons = append(suggestion.Reasons, "High confidence detection")
		case d.Confidence >= threshold:
			out.NeedsReviewCount++
			suggestion.SuggestedAction = entity.LabelReviewSuggested
			suggestion.Reasons = append(suggestion.Reasons,
				"Medium confidence - manual verification recommended")
		default:
			suggestion.SuggestedAction = entity.LabelManualRequired
			suggestion.Reasons = append(suggestion.Reasons,
				"Low confidence - manual labeling required")
		}

		if d.BBox.Valid() {
			if d.BBox.Area() < 100 {
				suggestion.Reasons = append(suggestion.Reasons,
					"Very small detection area - may be false positive")
				out.QualityFlags = append(out.QualityFlags,
					fmt.Sprintf("Small detection area for %s", d.Label))
			}
			if ratio := d.BBox.AspectRatio(); ratio < 0.2 || ratio > 5.0 {
				suggestion.Reasons = append(suggestion.Reasons,
					"Unusual aspect ratio - verify bounding box accuracy")
				out.QualityFlags = append(out.QualityFlags,
					fmt.Sprintf("Unusual aspect ratio for %s", d.Label))
			}
		}

		if suggestion.SuggestedAction == entity.LabelAutoAccept {
			out.AutoLabelSuggestions = append(out.AutoLabelSuggestions, suggestion)
		} else {
			out.ManualReviewRequired = append(out.ManualReviewRequired, suggestion)
		}
	}

	if out.NeedsReviewCount > 3 {
		out.LabelingPriority = entity.LabelingPriorityHigh
	} else if out.NeedsReviewCount > 1 {
		out.LabelingPriority = entity.LabelingPriorityMedium
	}

	return out
}

// ReviewBBox scores one bounding box and lists concrete improvement
// suggestions. Returns ErrInvalidGeometry for malformed input.
func (a *LabelingAdvisor) ReviewBBox(d entity.Detection, imageWidth, imageHeight int) (*entity.BBoxReview, error) {
	if !d.BBox.Valid() {
		return nil, fmt.Errorf("%w: bbox must have 4 non-negative values", ErrInvalidGeometry)
	}
	if imageWidth <= 0 || imageHeight <= 0 {
		return nil, fmt.Errorf("%w: image dimensions %dx%d", ErrInvalidGeometry, imageWidth, imageHeight)
	}

	w := float64(imageWidth)
	h := float64(imageHeight)
	review := &entity.BBoxReview{
		OriginalBBox: d.BBox,
		Confidence:   d.Confidence,
		Improvements: []entity.BBoxImprovement{},
		QualityScore: bboxQuality(d.BBox, w, h),
	}

	if d.BBox.Area()/(w*h) < 0.01 {
		review.Improvements = append(review.Improvements, entity.BBoxImprovement{
			Issue:      "Bounding box too small",
			Suggestion: "Consider expanding bounding box to include more of the object",
			Severity:   "medium",
		})
	}

	const edgeThreshold = 5 // pixels
	if d.BBox.X() < edgeThreshold || d.BBox.Y() < edgeThreshold {
		review.Improvements = append(review.Improvements, entity.BBoxImprovement{
			Issue:      "Bounding box at image edge",
			Suggestion: "Object may be partially cut off - verify complete object is visible",
			Severity:   "low",
		})
	}
	if d.BBox.X()+d.BBox.W() > w-edgeThreshold || d.BBox.Y()+d.BBox.H() > h-edgeThreshold {
		review.Improvements = append(review.Improvements, entity.BBoxImprovement{
			Issue:      "Bounding box extends to image edge",
			Suggestion: "Object may be partially cut off - verify complete object is visible",
			Severity:   "low",
		})
	}

	if ratio := d.BBox.AspectRatio(); ratio < 0.1 || ratio > 10 {
		review.Improvements = append(review.Improvements, entity.BBoxImprovement{
			Issue:      fmt.Sprintf("Unusual aspect ratio: %.2f", ratio),
			Suggestion: "Verify bounding box accurately encompasses the object",
			Severity:   "high",
		})
	}

	return review, nil
}

// bboxQuality averages the size, position and aspect-ratio quality terms.
func bboxQuality(b entity.BBox, imageWidth, imageHeight float64) float64 {
	areaRatio := b.Area() / (imageWidth * imageHeight)
	sizeQuality := 1.0
	if areaRatio < 0.01 || areaRatio > 0.5 {
		sizeQuality = math.Max(0, 1.0-math.Abs(areaRatio-0.1))
	}

	edgeDistance := minOf(b.X(), b.Y(), imageWidth-(b.X()+b.W()), imageHeight-(b.Y()+b.H()))
	positionQuality := math.Min(1.0, edgeDistance/20.0)

	aspectQuality := 1.0
	if ratio := b.AspectRatio(); ratio < 0.2 || ratio > 5.0 {
		aspectQuality = math.Max(0, 1.0-math.Abs(math.Log10(ratio)))
	}

	return math.Min(1.0, (sizeQuality+positionQuality+aspectQuality)/3)
}
