package app

import (
	"testing"

	"github.com/stretchr/testify/require"

	"safety-watch/internal/domain/entity"
)

func TestLabelingSuggestions(t *testing.T) {
	advisor := NewLabelingAdvisor()

	detections := []entity.Detection{
		{Label: "fire extinguisher", Confidence: 0.9, BBox: entity.BBox{100, 100, 200, 200}},
		{Label: "oxygen tank", Confidence: 0.7, BBox: entity.BBox{300, 300, 150, 150}},
		{Label: "first aid box", Confidence: 0.4, BBox: entity.BBox{500, 500, 120, 120}},
	}

	out := advisor.Suggestions(detections, "cam1.jpg", 0)

	require.Equal(t, "cam1.jpg", out.ImagePath)
	require.Equal(t, 3, out.TotalDetections)
	require.Equal(t, 1, out.HighConfidenceCount)
	require.Equal(t, 1, out.NeedsReviewCount)

	require.Len(t, out.AutoLabelSuggestions, 1)
	require.Equal(t, entity.LabelAutoAccept, out.AutoLabelSuggestions[0].SuggestedAction)

	require.Len(t, out.ManualReviewRequired, 2)
	require.Equal(t, entity.LabelReviewSuggested, out.ManualReviewRequired[0].SuggestedAction)
	require.Equal(t, entity.LabelManualRequired, out.ManualReviewRequired[1].SuggestedAction)

	require.Empty(t, out.QualityFlags)
	require.Equal(t, entity.LabelingPriorityLow, out.LabelingPriority)
}

func TestLabelingQualityFlags(t *testing.T) {
	advisor := NewLabelingAdvisor()

	out := advisor.Suggestions([]entity.Detection{
		// Area 64 px and aspect ratio 16.
		{Label: "fire alarm", Confidence: 0.9, BBox: entity.BBox{10, 10, 32, 2}},
	}, "cam1.jpg", 0)

	require.Len(t, out.QualityFlags, 2)
	require.Contains(t, out.QualityFlags[0], "Small detection area")
	require.Contains(t, out.QualityFlags[1], "Unusual aspect ratio")

	suggestion := out.AutoLabelSuggestions[0]
	require.Len(t, suggestion.Reasons, 3)
}

func TestLabelingPriority(t *testing.T) {
	advisor := NewLabelingAdvisor()
	box := entity.BBox{100, 100, 200, 200}

	two := advisor.Suggestions([]entity.Detection{
		{Label: "a", Confidence: 0.65, BBox: box},
		{Label: "b", Confidence: 0.65, BBox: box},
	}, "cam1.jpg", 0)
	require.Equal(t, entity.LabelingPriorityMedium, two.LabelingPriority)

	four := advisor.Suggestions([]entity.Detection{
		{Label: "a", Confidence: 0.65, BBox: box},
		{Label: "b", Confidence: 0.65, BBox: box},
		{Label: "c", Confidence: 0.65, BBox: box},
		{Label: "d", Confidence: 0.65, BBox: box},
	}, "cam1.jpg", 0)
	require.Equal(t, entity.LabelingPriorityHigh, four.LabelingPriority)
}

func TestReviewBBox(t *testing.T) {
	advisor := NewLabelingAdvisor()

	review, err := advisor.ReviewBBox(entity.Detection{
		Label: "fire extinguisher", Confidence: 0.85, BBox: entity.BBox{400, 400, 200, 200},
	}, 1000, 1000)
	require.NoError(t, err)

	// Centered, well-sized, square: no issues and full quality.
	require.Empty(t, review.Improvements)
	require.InDelta(t, 1.0, review.QualityScore, 1e-9)
}

func TestReviewBBoxFlagsIssues(t *testing.T) {
	advisor := NewLabelingAdvisor()

	// Tiny sliver touching the top-left corner.
	review, err := advisor.ReviewBBox(entity.Detection{
		Label: "oxygen tank", Confidence: 0.6, BBox: entity.BBox{0, 0, 60, 2},
	}, 1000, 1000)
	require.NoError(t, err)

	issues := make([]string, 0, len(review.Improvements))
	for _, imp := range review.Improvements {
		issues = append(issues, imp.Issue)
	}
	require.Contains(t, issues, "Bounding box too small")
	require.Contains(t, issues, "Bounding box at image edge")
	require.Contains(t, issues, "Unusual aspect ratio: 30.00")
	require.Less(t, review.QualityScore, 0.5)
}

func TestReviewBBoxInvalidGeometry(t *testing.T) {
	advisor := NewLabelingAdvisor()

	_, err := advisor.ReviewBBox(entity.Detection{
		Label: "oxygen tank", Confidence: 0.6, BBox: entity.BBox{10, 10, 50},
	}, 1000, 1000)
	require.ErrorIs(t, err, ErrInvalidGeometry)

	_, err = advisor.ReviewBBox(entity.Detection{
		Label: "oxygen tank", Confidence: 0.6, BBox: entity.BBox{10, 10, 50, 50},
	}, 0, 1000)
	require.ErrorIs(t, err, ErrInvalidGeometry)
}
