package port

import (
	"context"

	"safety-watch/internal/domain/entity"
)

// DetectionSource runs the external detection model over an image.
// Implementations reduce model failures to an empty detection list; the
// core never inspects how detections are produced.
type DetectionSource interface {
	// Detect returns the detections for an image along with the image
	// width and height in pixels.
	Detect(ctx context.Context, imageData []byte) ([]entity.Detection, int, int, error)
}
