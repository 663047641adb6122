//go:build !gocv
// +build !gocv

package vision

import (
	"bytes"
	"context"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"safety-watch/internal/domain/entity"
	"safety-watch/internal/domain/port"
)

// DNNDetector is the no-op build of the detector, used when the binary is
// compiled without the gocv tag. It reports image dimensions and no
// detections, matching the contract that model failures reduce to empty
// results.
type DNNDetector struct{}

func NewDNNDetector(modelPath, labelsPath string, confidence float64) (*DNNDetector, error) {
	_ = modelPath
	_ = labelsPath
	_ = confidence
	return &DNNDetector{}, nil
}

func (d *DNNDetector) Detect(ctx context.Context, imageData []byte) ([]entity.Detection, int, int, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(imageData))
	if err != nil {
		return nil, 0, 0, err
	}
	return nil, cfg.Width, cfg.Height, nil
}

func (d *DNNDetector) Close() error { return nil }

var _ port.DetectionSource = (*DNNDetector)(nil)
