//go:build gocv
// +build gocv

package vision

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"image"
	"os"

	"gocv.io/x/gocv"

	"safety-watch/internal/domain/entity"
	"safety-watch/internal/domain/port"
)

// inputSide is the square input size the detection network expects.
const inputSide = 640

// DNNDetector runs an ONNX detection model through OpenCV's DNN module.
// The model itself is a black box to the rest of the system.
type DNNDetector struct {
	net        gocv.Net
	labels     []string
	confidence float32
}

// NewDNNDetector loads the network and its label list.
func NewDNNDetector(modelPath, labelsPath string, confidence float64) (*DNNDetector, error) {
	labels, err := readLabels(labelsPath)
	if err != nil {
		return nil, err
	}

	net := gocv.ReadNetFromONNX(modelPath)
	if net.Empty() {
		return nil, fmt.Errorf("load detection model %s", modelPath)
	}

	return &DNNDetector{
		net:        net,
		labels:     labels,
		confidence: float32(confidence),
	}, nil
}

func readLabels(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open labels file: %w", err)
	}
	defer f.Close()

	var labels []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			labels = append(labels, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read labels file: %w", err)
	}
	return labels, nil
}

// Detect decodes the image, runs the network and maps raw rows back to
// pixel-space detections. Low-scoring rows are dropped.
func (d *DNNDetector) Detect(ctx context.Context, imageData []byte) ([]entity.Detection, int, int, error) {
	_ = ctx
	mat, err := gocv.IMDecode(imageData, gocv.IMReadColor)
	if err != nil {
		return nil, 0, 0, err
	}
	defer mat.Close()
	if mat.Empty() {
		return nil, 0, 0, errors.New("empty image")
	}

	width := mat.Cols()
	height := mat.Rows()

	blob := gocv.BlobFromImage(mat, 1.0/255.0, image.Pt(inputSide, inputSide),
		gocv.NewScalar(0, 0, 0, 0), true, false)
	defer blob.Close()

	d.net.SetInput(blob, "")
	output := d.net.Forward("")
	defer output.Close()

	data, err := output.DataPtrFloat32()
	if err != nil {
		return nil, width, height, fmt.Errorf("read network output: %w", err)
	}

	stride := 5 + len(d.labels)
	scaleX := float64(width) / inputSide
	scaleY := float64(height) / inputSide

	var detections []entity.Detection
	for i := 0; i+stride <= len(data); i += stride {
		row := data[i : i+stride]
		objness := row[4]
		if objness < d.confidence {
			continue
		}

		classID := 0
		best := row[5]
		for j, score := range row[5:] {
			if score > best {
				best = score
				classID = j
			}
		}
		score := objness * best
		if score < d.confidence || classID >= len(d.labels) {
			continue
		}

		cx := float64(row[0]) * scaleX
		cy := float64(row[1]) * scaleY
		w := float64(row[2]) * scaleX
		h := float64(row[3]) * scaleY

		detections = append(detections, entity.Detection{
			Label:      d.labels[classID],
			Confidence: float64(score),
			BBox:       entity.BBox{maxF(cx-w/2, 0), maxF(cy-h/2, 0), w, h},
		})
	}

	return detections, width, height, nil
}

// Close releases the network.
func (d *DNNDetector) Close() error {
	return d.net.Close()
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

var _ port.DetectionSource = (*DNNDetector)(nil)
