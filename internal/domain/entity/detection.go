package entity

import "strings"

// BBox is a pixel-space bounding box in [x, y, w, h] order,
// as produced by the detection model.
type BBox []float64

// Valid reports whether the box has exactly four non-negative components.
func (b BBox) Valid() bool {
	if len(b) != 4 {
		return false
	}
	for _, v := range b {
		if v < 0 {
			return false
		}
	}
	return true
}

func (b BBox) X() float64 { return b[0] }
func (b BBox) Y() float64 { return b[1] }
func (b BBox) W() float64 { return b[2] }
func (b BBox) H() float64 { return b[3] }

// Area returns the box area in pixels.
func (b BBox) Area() float64 {
	return b.W() * b.H()
}

// AspectRatio returns w/h, defaulting to 1.0 for a zero-height box.
func (b BBox) AspectRatio() float64 {
	if b.H() <= 0 {
		return 1.0
	}
	return b.W() / b.H()
}

// Detection is a single model output for one image.
type Detection struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
	BBox       BBox    `json:"bbox"`
	ImagePath  string  `json:"image_path,omitempty"`
}

// Kind returns the normalized equipment kind for this detection.
func (d Detection) Kind() string {
	return NormalizeLabel(d.Label)
}

// NormalizeLabel maps a raw model label to a catalog kind:
// lowercase, spaces replaced with underscores.
func NormalizeLabel(label string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(label)), " ", "_")
}
