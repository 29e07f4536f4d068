// Package geometry provides the page-space primitives used by the spatial
// locator: bounding boxes, positioned words, and per-page word indexes.
// Coordinates follow the extraction convention of a top-left origin with Y
// increasing downward.
package geometry

import "math"

// BBox represents a bounding box (rectangle) in page coordinates.
type BBox struct {
	X0 float64 `yaml:"x0"` // Left
	Y0 float64 `yaml:"y0"` // Top
	X1 float64 `yaml:"x1"` // Right
	Y1 float64 `yaml:"y1"` // Bottom
}

// NewBBox creates a bounding box from edge coordinates, normalizing
// so that X0 <= X1 and Y0 <= Y1.
func NewBBox(x0, y0, x1, y1 float64) BBox {
	return BBox{
		X0: math.Min(x0, x1),
		Y0: math.Min(y0, y1),
		X1: math.Max(x0, x1),
		Y1: math.Max(y0, y1),
	}
}

// Width returns the horizontal extent of the box.
func (b BBox) Width() float64 {
	return b.X1 - b.X0
}

// Height returns the vertical extent of the box.
func (b BBox) Height() float64 {
	return b.Y1 - b.Y0
}

// MidY returns the vertical midpoint, used for same-row banding.
func (b BBox) MidY() float64 {
	return (b.Y0 + b.Y1) / 2
}

// IsEmpty reports whether the box has no area.
func (b BBox) IsEmpty() bool {
	return b.X1 <= b.X0 || b.Y1 <= b.Y0
}

// Intersects checks if two bounding boxes overlap.
// Boxes that merely touch at an edge do not intersect.
func (b BBox) Intersects(other BBox) bool {
	if b.IsEmpty() || other.IsEmpty() {
		return false
	}
	return b.X0 < other.X1 && other.X0 < b.X1 &&
		b.Y0 < other.Y1 && other.Y0 < b.Y1
}

// Intersection returns the overlapping region of two boxes,
// or the zero BBox when they do not intersect.
func (b BBox) Intersection(other BBox) BBox {
	if !b.Intersects(other) {
		return BBox{}
	}
	return BBox{
		X0: math.Max(b.X0, other.X0),
		Y0: math.Max(b.Y0, other.Y0),
		X1: math.Min(b.X1, other.X1),
		Y1: math.Min(b.Y1, other.Y1),
	}
}

// Union returns the smallest box covering both boxes. An empty box
// contributes nothing to the union.
func (b BBox) Union(other BBox) BBox {
	if b.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return b
	}
	return BBox{
		X0: math.Min(b.X0, other.X0),
		Y0: math.Min(b.Y0, other.Y0),
		X1: math.Max(b.X1, other.X1),
		Y1: math.Max(b.Y1, other.Y1),
	}
}

// Word is a single token on a page with its bounding box.
type Word struct {
	Text string `yaml:"text"`
	Box  BBox   `yaml:"box"`
}

// Page is the word/position index for one page: words in reading order plus
// the line-boundary geometry used to split multi-line boxes for rendering.
type Page struct {
	// Words holds the page's tokens in reading order. Word boxes for a
	// wrapped line stay contiguous in this slice.
	Words []Word `yaml:"words"`

	// Lines holds one box per visual text line, in reading order. May be
	// empty when the content provider exposes no line geometry.
	Lines []BBox `yaml:"lines,omitempty"`
}
