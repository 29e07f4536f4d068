package locate

import "github.com/GregoryLi360/ciridae-takehome/pkg/geometry"

// nominalLineHeight is the approximate height in points of one text line
// in the documents; a box taller than 1.5 lines is treated as wrapped.
const nominalLineHeight = 11.0

// lineOriginSlack tolerates line rects that start fractionally above the
// description box after rounding.
const lineOriginSlack = 2.0

// SplitByLines splits a description box spanning multiple visual lines
// into one rectangle per line, clipped to the box's horizontal extent, so
// rendering never covers the whitespace between wrapped lines. Boxes no
// taller than a single line, and boxes with no overlapping line geometry,
// come back unchanged.
func SplitByLines(box geometry.BBox, lines []geometry.BBox) []geometry.BBox {
	if box.IsEmpty() {
		return nil
	}
	if box.Height() <= nominalLineHeight*1.5 || len(lines) == 0 {
		return []geometry.BBox{box}
	}

	var rects []geometry.BBox
	for _, line := range lines {
		if !line.Intersects(box) || line.Y0 < box.Y0-lineOriginSlack {
			continue
		}
		clipped := geometry.NewBBox(
			max(line.X0, box.X0),
			line.Y0,
			min(line.X1, box.X1),
			line.Y1,
		)
		if !clipped.IsEmpty() {
			rects = append(rects, clipped)
		}
	}
	if len(rects) == 0 {
		return []geometry.BBox{box}
	}
	return rects
}
