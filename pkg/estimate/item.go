// Package estimate defines the document model for the comparison engine:
// line items, rooms, documents, and the matched/diffed comparison output.
// Entities are produced once per comparison run and stay immutable except
// for incremental population of field boxes by the spatial locator.
package estimate

import "github.com/GregoryLi360/ciridae-takehome/pkg/geometry"

// Field names used in diffs and locator results.
const (
	FieldDescription = "description"
	FieldQuantity    = "quantity"
	FieldUnit        = "unit"
	FieldUnitPrice   = "unit_price"
	FieldTotal       = "total"
)

// FieldBoxes holds the located bounding box per line-item field.
// An empty box means the field was not found on the page.
type FieldBoxes struct {
	Description geometry.BBox `yaml:"description,omitempty"`
	Quantity    geometry.BBox `yaml:"quantity,omitempty"`
	Unit        geometry.BBox `yaml:"unit,omitempty"`
	UnitPrice   geometry.BBox `yaml:"unit_price,omitempty"`
	Total       geometry.BBox `yaml:"total,omitempty"`
}

// All returns each located (non-empty) box.
func (f FieldBoxes) All() []geometry.BBox {
	boxes := []geometry.BBox{}
	for _, b := range []geometry.BBox{f.Description, f.Quantity, f.Unit, f.UnitPrice, f.Total} {
		if !b.IsEmpty() {
			boxes = append(boxes, b)
		}
	}
	return boxes
}

// LineItem is one priced row of work extracted from a document page.
type LineItem struct {
	Description string     `yaml:"description"`
	Quantity    Number     `yaml:"quantity,omitempty"`
	Unit        string     `yaml:"unit,omitempty"`
	UnitPrice   Number     `yaml:"unit_price,omitempty"`
	Total       Number     `yaml:"total,omitempty"`
	Page        int        `yaml:"page"`
	Boxes       FieldBoxes `yaml:"boxes,omitempty"`
}
