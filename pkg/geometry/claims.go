package geometry

// ClaimSet tracks the page regions already assigned to some item's field.
// It is a value accumulator: Claim returns a new set and never mutates the
// receiver, so callers thread the updated set through sequential locator
// calls and the no-overlap invariant stays explicit.
type ClaimSet struct {
	regions []BBox
}

// NewClaimSet returns an empty claim set for one page.
func NewClaimSet() ClaimSet {
	return ClaimSet{}
}

// Claim returns a new set containing the receiver's regions plus box.
// Empty boxes are ignored.
func (c ClaimSet) Claim(box BBox) ClaimSet {
	if box.IsEmpty() {
		return c
	}
	regions := make([]BBox, len(c.regions), len(c.regions)+1)
	copy(regions, c.regions)
	return ClaimSet{regions: append(regions, box)}
}

// Overlaps reports whether box intersects any claimed region.
func (c ClaimSet) Overlaps(box BBox) bool {
	for _, r := range c.regions {
		if r.Intersects(box) {
			return true
		}
	}
	return false
}

// Len returns the number of claimed regions.
func (c ClaimSet) Len() int {
	return len(c.regions)
}

// Regions returns a copy of the claimed regions.
func (c ClaimSet) Regions() []BBox {
	out := make([]BBox, len(c.regions))
	copy(out, c.regions)
	return out
}
