package estimate

import (
	"fmt"
	"strconv"
)

// Number is a present-or-absent numeric field. Extraction regularly leaves
// quantity, unit price, or total blank, and a legitimate zero must never be
// confused with a missing value during tolerance comparison.
type Number struct {
	value   float64
	present bool
}

// Some returns a present Number holding v.
func Some(v float64) Number {
	return Number{value: v, present: true}
}

// None returns an absent Number.
func None() Number {
	return Number{}
}

// Present reports whether the value was extracted.
func (n Number) Present() bool {
	return n.present
}

// Value returns the held value and whether it is present.
func (n Number) Value() (float64, bool) {
	return n.value, n.present
}

// Float returns the held value, or 0 when absent. Use Value when the
// distinction matters.
func (n Number) Float() float64 {
	return n.value
}

// String renders the value for diff reporting; absent values render empty.
func (n Number) String() string {
	if !n.present {
		return ""
	}
	return strconv.FormatFloat(n.value, 'f', -1, 64)
}

// MarshalYAML implements yaml.InterfaceMarshaler so fixtures round-trip
// through goccy/go-yaml with null meaning absent.
func (n Number) MarshalYAML() (any, error) {
	if !n.present {
		return nil, nil
	}
	return n.value, nil
}

// UnmarshalYAML implements yaml.InterfaceUnmarshaler. The callback cannot
// decode into a pointer target (goccy silently skips nil pointers), so decode
// into any and distinguish null from a numeric scalar by hand.
func (n *Number) UnmarshalYAML(unmarshal func(any) error) error {
	var raw any
	if err := unmarshal(&raw); err != nil {
		return fmt.Errorf("decoding numeric field: %w", err)
	}
	if raw == nil {
		*n = None()
		return nil
	}
	switch v := raw.(type) {
	case float64:
		*n = Some(v)
	case int64:
		*n = Some(float64(v))
	case uint64:
		*n = Some(float64(v))
	default:
		return fmt.Errorf("decoding numeric field: unexpected type %T", raw)
	}
	return nil
}
