package estimate

import (
	"fmt"
	"strings"

	"github.com/GregoryLi360/ciridae-takehome/pkg/errors"
)

// Validate rejects malformed documents before alignment begins.
// Room names must be non-blank and distinct within one document.
func (d Document) Validate() error {
	seen := make(map[string]bool, len(d.Rooms))
	for _, room := range d.Rooms {
		if strings.TrimSpace(room.Name) == "" {
			return errors.NewValidationError(d.Label, "rooms", "blank room name")
		}
		if seen[room.Name] {
			return errors.NewValidationError(d.Label, "rooms",
				fmt.Sprintf("duplicate room name %q", room.Name))
		}
		seen[room.Name] = true
	}
	return nil
}
