package estimate

// Room is a named physical space grouping line items within one document.
type Room struct {
	Name  string     `yaml:"name"`
	Items []LineItem `yaml:"items"`
}

// Document is one parsed proposal: a source label plus its rooms in
// extraction order.
type Document struct {
	Label string `yaml:"label"`
	Rooms []Room `yaml:"rooms"`
}

// RoomNames returns the document's room names in order.
func (d Document) RoomNames() []string {
	names := make([]string, len(d.Rooms))
	for i, r := range d.Rooms {
		names[i] = r.Name
	}
	return names
}

// Room returns the named room and whether it exists.
func (d Document) Room(name string) (Room, bool) {
	for _, r := range d.Rooms {
		if r.Name == name {
			return r, true
		}
	}
	return Room{}, false
}

// RoomPair associates a room in one document with its counterpart (possibly
// absent) in the other. At least one side is always set.
type RoomPair struct {
	// Source and Counterpart are room names; an empty string means the
	// room has no partner on that side.
	Source      string `yaml:"source,omitempty"`
	Counterpart string `yaml:"counterpart,omitempty"`
}

// HasSource reports whether the pair has a source-side room.
func (p RoomPair) HasSource() bool { return p.Source != "" }

// HasCounterpart reports whether the pair has a counterpart-side room.
func (p RoomPair) HasCounterpart() bool { return p.Counterpart != "" }
