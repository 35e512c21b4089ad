package model

import "fmt"

// Rename is one entry of a RenameMapping.
type Rename struct {
	Original    Identifier
	Replacement string
}

// RenameMapping is an ordered original -> replacement association. Keys are
// unique, values are unique, and iteration follows insertion order.
type RenameMapping struct {
	entries  []Rename
	byName   map[string]int
	assigned map[string]string
}

// NewRenameMapping returns an empty mapping.
func NewRenameMapping() *RenameMapping {
	return &RenameMapping{
		byName:   make(map[string]int),
		assigned: make(map[string]string),
	}
}

// Add appends original -> replacement. It fails if either side is already present.
func (rm *RenameMapping) Add(original Identifier, replacement string) error {
	if _, ok := rm.byName[original.Name]; ok {
		return fmt.Errorf("identifier %q already mapped", original.Name)
	}

	if owner, ok := rm.assigned[replacement]; ok {
		return fmt.Errorf("replacement %q already assigned to %q", replacement, owner)
	}

	rm.byName[original.Name] = len(rm.entries)
	rm.assigned[replacement] = original.Name
	rm.entries = append(rm.entries, Rename{Original: original, Replacement: replacement})

	return nil
}

// Lookup returns the replacement for name.
func (rm *RenameMapping) Lookup(name string) (string, bool) {
	if rm == nil {
		return "", false
	}

	idx, ok := rm.byName[name]
	if !ok {
		return "", false
	}

	return rm.entries[idx].Replacement, true
}

// Entries returns the renames in assignment order.
func (rm *RenameMapping) Entries() []Rename {
	if rm == nil {
		return nil
	}

	out := make([]Rename, len(rm.entries))
	copy(out, rm.entries)

	return out
}

// Len returns the number of renames.
func (rm *RenameMapping) Len() int {
	if rm == nil {
		return 0
	}

	return len(rm.entries)
}
