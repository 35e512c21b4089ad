package model

import "fmt"

// Role is the syntactic role under which an identifier was discovered.
type Role string

const (
	// RoleFunction marks a function definition name.
	RoleFunction Role = "function"
	// RoleParameter marks a formal parameter name.
	RoleParameter Role = "parameter"
	// RoleVariable marks a bare variable reference (read or write).
	RoleVariable Role = "variable"
)

// rank orders roles from most to least specific.
func (r Role) rank() int {
	switch r {
	case RoleFunction:
		return 0
	case RoleParameter:
		return 1
	default:
		return 2
	}
}

// Position is a 1-based line/column location in the source.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Identifier is a renamable name together with where it occurs.
// Identifiers are compared by Name only.
type Identifier struct {
	Name      string
	Role      Role
	Positions []Position
}

// IdentifierSet accumulates identifiers in discovery order, merging repeated
// occurrences of the same name.
type IdentifierSet struct {
	order []string
	byKey map[string]*Identifier
}

// NewIdentifierSet returns an empty set.
func NewIdentifierSet() *IdentifierSet {
	return &IdentifierSet{byKey: make(map[string]*Identifier)}
}

// Add records an occurrence of name. A more specific role (function over
// parameter over variable) replaces a less specific one.
func (s *IdentifierSet) Add(name string, role Role, pos Position) {
	if id, ok := s.byKey[name]; ok {
		if role.rank() < id.Role.rank() {
			id.Role = role
		}

		id.Positions = append(id.Positions, pos)

		return
	}

	s.byKey[name] = &Identifier{Name: name, Role: role, Positions: []Position{pos}}
	s.order = append(s.order, name)
}

// Has reports whether name has been recorded.
func (s *IdentifierSet) Has(name string) bool {
	_, ok := s.byKey[name]
	return ok
}

// Len returns the number of distinct names.
func (s *IdentifierSet) Len() int {
	return len(s.order)
}

// Identifiers returns the recorded identifiers in discovery order.
func (s *IdentifierSet) Identifiers() []Identifier {
	out := make([]Identifier, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, *s.byKey[name])
	}

	return out
}
