package naming

import (
	"errors"
	"log/slog"
	"slices"

	m "shroud.dev/pkg/shroud/internal/model"
)

// Assign builds the rename mapping for identifiers.
//
// Identifiers are ordered by descending name length, ties keeping discovery
// order. Candidates come from one increasing index; every candidate the
// registry blocks consumes its slot for good.
func Assign(identifiers []m.Identifier, registry *Registry, complexity int) (*m.RenameMapping, error) {
	ordered := slices.Clone(identifiers)
	slices.SortStableFunc(ordered, func(a, b m.Identifier) int {
		return len(b.Name) - len(a.Name)
	})

	mapping := m.NewRenameMapping()
	index := 0

	for _, id := range ordered {
		replacement, next, err := nextFree(registry, index, complexity)
		if err != nil {
			var capErr *m.CapacityError
			if errors.As(err, &capErr) {
				capErr.Needed = len(ordered)
				capErr.Available = mapping.Len()
			}

			return nil, err
		}

		index = next

		if err := mapping.Add(id, replacement); err != nil {
			return nil, err
		}

		slog.Debug("assigned name", "original", id.Name, "replacement", replacement, "role", id.Role)
	}

	return mapping, nil
}

// nextFree returns the first unblocked candidate at or after index and the
// index following it.
func nextFree(registry *Registry, index, complexity int) (string, int, error) {
	for {
		candidate, err := Candidate(index, complexity)
		if err != nil {
			return "", index, err
		}

		index++

		if !registry.Blocks(candidate) {
			return candidate, index, nil
		}
	}
}
