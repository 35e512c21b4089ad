// Package dialects implements candidate discovery and rewriting for each
// supported source language.
package dialects

import (
	"context"

	"shroud.dev/pkg/shroud/internal/adapter"
	"shroud.dev/pkg/shroud/internal/domain/naming"
	m "shroud.dev/pkg/shroud/internal/model"
)

// Env is the per-run context threaded through discovery.
type Env struct {
	Registry    *naming.Registry
	SearchPaths []m.Path
	Symbols     []adapter.SymbolTable
}

// Dialect discovers renamable identifiers in one language and rewrites them.
type Dialect interface {
	Language() m.Language
	Lexicon() naming.Lexicon

	// Discover parses source, grows env.Registry with everything that must
	// stay untouched and returns the unit holding the renamable identifiers.
	Discover(ctx context.Context, source m.Source, env Env) (Unit, error)

	// StripComments removes comments from already rewritten source.
	StripComments(ctx context.Context, src []byte) ([]byte, error)

	// Normalize collapses blank-line runs and applies the dialect's layout.
	Normalize(ctx context.Context, src []byte) ([]byte, error)

	// Validate reports whether src still parses.
	Validate(ctx context.Context, src []byte) error
}

// Unit is one discovered translation unit.
type Unit interface {
	// Identifiers returns the renamable identifiers in discovery order.
	Identifiers() []m.Identifier

	// Rewrite renders the unit with every mapped identifier replaced. It does
	// not change the unit, so it may be called more than once.
	Rewrite(ctx context.Context, mapping *m.RenameMapping) ([]byte, error)
}
