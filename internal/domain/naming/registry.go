// Package naming holds the reserved-name registry, the candidate name
// generator and the assignment of replacement names.
package naming

import (
	"log/slog"
	"strings"

	m "shroud.dev/pkg/shroud/internal/model"
)

// Lexicon describes the fixed vocabulary of a source dialect.
type Lexicon struct {
	Keywords []string
	Builtins []string

	// IsIdentifier reports whether a string is a syntactically valid identifier.
	IsIdentifier func(name string) bool

	// AcceptCandidate optionally rejects generated names the dialect cannot use
	// even though they are not reserved. Nil accepts everything.
	AcceptCandidate func(candidate string) bool
}

// Registry tracks names that must never be renamed or generated: keywords,
// builtins and a reserved set that grows as imports and protected
// declarations are discovered. A Registry belongs to a single run.
type Registry struct {
	lexicon  Lexicon
	policy   m.Policy
	keywords map[string]struct{}
	builtins map[string]struct{}
	reserved map[string]struct{}
}

// NewRegistry creates an empty registry for lexicon and policy. Names listed
// in policy.Names start out reserved.
func NewRegistry(lexicon Lexicon, policy m.Policy) *Registry {
	r := &Registry{
		lexicon:  lexicon,
		policy:   policy,
		keywords: toSet(lexicon.Keywords),
		builtins: toSet(lexicon.Builtins),
		reserved: make(map[string]struct{}),
	}

	for _, name := range policy.Names {
		r.AddName(name)
	}

	return r
}

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}

	return set
}

// IsKeyword reports whether name is a keyword of the dialect.
func (r *Registry) IsKeyword(name string) bool {
	_, ok := r.keywords[name]
	return ok
}

// IsBuiltin reports whether name is a predeclared global of the dialect.
func (r *Registry) IsBuiltin(name string) bool {
	_, ok := r.builtins[name]
	return ok
}

// IsReserved reports whether name is a keyword, a builtin or in the reserved set.
func (r *Registry) IsReserved(name string) bool {
	if r.IsKeyword(name) || r.IsBuiltin(name) {
		return true
	}

	_, ok := r.reserved[name]

	return ok
}

// AddName reserves a single name, e.g. the binding introduced by "import x".
func (r *Registry) AddName(name string) {
	if name == "" {
		return
	}

	r.reserved[name] = struct{}{}
}

// AddModuleMembers reserves every member name of an imported module.
func (r *Registry) AddModuleMembers(module string, members []string) {
	for _, member := range members {
		r.AddName(member)
	}

	slog.Debug("reserved module members", "module", module, "count", len(members))
}

// IsRenamable reports whether name may be replaced: it must be a valid
// identifier, not reserved, and not excluded by the underscore or prefix policy.
func (r *Registry) IsRenamable(name string) bool {
	if name == "" {
		return false
	}

	if r.lexicon.IsIdentifier != nil && !r.lexicon.IsIdentifier(name) {
		return false
	}

	if r.IsReserved(name) {
		return false
	}

	if name == "_" || name == "__" {
		return false
	}

	if r.policy.Underscore == m.UnderscorePrivate && strings.HasPrefix(name, "_") {
		return false
	}

	for _, prefix := range r.policy.ProtectPrefixes {
		if prefix != "" && strings.HasPrefix(name, prefix) {
			return false
		}
	}

	return true
}

// IncludeParameters reports whether parameter names take part in renaming.
func (r *Registry) IncludeParameters() bool {
	return r.policy.IncludeParameters
}

// Blocks reports whether a generated candidate must be skipped.
func (r *Registry) Blocks(candidate string) bool {
	if r.IsReserved(candidate) {
		return true
	}

	if r.lexicon.AcceptCandidate != nil && !r.lexicon.AcceptCandidate(candidate) {
		return true
	}

	return false
}

// Len returns the size of the dynamic reserved set.
func (r *Registry) Len() int {
	return len(r.reserved)
}
