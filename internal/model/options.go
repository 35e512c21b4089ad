package model

import "fmt"

// UnderscorePolicy selects which underscore-prefixed names are protected.
type UnderscorePolicy string

const (
	// UnderscoreSentinel protects only the sentinel names "_" and "__".
	UnderscoreSentinel UnderscorePolicy = "sentinel"
	// UnderscorePrivate protects every name with a leading underscore.
	UnderscorePrivate UnderscorePolicy = "private"
)

// ParseUnderscorePolicy validates a policy name. Empty selects UnderscoreSentinel.
func ParseUnderscorePolicy(value string) (UnderscorePolicy, error) {
	switch UnderscorePolicy(value) {
	case "", UnderscoreSentinel:
		return UnderscoreSentinel, nil
	case UnderscorePrivate:
		return UnderscorePrivate, nil
	}

	return "", fmt.Errorf("unknown underscore policy %q (want %q or %q)", value, UnderscoreSentinel, UnderscorePrivate)
}

// Policy holds the tunable eligibility rules.
type Policy struct {
	Underscore        UnderscorePolicy
	IncludeParameters bool
	ProtectPrefixes   []string
	// Names are always protected, in addition to keywords and builtins.
	Names []string
}

// DefaultPolicy renames parameters and protects only the sentinel underscores.
func DefaultPolicy() Policy {
	return Policy{
		Underscore:        UnderscoreSentinel,
		IncludeParameters: true,
	}
}

// DefaultComplexity is the generated name length used when none is given.
const DefaultComplexity = 3

// Options configures a single run of the pipeline.
type Options struct {
	Complexity    int
	StripComments bool
	Policy        Policy
	// Symbols lists extra symbol table files (YAML) consulted for imports.
	Symbols []Path
	// SearchPaths lists extra directories searched for local Python modules.
	SearchPaths []Path
}

// DefaultOptions returns Options populated with the CLI defaults.
func DefaultOptions() Options {
	return Options{
		Complexity: DefaultComplexity,
		Policy:     DefaultPolicy(),
	}
}

// Plan is the outcome of discovery and name assignment, before rewriting.
type Plan struct {
	Source      Source
	Identifiers []Identifier
	Mapping     *RenameMapping
}

// Result is a fully rewritten translation unit.
type Result struct {
	Plan
	Code []byte
}
