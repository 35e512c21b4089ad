// Package pkg exposes the shroud renaming pipeline for use without the CLI.
package pkg

import (
	"context"
	"fmt"

	"shroud.dev/pkg/shroud/internal/adapter"
	"shroud.dev/pkg/shroud/internal/domain"
	m "shroud.dev/pkg/shroud/internal/model"
)

// Config tunes a library call. The zero value is not usable; start from
// DefaultConfig.
type Config struct {
	// Complexity is the length of generated names.
	Complexity    int
	StripComments bool
	// IncludeParameters renames function parameters.
	IncludeParameters bool
	// Underscore is "sentinel" (protect _ and __) or "private" (protect any
	// leading underscore).
	Underscore      string
	ProtectPrefixes []string
	ProtectNames    []string
	// SymbolFiles are YAML symbol tables consulted for imports.
	SymbolFiles []string
	// SearchPaths are extra directories searched for local Python modules.
	SearchPaths []string
	// Filename anchors relative imports and error messages. It may be empty.
	Filename string
}

// DefaultConfig mirrors the CLI defaults.
func DefaultConfig() Config {
	defaults := m.DefaultOptions()

	return Config{
		Complexity:        defaults.Complexity,
		IncludeParameters: defaults.Policy.IncludeParameters,
		Underscore:        string(defaults.Policy.Underscore),
	}
}

// Rename is one applied rename.
type Rename struct {
	Original    string
	Role        string
	Replacement string
}

// Output is the rewritten source and the renames applied, in assignment order.
type Output struct {
	Code    []byte
	Renames []Rename
}

// Obfuscate renames the identifiers of src. lang is "python", "go" or "auto"
// (detected from cfg.Filename).
func Obfuscate(ctx context.Context, src []byte, lang string, cfg Config) (Output, error) {
	language, ok := m.ParseLanguage(lang)
	if !ok {
		return Output{}, fmt.Errorf("%w: %q", m.ErrUnsupportedLanguage, lang)
	}

	opts, err := cfg.options()
	if err != nil {
		return Output{}, err
	}

	obfuscator := domain.NewDefaultObfuscator(adapter.NewLocalSourceFSAdapter())

	result, err := obfuscator.Obfuscate(ctx, m.Source{
		Path:     m.Path(cfg.Filename),
		Language: language,
		Content:  src,
	}, opts)
	if err != nil {
		return Output{}, err
	}

	out := Output{Code: result.Code}
	for _, entry := range result.Mapping.Entries() {
		out.Renames = append(out.Renames, Rename{
			Original:    entry.Original.Name,
			Role:        string(entry.Original.Role),
			Replacement: entry.Replacement,
		})
	}

	return out, nil
}

func (c Config) options() (m.Options, error) {
	underscore, err := m.ParseUnderscorePolicy(c.Underscore)
	if err != nil {
		return m.Options{}, err
	}

	opts := m.Options{
		Complexity:    c.Complexity,
		StripComments: c.StripComments,
		Policy: m.Policy{
			Underscore:        underscore,
			IncludeParameters: c.IncludeParameters,
			ProtectPrefixes:   c.ProtectPrefixes,
			Names:             c.ProtectNames,
		},
	}

	for _, path := range c.SymbolFiles {
		opts.Symbols = append(opts.Symbols, m.Path(path))
	}

	for _, path := range c.SearchPaths {
		opts.SearchPaths = append(opts.SearchPaths, m.Path(path))
	}

	return opts, nil
}
