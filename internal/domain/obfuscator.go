package domain

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"shroud.dev/pkg/shroud/internal/adapter"
	"shroud.dev/pkg/shroud/internal/domain/dialects"
	"shroud.dev/pkg/shroud/internal/domain/naming"
	m "shroud.dev/pkg/shroud/internal/model"
)

// Obfuscator runs the renaming pipeline on a single translation unit.
// Every call works on its own registry, so calls on different sources may run
// concurrently.
type Obfuscator interface {
	// Plan discovers identifiers and assigns replacement names without
	// rewriting anything.
	Plan(ctx context.Context, source m.Source, opts m.Options) (m.Plan, error)

	// Obfuscate plans, rewrites, optionally strips comments, normalizes and
	// validates the result.
	Obfuscate(ctx context.Context, source m.Source, opts m.Options) (m.Result, error)
}

type obfuscator struct {
	resolver adapter.ModuleResolver
	dialects map[m.Language]dialects.Dialect
}

// NewObfuscator constructs an Obfuscator over the given dialects. The
// resolver loads user symbol tables listed in Options.Symbols.
func NewObfuscator(resolver adapter.ModuleResolver, available ...dialects.Dialect) Obfuscator {
	byLanguage := make(map[m.Language]dialects.Dialect, len(available))
	for _, dialect := range available {
		byLanguage[dialect.Language()] = dialect
	}

	return &obfuscator{resolver: resolver, dialects: byLanguage}
}

// NewDefaultObfuscator wires the Python and Go dialects to local adapters.
func NewDefaultObfuscator(fsAdapter adapter.SourceFSAdapter) Obfuscator {
	python := adapter.NewLocalPythonFileAdapter()
	resolver := adapter.NewLocalModuleResolver(fsAdapter, python)

	return NewObfuscator(
		resolver,
		dialects.NewPython(python, resolver),
		dialects.NewGolang(adapter.NewLocalGoFileAdapter()),
	)
}

type planned struct {
	plan    m.Plan
	dialect dialects.Dialect
	unit    dialects.Unit
}

func (o *obfuscator) Plan(ctx context.Context, source m.Source, opts m.Options) (m.Plan, error) {
	p, err := o.plan(ctx, source, opts)
	if err != nil {
		return m.Plan{}, err
	}

	return p.plan, nil
}

func (o *obfuscator) Obfuscate(ctx context.Context, source m.Source, opts m.Options) (m.Result, error) {
	p, err := o.plan(ctx, source, opts)
	if err != nil {
		return m.Result{}, err
	}

	code, err := p.unit.Rewrite(ctx, p.plan.Mapping)
	if err != nil {
		return m.Result{}, fmt.Errorf("rewrite %s: %w", source.Path, err)
	}

	if opts.StripComments {
		code, err = p.dialect.StripComments(ctx, code)
		if err != nil {
			return m.Result{}, fmt.Errorf("strip comments %s: %w", source.Path, err)
		}
	}

	code, err = p.dialect.Normalize(ctx, code)
	if err != nil {
		return m.Result{}, fmt.Errorf("normalize %s: %w", source.Path, err)
	}

	if err := p.dialect.Validate(ctx, code); err != nil {
		return m.Result{}, fmt.Errorf("internal error: %s: %w", source.Path, err)
	}

	return m.Result{Plan: p.plan, Code: code}, nil
}

func (o *obfuscator) plan(ctx context.Context, source m.Source, opts m.Options) (*planned, error) {
	if opts.Complexity < 1 {
		return nil, fmt.Errorf("complexity must be at least 1, got %d", opts.Complexity)
	}

	dialect, err := o.dialectFor(&source)
	if err != nil {
		return nil, err
	}

	tables, err := o.loadSymbols(opts.Symbols)
	if err != nil {
		return nil, err
	}

	policy := opts.Policy
	policy.Names = slices.Clone(policy.Names)

	for _, table := range tables {
		policy.Names = append(policy.Names, table.Names...)
	}

	registry := naming.NewRegistry(dialect.Lexicon(), policy)

	unit, err := dialect.Discover(ctx, source, dialects.Env{
		Registry:    registry,
		SearchPaths: opts.SearchPaths,
		Symbols:     tables,
	})
	if err != nil {
		return nil, err
	}

	identifiers := unit.Identifiers()

	mapping, err := naming.Assign(identifiers, registry, opts.Complexity)
	if err != nil {
		return nil, err
	}

	slog.Info("planned renames",
		"path", source.Path,
		"language", source.Language,
		"identifiers", len(identifiers),
		"reserved", registry.Len())

	return &planned{
		plan:    m.Plan{Source: source, Identifiers: identifiers, Mapping: mapping},
		dialect: dialect,
		unit:    unit,
	}, nil
}

// dialectFor resolves LanguageAuto from the file extension and updates source.
func (o *obfuscator) dialectFor(source *m.Source) (dialects.Dialect, error) {
	if source.Language == "" || source.Language == m.LanguageAuto {
		language, ok := m.DetectLanguage(source.Path)
		if !ok {
			return nil, fmt.Errorf("%w: cannot detect language of %q, use --lang", m.ErrUnsupportedLanguage, source.Path)
		}

		source.Language = language
	}

	dialect, ok := o.dialects[source.Language]
	if !ok {
		return nil, fmt.Errorf("%w: %s", m.ErrUnsupportedLanguage, source.Language)
	}

	return dialect, nil
}

func (o *obfuscator) loadSymbols(paths []m.Path) ([]adapter.SymbolTable, error) {
	tables := make([]adapter.SymbolTable, 0, len(paths))

	for _, path := range paths {
		table, err := o.resolver.LoadSymbols(path)
		if err != nil {
			return nil, fmt.Errorf("load symbols: %w", err)
		}

		tables = append(tables, table)
	}

	return tables, nil
}
