package adapter

import (
	"bytes"
	"context"
	"fmt"
	"go/ast"
	"go/format"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"log/slog"
	"sort"

	m "shroud.dev/pkg/shroud/internal/model"
)

// GoFileAdapter encapsulates Go-specific parsing, type checking and printing
// so the renaming dialect can work on resolved objects instead of text.
type GoFileAdapter interface {
	// Parse builds an AST (with comments) for the provided filename/source pair.
	Parse(ctx context.Context, fileSet *token.FileSet, filename string, src []byte) (*ast.File, error)

	// Check type-checks a single file. Every import must resolve; the first
	// import that does not is reported as *model.UnresolvedImportError. Other
	// type errors (e.g. names declared in sibling files) are tolerated.
	Check(ctx context.Context, fileSet *token.FileSet, file *ast.File) (*CheckedFile, error)

	// Print renders the file in gofmt style.
	Print(ctx context.Context, fileSet *token.FileSet, file *ast.File) ([]byte, error)
}

// CheckedFile carries the type-checker output for one file.
type CheckedFile struct {
	Package *types.Package
	Info    *types.Info
	// Imports maps import paths to the packages they resolved to.
	Imports map[string]*types.Package
	// SoftErrors are type errors that did not stop checking.
	SoftErrors []error
}

// LocalGoFileAdapter provides a concrete GoFileAdapter backed by go/parser,
// go/types and the source importer.
type LocalGoFileAdapter struct{}

// NewLocalGoFileAdapter constructs a LocalGoFileAdapter.
func NewLocalGoFileAdapter() *LocalGoFileAdapter {
	return &LocalGoFileAdapter{}
}

// Parse builds an AST for the provided filename/source pair.
func (a *LocalGoFileAdapter) Parse(ctx context.Context, fileSet *token.FileSet, filename string, src []byte) (*ast.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return parser.ParseFile(fileSet, filename, src, parser.ParseComments|parser.SkipObjectResolution)
}

// Check type-checks file on its own.
func (a *LocalGoFileAdapter) Check(ctx context.Context, fileSet *token.FileSet, file *ast.File) (*CheckedFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	imp := &recordingImporter{
		base:     importer.ForCompiler(fileSet, "source", nil),
		packages: make(map[string]*types.Package),
		failures: make(map[string]error),
	}

	checked := &CheckedFile{
		Info: &types.Info{
			Defs:      make(map[*ast.Ident]types.Object),
			Uses:      make(map[*ast.Ident]types.Object),
			Implicits: make(map[ast.Node]types.Object),
		},
		Imports: imp.packages,
	}

	conf := types.Config{
		Importer: imp,
		Error: func(err error) {
			checked.SoftErrors = append(checked.SoftErrors, err)
		},
	}

	// With an Error handler installed Check keeps going and the returned error
	// is only the first soft error, already collected above.
	pkg, _ := conf.Check(file.Name.Name, fileSet, []*ast.File{file}, checked.Info)
	checked.Package = pkg

	if len(imp.failures) > 0 {
		paths := make([]string, 0, len(imp.failures))
		for path := range imp.failures {
			paths = append(paths, path)
		}

		sort.Strings(paths)

		return nil, &m.UnresolvedImportError{Module: paths[0], Err: imp.failures[paths[0]]}
	}

	for _, softErr := range checked.SoftErrors {
		slog.Debug("tolerated type error", "error", softErr)
	}

	return checked, nil
}

// Print renders file with go/format.
func (a *LocalGoFileAdapter) Print(ctx context.Context, fileSet *token.FileSet, file *ast.File) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := format.Node(&buf, fileSet, file); err != nil {
		return nil, fmt.Errorf("print %s: %w", file.Name.Name, err)
	}

	return buf.Bytes(), nil
}

// recordingImporter remembers what every import path resolved to and which
// paths failed, so that import failures are not confused with ordinary
// type errors.
type recordingImporter struct {
	base     types.Importer
	packages map[string]*types.Package
	failures map[string]error
}

func (r *recordingImporter) Import(path string) (*types.Package, error) {
	return r.ImportFrom(path, "", 0)
}

func (r *recordingImporter) ImportFrom(path, dir string, mode types.ImportMode) (*types.Package, error) {
	var (
		pkg *types.Package
		err error
	)

	if from, ok := r.base.(types.ImporterFrom); ok {
		pkg, err = from.ImportFrom(path, dir, mode)
	} else {
		pkg, err = r.base.Import(path)
	}

	if err != nil {
		r.failures[path] = err
		return nil, err
	}

	r.packages[path] = pkg

	return pkg, nil
}
