package adapter

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/go-python/gpython/ast"

	m "shroud.dev/pkg/shroud/internal/model"
)

// ModuleRequest describes one Python import to resolve.
type ModuleRequest struct {
	// Module is the dotted module name; empty for "from . import x".
	Module string
	// Level is the number of leading dots of a relative import.
	Level int
	// FromDir is the directory of the importing file.
	FromDir m.Path
	// SearchPaths are extra directories searched after FromDir.
	SearchPaths []m.Path
	// Tables are consulted before any file lookup.
	Tables []SymbolTable
}

// ModuleResolver enumerates the member names of Python modules without
// executing them.
type ModuleResolver interface {
	// Members returns the names the requested module exposes. A module that
	// cannot be located yields an error wrapping fs.ErrNotExist.
	Members(ctx context.Context, req ModuleRequest) ([]string, error)

	// LoadSymbols reads a user supplied symbol table file.
	LoadSymbols(path m.Path) (SymbolTable, error)
}

// LocalModuleResolver resolves modules from user tables, local .py files and
// the embedded standard library table, in that order.
type LocalModuleResolver struct {
	fs     SourceFSAdapter
	python PythonFileAdapter

	stdlibOnce sync.Once
	stdlib     SymbolTable
	stdlibErr  error
}

// NewLocalModuleResolver constructs a LocalModuleResolver.
func NewLocalModuleResolver(fsAdapter SourceFSAdapter, python PythonFileAdapter) *LocalModuleResolver {
	return &LocalModuleResolver{fs: fsAdapter, python: python}
}

// LoadSymbols reads and decodes a YAML symbol table.
func (r *LocalModuleResolver) LoadSymbols(path m.Path) (SymbolTable, error) {
	data, err := r.fs.ReadFile(path)
	if err != nil {
		return SymbolTable{}, &m.FileIOError{Op: "read", Path: path, Err: err}
	}

	table, err := ParseSymbolTable(data)
	if err != nil {
		return SymbolTable{}, fmt.Errorf("%s: %w", path, err)
	}

	return table, nil
}

// Members resolves req.
func (r *LocalModuleResolver) Members(ctx context.Context, req ModuleRequest) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if req.Level == 0 {
		for _, table := range req.Tables {
			if members, ok := table.Modules[req.Module]; ok {
				return members, nil
			}
		}
	}

	if file, ok := r.locate(req); ok {
		slog.Debug("resolving local module", "module", req.Module, "file", file)
		return r.fileMembers(ctx, file)
	}

	if req.Level == 0 {
		stdlib, err := r.stdlibTable()
		if err != nil {
			return nil, err
		}

		if members, ok := stdlib.Modules[req.Module]; ok {
			return members, nil
		}
	}

	return nil, fmt.Errorf("module %s%s: %w", strings.Repeat(".", req.Level), req.Module, fs.ErrNotExist)
}

func (r *LocalModuleResolver) stdlibTable() (SymbolTable, error) {
	r.stdlibOnce.Do(func() {
		r.stdlib, r.stdlibErr = PythonStdlibSymbols()
	})

	return r.stdlib, r.stdlibErr
}

// locate finds the file backing a module: <dir>/a/b.py or <dir>/a/b/__init__.py.
func (r *LocalModuleResolver) locate(req ModuleRequest) (m.Path, bool) {
	var roots []string

	if req.Level > 0 {
		base := string(req.FromDir)
		for range req.Level - 1 {
			base = filepath.Dir(base)
		}

		roots = []string{base}
	} else {
		roots = append(roots, string(req.FromDir))
		for _, dir := range req.SearchPaths {
			roots = append(roots, string(dir))
		}
	}

	var parts []string
	if req.Module != "" {
		parts = strings.Split(req.Module, ".")
	}

	for _, root := range roots {
		if root == "" {
			root = "."
		}

		elems := append([]string{root}, parts...)
		dir := filepath.Join(elems...)

		if len(parts) > 0 {
			if candidate := r.fs.JoinPath(dir + ".py"); r.fs.Exists(candidate) {
				return candidate, true
			}
		}

		if candidate := r.fs.JoinPath(dir, "__init__.py"); r.fs.Exists(candidate) {
			return candidate, true
		}
	}

	return "", false
}

func (r *LocalModuleResolver) fileMembers(ctx context.Context, file m.Path) ([]string, error) {
	src, err := r.fs.ReadFile(file)
	if err != nil {
		return nil, &m.FileIOError{Op: "read", Path: file, Err: err}
	}

	module, err := r.python.Parse(ctx, string(file), src)
	if err != nil {
		return nil, PythonParseError(file, src, err)
	}

	names := make(map[string]struct{})
	collectTopLevelNames(module.Body, names)

	members := make([]string, 0, len(names))
	for name := range names {
		members = append(members, name)
	}

	sort.Strings(members)

	return members, nil
}

// collectTopLevelNames records the names a module binds at import time,
// descending into compound statements but not into function or class bodies.
func collectTopLevelNames(body []ast.Stmt, names map[string]struct{}) {
	for _, stmt := range body {
		switch s := stmt.(type) {
		case *ast.FunctionDef:
			names[string(s.Name)] = struct{}{}
		case *ast.ClassDef:
			names[string(s.Name)] = struct{}{}
		case *ast.Assign:
			for _, target := range s.Targets {
				collectTargetNames(target, names)
			}
		case *ast.AugAssign:
			collectTargetNames(s.Target, names)
		case *ast.Import:
			for _, alias := range s.Names {
				names[PythonImportBinding(alias)] = struct{}{}
			}
		case *ast.ImportFrom:
			for _, alias := range s.Names {
				if alias.AsName != "" {
					names[string(alias.AsName)] = struct{}{}
				} else if alias.Name != "*" {
					names[string(alias.Name)] = struct{}{}
				}
			}
		case *ast.If:
			collectTopLevelNames(s.Body, names)
			collectTopLevelNames(s.Orelse, names)
		case *ast.For:
			collectTargetNames(s.Target, names)
			collectTopLevelNames(s.Body, names)
			collectTopLevelNames(s.Orelse, names)
		case *ast.While:
			collectTopLevelNames(s.Body, names)
			collectTopLevelNames(s.Orelse, names)
		case *ast.With:
			collectTopLevelNames(s.Body, names)
		case *ast.Try:
			collectTopLevelNames(s.Body, names)

			for _, handler := range s.Handlers {
				collectTopLevelNames(handler.Body, names)
			}

			collectTopLevelNames(s.Orelse, names)
			collectTopLevelNames(s.Finalbody, names)
		}
	}
}

func collectTargetNames(target ast.Expr, names map[string]struct{}) {
	switch t := target.(type) {
	case *ast.Name:
		names[string(t.Id)] = struct{}{}
	case *ast.Tuple:
		for _, elt := range t.Elts {
			collectTargetNames(elt, names)
		}
	case *ast.List:
		for _, elt := range t.Elts {
			collectTargetNames(elt, names)
		}
	case *ast.Starred:
		collectTargetNames(t.Value, names)
	}
}

// PythonImportBinding returns the local name an "import" alias binds:
// the alias when present, otherwise the first component of the dotted name.
func PythonImportBinding(alias *ast.Alias) string {
	if alias.AsName != "" {
		return string(alias.AsName)
	}

	name := string(alias.Name)
	if head, _, ok := strings.Cut(name, "."); ok {
		return head
	}

	return name
}
