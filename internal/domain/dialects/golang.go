package dialects

import (
	"context"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"go/types"
	"path"
	"strconv"
	"strings"
	"sync"

	"shroud.dev/pkg/shroud/internal/adapter"
	"shroud.dev/pkg/shroud/internal/domain/naming"
	m "shroud.dev/pkg/shroud/internal/model"
)

// Golang renames identifiers by resolved object: every *ast.Ident bound to a
// renamable object declared in the file is renamed, nothing else is.
type Golang struct {
	files adapter.GoFileAdapter
}

// NewGolang constructs the Go dialect.
func NewGolang(files adapter.GoFileAdapter) *Golang {
	return &Golang{files: files}
}

// Language implements Dialect.
func (g *Golang) Language() m.Language {
	return m.LanguageGo
}

// Lexicon implements Dialect.
func (g *Golang) Lexicon() naming.Lexicon {
	return goLexicon()
}

// Discover implements Dialect.
func (g *Golang) Discover(ctx context.Context, source m.Source, env Env) (Unit, error) {
	fileSet := token.NewFileSet()

	file, err := g.files.Parse(ctx, fileSet, string(source.Path), source.Content)
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}

		return nil, &m.ParseError{Path: source.Path, Err: err}
	}

	checked, err := g.files.Check(ctx, fileSet, file)
	if err != nil {
		return nil, err
	}

	resolver := newGoObjects(file, checked)

	protectGoImports(file, checked, env.Registry)
	resolver.protect(env.Registry)

	unit := &goUnit{files: g.files, fileSet: fileSet, file: file}
	unit.identifiers, unit.idents = resolver.collect(fileSet, env.Registry)

	return unit, nil
}

func protectGoImports(file *ast.File, checked *adapter.CheckedFile, registry *naming.Registry) {
	registry.AddName(file.Name.Name)

	for _, spec := range file.Imports {
		importPath, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}

		pkg := checked.Imports[importPath]

		switch {
		case spec.Name == nil:
			if pkg != nil {
				registry.AddName(pkg.Name())
			} else {
				registry.AddName(path.Base(importPath))
			}
		case spec.Name.Name == "_":
		case spec.Name.Name == ".":
			if pkg != nil {
				registry.AddModuleMembers(importPath, exportedNames(pkg))
			}
		default:
			registry.AddName(spec.Name.Name)
		}
	}
}

func exportedNames(pkg *types.Package) []string {
	var names []string

	for _, name := range pkg.Scope().Names() {
		if ast.IsExported(name) {
			names = append(names, name)
		}
	}

	return names
}

// goObjects answers which object each identifier of the file denotes.
type goObjects struct {
	file    *ast.File
	checked *adapter.CheckedFile
	// symbols maps type switch header identifiers to one of their clause variables.
	symbols map[*ast.Ident]types.Object
	params  map[types.Object]bool
}

func newGoObjects(file *ast.File, checked *adapter.CheckedFile) *goObjects {
	objs := &goObjects{
		file:    file,
		checked: checked,
		symbols: make(map[*ast.Ident]types.Object),
		params:  make(map[types.Object]bool),
	}

	ast.Inspect(file, func(node ast.Node) bool {
		switch n := node.(type) {
		case *ast.TypeSwitchStmt:
			objs.recordSymbol(n)
		case *ast.FuncDecl:
			objs.recordParams(n.Recv)
			objs.recordParams(n.Type.Params)
			objs.recordParams(n.Type.Results)
		case *ast.FuncLit:
			objs.recordParams(n.Type.Params)
			objs.recordParams(n.Type.Results)
		}

		return true
	})

	return objs
}

func (o *goObjects) recordSymbol(stmt *ast.TypeSwitchStmt) {
	assign, ok := stmt.Assign.(*ast.AssignStmt)
	if !ok || len(assign.Lhs) != 1 {
		return
	}

	ident, ok := assign.Lhs[0].(*ast.Ident)
	if !ok {
		return
	}

	for _, clause := range stmt.Body.List {
		if obj, ok := o.checked.Info.Implicits[clause]; ok {
			o.symbols[ident] = obj
			return
		}
	}
}

func (o *goObjects) recordParams(fields *ast.FieldList) {
	if fields == nil {
		return
	}

	for _, field := range fields.List {
		for _, name := range field.Names {
			if obj := o.checked.Info.Defs[name]; obj != nil {
				o.params[obj] = true
			}
		}
	}
}

func (o *goObjects) objectOf(ident *ast.Ident) types.Object {
	if obj := o.checked.Info.Defs[ident]; obj != nil {
		return obj
	}

	if obj := o.checked.Info.Uses[ident]; obj != nil {
		return obj
	}

	return o.symbols[ident]
}

// renamable reports whether obj is declared in this file and may change name
// without affecting anything outside it.
func (o *goObjects) renamable(obj types.Object) bool {
	if obj.Pkg() == nil || obj.Pkg() != o.checked.Package {
		return false
	}

	if !obj.Pos().IsValid() || obj.Pos() < o.file.FileStart || obj.Pos() > o.file.FileEnd {
		return false
	}

	packageLevel := obj.Parent() == obj.Pkg().Scope()

	switch obj := obj.(type) {
	case *types.Func:
		if sig, ok := obj.Type().(*types.Signature); ok && sig.Recv() != nil {
			return false
		}

		return !obj.Exported()
	case *types.Var:
		if obj.IsField() {
			return false
		}

		return !packageLevel || !obj.Exported()
	}

	return false
}

// separateNamespace reports objects whose names never clash with variables:
// fields, methods, labels and members of other packages reached by selector.
func (o *goObjects) separateNamespace(obj types.Object) bool {
	switch obj := obj.(type) {
	case *types.Var:
		return obj.IsField()
	case *types.Func:
		sig, ok := obj.Type().(*types.Signature)
		return ok && sig.Recv() != nil
	case *types.Label:
		return true
	}

	return obj.Pkg() != nil && obj.Pkg() != o.checked.Package
}

// protect reserves every name in the file that stays as it is and shares a
// namespace with renamed identifiers.
func (o *goObjects) protect(registry *naming.Registry) {
	ast.Inspect(o.file, func(node ast.Node) bool {
		ident, ok := node.(*ast.Ident)
		if !ok || ident == o.file.Name {
			return true
		}

		obj := o.objectOf(ident)

		switch {
		case obj == nil:
			// Unresolved, e.g. declared in a sibling file of the package.
			registry.AddName(ident.Name)
		case o.renamable(obj), o.separateNamespace(obj):
		default:
			registry.AddName(ident.Name)
		}

		return true
	})
}

func (o *goObjects) collect(fileSet *token.FileSet, registry *naming.Registry) ([]m.Identifier, []*ast.Ident) {
	set := m.NewIdentifierSet()

	var idents []*ast.Ident

	ast.Inspect(o.file, func(node ast.Node) bool {
		ident, ok := node.(*ast.Ident)
		if !ok {
			return true
		}

		obj := o.objectOf(ident)
		if obj == nil || !o.renamable(obj) {
			return true
		}

		if !registry.IsRenamable(ident.Name) {
			registry.AddName(ident.Name)
			return true
		}

		role := m.RoleVariable

		switch {
		case o.params[obj]:
			role = m.RoleParameter
		case isFunc(obj):
			role = m.RoleFunction
		}

		pos := fileSet.Position(ident.Pos())
		set.Add(ident.Name, role, m.Position{Line: pos.Line, Column: pos.Column})

		idents = append(idents, ident)

		return true
	})

	return set.Identifiers(), idents
}

func isFunc(obj types.Object) bool {
	_, ok := obj.(*types.Func)
	return ok
}

// goUnit holds the parsed file and the identifiers bound to renamable objects.
type goUnit struct {
	files   adapter.GoFileAdapter
	fileSet *token.FileSet
	file    *ast.File

	identifiers []m.Identifier
	idents      []*ast.Ident

	mu sync.Mutex
}

func (u *goUnit) Identifiers() []m.Identifier {
	return u.identifiers
}

// Rewrite renames the identifiers in place, prints the file and restores the
// original names.
func (u *goUnit) Rewrite(ctx context.Context, mapping *m.RenameMapping) ([]byte, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	original := make([]string, len(u.idents))

	for i, ident := range u.idents {
		original[i] = ident.Name

		if replacement, ok := mapping.Lookup(ident.Name); ok {
			ident.Name = replacement
		}
	}

	defer func() {
		for i, ident := range u.idents {
			ident.Name = original[i]
		}
	}()

	return u.files.Print(ctx, u.fileSet, u.file)
}

// StripComments implements Dialect. Build constraints and //go: directives
// are kept.
func (g *Golang) StripComments(ctx context.Context, src []byte) ([]byte, error) {
	fileSet := token.NewFileSet()

	file, err := g.files.Parse(ctx, fileSet, "", src)
	if err != nil {
		return nil, fmt.Errorf("strip comments: %w", err)
	}

	var kept []*ast.CommentGroup

	for _, group := range file.Comments {
		var directives []*ast.Comment

		for _, comment := range group.List {
			if isGoDirective(comment.Text) {
				directives = append(directives, comment)
			}
		}

		if len(directives) > 0 {
			kept = append(kept, &ast.CommentGroup{List: directives})
		}
	}

	file.Comments = kept
	file.Doc = nil

	ast.Inspect(file, func(node ast.Node) bool {
		switch n := node.(type) {
		case *ast.GenDecl:
			n.Doc = nil
		case *ast.FuncDecl:
			n.Doc = nil
		case *ast.Field:
			n.Doc, n.Comment = nil, nil
		case *ast.ValueSpec:
			n.Doc, n.Comment = nil, nil
		case *ast.TypeSpec:
			n.Doc, n.Comment = nil, nil
		case *ast.ImportSpec:
			n.Doc, n.Comment = nil, nil
		}

		return true
	})

	return g.files.Print(ctx, fileSet, file)
}

func isGoDirective(text string) bool {
	return strings.HasPrefix(text, "//go:") || strings.HasPrefix(text, "// +build") || strings.HasPrefix(text, "//line ")
}

// Normalize implements Dialect with gofmt, which also collapses blank lines.
func (g *Golang) Normalize(_ context.Context, src []byte) ([]byte, error) {
	out, err := format.Source(src)
	if err != nil {
		return nil, fmt.Errorf("format: %w", err)
	}

	return out, nil
}

// Validate implements Dialect.
func (g *Golang) Validate(_ context.Context, src []byte) error {
	if _, err := parser.ParseFile(token.NewFileSet(), "", src, parser.SkipObjectResolution); err != nil {
		return fmt.Errorf("rewritten source does not parse: %w", err)
	}

	return nil
}
