package dialects

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/go-python/gpython/ast"

	"shroud.dev/pkg/shroud/internal/adapter"
	"shroud.dev/pkg/shroud/internal/domain/naming"
	m "shroud.dev/pkg/shroud/internal/model"
)

// Python discovers identifiers with the gpython parser and rewrites them over
// the token stream.
type Python struct {
	parser   adapter.PythonFileAdapter
	resolver adapter.ModuleResolver
}

// NewPython constructs the Python dialect.
func NewPython(parser adapter.PythonFileAdapter, resolver adapter.ModuleResolver) *Python {
	return &Python{parser: parser, resolver: resolver}
}

// Language implements Dialect.
func (p *Python) Language() m.Language {
	return m.LanguagePython
}

// Lexicon implements Dialect.
func (p *Python) Lexicon() naming.Lexicon {
	return pythonLexicon()
}

// Discover implements Dialect.
func (p *Python) Discover(ctx context.Context, source m.Source, env Env) (Unit, error) {
	tree, err := p.parser.Parse(ctx, string(source.Path), source.Content)
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}

		return nil, adapter.PythonParseError(source.Path, source.Content, err)
	}

	functions := keywordParameters(tree)

	if err := p.protect(ctx, tree, source, env, functions); err != nil {
		return nil, err
	}

	ids := p.collect(tree, env.Registry)

	return &pythonUnit{
		src:         source.Content,
		identifiers: ids,
		functions:   functions,
		keywords:    toLookup(pythonKeywords),
	}, nil
}

// protect grows the registry with imported names and with every name that
// lives in a class namespace: class names, methods, method parameters and
// class attributes are reached through attributes we never rewrite. It also
// keeps parameters that are passed by keyword to callees we cannot follow.
func (p *Python) protect(ctx context.Context, tree *ast.Module, source m.Source, env Env, functions map[string]map[string]bool) error {
	var walkErr error

	params := namedParameters(tree)

	ast.Walk(tree, func(node ast.Ast) bool {
		if walkErr != nil {
			return false
		}

		switch n := node.(type) {
		case *ast.ImportFrom:
			walkErr = p.protectImportFrom(ctx, n, source, env)
		case *ast.Import:
			for _, alias := range n.Names {
				env.Registry.AddName(adapter.PythonImportBinding(alias))
			}
		case *ast.ClassDef:
			protectClassBody(n, env.Registry)
		case *ast.Assign:
			protectDunderAll(n, env.Registry)
		case *ast.Call:
			protectForeignKeywords(n, functions, params, env.Registry)
		case *ast.FunctionDef:
			if !env.Registry.IncludeParameters() {
				for _, arg := range allArgs(n.Args) {
					env.Registry.AddName(string(arg.Arg))
				}
			}
		case *ast.Lambda:
			if !env.Registry.IncludeParameters() {
				for _, arg := range allArgs(n.Args) {
					env.Registry.AddName(string(arg.Arg))
				}
			}
		}

		return true
	})

	return walkErr
}

func (p *Python) protectImportFrom(ctx context.Context, n *ast.ImportFrom, source m.Source, env Env) error {
	module := string(n.Module)
	display := strings.Repeat(".", n.Level) + module

	members, err := p.resolver.Members(ctx, adapter.ModuleRequest{
		Module:      module,
		Level:       n.Level,
		FromDir:     m.Path(filepath.Dir(string(source.Path))),
		SearchPaths: env.SearchPaths,
		Tables:      env.Symbols,
	})

	switch {
	case err == nil:
		env.Registry.AddModuleMembers(display, members)
	case module == "" && n.Level > 0 && errors.Is(err, fs.ErrNotExist):
		// "from . import x" in a namespace package: x are submodules.
	default:
		return &m.UnresolvedImportError{Module: display, Err: err}
	}

	for _, alias := range n.Names {
		if alias.Name != "*" {
			env.Registry.AddName(string(alias.Name))
		}

		env.Registry.AddName(string(alias.AsName))
	}

	return nil
}

func protectClassBody(class *ast.ClassDef, registry *naming.Registry) {
	registry.AddName(string(class.Name))

	for _, stmt := range class.Body {
		switch s := stmt.(type) {
		case *ast.FunctionDef:
			registry.AddName(string(s.Name))

			for _, arg := range allArgs(s.Args) {
				registry.AddName(string(arg.Arg))
			}
		case *ast.Assign:
			for _, target := range s.Targets {
				for _, name := range targetNames(target) {
					registry.AddName(name)
				}
			}
		case *ast.AugAssign:
			for _, name := range targetNames(s.Target) {
				registry.AddName(name)
			}
		}
	}
}

// protectDunderAll keeps names exported through __all__ string literals.
func protectDunderAll(assign *ast.Assign, registry *naming.Registry) {
	isAll := false

	for _, target := range assign.Targets {
		if name, ok := target.(*ast.Name); ok && name.Id == "__all__" {
			isAll = true
		}
	}

	if !isAll {
		return
	}

	var elts []ast.Expr

	switch v := assign.Value.(type) {
	case *ast.List:
		elts = v.Elts
	case *ast.Tuple:
		elts = v.Elts
	}

	for _, elt := range elts {
		if str, ok := elt.(*ast.Str); ok {
			registry.AddName(string(str.S))
		}
	}
}

// collect walks the tree for function names, parameters and every other
// binding or reference of a name.
func (p *Python) collect(tree *ast.Module, registry *naming.Registry) []m.Identifier {
	set := m.NewIdentifierSet()

	add := func(name string, role m.Role, node ast.Ast) {
		if !registry.IsRenamable(name) {
			// Whatever keeps its name still occupies the namespace.
			registry.AddName(name)
			return
		}

		set.Add(name, role, position(node))
	}

	ast.Walk(tree, func(node ast.Ast) bool {
		switch n := node.(type) {
		case *ast.FunctionDef:
			add(string(n.Name), m.RoleFunction, n)

			for _, arg := range allArgs(n.Args) {
				add(string(arg.Arg), m.RoleParameter, arg)
			}
		case *ast.Lambda:
			for _, arg := range allArgs(n.Args) {
				add(string(arg.Arg), m.RoleParameter, arg)
			}
		case *ast.ExceptHandler:
			if n.Name != "" {
				add(string(n.Name), m.RoleVariable, n)
			}
		case *ast.Global:
			for _, name := range n.Names {
				add(string(name), m.RoleVariable, n)
			}
		case *ast.Nonlocal:
			for _, name := range n.Names {
				add(string(name), m.RoleVariable, n)
			}
		case *ast.Name:
			add(string(n.Id), m.RoleVariable, n)
		}

		return true
	})

	return set.Identifiers()
}

// keywordParameters maps each def name to the parameters a keyword argument
// binds directly. When the same name is defined more than once only the
// parameters every definition shares are kept, since any other keyword may
// land in a **kwargs dict under its literal text.
func keywordParameters(tree *ast.Module) map[string]map[string]bool {
	functions := make(map[string]map[string]bool)

	ast.Walk(tree, func(node ast.Ast) bool {
		def, ok := node.(*ast.FunctionDef)
		if !ok {
			return true
		}

		name := string(def.Name)
		params := namedArgs(def.Args)

		seen, ok := functions[name]
		if !ok {
			functions[name] = params
			return true
		}

		for param := range seen {
			if !params[param] {
				delete(seen, param)
			}
		}

		return true
	})

	return functions
}

// namedParameters collects every parameter of a def or lambda that a keyword
// argument can bind.
func namedParameters(tree *ast.Module) map[string]bool {
	params := make(map[string]bool)

	ast.Walk(tree, func(node ast.Ast) bool {
		var args *ast.Arguments

		switch n := node.(type) {
		case *ast.FunctionDef:
			args = n.Args
		case *ast.Lambda:
			args = n.Args
		default:
			return true
		}

		for param := range namedArgs(args) {
			params[param] = true
		}

		return true
	})

	return params
}

// protectForeignKeywords keeps a parameter name that is passed as a keyword
// to a callee other than a def binding it by name, such as a function reached
// through an alias: the keyword is left as written, so the parameter must be
// too.
func protectForeignKeywords(call *ast.Call, functions map[string]map[string]bool, params map[string]bool, registry *naming.Registry) {
	callee := ""
	if name, ok := call.Func.(*ast.Name); ok {
		callee = string(name.Id)
	}

	for _, keyword := range call.Keywords {
		name := string(keyword.Arg)
		if params[name] && !functions[callee][name] {
			registry.AddName(name)
		}
	}
}

func namedArgs(args *ast.Arguments) map[string]bool {
	named := make(map[string]bool)
	if args == nil {
		return named
	}

	for _, arg := range args.Args {
		named[string(arg.Arg)] = true
	}

	for _, arg := range args.Kwonlyargs {
		named[string(arg.Arg)] = true
	}

	return named
}

func allArgs(args *ast.Arguments) []*ast.Arg {
	if args == nil {
		return nil
	}

	out := make([]*ast.Arg, 0, len(args.Args)+len(args.Kwonlyargs)+2)
	out = append(out, args.Args...)

	if args.Vararg != nil {
		out = append(out, args.Vararg)
	}

	out = append(out, args.Kwonlyargs...)

	if args.Kwarg != nil {
		out = append(out, args.Kwarg)
	}

	return out
}

func targetNames(target ast.Expr) []string {
	switch t := target.(type) {
	case *ast.Name:
		return []string{string(t.Id)}
	case *ast.Tuple:
		var names []string
		for _, elt := range t.Elts {
			names = append(names, targetNames(elt)...)
		}

		return names
	case *ast.List:
		var names []string
		for _, elt := range t.Elts {
			names = append(names, targetNames(elt)...)
		}

		return names
	case *ast.Starred:
		return targetNames(t.Value)
	}

	return nil
}

func position(node ast.Ast) m.Position {
	return m.Position{Line: node.GetLineno(), Column: node.GetColOffset() + 1}
}

func toLookup(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = true
	}

	return set
}

// StripComments implements Dialect.
func (p *Python) StripComments(_ context.Context, src []byte) ([]byte, error) {
	return stripPythonComments(src)
}

// Normalize implements Dialect.
func (p *Python) Normalize(_ context.Context, src []byte) ([]byte, error) {
	return collapsePythonBlankLines(src)
}

// Validate implements Dialect.
func (p *Python) Validate(ctx context.Context, src []byte) error {
	if _, err := p.parser.Parse(ctx, "<rewritten>", src); err != nil {
		return fmt.Errorf("rewritten source does not parse: %w", err)
	}

	return nil
}
