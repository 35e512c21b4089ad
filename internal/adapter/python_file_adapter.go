package adapter

import (
	"bytes"
	"context"
	"fmt"

	"github.com/go-python/gpython/ast"
	"github.com/go-python/gpython/parser"
	"github.com/go-python/gpython/py"

	m "shroud.dev/pkg/shroud/internal/model"
	"shroud.dev/pkg/shroud/internal/pylex"
)

// PythonFileAdapter parses Python source into a gpython syntax tree.
type PythonFileAdapter interface {
	Parse(ctx context.Context, filename string, src []byte) (*ast.Module, error)
}

// LocalPythonFileAdapter is the gpython-backed PythonFileAdapter.
type LocalPythonFileAdapter struct{}

// NewLocalPythonFileAdapter constructs a LocalPythonFileAdapter.
func NewLocalPythonFileAdapter() *LocalPythonFileAdapter {
	return &LocalPythonFileAdapter{}
}

// Parse parses src in exec mode. The parser's error is returned unchanged.
func (a *LocalPythonFileAdapter) Parse(ctx context.Context, filename string, src []byte) (*ast.Module, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if len(src) > 0 && src[len(src)-1] != '\n' {
		src = append(bytes.Clone(src), '\n')
	}

	tree, err := parser.Parse(bytes.NewReader(src), filename, py.ExecMode)
	if err != nil {
		return nil, err
	}

	module, ok := tree.(*ast.Module)
	if !ok {
		return nil, fmt.Errorf("expected *ast.Module, got %T", tree)
	}

	return module, nil
}

// PythonParseError classifies a Parse failure of src. Source using syntax the
// grammar predates gets an UnsupportedSyntaxError, anything else a ParseError.
func PythonParseError(path m.Path, src []byte, err error) error {
	if found, ok := pylex.FindNewerSyntax(src); ok {
		return &m.UnsupportedSyntaxError{Path: path, Line: found.Line, Construct: found.Name, Err: err}
	}

	return &m.ParseError{Path: path, Err: err}
}
