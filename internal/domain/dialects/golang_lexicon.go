package dialects

import (
	"go/ast"
	"go/token"
	"go/types"

	"shroud.dev/pkg/shroud/internal/domain/naming"
)

var goKeywords = []string{
	"break", "case", "chan", "const", "continue", "default", "defer", "else",
	"fallthrough", "for", "func", "go", "goto", "if", "import", "interface",
	"map", "package", "range", "return", "select", "struct", "switch", "type", "var",
}

// goBuiltins are the universe scope names plus the two function names the
// toolchain looks up by name.
func goBuiltins() []string {
	return append(types.Universe.Names(), "main", "init")
}

func goLexicon() naming.Lexicon {
	return naming.Lexicon{
		Keywords:     goKeywords,
		Builtins:     goBuiltins(),
		IsIdentifier: token.IsIdentifier,
		// An upper-case replacement would export the name.
		AcceptCandidate: func(candidate string) bool {
			return !ast.IsExported(candidate)
		},
	}
}
