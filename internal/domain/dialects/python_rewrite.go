package dialects

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"

	m "shroud.dev/pkg/shroud/internal/model"
	"shroud.dev/pkg/shroud/internal/pylex"
)

// pythonUnit rewrites one Python file over its token stream. Only name
// tokens are candidates, so text inside strings and comments is never touched.
type pythonUnit struct {
	src         []byte
	identifiers []m.Identifier
	functions   map[string]map[string]bool
	keywords    map[string]bool
}

func (u *pythonUnit) Identifiers() []m.Identifier {
	return u.identifiers
}

type bracketKind uint8

const (
	bracketGroup bracketKind = iota
	bracketCall
	bracketParams
)

type bracket struct {
	kind   bracketKind
	callee string
}

// renameScan decides, token by token, which name tokens keep their text.
type renameScan struct {
	src      []byte
	tokens   []pylex.Token
	keywords map[string]bool

	brackets   []bracket
	lambdas    []int
	pendingDef bool
	inImport   bool
}

// Rewrite renames every mapped name token in one left-to-right pass over the
// original text. Replacements are never rescanned.
func (u *pythonUnit) Rewrite(ctx context.Context, mapping *m.RenameMapping) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tokens, err := pylex.Tokenize(u.src)
	if err != nil {
		return nil, fmt.Errorf("tokenize: %w", err)
	}

	scan := &renameScan{src: u.src, tokens: tokens, keywords: u.keywords}

	var out bytes.Buffer

	out.Grow(len(u.src))

	last := 0

	for i, tok := range tokens {
		callee, keywordArg := scan.step(i)
		if tok.Kind != pylex.KindName || !scan.renamable(i) {
			continue
		}

		replacement, ok := mapping.Lookup(tok.Text(u.src))
		if !ok {
			continue
		}

		// A keyword argument keeps its text unless it binds a named
		// parameter of one of our functions; anything else ends up as a
		// **kwargs key.
		if keywordArg && !u.functions[callee][tok.Text(u.src)] {
			continue
		}

		out.Write(u.src[last:tok.Offset])
		out.WriteString(replacement)

		last = tok.End()
	}

	out.Write(u.src[last:])

	return out.Bytes(), nil
}

// step advances the bracket and statement state for token i. For a name that
// is a keyword argument of a call it returns the callee and true.
func (s *renameScan) step(i int) (string, bool) {
	tok := s.tokens[i]
	text := tok.Text(s.src)

	if s.statementStart(i) {
		s.inImport = false

		if tok.Kind == pylex.KindName && (text == "import" || text == "from") {
			s.inImport = true
		}
	}

	switch tok.Kind {
	case pylex.KindName:
		switch text {
		case "def":
			s.pendingDef = true
		case "lambda":
			s.lambdas = append(s.lambdas, len(s.brackets))
		}

		return s.keywordArgument(i)
	case pylex.KindOp:
		s.stepOp(i, text)
	}

	return "", false
}

func (s *renameScan) stepOp(i int, text string) {
	switch text {
	case "(":
		s.brackets = append(s.brackets, s.openParen(i))
		s.pendingDef = false
	case "[", "{":
		s.brackets = append(s.brackets, bracket{kind: bracketGroup})
	case ")", "]", "}":
		if len(s.brackets) > 0 {
			s.brackets = s.brackets[:len(s.brackets)-1]
		}

		for len(s.lambdas) > 0 && s.lambdas[len(s.lambdas)-1] > len(s.brackets) {
			s.lambdas = s.lambdas[:len(s.lambdas)-1]
		}
	case ":":
		if s.inLambdaParams() {
			s.lambdas = s.lambdas[:len(s.lambdas)-1]
		}
	}
}

func (s *renameScan) openParen(i int) bracket {
	if s.pendingDef {
		return bracket{kind: bracketParams}
	}

	prev, ok := s.prev(i)
	if !ok {
		return bracket{kind: bracketGroup}
	}

	switch prev.Kind {
	case pylex.KindName:
		name := prev.Text(s.src)
		if s.keywords[name] {
			return bracket{kind: bracketGroup}
		}

		if before, ok := s.prev(i - 1); ok && before.Is(s.src, ".") {
			return bracket{kind: bracketCall}
		}

		return bracket{kind: bracketCall, callee: name}
	case pylex.KindString:
		return bracket{kind: bracketCall}
	case pylex.KindOp:
		if prev.Is(s.src, ")") || prev.Is(s.src, "]") {
			return bracket{kind: bracketCall}
		}
	}

	return bracket{kind: bracketGroup}
}

func (s *renameScan) keywordArgument(i int) (string, bool) {
	if len(s.brackets) == 0 || s.inLambdaParams() {
		return "", false
	}

	top := s.brackets[len(s.brackets)-1]
	if top.kind != bracketCall {
		return "", false
	}

	if i+1 >= len(s.tokens) || !s.tokens[i+1].Is(s.src, "=") {
		return "", false
	}

	prev, ok := s.prev(i)
	if !ok || !(prev.Is(s.src, "(") || prev.Is(s.src, ",")) {
		return "", false
	}

	return top.callee, true
}

// renamable rejects attribute names and names inside import statements.
func (s *renameScan) renamable(i int) bool {
	if s.inImport {
		return false
	}

	prev, ok := s.prev(i)

	return !ok || !prev.Is(s.src, ".")
}

func (s *renameScan) inLambdaParams() bool {
	return len(s.lambdas) > 0 && s.lambdas[len(s.lambdas)-1] == len(s.brackets)
}

// statementStart reports whether token i begins a simple statement.
func (s *renameScan) statementStart(i int) bool {
	prev, ok := s.prev(i)
	if !ok {
		return true
	}

	if len(s.brackets) > 0 {
		return false
	}

	if prev.Is(s.src, ";") || prev.Is(s.src, ":") {
		return true
	}

	endLine := prev.Line + strings.Count(prev.Text(s.src), "\n")

	return s.tokens[i].Line > endLine
}

// prev returns the nearest token before i that is not a comment.
func (s *renameScan) prev(i int) (pylex.Token, bool) {
	for j := i - 1; j >= 0; j-- {
		if s.tokens[j].Kind != pylex.KindComment {
			return s.tokens[j], true
		}
	}

	return pylex.Token{}, false
}

var pythonCodingLine = regexp.MustCompile(`^[ \t\f]*#.*?coding[:=][ \t]*[-\w.]+`)

// stripPythonComments removes comment tokens together with the blanks before
// them. A shebang on line 1 and an encoding declaration on line 1 or 2 survive.
func stripPythonComments(src []byte) ([]byte, error) {
	tokens, err := pylex.Tokenize(src)
	if err != nil {
		return nil, fmt.Errorf("tokenize: %w", err)
	}

	var out bytes.Buffer

	last := 0

	for _, tok := range tokens {
		if tok.Kind != pylex.KindComment {
			continue
		}

		text := tok.Text(src)
		if tok.Line == 1 && tok.Offset == 0 && strings.HasPrefix(text, "#!") {
			continue
		}

		if tok.Line <= 2 && pythonCodingLine.MatchString(text) {
			continue
		}

		start := tok.Offset
		for start > last && (src[start-1] == ' ' || src[start-1] == '\t' || src[start-1] == '\f') {
			start--
		}

		out.Write(src[last:start])

		last = tok.End()
	}

	out.Write(src[last:])

	return out.Bytes(), nil
}

var pythonBlankRun = regexp.MustCompile(`\n(?:[ \t\f]*\n){2,}`)

// collapsePythonBlankLines squeezes runs of two or more blank lines into one.
// Only the whitespace between tokens is rewritten, never string contents.
func collapsePythonBlankLines(src []byte) ([]byte, error) {
	tokens, err := pylex.Tokenize(src)
	if err != nil {
		return nil, fmt.Errorf("tokenize: %w", err)
	}

	var out bytes.Buffer

	last := 0

	for _, tok := range tokens {
		out.Write(pythonBlankRun.ReplaceAll(src[last:tok.Offset], []byte("\n\n")))
		out.Write(src[tok.Offset:tok.End()])

		last = tok.End()
	}

	out.Write(pythonBlankRun.ReplaceAll(src[last:], []byte("\n\n")))

	return out.Bytes(), nil
}
