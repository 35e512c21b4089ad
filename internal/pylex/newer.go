package pylex

import "strings"

// Construct names a piece of syntax and the line it starts on.
type Construct struct {
	Name string
	Line int
}

// blockOpeners are the keywords a colon may follow directly at the start of
// a statement.
var blockOpeners = map[string]bool{
	"else": true, "try": true, "finally": true, "except": true, "lambda": true,
}

// FindNewerSyntax returns the first construct in source that Python gained
// after 3.4: f-strings, annotated assignments, assignment expressions, the
// matrix multiplication operator, async statements, await expressions and
// match statements. Source that does not tokenize has none.
func FindNewerSyntax(source []byte) (Construct, bool) {
	tokens, err := Tokenize(source)
	if err != nil {
		return Construct{}, false
	}

	depth := 0

	for i, tok := range tokens {
		text := tok.Text(source)
		start := depth == 0 && startsStatement(source, tokens, i)

		switch tok.Kind {
		case KindString:
			if isFString(text) {
				return Construct{Name: "f-string", Line: tok.Line}, true
			}
		case KindOp:
			switch text {
			case "(", "[", "{":
				depth++
			case ")", "]", "}":
				depth = max(0, depth-1)
			case ":=":
				return Construct{Name: "assignment expression", Line: tok.Line}, true
			case "@=":
				return Construct{Name: "matrix multiplication", Line: tok.Line}, true
			case "@":
				if !start {
					return Construct{Name: "matrix multiplication", Line: tok.Line}, true
				}
			}
		case KindName:
			if name, ok := newerStatement(source, tokens, i, start); ok {
				return Construct{Name: name, Line: tok.Line}, true
			}
		}
	}

	return Construct{}, false
}

func newerStatement(source []byte, tokens []Token, i int, start bool) (string, bool) {
	text := tokens[i].Text(source)
	next, hasNext := nextToken(tokens, i)

	if text == "await" && hasNext && (next.Kind == KindName || next.Kind == KindNumber) {
		return "await expression", true
	}

	if !start {
		return "", false
	}

	switch text {
	case "async":
		if hasNext && next.Kind == KindName {
			switch next.Text(source) {
			case "def", "for", "with":
				return "async statement", true
			}
		}
	case "match", "case":
		if hasNext && (next.Kind == KindName || next.Kind == KindNumber || next.Kind == KindString) {
			return "match statement", true
		}
	}

	if blockOpeners[text] {
		return "", false
	}

	// name(.name)* ":" opens an annotated assignment.
	j := i
	for j+2 < len(tokens) && tokens[j+1].Is(source, ".") && tokens[j+2].Kind == KindName {
		j += 2
	}

	if j+1 < len(tokens) && tokens[j+1].Is(source, ":") {
		return "annotated assignment", true
	}

	return "", false
}

// startsStatement reports whether token i is the first of a simple statement,
// assuming no bracket is open.
func startsStatement(source []byte, tokens []Token, i int) bool {
	j := i - 1
	for j >= 0 && tokens[j].Kind == KindComment {
		j--
	}

	if j < 0 {
		return true
	}

	prev := tokens[j]
	if prev.Is(source, ";") {
		return true
	}

	endLine := prev.Line + strings.Count(prev.Text(source), "\n")

	return tokens[i].Line > endLine && !strings.Contains(string(source[prev.End():tokens[i].Offset]), "\\\n")
}

func nextToken(tokens []Token, i int) (Token, bool) {
	for j := i + 1; j < len(tokens); j++ {
		if tokens[j].Kind != KindComment {
			return tokens[j], true
		}
	}

	return Token{}, false
}

func isFString(literal string) bool {
	prefix := literal[:strings.IndexAny(literal, `'"`)]

	return strings.ContainsAny(prefix, "fF")
}
