// Package pylex splits Python source into the tokens the renamer cares about:
// names, strings, numbers, comments and operators. Whitespace and line breaks
// are skipped, so the text between two tokens is always layout.
package pylex

// Kind classifies a token.
type Kind uint8

const (
	KindEOF Kind = iota
	KindName
	KindNumber
	KindString
	KindComment
	KindOp
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindEOF:
		return "EOF"
	case KindName:
		return "Name"
	case KindNumber:
		return "Number"
	case KindString:
		return "String"
	case KindComment:
		return "Comment"
	case KindOp:
		return "Op"
	default:
		return "Error"
	}
}

// Token is a slice of the source identified by byte offset and length.
type Token struct {
	Kind   Kind
	Offset int
	Length int
	Line   int
}

// End returns the offset just past the token.
func (t Token) End() int {
	return t.Offset + t.Length
}

// Text returns the token's bytes as a string.
func (t Token) Text(source []byte) string {
	return string(source[t.Offset:t.End()])
}

// Is reports whether t is an operator token spelled op.
func (t Token) Is(source []byte, op string) bool {
	return t.Kind == KindOp && t.Text(source) == op
}
