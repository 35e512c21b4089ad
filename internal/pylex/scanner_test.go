package pylex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tokenText struct {
	kind Kind
	text string
}

func scanAll(t *testing.T, src string) []tokenText {
	t.Helper()

	tokens, err := Tokenize([]byte(src))
	require.NoError(t, err)

	out := make([]tokenText, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, tokenText{tok.Kind, tok.Text([]byte(src))})
	}

	return out
}

func TestTokenize_Basic(t *testing.T) {
	got := scanAll(t, "def foo(bar):\n    return bar + 1  # inc\n")

	want := []tokenText{
		{KindName, "def"},
		{KindName, "foo"},
		{KindOp, "("},
		{KindName, "bar"},
		{KindOp, ")"},
		{KindOp, ":"},
		{KindName, "return"},
		{KindName, "bar"},
		{KindOp, "+"},
		{KindNumber, "1"},
		{KindComment, "# inc"},
	}
	assert.Equal(t, want, got)
}

func TestTokenize_Strings(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"double", `"a b"`, `"a b"`},
		{"single with escape", `'it\'s'`, `'it\'s'`},
		{"raw prefix", `r"\d+"`, `r"\d+"`},
		{"bytes prefix", `b'x'`, `b'x'`},
		{"two letter prefix", `Rb"x"`, `Rb"x"`},
		{"triple", "\"\"\"one\n\ntwo\"\"\"", "\"\"\"one\n\ntwo\"\"\""},
		{"triple single with quotes", "'''a ' b'''", "'''a ' b'''"},
		{"hash inside", `"not # a comment"`, `"not # a comment"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scanAll(t, tt.src)
			require.Len(t, got, 1)
			assert.Equal(t, KindString, got[0].kind)
			assert.Equal(t, tt.want, got[0].text)
		})
	}
}

func TestTokenize_NameBeforeQuoteIsNotPrefix(t *testing.T) {
	got := scanAll(t, `value"x"`)
	require.Len(t, got, 2)
	assert.Equal(t, tokenText{KindName, "value"}, got[0])
	assert.Equal(t, tokenText{KindString, `"x"`}, got[1])
}

func TestTokenize_Numbers(t *testing.T) {
	for _, src := range []string{"42", "3.14", ".5", "1e-5", "0xFF", "1_000", "2j", "0o17"} {
		t.Run(src, func(t *testing.T) {
			got := scanAll(t, src)
			require.Len(t, got, 1)
			assert.Equal(t, tokenText{KindNumber, src}, got[0])
		})
	}

	got := scanAll(t, "0x1e-5")
	assert.Equal(t, []tokenText{{KindNumber, "0x1e"}, {KindOp, "-"}, {KindNumber, "5"}}, got)
}

func TestTokenize_Operators(t *testing.T) {
	got := scanAll(t, "a**=b//c!=d==e->f:=g")

	var ops []string
	for _, tok := range got {
		if tok.kind == KindOp {
			ops = append(ops, tok.text)
		}
	}

	assert.Equal(t, []string{"**=", "//", "!=", "==", "->", ":="}, ops)
}

func TestTokenize_Unterminated(t *testing.T) {
	_, err := Tokenize([]byte("x = 'abc\ny = 1\n"))
	require.Error(t, err)

	_, err = Tokenize([]byte(`x = """abc`))
	require.Error(t, err)
}

func TestTokenize_LineNumbers(t *testing.T) {
	src := []byte("a = 1\nb = '''x\ny'''\nc \\\n  = 2\n")

	tokens, err := Tokenize(src)
	require.NoError(t, err)

	lines := make(map[string]int)
	for _, tok := range tokens {
		if tok.Kind == KindName {
			lines[tok.Text(src)] = tok.Line
		}
	}

	assert.Equal(t, map[string]int{"a": 1, "b": 2, "c": 4}, lines)
}

func TestIsIdentifier(t *testing.T) {
	assert.True(t, IsIdentifier("foo"))
	assert.True(t, IsIdentifier("_x1"))
	assert.True(t, IsIdentifier("café"))
	assert.False(t, IsIdentifier("1x"))
	assert.False(t, IsIdentifier("a-b"))
	assert.False(t, IsIdentifier(""))
}
