package domain_test

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shroud.dev/pkg/shroud/internal/adapter"
	"shroud.dev/pkg/shroud/internal/domain"
	m "shroud.dev/pkg/shroud/internal/model"
)

func newObfuscator() domain.Obfuscator {
	return domain.NewDefaultObfuscator(adapter.NewLocalSourceFSAdapter())
}

func optionsWith(complexity int) m.Options {
	opts := m.DefaultOptions()
	opts.Complexity = complexity

	return opts
}

func TestObfuscator_Python(t *testing.T) {
	source := m.Source{Path: "greet.py", Content: []byte("def foo(bar):\n    return bar\n")}

	result, err := newObfuscator().Obfuscate(context.Background(), source, optionsWith(1))
	require.NoError(t, err)

	assert.Equal(t, "def a(b):\n    return b\n", string(result.Code))
	assert.Equal(t, m.LanguagePython, result.Source.Language)
	assert.Equal(t, 2, result.Mapping.Len())
}

func TestObfuscator_Go(t *testing.T) {
	source := m.Source{Path: "double.go", Content: []byte("package p\n\nfunc double(n int) int {\n\treturn n * 2\n}\n")}

	result, err := newObfuscator().Obfuscate(context.Background(), source, optionsWith(1))
	require.NoError(t, err)

	assert.Equal(t, "package p\n\nfunc a(b int) int {\n\treturn b * 2\n}\n", string(result.Code))
	assert.Equal(t, m.LanguageGo, result.Source.Language)
}

func TestObfuscator_ExplicitLanguageOverridesExtension(t *testing.T) {
	source := m.Source{Path: "script.txt", Language: m.LanguagePython, Content: []byte("value = 1\n")}

	result, err := newObfuscator().Obfuscate(context.Background(), source, optionsWith(1))
	require.NoError(t, err)
	assert.Equal(t, "a = 1\n", string(result.Code))
}

func TestObfuscator_UnknownExtension(t *testing.T) {
	source := m.Source{Path: "notes.txt", Content: []byte("value = 1\n")}

	_, err := newObfuscator().Obfuscate(context.Background(), source, optionsWith(1))
	require.ErrorIs(t, err, m.ErrUnsupportedLanguage)
}

func TestObfuscator_RejectsZeroComplexity(t *testing.T) {
	source := m.Source{Path: "f.py", Content: []byte("value = 1\n")}

	_, err := newObfuscator().Obfuscate(context.Background(), source, optionsWith(0))
	require.Error(t, err)
}

func TestObfuscator_StripAndNormalize(t *testing.T) {
	src := "# header\nvalue = 1  # one\n\n\n\nprint(value)\n"
	opts := optionsWith(1)
	opts.StripComments = true

	result, err := newObfuscator().Obfuscate(context.Background(), m.Source{Path: "f.py", Content: []byte(src)}, opts)
	require.NoError(t, err)
	assert.Equal(t, "\na = 1\n\nprint(a)\n", string(result.Code))
}

func TestObfuscator_KeepsCommentsByDefault(t *testing.T) {
	src := "value = 1  # one\n"

	result, err := newObfuscator().Obfuscate(context.Background(), m.Source{Path: "f.py", Content: []byte(src)}, optionsWith(1))
	require.NoError(t, err)
	assert.Equal(t, "a = 1  # one\n", string(result.Code))
}

func TestObfuscator_SymbolFileProtectsNames(t *testing.T) {
	dir := t.TempDir()
	symbols := filepath.Join(dir, "symbols.yaml")
	require.NoError(t, os.WriteFile(symbols, []byte("names: [keep_me]\nmodules:\n  vendor: [thing]\n"), 0o600))

	src := "from vendor import thing\nkeep_me = thing\nother = keep_me\n"
	opts := optionsWith(1)
	opts.Symbols = []m.Path{m.Path(symbols)}

	result, err := newObfuscator().Obfuscate(context.Background(), m.Source{Path: m.Path(filepath.Join(dir, "f.py")), Content: []byte(src)}, opts)
	require.NoError(t, err)
	assert.Equal(t, "from vendor import thing\nkeep_me = thing\na = keep_me\n", string(result.Code))
}

func TestObfuscator_MissingSymbolFile(t *testing.T) {
	opts := optionsWith(1)
	opts.Symbols = []m.Path{m.Path(filepath.Join(t.TempDir(), "missing.yaml"))}

	_, err := newObfuscator().Obfuscate(context.Background(), m.Source{Path: "f.py", Content: []byte("x = 1\n")}, opts)

	var ioErr *m.FileIOError
	require.ErrorAs(t, err, &ioErr)
}

func TestObfuscator_PlanDoesNotRewrite(t *testing.T) {
	plan, err := newObfuscator().Plan(context.Background(), m.Source{Path: "f.py", Content: []byte("total = 1\ncount = total\n")}, optionsWith(1))
	require.NoError(t, err)

	entries := plan.Mapping.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "total", entries[0].Original.Name)
	assert.Equal(t, "count", entries[1].Original.Name)
	assert.Len(t, plan.Identifiers, 2)
}

func TestObfuscator_CapacityErrorBeforeOutput(t *testing.T) {
	var src strings.Builder
	for _, name := range strings.Fields("alpha beta gamma delta epsilon zeta eta theta iota kappa lambda_ mu nu xi omicron pi rho sigma tau upsilon phi chi psi omega one two three") {
		src.WriteString(name + " = 0\n")
	}

	_, err := newObfuscator().Obfuscate(context.Background(), m.Source{Path: "f.py", Content: []byte(src.String())}, optionsWith(1))

	var capErr *m.CapacityError
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, 1, capErr.Complexity)
}

func TestObfuscator_ConcurrentCallsAreIndependent(t *testing.T) {
	obfuscator := newObfuscator()
	sources := []string{
		"def foo(bar):\n    return bar\n",
		"counter = 0\ncounter += 1\n",
		"def foo(bar):\n    return bar\n",
		"counter = 0\ncounter += 1\n",
	}

	results := make([]string, len(sources))

	var wg sync.WaitGroup

	for i, src := range sources {
		wg.Add(1)

		go func() {
			defer wg.Done()

			result, err := obfuscator.Obfuscate(context.Background(), m.Source{Path: "f.py", Content: []byte(src)}, optionsWith(1))
			if assert.NoError(t, err) {
				results[i] = string(result.Code)
			}
		}()
	}

	wg.Wait()

	assert.Equal(t, "def a(b):\n    return b\n", results[0])
	assert.Equal(t, "a = 0\na += 1\n", results[1])
	assert.Equal(t, results[0], results[2])
	assert.Equal(t, results[1], results[3])
}

func examplePath(t *testing.T, elem ...string) string {
	t.Helper()

	path, err := filepath.Abs(filepath.Join(append([]string{"..", "..", "examples"}, elem...)...))
	require.NoError(t, err)

	return path
}

func TestObfuscator_PythonExample(t *testing.T) {
	path := examplePath(t, "python", "inventory.py")
	content, err := os.ReadFile(path)
	require.NoError(t, err)

	result, err := newObfuscator().Obfuscate(context.Background(), m.Source{Path: m.Path(path), Content: content}, optionsWith(2))
	require.NoError(t, err)

	code := string(result.Code)
	assert.True(t, strings.HasPrefix(code, "#!/usr/bin/env python3\n# -*- coding: utf-8 -*-\n"))

	for _, kept := range []string{
		"from pricing import with_tax, discount",
		"from shop import Cart",
		"os.path.exists(",
		"= Cart()",
		".add(",
		"with_tax(",
		"open(",
		`"count": len(`,
		`if __name__ == "__main__":`,
		"# one item per line: name,price",
	} {
		assert.Contains(t, code, kept)
	}

	for _, renamed := range []string{"load_items", "summarize", "percent", "handle"} {
		assert.NotContains(t, code, renamed)

		_, ok := result.Mapping.Lookup(renamed)
		assert.True(t, ok, renamed)
	}
}

func TestObfuscator_GoExample(t *testing.T) {
	path := examplePath(t, "scopes", "main.go")
	content, err := os.ReadFile(path)
	require.NoError(t, err)

	result, err := newObfuscator().Obfuscate(context.Background(), m.Source{Path: m.Path(path), Content: content}, optionsWith(2))
	require.NoError(t, err)

	code := string(result.Code)
	for _, kept := range []string{
		"const MaxItems = 3",
		"type Shape interface",
		"Rect{Width: 2, Height: 3}",
		"func (",
		") Area() float64",
		"func main() {",
		"errors.New(",
		"fmt.Println(",
	} {
		assert.Contains(t, code, kept)
	}

	for _, renamed := range []string{"describe", "total", "counter", "shapes"} {
		assert.NotContains(t, code, renamed+"(")

		_, ok := result.Mapping.Lookup(renamed)
		assert.True(t, ok, renamed)
	}
}

// pythonStdout runs script with python3 inside dir and returns what it prints.
func pythonStdout(t *testing.T, dir, script string) string {
	t.Helper()

	python, err := exec.LookPath("python3")
	if err != nil {
		t.Skip("python3 not installed")
	}

	var stderr bytes.Buffer

	cmd := exec.Command(python, script)
	cmd.Dir = dir
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	require.NoError(t, err, stderr.String())

	return string(out)
}

func TestObfuscator_PythonBehaviourPreserved(t *testing.T) {
	tests := []struct {
		name   string
		script string
		src    string
	}{
		{name: "inventory example", script: "inventory.py"},
		{name: "ledger example", script: "ledger.py"},
		{
			name:   "except binding",
			script: "except_binding.py",
			src:    "total = 1\ntry:\n    raise ValueError()\nexcept ValueError as a:\n    pass\nprint(total)\n",
		},
		{
			name:   "keyword into kwargs",
			script: "kwargs_key.py",
			src:    "def f(**kw):\n    return kw[\"zz\"]\n\nzz = 2\nprint(f(zz=1))\n",
		},
		{
			name:   "keyword through alias",
			script: "alias.py",
			src:    "def outer():\n    def inner(step=1):\n        return step * 2\n    return inner\n\nrun = outer()\nprint(run(step=3))\n",
		},
	}

	for _, tt := range tests {
		for _, complexity := range []int{1, 3} {
			t.Run(fmt.Sprintf("%s/complexity=%d", tt.name, complexity), func(t *testing.T) {
				dir := t.TempDir()
				require.NoError(t, os.CopyFS(dir, os.DirFS(examplePath(t, "python"))))
				require.NoError(t, os.WriteFile(filepath.Join(dir, "items.csv"), []byte("apple,1.5\npear,2\n"), 0o600))

				if tt.src != "" {
					require.NoError(t, os.WriteFile(filepath.Join(dir, tt.script), []byte(tt.src), 0o600))
				}

				path := filepath.Join(dir, tt.script)
				content, err := os.ReadFile(path)
				require.NoError(t, err)

				result, err := newObfuscator().Obfuscate(context.Background(), m.Source{Path: m.Path(path), Content: content}, optionsWith(complexity))
				require.NoError(t, err)
				require.NoError(t, os.WriteFile(filepath.Join(dir, "shrouded_"+tt.script), result.Code, 0o600))

				want := pythonStdout(t, dir, tt.script)
				assert.NotEmpty(t, want)
				assert.Equal(t, want, pythonStdout(t, dir, "shrouded_"+tt.script))
			})
		}
	}
}

func TestObfuscator_LedgerExample(t *testing.T) {
	path := examplePath(t, "python", "ledger.py")
	content, err := os.ReadFile(path)
	require.NoError(t, err)

	result, err := newObfuscator().Obfuscate(context.Background(), m.Source{Path: m.Path(path), Content: content}, optionsWith(1))
	require.NoError(t, err)

	code := string(result.Code)

	lookup := func(name string) string {
		t.Helper()

		replacement, ok := result.Mapping.Lookup(name)
		require.True(t, ok, name)

		return replacement
	}

	assert.Contains(t, code, "except ValueError as "+lookup("problem")+":")
	assert.Contains(t, code, "return type("+lookup("problem")+").__name__")
	assert.Contains(t, code, "global "+lookup("balance")+"\n")
	assert.Contains(t, code, "nonlocal "+lookup("count")+"\n")

	// Named parameters follow their renamed definition; **options keys do not.
	assert.Contains(t, code, lookup("scale")+"(3, "+lookup("factor")+"=4, extra=1)")
	assert.Contains(t, code, lookup("note")+`="first"`)
	assert.Contains(t, code, `.get("extra", 0)`)

	// step is passed through an alias, so it keeps its name everywhere.
	_, ok := result.Mapping.Lookup("step")
	assert.False(t, ok)
	assert.Contains(t, code, "(step=1):")
	assert.Contains(t, code, "(step=5)")
}
