package adapter

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed symbols/python_stdlib.yaml
var pythonStdlibSymbols []byte

// SymbolTable is the on-disk format for curated symbol tables:
//
//	names: [always, protected]
//	modules:
//	  mylib: [member, names]
type SymbolTable struct {
	Names   []string            `yaml:"names"`
	Modules map[string][]string `yaml:"modules"`
}

// ParseSymbolTable decodes a YAML symbol table.
func ParseSymbolTable(data []byte) (SymbolTable, error) {
	var table SymbolTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return SymbolTable{}, fmt.Errorf("decode symbol table: %w", err)
	}

	return table, nil
}

// PythonStdlibSymbols returns the embedded table of Python standard library
// module members.
func PythonStdlibSymbols() (SymbolTable, error) {
	return ParseSymbolTable(pythonStdlibSymbols)
}
