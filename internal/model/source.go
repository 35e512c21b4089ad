// Package model defines the data structures shared by the renaming pipeline.
package model

import (
	"path/filepath"
	"strings"
)

// Path represents a file system path.
type Path string

// Language identifies the source dialect of a translation unit.
type Language string

const (
	// LanguageAuto selects the dialect from the file extension.
	LanguageAuto Language = "auto"

	// LanguagePython is Python 3 source, parsed with gpython.
	LanguagePython Language = "python"

	// LanguageGo is Go source, parsed with go/parser and type-checked with go/types.
	LanguageGo Language = "go"
)

// SupportedLanguages lists the dialects shroud can obfuscate.
func SupportedLanguages() []Language {
	return []Language{LanguagePython, LanguageGo}
}

// DetectLanguage maps a file extension to a Language. It returns false when the
// extension is not recognised.
func DetectLanguage(path Path) (Language, bool) {
	switch strings.ToLower(filepath.Ext(string(path))) {
	case ".py", ".pyw":
		return LanguagePython, true
	case ".go":
		return LanguageGo, true
	}

	return "", false
}

// ParseLanguage validates a user supplied language name.
func ParseLanguage(value string) (Language, bool) {
	switch Language(strings.ToLower(strings.TrimSpace(value))) {
	case "", LanguageAuto:
		return LanguageAuto, true
	case LanguagePython, "py":
		return LanguagePython, true
	case LanguageGo, "golang":
		return LanguageGo, true
	}

	return "", false
}

// Source is a single translation unit: one file's text and its dialect.
type Source struct {
	Path     Path
	Language Language
	Content  []byte
}
