package pylex

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Scanner performs lexical analysis on Python source.
type Scanner struct {
	source []byte
	cursor int
	line   int
}

// NewScanner creates a new scanner for the given source.
func NewScanner(source []byte) *Scanner {
	return &Scanner{
		source: source,
		line:   1,
	}
}

// operators is ordered longest first so scanning is a longest match.
var operators = []string{
	"**=", "//=", ">>=", "<<=", "...",
	"**", "//", "<<", ">>", "<=", ">=", "==", "!=", "->", ":=",
	"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "@=",
}

// Next returns the next token from the source.
func (s *Scanner) Next() Token {
	s.skipWhitespace()

	if s.cursor >= len(s.source) {
		return Token{Kind: KindEOF, Offset: len(s.source), Line: s.line}
	}

	start := s.cursor
	ch := s.source[s.cursor]

	switch {
	case ch == '#':
		return s.scanComment()
	case ch == '"' || ch == '\'':
		return s.scanString(start)
	case isDigit(ch) || (ch == '.' && isDigit(s.peek())):
		return s.scanNumber()
	}

	if r, _ := utf8.DecodeRune(s.source[s.cursor:]); isIdentStart(r) {
		return s.scanName()
	}

	for _, op := range operators {
		if strings.HasPrefix(string(s.source[s.cursor:min(len(s.source), s.cursor+len(op))]), op) {
			s.cursor += len(op)
			return Token{Kind: KindOp, Offset: start, Length: len(op), Line: s.line}
		}
	}

	_, size := utf8.DecodeRune(s.source[s.cursor:])
	s.cursor += size

	return Token{Kind: KindOp, Offset: start, Length: size, Line: s.line}
}

func (s *Scanner) skipWhitespace() {
	for s.cursor < len(s.source) {
		switch s.source[s.cursor] {
		case ' ', '\t', '\r', '\f':
			s.cursor++
		case '\n':
			s.line++
			s.cursor++
		case '\\':
			// Explicit line joining.
			if s.peek() == '\n' {
				s.cursor += 2
				s.line++

				continue
			}

			if s.peek() == '\r' && s.cursor+2 < len(s.source) && s.source[s.cursor+2] == '\n' {
				s.cursor += 3
				s.line++

				continue
			}

			return
		default:
			return
		}
	}
}

func (s *Scanner) scanComment() Token {
	start := s.cursor
	for s.cursor < len(s.source) && s.source[s.cursor] != '\n' && s.source[s.cursor] != '\r' {
		s.cursor++
	}

	return Token{Kind: KindComment, Offset: start, Length: s.cursor - start, Line: s.line}
}

func (s *Scanner) scanName() Token {
	start := s.cursor
	for s.cursor < len(s.source) {
		r, size := utf8.DecodeRune(s.source[s.cursor:])
		if !isIdentPart(r) {
			break
		}

		s.cursor += size
	}

	if s.cursor < len(s.source) && (s.source[s.cursor] == '"' || s.source[s.cursor] == '\'') && isStringPrefix(s.source[start:s.cursor]) {
		return s.scanString(start)
	}

	return Token{Kind: KindName, Offset: start, Length: s.cursor - start, Line: s.line}
}

// scanString scans a string literal whose opening quote is at the cursor.
// start is the offset of the literal including any prefix.
func (s *Scanner) scanString(start int) Token {
	line := s.line
	quote := s.source[s.cursor]

	triple := s.cursor+2 < len(s.source) && s.source[s.cursor+1] == quote && s.source[s.cursor+2] == quote
	if triple {
		s.cursor += 3
	} else {
		s.cursor++
	}

	for s.cursor < len(s.source) {
		ch := s.source[s.cursor]

		switch {
		case ch == '\\':
			if s.peek() == '\n' {
				s.line++
			}

			s.cursor += 2

			continue
		case ch == '\n':
			if !triple {
				return Token{Kind: KindError, Offset: start, Length: s.cursor - start, Line: line}
			}

			s.line++
		case ch == quote:
			if !triple {
				s.cursor++
				return Token{Kind: KindString, Offset: start, Length: s.cursor - start, Line: line}
			}

			if s.cursor+2 < len(s.source) && s.source[s.cursor+1] == quote && s.source[s.cursor+2] == quote {
				s.cursor += 3
				return Token{Kind: KindString, Offset: start, Length: s.cursor - start, Line: line}
			}
		}

		s.cursor++
	}

	s.cursor = len(s.source)

	return Token{Kind: KindError, Offset: start, Length: s.cursor - start, Line: line}
}

func (s *Scanner) scanNumber() Token {
	start := s.cursor
	hex := s.cursor+1 < len(s.source) && s.source[s.cursor] == '0' && (s.source[s.cursor+1] == 'x' || s.source[s.cursor+1] == 'X')

	for s.cursor < len(s.source) {
		ch := s.source[s.cursor]

		if isDigit(ch) || isASCIILetter(ch) || ch == '_' || ch == '.' {
			s.cursor++
			continue
		}

		prev := s.source[s.cursor-1]
		if (ch == '+' || ch == '-') && (prev == 'e' || prev == 'E') && !hex {
			s.cursor++
			continue
		}

		break
	}

	return Token{Kind: KindNumber, Offset: start, Length: s.cursor - start, Line: s.line}
}

func (s *Scanner) peek() byte {
	if s.cursor+1 >= len(s.source) {
		return 0
	}

	return s.source[s.cursor+1]
}

// Tokenize scans the whole source. It fails on an unterminated string.
func Tokenize(source []byte) ([]Token, error) {
	scanner := NewScanner(source)

	var tokens []Token

	for {
		tok := scanner.Next()

		switch tok.Kind {
		case KindEOF:
			return tokens, nil
		case KindError:
			return nil, fmt.Errorf("line %d: unterminated string literal", tok.Line)
		}

		tokens = append(tokens, tok)
	}
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isASCIILetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Mc, r)
}

func isStringPrefix(prefix []byte) bool {
	switch strings.ToLower(string(prefix)) {
	case "r", "u", "b", "f", "br", "rb", "fr", "rf":
		return true
	}

	return false
}

// IsIdentifier reports whether name is a syntactically valid Python identifier.
func IsIdentifier(name string) bool {
	if name == "" {
		return false
	}

	for i, r := range name {
		if r == utf8.RuneError {
			return false
		}

		if i == 0 && !isIdentStart(r) {
			return false
		}

		if !isIdentPart(r) {
			return false
		}
	}

	return true
}
