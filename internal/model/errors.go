package model

import (
	"errors"
	"fmt"
)

// ErrUnsupportedLanguage is returned when no dialect handles a source.
var ErrUnsupportedLanguage = errors.New("unsupported source language")

// ParseError reports source that does not parse. Err carries the parser's message unchanged.
type ParseError struct {
	Path Path
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("parse error: %v", e.Err)
	}

	return fmt.Sprintf("parse error in %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// UnsupportedSyntaxError reports Python source the parser rejected because it
// uses a construct newer than the parser's grammar, such as an f-string or an
// annotated assignment. The source itself may well be valid.
type UnsupportedSyntaxError struct {
	Path      Path
	Line      int
	Construct string
	Err       error
}

func (e *UnsupportedSyntaxError) Error() string {
	return fmt.Sprintf("unsupported syntax in %s:%d: %s is not supported by the Python parser", e.Path, e.Line, e.Construct)
}

func (e *UnsupportedSyntaxError) Unwrap() error { return e.Err }

// UnresolvedImportError reports an import whose members could not be enumerated.
type UnresolvedImportError struct {
	Module string
	Err    error
}

func (e *UnresolvedImportError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("cannot resolve import %q", e.Module)
	}

	return fmt.Sprintf("cannot resolve import %q: %v", e.Module, e.Err)
}

func (e *UnresolvedImportError) Unwrap() error { return e.Err }

// CapacityError reports that the requested name length cannot produce enough
// unique names for the discovered identifiers.
type CapacityError struct {
	Complexity int
	Needed     int
	Available  int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf(
		"complexity %d cannot name %d identifiers (%d usable names); increase complexity",
		e.Complexity, e.Needed, e.Available,
	)
}

// FileIOError reports an unreadable input or unwritable output.
type FileIOError struct {
	Op   string
	Path Path
	Err  error
}

func (e *FileIOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileIOError) Unwrap() error { return e.Err }
