package demangle

import (
	"errors"
	"fmt"
)

// ErrInvalidMangledName is the single error kind reported by the parser.
// Every grammar violation wraps it.
var ErrInvalidMangledName = errors.New("demangle: invalid mangled name")

// ParseError provides detailed information about parsing failures.
type ParseError struct {
	Input   string // Mangled name being parsed
	Offset  int    // Byte offset where the violation was detected
	Rule    string // Grammar rule that failed
	Message string // Description of the error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("demangle: invalid mangled name %q at offset %d (%s): %s",
		e.Input, e.Offset, e.Rule, e.Message)
}

func (e *ParseError) Unwrap() error { return ErrInvalidMangledName }
