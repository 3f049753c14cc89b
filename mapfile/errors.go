// Package mapfile reads public symbols from Borland linker map files.
package mapfile

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions.
var (
	// ErrNoSymbols indicates the input contained no symbols.
	ErrNoSymbols = errors.New("mapfile: no symbols found")

	// ErrInvalidAddress indicates a malformed SSSS:OOOOOOOO address.
	ErrInvalidAddress = errors.New("mapfile: invalid address")
)

// ParseError provides detailed information about parsing failures.
type ParseError struct {
	Line    int    // 1-based line number
	Message string // Description of the error
	Err     error  // Underlying error, if any
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("mapfile: parse error at line %d: %s: %v", e.Line, e.Message, e.Err)
	}
	return fmt.Sprintf("mapfile: parse error at line %d: %s", e.Line, e.Message)
}

func (e *ParseError) Unwrap() error { return e.Err }
