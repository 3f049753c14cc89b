package mapfile

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/skdltmxn/bcc-demangle/demangle"
)

// Address is a segment:offset pair as printed by the linker.
type Address struct {
	Section uint16
	Offset  uint32
}

// ParseAddress parses an address of the form SSSS:OOOOOOOO (hex).
func ParseAddress(s string) (Address, error) {
	section, offset, ok := strings.Cut(s, ":")
	if !ok || section == "" || offset == "" {
		return Address{}, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}

	sec, err := strconv.ParseUint(section, 16, 16)
	if err != nil {
		return Address{}, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}
	off, err := strconv.ParseUint(offset, 16, 32)
	if err != nil {
		return Address{}, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}

	return Address{Section: uint16(sec), Offset: uint32(off)}, nil
}

func (a Address) String() string {
	return fmt.Sprintf("%04X:%08X", a.Section, a.Offset)
}

// Symbol is one public symbol. The demangled name is computed on first
// use.
type Symbol struct {
	name        string
	addr        Address
	hasAddr     bool
	demangled   string
	demangleErr error
	once        sync.Once
}

// Name returns the raw (possibly mangled) symbol name.
func (s *Symbol) Name() string { return s.name }

// Address returns the symbol address and whether the input had one.
func (s *Symbol) Address() (Address, bool) { return s.addr, s.hasAddr }

// IsMangled reports whether the name uses Borland C++ mangling.
func (s *Symbol) IsMangled() bool { return demangle.IsMangled(s.name) }

// DemangledName returns the demangled name, or the raw name if it is not
// mangled or cannot be demangled.
func (s *Symbol) DemangledName() string {
	s.demangle()
	return s.demangled
}

// DemangleErr returns the error from demangling a mangled name, if any.
func (s *Symbol) DemangleErr() error {
	s.demangle()
	return s.demangleErr
}

func (s *Symbol) demangle() {
	s.once.Do(func() {
		if !s.IsMangled() {
			s.demangled = s.name
			return
		}
		s.demangled, s.demangleErr = demangle.Demangle(s.name)
	})
}
