package mapfile

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"os"
	"strings"
)

// File holds the public symbols read from a map file or symbol list.
type File struct {
	symbols []*Symbol
	byName  map[string][]*Symbol
	byAddr  map[Address][]*Symbol
}

// Open reads a map file from the given path.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mapfile: failed to open file: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads symbols from r. Lines of the form "SSSS:OOOOOOOO name", as
// found in the "Publics by Name" and "Publics by Value" sections, yield
// symbols with an address. Lines holding a single word yield symbols
// without one. Every other line is ignored. A symbol listed in both
// publics sections is returned once.
func Parse(r io.Reader) (*File, error) {
	f := &File{
		byName: make(map[string][]*Symbol),
		byAddr: make(map[Address][]*Symbol),
	}

	type key struct {
		name string
		addr Address
		ok   bool
	}
	seen := make(map[key]bool)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())

		var sym *Symbol
		switch {
		case len(fields) == 1:
			sym = &Symbol{name: fields[0]}
		case len(fields) == 2 && strings.Contains(fields[0], ":"):
			addr, err := ParseAddress(fields[0])
			if err != nil {
				return nil, &ParseError{Line: line, Message: "bad publics entry", Err: err}
			}
			sym = &Symbol{name: fields[1], addr: addr, hasAddr: true}
		default:
			continue
		}

		k := key{name: sym.name, addr: sym.addr, ok: sym.hasAddr}
		if seen[k] {
			continue
		}
		seen[k] = true
		f.add(sym)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("mapfile: failed to read input: %w", err)
	}

	if len(f.symbols) == 0 {
		return nil, ErrNoSymbols
	}
	return f, nil
}

func (f *File) add(sym *Symbol) {
	f.symbols = append(f.symbols, sym)
	f.byName[sym.name] = append(f.byName[sym.name], sym)
	if sym.hasAddr {
		f.byAddr[sym.addr] = append(f.byAddr[sym.addr], sym)
	}
}

// Len returns the number of symbols.
func (f *File) Len() int { return len(f.symbols) }

// Symbols returns an iterator over all symbols in input order.
func (f *File) Symbols() iter.Seq[*Symbol] {
	return func(yield func(*Symbol) bool) {
		for _, sym := range f.symbols {
			if !yield(sym) {
				return
			}
		}
	}
}

// Names returns the raw names of all symbols in input order.
func (f *File) Names() []string {
	names := make([]string, len(f.symbols))
	for i, sym := range f.symbols {
		names[i] = sym.name
	}
	return names
}

// ByName looks up symbols by their raw (possibly mangled) name.
func (f *File) ByName(name string) iter.Seq[*Symbol] {
	return yieldAll(f.byName[name])
}

// ByAddress looks up symbols at the given address.
func (f *File) ByAddress(addr Address) iter.Seq[*Symbol] {
	return yieldAll(f.byAddr[addr])
}

func yieldAll(syms []*Symbol) iter.Seq[*Symbol] {
	return func(yield func(*Symbol) bool) {
		for _, sym := range syms {
			if !yield(sym) {
				return
			}
		}
	}
}
