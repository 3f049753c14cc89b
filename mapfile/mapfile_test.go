package mapfile

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skdltmxn/bcc-demangle/demangle"
)

const sampleMap = `
 Start         Length     Name                   Class
 0001:00401000 000012345H _TEXT                  CODE
 0002:00414000 000001234H _DATA                  DATA

  Address         Publics by Name

 0001:00000254       @Sysutils@IntToStr$qqri
 0001:00000010       @foo$qpc
 0002:00000000       _main

  Address         Publics by Value

 0001:00000010       @foo$qpc
 0001:00000254       @Sysutils@IntToStr$qqri
 0002:00000000       _main

Program entry point at 0001:00000000
`

func symbolNames(f *File) []string {
	var names []string
	for sym := range f.Symbols() {
		names = append(names, sym.Name())
	}
	return names
}

func TestParseMapFile(t *testing.T) {
	f, err := Parse(strings.NewReader(sampleMap))
	require.NoError(t, err)

	assert.Equal(t, 3, f.Len())
	assert.Equal(t, []string{"@Sysutils@IntToStr$qqri", "@foo$qpc", "_main"}, symbolNames(f))
	assert.Equal(t, f.Names(), symbolNames(f))
}

func TestParseSymbolList(t *testing.T) {
	f, err := Parse(strings.NewReader("@foo$qv\n\n  @bar$qi  \n@foo$qv\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"@foo$qv", "@bar$qi"}, symbolNames(f))

	sym := slices.Collect(f.ByName("@bar$qi"))
	require.Len(t, sym, 1)
	_, ok := sym[0].Address()
	assert.False(t, ok)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrNoSymbols)

	_, err = Parse(strings.NewReader("Address Publics by Name\n"))
	assert.ErrorIs(t, err, ErrNoSymbols)

	_, err = Parse(strings.NewReader("@ok$qv\n 00zz:00000000 @foo$qv\n"))
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 2, perr.Line)
	assert.ErrorIs(t, err, ErrInvalidAddress)
}

func TestByAddress(t *testing.T) {
	f, err := Parse(strings.NewReader(sampleMap))
	require.NoError(t, err)

	addr, err := ParseAddress("0001:00000254")
	require.NoError(t, err)

	syms := slices.Collect(f.ByAddress(addr))
	require.Len(t, syms, 1)
	assert.Equal(t, "@Sysutils@IntToStr$qqri", syms[0].Name())

	got, ok := syms[0].Address()
	assert.True(t, ok)
	assert.Equal(t, "0001:00000254", got.String())

	assert.Empty(t, slices.Collect(f.ByAddress(Address{Section: 9})))
}

func TestByNameEarlyStop(t *testing.T) {
	f, err := Parse(strings.NewReader(" 0001:00000000 @foo$qv\n 0001:00000004 @foo$qv\n"))
	require.NoError(t, err)

	count := 0
	for range f.ByName("@foo$qv") {
		count++
		break
	}
	assert.Equal(t, 1, count)
	assert.Len(t, slices.Collect(f.ByName("@foo$qv")), 2)
}

func TestParseAddress(t *testing.T) {
	addr, err := ParseAddress("0002:0000ABCD")
	require.NoError(t, err)
	assert.Equal(t, Address{Section: 2, Offset: 0xABCD}, addr)

	for _, bad := range []string{"", "0001", ":0001", "0001:", "zz:00", "10000:00", "0001:100000000"} {
		_, err := ParseAddress(bad)
		assert.ErrorIs(t, err, ErrInvalidAddress, bad)
	}
}

func TestSymbolDemangledName(t *testing.T) {
	f, err := Parse(strings.NewReader("@Sysutils@IntToStr$qqri\n_main\n@bad$q0\n"))
	require.NoError(t, err)

	syms := slices.Collect(f.Symbols())
	require.Len(t, syms, 3)

	assert.True(t, syms[0].IsMangled())
	assert.Equal(t, "__fastcall Sysutils::IntToStr(int)", syms[0].DemangledName())
	assert.NoError(t, syms[0].DemangleErr())

	assert.False(t, syms[1].IsMangled())
	assert.Equal(t, "_main", syms[1].DemangledName())
	assert.NoError(t, syms[1].DemangleErr())

	assert.Equal(t, "@bad$q0", syms[2].DemangledName())
	assert.ErrorIs(t, syms[2].DemangleErr(), demangle.ErrInvalidMangledName)
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.map")
	require.NoError(t, os.WriteFile(path, []byte(sampleMap), 0o644))

	f, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, 3, f.Len())

	_, err = Open(filepath.Join(t.TempDir(), "missing.map"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
