package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMap = `
  Address         Publics by Name

 0001:00000254       @Sysutils@IntToStr$qqri
 0001:00000010       @foo$qpc
 0002:00000000       _main
 0002:00000008       @bad$q0

  Address         Publics by Value

 0001:00000010       @foo$qpc
 0001:00000254       @Sysutils@IntToStr$qqri
`

// execute runs the root command with args and returns what it wrote.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out, errOut bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDemangleArgs(t *testing.T) {
	out, err := execute(t, "", "demangle", "@Sysutils@IntToStr$qqri", "_main", "@foo$qxi")
	require.NoError(t, err)
	assert.Equal(t, "__fastcall Sysutils::IntToStr(int)\n_main\nfoo(const int)\n", out)
}

func TestDemangleStdin(t *testing.T) {
	out, err := execute(t, "@foo$qpc\n\n  @bar$qv  \n", "demangle")
	require.NoError(t, err)
	assert.Equal(t, "foo(char *)\nbar(void)\n", out)
}

func TestDemangleStrict(t *testing.T) {
	_, err := execute(t, "", "demangle", "--strict", "@foo$qv", "@bad$q0")
	assert.Error(t, err)
}

func TestDemangleStrictFromConfig(t *testing.T) {
	conf := writeFile(t, "config.toml", "strict = true\n")

	_, err := execute(t, "", "--config", conf, "demangle", "@bad$q0")
	assert.Error(t, err)

	out, err := execute(t, "", "--config", conf, "demangle", "--strict=false", "@bad$q0")
	require.NoError(t, err)
	assert.Equal(t, "@bad$q0\n", out)
}

func TestOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	out, err := execute(t, "", "-o", path, "demangle", "@foo$qv")
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "foo(void)\n", string(data))
}

func TestDumpText(t *testing.T) {
	out, err := execute(t, "", "dump", "@foo$qpc")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.NotEmpty(t, lines)
	assert.Equal(t, "foo(char *)", lines[0])
	assert.Contains(t, out, "Function")
	assert.Contains(t, out, "PointerType")
}

func TestDumpFormats(t *testing.T) {
	out, err := execute(t, "", "dump", "--format", "json", "@foo$qv")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "{"))
	assert.Contains(t, out, `"kind": "Function"`)

	out, err = execute(t, "", "dump", "-f", "yaml", "@foo$qv")
	require.NoError(t, err)
	assert.Contains(t, out, "kind: Function")

	_, err = execute(t, "", "dump", "-f", "xml", "@foo$qv")
	assert.Error(t, err)

	_, err = execute(t, "", "dump", "_main")
	assert.Error(t, err)
}

func TestBatch(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "app.map"), []byte(testMap), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "list.map"), []byte("@foo$qv\n"), 0o644))

	out, err := execute(t, "", "batch", "--workers", "2", filepath.Join(dir, "**", "*.map"))
	require.NoError(t, err)

	assert.Contains(t, out, "@Sysutils@IntToStr$qqri\t__fastcall Sysutils::IntToStr(int)\n")
	assert.Contains(t, out, "@foo$qv\tfoo(void)\n")
	assert.Contains(t, out, "_main\t_main\n")
	assert.Contains(t, out, "@bad$q0\t@bad$q0\n")

	out, err = execute(t, "", "batch", "-m", filepath.Join(sub, "*.map"))
	require.NoError(t, err)
	assert.NotContains(t, out, "_main")
	assert.Equal(t, 3, strings.Count(out, "\n"))

	_, err = execute(t, "", "batch", filepath.Join(dir, "*.none"))
	assert.Error(t, err)
}

func TestLookup(t *testing.T) {
	path := writeFile(t, "app.map", testMap)

	out, err := execute(t, "", "lookup", path, "0001:00000254")
	require.NoError(t, err)
	assert.Contains(t, out, "Name: @Sysutils@IntToStr$qqri")
	assert.Contains(t, out, "Address: 0001:00000254")

	out, err = execute(t, "", "lookup", path, "IntToStr")
	require.NoError(t, err)
	assert.Contains(t, out, "Demangled: __fastcall Sysutils::IntToStr(int)")
	assert.Contains(t, out, "Found 1 symbol(s)")

	out, err = execute(t, "", "lookup", path, "nothing_like_this")
	require.NoError(t, err)
	assert.Contains(t, out, "No symbols found")

	out, err = execute(t, "", "lookup", "--fuzzy", path, "foo(char *)")
	require.NoError(t, err)
	assert.Contains(t, out, "Score: 1.000")
	assert.Contains(t, out, "Name: @foo$qpc")
}

func TestInfo(t *testing.T) {
	path := writeFile(t, "app.map", testMap)

	out, err := execute(t, "", "info", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Symbols: 4\n")
	assert.Contains(t, out, "Mangled: 3\n")
	assert.Contains(t, out, "Demangled: 2\n")
	assert.Contains(t, out, "Failed: 1\n")
}
