package batch

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/skdltmxn/bcc-demangle/demangle"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestRun(t *testing.T) {
	names := []string{
		"@Sysutils@IntToStr$qqri",
		"_main",
		"@foo$qpc",
		"@bad$q0",
	}

	results, err := Run(context.Background(), names, Options{Workers: 2})
	require.NoError(t, err)
	require.Len(t, results, len(names))

	assert.Equal(t, "__fastcall Sysutils::IntToStr(int)", results[0].Demangled)
	assert.NoError(t, results[0].Err)

	assert.Equal(t, "_main", results[1].Demangled)
	assert.ErrorIs(t, results[1].Err, demangle.ErrInvalidMangledName)

	assert.Equal(t, "foo(char *)", results[2].Demangled)

	assert.Equal(t, "@bad$q0", results[3].Demangled)
	assert.ErrorIs(t, results[3].Err, demangle.ErrInvalidMangledName)

	for i, r := range results {
		assert.Equal(t, names[i], r.Mangled)
	}
}

func TestRunMatchesSequential(t *testing.T) {
	var names []string
	for i := range 500 {
		names = append(names, fmt.Sprintf("@ns%d@f$qpi%dcls", i%7, 3))
	}

	for _, opts := range []Options{{Workers: 1}, {Workers: 8}, {Workers: 4, DisableInterning: true}, {}} {
		results, err := Run(context.Background(), names, opts)
		require.NoError(t, err)
		for i, r := range results {
			want, werr := demangle.Demangle(names[i])
			require.NoError(t, werr)
			assert.Equal(t, want, r.Demangled)
		}
	}
}

func TestRunEmpty(t *testing.T) {
	results, err := Run(context.Background(), nil, Options{})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	names := make([]string, 1000)
	for i := range names {
		names[i] = "@foo$qv"
	}

	results, err := Run(ctx, names, Options{Workers: 4})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, results)
}
