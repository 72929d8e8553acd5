package nvcc

import (
	"bufio"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leptonai/cuda-archs/pkg/errdefs"
)

// e.g., nvcc 12.8 "-code-ls" output, trimmed
const codeListOutput = `compute_75
compute_80
compute_90
compute_90a
compute_100
sm_75
sm_80
sm_86
sm_87
sm_90
sm_90a
sm_100
sm_100a
sm_101
sm_101a
lto_90
`

type fakeRunner struct {
	stdout string
	stderr string
	err    error

	gotName string
	gotArgs []string
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	f.gotName = name
	f.gotArgs = args
	return []byte(f.stdout), []byte(f.stderr), f.err
}

type fakeExitError struct {
	code int
}

func (e *fakeExitError) Error() string { return "exit status 1" }
func (e *fakeExitError) ExitCode() int { return e.code }

func TestParseCodeList(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "nvcc output",
			input:    codeListOutput,
			expected: []string{"75", "80", "86", "87", "90", "90a", "100", "100a", "101", "101a"},
		},
		{
			name:     "unsorted with duplicates and whitespace",
			input:    "  sm_90a\nsm_120\n\nsm_90\r\nsm_90\n\tsm_75  \n",
			expected: []string{"75", "90", "90a", "120"},
		},
		{
			name:     "malformed sm lines ignored",
			input:    "sm_\nsm_abc\nsm_90ab\nxsm_90\nsm_86\n",
			expected: []string{"86"},
		},
		{
			name:     "no sm lines",
			input:    "compute_90\nnvcc warning : something\n",
			expected: []string{},
		},
		{
			name:     "empty",
			input:    "",
			expected: []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCodeList(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseCodeListLongLine(t *testing.T) {
	out := "sm_75\n" + strings.Repeat("x", 70*1024) + "\nsm_90\n"

	got, err := ParseCodeList(out)
	require.ErrorIs(t, err, bufio.ErrTooLong)
	assert.Nil(t, got)
}

func TestSupportedArchsUnreadableOutput(t *testing.T) {
	r := &fakeRunner{stdout: "sm_75\n" + strings.Repeat("x", 70*1024) + "\nsm_90\n"}
	p := NewProber("/opt/cuda/bin/nvcc", WithRunner(r))

	_, err := p.SupportedArchs(context.Background())
	require.Error(t, err)
	assert.True(t, errdefs.IsUnavailable(err))
	assert.ErrorIs(t, err, bufio.ErrTooLong)
	assert.Contains(t, err.Error(), "Failed to read 'nvcc -code-ls' output")
}

func TestSupportedArchs(t *testing.T) {
	r := &fakeRunner{stdout: codeListOutput}
	p := NewProber("/usr/local/cuda/bin/nvcc", WithRunner(r))

	archs, err := p.SupportedArchs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"75", "80", "86", "87", "90", "90a", "100", "100a", "101", "101a"}, archs)
	assert.Equal(t, "/usr/local/cuda/bin/nvcc", r.gotName)
	assert.Equal(t, []string{"-code-ls"}, r.gotArgs)
	assert.Equal(t, "/usr/local/cuda/bin/nvcc", p.Path())
}

func TestSupportedArchsNonZeroExit(t *testing.T) {
	r := &fakeRunner{
		stderr: "nvcc fatal   : Unknown option '-code-ls'\n",
		err:    &fakeExitError{code: 1},
	}
	p := NewProber("/opt/cuda/bin/nvcc", WithRunner(r))

	_, err := p.SupportedArchs(context.Background())
	require.Error(t, err)
	assert.True(t, errdefs.IsUnavailable(err))
	assert.Equal(t, "Command '/opt/cuda/bin/nvcc -code-ls' failed:\nnvcc fatal   : Unknown option '-code-ls'", err.Error())
}

func TestSupportedArchsNotExecutable(t *testing.T) {
	r := &fakeRunner{err: &exec.Error{Name: "/missing/nvcc", Err: exec.ErrNotFound}}
	p := NewProber("/missing/nvcc", WithRunner(r))

	_, err := p.SupportedArchs(context.Background())
	require.Error(t, err)
	assert.True(t, errdefs.IsNotFound(err))
	assert.Equal(t, "nvcc command '/missing/nvcc' not found or not executable.", err.Error())
}

func TestSupportedArchsNothingParsed(t *testing.T) {
	r := &fakeRunner{stdout: "compute_90\n"}
	p := NewProber("nvcc", WithRunner(r))

	_, err := p.SupportedArchs(context.Background())
	require.Error(t, err)
	assert.True(t, errdefs.IsUnavailable(err))
	assert.Equal(t, "Could not parse any architectures (sm_XX) from 'nvcc -code-ls' output.", err.Error())
}

func TestDefaultRunner(t *testing.T) {
	p := NewProber("nvcc")
	_, ok := p.runner.(ExecRunner)
	assert.True(t, ok)
}

func writeScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts not supported on windows")
	}
	p := filepath.Join(t.TempDir(), "nvcc")
	require.NoError(t, os.WriteFile(p, []byte("#!/bin/sh\n"+body), 0o755))
	return p
}

func TestExecRunner(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		script := writeScript(t, `[ "$1" = "-code-ls" ] || exit 2
printf 'compute_80\nsm_80\nsm_90a\nsm_90\n'
`)
		archs, err := NewProber(script).SupportedArchs(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"80", "90", "90a"}, archs)
	})

	t.Run("non-zero exit", func(t *testing.T) {
		script := writeScript(t, "echo 'boom' >&2\nexit 3\n")
		_, err := NewProber(script).SupportedArchs(context.Background())
		require.Error(t, err)
		assert.True(t, errdefs.IsUnavailable(err))
		assert.Contains(t, err.Error(), "failed:\nboom")
	})

	t.Run("missing binary", func(t *testing.T) {
		missing := filepath.Join(t.TempDir(), "does-not-exist")
		_, err := NewProber(missing).SupportedArchs(context.Background())
		require.Error(t, err)
		assert.True(t, errdefs.IsNotFound(err))
	})

	t.Run("not executable", func(t *testing.T) {
		p := filepath.Join(t.TempDir(), "nvcc")
		require.NoError(t, os.WriteFile(p, []byte("sm_90\n"), 0o644))
		_, err := NewProber(p).SupportedArchs(context.Background())
		require.Error(t, err)
		assert.True(t, errdefs.IsNotFound(err))
		assert.False(t, errors.Is(err, errdefs.ErrUnavailable))
	})
}
