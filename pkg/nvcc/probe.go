package nvcc

import (
	"bufio"
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/leptonai/cuda-archs/pkg/cudaarch"
	"github.com/leptonai/cuda-archs/pkg/errdefs"
	"github.com/leptonai/cuda-archs/pkg/log"
)

// CodeListFlag makes nvcc print one supported code target per line
// (e.g., "compute_90", "sm_90", "sm_90a").
const CodeListFlag = "-code-ls"

type OpOption func(*Op)

type Op struct {
	runner Runner
}

func (op *Op) applyOpts(opts []OpOption) {
	for _, opt := range opts {
		opt(op)
	}
	if op.runner == nil {
		op.runner = ExecRunner{}
	}
}

// WithRunner overrides how the nvcc process is run.
func WithRunner(r Runner) OpOption {
	return func(op *Op) {
		op.runner = r
	}
}

var _ cudaarch.Prober = &Prober{}

// Prober queries one nvcc binary for its supported architectures.
type Prober struct {
	path   string
	runner Runner
}

func NewProber(path string, opts ...OpOption) *Prober {
	op := &Op{}
	op.applyOpts(opts)
	return &Prober{
		path:   path,
		runner: op.runner,
	}
}

// Path returns the nvcc path the prober runs.
func (p *Prober) Path() string {
	return p.path
}

// SupportedArchs runs "nvcc -code-ls" and returns the "sm_*" targets
// without the prefix, sorted with cudaarch.Less.
func (p *Prober) SupportedArchs(ctx context.Context) ([]string, error) {
	stdout, stderr, err := p.runner.Run(ctx, p.path, CodeListFlag)
	if err != nil {
		var exitErr exitCoder
		if errors.As(err, &exitErr) {
			return nil, errdefs.Newf(
				errdefs.ErrUnavailable,
				"Command '%s %s' failed:\n%s",
				p.path, CodeListFlag, strings.TrimSpace(string(stderr)),
			)
		}
		return nil, errdefs.Newf(errdefs.ErrNotFound, "nvcc command '%s' not found or not executable.", p.path)
	}

	archs, err := ParseCodeList(string(stdout))
	if err != nil {
		return nil, errdefs.Newf(errdefs.ErrUnavailable, "Failed to read 'nvcc %s' output: %w", CodeListFlag, err)
	}
	if len(archs) == 0 {
		return nil, errdefs.Newf(errdefs.ErrUnavailable, "Could not parse any architectures (sm_XX) from 'nvcc %s' output.", CodeListFlag)
	}

	log.Logger.Debugf("nvcc supported archs: %s", strings.Join(archs, ", "))
	return archs, nil
}

// exitCoder matches errors that carry a process exit code,
// such as *exec.ExitError.
type exitCoder interface {
	ExitCode() int
}

var smLineRegex = regexp.MustCompile(`^sm_(\d+[A-Za-z]?)$`)

// ParseCodeList extracts the architectures from "nvcc -code-ls" output.
// Lines other than "sm_<digits>[letter]" are ignored. An error is returned
// if the output cannot be scanned to the end (e.g., a line over 64 KiB).
//
// e.g.,
//
//	compute_90
//	sm_90
//	sm_90a
func ParseCodeList(out string) ([]string, error) {
	archs := make([]string, 0)
	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		m := smLineRegex.FindStringSubmatch(strings.TrimSpace(scanner.Text()))
		if len(m) != 2 {
			continue
		}
		archs = append(archs, m[1])
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return cudaarch.Sort(cudaarch.Unique(archs)), nil
}
