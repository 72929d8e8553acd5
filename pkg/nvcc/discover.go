package nvcc

import (
	"context"

	"github.com/leptonai/cuda-archs/pkg/cudaarch"
	"github.com/leptonai/cuda-archs/pkg/errdefs"
	"github.com/leptonai/cuda-archs/pkg/log"
)

var _ cudaarch.Prober = &LocatingProber{}

// LocatingProber defers locating nvcc until the architectures are first
// requested, so that "native" requests never touch the toolchain.
type LocatingProber struct {
	explicitPath string
	opts         []OpOption

	path string
}

// NewLocatingProber creates a prober for the nvcc at explicitPath, or the
// one found by Locate when explicitPath is empty.
func NewLocatingProber(explicitPath string, opts ...OpOption) *LocatingProber {
	return &LocatingProber{
		explicitPath: explicitPath,
		opts:         opts,
	}
}

// Path returns the located nvcc path, or "" before SupportedArchs runs.
func (l *LocatingProber) Path() string {
	return l.path
}

func (l *LocatingProber) SupportedArchs(ctx context.Context) ([]string, error) {
	p, err := Locate(l.explicitPath)
	if err != nil {
		if l.explicitPath != "" {
			return nil, errdefs.Newf(errdefs.ErrNotFound, "Could not resolve nvcc path '%s': %w", l.explicitPath, err)
		}
		return nil, errdefs.Newf(
			errdefs.ErrNotFound,
			"Could not find 'nvcc' automatically. Please provide path via --nvcc-path or ensure it's in PATH or %s: %w",
			DefaultPath(), err,
		)
	}
	l.path = p
	log.Logger.Debugf("Using nvcc at: %s", p)

	return NewProber(p, l.opts...).SupportedArchs(ctx)
}
