package cudaarch

import (
	"context"
	"strings"

	"github.com/leptonai/cuda-archs/pkg/errdefs"
	"github.com/leptonai/cuda-archs/pkg/log"
)

// Options are the filters applied to the architectures nvcc supports.
type Options struct {
	// MinArch is the minimum numeric architecture to keep (e.g., 70 for Volta+).
	// Set to 0 to disable.
	MinArch int
	// Platform is the machine name, e.g., "x86_64" or "aarch64".
	Platform string
}

// Prober reports the architectures the toolchain can generate code for,
// sorted by Less.
type Prober interface {
	SupportedArchs(ctx context.Context) ([]string, error)
}

// Stages holds the output of each filter, in application order.
type Stages struct {
	Supported        []string `json:"supported"`
	MinFiltered      []string `json:"min_filtered"`
	PlatformFiltered []string `json:"platform_filtered"`
}

// ApplyFilters runs the min-arch and platform filters over supported.
func ApplyFilters(supported []string, opts Options) Stages {
	minFiltered := FilterMinArch(supported, opts.MinArch)
	return Stages{
		Supported:        supported,
		MinFiltered:      minFiltered,
		PlatformFiltered: FilterForPlatform(minFiltered, opts.Platform),
	}
}

// Select returns the target architectures for a non-native request.
func Select(req Request, stages Stages, opts Options) ([]string, error) {
	var targets []string
	switch req.Kind {
	case RequestAll:
		targets = append([]string{}, stages.PlatformFiltered...)
		log.Logger.Debugf("Using platform supported cuda architectures: %s", strings.Join(targets, ", "))

	case RequestAllMajor:
		targets = FilterMajor(stages.PlatformFiltered)

	case RequestExplicit:
		var err error
		targets, err = Validate(req.Archs, stages.Supported, stages.MinFiltered, stages.PlatformFiltered, opts)
		if err != nil {
			return nil, err
		}

	default:
		return nil, errdefs.Newf(errdefs.ErrInvalidArgument, "Unexpected request kind %q for request '%s'.", req.Kind, req.Raw)
	}

	if len(targets) == 0 {
		return nil, errdefs.Newf(
			errdefs.ErrFailedPrecondition,
			"No valid CUDA architectures could be determined for request '%s' with current filters (min_arch=%d, platform=%s).",
			req.Raw, opts.MinArch, opts.Platform,
		)
	}
	return targets, nil
}

// Resolve turns the requested_archs argument into the CMake
// CUDA_ARCHITECTURES value, e.g., "75-real;86-real;90-real;90-virtual".
//
// "native" is returned as-is without calling the prober.
func Resolve(ctx context.Context, raw string, prober Prober, opts Options) (string, error) {
	log.Logger.Debugf("Requested CUDA architectures: %s", raw)

	req := ParseRequest(raw)
	if req.Kind == RequestNative {
		return string(RequestNative), nil
	}
	if req.Kind == RequestExplicit && len(req.Archs) == 0 {
		return "", ErrEmptyRequest
	}

	supported, err := prober.SupportedArchs(ctx)
	if err != nil {
		return "", err
	}

	targets, err := Select(req, ApplyFilters(supported, opts), opts)
	if err != nil {
		return "", err
	}

	final, err := GenerateTargets(targets)
	if err != nil {
		return "", err
	}

	out := FormatTargets(final)
	log.Logger.Debugf("Selected CUDA architectures: %s", out)
	return out, nil
}
