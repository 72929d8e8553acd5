package cudaarch

import (
	"errors"
	"fmt"

	"github.com/leptonai/cuda-archs/pkg/errdefs"
)

// RejectReason names the constraint a requested architecture violated.
type RejectReason string

const (
	RejectUnsupported  RejectReason = "unsupported"
	RejectBelowMinArch RejectReason = "below-min-arch"
	RejectIGPU         RejectReason = "igpu"
)

// ValidationError is returned when a requested architecture is rejected.
// It unwraps to errdefs.ErrInvalidArgument.
type ValidationError struct {
	Arch   string
	Reason RejectReason
	// Valid is the platform-filtered list the user can pick from.
	Valid []string

	MinArch  int
	Platform string
}

func (e *ValidationError) Error() string {
	var msg string
	switch e.Reason {
	case RejectUnsupported:
		msg = fmt.Sprintf("Requested architecture '%s' is not supported by this version of nvcc.", e.Arch)
	case RejectBelowMinArch:
		msg = fmt.Sprintf("Requested architecture '%s' does not meet minimum requirement (sm_%d).", e.Arch, e.MinArch)
	case RejectIGPU:
		msg = fmt.Sprintf("Requested architecture '%s' corresponds to an iGPU not supported on this platform (%s).", e.Arch, e.Platform)
	default:
		msg = fmt.Sprintf("Requested architecture '%s' is invalid.", e.Arch)
	}
	return msg + " Valid architectures: " + Join(e.Valid)
}

func (e *ValidationError) Unwrap() error {
	return errdefs.ErrInvalidArgument
}

// IsValidationError returns the *ValidationError in err's chain, if any.
func IsValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if !errors.As(err, &verr) {
		return nil, false
	}
	return verr, true
}

var ErrEmptyRequest = errdefs.Newf(errdefs.ErrInvalidArgument, "Requested architecture list is empty.")

// archCheck is one layer of validation: an architecture must be in allowed,
// or it is rejected with reason.
type archCheck struct {
	allowed map[string]struct{}
	reason  RejectReason
}

// Validate checks each requested architecture against the nvcc supported
// list, the min-arch filtered list and the platform filtered list, in that
// order, and fails on the first violation. Accepted entries are returned
// as given.
func Validate(requested []string, supported []string, minFiltered []string, platformFiltered []string, opts Options) ([]string, error) {
	if len(requested) == 0 {
		return nil, ErrEmptyRequest
	}

	checks := []archCheck{
		{allowed: toSet(supported), reason: RejectUnsupported},
		{allowed: toSet(minFiltered), reason: RejectBelowMinArch},
		{allowed: toSet(platformFiltered), reason: RejectIGPU},
	}

	validated := make([]string, 0, len(requested))
	for _, arch := range requested {
		for _, c := range checks {
			if _, ok := c.allowed[arch]; ok {
				continue
			}
			return nil, &ValidationError{
				Arch:     arch,
				Reason:   c.reason,
				Valid:    append([]string{}, platformFiltered...),
				MinArch:  opts.MinArch,
				Platform: opts.Platform,
			}
		}
		validated = append(validated, arch)
	}
	return validated, nil
}
