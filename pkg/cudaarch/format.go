package cudaarch

import (
	"strings"

	"github.com/leptonai/cuda-archs/pkg/errdefs"
)

var ErrEmptyTargets = errdefs.Newf(errdefs.ErrInvalidArgument, "Cannot generate SASS/PTX list from empty target architectures.")

// GenerateTargets sorts the architectures and returns one "<arch>-real"
// (SASS) entry per architecture followed by a single "<arch>-virtual"
// (PTX) entry.
//
// The PTX entry uses the highest architecture without a variant suffix.
// If every architecture has a suffix, the highest one is used.
func GenerateTargets(archs []string) ([]string, error) {
	if len(archs) == 0 {
		return nil, ErrEmptyTargets
	}

	sorted := Sort(Unique(archs))

	ptxBase := ""
	for i := len(sorted) - 1; i >= 0; i-- {
		if !HasVariantSuffix(sorted[i]) {
			ptxBase = sorted[i]
			break
		}
	}
	if ptxBase == "" {
		ptxBase = sorted[len(sorted)-1]
	}

	targets := make([]string, 0, len(sorted)+1)
	for _, a := range sorted {
		targets = append(targets, a+"-real")
	}
	targets = append(targets, ptxBase+"-virtual")
	return targets, nil
}

// FormatTargets joins the targets with ";" for CMake.
func FormatTargets(targets []string) string {
	return strings.Join(targets, ";")
}
