// Package cudaarch selects, validates and formats CUDA architecture
// targets for CMake's CUDA_ARCHITECTURES variable.
//
// An architecture identifier is the part after "sm_" in nvcc's
// "-code-ls" output, e.g., "90" or "90a": a numeric version optionally
// followed by a single variant letter.
package cudaarch

import (
	"sort"
	"strconv"
	"strings"
)

// NumericPrefix returns the leading decimal digits of arch as an integer.
// Returns 0 if arch does not start with a digit.
func NumericPrefix(arch string) int {
	end := 0
	for end < len(arch) && arch[end] >= '0' && arch[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.Atoi(arch[:end])
	if err != nil {
		return 0
	}
	return n
}

// HasVariantSuffix returns true if arch ends in a letter
// (e.g., "90a" for the architecture-specific feature set).
func HasVariantSuffix(arch string) bool {
	if arch == "" {
		return false
	}
	c := arch[len(arch)-1]
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// Less orders by numeric prefix first and by the full string second,
// so "90" < "90a" < "100" < "100a".
func Less(a, b string) bool {
	na, nb := NumericPrefix(a), NumericPrefix(b)
	if na != nb {
		return na < nb
	}
	return a < b
}

// Sort returns a sorted copy of archs.
func Sort(archs []string) []string {
	sorted := make([]string, len(archs))
	copy(sorted, archs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return Less(sorted[i], sorted[j])
	})
	return sorted
}

// Unique returns archs with later duplicates removed, keeping the first
// occurrence order.
func Unique(archs []string) []string {
	seen := make(map[string]struct{}, len(archs))
	uniq := make([]string, 0, len(archs))
	for _, a := range archs {
		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		uniq = append(uniq, a)
	}
	return uniq
}

// Join renders archs for log and error messages.
// Returns "<None>" for an empty list.
func Join(archs []string) string {
	if len(archs) == 0 {
		return "<None>"
	}
	return strings.Join(archs, ", ")
}

func toSet(archs []string) map[string]struct{} {
	set := make(map[string]struct{}, len(archs))
	for _, a := range archs {
		set[a] = struct{}{}
	}
	return set
}
