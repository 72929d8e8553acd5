package cudaarch

import (
	"regexp"
	"strings"

	"github.com/leptonai/cuda-archs/pkg/log"
)

// IGPUArchs lists the integrated/embedded GPU architectures that cannot be
// present on an x86_64 desktop or server, so building for them only costs
// compile time. Update this table when new Jetson/Tegra parts ship.
var IGPUArchs = map[string]string{
	"72":   "Xavier",
	"87":   "Orin",
	"101":  "Thor",
	"101a": "Thor",
}

// desktopPlatforms are the machine names (as reported by "uname -m" or
// GOARCH) on which IGPUArchs are removed.
var desktopPlatforms = map[string]struct{}{
	"x86_64": {},
	"amd64":  {},
}

// IsDesktopPlatform returns true if the machine name is an x86_64 variant.
// Every other machine is assumed to possibly host an iGPU.
func IsDesktopPlatform(platform string) bool {
	_, ok := desktopPlatforms[strings.ToLower(platform)]
	return ok
}

// FilterMinArch keeps the architectures whose numeric version is >= minArch.
// A minArch <= 0 disables the filter.
func FilterMinArch(archs []string, minArch int) []string {
	if minArch <= 0 {
		return append([]string{}, archs...)
	}

	filtered := make([]string, 0, len(archs))
	for _, a := range archs {
		if NumericPrefix(a) >= minArch {
			filtered = append(filtered, a)
		}
	}
	log.Logger.Debugf("Architectures >= sm_%d: %s", minArch, strings.Join(filtered, ", "))
	return filtered
}

// FilterForPlatform removes IGPUArchs when platform is a desktop platform,
// and returns archs unchanged otherwise.
func FilterForPlatform(archs []string, platform string) []string {
	if !IsDesktopPlatform(platform) {
		return append([]string{}, archs...)
	}

	filtered := make([]string, 0, len(archs))
	removed := make([]string, 0)
	for _, a := range archs {
		if _, ok := IGPUArchs[a]; ok {
			removed = append(removed, a)
			continue
		}
		filtered = append(filtered, a)
	}
	if len(removed) > 0 {
		log.Logger.Debugf("Removed iGPU archs from %s build: %s", platform, strings.Join(removed, ", "))
	}
	log.Logger.Debugf("Platform supported archs: %s", strings.Join(filtered, ", "))
	return filtered
}

var majorArchRegex = regexp.MustCompile(`^\d+0$`)

// IsMajorArch returns true for all-digit identifiers ending in 0
// (e.g., "80", "100"), and false for "86" or "90a".
func IsMajorArch(arch string) bool {
	return majorArchRegex.MatchString(arch)
}

// FilterMajor keeps only the major architectures (see IsMajorArch).
func FilterMajor(archs []string) []string {
	filtered := make([]string, 0, len(archs))
	for _, a := range archs {
		if IsMajorArch(a) {
			filtered = append(filtered, a)
		}
	}
	log.Logger.Debugf("Major architectures only: %s", strings.Join(filtered, ", "))
	return filtered
}
