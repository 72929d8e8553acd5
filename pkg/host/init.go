// Package host reports the machine details the architecture filters depend on.
package host

import (
	"runtime"

	"github.com/shirou/gopsutil/v4/host"

	"github.com/leptonai/cuda-archs/pkg/log"
)

var (
	currentArch            string
	currentPlatform        string
	currentPlatformFamily  string
	currentPlatformVersion string
)

var (
	kernelArch          = host.KernelArch
	platformInformation = host.PlatformInformation
)

func init() {
	loadInfo()
}

func loadInfo() {
	var err error
	currentArch, err = kernelArch()
	if err != nil {
		log.Logger.Debugf("failed to get kernel arch, falling back to %s: %v", runtime.GOARCH, err)
	}
	if currentArch == "" {
		// "amd64" is treated the same as "x86_64" by the platform filter
		currentArch = runtime.GOARCH
	}

	currentPlatform, currentPlatformFamily, currentPlatformVersion, err = platformInformation()
	if err != nil {
		log.Logger.Debugf("failed to get platform information: %v", err)
	}
}

// Arch returns the machine hardware name (e.g., "x86_64", "aarch64"),
// the same value "uname -m" prints.
func Arch() string {
	return currentArch
}

func Platform() string {
	return currentPlatform
}

func PlatformFamily() string {
	return currentPlatformFamily
}

func PlatformVersion() string {
	return currentPlatformVersion
}
