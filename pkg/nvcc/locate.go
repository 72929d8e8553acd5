// Package nvcc locates the CUDA compiler driver and queries the GPU
// architectures it can generate code for.
package nvcc

import (
	"os/exec"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/xyproto/env/v2"

	"github.com/leptonai/cuda-archs/pkg/log"
)

const (
	// BinaryName is the executable searched for in PATH.
	BinaryName = "nvcc"
	// DefaultCUDAHome is the toolkit prefix used when neither
	// CUDA_HOME nor CUDA_PATH is set.
	DefaultCUDAHome = "/usr/local/cuda"
)

var lookPath = exec.LookPath

// Locate returns the absolute, symlink-resolved path to nvcc.
//
// An explicit path is used as-is (after "~" expansion) and is not checked
// for existence here; a bad path fails when the prober runs it.
// Otherwise nvcc is searched in PATH, then $CUDA_HOME/bin/nvcc,
// $CUDA_PATH/bin/nvcc and finally /usr/local/cuda/bin/nvcc.
func Locate(explicitPath string) (string, error) {
	if explicitPath != "" {
		expanded, err := homedir.Expand(explicitPath)
		if err != nil {
			return "", err
		}
		p, err := resolvePath(expanded)
		if err != nil {
			return "", err
		}
		log.Logger.Debugf("Using user-provided nvcc path: %s", p)
		return p, nil
	}

	log.Logger.Debug("No nvcc path provided, attempting automatic search...")
	if p, err := lookPath(BinaryName); err == nil && p != "" {
		return resolvePath(p)
	}

	return resolvePath(DefaultPath())
}

// DefaultPath returns the fallback nvcc location derived from
// CUDA_HOME, CUDA_PATH or DefaultCUDAHome.
func DefaultPath() string {
	cudaHome := env.Str("CUDA_HOME", env.Str("CUDA_PATH", DefaultCUDAHome))
	return filepath.Join(cudaHome, "bin", BinaryName)
}

// resolvePath makes p absolute and resolves symlinks when p exists.
// A missing path is returned absolute but otherwise untouched.
func resolvePath(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return abs, nil
	}
	return resolved, nil
}
