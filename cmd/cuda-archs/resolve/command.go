// Package resolve implements the default cuda-archs action, which prints
// the CMake CUDA_ARCHITECTURES value for the requested architectures.
package resolve

import (
	"context"
	"fmt"

	"github.com/urfave/cli"

	"github.com/leptonai/cuda-archs/pkg/cudaarch"
	"github.com/leptonai/cuda-archs/pkg/errdefs"
	pkghost "github.com/leptonai/cuda-archs/pkg/host"
	"github.com/leptonai/cuda-archs/pkg/log"
	"github.com/leptonai/cuda-archs/pkg/nvcc"
)

func Command(cliContext *cli.Context) error {
	log.SetLogger(log.CreateLogger(cliContext.Bool("verbose")))

	if cliContext.NArg() != 1 {
		return errdefs.Newf(errdefs.ErrInvalidArgument, "expected exactly one <requested_archs> argument, got %d", cliContext.NArg())
	}
	requested := cliContext.Args().First()

	opts := cudaarch.Options{
		MinArch:  cliContext.Int("min-arch"),
		Platform: Platform(cliContext),
	}
	prober := nvcc.NewLocatingProber(cliContext.String("nvcc-path"))

	out, err := cudaarch.Resolve(context.Background(), requested, prober, opts)
	if err != nil {
		return err
	}

	// no trailing newline, CMake reads the value as-is
	_, err = fmt.Fprint(cliContext.App.Writer, out)
	return err
}

// Platform returns the --platform override or the detected machine name.
func Platform(cliContext *cli.Context) string {
	if p := cliContext.String("platform"); p != "" {
		return p
	}
	return pkghost.Arch()
}
