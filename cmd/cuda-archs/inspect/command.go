// Package inspect implements the "cuda-archs inspect" command.
package inspect

import (
	"context"
	"fmt"

	"github.com/urfave/cli"

	cmdcommon "github.com/leptonai/cuda-archs/cmd/common"
	cmdresolve "github.com/leptonai/cuda-archs/cmd/cuda-archs/resolve"
	"github.com/leptonai/cuda-archs/pkg/cudaarch"
	pkghost "github.com/leptonai/cuda-archs/pkg/host"
	"github.com/leptonai/cuda-archs/pkg/log"
	"github.com/leptonai/cuda-archs/pkg/nvcc"
)

func Command(cliContext *cli.Context) error {
	log.SetLogger(log.CreateLogger(cliContext.Bool("verbose")))

	outputFormat, err := cmdcommon.ParseOutputFormat(cliContext.String("output-format"))
	if err != nil {
		return err
	}

	opts := cudaarch.Options{
		MinArch:  cliContext.Int("min-arch"),
		Platform: cmdresolve.Platform(cliContext),
	}
	prober := nvcc.NewLocatingProber(cliContext.String("nvcc-path"))

	supported, err := prober.SupportedArchs(context.Background())
	if err != nil {
		return err
	}

	rp := NewReport(supported, opts)
	rp.NvccPath = prober.Path()
	rp.OS = osDescription()

	w := cliContext.App.Writer
	switch outputFormat {
	case cmdcommon.OutputFormatJSON:
		return cmdcommon.WriteJSONToWriter(w, rp)
	case cmdcommon.OutputFormatYAML:
		return cmdcommon.WriteYAMLToWriter(w, rp)
	default:
		rp.RenderTable(w)
		return nil
	}
}

func osDescription() string {
	if pkghost.Platform() == "" {
		return ""
	}
	if pkghost.PlatformVersion() == "" {
		return pkghost.Platform()
	}
	return fmt.Sprintf("%s %s", pkghost.Platform(), pkghost.PlatformVersion())
}
