package inspect

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	cmdcommon "github.com/leptonai/cuda-archs/cmd/common"
	"github.com/leptonai/cuda-archs/pkg/cudaarch"
)

// Report describes every stage of the architecture selection for one nvcc.
type Report struct {
	NvccPath string `json:"nvcc_path"`
	Platform string `json:"platform"`
	OS       string `json:"os,omitempty"`
	MinArch  int    `json:"min_arch"`

	cudaarch.Stages
	Major []string `json:"major"`

	Requests []RequestResult `json:"requests"`
}

// RequestResult is the outcome of one keyword request.
type RequestResult struct {
	Request string `json:"request"`
	Targets string `json:"targets,omitempty"`
	Error   string `json:"error,omitempty"`
}

// NewReport applies the filters to supported and resolves the
// "all" and "all-major" requests against them.
func NewReport(supported []string, opts cudaarch.Options) *Report {
	stages := cudaarch.ApplyFilters(supported, opts)
	rp := &Report{
		Platform: opts.Platform,
		MinArch:  opts.MinArch,
		Stages:   stages,
		Major:    cudaarch.FilterMajor(stages.PlatformFiltered),
	}

	for _, kind := range []cudaarch.RequestKind{cudaarch.RequestAll, cudaarch.RequestAllMajor} {
		res := RequestResult{Request: string(kind)}
		targets, err := selectAndFormat(cudaarch.ParseRequest(string(kind)), stages, opts)
		if err != nil {
			res.Error = err.Error()
		} else {
			res.Targets = targets
		}
		rp.Requests = append(rp.Requests, res)
	}
	return rp
}

func selectAndFormat(req cudaarch.Request, stages cudaarch.Stages, opts cudaarch.Options) (string, error) {
	archs, err := cudaarch.Select(req, stages, opts)
	if err != nil {
		return "", err
	}
	targets, err := cudaarch.GenerateTargets(archs)
	if err != nil {
		return "", err
	}
	return cudaarch.FormatTargets(targets), nil
}

func (rp *Report) RenderTable(wr io.Writer) {
	if rp == nil {
		return
	}

	table := tablewriter.NewWriter(wr)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)

	table.Append([]string{"nvcc", rp.NvccPath})
	table.Append([]string{"Platform", rp.Platform})
	if rp.OS != "" {
		table.Append([]string{"OS", rp.OS})
	}
	minArch := "disabled"
	if rp.MinArch > 0 {
		minArch = fmt.Sprintf("sm_%d", rp.MinArch)
	}
	table.Append([]string{"Min arch", minArch})
	table.Append([]string{"Supported", cudaarch.Join(rp.Supported)})
	table.Append([]string{"Min filtered", cudaarch.Join(rp.MinFiltered)})
	table.Append([]string{"Platform filtered", cudaarch.Join(rp.PlatformFiltered)})
	table.Append([]string{"Major", cudaarch.Join(rp.Major)})
	for _, res := range rp.Requests {
		if res.Error != "" {
			table.Append([]string{res.Request, cmdcommon.WarningSign + " " + firstLine(res.Error)})
			continue
		}
		table.Append([]string{res.Request, cmdcommon.CheckMark + " " + res.Targets})
	}

	table.Render()
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
