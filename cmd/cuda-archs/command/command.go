package command

import (
	"strings"

	"github.com/urfave/cli"

	cmdinspect "github.com/leptonai/cuda-archs/cmd/cuda-archs/inspect"
	cmdresolve "github.com/leptonai/cuda-archs/cmd/cuda-archs/resolve"
	"github.com/leptonai/cuda-archs/version"
)

const usage = `
# to build for every architecture nvcc supports (Volta and newer)
cuda-archs --min-arch 70 all

# to build for the major architectures only
cuda-archs all-major

# to validate an explicit list
cuda-archs "75 86 90a"

# e.g., in CMake
execute_process(COMMAND cuda-archs --min-arch 70 all OUTPUT_VARIABLE CMAKE_CUDA_ARCHITECTURES)
`

func App() *cli.App {
	// "-v" is taken by --verbose
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print the version",
	}

	app := cli.NewApp()

	app.Name = "cuda-archs"
	app.Version = version.String()
	app.Usage = usage
	app.Description = "Determine and format CUDA architectures for CMake based on nvcc output"
	app.ArgsUsage = "<requested_archs: native | all | all-major | comma/space-separated list, e.g., '75 86 90a'>"

	app.Action = cmdresolve.Command
	app.OnUsageError = returnUsageError
	app.Flags = []cli.Flag{
		nvccPathFlag,
		minArchFlag,
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: "enable verbose debug logging to stderr",
		},
		platformFlag,
	}

	app.Commands = []cli.Command{
		{
			Name:  "inspect",
			Usage: "print the architectures nvcc supports and the result of each filter",
			UsageText: `# to see which architectures each request would select
cuda-archs inspect

# with a specific nvcc and minimum architecture
cuda-archs inspect --nvcc-path /usr/local/cuda-12.8/bin/nvcc --min-arch 75 -o yaml
`,
			Action:       cmdinspect.Command,
			OnUsageError: returnUsageError,
			Flags:        []cli.Flag{
				nvccPathFlag,
				minArchFlag,
				cli.StringFlag{
					Name:  "output-format, o",
					Usage: "set the output format [table, json, yaml]",
					Value: "table",
				},
				cli.BoolFlag{
					Name:  "verbose, v",
					Usage: "enable verbose debug logging to stderr",
				},
				platformFlag,
			},
		},
	}

	return app
}

var (
	nvccPathFlag = cli.StringFlag{
		Name:   "nvcc-path, n",
		Usage:  "path to the nvcc executable (default: PATH, then $CUDA_HOME/bin/nvcc, $CUDA_PATH/bin/nvcc, /usr/local/cuda/bin/nvcc)",
		EnvVar: "CUDA_ARCHS_NVCC_PATH",
	}
	minArchFlag = cli.IntFlag{
		Name:  "min-arch, m",
		Usage: "minimum major CUDA architecture to consider (e.g., 70 for Volta+), set to 0 or omit to disable",
	}
	platformFlag = cli.StringFlag{
		Name:   "platform",
		Usage:  "override the detected machine name (e.g., x86_64, aarch64)",
		Hidden: true,
	}
)

// returnUsageError hands flag parse errors back to main, which logs them
// to stderr. The default handler prints the help text to stdout, which
// CMake would capture as the architecture list.
func returnUsageError(_ *cli.Context, err error, _ bool) error {
	return err
}

// ReorderArgs moves the flags of the default action in front of the
// positional argument, so "cuda-archs all --min-arch 80" parses the same
// as "cuda-archs --min-arch 80 all". Subcommand invocations and anything
// after "--" are returned unchanged.
func ReorderArgs(app *cli.App, args []string) []string {
	if len(args) < 2 {
		return args
	}

	takesValue := make(map[string]bool)
	for _, f := range app.Flags {
		_, isBool := f.(cli.BoolFlag)
		for _, name := range strings.Split(f.GetName(), ",") {
			if name = strings.TrimSpace(name); name != "" {
				takesValue[name] = !isBool
			}
		}
	}

	flags := make([]string, 0, len(args))
	positionals := make([]string, 0, len(args))
	rest := args[1:]
	for i := 0; i < len(rest); i++ {
		arg := rest[i]
		if arg == "--" {
			positionals = append(positionals, rest[i:]...)
			break
		}

		name, ok := flagName(arg)
		if !ok {
			if len(positionals) == 0 && app.Command(arg) != nil {
				return args
			}
			positionals = append(positionals, arg)
			continue
		}

		flags = append(flags, arg)
		if takesValue[name] && !strings.Contains(arg, "=") && i+1 < len(rest) {
			i++
			flags = append(flags, rest[i])
		}
	}

	reordered := make([]string, 0, len(args))
	reordered = append(reordered, args[0])
	reordered = append(reordered, flags...)
	return append(reordered, positionals...)
}

// flagName returns "min-arch" for "--min-arch", "-m" or "--min-arch=80"
// style arguments ("m" for "-m").
func flagName(arg string) (string, bool) {
	if len(arg) < 2 || arg[0] != '-' {
		return "", false
	}
	name, _, _ := strings.Cut(strings.TrimLeft(arg, "-"), "=")
	return name, name != ""
}
