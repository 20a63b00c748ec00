package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/benSepanski/lockPlacementBenchmarks/analysis/monitor"
	"github.com/benSepanski/lockPlacementBenchmarks/graph"
	"github.com/benSepanski/lockPlacementBenchmarks/utils"

	"github.com/fatih/color"
	"github.com/google/subcommands"
	log "github.com/sirupsen/logrus"
)

var opts = utils.Opts()

var colorize = struct {
	Failure func(...interface{}) string
}{
	Failure: func(is ...interface{}) string {
		return utils.CanColorize(color.New(color.FgHiRed).SprintFunc())(is...)
	},
}

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")
	subcommands.Register(&analyzeCmd{}, "")
	subcommands.Register(&dotCmd{}, "")

	// All subcommands must be registered before flag parsing.
	utils.ParseArgs()

	os.Exit(int(subcommands.Execute(context.Background())))
}

// analyzeCmd implements subcommands.Command for the "analyze" command.
type analyzeCmd struct {
	flags configFlags
}

// Name implements subcommands.Command.Name.
func (*analyzeCmd) Name() string {
	return "analyze"
}

// Synopsis implements subcommands.Command.Synopsis.
func (*analyzeCmd) Synopsis() string {
	return "computes the lock placement of every monitor in the model files"
}

// Usage implements subcommands.Command.Usage.
func (*analyzeCmd) Usage() string {
	return `analyze [flags] <model.yaml>...
`
}

// SetFlags implements subcommands.Command.SetFlags.
func (c *analyzeCmd) SetFlags(f *flag.FlagSet) {
	c.flags.register(f)
}

// Execute implements subcommands.Command.Execute.
func (c *analyzeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}

	cfg, err := c.flags.resolve(f)
	if err != nil {
		log.Error(err)
		return subcommands.ExitUsageError
	}

	p := pipeline{cfg: cfg}
	monitors, err := p.loadMonitors(f.Args())
	if err != nil {
		log.Error(err)
		return subcommands.ExitFailure
	}
	if len(monitors) == 0 {
		log.Warn("No monitors to analyze")
		return subcommands.ExitSuccess
	}
	log.Infof("Analyzing %s", utils.Plural(len(monitors), "monitor"))

	outcomes := p.run(ctx, monitors)

	status := subcommands.ExitSuccess
	for _, o := range outcomes {
		if o.err != nil {
			fmt.Println(colorize.Failure(fmt.Sprintf("Monitor %s failed: %v", o.monitor.Name(), o.err)))
			status = subcommands.ExitFailure
			continue
		}
		if err := o.result.WriteReport(os.Stdout); err != nil {
			log.Error(err)
			return subcommands.ExitFailure
		}
		fmt.Println()
	}

	gatherMetrics(outcomes)
	return status
}

// dotCmd implements subcommands.Command for the "dot" command.
type dotCmd struct {
	flags  configFlags
	format string
	out    string
}

// Name implements subcommands.Command.Name.
func (*dotCmd) Name() string {
	return "dot"
}

// Synopsis implements subcommands.Command.Synopsis.
func (*dotCmd) Synopsis() string {
	return "prints or renders the accessed-before graph of every monitor"
}

// Usage implements subcommands.Command.Usage.
func (*dotCmd) Usage() string {
	return `dot [flags] <model.yaml>...
`
}

// SetFlags implements subcommands.Command.SetFlags.
func (c *dotCmd) SetFlags(f *flag.FlagSet) {
	c.flags.register(f)
	f.StringVar(&c.format, "format", "", "Render with graphviz to this format (e.g. svg) instead of printing dot.")
	f.StringVar(&c.out, "o", ".", "Directory of rendered images.")
}

// Execute implements subcommands.Command.Execute.
func (c *dotCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}

	cfg, err := c.flags.resolve(f)
	if err != nil {
		log.Error(err)
		return subcommands.ExitUsageError
	}

	monitors, err := pipeline{cfg: cfg}.loadMonitors(f.Args())
	if err != nil {
		log.Error(err)
		return subcommands.ExitFailure
	}

	// Labels are printed by the location printer.
	utils.SetNoColorize(true)

	status := subcommands.ExitSuccess
	for _, m := range monitors {
		a, err := monitor.Prepare(m, cfg.monitorConfig())
		if err != nil {
			log.Error(err)
			status = subcommands.ExitFailure
			continue
		}

		if c.format == "" {
			if err := graph.WriteAccessedBefore(os.Stdout, a); err != nil {
				log.Error(err)
				return subcommands.ExitFailure
			}
			continue
		}

		img, err := graph.RenderAccessedBefore(a, filepath.Join(c.out, m.Name()), c.format)
		if err != nil {
			log.Error(err)
			return subcommands.ExitFailure
		}
		log.Infof("Wrote %s", img)
	}
	return status
}
