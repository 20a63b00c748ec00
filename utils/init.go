package utils

import (
	"flag"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
)

// options holds the presentation settings shared by every subcommand.
// Analysis parameters (costs, alias mode, timeouts) are passed explicitly
// through the pipeline instead.
type options struct {
	minlen     uint
	nodesep    float64
	noColorize bool
	verbose    bool
	metrics    bool
}

var opts = &options{
	minlen:  2,
	nodesep: 0.35,
}

func CanColorize(col func(...interface{}) string) func(...interface{}) string {
	if opts.noColorize {
		return func(is ...interface{}) string {
			return fmt.Sprintf(strings.Repeat("%v", len(is)), is...)
		}
	}
	return col
}

type optInterface struct{}

func Opts() optInterface {
	return optInterface{}
}

func (optInterface) Minlen() uint {
	return opts.minlen
}

func (optInterface) Nodesep() float64 {
	return opts.nodesep
}

func (optInterface) Metrics() bool {
	return opts.metrics
}

// SetNoColorize toggles colorization. Golden tests disable it so the output
// does not depend on the terminal.
func SetNoColorize(noColorize bool) {
	opts.noColorize = noColorize
}

func init() {
	flag.UintVar(&(opts.minlen), "minlen", 2, "Minimum edge length (for wider output).")
	flag.Float64Var(&(opts.nodesep), "nodesep", 0.35, "Minimum space between two adjacent nodes in the same rank (for taller output).")
	flag.BoolVar(&(opts.noColorize), "no-colorize", false, "Disable pretty printer colorization")
	flag.BoolVar(&(opts.verbose), "verbose", false, "enable verbose output")
	flag.BoolVar(&(opts.metrics), "metrics", false, "Report per-monitor metrics after the analysis")
}

// ParseArgs parses the top-level flags and configures logging accordingly.
func ParseArgs() {
	// Calling flag.Parse in init messes up unit tests.
	// See https://stackoverflow.com/questions/60235896/flag-provided-but-not-defined-test-v
	flag.Parse()

	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05",
		DisableColors:   opts.noColorize,
	})
	if opts.verbose {
		log.SetLevel(log.DebugLevel)
	}
}
