package main

import (
	"bufio"
	"flag"
	"os"
	"strings"
	"time"

	"github.com/benSepanski/lockPlacementBenchmarks/analysis/alias"
	"github.com/benSepanski/lockPlacementBenchmarks/analysis/lockopt"
	"github.com/benSepanski/lockPlacementBenchmarks/analysis/monitor"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// config holds the analysis parameters of the driver. Values are taken from
// the defaults, then from the configuration file, then from the command line.
type config struct {
	LocalCost   int           `toml:"local_cost"`
	GlobalCost  int           `toml:"global_cost"`
	Alias       string        `toml:"alias"`
	Timeout     time.Duration `toml:"timeout"`
	Parallelism int           `toml:"parallelism"`
	Retries     int           `toml:"retries"`
	// Targets restricts the analysis to the named monitors.
	Targets []string `toml:"targets"`
}

func defaultConfig() config {
	localCost, globalCost := lockopt.DefaultCosts()
	return config{
		LocalCost:   localCost,
		GlobalCost:  globalCost,
		Alias:       "optimistic",
		Parallelism: 4,
	}
}

// loadConfig overrides the fields of c present in the TOML file at path.
func (c *config) loadConfig(path string) error {
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return errors.Wrapf(err, "reading %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return errors.Errorf("%s: unknown keys %v", path, undecoded)
	}
	return nil
}

// loadTargets reads monitor names from a file, one per line. Blank lines
// and lines starting with # are skipped.
func (c *config) loadTargets(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		c.Targets = append(c.Targets, line)
	}
	return scanner.Err()
}

func (c config) validate() error {
	switch {
	case c.LocalCost < 0 || c.GlobalCost < 0:
		return errors.Errorf("lock costs must not be negative, got %d and %d", c.LocalCost, c.GlobalCost)
	case c.Parallelism < 1:
		return errors.Errorf("parallelism must be positive, got %d", c.Parallelism)
	case c.Retries < 0:
		return errors.Errorf("retries must not be negative, got %d", c.Retries)
	case c.Timeout < 0:
		return errors.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	if _, ok := alias.ByName(c.Alias); !ok {
		return errors.Errorf("unknown alias oracle %q", c.Alias)
	}
	return nil
}

// monitorConfig converts c into the parameters of a monitor analysis.
func (c config) monitorConfig() monitor.Config {
	oracle, _ := alias.ByName(c.Alias)
	return monitor.Config{
		Oracle:     oracle,
		LocalCost:  c.LocalCost,
		GlobalCost: c.GlobalCost,
		Solver:     lockopt.Options{Timeout: c.Timeout},
		Metrics:    opts.Metrics(),
	}
}

// wanted reports whether the monitor with the given name is a target.
func (c config) wanted(name string) bool {
	if len(c.Targets) == 0 {
		return true
	}
	for _, t := range c.Targets {
		if t == name {
			return true
		}
	}
	return false
}

// configFlags are the command line overrides of config.
type configFlags struct {
	configFile  string
	targetsFile string
	values      config
}

func (cf *configFlags) register(f *flag.FlagSet) {
	def := defaultConfig()
	f.StringVar(&cf.configFile, "config", "", "TOML file with analysis parameters.")
	f.StringVar(&cf.targetsFile, "targets", "", "File listing the monitors to analyze, one per line.")
	f.IntVar(&cf.values.LocalCost, "local-cost", def.LocalCost, "Cost of a local lock.")
	f.IntVar(&cf.values.GlobalCost, "global-cost", def.GlobalCost, "Cost of a global lock.")
	f.StringVar(&cf.values.Alias, "alias", def.Alias, "Alias oracle: optimistic or pessimistic.")
	f.DurationVar(&cf.values.Timeout, "timeout", def.Timeout, "Timeout of every solver call (0 for none).")
	f.IntVar(&cf.values.Parallelism, "j", def.Parallelism, "Number of monitors analyzed in parallel.")
	f.IntVar(&cf.values.Retries, "retries", def.Retries, "Retries with a doubled timeout when the solver gives up.")
}

// resolve layers the defaults, the configuration file and the flags that
// were set explicitly.
func (cf *configFlags) resolve(f *flag.FlagSet) (config, error) {
	c := defaultConfig()
	if cf.configFile != "" {
		if err := c.loadConfig(cf.configFile); err != nil {
			return c, err
		}
	}

	f.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "local-cost":
			c.LocalCost = cf.values.LocalCost
		case "global-cost":
			c.GlobalCost = cf.values.GlobalCost
		case "alias":
			c.Alias = cf.values.Alias
		case "timeout":
			c.Timeout = cf.values.Timeout
		case "j":
			c.Parallelism = cf.values.Parallelism
		case "retries":
			c.Retries = cf.values.Retries
		}
	})

	if cf.targetsFile != "" {
		if err := c.loadTargets(cf.targetsFile); err != nil {
			return c, err
		}
	}
	return c, c.validate()
}
