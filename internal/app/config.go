package app

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"camusicgen/internal/automaton"
)

// Config represents the parameters shared by the command line tools. Flags
// override values loaded from a YAML file, which override the defaults.
type Config struct {
	Width   int    `yaml:"width" validate:"gte=0"`
	Rule    int    `yaml:"rule"`
	Length  int    `yaml:"length" validate:"gte=0"`
	Init    string `yaml:"init"`
	Cells   string `yaml:"cells"`
	Seed    int64  `yaml:"seed"`
	Format  string `yaml:"format" validate:"required"`
	Workers int    `yaml:"workers" validate:"gte=0"`

	Scale int `yaml:"scale" validate:"gte=1"`
	TPS   int `yaml:"tps" validate:"gte=1"`
	Rate  int `yaml:"rate" validate:"gte=1"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format" validate:"omitempty,oneof=console json"`
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Width:     16,
		Rule:      90,
		Length:    16,
		Init:      "center",
		Seed:      42,
		Format:    "ints",
		Scale:     8,
		TPS:       60,
		Rate:      4,
		LogLevel:  "info",
		LogFormat: "console",
	}
}

// Bind attaches the run parameters to the provided FlagSet.
func (c *Config) Bind(fs *pflag.FlagSet) {
	fs.IntVarP(&c.Width, "width", "w", c.Width, "cells per generation (generation is limited to 64)")
	fs.IntVarP(&c.Rule, "rule", "r", c.Rule, "Wolfram rule number; only the low 8 bits are used")
	fs.IntVarP(&c.Length, "length", "n", c.Length, "number of generations including the initial one")
	fs.StringVar(&c.Init, "init", c.Init, "initial pattern: "+seedList())
	fs.StringVar(&c.Cells, "cells", c.Cells, `explicit initial cells, e.g. "00100" or "0,0,1,0,0" (overrides --init and --width)`)
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for the random initial pattern")
	fs.StringVarP(&c.Format, "format", "f", c.Format, "output format")
	fs.IntVar(&c.Workers, "workers", c.Workers, "concurrent requests (0 = number of CPUs)")
}

// BindView attaches the viewer parameters to the provided FlagSet.
func (c *Config) BindView(fs *pflag.FlagSet) {
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "frames per second")
	fs.IntVar(&c.Rate, "rate", c.Rate, "generations per second")
}

// BindLogging attaches the logging parameters to the provided FlagSet.
func (c *Config) BindLogging(fs *pflag.FlagSet) {
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level (trace, debug, info, warn, error)")
	fs.StringVar(&c.LogFormat, "log-format", c.LogFormat, "log format (console, json)")
}

// LoadFile overlays the values found in a YAML file onto c. Keys absent from
// the file keep their current values.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

var validate = validator.New()

// Validate checks field ranges. Rule is deliberately unchecked.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// InitialGeneration resolves the starting row: explicit Cells when set,
// otherwise the named Init pattern at Width.
func (c *Config) InitialGeneration() (automaton.Generation, error) {
	if c.Cells != "" {
		g, err := automaton.ParseGeneration(c.Cells)
		if err != nil {
			return nil, err
		}
		if len(g) > automaton.MaxWidth {
			return nil, automaton.ErrWidthOverflow
		}
		return g, nil
	}
	return automaton.Seed(c.Init, c.Width, c.Seed)
}

func seedList() string { return strings.Join(automaton.SeedNames(), ", ") }
