// Package config holds the settings of the interactive shell. Settings come
// from Default, are overlaid by an optional YAML file, and finally by
// command line flags.
package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// DefaultBufferSize is the historical fgets buffer size.
const DefaultBufferSize = 1024

// MaxBufferSize bounds BufferSize so a bad config cannot request huge
// allocations.
const MaxBufferSize = 1 << 20

// ColorMode selects when error output is colored.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// IsValid reports whether the color mode is recognised.
func (c ColorMode) IsValid() bool {
	switch c {
	case ColorAuto, ColorAlways, ColorNever:
		return true
	default:
		return false
	}
}

// Config is the shell configuration.
type Config struct {
	// Prompt is printed before each line is read from a terminal.
	Prompt string `yaml:"prompt"`

	// Banner lines are printed once when an interactive session starts.
	Banner     []string `yaml:"banner"`
	ShowBanner bool     `yaml:"show_banner"`

	// BufferSize is the longest accepted line in bytes, not counting the
	// line terminator.
	BufferSize int `yaml:"buffer_size"`

	Color ColorMode `yaml:"color"`

	// Strict rejects lines with anything after the first expression.
	Strict bool `yaml:"strict"`
}

// Default returns the stock configuration: banner, prompt and
// buffer size.
func Default() *Config {
	return &Config{
		Prompt: "(yalisp) > ",
		Banner: []string{
			"Welcome to Yet Another Lisp (YALisp)!",
			"Type in lisp expressions, and I'll execute them :3",
		},
		ShowBanner: true,
		BufferSize: DefaultBufferSize,
		Color:      ColorAuto,
		Strict:     false,
	}
}

// ValidationError aggregates configuration problems.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("config validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// Validate returns a *ValidationError listing every problem, or nil.
func (c *Config) Validate() error {
	var errs ValidationError
	if c.BufferSize < 1 || c.BufferSize > MaxBufferSize {
		errs.Issues = append(errs.Issues, fmt.Sprintf("buffer_size must be between 1 and %d, got %d", MaxBufferSize, c.BufferSize))
	}
	if !c.Color.IsValid() {
		errs.Issues = append(errs.Issues, fmt.Sprintf("color must be one of auto, always, never, got %q", c.Color))
	}
	if strings.Contains(c.Prompt, "\n") {
		errs.Issues = append(errs.Issues, "prompt must not contain a newline")
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

// Load reads a YAML config file on top of Default. An empty file yields the
// defaults. Unknown keys are an error.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "config: open %s", path)
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "config: %s", path)
	}
	return cfg, nil
}

// Decode reads a YAML config from r on top of Default and validates it.
func Decode(r io.Reader) (*Config, error) {
	cfg := Default()

	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "parse")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Flags are the command line overrides for a Config.
type Flags struct {
	ConfigFile string
	Prompt     string
	BufferSize int
	NoBanner   bool
	Color      string
	Strict     bool
	Verbose    bool
}

// Register adds the flags to fs.
func (f *Flags) Register(fs *pflag.FlagSet) {
	d := Default()
	fs.StringVar(&f.ConfigFile, "config", "", "Path to a YAML config file.")
	fs.StringVar(&f.Prompt, "prompt", d.Prompt, "Prompt printed before each line.")
	fs.IntVar(&f.BufferSize, "buffer-size", d.BufferSize, "Longest accepted input line in bytes.")
	fs.BoolVar(&f.NoBanner, "no-banner", false, "Do not print the welcome banner.")
	fs.StringVar(&f.Color, "color", string(d.Color), "Color error output: auto, always or never.")
	fs.BoolVar(&f.Strict, "strict", d.Strict, "Reject input after the first expression on a line.")
	fs.BoolVarP(&f.Verbose, "verbose", "v", false, "Log debug output to stderr.")
}

// Resolve loads the config file named by --config, if any, and applies
// every flag that was set explicitly on fs.
func (f *Flags) Resolve(fs *pflag.FlagSet) (*Config, error) {
	cfg := Default()
	if f.ConfigFile != "" {
		var err error
		cfg, err = Load(f.ConfigFile)
		if err != nil {
			return nil, err
		}
	}

	if fs.Changed("prompt") {
		cfg.Prompt = f.Prompt
	}
	if fs.Changed("buffer-size") {
		cfg.BufferSize = f.BufferSize
	}
	if fs.Changed("no-banner") {
		cfg.ShowBanner = !f.NoBanner
	}
	if fs.Changed("color") {
		cfg.Color = ColorMode(f.Color)
	}
	if fs.Changed("strict") {
		cfg.Strict = f.Strict
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
