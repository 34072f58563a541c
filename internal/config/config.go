// Package config assembles command line settings from an optional YAML file
// overlaid by flags.
package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the command line interpreter's settings.
type Config struct {
	// Path is the config file that was loaded, if any; it is only settable
	// by flag.
	Path string `yaml:"-"`

	Trace     bool          `yaml:"trace"`
	Dump      bool          `yaml:"dump"`
	KeepGoing bool          `yaml:"keep_going"`
	Timeout   time.Duration `yaml:"timeout"`

	// Interactive forces prompting on or off; unset means to decide by
	// whether standard input is a terminal.
	Interactive *bool `yaml:"interactive"`

	Prompt         string `yaml:"prompt"`
	ContinuePrompt string `yaml:"continue_prompt"`

	// Files lists inputs to read, in order; standard input is read when
	// there are none.
	Files []string `yaml:"files"`
}

// Default returns the settings used when neither file nor flags say
// otherwise.
func Default() Config {
	return Config{
		Prompt:         "> ",
		ContinuePrompt: ".. ",
	}
}

// Parse builds a Config from command line arguments (without the program
// name). When a -config file is given, its values replace the defaults and
// any flags given on the command line override them in turn.
func Parse(name string, args []string) (Config, error) {
	cfg := Default()
	if err := cfg.parseFlags(name, args); err != nil {
		return cfg, err
	}
	if cfg.Path == "" {
		return cfg, nil
	}

	fileCfg := Default()
	fileCfg.Path = cfg.Path
	if err := fileCfg.Load(cfg.Path); err != nil {
		return cfg, err
	}
	if err := fileCfg.parseFlags(name, args); err != nil {
		return cfg, err
	}
	return fileCfg, nil
}

// Load decodes the YAML file at path over cfg.
func (cfg *Config) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return cfg.Decode(f)
}

// Decode decodes a YAML document over cfg; unknown keys are an error.
func (cfg *Config) Decode(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return fmt.Errorf("config %v: %w", nameOf(r), err)
	}
	return nil
}

// Usage writes flag documentation to w.
func Usage(name string, w io.Writer) {
	cfg := Default()
	fs := cfg.flagSet(name)
	fs.SetOutput(w)
	fmt.Fprintf(w, "Usage: %v [flags] [file ...]\n", name)
	fs.PrintDefaults()
}

func (cfg *Config) parseFlags(name string, args []string) error {
	fs := cfg.flagSet(name)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if rest := fs.Args(); len(rest) > 0 {
		cfg.Files = rest
	}
	return nil
}

func (cfg *Config) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&cfg.Path, "config", cfg.Path, "load settings from a YAML file")
	fs.BoolVar(&cfg.Trace, "trace", cfg.Trace, "enable trace logging")
	fs.BoolVar(&cfg.Dump, "dump", cfg.Dump, "dump machine state at exit")
	fs.BoolVar(&cfg.KeepGoing, "keep-going", cfg.KeepGoing, "report errors and continue with the next line")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "specify a time limit")
	fs.Var(optionalBool{&cfg.Interactive}, "interactive", "prompt for input (default: when stdin is a terminal)")
	return fs
}

// optionalBool is a boolean flag that can tell unset from false.
type optionalBool struct{ b **bool }

func (ob optionalBool) IsBoolFlag() bool { return true }

func (ob optionalBool) String() string {
	if ob.b == nil || *ob.b == nil {
		return ""
	}
	return fmt.Sprint(**ob.b)
}

func (ob optionalBool) Set(s string) error {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	*ob.b = &b
	return nil
}

func nameOf(obj interface{}) string {
	if nom, ok := obj.(interface{ Name() string }); ok {
		return nom.Name()
	}
	return "<input>"
}
