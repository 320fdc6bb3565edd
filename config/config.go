package config

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// ErrInvalidLimit is wrapped by [Limits.Validate] failures.
var ErrInvalidLimit = errors.New("invalid limit")

// Flags holds CLI flag names for engine limit configuration, allowing
// callers to customize flag names while keeping sensible defaults via
// [NewConfig].
type Flags struct {
	MaxPathLimit     string
	MaxDocumentSize  string
	HashTableMinSize string
	LimitsFile       string
}

// NewConfig creates a new [Config] embedding these flag names.
func (f Flags) NewConfig() *Config {
	return &Config{Flags: f, Limits: NewLimits()}
}

// Config holds CLI flag values for the engine's limits.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags]. Call [Config.Resolve] after flag parsing to
// apply a limits file, if one was given, and validate the result.
type Config struct {
	Flags      Flags
	Limits     Limits
	LimitsFile string
}

// NewConfig returns a new [Config] with default flag names and the
// documented default limits.
func NewConfig() *Config {
	f := Flags{
		MaxPathLimit:     "json-max-path-limit",
		MaxDocumentSize:  "json-max-document-size",
		HashTableMinSize: "json-hash-table-min-size",
		LimitsFile:       "json-limits-file",
	}

	return f.NewConfig()
}

// RegisterFlags adds engine-limit flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.IntVar(&c.Limits.MaxPathLimit, c.Flags.MaxPathLimit, DefaultMaxPathLimit,
		"maximum document tree depth")
	flags.IntVar(&c.Limits.MaxDocumentSize, c.Flags.MaxDocumentSize, DefaultMaxDocumentSize,
		"maximum compact-serialized document size, in bytes")
	flags.IntVar(&c.Limits.HashTableMinSize, c.Flags.HashTableMinSize, DefaultHashTableMinSize,
		"member count at which an object switches to an index lookup")
	flags.StringVar(&c.LimitsFile, c.Flags.LimitsFile, "",
		"path to a YAML file overriding the limits above")
}

// RegisterCompletions registers shell completions for limit flags on cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	noFileComp := func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	for _, name := range []string{c.Flags.MaxPathLimit, c.Flags.MaxDocumentSize, c.Flags.HashTableMinSize} {
		if err := cmd.RegisterFlagCompletionFunc(name, noFileComp); err != nil {
			return fmt.Errorf("registering %s completion: %w", name, err)
		}
	}

	return nil
}

// Resolve replaces the flag-parsed limits with those of the limits file,
// if c.LimitsFile is set, then validates the result. Fields absent from
// the file take the [NewLimits] defaults, not the flag values.
func (c *Config) Resolve() error {
	if c.LimitsFile != "" {
		fromFile, err := LoadLimitsFile(c.LimitsFile)
		if err != nil {
			return err
		}

		c.Limits = fromFile
	}

	return c.Limits.Validate()
}
