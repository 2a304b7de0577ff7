// Package config loads langc settings from TOML or YAML files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config holds the complete langc configuration
type Config struct {
	Compiler CompilerConfig `toml:"compiler" yaml:"compiler"`
	Log      LogConfig      `toml:"log" yaml:"log"`
	Output   OutputConfig   `toml:"output" yaml:"output"`
}

// CompilerConfig holds front-end limits
type CompilerConfig struct {
	// MaxNestingDepth bounds nesting of blocks, parentheses and unary
	// operands. A negative value disables the limit.
	MaxNestingDepth int `toml:"max_nesting_depth" yaml:"max_nesting_depth"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string `toml:"level" yaml:"level"`   // debug, info, warn, error
	Format string `toml:"format" yaml:"format"` // text or json
}

// OutputConfig holds settings for what the CLI prints
type OutputConfig struct {
	ASTFormat string `toml:"ast_format" yaml:"ast_format"` // text, json or yaml
	Color     string `toml:"color" yaml:"color"`           // auto, always or never
}

// Defaults
const (
	DefaultMaxNestingDepth = 256
	DefaultLogLevel        = "warn"
	DefaultLogFormat       = "text"
	DefaultASTFormat       = "text"
	DefaultColor           = "auto"
)

// EnvVar names the environment variable holding a config file path.
const EnvVar = "LANGC_CONFIG"

// Format is a configuration file format
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
)

// Default returns a configuration with every field set to its default.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML or YAML file. The format follows
// the file extension; anything other than .yaml or .yml is read as TOML.
func Load(path string) (*Config, error) {
	// Expand environment variables in path
	path = os.ExpandEnv(path)

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	switch detectFormat(path) {
	case FormatYAML:
		if err := yaml.Unmarshal(content, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	default:
		if _, err := toml.Decode(string(content), &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// LoadFromEnv loads configuration from the file named by LANGC_CONFIG, or
// from the first default location that exists. With neither it returns the
// defaults.
func LoadFromEnv() (*Config, error) {
	if path := os.Getenv(EnvVar); path != "" {
		return Load(path)
	}
	for _, p := range defaultPaths() {
		if _, err := os.Stat(p); err == nil {
			return Load(p)
		}
	}
	return Default(), nil
}

func defaultPaths() []string {
	paths := []string{"./langc.toml", "./langc.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "langc", "config.toml"))
	}
	return paths
}

// detectFormat detects configuration format from file extension
func detectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	if c.Compiler.MaxNestingDepth == 0 {
		c.Compiler.MaxNestingDepth = DefaultMaxNestingDepth
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}
	if c.Output.ASTFormat == "" {
		c.Output.ASTFormat = DefaultASTFormat
	}
	if c.Output.Color == "" {
		c.Output.Color = DefaultColor
	}
}

// Validate reports the first setting that holds an unsupported value.
func (c *Config) Validate() error {
	if err := oneOf("log.level", strings.ToLower(c.Log.Level), "debug", "info", "warn", "error"); err != nil {
		return err
	}
	if err := oneOf("log.format", c.Log.Format, "text", "json"); err != nil {
		return err
	}
	if err := oneOf("output.ast_format", c.Output.ASTFormat, "text", "json", "yaml"); err != nil {
		return err
	}
	return oneOf("output.color", c.Output.Color, "auto", "always", "never")
}

func oneOf(key, value string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return fmt.Errorf("%s: unsupported value %q (want one of %s)", key, value, strings.Join(allowed, ", "))
}

// MaxDepth returns the nesting limit in the form the compiler session
// expects, where zero means unlimited.
func (c *Config) MaxDepth() int {
	if c.Compiler.MaxNestingDepth < 0 {
		return 0
	}
	return c.Compiler.MaxNestingDepth
}
