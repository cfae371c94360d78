package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	stderrors "errors"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/mcncl/jsonconst/internal/errors"
	"github.com/mcncl/jsonconst/internal/naming"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable the tool reads.
const EnvPrefix = "JSONCONST_"

// StdoutPath selects standard output as the destination.
const StdoutPath = "-"

// configNames are searched, in order, in each directory walking up.
var configNames = []string{
	".jsonconst.yml", ".jsonconst.yaml", ".jsonconst.toml",
	"jsonconst.yml", "jsonconst.yaml", "jsonconst.toml",
}

// Config represents the complete configuration for jsonconst
type Config struct {
	Output          string `yaml:"output" toml:"output" env:"OUTPUT"`
	NamingStrategy  string `yaml:"naming_strategy" toml:"naming_strategy" env:"NAMING_STRATEGY"`
	Prefix          string `yaml:"prefix" toml:"prefix" env:"PREFIX"`
	Postfix         string `yaml:"postfix" toml:"postfix" env:"POSTFIX"`
	IdentifierStyle string `yaml:"identifier_style" toml:"identifier_style" env:"IDENTIFIER_STYLE"`
	Debug           bool   `yaml:"debug" toml:"debug" env:"DEBUG"`

	// Source is the file the configuration was read from, if any.
	Source string `yaml:"-" toml:"-"`
}

// locator points at an explicit config file.
type locator struct {
	Path string `env:"CONFIG"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Output:          "",
		NamingStrategy:  string(naming.FromFileName),
		IdentifierStyle: string(naming.StyleSplit),
	}
}

// Load builds the configuration for a run started in dir: defaults, then the
// config file, then the environment (after loading dir/.env).
func Load(dir string) (*Config, error) {
	dotenv := filepath.Join(dir, ".env")
	if _, err := os.Stat(dotenv); err == nil {
		// Existing variables win over .env entries.
		if err := godotenv.Load(dotenv); err != nil {
			return nil, errors.NewConfigError(dotenv, "failed to load environment file", err)
		}
	}

	loc, err := env.ParseAsWithOptions[locator](env.Options{Prefix: EnvPrefix})
	if err != nil {
		return nil, errors.NewConfigError("", "invalid environment", err)
	}
	path := loc.Path
	if path == "" {
		path = FindConfigFile(dir)
	}

	cfg := NewConfig()
	if path != "" {
		if cfg, err = LoadConfig(path); err != nil {
			return nil, err
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, errors.NewConfigError(cfg.Source, "invalid environment", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig loads configuration from a YAML or TOML file, chosen by extension.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewConfigError(path, "failed to read config file", err)
	}

	// Start with defaults
	cfg := NewConfig()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields().Decode(cfg)
	default:
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		err = decoder.Decode(cfg)
		if stderrors.Is(err, io.EOF) {
			// An empty YAML file keeps the defaults.
			err = nil
		}
	}
	if err != nil {
		return nil, errors.NewConfigError(path, "failed to parse config file", err)
	}

	cfg.Source = path
	return cfg, nil
}

// FindConfigFile searches for a config file in dir and its parents
func FindConfigFile(dir string) string {
	currentDir, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}

	// Search up the directory tree
	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if info, err := os.Stat(configPath); err == nil && !info.IsDir() {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root directory
			break
		}
		currentDir = parentDir
	}

	return ""
}

// Validate checks the enumerated settings.
func (c *Config) Validate() error {
	if _, err := naming.ParseStrategy(c.NamingStrategy); err != nil {
		return errors.NewConfigError(c.Source, "invalid naming_strategy", err)
	}
	if _, err := naming.ParseStyle(c.IdentifierStyle); err != nil {
		return errors.NewConfigError(c.Source, "invalid identifier_style", err)
	}
	return nil
}

// Strategy returns the validated naming strategy.
func (c *Config) Strategy() naming.Strategy {
	return naming.Strategy(c.NamingStrategy)
}

// Style returns the validated identifier style.
func (c *Config) Style() naming.Style {
	return naming.Style(c.IdentifierStyle)
}

// WritesToStdout reports whether output goes to standard output.
func (c *Config) WritesToStdout() bool {
	return c.Output == "" || c.Output == StdoutPath
}

// Overrides holds values given explicitly on the command line.
type Overrides struct {
	Output         *string
	NamingStrategy *string
	Prefix         *string
	Postfix        *string
}

// Apply copies every set override into c and revalidates.
func (c *Config) Apply(o Overrides) error {
	if o.Output != nil {
		c.Output = *o.Output
	}
	if o.NamingStrategy != nil {
		c.NamingStrategy = *o.NamingStrategy
	}
	if o.Prefix != nil {
		c.Prefix = *o.Prefix
	}
	if o.Postfix != nil {
		c.Postfix = *o.Postfix
	}
	return c.Validate()
}

// String describes where the configuration came from.
func (c *Config) String() string {
	if c.Source == "" {
		return "defaults"
	}
	return fmt.Sprintf("file %s", c.Source)
}
