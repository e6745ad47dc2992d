// Package config loads settings for the photon tools from TOML or YAML files.
package config

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format represents the configuration file format
type Format int

const (
	// FormatAuto detects the format from the file extension
	FormatAuto Format = iota
	FormatTOML
	FormatYAML
)

// String returns the string representation of the format
func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	case FormatAuto:
		return "auto"
	default:
		return "unknown"
	}
}

// Output formats of the AST dump.
const (
	OutputJSON   = "json"
	OutputYAML   = "yaml"
	OutputSource = "source"
)

var (
	ErrUnknownFormat = stderrors.New("unknown config format")
	ErrInvalid       = stderrors.New("invalid config")
)

// Config holds the settings of photon-ast. Zero fields in a file leave the
// defaults in place.
type Config struct {
	// Output is one of OutputJSON, OutputYAML or OutputSource.
	Output string `toml:"output" yaml:"output"`
	// Indent is the number of spaces per nesting level in JSON and YAML
	// output. 0 selects compact JSON.
	Indent int `toml:"indent" yaml:"indent"`
	// MatchTimeout bounds a single token pattern match. 0 disables the limit.
	MatchTimeout time.Duration `toml:"match_timeout" yaml:"match_timeout"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Output: OutputJSON,
		Indent: 2,
	}
}

// Load reads the file at path over the defaults. The format follows the
// extension: .toml, or .yaml and .yml.
func Load(path string) (Config, error) {
	return LoadFormat(path, FormatAuto)
}

// LoadFormat is Load with an explicit format. FormatAuto detects it.
func LoadFormat(path string, format Format) (Config, error) {
	if strings.TrimSpace(path) == "" {
		return Config{}, fmt.Errorf("config: file path cannot be empty: %w", ErrInvalid)
	}

	if format == FormatAuto {
		format = DetectFormat(path)
	}
	if format == FormatAuto {
		return Config{}, fmt.Errorf("config: %s: extension %q: %w", path, filepath.Ext(path), ErrUnknownFormat)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: failed to read config file: %w", err)
	}

	cfg, err := Parse(content, format)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// DetectFormat maps a file extension to a Format, FormatAuto when unknown.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatAuto
	}
}

// Parse decodes content over the defaults and validates the result.
func Parse(content []byte, format Format) (Config, error) {
	cfg := Default()

	switch format {
	case FormatTOML:
		md, err := toml.Decode(string(content), &cfg)
		if err != nil {
			return Config{}, fmt.Errorf("failed to parse TOML: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return Config{}, fmt.Errorf("unknown key %q: %w", undecoded[0].String(), ErrInvalid)
		}
	case FormatYAML:
		if len(strings.TrimSpace(string(content))) > 0 {
			dec := yaml.NewDecoder(strings.NewReader(string(content)))
			dec.KnownFields(true)
			if err := dec.Decode(&cfg); err != nil {
				return Config{}, fmt.Errorf("failed to parse YAML: %w", err)
			}
		}
	default:
		return Config{}, fmt.Errorf("format %s: %w", format, ErrUnknownFormat)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field ranges.
func (c Config) Validate() error {
	switch c.Output {
	case OutputJSON, OutputYAML, OutputSource:
	default:
		return fmt.Errorf("output %q must be %s, %s or %s: %w", c.Output, OutputJSON, OutputYAML, OutputSource, ErrInvalid)
	}
	if c.Indent < 0 || c.Indent > 16 {
		return fmt.Errorf("indent %d out of range [0, 16]: %w", c.Indent, ErrInvalid)
	}
	if c.MatchTimeout < 0 {
		return fmt.Errorf("match_timeout %s is negative: %w", c.MatchTimeout, ErrInvalid)
	}
	return nil
}
