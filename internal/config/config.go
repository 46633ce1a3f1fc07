package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"bibmap/internal/metadata"
)

// DefaultFile is the configuration file looked up in the working directory.
const DefaultFile = "bibmap.yaml"

// ErrInvalid reports a configuration value out of range.
var ErrInvalid = errors.New("invalid configuration")

// Config holds the runtime configuration.
type Config struct {
	// Dialect is the source schema: biblatex or bibtex.
	Dialect string `yaml:"dialect"`

	// Rules is the path of a custom rule table. Empty means the embedded
	// table of the dialect.
	Rules string `yaml:"rules,omitempty"`

	// Workers bounds the parallel translations of a batch. Zero means
	// GOMAXPROCS.
	Workers int `yaml:"workers"`

	// LabelPrefix prefixes the labels generated for exported records
	// without an id.
	LabelPrefix string `yaml:"label_prefix,omitempty"`

	Logging Logging `yaml:"logging"`
}

// Logging configures the zap logger of the CLI.
type Logging struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Dialect: string(metadata.BibLaTeX),
		Workers: runtime.GOMAXPROCS(0),
		Logging: Logging{Level: "info"},
	}
}

// Load reads a configuration file. Unset keys keep their defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultConfig(), fmt.Errorf("failed to read config %s: %w", path, err)
	}

	return Parse(data)
}

// LoadIfExists is Load, except that a missing file yields the defaults.
func LoadIfExists(path string) (Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}

	return cfg, err
}

// Parse decodes YAML configuration over the defaults and validates it.
func Parse(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return DefaultConfig(), err
	}

	return cfg, nil
}

// Validate checks every value.
func (c Config) Validate() error {
	var errs []error

	if _, err := metadata.ParseDialect(c.Dialect); err != nil {
		errs = append(errs, err)
	}

	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", c.Workers))
	}

	if _, err := c.Logging.ZapLevel(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}

	return nil
}

// DialectValue returns the parsed dialect.
func (c Config) DialectValue() metadata.Dialect {
	return metadata.Dialect(c.Dialect)
}

// ZapLevel parses the logging level.
func (l Logging) ZapLevel() (zapcore.Level, error) {
	if l.Level == "" {
		return zapcore.InfoLevel, nil
	}

	lvl, err := zapcore.ParseLevel(l.Level)
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("logging level: %w", err)
	}

	return lvl, nil
}

// ZapConfig returns a production zap configuration at the configured level
// and encoding. verbose forces the debug level.
func (l Logging) ZapConfig(verbose bool) zap.Config {
	cfg := zap.NewProductionConfig()
	if !l.JSON {
		cfg.Encoding = "console"
		cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	}

	lvl, _ := l.ZapLevel()
	if verbose {
		lvl = zapcore.DebugLevel
	}

	cfg.Level = zap.NewAtomicLevelAt(lvl)

	return cfg
}
