package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"bibmap/internal/metadata"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, metadata.BibLaTeX, cfg.DialectValue())
	assert.GreaterOrEqual(t, cfg.Workers, 1)
	assert.Empty(t, cfg.Rules)
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
dialect: bibtex
rules: ./custom.yaml
workers: 3
label_prefix: csl-
logging:
  level: debug
  json: true
`))
	require.NoError(t, err)

	assert.Equal(t, Config{
		Dialect:     "bibtex",
		Rules:       "./custom.yaml",
		Workers:     3,
		LabelPrefix: "csl-",
		Logging:     Logging{Level: "debug", JSON: true},
	}, cfg)
}

func TestParseKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("workers: 2\n"))
	require.NoError(t, err)

	assert.Equal(t, "biblatex", cfg.Dialect)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"dialect", "dialect: ris\n"},
		{"workers", "workers: -1\n"},
		{"level", "logging: {level: loud}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.ErrorIs(t, err, ErrInvalid)
		})
	}

	_, err := Parse([]byte("dialect: ris\n"))
	assert.ErrorIs(t, err, metadata.ErrUnknownDialect)

	cfg, err := Parse([]byte("workers: 0\n"))
	require.NoError(t, err)
	assert.Zero(t, cfg.Workers)

	_, err = Parse([]byte("workers: [1\n"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalid)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte("dialect: bibtex\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, metadata.BibTeX, cfg.DialectValue())

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)

	cfg, err = LoadIfExists(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestZapConfig(t *testing.T) {
	cfg := Logging{Level: "warn"}.ZapConfig(false)
	assert.Equal(t, "console", cfg.Encoding)
	assert.Equal(t, zapcore.WarnLevel, cfg.Level.Level())

	cfg = Logging{Level: "warn", JSON: true}.ZapConfig(true)
	assert.Equal(t, "json", cfg.Encoding)
	assert.Equal(t, zapcore.DebugLevel, cfg.Level.Level())
}
