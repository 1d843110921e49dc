package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	content := `{
		"form": "resume",
		"format": "json",
		"workers": 8,
		"log_level": "debug"
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "resume", cfg.Form)
	assert.Equal(t, FormatJSON, cfg.Format)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfig_ValidYAML(t *testing.T) {
	content := "form: cover_letter\nworkers: 2\nlog_format: json\n"

	tmpFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(tmpFile, []byte(content), 0644))

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	assert.Equal(t, "cover_letter", cfg.Form)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	content := `{ invalid json }`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(tmpFile, []byte("workers: [1, 2"), 0644))

	cfg, err := LoadConfig(tmpFile)
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config YAML")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "empty config", cfg: Config{}},
		{name: "valid config", cfg: Config{Form: "onboarding", Format: FormatJSON, Workers: 2, LogFormat: "json"}},
		{name: "unknown form", cfg: Config{Form: "profile"}, wantErr: `unknown form "profile"`},
		{name: "unknown format", cfg: Config{Format: "xml"}, wantErr: "'format'"},
		{name: "negative workers", cfg: Config{Workers: -1}, wantErr: "'workers'"},
		{name: "unknown log format", cfg: Config{LogFormat: "pretty"}, wantErr: "'log_format'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestWithEnv(t *testing.T) {
	env := map[string]string{
		EnvForm:     "entry",
		EnvFormat:   FormatJSON,
		EnvLogLevel: "info",
	}
	getenv := func(key string) string { return env[key] }

	cfg := Config{Form: "resume"}.WithEnv(getenv)
	assert.Equal(t, "resume", cfg.Form)
	assert.Equal(t, FormatJSON, cfg.Format)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestMergeWithDefaults(t *testing.T) {
	partial := Config{
		Form:    "contact",
		Workers: 16,
	}

	merged := partial.MergeWithDefaults(Defaults())

	// Custom values should be preserved
	assert.Equal(t, "contact", merged.Form)
	assert.Equal(t, 16, merged.Workers)

	// Default values should fill in empty fields
	assert.Equal(t, FormatText, merged.Format)
	assert.Equal(t, "warn", merged.LogLevel)
	assert.Equal(t, "console", merged.LogFormat)
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := Config{Form: "entry"}

	merged := cfg.MergeWithDefaults(Config{})

	assert.Equal(t, "entry", merged.Form)
	assert.Zero(t, merged.Workers)
}
