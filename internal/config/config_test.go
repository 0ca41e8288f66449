package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "data", cfg.Paths.DataDir)
	assert.Equal(t, "reports", cfg.Paths.ReportsDir)
	assert.Equal(t, "pmo-pulse", cfg.Observability.ServiceName)
	assert.Equal(t, 10, cfg.Report.TopN)
	assert.True(t, cfg.Security.RateLimit.Enabled)
}

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "default config passes",
			mutate: func(c *Config) {},
		},
		{
			name:    "zero port rejected",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: true,
		},
		{
			name:    "port above range rejected",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: true,
		},
		{
			name:    "unknown log level rejected",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: true,
		},
		{
			name:    "unknown log output rejected",
			mutate:  func(c *Config) { c.Logging.Output = "syslog" },
			wantErr: true,
		},
		{
			name:    "empty data dir rejected",
			mutate:  func(c *Config) { c.Paths.DataDir = "" },
			wantErr: true,
		},
		{
			name:    "no allowed origins rejected",
			mutate:  func(c *Config) { c.Security.AllowedOrigins = nil },
			wantErr: true,
		},
		{
			name:    "negative read timeout rejected",
			mutate:  func(c *Config) { c.Server.ReadTimeout = -time.Second },
			wantErr: true,
		},
		{
			name:    "report top_n below minimum rejected",
			mutate:  func(c *Config) { c.Report.TopN = 1 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
server:
  port: 9090
logging:
  level: debug
paths:
  data_dir: /srv/extracts
report:
  title: Quarterly Portfolio Review
  top_n: 15
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	cfg := Default()
	require.NoError(t, loadFromFile(path, cfg))

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "/srv/extracts", cfg.Paths.DataDir)
	assert.Equal(t, "Quarterly Portfolio Review", cfg.Report.Title)
	assert.Equal(t, 15, cfg.Report.TopN)
	// Untouched values keep their defaults.
	assert.Equal(t, "reports", cfg.Paths.ReportsDir)
}

func TestLoadFromFileMalformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [not a map"), 0644))

	cfg := Default()
	assert.Error(t, loadFromFile(path, cfg))
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("PMO_SERVER_PORT", "9191")
	t.Setenv("PMO_LOGGING_LEVEL", "warn")
	t.Setenv("PMO_PATHS_DATA_DIR", "extracts")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9191, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "extracts", cfg.Paths.DataDir)
}

func TestEnvOverrideInvalidValueFailsLoad(t *testing.T) {
	t.Setenv("PMO_SERVER_PORT", "0")

	_, err := Load()
	assert.Error(t, err)
}
