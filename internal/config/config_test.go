package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yasinhessnawi1/exec-risk-dashboard/internal/constants"
)

func TestLoad(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	configContent := `
app:
  environment: testing
  name: TestDashboard
server:
  host: 127.0.0.1
  port: 8181
  read_timeout: 5s
source:
  path: data/activity.csv
  segment_size: 1000
  cache_ttl: 2m
detection:
  vocabulary: [darn, heck]
  large_spending_threshold: "500"
  workers: 4
export:
  file_name: risk.csv
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0o644))

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "testing", cfg.App.Environment)
	assert.Equal(t, "TestDashboard", cfg.App.Name)
	assert.Equal(t, 8181, cfg.Server.Port)
	assert.Equal(t, filepath.Clean("data/activity.csv"), cfg.Source.Path)
	assert.Equal(t, 1000, cfg.Source.SegmentSize)
	assert.Equal(t, 2*time.Minute, cfg.Source.CacheTTL)
	assert.Equal(t, constants.DefaultCacheSize, cfg.Source.CacheSize)
	assert.Equal(t, []string{"darn", "heck"}, cfg.Detection.Vocabulary)
	assert.Equal(t, "500", cfg.Detection.LargeSpendingThreshold)
	assert.Equal(t, 4, cfg.Detection.Workers)
	assert.Equal(t, "risk.csv", cfg.Export.FileName)
	assert.Equal(t, constants.DefaultDemoExportFileName, cfg.Export.DemoFileName)
	assert.Same(t, cfg, Get())
}

func TestLoadWithInvalidPath(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, constants.EnvDevelopment, cfg.App.Environment)
	assert.Equal(t, constants.DefaultSegmentSize, cfg.Source.SegmentSize)
	assert.Equal(t, constants.DefaultCacheTTL, cfg.Source.CacheTTL)
}

func TestLoadWithMalformedFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("source: [unclosed"), 0o644))

	_, err := Load(configPath)
	assert.Error(t, err)
}

func TestServerSettings_ServerAddress(t *testing.T) {
	settings := ServerSettings{Host: "localhost", Port: 8080}
	assert.Equal(t, "localhost:8080", settings.ServerAddress())
}

func TestAppSettings_Environment(t *testing.T) {
	tests := []struct {
		name         string
		environment  string
		isDev        bool
		isProduction bool
		isTesting    bool
	}{
		{name: "Development", environment: "development", isDev: true},
		{name: "Production", environment: "PRODUCTION", isProduction: true},
		{name: "Testing", environment: "testing", isTesting: true},
		{name: "Unknown", environment: "staging"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := AppSettings{Environment: tt.environment}
			assert.Equal(t, tt.isDev, settings.IsDevelopment())
			assert.Equal(t, tt.isProduction, settings.IsProduction())
			assert.Equal(t, tt.isTesting, settings.IsTesting())
		})
	}
}

func TestOperatorSettings_RevealEnabled(t *testing.T) {
	assert.False(t, (&OperatorSettings{}).RevealEnabled())
	assert.False(t, (&OperatorSettings{PassphraseHash: "aGFzaA=="}).RevealEnabled())
	assert.True(t, (&OperatorSettings{PassphraseHash: "aGFzaA==", PassphraseSalt: "c2FsdA=="}).RevealEnabled())
}

func TestSetDefaults(t *testing.T) {
	cfg := &AppConfig{}
	setDefaults(cfg)

	assert.Equal(t, constants.EnvDevelopment, cfg.App.Environment)
	assert.Equal(t, constants.DefaultAppName, cfg.App.Name)
	assert.Equal(t, constants.DefaultServerHost, cfg.Server.Host)
	assert.Equal(t, constants.DefaultServerPort, cfg.Server.Port)
	assert.Equal(t, constants.DefaultSourcePath, cfg.Source.Path)
	assert.Equal(t, constants.DefaultSegmentSize, cfg.Source.SegmentSize)
	assert.Equal(t, constants.DefaultLargeSpendingThreshold, cfg.Detection.LargeSpendingThreshold)
	assert.Empty(t, cfg.Detection.Vocabulary)
	assert.Equal(t, constants.DefaultRevealTokenExpiry, cfg.Operator.TokenExpiry)
	assert.Equal(t, uint32(constants.DefaultPasswordHashMemory), cfg.PasswordHash.Memory)
	assert.Equal(t, constants.DefaultExportFileName, cfg.Export.FileName)
}

func TestValidateConfig(t *testing.T) {
	valid := func() *AppConfig {
		cfg := &AppConfig{}
		setDefaults(cfg)
		return cfg
	}

	tests := []struct {
		name      string
		mutate    func(*AppConfig)
		shouldErr bool
	}{
		{name: "Valid config", mutate: func(*AppConfig) {}},
		{
			name:   "Unknown environment falls back to development",
			mutate: func(c *AppConfig) { c.App.Environment = "staging" },
		},
		{
			name:      "Invalid log level",
			mutate:    func(c *AppConfig) { c.Logging.Level = "loud" },
			shouldErr: true,
		},
		{
			name:      "Non-numeric threshold",
			mutate:    func(c *AppConfig) { c.Detection.LargeSpendingThreshold = "lots" },
			shouldErr: true,
		},
		{
			name:      "Negative workers",
			mutate:    func(c *AppConfig) { c.Detection.Workers = -1 },
			shouldErr: true,
		},
		{
			name:      "Hash without salt",
			mutate:    func(c *AppConfig) { c.Operator.PassphraseHash = "aGFzaA==" },
			shouldErr: true,
		},
		{
			name: "Passphrase without token secret",
			mutate: func(c *AppConfig) {
				c.Operator.PassphraseHash = "aGFzaA=="
				c.Operator.PassphraseSalt = "c2FsdA=="
			},
			shouldErr: true,
		},
		{
			name: "Unauthenticated raw in production",
			mutate: func(c *AppConfig) {
				c.App.Environment = constants.EnvProduction
				c.Operator.AllowUnauthenticatedRaw = true
			},
			shouldErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := validateConfig(cfg)
			if tt.shouldErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
