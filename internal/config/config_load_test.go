package config

import (
	"os"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// loadWithArgs runs LoadFromFlags against a fresh flag set and viper
// instance with os.Args set to args.
func loadWithArgs(t *testing.T, args ...string) (*Config, error) {
	t.Helper()

	originalArgs := os.Args
	t.Cleanup(func() {
		os.Args = originalArgs
		pflag.CommandLine = pflag.NewFlagSet(originalArgs[0], pflag.ExitOnError)
		viper.Reset()
	})

	os.Args = append([]string{"mcp-pdf-forms"}, args...)
	pflag.CommandLine = pflag.NewFlagSet(os.Args[0], pflag.ContinueOnError)
	viper.Reset()

	return LoadFromFlags()
}

func TestLoadFromFlags_DefaultConfig(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := loadWithArgs(t)
	require.NoError(t, err)

	assert.Equal(t, ModeStdio, cfg.Mode)
	assert.Equal(t, DefaultHost, cfg.Host)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, int64(DefaultMaxFileSize), cfg.MaxFileSize)
	assert.Equal(t, DefaultMaxFieldDepth, cfg.MaxFieldDepth)
	assert.NotEmpty(t, cfg.PDFDirectory)
}

func TestLoadFromFlags_ValidFlags(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		check func(t *testing.T, cfg *Config)
	}{
		{
			name: "server mode with custom host and port",
			args: []string{"--mode=server", "--host=0.0.0.0", "--port=9090"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, ModeServer, cfg.Mode)
				assert.Equal(t, "0.0.0.0:9090", cfg.Address())
			},
		},
		{
			name: "debug logging",
			args: []string{"--log-level=debug"},
			check: func(t *testing.T, cfg *Config) {
				assert.True(t, cfg.IsDebug())
			},
		},
		{
			name: "custom max file size",
			args: []string{"--max-file-size=50000000"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, int64(50000000), cfg.MaxFileSize)
			},
		},
		{
			name: "password and field depth",
			args: []string{"--password=open-sesame", "--max-field-depth=8"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "open-sesame", cfg.Password)
				assert.Equal(t, 8, cfg.MaxFieldDepth)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			cfg, err := loadWithArgs(t, append(tt.args, "--dir="+dir)...)
			require.NoError(t, err)
			assert.Equal(t, dir, cfg.PDFDirectory)
			tt.check(t, cfg)
		})
	}
}

func TestLoadFromFlags_EnvironmentVariables(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MCP_PDF_FORMS_DIR", dir)
	t.Setenv("MCP_PDF_FORMS_LOG_LEVEL", "warn")
	t.Setenv("MCP_PDF_FORMS_MAX_FIELD_DEPTH", "16")
	t.Setenv("MCP_PDF_FORMS_PASSWORD", "env-pass")

	cfg, err := loadWithArgs(t)
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.PDFDirectory)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 16, cfg.MaxFieldDepth)
	assert.Equal(t, "env-pass", cfg.Password)
}

func TestLoadFromFlags_FlagOverridesEnvironment(t *testing.T) {
	t.Setenv("MCP_PDF_FORMS_LOG_LEVEL", "warn")

	cfg, err := loadWithArgs(t, "--log-level=error", "--dir="+t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.LogLevel)
}

func TestLoadFromFlags_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"invalid mode", []string{"--mode=http"}, "mode must be either"},
		{"invalid port", []string{"--mode=server", "--port=0"}, "port must be between"},
		{"invalid log level", []string{"--log-level=loud"}, "invalid log level"},
		{"invalid field depth", []string{"--max-field-depth=0"}, "maximum field depth"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := loadWithArgs(t, append(tt.args, "--dir="+t.TempDir())...)
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), "invalid configuration")
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFromFlags_VersionFlag(t *testing.T) {
	for _, flag := range []string{"--version", "-version", "-v"} {
		cfg, err := loadWithArgs(t, flag)
		require.Error(t, err, flag)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "version requested")
	}
}
