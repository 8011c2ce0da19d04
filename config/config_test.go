package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

type testConfig struct {
	ServiceConfig `yaml:",inline" mapstructure:",squash"`
}

func TestServiceConfigApplyDefaults(t *testing.T) {
	t.Run("empty environment defaults to development", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc"}
		cfg.ApplyDefaults()
		if cfg.Environment != "development" {
			t.Errorf("expected 'development', got %q", cfg.Environment)
		}
		if cfg.Logging.Level != "info" {
			t.Errorf("expected logging level 'info', got %q", cfg.Logging.Level)
		}
		if cfg.Logging.Output != "stderr" {
			t.Errorf("expected logging output 'stderr', got %q", cfg.Logging.Output)
		}
	})

	t.Run("debug raises default log level", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc", Debug: true}
		cfg.ApplyDefaults()
		if cfg.Logging.Level != "debug" {
			t.Errorf("expected logging level 'debug', got %q", cfg.Logging.Level)
		}
	})

	t.Run("explicit level wins over debug", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc", Debug: true}
		cfg.Logging.Level = "warn"
		cfg.ApplyDefaults()
		if cfg.Logging.Level != "warn" {
			t.Errorf("expected logging level 'warn', got %q", cfg.Logging.Level)
		}
	})
}

func TestServiceConfigValidate(t *testing.T) {
	valid := func(env string) ServiceConfig {
		cfg := ServiceConfig{Name: "svc", Environment: env}
		cfg.Logging.ApplyDefaults()
		return cfg
	}
	badLogging := valid("production")
	badLogging.Logging.Format = "xml"

	tests := []struct {
		name    string
		cfg     ServiceConfig
		wantErr bool
		errMsg  string
	}{
		{"valid development", valid("development"), false, ""},
		{"valid staging", valid("staging"), false, ""},
		{"valid production", valid("production"), false, ""},
		{"missing name", ServiceConfig{Environment: "production"}, true, "Missing required field: config.name"},
		{"invalid environment", ServiceConfig{Name: "svc", Environment: "invalid"}, true, "config.environment must be one of"},
		{"invalid logging", badLogging, true, "config.logging"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if !strings.Contains(err.Error(), tc.errMsg) {
					t.Errorf("expected error containing %q, got %q", tc.errMsg, err.Error())
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestGetServiceConfig(t *testing.T) {
	cfg := &testConfig{}
	cfg.Name = "roster"
	if cfg.GetServiceConfig().Name != "roster" {
		t.Error("expected promoted GetServiceConfig to return embedded config")
	}
}

func TestLoadConfigWithYAML(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yml")
	yamlContent := `
name: roster
environment: staging
version: "1.0.0"
logging:
  level: warn
  format: json
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	var cfg testConfig
	if err := LoadConfig("roster", &cfg, WithConfigFile(configPath), WithFiles(osFiles{})); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Name != "roster" {
		t.Errorf("expected name 'roster', got %q", cfg.Name)
	}
	if cfg.Environment != "staging" {
		t.Errorf("expected environment 'staging', got %q", cfg.Environment)
	}
	if cfg.Logging.Level != "warn" || cfg.Logging.Format != "json" {
		t.Errorf("expected logging warn/json, got %+v", cfg.Logging)
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(configPath, []byte("name: roster\nlogging:\n  level: info\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	t.Setenv("ROSTER_LOGGING_LEVEL", "error")
	t.Setenv("LOGGING_LEVEL", "trace")

	var cfg testConfig
	if err := LoadConfig("roster", &cfg, WithConfigFile(configPath)); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Logging.Level != "error" {
		t.Errorf("expected prefixed env to win, got %q", cfg.Logging.Level)
	}
}

func TestLoadConfigEnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	if err := os.WriteFile(envPath, []byte("ROSTER_ENVIRONMENT=production\n"), 0644); err != nil {
		t.Fatalf("failed to write env: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("ROSTER_ENVIRONMENT") })

	var cfg testConfig
	err := LoadConfig("roster", &cfg, WithConfigFile(filepath.Join(dir, "missing.yml")), WithEnvFile(envPath))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Environment != "production" {
		t.Errorf("expected environment from .env, got %q", cfg.Environment)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	var cfg testConfig
	err := LoadConfig("nonexistent-service", &cfg, WithConfigFile("/nonexistent/path.yml"))
	if err != nil {
		t.Fatalf("expected LoadConfig to succeed with missing file, got %v", err)
	}
}

func TestLoadConfigMalformedFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(configPath, []byte("name: [unterminated\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	var cfg testConfig
	if err := LoadConfig("roster", &cfg, WithConfigFile(configPath)); err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}

func TestLocate(t *testing.T) {
	tests := []struct {
		name     string
		files    []string
		explicit string
		want     string
	}{
		{"first candidate", []string{"./cmd/roster/config.yml", "./config.yml"}, "", "./cmd/roster/config.yml"},
		{"later candidate", []string{"./config.yml"}, "", "./config.yml"},
		{"nothing found", nil, "", ""},
		{"explicit wins", []string{"/etc/roster.yml", "./config.yml"}, "/etc/roster.yml", "/etc/roster.yml"},
		{"missing explicit disables search", []string{"./config.yml"}, "/etc/roster.yml", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fs := newMockFS(tc.files...)
			if got := locate(fs, tc.explicit, configCandidates("roster")); got != tc.want {
				t.Errorf("locate() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestEnvCandidates_PreferServiceFile(t *testing.T) {
	fs := newMockFS("./.env", "./cmd/roster/.env.roster")
	if got := locate(fs, "", envCandidates("roster")); got != "./cmd/roster/.env.roster" {
		t.Errorf("expected service env file, got %q", got)
	}
	if got := locate(newMockFS("./.env"), "", envCandidates("roster")); got != "./.env" {
		t.Errorf("expected plain env file, got %q", got)
	}
}

func TestLoadConfig_UsesFiles(t *testing.T) {
	fs := newMockFS("./.env")
	var cfg testConfig
	if err := LoadConfig("roster", &cfg, WithFiles(fs)); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if len(fs.loaded) != 1 || fs.loaded[0] != "./.env" {
		t.Errorf("loaded env files = %v", fs.loaded)
	}
}

type mockFS struct {
	files  map[string]bool
	loaded []string
}

func newMockFS(paths ...string) *mockFS {
	m := &mockFS{files: make(map[string]bool)}
	for _, p := range paths {
		m.files[p] = true
	}
	return m
}

func (m *mockFS) Exists(path string) bool {
	return m.files[path]
}

func (m *mockFS) LoadEnv(path string) error {
	m.loaded = append(m.loaded, path)
	return nil
}

func TestLoadOptions(t *testing.T) {
	var o loadOptions
	WithFiles(newMockFS())(&o)
	WithConfigFile("/path/to/config.yml")(&o)
	WithEnvFile("/path/to/.env")(&o)
	WithEnvPrefix("APP")(&o)

	if o.files == nil {
		t.Error("expected files to be set")
	}
	if o.configFile != "/path/to/config.yml" {
		t.Errorf("expected config file path, got %q", o.configFile)
	}
	if o.envFile != "/path/to/.env" {
		t.Errorf("expected env file path, got %q", o.envFile)
	}
	if o.envPrefix != "APP" {
		t.Errorf("expected env prefix, got %q", o.envPrefix)
	}
}

func TestEnvPrefixFor(t *testing.T) {
	if got := envPrefixFor("roster"); got != "ROSTER" {
		t.Errorf("expected ROSTER, got %q", got)
	}
	if got := envPrefixFor("my-svc"); got != "MY_SVC" {
		t.Errorf("expected MY_SVC, got %q", got)
	}
}

func TestBindPrefixedEnv(t *testing.T) {
	v := viper.New()
	bindPrefixedEnv(v, "ROSTER", []string{
		"ROSTER_LOGGING_FORMAT=json",
		"PATH=/usr/bin",
		"ROSTERX_NAME=ignored",
		"malformed",
	})
	if got := v.GetString("logging.format"); got != "json" {
		t.Errorf("expected logging.format=json, got %q", got)
	}
	if v.IsSet("path") {
		t.Error("unprefixed variables must not be bound")
	}
	if v.IsSet("name") {
		t.Error("variables with a longer prefix must not be bound")
	}
}

func TestKeyVariants(t *testing.T) {
	got := keyVariants("TELEMETRY_TRACE_ENDPOINT")
	want := []string{
		"telemetry_trace_endpoint",
		"telemetry.trace.endpoint",
		"telemetry.trace_endpoint",
	}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("variant %d: expected %q, got %q", i, want[i], got[i])
		}
	}

	single := keyVariants("NAME")
	if len(single) != 1 || single[0] != "name" {
		t.Errorf("expected [name], got %v", single)
	}
}
