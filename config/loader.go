package config

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/kbukum/roster/logger"
)

// Files is the file access LoadConfig needs. Tests swap it for an
// in-memory set.
type Files interface {
	Exists(path string) bool
	LoadEnv(path string) error
}

type osFiles struct{}

func (osFiles) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (osFiles) LoadEnv(path string) error { return godotenv.Load(path) }

type loadOptions struct {
	files      Files
	configFile string
	envFile    string
	envPrefix  string
}

// LoadOption adjusts a LoadConfig call.
type LoadOption func(*loadOptions)

// WithFiles replaces the operating system file access.
func WithFiles(f Files) LoadOption {
	return func(o *loadOptions) { o.files = f }
}

// WithConfigFile skips the search for config.yml.
func WithConfigFile(path string) LoadOption {
	return func(o *loadOptions) { o.configFile = path }
}

// WithEnvFile skips the search for a .env file.
func WithEnvFile(path string) LoadOption {
	return func(o *loadOptions) { o.envFile = path }
}

// WithEnvPrefix sets the prefix an environment variable must carry to be
// bound. It is matched case-sensitively and stripped, together with the
// joining underscore, before key variants are generated. The default is
// the upper-cased service name.
func WithEnvPrefix(prefix string) LoadOption {
	return func(o *loadOptions) { o.envPrefix = prefix }
}

// LoadConfig fills cfg for serviceName. Layers apply in this order, later
// ones winning: config.yml, then the .env file (which only populates the
// process environment), then PREFIX_* environment variables. Missing
// files are skipped.
func LoadConfig(serviceName string, cfg any, opts ...LoadOption) error {
	o := loadOptions{files: osFiles{}, envPrefix: envPrefixFor(serviceName)}
	for _, opt := range opts {
		opt(&o)
	}
	log := logger.WithComponent("config")
	v := viper.New()

	if path := locate(o.files, o.configFile, configCandidates(serviceName)); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		log.Debug("config file loaded", logger.Fields("file", path))
	}

	if path := locate(o.files, o.envFile, envCandidates(serviceName)); path != "" {
		if err := o.files.LoadEnv(path); err != nil {
			log.Warn("env file skipped", logger.MergeWithError(logger.Fields("file", path), err))
		}
	}

	bindPrefixedEnv(v, o.envPrefix, os.Environ())

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("decode %s config: %w", serviceName, err)
	}
	return nil
}

// locate returns explicit when it exists, otherwise the first existing
// candidate. An explicit path that does not exist disables the search.
func locate(f Files, explicit string, candidates []string) string {
	if explicit != "" {
		if f.Exists(explicit) {
			return explicit
		}
		return ""
	}
	for _, path := range candidates {
		if f.Exists(path) {
			return path
		}
	}
	return ""
}

func configCandidates(service string) []string {
	return []string{
		"./cmd/" + service + "/config.yml",
		"../cmd/" + service + "/config.yml",
		"../../cmd/" + service + "/config.yml",
		"./config/config.yml",
		"./config.yml",
	}
}

// envCandidates prefers .env.<service> in any directory over a plain .env.
func envCandidates(service string) []string {
	var paths []string
	for _, name := range []string{".env." + service, ".env"} {
		for _, dir := range []string{"./cmd/" + service, "./config", "."} {
			paths = append(paths, dir+"/"+name)
		}
	}
	return paths
}

// envPrefixFor turns "roster" into "ROSTER" and "my-svc" into "MY_SVC".
func envPrefixFor(serviceName string) string {
	return strings.ToUpper(strings.ReplaceAll(serviceName, "-", "_"))
}

// bindPrefixedEnv sets every PREFIX_* entry of environ on v under each of
// its key variants.
func bindPrefixedEnv(v *viper.Viper, prefix string, environ []string) {
	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		rest, found := strings.CutPrefix(name, prefix+"_")
		if !found {
			continue
		}
		for _, key := range keyVariants(rest) {
			v.Set(key, value)
		}
	}
}

// keyVariants lists the viper keys an environment name may address, since
// an underscore can separate nested keys or sit inside one:
//
//	LOGGING_LEVEL            -> logging_level, logging.level
//	TELEMETRY_TRACE_ENDPOINT -> telemetry_trace_endpoint, telemetry.trace.endpoint, telemetry.trace_endpoint
func keyVariants(envKey string) []string {
	parts := strings.Split(strings.ToLower(envKey), "_")
	variants := []string{strings.Join(parts, "_")}
	add := func(key string) {
		if !slices.Contains(variants, key) {
			variants = append(variants, key)
		}
	}
	add(strings.Join(parts, "."))
	for i := 1; i < len(parts); i++ {
		add(strings.Join(parts[:i], ".") + "." + strings.Join(parts[i:], "_"))
	}
	return variants
}
