package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"errdiag/pkg/diag"
)

// Environment variables overriding the config file.
const (
	EnvFullStackTraces    = "ERRDIAG_FULL_STACK_TRACES"
	EnvStackFilter        = "ERRDIAG_STACK_FILTER"
	EnvExceptionThreshold = "ERRDIAG_EXCEPTION_THRESHOLD"
	EnvResources          = "ERRDIAG_RESOURCES"
)

// Config is the CLI configuration file, ~/.errdiag/config.yaml by default.
type Config struct {
	FullStackTraces    bool     `yaml:"fullStackTraces,omitempty"`
	StackTraceFilter   []string `yaml:"stackTraceFilter,omitempty"`
	ExceptionThreshold int      `yaml:"exceptionThreshold,omitempty"`
	// Resources lists directories holding services/exception tables. Later
	// directories override earlier ones and all override the embedded tables.
	Resources []string `yaml:"resources,omitempty"`
}

func defaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", wrapWithSentinel(ErrGetHomeDirectoryFailed, err, fmt.Sprintf("failed to get home directory: %v", err))
	}
	return filepath.Join(home, ".errdiag", "config.yaml"), nil
}

// loadConfig reads the config file at path. A missing file yields an empty
// config unless the path was given explicitly.
func loadConfig(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := defaultConfigPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	// #nosec G304 -- path is the user's own config file.
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return &Config{}, nil
		}
		return nil, wrapWithSentinelAndContext(ErrReadConfigFailed, err,
			fmt.Sprintf("failed to read config: %v", err), map[string]any{"path": path})
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, wrapWithSentinelAndContext(ErrUnmarshalConfigFailed, err,
			fmt.Sprintf("failed to unmarshal config: %v", err), map[string]any{"path": path})
	}
	return &cfg, nil
}

// applyEnv overrides cfg with every ERRDIAG_* variable that is set.
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvFullStackTraces); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return invalidEnv(EnvFullStackTraces, v, err)
		}
		c.FullStackTraces = b
	}
	if v, ok := lookup(EnvStackFilter); ok {
		c.StackTraceFilter = splitList(v, ",")
	}
	if v, ok := lookup(EnvExceptionThreshold); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return invalidEnv(EnvExceptionThreshold, v, err)
		}
		c.ExceptionThreshold = n
	}
	if v, ok := lookup(EnvResources); ok {
		c.Resources = splitList(v, string(os.PathListSeparator))
	}
	return nil
}

func invalidEnv(name, value string, cause error) error {
	return wrapWithSentinelAndContext(ErrInvalidEnvValue, cause,
		fmt.Sprintf("invalid value %q for %s", value, name), map[string]any{"env": name})
}

func splitList(v, sep string) []string {
	var out []string
	for _, item := range strings.Split(v, sep) {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// resolveConfig returns the effective configuration using precedence:
// CLI flags > environment variables (ERRDIAG_*) > config file.
func resolveConfig(opts *Options, lookup func(string) (string, bool)) (*Config, error) {
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(lookup); err != nil {
		return nil, err
	}
	if opts.FullStackTraces {
		cfg.FullStackTraces = true
	}
	if len(opts.Resources) > 0 {
		cfg.Resources = append(cfg.Resources, opts.Resources...)
	}
	return cfg, nil
}

// serviceConfig converts the CLI configuration into diagnostics settings.
func (c *Config) serviceConfig() diag.Config {
	sc := diag.DefaultConfig()
	sc.FullStackTraces = c.FullStackTraces
	sc.ExceptionThreshold = c.ExceptionThreshold
	if len(c.StackTraceFilter) > 0 {
		sc.StackTraceFilter = c.StackTraceFilter
	}
	return sc
}

// resourceRoots opens every configured resource directory.
func (c *Config) resourceRoots() ([]fs.FS, error) {
	roots := make([]fs.FS, 0, len(c.Resources))
	for _, dir := range c.Resources {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			if err == nil {
				err = fmt.Errorf("%s is not a directory", dir)
			}
			return nil, wrapWithSentinelAndContext(ErrResourceDirNotFound, err,
				fmt.Sprintf("resource directory %s not found", dir), map[string]any{"dir": dir})
		}
		roots = append(roots, os.DirFS(dir))
	}
	return roots, nil
}
