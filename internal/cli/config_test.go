package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestLoadConfig(t *testing.T) {
	t.Run("missing default file", func(t *testing.T) {
		t.Setenv("HOME", t.TempDir())
		cfg, err := loadConfig("")
		require.NoError(t, err)
		assert.Equal(t, &Config{}, cfg)
	})

	t.Run("default file", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)
		writeFile(t, filepath.Join(home, ".errdiag", "config.yaml"), "exceptionThreshold: 3\nstackTraceFilter: [app.]\n")

		cfg, err := loadConfig("")
		require.NoError(t, err)
		assert.Equal(t, 3, cfg.ExceptionThreshold)
		assert.Equal(t, []string{"app."}, cfg.StackTraceFilter)
	})

	t.Run("missing explicit file", func(t *testing.T) {
		_, err := loadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.ErrorIs(t, err, ErrReadConfigFailed)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		writeFile(t, path, "exceptionThreshold: [not an int\n")
		_, err := loadConfig(path)
		assert.ErrorIs(t, err, ErrUnmarshalConfigFailed)
	})
}

func TestConfig_ApplyEnv(t *testing.T) {
	cfg := &Config{ExceptionThreshold: 1, StackTraceFilter: []string{"x."}}
	err := cfg.applyEnv(envMap(map[string]string{
		EnvFullStackTraces:    "true",
		EnvStackFilter:        "app., runtime.,",
		EnvExceptionThreshold: "4",
		EnvResources:          "/a" + string(os.PathListSeparator) + "/b",
	}))
	require.NoError(t, err)
	assert.Equal(t, &Config{
		FullStackTraces:    true,
		StackTraceFilter:   []string{"app.", "runtime."},
		ExceptionThreshold: 4,
		Resources:          []string{"/a", "/b"},
	}, cfg)

	for _, name := range []string{EnvFullStackTraces, EnvExceptionThreshold} {
		t.Run("invalid "+name, func(t *testing.T) {
			err := (&Config{}).applyEnv(envMap(map[string]string{name: "maybe"}))
			assert.ErrorIs(t, err, ErrInvalidEnvValue)
		})
	}
}

func TestResolveConfig_Precedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "exceptionThreshold: 2\nresources: [/from-file]\n")

	cfg, err := resolveConfig(&Options{
		ConfigPath:      path,
		Resources:       []string{"/from-flag"},
		FullStackTraces: true,
	}, envMap(map[string]string{EnvExceptionThreshold: "5"}))
	require.NoError(t, err)

	assert.True(t, cfg.FullStackTraces)
	assert.Equal(t, 5, cfg.ExceptionThreshold)
	assert.Equal(t, []string{"/from-file", "/from-flag"}, cfg.Resources)
}

func TestConfig_ServiceConfig(t *testing.T) {
	sc := (&Config{}).serviceConfig()
	assert.NotEmpty(t, sc.StackTraceFilter)
	assert.False(t, sc.FullStackTraces)

	sc = (&Config{FullStackTraces: true, StackTraceFilter: []string{"app."}, ExceptionThreshold: 2}).serviceConfig()
	assert.True(t, sc.FullStackTraces)
	assert.Equal(t, []string{"app."}, sc.StackTraceFilter)
	assert.Equal(t, 2, sc.ExceptionThreshold)
}

func TestConfig_ResourceRoots(t *testing.T) {
	dir := t.TempDir()
	roots, err := (&Config{Resources: []string{dir}}).resourceRoots()
	require.NoError(t, err)
	assert.Len(t, roots, 1)

	_, err = (&Config{Resources: []string{filepath.Join(dir, "missing")}}).resourceRoots()
	assert.ErrorIs(t, err, ErrResourceDirNotFound)
}
