package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("JNIBRIDGE_CLASSPATH", "")
	t.Setenv("JAVA_BASE_JMOD", "")
	t.Setenv("JNIBRIDGE_VERBOSE", "false")
	t.Setenv("JAVA_HOME", t.TempDir()) // no jmods inside; discovery yields ""

	t.Run("yaml file", func(t *testing.T) {
		// t.Setenv registers the restore; the variable must be absent so
		// the YAML value is not overridden.
		t.Setenv("JNIBRIDGE_VERBOSE", "false")
		require.NoError(t, os.Unsetenv("JNIBRIDGE_VERBOSE"))

		path := filepath.Join(t.TempDir(), "jnibridge.yaml")
		require.NoError(t, os.WriteFile(path, []byte("classpath: /opt/classes\nverbose: true\n"), 0o644))

		cfg, err := loadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "/opt/classes", cfg.ClassPath)
		assert.True(t, cfg.Verbose)
	})

	t.Run("env overrides yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "jnibridge.yaml")
		require.NoError(t, os.WriteFile(path, []byte("classpath: /opt/classes\nverbose: true\n"), 0o644))
		t.Setenv("JNIBRIDGE_CLASSPATH", "/env/classes")
		t.Setenv("JAVA_BASE_JMOD", "/env/java.base.jmod")
		t.Setenv("JNIBRIDGE_VERBOSE", "false")

		cfg, err := loadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "/env/classes", cfg.ClassPath)
		assert.Equal(t, "/env/java.base.jmod", cfg.JmodPath)
		assert.False(t, cfg.Verbose)
	})

	t.Run("missing file errors", func(t *testing.T) {
		_, err := loadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
	})

	t.Run("malformed yaml errors", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("classpath: [\n"), 0o644))
		_, err := loadConfig(path)
		require.Error(t, err)
	})

	t.Run("no file is fine", func(t *testing.T) {
		cfg, err := loadConfig("")
		require.NoError(t, err)
		assert.Empty(t, cfg.ClassPath)
	})
}
