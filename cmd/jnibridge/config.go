package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config is the runtime configuration: where classes come from. Values from
// the YAML config file (if any) are overridden by environment variables.
type Config struct {
	ClassPath string `env:"JNIBRIDGE_CLASSPATH" yaml:"classpath"`
	JmodPath  string `env:"JAVA_BASE_JMOD" yaml:"jmod"`
	Verbose   bool   `env:"JNIBRIDGE_VERBOSE" yaml:"verbose"`
}

// loadConfig reads the optional YAML file, applies env-var overrides and
// falls back to jmod auto-discovery.
func loadConfig(path string) (Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if cfg.JmodPath == "" {
		cfg.JmodPath = findJmodPath()
	}
	return cfg, nil
}

// findJmodPath locates java.base.jmod from JAVA_HOME or well-known install
// locations. Returns "" when no JDK is available; boxing still works through
// the bootstrap bindings.
func findJmodPath() string {
	if javaHome := os.Getenv("JAVA_HOME"); javaHome != "" {
		p := filepath.Join(javaHome, "jmods", "java.base.jmod")
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	matches, _ := filepath.Glob("/usr/lib/jvm/java-*-openjdk-*/jmods/java.base.jmod")
	if len(matches) > 0 {
		return matches[0]
	}
	return ""
}
