// Package config loads the updater configuration: built-in defaults for the
// current OS, an optional YAML file and SAU_* environment overrides, applied
// in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/xthedev1/Spicetifyautoupdaterandinstaller/pkg/lib"
	"github.com/xthedev1/Spicetifyautoupdaterandinstaller/pkg/lib/release"
)

const envPrefix = "SAU_"

// Config is the root configuration.
type Config struct {
	Tool    ToolConfig    `yaml:"tool"`
	Plugin  PluginConfig  `yaml:"plugin"`
	Release ReleaseConfig `yaml:"release"`
	Log     LogConfig     `yaml:"log"`
	// OpenURI is opened after a successful install when requested.
	OpenURI string `yaml:"openURI"`
	// PathSeparator overrides the PATH list separator used when merging scopes.
	PathSeparator string `yaml:"pathSeparator"`
}

// ToolConfig describes the managed CLI tool.
type ToolConfig struct {
	// Program is the tool executable, probed with --version and updated with update.
	Program string `yaml:"program"`
	// Sentinel is the phrase the installer prints on success.
	Sentinel string        `yaml:"sentinel"`
	Install  CommandConfig `yaml:"install"`
}

// PluginConfig lists plugin installers, tried in order until one succeeds.
type PluginConfig struct {
	Name       string          `yaml:"name"`
	Installers []CommandConfig `yaml:"installers"`
}

type ReleaseConfig struct {
	URL       string        `yaml:"url"`
	UserAgent string        `yaml:"userAgent"`
	Timeout   time.Duration `yaml:"timeout"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// CommandConfig is a program plus its argument line.
type CommandConfig struct {
	Program   string `yaml:"program"`
	Arguments string `yaml:"arguments"`
}

// Shell returns a streaming shell-interpreter command.
func (c CommandConfig) Shell() lib.Command {
	return lib.Command{Program: c.Program, Arguments: c.Arguments, CaptureOutput: true, Shell: true}
}

// Default returns the configuration for the current OS.
func Default() *Config {
	return &Config{
		Tool: ToolConfig{
			Program:  "spicetify",
			Sentinel: "spicetify was successfully installed!",
			Install:  defaultToolInstaller,
		},
		Plugin: PluginConfig{
			Name:       "Spicetify Marketplace",
			Installers: append([]CommandConfig(nil), defaultPluginInstallers...),
		},
		Release: ReleaseConfig{
			URL:       release.DefaultURL,
			UserAgent: release.DefaultUserAgent,
			Timeout:   30 * time.Second,
		},
		Log: LogConfig{
			Level: "info",
			File:  "console",
		},
		OpenURI: "spotify:",
	}
}

// Load reads path on top of the defaults and applies environment overrides.
// An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
		log.Debugf("loaded config from %s", path)
	}

	cfg.applyEnv(os.LookupEnv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	overrides := []struct {
		key string
		dst *string
	}{
		{"TOOL", &c.Tool.Program},
		{"SENTINEL", &c.Tool.Sentinel},
		{"RELEASE_URL", &c.Release.URL},
		{"LOG_LEVEL", &c.Log.Level},
		{"LOG_FILE", &c.Log.File},
		{"OPEN_URI", &c.OpenURI},
		{"PATH_SEPARATOR", &c.PathSeparator},
	}
	for _, o := range overrides {
		if v, ok := lookup(envPrefix + o.key); ok && v != "" {
			*o.dst = v
		}
	}

	if v, ok := lookup(envPrefix + "RELEASE_TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Warnf("ignoring %sRELEASE_TIMEOUT=%q: %v", envPrefix, v, err)
			return
		}
		c.Release.Timeout = d
	}
}

// Validate checks the fields every pipeline depends on.
func (c *Config) Validate() error {
	if c.Tool.Program == "" {
		return errors.New("tool.program is required")
	}
	if c.Tool.Sentinel == "" {
		return errors.New("tool.sentinel is required")
	}
	if c.Tool.Install.Program == "" {
		return errors.New("tool.install.program is required")
	}
	if len(c.Plugin.Installers) == 0 {
		return errors.New("at least one plugin installer is required")
	}
	for i, inst := range c.Plugin.Installers {
		if inst.Program == "" {
			return fmt.Errorf("plugin.installers[%d].program is required", i)
		}
	}
	if c.Release.Timeout <= 0 {
		return errors.New("release.timeout must be positive")
	}
	return nil
}
