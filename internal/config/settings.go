package config

// This file implements the persistent tool settings: a YAML file overlaid by
// TOH264_* environment variables. Settings only cover how the tool runs
// (binaries, logging, color), never what it transcodes.

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// envPrefix namespaces the environment overrides, e.g. TOH264_FFMPEG_PATH.
const envPrefix = "TOH264"

// Settings mirrors the settings file. Empty fields leave the Config default
// untouched.
type Settings struct {
	FfmpegPath  string    `yaml:"ffmpeg_path,omitempty" envconfig:"FFMPEG_PATH"`
	FfprobePath string    `yaml:"ffprobe_path,omitempty" envconfig:"FFPROBE_PATH"`
	LogFile     string    `yaml:"log_file,omitempty" envconfig:"LOG_FILE"`
	Color       ColorMode `yaml:"color,omitempty" envconfig:"COLOR"`
}

// DefaultSettingsPath returns $XDG_CONFIG_HOME/toh264/config.yaml (or the
// platform equivalent). It returns "" when no config directory is known.
func DefaultSettingsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "toh264", "config.yaml")
}

// LoadSettings reads the YAML settings at path, then applies environment
// overrides. A missing file is not an error; a malformed one is.
func LoadSettings(path string) (Settings, error) {
	var s Settings

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &s); err != nil {
				return Settings{}, fmt.Errorf("parse settings %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
			// no settings file; defaults apply
		default:
			return Settings{}, fmt.Errorf("read settings %s: %w", path, err)
		}
	}

	if err := envconfig.Process(envPrefix, &s); err != nil {
		return Settings{}, fmt.Errorf("load settings from environment: %w", err)
	}
	return s, nil
}

// Apply copies non-empty settings into cfg, skipping any field whose flag the
// user set explicitly (flags win over settings).
func (s Settings) Apply(cfg *Config, flagSet func(name string) bool) {
	if s.FfmpegPath != "" && !flagSet("ffmpeg") {
		cfg.FfmpegPath = s.FfmpegPath
	}
	if s.FfprobePath != "" && !flagSet("ffprobe") {
		cfg.FfprobePath = s.FfprobePath
	}
	if s.LogFile != "" && !flagSet("log") {
		cfg.LogFile = s.LogFile
	}
	if s.Color != "" && !flagSet("color") && !flagSet("no-color") {
		cfg.ColorMode = s.Color
	}
}
