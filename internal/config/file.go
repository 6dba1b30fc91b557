package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	apperrors "github.com/agbru/fibgrid/internal/errors"
)

// fileConfig is the on-disk shape of a config file. Pointer fields
// distinguish an absent key from a zero value.
type fileConfig struct {
	Size           *int     `toml:"size" yaml:"size"`
	MaxSize        *int     `toml:"max_size" yaml:"max_size"`
	Mode           *string  `toml:"mode" yaml:"mode"`
	Addr           *string  `toml:"addr" yaml:"addr"`
	Highlight      *string  `toml:"highlight" yaml:"highlight"`
	AllowedOrigins []string `toml:"allowed_origins" yaml:"allowed_origins"`
	LogLevel       *string  `toml:"log_level" yaml:"log_level"`
	LogFile        *string  `toml:"log_file" yaml:"log_file"`
	Theme          *string  `toml:"theme" yaml:"theme"`
	NoColor        *bool    `toml:"no_color" yaml:"no_color"`
}

// loadFile decodes path according to its extension.
func loadFile(path string) (fileConfig, error) {
	var fc fileConfig
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.DecodeFile(path, &fc); err != nil {
			return fileConfig{}, apperrors.NewConfigError("reading config %s: %v", path, err)
		}
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return fileConfig{}, apperrors.NewConfigError("reading config %s: %v", path, err)
		}
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return fileConfig{}, apperrors.NewConfigError("reading config %s: %v", path, err)
		}
	default:
		return fileConfig{}, apperrors.NewConfigError("unsupported config format %q (accepted: .toml, .yaml, .yml)", ext)
	}
	return fc, nil
}

// applyFileOverrides loads path and copies every key it sets into config,
// skipping flags given explicitly on the command line.
func applyFileOverrides(config *AppConfig, fs *flag.FlagSet, path string) error {
	fc, err := loadFile(path)
	if err != nil {
		return err
	}

	setInt := func(flagName string, src *int, dst *int) {
		if src != nil && !isFlagSet(fs, flagName) {
			*dst = *src
		}
	}
	setString := func(flagName string, src *string, dst *string) {
		if src != nil && !isFlagSet(fs, flagName) {
			*dst = *src
		}
	}

	setInt("size", fc.Size, &config.Size)
	setInt("max-size", fc.MaxSize, &config.MaxSize)
	setString("mode", fc.Mode, &config.Mode)
	setString("addr", fc.Addr, &config.Addr)
	setString("log-level", fc.LogLevel, &config.LogLevel)
	setString("log-file", fc.LogFile, &config.LogFile)
	setString("theme", fc.Theme, &config.Theme)

	if fc.Highlight != nil && !isFlagSet(fs, "highlight") {
		d, err := time.ParseDuration(*fc.Highlight)
		if err != nil {
			return apperrors.NewConfigError("config %s: invalid highlight %q", path, *fc.Highlight)
		}
		config.Highlight = d
	}
	if fc.AllowedOrigins != nil && !isFlagSet(fs, "allowed-origins") {
		config.AllowedOrigins = fc.AllowedOrigins
	}
	if fc.NoColor != nil && !isFlagSet(fs, "no-color") {
		config.NoColor = *fc.NoColor
	}
	return nil
}

// String summarizes the configuration for debug logs.
func (c AppConfig) String() string {
	return fmt.Sprintf("size=%d max-size=%d mode=%s addr=%s highlight=%s theme=%s",
		c.Size, c.MaxSize, c.Mode, c.Addr, c.Highlight, c.Theme)
}
