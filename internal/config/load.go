package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"

	"github.com/conn-castle/pinset/internal/messages"
	"github.com/conn-castle/pinset/internal/templates"
)

// ErrConfigValidation wraps validation failures, as opposed to TOML syntax
// or filesystem errors.
var ErrConfigValidation = errors.New("config validation failed")

var readFileFunc = os.ReadFile

// Load reads the config at path, falls back to the embedded template when
// the file does not exist, applies PINSET_* overrides and validates.
func Load(path string) (*Config, error) {
	data, err := readFileFunc(path)
	source := path
	if errors.Is(err, fs.ErrNotExist) {
		data, err = templates.Read("config.toml")
		if err != nil {
			return nil, fmt.Errorf(messages.ConfigFailedReadTemplateFmt, err)
		}
		source = "template config.toml"
	} else if err != nil {
		return nil, fmt.Errorf(messages.ConfigMissingFileFmt, path, err)
	}

	cfg, err := ParseConfig(data, source)
	if err != nil {
		return nil, err
	}
	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(source); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigValidation, err)
	}
	return cfg, nil
}

// LoadTemplateConfig returns the embedded default config.
func LoadTemplateConfig() (*Config, error) {
	data, err := templates.Read("config.toml")
	if err != nil {
		return nil, fmt.Errorf(messages.ConfigFailedReadTemplateFmt, err)
	}
	return ParseConfig(data, "template config.toml")
}

// ApplyEnv overlays PINSET_* environment variables onto cfg.
// Unset variables leave the parsed values untouched.
func ApplyEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf(messages.ConfigEnvOverrideFailedFmt, err)
	}
	return nil
}

// ParseConfig parses and validates config TOML data.
// source is used in error messages.
func ParseConfig(data []byte, source string) (*Config, error) {
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf(messages.ConfigInvalidConfigFmt, source, err)
	}
	if err := decodeStrict(data); err != nil {
		return nil, fmt.Errorf("%w: "+messages.ConfigUnrecognizedKeysFmt+" "+messages.ConfigValidationGuidance, ErrConfigValidation, source, err)
	}
	if err := cfg.Validate(source); err != nil {
		return nil, fmt.Errorf("%w: %w "+messages.ConfigValidationGuidance, ErrConfigValidation, err)
	}
	return &cfg, nil
}

// decodeStrict re-decodes with unknown-key rejection; toml.Unmarshal
// silently drops keys that have no struct field.
func decodeStrict(data []byte) error {
	var cfg Config
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	return decoder.Decode(&cfg)
}

// ParseConfigLenient parses config TOML without validation. Only syntax
// errors are reported, so repair commands can read a partially valid file.
func ParseConfigLenient(data []byte, source string) (*Config, error) {
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf(messages.ConfigInvalidConfigFmt, source, err)
	}
	return &cfg, nil
}

// AnnouncementsTimeout returns the feed request timeout.
func (c *Config) AnnouncementsTimeout() time.Duration {
	seconds := c.Announcements.TimeoutSeconds
	if seconds <= 0 {
		seconds = DefaultAnnouncementsTimeoutSeconds
	}
	return time.Duration(seconds) * time.Second
}
