package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Environment variables read by ApplyEnv.
const (
	EnvOutputDir = "BCDL_OUTPUT_DIR"
	EnvUserAgent = "BCDL_USER_AGENT"
	EnvLogLevel  = "BCDL_LOG_LEVEL"

	// EnvLogFile is read by the TUI only.
	EnvLogFile = "BCDL_LOG_FILE"
)

// Settings holds all configuration options.
type Settings struct {
	// Download settings
	OutputDir         string        `json:"output_dir"          yaml:"output_dir"`
	UserAgent         string        `json:"user_agent"          yaml:"user_agent"`
	RequestTimeout    time.Duration `json:"request_timeout"     yaml:"request_timeout"`
	SanitizeFileNames bool          `json:"sanitize_file_names" yaml:"sanitize_file_names"`

	// Cover art settings
	CoverArtMaxSize      int  `json:"cover_art_max_size"       yaml:"cover_art_max_size"`
	ConvertCoverArtToJPG bool `json:"convert_cover_art_to_jpg" yaml:"convert_cover_art_to_jpg"`

	// Logging
	LogLevel string `json:"log_level" yaml:"log_level"`
}

// DefaultSettings returns settings with default values.
//
// An empty OutputDir means the process working directory.
func DefaultSettings() *Settings {
	return &Settings{
		OutputDir:         "",
		UserAgent:         "bcdl",
		RequestTimeout:    60 * time.Second,
		SanitizeFileNames: false,

		CoverArtMaxSize:      0,
		ConvertCoverArtToJPG: false,

		LogLevel: zerolog.LevelInfoValue,
	}
}

// DefaultPath returns the settings file location under the user's
// configuration directory.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "bcdl.yaml"
	}
	return filepath.Join(dir, "bcdl", "config.yaml")
}

// Load reads settings from a YAML file. Keys missing from the file keep
// their default value, and a missing file yields DefaultSettings.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultSettings(), nil
		}
		return nil, fmt.Errorf("failed to read settings file %q: %w", path, err)
	}

	settings := DefaultSettings()
	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings file %q: %w", path, err)
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return settings, nil
}

// Save writes settings to a YAML file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

// Validate reports the first invalid option.
func (s *Settings) Validate() error {
	if s.RequestTimeout <= 0 {
		return errors.New("request timeout must be positive")
	}

	if s.CoverArtMaxSize < 0 {
		return errors.New("cover art max size must not be negative")
	}

	if _, err := zerolog.ParseLevel(s.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q", s.LogLevel)
	}

	return nil
}

// ApplyEnv overrides settings with the BCDL_* environment variables that
// are set and not empty.
func ApplyEnv(s *Settings) {
	if v := os.Getenv(EnvOutputDir); v != "" {
		s.OutputDir = v
	}
	if v := os.Getenv(EnvUserAgent); v != "" {
		s.UserAgent = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		s.LogLevel = v
	}
}

// Level returns the configured log level, or info when it does not parse.
func (s *Settings) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(s.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}
