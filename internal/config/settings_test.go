package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFile(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), s)
}

func TestLoad_PartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output_dir: /music\nrequest_timeout: 15s\n"), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/music", s.OutputDir)
	assert.Equal(t, 15*time.Second, s.RequestTimeout)
	assert.Equal(t, "bcdl", s.UserAgent, "unset keys keep defaults")
	assert.False(t, s.SanitizeFileNames)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "malformed yaml", content: "output_dir: [unclosed"},
		{name: "negative timeout", content: "request_timeout: -1s"},
		{name: "negative cover size", content: "cover_art_max_size: -5"},
		{name: "unknown log level", content: "log_level: loud"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestSettings_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	want := DefaultSettings()
	want.OutputDir = "/srv/music"
	want.SanitizeFileNames = true
	want.CoverArtMaxSize = 500
	want.LogLevel = "debug"
	require.NoError(t, want.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvOutputDir, "/env/music")
	t.Setenv(EnvUserAgent, "")
	t.Setenv(EnvLogLevel, "warn")

	s := DefaultSettings()
	ApplyEnv(s)

	assert.Equal(t, "/env/music", s.OutputDir)
	assert.Equal(t, "bcdl", s.UserAgent, "empty variables are ignored")
	assert.Equal(t, zerolog.WarnLevel, s.Level())
}

func TestSettings_Level(t *testing.T) {
	s := DefaultSettings()
	assert.Equal(t, zerolog.InfoLevel, s.Level())

	s.LogLevel = ""
	assert.Equal(t, zerolog.InfoLevel, s.Level())

	s.LogLevel = "debug"
	assert.Equal(t, zerolog.DebugLevel, s.Level())
}
