package ioutils

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"normal-file.mp3", "normal-file.mp3"},
		{"file:with:colons.mp3", "file_with_colons.mp3"},
		{"file<with>brackets.mp3", "file_with_brackets.mp3"},
		{"file/with\\slashes.mp3", "file_with_slashes.mp3"},
		{"file|with|pipes.mp3", "file_with_pipes.mp3"},
		{"file?with*wildcards.mp3", "file_with_wildcards.mp3"},
		{"file\"with\"quotes.mp3", "file_with_quotes.mp3"},
		{"trailing dots...", "trailing dots"},
		{"multiple   spaces", "multiple spaces"},
		{"trailing spaces   ", "trailing spaces"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFileName(tt.input))
		})
	}
}

func TestWriteFile_Overwrites(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "Band", "Title")
	require.NoError(t, EnsureDir(dir))
	require.NoError(t, EnsureDir(dir), "existing directory is not an error")

	path := filepath.Join(dir, "Song.mp3")
	require.NoError(t, WriteFile(path, []byte("first version")))
	require.NoError(t, WriteFile(path, []byte("second")))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(got))
}

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := range w {
		for y := range h {
			img.Set(x, y, color.RGBA{R: 200, G: 40, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestImageService_Prepare(t *testing.T) {
	svc := NewImageService()
	src := testPNG(t, 40, 20)

	t.Run("unchanged without options", func(t *testing.T) {
		got, err := svc.Prepare(src, 0, false)
		require.NoError(t, err)
		assert.Equal(t, src, got)
	})

	t.Run("resize keeps aspect ratio", func(t *testing.T) {
		got, err := svc.Prepare(src, 10, false)
		require.NoError(t, err)
		cfg, err := jpeg.DecodeConfig(bytes.NewReader(got))
		require.NoError(t, err)
		assert.Equal(t, 10, cfg.Width)
		assert.Equal(t, 5, cfg.Height)
	})

	t.Run("convert to jpeg", func(t *testing.T) {
		got, err := svc.Prepare(src, 0, true)
		require.NoError(t, err)
		cfg, err := jpeg.DecodeConfig(bytes.NewReader(got))
		require.NoError(t, err)
		assert.Equal(t, 40, cfg.Width)
	})

	t.Run("garbage input", func(t *testing.T) {
		_, err := svc.Prepare([]byte("not an image"), 10, false)
		assert.Error(t, err)
	})
}
