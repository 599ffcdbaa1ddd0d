package progress

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/handiism/bcdl/internal/download"
)

func TestConsole_Progress(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf, false)

	c.Progress(download.Update{Label: "Track 1 - Song A", Received: 512, Total: 1024})
	c.Progress(download.Update{Label: "Track 1 - Song A", Received: 1024, Total: 1024})
	c.Progress(download.Update{Label: "Track 2 - Song B", Received: 10, Total: 2048})
	c.Close()

	out := buf.String()
	assert.Contains(t, out, "Downloading")
	assert.Contains(t, out, "Track 1 - Song A")
	assert.Contains(t, out, "Track 2 - Song B")
}

func TestConsole_Event(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		event   download.Event
		want    string
	}{
		{
			name:  "warning",
			event: download.Event{Message: `Audio URL not found for "Song B"`, Level: download.LevelWarning},
			want:  `Warning: Audio URL not found for "Song B"`,
		},
		{
			name:  "error",
			event: download.Event{Message: "boom", Level: download.LevelError},
			want:  "Error: boom",
		},
		{
			name:  "verbose hidden",
			event: download.Event{Message: "Downloaded: a.mp3", Level: download.LevelVerbose},
			want:  "",
		},
		{
			name:    "verbose shown",
			verbose: true,
			event:   download.Event{Message: "Downloaded: a.mp3", Level: download.LevelVerbose},
			want:    "Downloaded: a.mp3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewConsole(&buf, tt.verbose).Event(tt.event)
			assert.Equal(t, tt.want, strings.TrimSpace(buf.String()))
		})
	}
}
