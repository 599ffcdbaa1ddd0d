package bandcamp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocateStructuredData(t *testing.T) {
	tests := []struct {
		name    string
		html    string
		want    []string
		wantErr error
	}{
		{
			name: "single block",
			html: `<html><head>
				<script type="application/ld+json">{"name":"Title"}</script>
			</head><body></body></html>`,
			want: []string{`{"name":"Title"}`},
		},
		{
			name: "blocks in document order",
			html: `<html><head>
				<script type="application/ld+json">{"a":1}</script>
				<script type="text/javascript">var x = 1;</script>
			</head><body>
				<script type="application/ld+json">{"b":2}</script>
			</body></html>`,
			want: []string{`{"a":1}`, `{"b":2}`},
		},
		{
			name:    "no structured data",
			html:    `<html><body><script>var data = {};</script></body></html>`,
			wantErr: ErrNotFound,
		},
		{
			name:    "empty page",
			html:    ``,
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LocateStructuredData(tt.html)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFirstStructuredData(t *testing.T) {
	html := `<script type="application/ld+json">first</script>
		<script type="application/ld+json">second</script>`

	got, err := FirstStructuredData(html)
	require.NoError(t, err)
	assert.Equal(t, "first", got)
}
