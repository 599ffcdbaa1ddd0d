package http

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_Get(t *testing.T) {
	var gotUA string
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte("<html>page</html>"))
	})

	client := NewClient(Options{UserAgent: "bcdl-test"})
	body, err := client.GetString(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "<html>page</html>", body)
	assert.Equal(t, "bcdl-test", gotUA)
}

func TestClient_Get_DefaultUserAgent(t *testing.T) {
	var gotUA string
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
	})

	_, err := NewClient(Options{}).Get(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, DefaultUserAgent, gotUA)
}

func TestClient_Get_Status(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	_, err := NewClient(Options{}).Get(context.Background(), srv.URL)
	var terr *TransportError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, http.StatusNotFound, terr.StatusCode)
	assert.Equal(t, srv.URL, terr.URL)
}

func TestClient_Get_Canceled(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(Options{}).Get(ctx, srv.URL)
	var terr *TransportError
	require.ErrorAs(t, err, &terr)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClient_Open(t *testing.T) {
	payload := bytes.Repeat([]byte("0123456789"), 10_000)
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", strconv.Itoa(len(payload)))
		w.Write(payload)
	})

	stream, err := NewClient(Options{}).Open(context.Background(), srv.URL)
	require.NoError(t, err)
	defer stream.Close()

	assert.Equal(t, int64(len(payload)), stream.Length())

	var got []byte
	chunks := 0
	for chunk, err := range stream.Chunks() {
		require.NoError(t, err)
		got = append(got, chunk...)
		chunks++
	}
	assert.Equal(t, payload, got)
	assert.Positive(t, chunks)
}

func TestClient_Open_NotRestartable(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("abc"))
	})

	stream, err := NewClient(Options{}).Open(context.Background(), srv.URL)
	require.NoError(t, err)
	defer stream.Close()

	for _, err := range stream.Chunks() {
		require.NoError(t, err)
	}
	for _, err := range stream.Chunks() {
		assert.ErrorIs(t, err, ErrStreamConsumed)
	}
}

func TestClient_Open_LengthUnknown(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("first"))
		w.(http.Flusher).Flush()
		w.Write([]byte("second"))
	})

	_, err := NewClient(Options{}).Open(context.Background(), srv.URL)
	assert.ErrorIs(t, err, ErrLengthUnknown)
}

func TestClient_Open_TruncatedBody(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "1000")
		w.Write([]byte("short"))
	})

	stream, err := NewClient(Options{}).Open(context.Background(), srv.URL)
	require.NoError(t, err)
	defer stream.Close()

	var lastErr error
	for _, err := range stream.Chunks() {
		if err != nil {
			lastErr = err
		}
	}
	var terr *TransportError
	assert.ErrorAs(t, lastErr, &terr)
}
