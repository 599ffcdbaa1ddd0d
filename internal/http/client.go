package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"net/http"
	"time"
)

const (
	// DefaultUserAgent is sent when Options.UserAgent is empty.
	DefaultUserAgent = "bcdl"

	// DefaultTimeout is used when Options.Timeout is zero.
	DefaultTimeout = 60 * time.Second

	chunkSize = 32 * 1024
)

var (
	// ErrLengthUnknown is returned by Open when the server does not declare
	// a Content-Length for the response.
	ErrLengthUnknown = errors.New("response length unknown")

	// ErrStreamConsumed is yielded when a Stream's chunks are iterated twice.
	ErrStreamConsumed = errors.New("stream already consumed")
)

// TransportError reports a failed request: a network error, a non-200
// response or a broken body.
type TransportError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Options configures a Client.
type Options struct {
	UserAgent string
	Timeout   time.Duration
}

// Client fetches Bandcamp pages, audio streams and cover art.
//
// Example usage:
//
//	client := NewClient(Options{UserAgent: "bcdl"})
//
//	// Fetch HTML content
//	html, err := client.GetString(ctx, "https://artist.bandcamp.com/album/name")
//
//	// Stream a file with a known length
//	stream, err := client.Open(ctx, mp3URL)
//	defer stream.Close()
//	for chunk, err := range stream.Chunks() {
//	    ...
//	}
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// NewClient creates a new HTTP client. Zero options fall back to
// DefaultUserAgent and DefaultTimeout.
func NewClient(opts Options) *Client {
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
		userAgent: opts.UserAgent,
	}
}

func (c *Client) do(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, &TransportError{
			URL:        url,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("HTTP %s", resp.Status),
		}
	}

	return resp, nil
}

// Get performs a GET request and returns the whole response body.
//
// Cover art is fetched this way.
//
// Returns a *TransportError if the request fails, the response status is
// not 200 OK or reading the body fails.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	resp, err := c.do(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}
	return body, nil
}

// GetString performs a GET request and returns the response body as a string.
//
// Example:
//
//	html, err := client.GetString(ctx, "https://artist.bandcamp.com/album/name")
func (c *Client) GetString(ctx context.Context, url string) (string, error) {
	body, err := c.Get(ctx, url)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// Open performs a GET request and returns its body as a Stream.
//
// The server must declare the body length; otherwise the response is
// discarded and ErrLengthUnknown is returned. The caller must close the
// Stream.
func (c *Client) Open(ctx context.Context, url string) (*Stream, error) {
	resp, err := c.do(ctx, url)
	if err != nil {
		return nil, err
	}

	if resp.ContentLength < 0 {
		resp.Body.Close()
		return nil, fmt.Errorf("%s: %w", url, ErrLengthUnknown)
	}

	return &Stream{
		url:    url,
		length: resp.ContentLength,
		body:   resp.Body,
	}, nil
}

// Stream is an open response body with a declared length.
type Stream struct {
	url      string
	length   int64
	body     io.ReadCloser
	consumed bool
}

// Length returns the declared body length in bytes.
func (s *Stream) Length() int64 {
	return s.length
}

// Chunks returns the body as a sequence of byte chunks in arrival order.
//
// The sequence is finite and can be ranged over once. A chunk is only valid
// until the next iteration. A read failure is yielded as a *TransportError
// and ends the sequence.
func (s *Stream) Chunks() iter.Seq2[[]byte, error] {
	return func(yield func([]byte, error) bool) {
		if s.consumed {
			yield(nil, ErrStreamConsumed)
			return
		}
		s.consumed = true

		buf := make([]byte, chunkSize)
		for {
			n, err := s.body.Read(buf)
			if n > 0 {
				if !yield(buf[:n], nil) {
					return
				}
			}
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(nil, &TransportError{URL: s.url, Err: err})
				return
			}
		}
	}
}

// Close releases the response body.
func (s *Stream) Close() error {
	return s.body.Close()
}
