package engine_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-datediff/internal/config"
	"github.com/tartampluch/go-datediff/internal/engine"
)

const sampleCard = "BEGIN:VCARD\nVERSION:3.0\nFN:Grace Hopper\nBDAY:1906-12-09\nEND:VCARD"

// TestHTTPFetcher_FeedsReporter runs a download end to end: basic auth,
// User-Agent and a body the Reporter can decode.
func TestHTTPFetcher_FeedsReporter(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "grace" || pass != "cobol" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		assert.Equal(t, config.UserAgent, r.Header.Get(config.HeaderUserAgent))
		_, _ = w.Write([]byte(sampleCard))
	}))
	defer ts.Close()

	rep := &engine.Reporter{
		Clock:   MockClock{CurrentTime: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		Fetcher: engine.NewHTTPFetcher(),
	}

	entries, err := rep.Run(context.Background(), engine.SourceConfig{
		Mode:    config.SourceModeWeb,
		WebURL:  ts.URL + "/contacts.vcf?token=secret",
		WebUser: "grace",
		WebPass: "cobol",
	})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Grace Hopper", entries[0].Name)
	assert.Equal(t, 118, entries[0].Age.Years)
}

func TestHTTPFetcher_Fetch_Body(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasAuth := r.Header["Authorization"]
		assert.False(t, hasAuth, "No credentials means no Authorization header")
		_, _ = w.Write([]byte(sampleCard))
	}))
	defer ts.Close()

	rc, err := engine.NewHTTPFetcher().Fetch(context.Background(), ts.URL, "", "")
	require.NoError(t, err)
	defer func() { _ = rc.Close() }()

	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, sampleCard, string(body))
}

func TestHTTPFetcher_Fetch_Statuses(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusInternalServerError, http.StatusUnauthorized} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(status)
			}))
			defer ts.Close()

			rc, err := engine.NewHTTPFetcher().Fetch(context.Background(), ts.URL, "", "")
			require.Error(t, err)
			assert.Nil(t, rc)
			assert.Contains(t, err.Error(), config.ErrUnexpectedState)
			assert.Contains(t, err.Error(), http.StatusText(status))
		})
	}
}

func TestHTTPFetcher_Fetch_Deadline(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := engine.NewHTTPFetcher().Fetch(ctx, ts.URL, "", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestHTTPFetcher_Fetch_RejectsURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"Control character", string([]byte{0x7f}), config.ErrInvalidURL},
		{"FTP scheme", "ftp://example.com/file.vcf", config.ErrProtocol},
		{"File scheme", "file:///etc/passwd", config.ErrProtocol},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.NewHTTPFetcher().Fetch(context.Background(), tt.url, "", "")
			require.Error(t, err)
			assert.True(t, strings.Contains(err.Error(), tt.want), err.Error())
		})
	}
}
