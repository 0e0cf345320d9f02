package net

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, userAgent, r.Header.Get("User-Agent"))
		switch r.URL.Path {
		case "/a.png":
			w.Header().Set("Content-Type", "image/png")
			_, _ = w.Write([]byte("png-bytes"))
		case "/page":
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html></html>"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	body, err := FetchImage(context.Background(), srv.URL+"/a.png")
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(body))

	_, err = FetchImage(context.Background(), srv.URL+"/page")
	assert.Error(t, err)

	_, err = FetchImage(context.Background(), srv.URL+"/missing")
	assert.ErrorContains(t, err, "HTTP 404")
}

func TestFetchRejectsLocalPaths(t *testing.T) {
	_, _, err := Fetch(context.Background(), "/etc/hosts")
	assert.Error(t, err)
}

func TestIsNetworkURL(t *testing.T) {
	assert.True(t, IsNetworkURL("https://example.com"))
	assert.True(t, IsNetworkURL("http://example.com"))
	assert.False(t, IsNetworkURL("file:///tmp/a.jpg"))
	assert.False(t, IsNetworkURL(""))
}
