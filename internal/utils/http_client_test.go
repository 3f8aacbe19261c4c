package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPClient_BaseURLAndTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/health", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, 2*time.Second)
	require.NotNil(t, c.Client)
	assert.Equal(t, 2*time.Second, c.GetClient().Timeout)

	resp, err := c.R().Get("/api/health")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode())
}

func TestNewHTTPClient_Independence(t *testing.T) {
	a := NewHTTPClient("http://a", 0)
	b := NewHTTPClient("http://b", 0)
	assert.NotSame(t, a.Client, b.Client)
	assert.Equal(t, "http://a", a.BaseURL)
}
