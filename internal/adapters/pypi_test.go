package adapters

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIndexServer(t *testing.T, handler http.HandlerFunc) *PyPIAdapter {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewPyPIAdapter(server.URL)
}

func TestLookupKnownProject(t *testing.T) {
	adapter := newIndexServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pypi/requests/json", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"info": {"name": "requests", "version": "2.31.0", "summary": "HTTP for Humans."}}`))
	})

	project, found, err := adapter.Lookup(context.Background(), "requests")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "requests", project.Name)
	assert.Equal(t, "2.31.0", project.Version)
	assert.Equal(t, "HTTP for Humans.", project.Summary)
}

func TestLookupUnknownProject(t *testing.T) {
	adapter := newIndexServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, found, err := adapter.Lookup(context.Background(), "totallyfakepkg123")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestLookupServerError(t *testing.T) {
	adapter := newIndexServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, found, err := adapter.Lookup(context.Background(), "requests")
	require.Error(t, err)
	assert.False(t, found)
}

func TestLookupEscapesName(t *testing.T) {
	var gotPath string
	adapter := newIndexServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.WriteHeader(http.StatusNotFound)
	})

	_, _, err := adapter.Lookup(context.Background(), "weird/name")
	require.NoError(t, err)
	assert.Equal(t, "/pypi/weird%2Fname/json", gotPath)
}
