package profiler

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startServer(t *testing.T) *Server {
	t.Helper()

	s := New(0)
	require.NoError(t, s.Start(context.Background()))
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.Shutdown(ctx)
	})
	return s
}

func TestServer_BindsLoopback(t *testing.T) {
	s := startServer(t)

	assert.True(t, strings.HasPrefix(s.Addr(), "127.0.0.1:"), "addr = %s", s.Addr())
}

func TestServer_AddrBeforeStart(t *testing.T) {
	s := New(0)

	assert.Empty(t, s.Addr())
	assert.NoError(t, s.Shutdown(context.Background()))
}

func TestServer_Endpoints(t *testing.T) {
	s := startServer(t)
	base := "http://" + s.Addr()

	for _, path := range []string{
		"/debug/pprof/",
		"/debug/pprof/cmdline",
		"/debug/pprof/symbol",
		"/debug/pprof/profile?seconds=1",
	} {
		t.Run(path, func(t *testing.T) {
			resp, err := http.Get(base + path)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			assert.Equal(t, http.StatusOK, resp.StatusCode)
		})
	}
}

func TestServer_ShutdownStopsServing(t *testing.T) {
	s := New(0)
	require.NoError(t, s.Start(context.Background()))
	addr := s.Addr()

	require.NoError(t, s.Shutdown(context.Background()))

	client := http.Client{Timeout: time.Second}
	_, err := client.Get("http://" + addr + "/debug/pprof/")
	assert.Error(t, err)
}
