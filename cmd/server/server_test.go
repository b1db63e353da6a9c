package main

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/remind-api/internal/config"
)

func TestStartHTTPServer(t *testing.T) {
	t.Run("returns error when listen fails", func(t *testing.T) {
		// Occupy the port so ListenAndServe fails immediately.
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		defer func() { _ = ln.Close() }()

		app := &application{
			config: &config.Config{
				Server: config.ServerConfig{Port: ln.Addr().(*net.TCPAddr).Port},
			},
			logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		}

		errCh := make(chan error, 1)
		go func() {
			errCh <- app.startHTTPServer(context.Background(), http.NewServeMux())
		}()

		select {
		case err := <-errCh:
			assert.Error(t, err)
			assert.Contains(t, err.Error(), "server failed")
		case <-time.After(5 * time.Second):
			t.Fatal("startHTTPServer did not return after listen failure")
		}
	})
}
