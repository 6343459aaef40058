package bootstrap

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/outfit-advisor/internal/infra/config"
	"github.com/yanqian/outfit-advisor/internal/infra/schedule"
)

type noopJob struct{}

func (noopJob) Run(context.Context) (bool, error) { return false, nil }

func TestRunStopsOnContextCancel(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{HTTP: config.HTTPConfig{Address: addr}}
	server := &http.Server{Addr: addr, Handler: http.NotFoundHandler()}
	scheduler, err := schedule.NewScheduler("test", "0 7 * * *", time.UTC, noopJob{}, logger)
	require.NoError(t, err)

	app := NewApp(cfg, logger, server, scheduler)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusNotFound
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop")
	}
}

func TestRunReturnsListenError(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{HTTP: config.HTTPConfig{Address: "bad::address"}}
	server := &http.Server{Addr: "bad::address"}

	err := NewApp(cfg, logger, server, nil).Run(context.Background())
	require.Error(t, err)
}
