// riot-stub runs a scripted fake of the Riot endpoints for local development.
// Point the tracker at it with RIFTWATCH_PLATFORM_HOST, RIFTWATCH_REGIONAL_HOST
// and RIFTWATCH_DDRAGON_HOST, then drive game state through /control.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/riftwatch/riftwatch/internal/stub"
	"github.com/riftwatch/riftwatch/pkg/logger"
)

const (
	defaultAddr     = ":9090"
	shutdownTimeout = 5 * time.Second
)

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	log := logger.Named("riot-stub")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	addr := os.Getenv("RIOT_STUB_ADDR")
	if addr == "" {
		addr = defaultAddr
	}

	srv := &http.Server{
		Addr:         addr,
		Handler:      stub.NewServer().Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "stub listening", logger.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			log.Error(ctx, "stub server failed", logger.Error(err))
			os.Exit(1)
		}
		return
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(shutdownCtx, "stub shutdown failed", logger.Error(err))
	}
}
