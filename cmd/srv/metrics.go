package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/pointroulette/backend/pkg/prometheus"
	"github.com/pointroulette/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startMetrics(cctx *cli.Context) error {
	if err := s.loadConfig(cctx); err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", prometheus.NewHandler())

	addr := xcontext.Configs(s.ctx).Metrics.Addr
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(s.ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			xcontext.Logger(s.ctx).Errorf("Cannot shutdown metrics server: %v", err)
		}
	}()

	xcontext.Logger(s.ctx).Infof("Serving metrics at %s", addr)
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
