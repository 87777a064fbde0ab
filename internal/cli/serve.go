package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dukerupert/pantry/internal/config"
	"github.com/dukerupert/pantry/internal/pantry"
	"github.com/dukerupert/pantry/internal/server"
	ws "github.com/dukerupert/pantry/internal/websocket"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and live update feed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
	cmd.Flags().Int("port", 0, "listen port (default 8080)")
	a.v.BindPFlag(config.KeyPort, cmd.Flags().Lookup("port"))
	return cmd
}

func (a *app) serve(ctx context.Context) error {
	db, err := a.open()
	if err != nil {
		return err
	}

	hub := ws.NewHub(a.logger)
	svc, err := a.service(pantry.WithNotifier(hub))
	if err != nil {
		return err
	}

	srv := server.New(db, svc, hub, server.Options{
		WriteRateLimit: a.cfg.WriteRateLimit,
		AllowedOrigins: a.cfg.AllowedOrigins,
	}, a.logger)

	go svc.RunRefresher(ctx, a.cfg.RefreshInterval)
	go cleanupLimiter(ctx, srv)

	httpServer := &http.Server{
		Addr:         a.cfg.Addr(),
		Handler:      srv.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		a.logger.Info("pantry listening", "addr", httpServer.Addr, "db", a.cfg.DBPath)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	a.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

func cleanupLimiter(ctx context.Context, srv *server.Server) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			srv.RateLimiter().Cleanup()
		}
	}
}
