package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/vireolabs/ticketcheck/internal/bootstrap"
	"github.com/vireolabs/ticketcheck/internal/controller"
)

func main() {
	ctx := context.Background()

	app, err := bootstrap.New(ctx, "ticketcheck-api", "ticketcheck")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bootstrap: %v\n", err)
		os.Exit(1)
	}
	defer app.Close()

	// Warm the strategy list before taking traffic so secret fetch and
	// client construction happen at cold start, not on the first webhook.
	strategies := app.Builder.Strategies(ctx)
	app.Logger.Info().Int("strategies", len(strategies)).Msg("Strategy list built")

	router := controller.NewRouter(controller.RouterDeps{
		Runner:     app.Runner,
		Builder:    app.Builder,
		Enricher:   app.Enricher,
		Catalog:    app.Catalog,
		Metrics:    app.Metrics,
		CORSConfig: app.Config.Server.CORS,
		OpsToken:   app.Config.Ops.Token,
		InstanceID: app.Config.InstanceID,
		Logger:     app.Logger,
	})

	addr := fmt.Sprintf(":%d", app.Config.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  app.Config.Server.ReadTimeout,
		WriteTimeout: app.Config.Server.WriteTimeout,
	}

	go func() {
		app.Logger.Info().Str("addr", addr).Msg("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.Logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	app.Logger.Info().Msg("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		app.Logger.Error().Err(err).Msg("Server forced to shutdown")
	}
	app.Logger.Info().Msg("Server exited")
}
