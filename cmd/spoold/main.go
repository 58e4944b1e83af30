package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"submission-spool/internal/server"
	"submission-spool/internal/spool"
)

func main() {
	settings, err := server.LoadSettings(os.Getenv)
	if err != nil {
		log.Printf("service=spoold msg=%q err=%v", "invalid_configuration", err)
		os.Exit(1)
	}

	// The spool directory must already exist.
	sp, err := spool.New(settings.SpoolDir)
	if err != nil {
		log.Printf("service=spoold msg=%q err=%v", "spool_unavailable", err)
		os.Exit(1)
	}

	if settings.JWTSecret == "" {
		log.Printf("service=spoold msg=%q", "JWT secret is empty, authentication disabled")
	}

	srv := server.New(server.Config{
		Addr:          settings.Addr,
		Spool:         sp,
		JWTSecret:     settings.JWTSecret,
		MaxBodyBytes:  settings.MaxBodyBytes,
		IndexHTMLPath: settings.IndexHTMLPath,
		RateLimit:     settings.RateLimit,
		RateWindow:    settings.RateWindow,
	})

	// Janitor for temp files left behind by disconnected uploads.
	janitorCtx, stopJanitor := context.WithCancel(context.Background())
	defer stopJanitor()
	go server.StartCleanupJob(janitorCtx, sp, server.CleanupConfig{
		Enabled:  settings.CleanupEnabled,
		Interval: settings.CleanupInterval,
		MaxAge:   settings.CleanupMaxAge,
	})

	// Run the HTTP server in the background so we can wait on OS signals.
	errCh := make(chan error, 1)
	go func() {
		log.Printf("service=spoold msg=%q addr=%s spool=%s",
			"starting", settings.Addr, settings.SpoolDir)
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Printf("service=spoold msg=%q signal=%s", "shutting_down", sig.String())
		stopJanitor()
		// Give in-flight submissions a few seconds to finish their writes.
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("service=spoold msg=%q err=%v", "shutdown_error", err)
			os.Exit(1)
		}
		log.Printf("service=spoold msg=%q", "shutdown_complete")
	case err := <-errCh:
		if err != nil {
			log.Printf("service=spoold msg=%q err=%v", "server_error", err)
			os.Exit(1)
		}
	}
}
