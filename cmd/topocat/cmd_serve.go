package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"topocat/internal/codec"
	"topocat/internal/handler"
	"topocat/internal/hub"
	"topocat/internal/service"
	"topocat/internal/watcher"
)

func cmdServe(args []string) error {
	a, err := newApp("serve", args, nil)
	if err != nil {
		return err
	}
	defer a.Close()

	log.Info("Starting topocat server...")

	// Backs the snapshot route
	if err := a.openRepository(); err != nil {
		return err
	}
	if err := a.loadCatalogs(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Built-in catalogs must build before anything is served
	if err := a.svc.Verify(ctx); err != nil {
		return err
	}

	// Initialize SSE hub
	sseHub := hub.New()
	go sseHub.Run(ctx)

	// Connect event bus to SSE hub
	eventChan := make(chan service.Event, 100)
	a.eventBus.Subscribe(eventChan)
	go func() {
		for {
			select {
			case event := <-eventChan:
				sseHub.Broadcast(event)
			case <-ctx.Done():
				return
			}
		}
	}()

	if a.cfg.Watch {
		w := watcher.New(a.cfg.TopologyDir, codec.Supported,
			watcher.ReloadCatalog(a.cfg.TopologyDir, FilesCatalog, a.svc))
		go func() {
			if err := w.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.WithError(err).Error("Watcher stopped")
			}
		}()
	}

	// No write timeout: /api/events streams stay open
	server := &http.Server{
		Addr:        a.cfg.Addr,
		Handler:     handler.NewRouter(handler.NewCatalogHandler(a.svc, a.cfg.Format), sseHub),
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.WithField("addr", a.cfg.Addr).Info("Server listening")
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("Server shutdown error")
	}

	log.Info("Server stopped")
	return nil
}
