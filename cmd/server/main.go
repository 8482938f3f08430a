package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"palette-grab/internal/api"
	"palette-grab/internal/config"
	"palette-grab/internal/service"
	"palette-grab/internal/storage"
	"palette-grab/internal/ws"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	store, err := storage.NewStore(cfg.DataPath)
	if err != nil {
		log.Fatalf("init store: %v", err)
	}

	ctx, stopHub := context.WithCancel(context.Background())
	defer stopHub()
	hub := ws.NewHub()
	go hub.Run(ctx)

	catalogSvc := service.NewCatalogService(cfg, store, hub)
	samplerSvc := service.NewSamplerService(cfg, catalogSvc, hub)
	reportSvc := service.NewReportService(catalogSvc)

	router := api.NewRouter(cfg, hub, catalogSvc, samplerSvc, reportSvc)
	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("server listening on %s (data=%s)", cfg.ListenAddr, cfg.DataPath)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
	stopHub()
	if err := store.Save(); err != nil {
		log.Printf("final save: %v", err)
	}
}
