package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"offers-api/internal/config"
	"offers-api/internal/providers"
	filesource "offers-api/internal/providers/file"
	sftpsource "offers-api/internal/providers/sftp"
	"offers-api/internal/server"
	"offers-api/internal/store"
)

func main() {
	cfg := config.Load()

	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	st := store.New(newSource(cfg))

	// Warm the cache so the first request doesn't pay for the load.
	// Failure is not fatal: a later request retries the load and gets
	// the real error in its response.
	warmCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if _, err := st.RawOffers(warmCtx); err != nil {
		log.Warn("offer warm-up failed", zap.Error(err))
	}
	cancel()

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: server.New(st, log).Router(),
	}

	go func() {
		log.Info("server listening", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", zap.Error(err))
	}
}

func newSource(cfg config.Config) providers.Source {
	if cfg.Source == "sftp" {
		return sftpsource.New(sftpsource.Config{
			Host:                  cfg.SFTPHost,
			Port:                  cfg.SFTPPort,
			User:                  cfg.SFTPUser,
			Pass:                  cfg.SFTPPass,
			RemoteDir:             cfg.SFTPDir,
			RemoteFile:            cfg.SFTPFile,
			KnownHostsFile:        cfg.SFTPKnownHosts,
			InsecureIgnoreHostKey: cfg.SFTPInsecureIgnoreHostKey,
		})
	}
	return filesource.New(cfg.DataFile)
}
