package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/Harshverma1208/smartech/internal/config"
	"github.com/Harshverma1208/smartech/internal/server"
	"github.com/Harshverma1208/smartech/internal/session"
	"github.com/Harshverma1208/smartech/internal/store"
)

var migrateOnlyFlag = flag.Bool("migrate-only", false, "Run store migrations and exit")

func main() {
	flag.Parse()
	_ = godotenv.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("configuration error")
	}
	if cfg.Env == "development" {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	db, err := store.Connect(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("store connection failed")
	}
	if *migrateOnlyFlag {
		log.Info("migrations completed; exiting as requested")
		return
	}

	provider := session.NewStoreProvider(db, cfg.SessionSecret, cfg.SessionTTL)
	sessions := session.New(provider, log)
	sessions.Start(context.Background())
	defer sessions.Close()

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: server.New(db, sessions, cfg, log),
	}

	go func() {
		log.WithFields(logrus.Fields{"addr": srv.Addr, "env": cfg.Env}).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("error during shutdown")
	}
	log.Info("server stopped")
}
