package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hotelbooking/internal/config"
	"hotelbooking/internal/database"
	"hotelbooking/internal/modules/reservation"
	"hotelbooking/internal/pkg/logger"
	"hotelbooking/internal/pkg/sms"
	"hotelbooking/internal/pkg/zarinpal"
	"hotelbooking/internal/queue"
	"hotelbooking/internal/server"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.New("info", os.Getenv("APP_ENV")).WithError(err).Fatal("invalid configuration")
	}
	log := logger.New(cfg.LogLevel, cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("failed to connect database")
	}
	if err := database.Migrate(db); err != nil {
		log.WithError(err).Fatal("failed to migrate database")
	}

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		rdb, err = config.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			log.WithError(err).Warn("redis unavailable, using in-memory stores")
			rdb = nil
		} else {
			defer rdb.Close()
		}
	}

	sender := sms.NewConsoleSender(log)

	var events reservation.EventPublisher = queue.NopPublisher{}
	if cfg.RabbitMQURL != "" {
		events = queue.NewAMQPPublisher(cfg.RabbitMQURL)
		go queue.NewConsumer(cfg.RabbitMQURL, queue.SMSNotifier(sender, log), log).Run(ctx)
	}

	srv := server.New(server.Deps{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
		Gateway: zarinpal.New(zarinpal.Config{
			MerchantID: cfg.Zarinpal.MerchantID,
			Sandbox:    cfg.Zarinpal.Sandbox,
			BaseURL:    cfg.Zarinpal.BaseURL,
			Timeout:    cfg.Zarinpal.Timeout,
		}),
		Events: events,
		SMS:    sender,
		Log:    log,
	})

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("port", cfg.Port).Info("server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	srv.Hub.Close()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
