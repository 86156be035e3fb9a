package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/tuanvumaihuynh/inventory-console/internal/activity"
	"github.com/tuanvumaihuynh/inventory-console/internal/apiclient"
	"github.com/tuanvumaihuynh/inventory-console/internal/config"
	"github.com/tuanvumaihuynh/inventory-console/internal/http"
	"github.com/tuanvumaihuynh/inventory-console/internal/log"
	"github.com/tuanvumaihuynh/inventory-console/internal/service"
	"github.com/tuanvumaihuynh/inventory-console/internal/session"
	"github.com/tuanvumaihuynh/inventory-console/internal/storage/mq"
	"github.com/tuanvumaihuynh/inventory-console/internal/telemetry"
	"github.com/tuanvumaihuynh/inventory-console/pkg/cmdutil"
	"github.com/tuanvumaihuynh/inventory-console/pkg/validator"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("error running console application: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	time.Local = time.UTC

	type Config struct {
		Log      config.Log
		HTTP     config.HTTP
		Backend  config.Backend
		Session  config.Session
		Postgres config.Postgres
		SQLite   config.SQLite
		Kafka    config.Kafka
		Otel     config.Otel
		Console  config.Console
	}
	cfg, err := config.New[Config]()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logger := log.NewSlogLogger(cfg.Log)

	cleanupTracer, err := telemetry.InitTracer(ctx, cfg.Otel)
	if err != nil {
		return fmt.Errorf("error initializing tracer: %w", err)
	}
	defer func() {
		if err := cleanupTracer(ctx); err != nil {
			logger.ErrorContext(ctx, "error cleaning up tracer", slog.Any("error", err))
		}
	}()

	sessionStore, err := openSessionStore(ctx, cfg.Session, cfg.Postgres, cfg.SQLite, logger)
	if err != nil {
		return fmt.Errorf("error opening session store: %w", err)
	}
	defer sessionStore.close()

	var publisher activity.Publisher = activity.NopPublisher{}
	if cfg.Kafka.Enabled() {
		kafkaProducer, err := mq.NewKafkaProducer(ctx, cfg.Kafka)
		if err != nil {
			return fmt.Errorf("error creating kafka producer: %w", err)
		}
		defer kafkaProducer.Close()

		publisher = activity.NewKafkaPublisher(kafkaProducer, cfg.Kafka.ActivityTopic, logger)
	} else {
		logger.InfoContext(ctx, "kafka not configured, activity events are dropped")
	}

	v, err := validator.NewDefaultValidator()
	if err != nil {
		return fmt.Errorf("error creating validator: %w", err)
	}

	apiClient := apiclient.New(cfg.Backend, logger)
	consoleService := service.New(cfg.Console, apiClient, v, publisher, logger)
	sessions := session.NewManager(cfg.Session, sessionStore)

	interruptChan := cmdutil.InterruptChan()
	var wg sync.WaitGroup

	wg.Go(func() {
		svc, err := http.New(http.Config{
			HTTP:    cfg.HTTP,
			Console: cfg.Console,
			Session: cfg.Session,
		}, logger, consoleService, sessions)
		if err != nil {
			panic(fmt.Errorf("error creating http service: %w", err))
		}
		if sessionStore.health != nil {
			svc.AddHealthCheck("session-store", sessionStore.health)
		}

		cleanup, err := svc.Run(ctx)
		if err != nil {
			panic(fmt.Errorf("error running http service: %w", err))
		}

		logger.InfoContext(ctx, "http service started",
			slog.String("address", fmt.Sprintf(":%d", cfg.HTTP.Port)),
			slog.String("backend", cfg.Backend.BaseURL),
			slog.String("session_driver", cfg.Session.Driver.String()),
		)

		<-interruptChan

		logger.InfoContext(ctx, "http service is shutting down")
		if err := cleanup(ctx); err != nil {
			logger.ErrorContext(ctx, "error shutting down http service", slog.Any("error", err))
		}

		logger.InfoContext(ctx, "http service is stopped")
	})

	wg.Wait()

	return nil
}
