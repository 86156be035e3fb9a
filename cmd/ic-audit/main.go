package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/tuanvumaihuynh/inventory-console/internal/config"
	"github.com/tuanvumaihuynh/inventory-console/internal/event"
	"github.com/tuanvumaihuynh/inventory-console/internal/log"
	"github.com/tuanvumaihuynh/inventory-console/internal/storage/mq"
	"github.com/tuanvumaihuynh/inventory-console/internal/telemetry"
	"github.com/tuanvumaihuynh/inventory-console/pkg/cmdutil"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("error running audit application: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	time.Local = time.UTC

	type Config struct {
		Log   config.Log
		Kafka config.Kafka
		Otel  config.Otel
	}
	cfg, err := config.New[Config]()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	if !cfg.Kafka.Enabled() {
		return fmt.Errorf("KAFKA_ADDRESSES is required")
	}

	logger := log.NewSlogLogger(cfg.Log)

	cleanupTracer, err := telemetry.InitTracer(ctx, cfg.Otel)
	if err != nil {
		return fmt.Errorf("error initializing tracer: %w", err)
	}
	defer func() {
		//nolint:errcheck
		cleanupTracer(ctx)
	}()

	kafkaConsumer, err := mq.NewKafkaConsumer(ctx, cfg.Kafka, logger)
	if err != nil {
		return fmt.Errorf("error creating kafka consumer: %w", err)
	}
	defer kafkaConsumer.Close()

	svc := event.New(logger, kafkaConsumer, cfg.Kafka.ActivityTopic)
	cleanup, err := svc.Run(ctx)
	if err != nil {
		return fmt.Errorf("error running event service: %w", err)
	}
	logger.InfoContext(ctx, "audit service started")

	<-cmdutil.InterruptChan()

	logger.InfoContext(ctx, "audit service is shutting down")
	cleanup()
	logger.InfoContext(ctx, "audit service is stopped")

	return nil
}
