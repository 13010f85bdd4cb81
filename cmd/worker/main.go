package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/katryana/airport-api/config"
	"github.com/katryana/airport-api/internal/email"
	"github.com/katryana/airport-api/internal/kafka"
	"github.com/katryana/airport-api/internal/logger"
)

func main() {
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	workerLog := logger.New(cfg.HTTP.Debug)

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic)
	defer consumer.Close()

	sender := email.NewSender(cfg.SMTP, workerLog)

	workerLog.Info("worker", "consuming %s", cfg.Kafka.NotificationsTopic)

	if err := consumer.Consume(ctx, func(ctx context.Context, event kafka.OrderEvent) error {
		if err := sender.Send(ctx, event); err != nil {
			workerLog.Error("worker", "send notification for order %d: %v", event.OrderID, err)
		}
		return nil
	}); err != nil && ctx.Err() == nil {
		log.Fatalf("consumer stopped: %v", err)
	}
}
