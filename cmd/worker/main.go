package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/airport/config"
	"github.com/Domenick1991/airport/internal/email"
	"github.com/Domenick1991/airport/internal/kafka"
	"github.com/Domenick1991/airport/internal/logger"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
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

	zl, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer zl.Sync()

	if len(cfg.Kafka.Brokers) == 0 {
		zl.Fatal("worker needs kafka.brokers")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic, zl)
	defer consumer.Close()

	sender := email.NewSender(cfg.Airport.SupportEmail, cfg.Airport.Name, email.WithLogger(zl))

	zl.Info("notification worker started",
		zap.String("topic", cfg.Kafka.NotificationsTopic),
		zap.String("group", cfg.Kafka.GroupID))

	err = consumer.Consume(ctx, func(ctx context.Context, event kafka.Event) error {
		if err := sender.Send(ctx, event); err != nil {
			zl.Error("notification failed",
				zap.String("type", event.Type),
				zap.String("id", event.ID),
				zap.Error(err))
		}
		return nil
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		zl.Error("consumer stopped", zap.Error(err))
		return
	}
	zl.Info("notification worker stopped")
}
