package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"gamepulse-go/internal/config"
	"gamepulse-go/internal/infra/database"
	infraKafka "gamepulse-go/internal/infra/kafka"
	"gamepulse-go/internal/mail"
	"gamepulse-go/internal/repository"
	"gamepulse-go/internal/service"
	"gamepulse-go/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if err := logger.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output, cfg.Log.FilePath); err != nil {
		panic(fmt.Sprintf("Failed to init logger: %v", err))
	}
	defer logger.Sync()

	if err := database.Init(&cfg.Database); err != nil {
		logger.Fatal("Failed to init database", zap.Error(err))
	}
	defer database.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 监听系统信号，优雅退出
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Info("Received signal, shutting down", zap.String("signal", sig.String()))
		cancel()
	}()

	db := database.Get()
	userRepo := repository.NewUserRepository(db)
	newsRepo := repository.NewNewsRepository(db)
	mailer := mail.NewMailer(&cfg.SMTP)
	newsletterService := service.NewNewsletterService(userRepo, newsRepo, mailer)

	topic := cfg.Kafka.Topics["newsletter"]
	groupID := "gamepulse-newsletter-worker"

	logger.Info("Newsletter worker started",
		zap.String("topic", topic),
		zap.String("group", groupID),
		zap.Strings("brokers", cfg.Kafka.Brokers),
	)

	infraKafka.StartNewsletterConsumer(ctx, cfg.Kafka.Brokers, topic, groupID, newsletterService.HandleNewsletterJob)
}
