package kafka

import (
	"context"
	"encoding/json"
	"time"

	"gamepulse-go/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// JobHandler 处理资讯邮件任务的回调函数
type JobHandler func(job *NewsletterJob) error

// StartNewsletterConsumer 启动资讯邮件消费者（阻塞，需在 goroutine 中运行）
// ctx 取消后会自动停止
func StartNewsletterConsumer(ctx context.Context, brokers []string, topic, groupID string, handler JobHandler) {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       1,
		MaxBytes:       10e6,
		CommitInterval: time.Second,
		StartOffset:    kafka.LastOffset,
	})

	defer func() {
		if err := reader.Close(); err != nil {
			logger.Error("Failed to close kafka consumer", zap.Error(err))
		}
		logger.Info("Kafka newsletter consumer stopped")
	}()

	logger.Info("Kafka newsletter consumer started",
		zap.String("topic", topic),
		zap.String("group", groupID),
	)

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Error("Failed to read kafka message", zap.Error(err))
			time.Sleep(time.Second)
			continue
		}

		var job NewsletterJob
		if err := json.Unmarshal(msg.Value, &job); err != nil {
			logger.Error("Failed to unmarshal newsletter job",
				zap.Error(err),
				zap.ByteString("value", msg.Value),
			)
			continue
		}

		if err := handler(&job); err != nil {
			logger.Error("Failed to handle newsletter job",
				zap.String("newsletter_id", job.NewsletterID),
				zap.Int64("user_id", job.UserID),
				zap.Error(err),
			)
		}
	}
}
