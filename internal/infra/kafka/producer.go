package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gamepulse-go/internal/config"
	"gamepulse-go/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

var producer *kafka.Writer

// NewsletterJob 资讯邮件投递任务消息体
// 每个订阅用户一条消息，worker 消费后逐封发送。
type NewsletterJob struct {
	NewsletterID string  `json:"newsletter_id"`
	UserID       int64   `json:"user_id"`
	Email        string  `json:"email"`
	UserName     string  `json:"user_name"`
	Subject      string  `json:"subject"`
	NewsIDs      []int64 `json:"news_ids"`
}

// InitProducer 初始化 Kafka 生产者
func InitProducer(cfg *config.KafkaConfig) error {
	producer = &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}

	logger.Info("Kafka producer initialized",
		zap.Strings("brokers", cfg.Brokers),
	)

	return nil
}

// SendNewsletterJob 发送资讯邮件任务到 Kafka
func SendNewsletterJob(ctx context.Context, topic string, job *NewsletterJob) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal newsletter job: %w", err)
	}

	msg := kafka.Message{
		Topic: topic,
		Key:   []byte(fmt.Sprintf("user-%d", job.UserID)),
		Value: payload,
	}

	if err := producer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to send newsletter job: %w", err)
	}

	return nil
}

// SendRaw 发送原始消息到指定 topic
func SendRaw(ctx context.Context, topic, key string, value []byte) error {
	msg := kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: value,
	}

	if err := producer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to send kafka message: %w", err)
	}
	return nil
}

// CloseProducer 关闭生产者
func CloseProducer() error {
	if producer == nil {
		return nil
	}
	logger.Info("Kafka producer closed")
	return producer.Close()
}
