package elasticsearch

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"gamepulse-go/internal/config"
	"gamepulse-go/pkg/logger"

	"go.uber.org/zap"
)

// GetNewsIndexMapping 返回 news 索引的 mapping
func GetNewsIndexMapping() string {
	return `{
		"settings": {
			"number_of_shards": 1,
			"number_of_replicas": 0
		},
		"mappings": {
			"properties": {
				"id": {"type": "long"},
				"author_id": {"type": "long"},
				"author_name": {"type": "keyword"},
				"title": {
					"type": "text",
					"fields": {"keyword": {"type": "keyword", "ignore_above": 255}}
				},
				"subtitle": {"type": "text"},
				"body": {"type": "text"},
				"slug": {"type": "keyword"},
				"status": {"type": "keyword"},
				"categories": {"type": "keyword"},
				"tags": {"type": "keyword"},
				"view_count": {"type": "long"},
				"average_rating": {"type": "float"},
				"rating_count": {"type": "long"},
				"published_at": {"type": "date", "format": "strict_date_optional_time||epoch_millis"},
				"created_at": {"type": "date", "format": "strict_date_optional_time||epoch_millis"}
			}
		}
	}`
}

// EnsureNewsIndex 确保 news 索引存在，不存在则创建
func EnsureNewsIndex(ctx context.Context) error {
	indexName := NewsIndexName()

	exists, err := IndicesExists(ctx, indexName)
	if err != nil {
		return fmt.Errorf("check index exists: %w", err)
	}
	if exists {
		logger.Info("Elasticsearch news index already exists", zap.String("index", indexName))
		return nil
	}

	body := bytes.NewReader([]byte(GetNewsIndexMapping()))
	resp, err := IndicesCreate(ctx, indexName, body)
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return fmt.Errorf("create index failed: %s", resp.String())
	}

	logger.Info("Elasticsearch news index created", zap.String("index", indexName))
	return nil
}

// NewsIndexName 读取配置的 news 索引名
func NewsIndexName() string {
	cfg := config.GetElasticsearch()
	indexName := cfg.Index["news"]
	if indexName == "" {
		indexName = "news"
	}
	return indexName
}

// InitIndexes 初始化所有索引（启动时调用）
func InitIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return EnsureNewsIndex(ctx)
}
