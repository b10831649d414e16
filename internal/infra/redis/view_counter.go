package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gamepulse-go/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const viewCountKeyPrefix = "news:views:"

// IncrViewCount 浏览量写入 Redis 缓冲，避免每次浏览都打数据库
func IncrViewCount(ctx context.Context, newsID int64) error {
	key := viewCountKeyPrefix + strconv.FormatInt(newsID, 10)
	return Client.Incr(ctx, key).Err()
}

// GetBufferedViewCount 读取尚未落库的浏览量增量
func GetBufferedViewCount(ctx context.Context, newsID int64) (int64, error) {
	key := viewCountKeyPrefix + strconv.FormatInt(newsID, 10)
	val, err := Client.Get(ctx, key).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, err
	}
	return val, nil
}

// FlushViewCounts 取出全部缓冲的浏览量增量并清空
// 返回 newsID -> 增量，由调用方负责批量落库。
func FlushViewCounts(ctx context.Context) (map[int64]int64, error) {
	result := make(map[int64]int64)

	var cursor uint64
	for {
		keys, next, err := Client.Scan(ctx, cursor, viewCountKeyPrefix+"*", 100).Result()
		if err != nil {
			return nil, fmt.Errorf("scan view count keys: %w", err)
		}

		for _, key := range keys {
			val, err := Client.GetDel(ctx, key).Int64()
			if err != nil {
				continue
			}
			idStr := strings.TrimPrefix(key, viewCountKeyPrefix)
			id, err := strconv.ParseInt(idStr, 10, 64)
			if err != nil {
				continue
			}
			result[id] += val
		}

		cursor = next
		if cursor == 0 {
			break
		}
	}

	return result, nil
}

// StartViewCountFlusher 定时将浏览量增量落库（阻塞，需在 goroutine 中运行）
func StartViewCountFlusher(ctx context.Context, interval time.Duration, apply func(newsID, delta int64) error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Info("View count flusher started", zap.Duration("interval", interval))

	for {
		select {
		case <-ctx.Done():
			logger.Info("View count flusher stopped")
			return
		case <-ticker.C:
			counts, err := FlushViewCounts(ctx)
			if err != nil {
				logger.Error("Failed to flush view counts", zap.Error(err))
				continue
			}
			for id, delta := range counts {
				if err := apply(id, delta); err != nil {
					logger.Error("Failed to apply view count delta",
						zap.Int64("news_id", id), zap.Error(err))
				}
			}
		}
	}
}
