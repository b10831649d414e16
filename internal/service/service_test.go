package service

import (
	"os"
	"testing"
	"time"

	"gamepulse-go/internal/config"
	infraRedis "gamepulse-go/internal/infra/redis"
	"gamepulse-go/internal/model"
	"gamepulse-go/pkg/logger"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	if err := logger.Init("error", "console", "stdout", ""); err != nil {
		panic(err)
	}
	config.Set(&config.Config{
		App: config.AppConfig{Name: "gamepulse-test"},
		JWT: config.JWTConfig{Secret: "test-secret", ExpireHours: 1},
	})
	// 不可达的 Redis：浏览量缓冲走失败降级路径
	infraRedis.Client = redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	os.Exit(m.Run())
}

// setupTestDB 创建内存 SQLite 测试库并迁移全部表
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Tag{},
		&model.News{},
		&model.Comment{},
		&model.CommentVote{},
		&model.NewsRating{},
		&model.Report{},
	); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()
	user := &model.User{
		Email:    username + "@example.com",
		UserName: username,
		Password: "hashed",
		UserRole: model.RoleUser,
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func createTestNews(t *testing.T, db *gorm.DB, authorID int64, slug, status string) *model.News {
	t.Helper()
	news := &model.News{
		AuthorID: authorID,
		Title:    "Elden Ring DLC 上线",
		Body:     "正文内容",
		Slug:     slug,
		Status:   status,
	}
	if status == model.NewsStatusPublished {
		now := time.Now()
		news.PublishedAt = &now
	}
	if err := db.Create(news).Error; err != nil {
		t.Fatalf("create news: %v", err)
	}
	return news
}

func createTestComment(t *testing.T, db *gorm.DB, authorID, newsID int64) *model.Comment {
	t.Helper()
	comment := &model.Comment{
		AuthorID:   authorID,
		NewsID:     newsID,
		Content:    "很不错的更新",
		IsApproved: true,
	}
	if err := db.Create(comment).Error; err != nil {
		t.Fatalf("create comment: %v", err)
	}
	return comment
}
