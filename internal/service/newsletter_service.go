package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gamepulse-go/internal/api/dto"
	"gamepulse-go/internal/config"
	infraKafka "gamepulse-go/internal/infra/kafka"
	"gamepulse-go/internal/mail"
	"gamepulse-go/internal/repository"
	"gamepulse-go/pkg/logger"

	"go.uber.org/zap"
)

var ErrNoRecentNews = errors.New("近期没有可推送的新闻")

// 资讯邮件默认选取最近 7 天发布的新闻
const digestWindow = 7 * 24 * time.Hour

type NewsletterService struct {
	userRepo *repository.UserRepository
	newsRepo *repository.NewsRepository
	mailer   *mail.Mailer
}

func NewNewsletterService(userRepo *repository.UserRepository, newsRepo *repository.NewsRepository, mailer *mail.Mailer) *NewsletterService {
	return &NewsletterService{userRepo: userRepo, newsRepo: newsRepo, mailer: mailer}
}

// ListSubscribers 订阅用户列表（编辑/管理员）
func (s *NewsletterService) ListSubscribers(page, pageSize int) (*dto.SubscriberListData, error) {
	skip := (page - 1) * pageSize
	users, total, err := s.userRepo.ListNewsletterSubscribers(skip, pageSize)
	if err != nil {
		return nil, err
	}

	items := make([]dto.SubscriberInfo, 0, len(users))
	for i := range users {
		items = append(items, dto.SubscriberInfo{
			ID:       users[i].ID,
			Email:    users[i].Email,
			Username: users[i].UserName,
			JoinedAt: users[i].CreatedAt,
		})
	}

	totalPages := (total + int64(pageSize) - 1) / int64(pageSize)

	return &dto.SubscriberListData{
		Subscribers: items,
		Total:       total,
		Page:        page,
		PageSize:    pageSize,
		TotalPages:  totalPages,
	}, nil
}

// SendDigest 向全部订阅用户推送资讯邮件
// 每个订阅用户投递一条 Kafka 消息，由 worker 异步逐封发送，
// API 请求只负责入队。
func (s *NewsletterService) SendDigest(subject string) (*dto.DigestEnqueueResult, error) {
	since := time.Now().Add(-digestWindow)
	newsList, err := s.newsRepo.ListPublishedSince(since)
	if err != nil {
		return nil, err
	}
	if len(newsList) == 0 {
		return nil, ErrNoRecentNews
	}

	newsIDs := make([]int64, 0, len(newsList))
	for i := range newsList {
		newsIDs = append(newsIDs, newsList[i].ID)
	}

	if strings.TrimSpace(subject) == "" {
		subject = fmt.Sprintf("GamePulse 本周游戏资讯精选（%s）", time.Now().Format("2006-01-02"))
	}

	subscribers, err := s.userRepo.AllNewsletterSubscribers()
	if err != nil {
		return nil, err
	}

	newsletterID := fmt.Sprintf("digest-%s", time.Now().Format("20060102-150405"))
	topic := config.GetKafka().Topics["newsletter"]

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var enqueued int
	for i := range subscribers {
		job := &infraKafka.NewsletterJob{
			NewsletterID: newsletterID,
			UserID:       subscribers[i].ID,
			Email:        subscribers[i].Email,
			UserName:     subscribers[i].UserName,
			Subject:      subject,
			NewsIDs:      newsIDs,
		}
		if err := infraKafka.SendNewsletterJob(ctx, topic, job); err != nil {
			logger.Error("Failed to enqueue newsletter job",
				zap.Int64("user_id", subscribers[i].ID), zap.Error(err))
			continue
		}
		enqueued++
	}

	logger.Info("Newsletter digest enqueued",
		zap.String("newsletter_id", newsletterID),
		zap.Int("subscribers", enqueued),
		zap.Int("news_count", len(newsIDs)))

	return &dto.DigestEnqueueResult{
		NewsletterID: newsletterID,
		Subscribers:  enqueued,
		NewsCount:    len(newsIDs),
	}, nil
}

// HandleNewsletterJob 处理 worker 消费到的单封邮件任务
func (s *NewsletterService) HandleNewsletterJob(job *infraKafka.NewsletterJob) error {
	newsList, err := s.newsRepo.GetByIDs(job.NewsIDs)
	if err != nil {
		return fmt.Errorf("load news for newsletter %s: %w", job.NewsletterID, err)
	}
	if len(newsList) == 0 {
		return nil
	}

	var body strings.Builder
	body.WriteString(fmt.Sprintf("<h2>你好，%s</h2>", job.UserName))
	body.WriteString("<p>以下是本周发布的游戏资讯：</p><ul>")
	for i := range newsList {
		n := &newsList[i]
		body.WriteString(fmt.Sprintf(`<li><a href="/news/%s">%s</a>`, n.Slug, n.Title))
		if n.AverageRating != nil {
			body.WriteString(fmt.Sprintf("（评分 %.2f / 5）", *n.AverageRating))
		}
		body.WriteString("</li>")
	}
	body.WriteString("</ul><p>感谢订阅 GamePulse。</p>")

	if err := s.mailer.Send([]string{job.Email}, job.Subject, body.String()); err != nil {
		return err
	}

	logger.Info("Newsletter mail delivered",
		zap.String("newsletter_id", job.NewsletterID),
		zap.Int64("user_id", job.UserID))
	return nil
}
