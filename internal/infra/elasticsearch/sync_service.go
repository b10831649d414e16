package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gamepulse-go/internal/model"
	"gamepulse-go/pkg/logger"

	"go.uber.org/zap"
)

// ESNewsDoc ES 新闻文档结构
type ESNewsDoc struct {
	ID            int64    `json:"id"`
	AuthorID      int64    `json:"author_id"`
	AuthorName    string   `json:"author_name"`
	Title         string   `json:"title"`
	Subtitle      string   `json:"subtitle,omitempty"`
	Body          string   `json:"body"`
	Slug          string   `json:"slug"`
	Status        string   `json:"status"`
	Categories    []string `json:"categories"`
	Tags          []string `json:"tags"`
	ViewCount     int64    `json:"view_count"`
	AverageRating float64  `json:"average_rating,omitempty"`
	RatingCount   int64    `json:"rating_count"`
	PublishedAt   string   `json:"published_at,omitempty"`
	CreatedAt     string   `json:"created_at"`
}

func newsToESDoc(n *model.News, authorName string) *ESNewsDoc {
	doc := &ESNewsDoc{
		ID:          n.ID,
		AuthorID:    n.AuthorID,
		AuthorName:  authorName,
		Title:       n.Title,
		Body:        n.Body,
		Slug:        n.Slug,
		Status:      n.Status,
		ViewCount:   n.ViewCount,
		RatingCount: n.RatingCount,
		CreatedAt:   n.CreatedAt.Format(time.RFC3339),
	}
	if n.Subtitle != nil {
		doc.Subtitle = *n.Subtitle
	}
	if n.AverageRating != nil {
		doc.AverageRating = *n.AverageRating
	}
	if n.PublishedAt != nil {
		doc.PublishedAt = n.PublishedAt.Format(time.RFC3339)
	}

	doc.Categories = make([]string, 0, len(n.Categories))
	for _, c := range n.Categories {
		doc.Categories = append(doc.Categories, c.Slug)
	}
	doc.Tags = make([]string, 0, len(n.Tags))
	for _, t := range n.Tags {
		doc.Tags = append(doc.Tags, t.Slug)
	}

	return doc
}

// SyncNews 同步单条新闻到 ES
func SyncNews(ctx context.Context, n *model.News, authorName string) error {
	doc := newsToESDoc(n, authorName)
	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	resp, err := Index(ctx, NewsIndexName(), fmt.Sprintf("%d", n.ID), bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return fmt.Errorf("index document failed: %s", resp.String())
	}

	logger.Debug("News synced to ES", zap.Int64("news_id", n.ID))
	return nil
}

// DeleteNews 从 ES 删除新闻
func DeleteNews(ctx context.Context, newsID int64) error {
	resp, err := Delete(ctx, NewsIndexName(), fmt.Sprintf("%d", newsID))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.IsError() && resp.StatusCode != 404 {
		return fmt.Errorf("delete document failed: %s", resp.String())
	}
	return nil
}

// BulkSyncNews 批量同步新闻到 ES（全量重建用）
func BulkSyncNews(ctx context.Context, newsList []model.News, authorNames map[int64]string) (success, failed int, err error) {
	indexName := NewsIndexName()

	var buf strings.Builder
	for i := range newsList {
		n := &newsList[i]
		doc := newsToESDoc(n, authorNames[n.AuthorID])
		docBody, _ := json.Marshal(doc)

		buf.WriteString(fmt.Sprintf(`{"index":{"_index":"%s","_id":"%d"}}`, indexName, n.ID))
		buf.WriteString("\n")
		buf.Write(docBody)
		buf.WriteString("\n")
	}

	if buf.Len() == 0 {
		return 0, 0, nil
	}

	resp, err := Bulk(ctx, strings.NewReader(buf.String()))
	if err != nil {
		return 0, len(newsList), err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return 0, len(newsList), fmt.Errorf("bulk failed: %s", resp.String())
	}

	var bulkResp struct {
		Errors bool `json:"errors"`
		Items  []struct {
			Index struct {
				Status int `json:"status"`
			} `json:"index"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&bulkResp); err != nil {
		return len(newsList), 0, nil
	}

	for _, item := range bulkResp.Items {
		if item.Index.Status >= 200 && item.Index.Status < 300 {
			success++
		} else {
			failed++
		}
	}

	logger.Info("Bulk sync to ES completed", zap.Int("success", success), zap.Int("failed", failed))
	return success, failed, nil
}
