package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gamepulse-go/internal/api/dto"
	infraES "gamepulse-go/internal/infra/elasticsearch"
	"gamepulse-go/internal/model"
	"gamepulse-go/internal/repository"
	"gamepulse-go/pkg/logger"

	"go.uber.org/zap"
)

type SearchService struct {
	newsRepo *repository.NewsRepository
}

func NewSearchService(newsRepo *repository.NewsRepository) *SearchService {
	return &SearchService{newsRepo: newsRepo}
}

// SearchNews 搜索新闻（ES 优先，失败则降级到 DB）
func (s *SearchService) SearchNews(req *dto.SearchNewsRequest) (*dto.SearchNewsData, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 || req.PageSize > 100 {
		req.PageSize = 20
	}

	data, err := s.searchFromES(req)
	if err != nil {
		logger.Warn("ES search failed, fallback to DB", zap.Error(err))
		return s.searchFromDB(req)
	}
	return data, nil
}

func (s *SearchService) searchFromES(req *dto.SearchNewsRequest) (*dto.SearchNewsData, error) {
	query := s.buildESQuery(req)
	queryJSON, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	resp, err := infraES.Search(ctx, infraES.NewsIndexName(), bytes.NewReader(queryJSON))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return nil, fmt.Errorf("ES search error: %s", resp.String())
	}

	var esResp struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source struct {
					ID int64 `json:"id"`
				} `json:"_source"`
				Highlight map[string][]string `json:"highlight"`
			} `json:"hits"`
		} `json:"hits"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&esResp); err != nil {
		return nil, err
	}

	newsIDs := make([]int64, 0, len(esResp.Hits.Hits))
	highlights := make(map[int64]map[string][]string)
	for _, h := range esResp.Hits.Hits {
		newsIDs = append(newsIDs, h.Source.ID)
		if len(h.Highlight) > 0 {
			highlights[h.Source.ID] = h.Highlight
		}
	}

	total := esResp.Hits.Total.Value
	if len(newsIDs) == 0 {
		return s.buildSearchData(nil, highlights, total, req.Page, req.PageSize), nil
	}

	newsList, err := s.newsRepo.GetByIDs(newsIDs)
	if err != nil {
		return nil, err
	}

	newsMap := make(map[int64]*model.News)
	for i := range newsList {
		newsMap[newsList[i].ID] = &newsList[i]
	}

	// 保持 ES 的相关度排序
	ordered := make([]model.News, 0, len(newsIDs))
	for _, id := range newsIDs {
		if n, ok := newsMap[id]; ok {
			ordered = append(ordered, *n)
		}
	}

	return s.buildSearchData(ordered, highlights, total, req.Page, req.PageSize), nil
}

func (s *SearchService) buildESQuery(req *dto.SearchNewsRequest) map[string]interface{} {
	boolQ := map[string]interface{}{
		"filter": []interface{}{
			map[string]interface{}{"term": map[string]interface{}{"status": model.NewsStatusPublished}},
		},
		"must": []interface{}{},
	}

	if q := strings.TrimSpace(req.Q); q != "" {
		boolQ["must"] = append(boolQ["must"].([]interface{}),
			map[string]interface{}{
				"multi_match": map[string]interface{}{
					"query":    q,
					"fields":   []string{"title^3", "subtitle^2", "body^1"},
					"type":     "best_fields",
					"operator": "or",
				},
			},
		)
	}

	if req.Category != "" {
		boolQ["filter"] = append(boolQ["filter"].([]interface{}),
			map[string]interface{}{"term": map[string]interface{}{"categories": req.Category}})
	}
	if req.Tag != "" {
		boolQ["filter"] = append(boolQ["filter"].([]interface{}),
			map[string]interface{}{"term": map[string]interface{}{"tags": req.Tag}})
	}
	if req.DateFrom != nil || req.DateTo != nil {
		rangeQ := map[string]interface{}{}
		if req.DateFrom != nil {
			rangeQ["gte"] = req.DateFrom.Format(time.RFC3339)
		}
		if req.DateTo != nil {
			rangeQ["lte"] = req.DateTo.Format(time.RFC3339)
		}
		boolQ["filter"] = append(boolQ["filter"].([]interface{}),
			map[string]interface{}{"range": map[string]interface{}{"published_at": rangeQ}})
	}

	sortConfig := []interface{}{}
	switch req.Sort {
	case "date":
		sortConfig = append(sortConfig, map[string]interface{}{"published_at": map[string]string{"order": "desc"}})
	case "rating":
		sortConfig = append(sortConfig, map[string]interface{}{"average_rating": map[string]string{"order": "desc"}})
	case "views":
		sortConfig = append(sortConfig, map[string]interface{}{"view_count": map[string]string{"order": "desc"}})
	default:
		sortConfig = append(sortConfig, map[string]interface{}{"_score": map[string]string{"order": "desc"}})
		sortConfig = append(sortConfig, map[string]interface{}{"published_at": map[string]string{"order": "desc"}})
	}

	query := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": boolQ,
		},
		"_source": []string{"id"},
		"from":    (req.Page - 1) * req.PageSize,
		"size":    req.PageSize,
		"sort":    sortConfig,
	}

	if strings.TrimSpace(req.Q) != "" {
		query["highlight"] = map[string]interface{}{
			"fields": map[string]interface{}{
				"title": map[string]interface{}{},
				"body":  map[string]interface{}{},
			},
			"pre_tags":  []string{"<em>"},
			"post_tags": []string{"</em>"},
		}
	}

	return query
}

func (s *SearchService) searchFromDB(req *dto.SearchNewsRequest) (*dto.SearchNewsData, error) {
	skip := (req.Page - 1) * req.PageSize
	published := model.NewsStatusPublished

	filter := &repository.NewsFilter{Status: &published}
	if q := strings.TrimSpace(req.Q); q != "" {
		filter.Query = &q
	}
	if req.Category != "" {
		filter.CategorySlug = &req.Category
	}
	if req.Tag != "" {
		filter.TagSlug = &req.Tag
	}
	filter.DateFrom = req.DateFrom
	filter.DateTo = req.DateTo

	newsList, total, err := s.newsRepo.List(skip, req.PageSize, filter)
	if err != nil {
		return nil, err
	}

	return s.buildSearchData(newsList, nil, total, req.Page, req.PageSize), nil
}

func (s *SearchService) buildSearchData(newsList []model.News, highlights map[int64]map[string][]string, total int64, page, pageSize int) *dto.SearchNewsData {
	items := make([]dto.SearchNewsInfo, 0, len(newsList))
	for i := range newsList {
		n := &newsList[i]
		authorName := ""
		if n.Author.ID != 0 {
			authorName = n.Author.UserName
		}
		info := dto.SearchNewsInfo{
			ID:            n.ID,
			AuthorID:      n.AuthorID,
			AuthorName:    authorName,
			Title:         n.Title,
			Subtitle:      n.Subtitle,
			Slug:          n.Slug,
			FeaturedImage: n.FeaturedImage,
			ViewCount:     n.ViewCount,
			AverageRating: n.AverageRating,
			RatingCount:   n.RatingCount,
			PublishedAt:   n.PublishedAt,
			Highlight:     highlights[n.ID],
		}
		items = append(items, info)
	}

	totalPages := (total + int64(pageSize) - 1) / int64(pageSize)
	return &dto.SearchNewsData{
		News:       items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

// SyncNewsToES 全量重建 news 索引（后台维护）
func (s *SearchService) SyncNewsToES() (success, failed int, err error) {
	published := model.NewsStatusPublished
	newsList, _, err := s.newsRepo.List(0, 10000, &repository.NewsFilter{Status: &published})
	if err != nil {
		return 0, 0, err
	}

	if len(newsList) == 0 {
		return 0, 0, nil
	}

	authorNames := make(map[int64]string)
	for i := range newsList {
		if newsList[i].Author.ID != 0 {
			authorNames[newsList[i].AuthorID] = newsList[i].Author.UserName
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	return infraES.BulkSyncNews(ctx, newsList, authorNames)
}
