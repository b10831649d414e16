package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"gamepulse-go/internal/api/dto"
	"gamepulse-go/internal/config"
	infraES "gamepulse-go/internal/infra/elasticsearch"
	infraMinio "gamepulse-go/internal/infra/minio"
	infraRedis "gamepulse-go/internal/infra/redis"
	"gamepulse-go/internal/model"
	"gamepulse-go/internal/repository"
	"gamepulse-go/pkg/logger"
	"gamepulse-go/pkg/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrNewsNoPermission = errors.New("没有权限操作该新闻")
	ErrNoFieldsToUpdate = errors.New("没有需要更新的字段")
	ErrCategoryNotFound = errors.New("分类不存在")
	ErrTagNotFound      = errors.New("标签不存在")
)

const newsImageBucket = "news-images"

const (
	featuredCacheKey = "news:featured"
	featuredCacheTTL = 5 * time.Minute
)

type NewsService struct {
	db           *gorm.DB
	newsRepo     *repository.NewsRepository
	commentRepo  *repository.CommentRepository
	voteRepo     *repository.VoteRepository
	ratingRepo   *repository.RatingRepository
	reportRepo   *repository.ReportRepository
	categoryRepo *repository.CategoryRepository
	tagRepo      *repository.TagRepository
}

func NewNewsService(db *gorm.DB, newsRepo *repository.NewsRepository, commentRepo *repository.CommentRepository, voteRepo *repository.VoteRepository, ratingRepo *repository.RatingRepository, reportRepo *repository.ReportRepository, categoryRepo *repository.CategoryRepository, tagRepo *repository.TagRepository) *NewsService {
	return &NewsService{
		db:           db,
		newsRepo:     newsRepo,
		commentRepo:  commentRepo,
		voteRepo:     voteRepo,
		ratingRepo:   ratingRepo,
		reportRepo:   reportRepo,
		categoryRepo: categoryRepo,
		tagRepo:      tagRepo,
	}
}

// List 已发布新闻列表（公开，可按关键词/分类/标签/日期筛选）
func (s *NewsService) List(page, pageSize int, filter *repository.NewsFilter) (*dto.NewsListData, error) {
	if filter == nil {
		filter = &repository.NewsFilter{}
	}
	published := model.NewsStatusPublished
	filter.Status = &published

	skip := (page - 1) * pageSize
	news, total, err := s.newsRepo.List(skip, pageSize, filter)
	if err != nil {
		return nil, err
	}
	return buildNewsListData(news, total, page, pageSize), nil
}

// ListFeatured 首页精选，结果缓存 5 分钟
func (s *NewsService) ListFeatured(limit int) ([]dto.NewsInfo, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	cacheKey := fmt.Sprintf("%s:%d", featuredCacheKey, limit)

	var cached []dto.NewsInfo
	if err := infraRedis.GetJSON(ctx, cacheKey, &cached); err == nil {
		return cached, nil
	} else if !errors.Is(err, infraRedis.ErrCacheMiss) {
		logger.Warn("Failed to read featured cache", zap.Error(err))
	}

	news, err := s.newsRepo.ListFeatured(limit)
	if err != nil {
		return nil, err
	}
	items := make([]dto.NewsInfo, 0, len(news))
	for i := range news {
		items = append(items, *toNewsInfo(&news[i], false))
	}

	if err := infraRedis.SetJSON(ctx, cacheKey, items, featuredCacheTTL); err != nil {
		logger.Warn("Failed to write featured cache", zap.Error(err))
	}

	return items, nil
}

// GetDetail 新闻详情（浏览量走 Redis 缓冲，异步落库）
func (s *NewsService) GetDetail(slug string) (*dto.NewsInfo, error) {
	news, err := s.newsRepo.GetBySlugWithRelations(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNewsNotFound
		}
		return nil, err
	}
	if !news.IsPublished() {
		return nil, ErrNewsNotFound
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := infraRedis.IncrViewCount(ctx, news.ID); err != nil {
		logger.Warn("Failed to buffer view count", zap.Int64("news_id", news.ID), zap.Error(err))
	}
	news.ViewCount++

	return toNewsInfo(news, true), nil
}

// GetBackoffice 后台新闻详情（含草稿）
func (s *NewsService) GetBackoffice(id int64) (*dto.NewsInfo, error) {
	news, err := s.newsRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNewsNotFound
		}
		return nil, err
	}
	full, err := s.newsRepo.GetBySlugWithRelations(news.Slug)
	if err != nil {
		return nil, err
	}
	return toNewsInfo(full, true), nil
}

// ListBackoffice 后台新闻列表（编辑/管理员，含草稿）
func (s *NewsService) ListBackoffice(page, pageSize int) (*dto.NewsListData, error) {
	skip := (page - 1) * pageSize
	news, total, err := s.newsRepo.ListAll(skip, pageSize)
	if err != nil {
		return nil, err
	}
	return buildNewsListData(news, total, page, pageSize), nil
}

// Create 创建新闻（编辑/管理员）
// slug 由标题生成并带随机后缀，保证唯一。
func (s *NewsService) Create(authorID int64, req *dto.NewsCreateRequest) (*dto.NewsInfo, error) {
	categories, tags, err := s.resolveTaxonomy(req.CategoryIDs, req.TagIDs)
	if err != nil {
		return nil, err
	}

	news := &model.News{
		AuthorID: authorID,
		Title:    req.Title,
		Subtitle: req.Subtitle,
		Body:     req.Body,
		Slug:     utils.MakeSlug(req.Title),
		Status:   model.NewsStatusDraft,
	}
	if req.Publish {
		now := time.Now()
		news.Status = model.NewsStatusPublished
		news.PublishedAt = &now
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		newsRepo := s.newsRepo.WithTx(tx)
		if err := newsRepo.Create(news); err != nil {
			return err
		}
		if len(categories) > 0 {
			if err := newsRepo.ReplaceCategories(news, categories); err != nil {
				return err
			}
		}
		if len(tags) > 0 {
			if err := newsRepo.ReplaceTags(news, tags); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.syncToES(news.ID)

	full, err := s.newsRepo.GetBySlugWithRelations(news.Slug)
	if err != nil {
		return nil, err
	}
	return toNewsInfo(full, true), nil
}

// Update 更新新闻（编辑仅限本人，管理员不限）
func (s *NewsService) Update(newsID, currentUserID int64, isAdmin bool, req *dto.NewsUpdateRequest) (*dto.NewsInfo, error) {
	news, err := s.newsRepo.GetByID(newsID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNewsNotFound
		}
		return nil, err
	}
	if !isAdmin && news.AuthorID != currentUserID {
		return nil, ErrNewsNoPermission
	}

	unpublishing := req.Status != nil && *req.Status == model.NewsStatusDraft &&
		news.Status == model.NewsStatusPublished

	updates := make(map[string]interface{})
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Subtitle != nil {
		updates["subtitle"] = *req.Subtitle
	}
	if req.Body != nil {
		updates["body"] = *req.Body
	}
	if req.Status != nil {
		if *req.Status != model.NewsStatusDraft && *req.Status != model.NewsStatusPublished {
			return nil, errors.New("无效的新闻状态")
		}
		updates["status"] = *req.Status
		// 首次发布时写入发布时间，重新发布不覆盖
		if *req.Status == model.NewsStatusPublished && news.PublishedAt == nil {
			updates["published_at"] = time.Now()
		}
	}
	updates["updated_at"] = time.Now()

	var categories []model.Category
	var tags []model.Tag
	if req.CategoryIDs != nil || req.TagIDs != nil {
		var catIDs, tagIDs []int64
		if req.CategoryIDs != nil {
			catIDs = *req.CategoryIDs
		}
		if req.TagIDs != nil {
			tagIDs = *req.TagIDs
		}
		categories, tags, err = s.resolveTaxonomy(catIDs, tagIDs)
		if err != nil {
			return nil, err
		}
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		newsRepo := s.newsRepo.WithTx(tx)
		if _, err := newsRepo.Update(newsID, updates); err != nil {
			return err
		}
		if req.CategoryIDs != nil {
			if err := newsRepo.ReplaceCategories(news, categories); err != nil {
				return err
			}
		}
		if req.TagIDs != nil {
			if err := newsRepo.ReplaceTags(news, tags); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 撤下发布的新闻从索引中移除，其余变更重新同步
	if unpublishing {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := infraES.DeleteNews(ctx, newsID); err != nil {
			logger.Warn("Failed to remove unpublished news from ES", zap.Int64("news_id", newsID), zap.Error(err))
		}
	} else {
		s.syncToES(newsID)
	}

	full, err := s.newsRepo.GetBySlugWithRelations(news.Slug)
	if err != nil {
		return nil, err
	}
	return toNewsInfo(full, true), nil
}

// UploadFeaturedImage 上传头图到 MinIO 并更新新闻
func (s *NewsService) UploadFeaturedImage(newsID, currentUserID int64, isAdmin bool, fileReader io.Reader, fileSize int64, originalName, contentType string) (string, error) {
	news, err := s.newsRepo.GetByID(newsID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNewsNotFound
		}
		return "", err
	}
	if !isAdmin && news.AuthorID != currentUserID {
		return "", ErrNewsNoPermission
	}

	ext := strings.TrimPrefix(filepath.Ext(originalName), ".")
	if ext == "" {
		ext = "jpg"
	}
	base := strings.TrimSuffix(originalName, filepath.Ext(originalName))
	objectName := fmt.Sprintf("%d/%s", newsID, utils.MakeFilename(base, ext))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if _, err := infraMinio.UploadFile(ctx, newsImageBucket, objectName, fileReader, fileSize, contentType); err != nil {
		logger.Error("Upload featured image to MinIO failed",
			zap.Int64("news_id", newsID), zap.Error(err))
		return "", fmt.Errorf("上传头图失败: %w", err)
	}

	cfg := config.GetMinIO()
	imageURL := infraMinio.GetPublicURL(cfg.Endpoint, cfg.UseSSL, newsImageBucket, objectName)

	if _, err := s.newsRepo.Update(newsID, map[string]interface{}{"featured_image": imageURL}); err != nil {
		return "", err
	}

	return imageURL, nil
}

// Delete 删除新闻
// 评论、投票、评分、分类/标签关联与评论上的举报在同一事务内清除。
func (s *NewsService) Delete(newsID, currentUserID int64, isAdmin bool) error {
	news, err := s.newsRepo.GetByID(newsID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNewsNotFound
		}
		return err
	}
	if !isAdmin && news.AuthorID != currentUserID {
		return ErrNewsNoPermission
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		newsRepo := s.newsRepo.WithTx(tx)
		commentRepo := s.commentRepo.WithTx(tx)
		voteRepo := s.voteRepo.WithTx(tx)
		ratingRepo := s.ratingRepo.WithTx(tx)
		reportRepo := s.reportRepo.WithTx(tx)

		commentIDs, err := commentRepo.ListIDsByNews(newsID)
		if err != nil {
			return err
		}

		if err := voteRepo.DeleteByComments(commentIDs); err != nil {
			return err
		}
		if err := reportRepo.DeleteByComments(commentIDs); err != nil {
			return err
		}
		if err := tx.Where("news_id = ?", newsID).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := ratingRepo.DeleteByNews(newsID); err != nil {
			return err
		}
		if err := newsRepo.ClearAssociations(news); err != nil {
			return err
		}
		return newsRepo.Delete(newsID)
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := infraES.DeleteNews(ctx, newsID); err != nil {
		logger.Warn("Failed to remove news from ES", zap.Int64("news_id", newsID), zap.Error(err))
	}

	logger.Info("News deleted", zap.Int64("news_id", newsID), zap.Int64("operator", currentUserID))
	return nil
}

// ApplyViewCountDelta 将 Redis 缓冲的浏览量增量落库
func (s *NewsService) ApplyViewCountDelta(newsID, delta int64) error {
	return s.newsRepo.IncrementViewCount(newsID, delta)
}

func (s *NewsService) resolveTaxonomy(categoryIDs, tagIDs []int64) ([]model.Category, []model.Tag, error) {
	categories, err := s.categoryRepo.GetByIDs(categoryIDs)
	if err != nil {
		return nil, nil, err
	}
	if len(categories) != len(categoryIDs) {
		return nil, nil, ErrCategoryNotFound
	}

	tags, err := s.tagRepo.GetByIDs(tagIDs)
	if err != nil {
		return nil, nil, err
	}
	if len(tags) != len(tagIDs) {
		return nil, nil, ErrTagNotFound
	}

	return categories, tags, nil
}

// syncToES 写后同步到 ES（失败只记日志，搜索有 DB 兜底）
func (s *NewsService) syncToES(newsID int64) {
	news, err := s.newsRepo.GetByID(newsID)
	if err != nil {
		return
	}
	full, err := s.newsRepo.GetBySlugWithRelations(news.Slug)
	if err != nil {
		return
	}

	authorName := ""
	if full.Author.ID != 0 {
		authorName = full.Author.UserName
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := infraES.SyncNews(ctx, full, authorName); err != nil {
		logger.Warn("Failed to sync news to ES", zap.Int64("news_id", newsID), zap.Error(err))
	}
}

func toNewsInfo(news *model.News, includeBody bool) *dto.NewsInfo {
	info := &dto.NewsInfo{
		ID:            news.ID,
		AuthorID:      news.AuthorID,
		Title:         news.Title,
		Subtitle:      news.Subtitle,
		Slug:          news.Slug,
		FeaturedImage: news.FeaturedImage,
		Status:        news.Status,
		ViewCount:     news.ViewCount,
		AverageRating: news.AverageRating,
		RatingCount:   news.RatingCount,
		PublishedAt:   news.PublishedAt,
		CreatedAt:     news.CreatedAt,
		UpdatedAt:     news.UpdatedAt,
	}

	if includeBody {
		info.Body = news.Body
	}

	if news.Author.ID != 0 {
		info.Author = &dto.AuthorBrief{
			ID:           news.Author.ID,
			Username:     news.Author.UserName,
			ProfileImage: news.Author.ProfileImage,
		}
	}

	for _, c := range news.Categories {
		info.Categories = append(info.Categories, dto.CategoryInfo{
			ID:          c.ID,
			Name:        c.Name,
			Slug:        c.Slug,
			Description: c.Description,
		})
	}
	for _, t := range news.Tags {
		info.Tags = append(info.Tags, dto.TagInfo{
			ID:          t.ID,
			Name:        t.Name,
			Slug:        t.Slug,
			Description: t.Description,
			Synonyms:    t.Synonyms,
		})
	}

	return info
}

func buildNewsListData(news []model.News, total int64, page, pageSize int) *dto.NewsListData {
	items := make([]dto.NewsInfo, 0, len(news))
	for i := range news {
		items = append(items, *toNewsInfo(&news[i], false))
	}

	totalPages := (total + int64(pageSize) - 1) / int64(pageSize)

	return &dto.NewsListData{
		News:       items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}
