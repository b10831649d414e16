package service

import (
	"errors"
	"math"

	"gamepulse-go/internal/api/dto"
	"gamepulse-go/internal/model"
	"gamepulse-go/internal/repository"

	"gorm.io/gorm"
)

var (
	ErrNewsNotFound  = errors.New("新闻不存在")
	ErrAlreadyRated  = errors.New("您已经对该新闻评过分了")
	ErrInvalidRating = errors.New("评分必须在 1 到 5 之间")
)

type RatingService struct {
	db         *gorm.DB
	ratingRepo *repository.RatingRepository
	newsRepo   *repository.NewsRepository
}

func NewRatingService(db *gorm.DB, ratingRepo *repository.RatingRepository, newsRepo *repository.NewsRepository) *RatingService {
	return &RatingService{db: db, ratingRepo: ratingRepo, newsRepo: newsRepo}
}

// Rate 对新闻评分（一次性，不可修改）
// 写入评分行后从全量评分重算平均值，保留两位小数（四舍五入），
// 与 rating_count 一起在同一事务内更新到新闻行。
func (s *RatingService) Rate(userID int64, slug string, rating int) (*dto.RatingResult, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}

	news, err := s.newsRepo.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNewsNotFound
		}
		return nil, err
	}
	if !news.IsPublished() {
		return nil, ErrNewsNotFound
	}

	exists, err := s.ratingRepo.Exists(userID, news.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyRated
	}

	var result dto.RatingResult
	err = s.db.Transaction(func(tx *gorm.DB) error {
		ratingRepo := s.ratingRepo.WithTx(tx)
		newsRepo := s.newsRepo.WithTx(tx)

		row := &model.NewsRating{
			UserID: userID,
			NewsID: news.ID,
			Rating: rating,
		}
		if err := ratingRepo.Create(row); err != nil {
			return err
		}

		avg, ok, err := ratingRepo.Average(news.ID)
		if err != nil {
			return err
		}
		if !ok {
			// 刚插入过评分，平均值不可能为空
			return gorm.ErrRecordNotFound
		}
		rounded := math.Round(avg*100) / 100

		count, err := ratingRepo.CountByNews(news.ID)
		if err != nil {
			return err
		}

		if _, err := newsRepo.Update(news.ID, map[string]interface{}{
			"average_rating": rounded,
			"rating_count":   count,
		}); err != nil {
			return err
		}

		result = dto.RatingResult{
			AverageRating: rounded,
			RatingCount:   count,
			UserRating:    rating,
		}
		return nil
	})
	if err != nil {
		// 唯一索引兜底：并发重复评分在提交时失败
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyRated
		}
		return nil, err
	}

	return &result, nil
}

// GetUserRating 查询用户对新闻的评分（未评分返回 nil）
func (s *RatingService) GetUserRating(userID, newsID int64) (*int, error) {
	row, err := s.ratingRepo.Find(userID, newsID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row.Rating, nil
}
