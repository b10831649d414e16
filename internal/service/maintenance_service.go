package service

import (
	"math"

	"gamepulse-go/internal/api/dto"
	"gamepulse-go/internal/model"
	"gamepulse-go/internal/repository"
	"gamepulse-go/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MaintenanceService 冗余计数对账修复
// 投票计数与评分均值由事务维护，正常情况下不会漂移；
// 该服务用于事故恢复或手工导数后的全量重算。
type MaintenanceService struct {
	db          *gorm.DB
	commentRepo *repository.CommentRepository
	voteRepo    *repository.VoteRepository
	newsRepo    *repository.NewsRepository
	ratingRepo  *repository.RatingRepository
}

func NewMaintenanceService(db *gorm.DB, commentRepo *repository.CommentRepository, voteRepo *repository.VoteRepository, newsRepo *repository.NewsRepository, ratingRepo *repository.RatingRepository) *MaintenanceService {
	return &MaintenanceService{db: db, commentRepo: commentRepo, voteRepo: voteRepo, newsRepo: newsRepo, ratingRepo: ratingRepo}
}

// RecountVotes 重算全部评论的点赞/点踩计数
func (s *MaintenanceService) RecountVotes() (*dto.RecountResult, error) {
	ids, err := s.commentRepo.ListAllIDs()
	if err != nil {
		return nil, err
	}

	var repaired int64
	for _, id := range ids {
		likes, err := s.voteRepo.CountByType(id, model.VoteTypeLike)
		if err != nil {
			return nil, err
		}
		dislikes, err := s.voteRepo.CountByType(id, model.VoteTypeDislike)
		if err != nil {
			return nil, err
		}

		comment, err := s.commentRepo.GetByID(id)
		if err != nil {
			return nil, err
		}
		if comment.LikesCount == likes && comment.DislikesCount == dislikes {
			continue
		}

		if err := s.commentRepo.SetCounters(id, likes, dislikes); err != nil {
			return nil, err
		}
		repaired++
	}

	if repaired > 0 {
		logger.Warn("vote counters drifted and were repaired", zap.Int64("repaired", repaired))
	}

	return &dto.RecountResult{Scanned: int64(len(ids)), Repaired: repaired}, nil
}

// RecountRatings 重算全部新闻的平均评分与评分人数
func (s *MaintenanceService) RecountRatings() (*dto.RecountResult, error) {
	var ids []int64
	if err := s.db.Model(&model.News{}).Pluck("id", &ids).Error; err != nil {
		return nil, err
	}

	var repaired int64
	for _, id := range ids {
		avg, ok, err := s.ratingRepo.Average(id)
		if err != nil {
			return nil, err
		}
		count, err := s.ratingRepo.CountByNews(id)
		if err != nil {
			return nil, err
		}

		updates := map[string]interface{}{"rating_count": count}
		if ok {
			updates["average_rating"] = math.Round(avg*100) / 100
		} else {
			updates["average_rating"] = nil
		}

		if _, err := s.newsRepo.Update(id, updates); err != nil {
			return nil, err
		}
		repaired++
	}

	return &dto.RecountResult{Scanned: int64(len(ids)), Repaired: repaired}, nil
}
