package service

import (
	"gamepulse-go/internal/api/dto"
	"gamepulse-go/internal/model"
	"gamepulse-go/internal/repository"
)

// StatsService 后台仪表盘统计
type StatsService struct {
	userRepo    *repository.UserRepository
	newsRepo    *repository.NewsRepository
	commentRepo *repository.CommentRepository
	reportRepo  *repository.ReportRepository
}

func NewStatsService(userRepo *repository.UserRepository, newsRepo *repository.NewsRepository, commentRepo *repository.CommentRepository, reportRepo *repository.ReportRepository) *StatsService {
	return &StatsService{userRepo: userRepo, newsRepo: newsRepo, commentRepo: commentRepo, reportRepo: reportRepo}
}

// GetDashboard 仪表盘汇总数据
func (s *StatsService) GetDashboard() (*dto.DashboardData, error) {
	users, err := s.userRepo.Count()
	if err != nil {
		return nil, err
	}
	published, err := s.newsRepo.CountByStatus(model.NewsStatusPublished)
	if err != nil {
		return nil, err
	}
	drafts, err := s.newsRepo.CountByStatus(model.NewsStatusDraft)
	if err != nil {
		return nil, err
	}
	comments, err := s.commentRepo.Count()
	if err != nil {
		return nil, err
	}
	pendingReports, err := s.reportRepo.CountByStatus(model.ReportStatusPending)
	if err != nil {
		return nil, err
	}

	return &dto.DashboardData{
		TotalUsers:     users,
		PublishedNews:  published,
		DraftNews:      drafts,
		TotalComments:  comments,
		PendingReports: pendingReports,
	}, nil
}
