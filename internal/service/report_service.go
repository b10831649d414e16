package service

import (
	"errors"
	"strings"

	"gamepulse-go/internal/api/dto"
	"gamepulse-go/internal/model"
	"gamepulse-go/internal/repository"

	"gorm.io/gorm"
)

var ErrReportReasonEmpty = errors.New("举报原因不能为空")

type ReportService struct {
	reportRepo  *repository.ReportRepository
	commentRepo *repository.CommentRepository
}

func NewReportService(reportRepo *repository.ReportRepository, commentRepo *repository.CommentRepository) *ReportService {
	return &ReportService{reportRepo: reportRepo, commentRepo: commentRepo}
}

// Create 举报评论（需登录）
func (s *ReportService) Create(reporterID, commentID int64, reason, description string) (*dto.ReportInfo, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrReportReasonEmpty
	}

	if _, err := s.commentRepo.GetByID(commentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}

	report := &model.Report{
		ReporterID:  reporterID,
		CommentID:   &commentID,
		Reason:      reason,
		Description: strings.TrimSpace(description),
		Status:      model.ReportStatusPending,
	}
	if err := s.reportRepo.Create(report); err != nil {
		return nil, err
	}

	info := toReportInfo(report)
	return &info, nil
}
