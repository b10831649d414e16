package service

import (
	"errors"
	"time"

	"gamepulse-go/internal/api/dto"
	"gamepulse-go/internal/model"
	"gamepulse-go/internal/repository"
	"gamepulse-go/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrReportNotFound        = errors.New("举报记录不存在")
	ErrReportAlreadyHandled  = errors.New("该举报已被处理")
	ErrInvalidModerateAction = errors.New("无效的处理动作")
)

// 举报处理动作
const (
	ModerateActionDeleteComment = "delete_comment"
	ModerateActionDismiss       = "dismiss"
)

type ModerationService struct {
	db          *gorm.DB
	reportRepo  *repository.ReportRepository
	commentRepo *repository.CommentRepository
	voteRepo    *repository.VoteRepository
}

func NewModerationService(db *gorm.DB, reportRepo *repository.ReportRepository, commentRepo *repository.CommentRepository, voteRepo *repository.VoteRepository) *ModerationService {
	return &ModerationService{db: db, reportRepo: reportRepo, commentRepo: commentRepo, voteRepo: voteRepo}
}

// ListReports 举报列表（后台审核）
func (s *ModerationService) ListReports(page, pageSize int, status *string) (*dto.ReportListData, error) {
	skip := (page - 1) * pageSize
	reports, total, err := s.reportRepo.List(skip, pageSize, status)
	if err != nil {
		return nil, err
	}
	return buildReportListData(reports, total, page, pageSize), nil
}

// GetReport 举报详情（含被举报评论及其作者）
func (s *ModerationService) GetReport(id int64) (*dto.ReportInfo, error) {
	report, err := s.reportRepo.GetByIDWithComment(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	info := toReportInfo(report)
	return &info, nil
}

// Resolve 处理举报
// delete_comment：在同一事务内删除评论的投票、清除同一评论的其他
// 举报、将当前举报的 comment_id 置空并标记 resolved，最后删除评论行。
// 当前举报保留为审计记录。dismiss：仅标记 dismissed。
func (s *ModerationService) Resolve(reportID int64, action string) (*dto.ReportInfo, error) {
	if action != ModerateActionDeleteComment && action != ModerateActionDismiss {
		return nil, ErrInvalidModerateAction
	}

	report, err := s.reportRepo.GetByID(reportID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	if report.Status != model.ReportStatusPending {
		return nil, ErrReportAlreadyHandled
	}

	now := time.Now()

	if action == ModerateActionDismiss {
		err = s.reportRepo.Update(reportID, map[string]interface{}{
			"status":      model.ReportStatusDismissed,
			"resolved_at": now,
		})
		if err != nil {
			return nil, err
		}
		return s.GetReport(reportID)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		reportRepo := s.reportRepo.WithTx(tx)
		commentRepo := s.commentRepo.WithTx(tx)
		voteRepo := s.voteRepo.WithTx(tx)

		updates := map[string]interface{}{
			"status":      model.ReportStatusResolved,
			"resolved_at": now,
		}

		// 评论可能已被作者或其他举报流程删除，此时只需标记处理完成
		if report.CommentID != nil {
			commentID := *report.CommentID

			if err := voteRepo.DeleteByComment(commentID); err != nil {
				return err
			}
			if err := reportRepo.DeleteOthersByComment(commentID, reportID); err != nil {
				return err
			}

			updates["comment_id"] = nil
			if err := reportRepo.Update(reportID, updates); err != nil {
				return err
			}

			return commentRepo.Delete(commentID)
		}

		return reportRepo.Update(reportID, updates)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("comment removed by moderation",
		zap.Int64("report_id", reportID),
		zap.String("action", action))

	return s.GetReport(reportID)
}

func toReportInfo(r *model.Report) dto.ReportInfo {
	info := dto.ReportInfo{
		ID:          r.ID,
		ReporterID:  r.ReporterID,
		CommentID:   r.CommentID,
		Reason:      r.Reason,
		Description: r.Description,
		Status:      r.Status,
		CreatedAt:   r.CreatedAt,
		ResolvedAt:  r.ResolvedAt,
	}
	if r.Reporter.ID != 0 {
		info.ReporterName = r.Reporter.UserName
	}
	if r.Comment != nil {
		info.Comment = &dto.ReportedComment{
			ID:         r.Comment.ID,
			AuthorID:   r.Comment.AuthorID,
			AuthorName: r.Comment.Author.UserName,
			Content:    r.Comment.Content,
			CreatedAt:  r.Comment.CreatedAt,
		}
	}
	return info
}

func buildReportListData(reports []model.Report, total int64, page, pageSize int) *dto.ReportListData {
	items := make([]dto.ReportInfo, 0, len(reports))
	for i := range reports {
		items = append(items, toReportInfo(&reports[i]))
	}

	totalPages := (total + int64(pageSize) - 1) / int64(pageSize)

	return &dto.ReportListData{
		Reports:    items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}
