package repository

import (
	"gamepulse-go/internal/model"

	"gorm.io/gorm"
)

type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// WithTx 返回绑定到事务的仓库副本
func (r *ReportRepository) WithTx(tx *gorm.DB) *ReportRepository {
	return &ReportRepository{db: tx}
}

func (r *ReportRepository) Create(report *model.Report) error {
	return r.db.Create(report).Error
}

func (r *ReportRepository) GetByID(id int64) (*model.Report, error) {
	var report model.Report
	err := r.db.First(&report, id).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// GetByIDWithComment 获取举报（含被举报评论及其作者）
func (r *ReportRepository) GetByIDWithComment(id int64) (*model.Report, error) {
	var report model.Report
	err := r.db.Preload("Reporter").Preload("Comment").Preload("Comment.Author").
		First(&report, id).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// Update 更新举报字段
func (r *ReportRepository) Update(id int64, updates map[string]interface{}) error {
	result := r.db.Model(&model.Report{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteOthersByComment 删除同一评论下除 keepID 外的其他举报
// 处理中的举报保留为审计记录，其余举报随评论一起级联清除。
func (r *ReportRepository) DeleteOthersByComment(commentID, keepID int64) error {
	return r.db.Where("comment_id = ? AND id != ?", commentID, keepID).
		Delete(&model.Report{}).Error
}

// DeleteByComments 批量删除多条评论的举报（新闻级联删除用）
func (r *ReportRepository) DeleteByComments(commentIDs []int64) error {
	if len(commentIDs) == 0 {
		return nil
	}
	return r.db.Where("comment_id IN ?", commentIDs).Delete(&model.Report{}).Error
}

// List 举报列表（后台审核，按时间倒序，可按状态筛选）
func (r *ReportRepository) List(skip, limit int, status *string) ([]model.Report, int64, error) {
	query := r.db.Model(&model.Report{})
	if status != nil && *status != "" {
		query = query.Where("status = ?", *status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reports []model.Report
	err := query.Preload("Reporter").Preload("Comment").
		Order("created_at DESC").Offset(skip).Limit(limit).Find(&reports).Error
	if err != nil {
		return nil, 0, err
	}

	return reports, total, nil
}

// CountByStatus 按状态统计举报数（仪表盘）
func (r *ReportRepository) CountByStatus(status string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Report{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
