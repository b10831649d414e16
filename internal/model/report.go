package model

import "time"

// Report 举报模型
// comment_id 可为空：评论被删除后举报记录保留（审计轨迹），
// 状态流转 pending -> resolved / dismissed。
type Report struct {
	ID          int64      `gorm:"primaryKey;autoIncrement;comment:举报记录ID" json:"id"`
	ReporterID  int64      `gorm:"not null;index:idx_reports_reporter_id;comment:举报人ID" json:"reporter_id"`
	CommentID   *int64     `gorm:"index:idx_reports_comment_id;comment:被举报评论ID" json:"comment_id"`
	Reason      string     `gorm:"size:100;not null;comment:举报原因" json:"reason"`
	Description string     `gorm:"type:text;not null;comment:详细说明" json:"description"`
	Status      string     `gorm:"size:20;not null;default:'pending';index:idx_reports_status;comment:状态 pending/resolved/dismissed" json:"status"`
	CreatedAt   time.Time  `gorm:"autoCreateTime;index:idx_reports_created_at;comment:举报时间" json:"created_at"`
	ResolvedAt  *time.Time `gorm:"comment:处理时间" json:"resolved_at"`

	// 关联关系
	Reporter User     `gorm:"foreignKey:ReporterID" json:"reporter,omitempty"`
	Comment  *Comment `gorm:"foreignKey:CommentID" json:"comment,omitempty"`
}

func (Report) TableName() string {
	return "reports"
}

// 举报状态常量
const (
	ReportStatusPending   = "pending"
	ReportStatusResolved  = "resolved"
	ReportStatusDismissed = "dismissed"
)
