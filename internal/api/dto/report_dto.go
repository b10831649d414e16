package dto

import "time"

// ReportCreateRequest 举报评论请求
type ReportCreateRequest struct {
	Reason      string `json:"reason" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"omitempty,max=2000"`
}

// ReportResolveRequest 处理举报请求（管理员）
type ReportResolveRequest struct {
	Action string `json:"action" binding:"required,oneof=delete_comment dismiss"`
}

// ReportedComment 举报中嵌套的被举报评论
type ReportedComment struct {
	ID         int64     `json:"id"`
	AuthorID   int64     `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

// ReportInfo 举报详情
type ReportInfo struct {
	ID           int64            `json:"id"`
	ReporterID   int64            `json:"reporter_id"`
	ReporterName string           `json:"reporter_name,omitempty"`
	CommentID    *int64           `json:"comment_id"`
	Reason       string           `json:"reason"`
	Description  string           `json:"description"`
	Status       string           `json:"status"`
	CreatedAt    time.Time        `json:"created_at"`
	ResolvedAt   *time.Time       `json:"resolved_at"`
	Comment      *ReportedComment `json:"comment,omitempty"`
}

// ReportListData 举报列表响应数据
type ReportListData struct {
	Reports    []ReportInfo `json:"reports"`
	Total      int64        `json:"total"`
	Page       int          `json:"page"`
	PageSize   int          `json:"page_size"`
	TotalPages int64        `json:"total_pages"`
}
