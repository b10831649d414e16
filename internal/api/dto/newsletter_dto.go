package dto

import "time"

// DigestSendRequest 推送资讯邮件请求（编辑/管理员）
type DigestSendRequest struct {
	Subject string `json:"subject" binding:"omitempty,max=255"`
}

// DigestEnqueueResult 推送入队结果
type DigestEnqueueResult struct {
	NewsletterID string `json:"newsletter_id"`
	Subscribers  int    `json:"subscribers"`
	NewsCount    int    `json:"news_count"`
}

// SubscriberInfo 订阅用户信息
type SubscriberInfo struct {
	ID       int64     `json:"id"`
	Email    string    `json:"email"`
	Username string    `json:"username"`
	JoinedAt time.Time `json:"joined_at"`
}

// SubscriberListData 订阅用户列表响应数据
type SubscriberListData struct {
	Subscribers []SubscriberInfo `json:"subscribers"`
	Total       int64            `json:"total"`
	Page        int              `json:"page"`
	PageSize    int              `json:"page_size"`
	TotalPages  int64            `json:"total_pages"`
}
