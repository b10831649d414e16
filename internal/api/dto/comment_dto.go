package dto

import "time"

// CommentCreateRequest 发表评论请求
type CommentCreateRequest struct {
	Content string `json:"content" binding:"required,min=1,max=5000"`
}

// CommentInfo 评论详情
type CommentInfo struct {
	ID            int64        `json:"id"`
	AuthorID      int64        `json:"author_id"`
	NewsID        int64        `json:"news_id"`
	Content       string       `json:"content"`
	LikesCount    int64        `json:"likes_count"`
	DislikesCount int64        `json:"dislikes_count"`
	UserVote      *string      `json:"user_vote,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	Author        *AuthorBrief `json:"author,omitempty"`
}

// CommentListData 评论列表响应数据
type CommentListData struct {
	Comments   []CommentInfo `json:"comments"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	TotalPages int64         `json:"total_pages"`
}
