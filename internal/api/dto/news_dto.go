package dto

import "time"

// NewsCreateRequest 创建新闻请求（编辑/管理员）
type NewsCreateRequest struct {
	Title       string  `json:"title" binding:"required,min=1,max=255"`
	Subtitle    *string `json:"subtitle" binding:"omitempty,max=255"`
	Body        string  `json:"body" binding:"required"`
	CategoryIDs []int64 `json:"category_ids"`
	TagIDs      []int64 `json:"tag_ids"`
	Publish     bool    `json:"publish"`
}

// NewsUpdateRequest 更新新闻请求
type NewsUpdateRequest struct {
	Title       *string  `json:"title" binding:"omitempty,min=1,max=255"`
	Subtitle    *string  `json:"subtitle" binding:"omitempty,max=255"`
	Body        *string  `json:"body"`
	Status      *string  `json:"status" binding:"omitempty,oneof=draft published"`
	CategoryIDs *[]int64 `json:"category_ids"`
	TagIDs      *[]int64 `json:"tag_ids"`
}

// AuthorBrief 嵌套的作者简要信息
type AuthorBrief struct {
	ID           int64   `json:"id"`
	Username     string  `json:"username"`
	ProfileImage *string `json:"profile_image"`
}

// NewsInfo 新闻详情
type NewsInfo struct {
	ID            int64          `json:"id"`
	AuthorID      int64          `json:"author_id"`
	Title         string         `json:"title"`
	Subtitle      *string        `json:"subtitle"`
	Body          string         `json:"body,omitempty"`
	Slug          string         `json:"slug"`
	FeaturedImage *string        `json:"featured_image"`
	Status        string         `json:"status"`
	ViewCount     int64          `json:"view_count"`
	AverageRating *float64       `json:"average_rating"`
	RatingCount   int64          `json:"rating_count"`
	UserRating    *int           `json:"user_rating,omitempty"`
	PublishedAt   *time.Time     `json:"published_at"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     *time.Time     `json:"updated_at"`
	Author        *AuthorBrief   `json:"author,omitempty"`
	Categories    []CategoryInfo `json:"categories,omitempty"`
	Tags          []TagInfo      `json:"tags,omitempty"`
}

// NewsListData 新闻列表响应数据
type NewsListData struct {
	News       []NewsInfo `json:"news"`
	Total      int64      `json:"total"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	TotalPages int64      `json:"total_pages"`
}
