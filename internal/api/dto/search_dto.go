package dto

import "time"

// SearchNewsRequest 搜索新闻请求（query string）
type SearchNewsRequest struct {
	Q        string     `form:"q"`
	Category string     `form:"category"`
	Tag      string     `form:"tag"`
	DateFrom *time.Time `form:"date_from" time_format:"2006-01-02"`
	DateTo   *time.Time `form:"date_to" time_format:"2006-01-02"`
	Sort     string     `form:"sort" binding:"omitempty,oneof=relevance date rating views"`
	Page     int        `form:"page"`
	PageSize int        `form:"page_size"`
}

// SearchNewsInfo 搜索结果条目
type SearchNewsInfo struct {
	ID            int64               `json:"id"`
	AuthorID      int64               `json:"author_id"`
	AuthorName    string              `json:"author_name"`
	Title         string              `json:"title"`
	Subtitle      *string             `json:"subtitle"`
	Slug          string              `json:"slug"`
	FeaturedImage *string             `json:"featured_image"`
	ViewCount     int64               `json:"view_count"`
	AverageRating *float64            `json:"average_rating"`
	RatingCount   int64               `json:"rating_count"`
	PublishedAt   *time.Time          `json:"published_at"`
	Highlight     map[string][]string `json:"highlight,omitempty"`
}

// SearchNewsData 搜索结果响应数据
type SearchNewsData struct {
	News       []SearchNewsInfo `json:"news"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalPages int64            `json:"total_pages"`
}
