package dto

// RatingRequest 新闻评分请求
type RatingRequest struct {
	Rating int `json:"rating" binding:"required,min=1,max=5"`
}

// RatingResult 评分结果（含最新均值）
type RatingResult struct {
	AverageRating float64 `json:"average_rating"`
	RatingCount   int64   `json:"rating_count"`
	UserRating    int     `json:"user_rating"`
}
