package model

import "time"

// NewsRating 新闻评分模型
// 评分一经提交不可修改、不可删除；(user_id, news_id) 唯一索引
// 关闭并发重复评分的竞态窗口。
type NewsRating struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;comment:评分记录ID" json:"id"`
	UserID    int64     `gorm:"not null;uniqueIndex:uq_user_news_rating;index:idx_ratings_user_id;comment:评分用户ID" json:"user_id"`
	NewsID    int64     `gorm:"not null;uniqueIndex:uq_user_news_rating;index:idx_ratings_news_id;comment:被评分新闻ID" json:"news_id"`
	Rating    int       `gorm:"not null;comment:评分 1-5" json:"rating"`
	CreatedAt time.Time `gorm:"autoCreateTime;comment:评分时间" json:"created_at"`

	// 关联关系
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	News News `gorm:"foreignKey:NewsID" json:"news,omitempty"`
}

func (NewsRating) TableName() string {
	return "news_ratings"
}
