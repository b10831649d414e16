package repository

import (
	"gamepulse-go/internal/model"

	"gorm.io/gorm"
)

type RatingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

// WithTx 返回绑定到事务的仓库副本
func (r *RatingRepository) WithTx(tx *gorm.DB) *RatingRepository {
	return &RatingRepository{db: tx}
}

func (r *RatingRepository) Create(rating *model.NewsRating) error {
	return r.db.Create(rating).Error
}

// Find 查询用户对新闻的评分记录（不存在返回 gorm.ErrRecordNotFound）
func (r *RatingRepository) Find(userID, newsID int64) (*model.NewsRating, error) {
	var rating model.NewsRating
	err := r.db.Where("user_id = ? AND news_id = ?", userID, newsID).First(&rating).Error
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// Exists 用户是否已对新闻评分
func (r *RatingRepository) Exists(userID, newsID int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.NewsRating{}).
		Where("user_id = ? AND news_id = ?", userID, newsID).Count(&count).Error
	return count > 0, err
}

// Average 计算新闻的平均评分（无评分时 ok 为 false）
// 平均值每次从全量评分行重算，冗余字段漂移后可自愈。
func (r *RatingRepository) Average(newsID int64) (float64, bool, error) {
	var avg *float64
	err := r.db.Model(&model.NewsRating{}).
		Where("news_id = ?", newsID).
		Select("AVG(rating)").Scan(&avg).Error
	if err != nil {
		return 0, false, err
	}
	if avg == nil {
		return 0, false, nil
	}
	return *avg, true, nil
}

// CountByNews 统计新闻的评分条数
func (r *RatingRepository) CountByNews(newsID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.NewsRating{}).Where("news_id = ?", newsID).Count(&count).Error
	return count, err
}

// DeleteByNews 删除新闻下的全部评分（级联删除用）
func (r *RatingRepository) DeleteByNews(newsID int64) error {
	return r.db.Where("news_id = ?", newsID).Delete(&model.NewsRating{}).Error
}
