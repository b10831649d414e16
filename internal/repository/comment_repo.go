package repository

import (
	"gamepulse-go/internal/model"

	"gorm.io/gorm"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// WithTx 返回绑定到事务的仓库副本
func (r *CommentRepository) WithTx(tx *gorm.DB) *CommentRepository {
	return &CommentRepository{db: tx}
}

func (r *CommentRepository) Create(comment *model.Comment) error {
	return r.db.Create(comment).Error
}

func (r *CommentRepository) GetByID(id int64) (*model.Comment, error) {
	var comment model.Comment
	err := r.db.First(&comment, id).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *CommentRepository) GetByIDWithAuthor(id int64) (*model.Comment, error) {
	var comment model.Comment
	err := r.db.Preload("Author").First(&comment, id).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// DeleteOwn 删除评论（仅作者本人）
func (r *CommentRepository) DeleteOwn(commentID, authorID int64) (bool, error) {
	result := r.db.Where("id = ? AND author_id = ?", commentID, authorID).Delete(&model.Comment{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Delete 删除评论行（级联由调用方事务负责）
func (r *CommentRepository) Delete(id int64) error {
	return r.db.Delete(&model.Comment{}, id).Error
}

// ListByNews 获取新闻下已审核通过的评论列表
func (r *CommentRepository) ListByNews(newsID int64, skip, limit int) ([]model.Comment, int64, error) {
	query := r.db.Model(&model.Comment{}).
		Where("news_id = ? AND is_approved = ?", newsID, true)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var comments []model.Comment
	err := query.Preload("Author").Order("created_at DESC").
		Offset(skip).Limit(limit).Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}

	return comments, total, nil
}

// ListIDsByNews 获取新闻下全部评论 ID（级联删除用）
func (r *CommentRepository) ListIDsByNews(newsID int64) ([]int64, error) {
	var ids []int64
	err := r.db.Model(&model.Comment{}).Where("news_id = ?", newsID).Pluck("id", &ids).Error
	return ids, err
}

// AdjustCounter 按投票类型调整冗余计数（delta 为 ±1）
// WHERE 条件防止计数被减到负数。
func (r *CommentRepository) AdjustCounter(commentID int64, voteType string, delta int64) error {
	column := "likes_count"
	if voteType == model.VoteTypeDislike {
		column = "dislikes_count"
	}

	query := r.db.Model(&model.Comment{}).Where("id = ?", commentID)
	if delta < 0 {
		query = query.Where(column+" > 0")
	}
	return query.UpdateColumn(column, gorm.Expr(column+" + ?", delta)).Error
}

// SetCounters 直接写入点赞/点踩计数（对账修复用）
func (r *CommentRepository) SetCounters(commentID, likes, dislikes int64) error {
	return r.db.Model(&model.Comment{}).Where("id = ?", commentID).
		UpdateColumns(map[string]interface{}{
			"likes_count":    likes,
			"dislikes_count": dislikes,
		}).Error
}

// ListAllIDs 全部评论 ID（对账修复用）
func (r *CommentRepository) ListAllIDs() ([]int64, error) {
	var ids []int64
	err := r.db.Model(&model.Comment{}).Pluck("id", &ids).Error
	return ids, err
}

// Count 评论总数（仪表盘统计）
func (r *CommentRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Comment{}).Count(&count).Error
	return count, err
}
