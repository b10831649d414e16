package repository

import (
	"gamepulse-go/internal/model"

	"gorm.io/gorm"
)

type VoteRepository struct {
	db *gorm.DB
}

func NewVoteRepository(db *gorm.DB) *VoteRepository {
	return &VoteRepository{db: db}
}

// WithTx 返回绑定到事务的仓库副本
func (r *VoteRepository) WithTx(tx *gorm.DB) *VoteRepository {
	return &VoteRepository{db: tx}
}

func (r *VoteRepository) Create(vote *model.CommentVote) error {
	return r.db.Create(vote).Error
}

// Find 查询用户对评论的投票记录（不存在返回 gorm.ErrRecordNotFound）
func (r *VoteRepository) Find(userID, commentID int64) (*model.CommentVote, error) {
	var vote model.CommentVote
	err := r.db.Where("user_id = ? AND comment_id = ?", userID, commentID).First(&vote).Error
	if err != nil {
		return nil, err
	}
	return &vote, nil
}

// Delete 删除投票记录，带当前类型条件
// 返回删除行数；并发撤票时后到的事务命中 0 行。
func (r *VoteRepository) Delete(id int64, voteType string) (int64, error) {
	result := r.db.Where("id = ? AND vote_type = ?", id, voteType).Delete(&model.CommentVote{})
	return result.RowsAffected, result.Error
}

// UpdateType 原地修改投票类型（toggle 换票），带旧类型条件
// 返回更新行数；记录已被并发事务改走时命中 0 行。
func (r *VoteRepository) UpdateType(id int64, fromType, toType string) (int64, error) {
	result := r.db.Model(&model.CommentVote{}).
		Where("id = ? AND vote_type = ?", id, fromType).
		Update("vote_type", toType)
	return result.RowsAffected, result.Error
}

// DeleteByComment 删除评论下的全部投票（级联删除用）
func (r *VoteRepository) DeleteByComment(commentID int64) error {
	return r.db.Where("comment_id = ?", commentID).Delete(&model.CommentVote{}).Error
}

// DeleteByComments 批量删除多条评论的投票
func (r *VoteRepository) DeleteByComments(commentIDs []int64) error {
	if len(commentIDs) == 0 {
		return nil
	}
	return r.db.Where("comment_id IN ?", commentIDs).Delete(&model.CommentVote{}).Error
}

// CountByType 统计评论某一类型的票数（不变式校验与对账用）
func (r *VoteRepository) CountByType(commentID int64, voteType string) (int64, error) {
	var count int64
	err := r.db.Model(&model.CommentVote{}).
		Where("comment_id = ? AND vote_type = ?", commentID, voteType).Count(&count).Error
	return count, err
}

// MapByUserForComments 一次性取出用户对一组评论的投票类型
func (r *VoteRepository) MapByUserForComments(userID int64, commentIDs []int64) (map[int64]string, error) {
	result := make(map[int64]string, len(commentIDs))
	if len(commentIDs) == 0 {
		return result, nil
	}

	var votes []model.CommentVote
	err := r.db.Where("user_id = ? AND comment_id IN ?", userID, commentIDs).Find(&votes).Error
	if err != nil {
		return nil, err
	}

	for i := range votes {
		result[votes[i].CommentID] = votes[i].VoteType
	}
	return result, nil
}
