package model

import "time"

// CommentVote 评论投票模型
// (user_id, comment_id) 唯一索引保证同一用户对同一评论最多一票，
// 并发重复投票由数据库约束兜底，不依赖应用层检查。
type CommentVote struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;comment:投票记录ID" json:"id"`
	UserID    int64     `gorm:"not null;uniqueIndex:uq_user_comment_vote;index:idx_votes_user_id;comment:投票用户ID" json:"user_id"`
	CommentID int64     `gorm:"not null;uniqueIndex:uq_user_comment_vote;index:idx_votes_comment_id;comment:被投票评论ID" json:"comment_id"`
	VoteType  string    `gorm:"size:20;not null;comment:投票类型 like/dislike" json:"vote_type"`
	CreatedAt time.Time `gorm:"autoCreateTime;comment:投票时间" json:"created_at"`

	// 关联关系
	User    User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Comment Comment `gorm:"foreignKey:CommentID" json:"comment,omitempty"`
}

func (CommentVote) TableName() string {
	return "comment_votes"
}

// 投票类型常量
const (
	VoteTypeLike    = "like"
	VoteTypeDislike = "dislike"
)
