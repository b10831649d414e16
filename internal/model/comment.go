package model

import "time"

// Comment 评论模型
// likes_count / dislikes_count 为冗余计数，由投票事务维护，
// 必须始终等于 comment_votes 中对应类型的行数。
type Comment struct {
	ID            int64      `gorm:"primaryKey;autoIncrement;comment:评论ID" json:"id"`
	AuthorID      int64      `gorm:"not null;index:idx_comments_author_id;comment:评论用户ID" json:"author_id"`
	NewsID        int64      `gorm:"not null;index:idx_comments_news_id;index:idx_composite_news_created,priority:1;comment:所属新闻ID" json:"news_id"`
	Content       string     `gorm:"type:text;not null;comment:评论内容" json:"content"`
	IsApproved    bool       `gorm:"not null;default:true;comment:是否通过审核" json:"is_approved"`
	LikesCount    int64      `gorm:"not null;default:0;comment:点赞数" json:"likes_count"`
	DislikesCount int64      `gorm:"not null;default:0;comment:点踩数" json:"dislikes_count"`
	CreatedAt     time.Time  `gorm:"autoCreateTime;index:idx_composite_news_created,priority:2;comment:评论时间" json:"created_at"`
	UpdatedAt     *time.Time `gorm:"comment:更新时间" json:"updated_at"`

	// 关联关系
	Author  User          `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	News    News          `gorm:"foreignKey:NewsID" json:"news,omitempty"`
	Votes   []CommentVote `gorm:"foreignKey:CommentID" json:"votes,omitempty"`
	Reports []Report      `gorm:"foreignKey:CommentID" json:"reports,omitempty"`
}

func (Comment) TableName() string {
	return "comments"
}
