package model

import "time"

// Tag 新闻标签模型
type Tag struct {
	ID          int64     `gorm:"primaryKey;autoIncrement;comment:标签ID" json:"id"`
	Name        string    `gorm:"size:100;not null;uniqueIndex;comment:标签名称" json:"name"`
	Slug        string    `gorm:"size:120;not null;uniqueIndex;comment:URL 标识" json:"slug"`
	Description *string   `gorm:"type:text;comment:标签描述" json:"description"`
	Synonyms    *string   `gorm:"type:text;comment:同义词（逗号分隔）" json:"synonyms"`
	CreatedAt   time.Time `gorm:"autoCreateTime;comment:创建时间" json:"created_at"`

	// 关联关系
	News []News `gorm:"many2many:news_tags" json:"news,omitempty"`
}

func (Tag) TableName() string {
	return "tags"
}
