package model

import "time"

// Category 新闻分类模型
type Category struct {
	ID          int64     `gorm:"primaryKey;autoIncrement;comment:分类ID" json:"id"`
	Name        string    `gorm:"size:100;not null;uniqueIndex;comment:分类名称" json:"name"`
	Slug        string    `gorm:"size:120;not null;uniqueIndex;comment:URL 标识" json:"slug"`
	Description *string   `gorm:"type:text;comment:分类描述" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime;comment:创建时间" json:"created_at"`

	// 关联关系
	News []News `gorm:"many2many:news_categories" json:"news,omitempty"`
}

func (Category) TableName() string {
	return "categories"
}
