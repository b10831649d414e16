package model

import "time"

// News 新闻模型
type News struct {
	ID            int64      `gorm:"primaryKey;autoIncrement;comment:新闻标识" json:"id"`
	AuthorID      int64      `gorm:"not null;index:idx_news_author_id;comment:作者ID" json:"author_id"`
	Title         string     `gorm:"size:255;not null;comment:标题" json:"title"`
	Subtitle      *string    `gorm:"size:255;comment:副标题" json:"subtitle"`
	Body          string     `gorm:"type:text;not null;comment:正文" json:"body"`
	Slug          string     `gorm:"size:255;not null;uniqueIndex;comment:URL 标识" json:"slug"`
	FeaturedImage *string    `gorm:"size:500;comment:头图地址" json:"featured_image"`
	Status        string     `gorm:"size:20;not null;default:'draft';index:idx_news_status;comment:状态 draft/published" json:"status"`
	ViewCount     int64      `gorm:"not null;default:0;comment:浏览量" json:"view_count"`
	AverageRating *float64   `gorm:"type:numeric(3,2);comment:平均评分" json:"average_rating"`
	RatingCount   int64      `gorm:"not null;default:0;comment:评分人数" json:"rating_count"`
	PublishedAt   *time.Time `gorm:"index:idx_news_published_at;comment:发布时间" json:"published_at"`
	CreatedAt     time.Time  `gorm:"autoCreateTime;index:idx_news_created_at;comment:创建时间" json:"created_at"`
	UpdatedAt     *time.Time `gorm:"comment:更新时间" json:"updated_at"`

	// 关联关系
	Author     User         `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Categories []Category   `gorm:"many2many:news_categories" json:"categories,omitempty"`
	Tags       []Tag        `gorm:"many2many:news_tags" json:"tags,omitempty"`
	Comments   []Comment    `gorm:"foreignKey:NewsID" json:"comments,omitempty"`
	Ratings    []NewsRating `gorm:"foreignKey:NewsID" json:"ratings,omitempty"`
}

func (News) TableName() string {
	return "news"
}

// 新闻状态常量
const (
	NewsStatusDraft     = "draft"
	NewsStatusPublished = "published"
)

// IsPublished 是否已发布
func (n *News) IsPublished() bool {
	return n.Status == NewsStatusPublished
}
