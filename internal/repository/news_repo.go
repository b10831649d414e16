package repository

import (
	"time"

	"gamepulse-go/internal/model"

	"gorm.io/gorm"
)

type NewsRepository struct {
	db *gorm.DB
}

func NewNewsRepository(db *gorm.DB) *NewsRepository {
	return &NewsRepository{db: db}
}

// WithTx 返回绑定到事务的仓库副本
func (r *NewsRepository) WithTx(tx *gorm.DB) *NewsRepository {
	return &NewsRepository{db: tx}
}

// GetByID 根据 ID 获取新闻
func (r *NewsRepository) GetByID(id int64) (*model.News, error) {
	var news model.News
	err := r.db.First(&news, id).Error
	if err != nil {
		return nil, err
	}
	return &news, nil
}

// GetBySlug 根据 slug 获取新闻
func (r *NewsRepository) GetBySlug(slug string) (*model.News, error) {
	var news model.News
	err := r.db.Where("slug = ?", slug).First(&news).Error
	if err != nil {
		return nil, err
	}
	return &news, nil
}

// GetBySlugWithRelations 根据 slug 获取新闻（含作者、分类、标签）
func (r *NewsRepository) GetBySlugWithRelations(slug string) (*model.News, error) {
	var news model.News
	err := r.db.Preload("Author").Preload("Categories").Preload("Tags").
		Where("slug = ?", slug).First(&news).Error
	if err != nil {
		return nil, err
	}
	return &news, nil
}

// GetByIDs 批量查询新闻
func (r *NewsRepository) GetByIDs(ids []int64) ([]model.News, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var news []model.News
	err := r.db.Preload("Author").Where("id IN ?", ids).Find(&news).Error
	return news, err
}

// Create 创建新闻记录
func (r *NewsRepository) Create(news *model.News) error {
	return r.db.Create(news).Error
}

// Update 更新新闻字段
func (r *NewsRepository) Update(id int64, updates map[string]interface{}) (*model.News, error) {
	result := r.db.Model(&model.News{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(id)
}

// Delete 删除新闻行（关联数据的级联删除由 service 层事务负责）
func (r *NewsRepository) Delete(id int64) error {
	result := r.db.Delete(&model.News{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ReplaceCategories 重设新闻的分类关联
func (r *NewsRepository) ReplaceCategories(news *model.News, categories []model.Category) error {
	return r.db.Model(news).Association("Categories").Replace(categories)
}

// ReplaceTags 重设新闻的标签关联
func (r *NewsRepository) ReplaceTags(news *model.News, tags []model.Tag) error {
	return r.db.Model(news).Association("Tags").Replace(tags)
}

// ClearAssociations 清空分类/标签关联（删除新闻前调用）
func (r *NewsRepository) ClearAssociations(news *model.News) error {
	if err := r.db.Model(news).Association("Categories").Clear(); err != nil {
		return err
	}
	return r.db.Model(news).Association("Tags").Clear()
}

// NewsFilter 新闻列表查询条件
type NewsFilter struct {
	Query        *string
	CategorySlug *string
	TagSlug      *string
	DateFrom     *time.Time
	DateTo       *time.Time
	Status       *string
}

// List 新闻列表查询（分页、筛选、排序）
func (r *NewsRepository) List(skip, limit int, filter *NewsFilter) ([]model.News, int64, error) {
	query := r.db.Model(&model.News{})

	if filter != nil {
		if filter.Status != nil && *filter.Status != "" {
			query = query.Where("news.status = ?", *filter.Status)
		}
		if filter.Query != nil && *filter.Query != "" {
			pattern := "%" + *filter.Query + "%"
			query = query.Where("news.title ILIKE ? OR news.subtitle ILIKE ? OR news.body ILIKE ?", pattern, pattern, pattern)
		}
		if filter.CategorySlug != nil && *filter.CategorySlug != "" {
			query = query.Joins("JOIN news_categories nc ON nc.news_id = news.id").
				Joins("JOIN categories c ON c.id = nc.category_id").
				Where("c.slug = ?", *filter.CategorySlug)
		}
		if filter.TagSlug != nil && *filter.TagSlug != "" {
			query = query.Joins("JOIN news_tags nt ON nt.news_id = news.id").
				Joins("JOIN tags t ON t.id = nt.tag_id").
				Where("t.slug = ?", *filter.TagSlug)
		}
		if filter.DateFrom != nil {
			query = query.Where("news.published_at >= ?", *filter.DateFrom)
		}
		if filter.DateTo != nil {
			query = query.Where("news.published_at <= ?", *filter.DateTo)
		}
	}

	// Count 在独立 Session 上执行，避免 Distinct 污染后续 Find 的查询语句
	var total int64
	if err := query.Session(&gorm.Session{}).Distinct("news.id").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var news []model.News
	err := query.Preload("Author").Preload("Categories").Preload("Tags").
		Order("news.published_at DESC NULLS LAST, news.created_at DESC").
		Offset(skip).Limit(limit).Find(&news).Error
	if err != nil {
		return nil, 0, err
	}

	return news, total, nil
}

// ListAll 后台新闻列表（含草稿，按创建时间倒序）
func (r *NewsRepository) ListAll(skip, limit int) ([]model.News, int64, error) {
	query := r.db.Model(&model.News{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var news []model.News
	err := query.Preload("Author").Order("created_at DESC").
		Offset(skip).Limit(limit).Find(&news).Error
	if err != nil {
		return nil, 0, err
	}
	return news, total, nil
}

// ListFeatured 首页精选：最近发布且评分靠前
func (r *NewsRepository) ListFeatured(limit int) ([]model.News, error) {
	var news []model.News
	err := r.db.Preload("Author").
		Where("status = ?", model.NewsStatusPublished).
		Order("average_rating DESC NULLS LAST, published_at DESC").
		Limit(limit).Find(&news).Error
	return news, err
}

// ListPublishedSince 最近发布的新闻（资讯邮件选材）
func (r *NewsRepository) ListPublishedSince(since time.Time) ([]model.News, error) {
	var news []model.News
	err := r.db.Where("status = ? AND published_at >= ?", model.NewsStatusPublished, since).
		Order("published_at DESC").Find(&news).Error
	return news, err
}

// IncrementViewCount 浏览量增加 delta
func (r *NewsRepository) IncrementViewCount(id int64, delta int64) error {
	return r.db.Model(&model.News{}).Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", delta)).Error
}

// CountByStatus 按状态统计新闻数（仪表盘）
func (r *NewsRepository) CountByStatus(status string) (int64, error) {
	var count int64
	err := r.db.Model(&model.News{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
