package service

import (
	"testing"

	"gamepulse-go/internal/api/dto"
	"gamepulse-go/internal/model"
	"gamepulse-go/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newNewsService(db *gorm.DB) *NewsService {
	return NewNewsService(db,
		repository.NewNewsRepository(db),
		repository.NewCommentRepository(db),
		repository.NewVoteRepository(db),
		repository.NewRatingRepository(db),
		repository.NewReportRepository(db),
		repository.NewCategoryRepository(db),
		repository.NewTagRepository(db),
	)
}

func createTestCategory(t *testing.T, db *gorm.DB, name, slug string) *model.Category {
	t.Helper()
	category := &model.Category{Name: name, Slug: slug}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category: %v", err)
	}
	return category
}

func createTestTag(t *testing.T, db *gorm.DB, name, slug string) *model.Tag {
	t.Helper()
	tag := &model.Tag{Name: name, Slug: slug}
	if err := db.Create(tag).Error; err != nil {
		t.Fatalf("create tag: %v", err)
	}
	return tag
}

func TestNewsCreate(t *testing.T) {
	db := setupTestDB(t)
	svc := newNewsService(db)

	editor := createTestUser(t, db, "editor")
	category := createTestCategory(t, db, "主机游戏", "console")
	tag := createTestTag(t, db, "RPG", "rpg")

	t.Run("draft by default", func(t *testing.T) {
		info, err := svc.Create(editor.ID, &dto.NewsCreateRequest{
			Title: "塞尔达新作公布",
			Body:  "正文",
		})
		require.NoError(t, err)
		assert.Equal(t, model.NewsStatusDraft, info.Status)
		assert.Nil(t, info.PublishedAt)
		assert.NotEmpty(t, info.Slug)
	})

	t.Run("publish stamps published_at and binds taxonomy", func(t *testing.T) {
		info, err := svc.Create(editor.ID, &dto.NewsCreateRequest{
			Title:       "塞尔达新作发售",
			Body:        "正文",
			CategoryIDs: []int64{category.ID},
			TagIDs:      []int64{tag.ID},
			Publish:     true,
		})
		require.NoError(t, err)
		assert.Equal(t, model.NewsStatusPublished, info.Status)
		require.NotNil(t, info.PublishedAt)
		require.Len(t, info.Categories, 1)
		assert.Equal(t, "console", info.Categories[0].Slug)
		require.Len(t, info.Tags, 1)
		assert.Equal(t, "rpg", info.Tags[0].Slug)
	})

	t.Run("unknown category", func(t *testing.T) {
		_, err := svc.Create(editor.ID, &dto.NewsCreateRequest{
			Title:       "标题",
			Body:        "正文",
			CategoryIDs: []int64{99999},
		})
		assert.ErrorIs(t, err, ErrCategoryNotFound)
	})

	t.Run("slugs are unique for identical titles", func(t *testing.T) {
		a, err := svc.Create(editor.ID, &dto.NewsCreateRequest{Title: "同名标题", Body: "正文"})
		require.NoError(t, err)
		b, err := svc.Create(editor.ID, &dto.NewsCreateRequest{Title: "同名标题", Body: "正文"})
		require.NoError(t, err)
		assert.NotEqual(t, a.Slug, b.Slug)
	})
}

func TestNewsUpdatePublishing(t *testing.T) {
	db := setupTestDB(t)
	svc := newNewsService(db)

	editor := createTestUser(t, db, "editor")
	info, err := svc.Create(editor.ID, &dto.NewsCreateRequest{Title: "草稿", Body: "正文"})
	require.NoError(t, err)

	published := model.NewsStatusPublished
	updated, err := svc.Update(info.ID, editor.ID, false, &dto.NewsUpdateRequest{Status: &published})
	require.NoError(t, err)
	require.NotNil(t, updated.PublishedAt)
	firstPublish := *updated.PublishedAt

	// 退回草稿（同时从搜索索引移除）再发布，发布时间不变
	draft := model.NewsStatusDraft
	unpublished, err := svc.Update(info.ID, editor.ID, false, &dto.NewsUpdateRequest{Status: &draft})
	require.NoError(t, err)
	assert.Equal(t, model.NewsStatusDraft, unpublished.Status)
	updated, err = svc.Update(info.ID, editor.ID, false, &dto.NewsUpdateRequest{Status: &published})
	require.NoError(t, err)
	require.NotNil(t, updated.PublishedAt)
	assert.True(t, updated.PublishedAt.Equal(firstPublish), "重新发布不应覆盖首次发布时间")
}

func TestNewsUpdatePermission(t *testing.T) {
	db := setupTestDB(t)
	svc := newNewsService(db)

	owner := createTestUser(t, db, "owner")
	other := createTestUser(t, db, "other")
	info, err := svc.Create(owner.ID, &dto.NewsCreateRequest{Title: "标题", Body: "正文"})
	require.NoError(t, err)

	title := "改过的标题"

	_, err = svc.Update(info.ID, other.ID, false, &dto.NewsUpdateRequest{Title: &title})
	assert.ErrorIs(t, err, ErrNewsNoPermission)

	// 管理员不受作者限制
	updated, err := svc.Update(info.ID, other.ID, true, &dto.NewsUpdateRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)
}

func TestNewsListOnlyPublished(t *testing.T) {
	db := setupTestDB(t)
	svc := newNewsService(db)

	editor := createTestUser(t, db, "editor")
	createTestNews(t, db, editor.ID, "published-one", model.NewsStatusPublished)
	createTestNews(t, db, editor.ID, "draft-one", model.NewsStatusDraft)

	data, err := svc.List(1, 20, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), data.Total)
	require.Len(t, data.News, 1)
	assert.Equal(t, "published-one", data.News[0].Slug)

	// 后台列表包含草稿
	backoffice, err := svc.ListBackoffice(1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), backoffice.Total)
}

func TestNewsGetDetail(t *testing.T) {
	db := setupTestDB(t)
	svc := newNewsService(db)

	editor := createTestUser(t, db, "editor")
	news := createTestNews(t, db, editor.ID, "published-one", model.NewsStatusPublished)
	draft := createTestNews(t, db, editor.ID, "draft-one", model.NewsStatusDraft)

	info, err := svc.GetDetail(news.Slug)
	require.NoError(t, err)
	assert.Equal(t, news.ID, info.ID)
	assert.NotEmpty(t, info.Body, "详情应包含正文")

	_, err = svc.GetDetail(draft.Slug)
	assert.ErrorIs(t, err, ErrNewsNotFound)

	_, err = svc.GetDetail("no-such-slug")
	assert.ErrorIs(t, err, ErrNewsNotFound)
}

func TestNewsDeleteCascade(t *testing.T) {
	db := setupTestDB(t)
	svc := newNewsService(db)

	editor := createTestUser(t, db, "editor")
	reader := createTestUser(t, db, "reader")
	category := createTestCategory(t, db, "主机游戏", "console")

	info, err := svc.Create(editor.ID, &dto.NewsCreateRequest{
		Title:       "将被删除的新闻",
		Body:        "正文",
		CategoryIDs: []int64{category.ID},
		Publish:     true,
	})
	require.NoError(t, err)

	comment := createTestComment(t, db, reader.ID, info.ID)
	require.NoError(t, db.Create(&model.CommentVote{
		UserID: editor.ID, CommentID: comment.ID, VoteType: model.VoteTypeLike,
	}).Error)
	require.NoError(t, db.Create(&model.Report{
		ReporterID: editor.ID, CommentID: &comment.ID,
		Reason: "spam", Description: "广告", Status: model.ReportStatusPending,
	}).Error)
	require.NoError(t, db.Create(&model.NewsRating{
		UserID: reader.ID, NewsID: info.ID, Rating: 4,
	}).Error)

	t.Run("permission required", func(t *testing.T) {
		err := svc.Delete(info.ID, reader.ID, false)
		assert.ErrorIs(t, err, ErrNewsNoPermission)
	})

	t.Run("cascade removes everything", func(t *testing.T) {
		require.NoError(t, svc.Delete(info.ID, editor.ID, false))

		var count int64
		require.NoError(t, db.Model(&model.News{}).Where("id = ?", info.ID).Count(&count).Error)
		assert.Equal(t, int64(0), count)
		require.NoError(t, db.Model(&model.Comment{}).Where("news_id = ?", info.ID).Count(&count).Error)
		assert.Equal(t, int64(0), count)
		require.NoError(t, db.Model(&model.CommentVote{}).Where("comment_id = ?", comment.ID).Count(&count).Error)
		assert.Equal(t, int64(0), count)
		require.NoError(t, db.Model(&model.Report{}).Where("comment_id = ?", comment.ID).Count(&count).Error)
		assert.Equal(t, int64(0), count)
		require.NoError(t, db.Model(&model.NewsRating{}).Where("news_id = ?", info.ID).Count(&count).Error)
		assert.Equal(t, int64(0), count)
		require.NoError(t, db.Table("news_categories").Where("news_id = ?", info.ID).Count(&count).Error)
		assert.Equal(t, int64(0), count, "分类关联应随新闻删除")

		// 分类本身保留
		require.NoError(t, db.Model(&model.Category{}).Where("id = ?", category.ID).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})
}

func TestApplyViewCountDelta(t *testing.T) {
	db := setupTestDB(t)
	svc := newNewsService(db)

	editor := createTestUser(t, db, "editor")
	news := createTestNews(t, db, editor.ID, "some-news", model.NewsStatusPublished)

	require.NoError(t, svc.ApplyViewCountDelta(news.ID, 17))

	var stored model.News
	require.NoError(t, db.First(&stored, news.ID).Error)
	assert.Equal(t, int64(17), stored.ViewCount)
}
