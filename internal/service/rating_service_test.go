package service

import (
	"testing"

	"gamepulse-go/internal/model"
	"gamepulse-go/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newRatingService(db *gorm.DB) *RatingService {
	return NewRatingService(db, repository.NewRatingRepository(db), repository.NewNewsRepository(db))
}

func TestRateAggregation(t *testing.T) {
	db := setupTestDB(t)
	svc := newRatingService(db)

	author := createTestUser(t, db, "author")
	news := createTestNews(t, db, author.ID, "gta-6-trailer", model.NewsStatusPublished)

	u1 := createTestUser(t, db, "rater1")
	u2 := createTestUser(t, db, "rater2")
	u3 := createTestUser(t, db, "rater3")

	_, err := svc.Rate(u1.ID, news.Slug, 5)
	require.NoError(t, err)
	_, err = svc.Rate(u2.ID, news.Slug, 3)
	require.NoError(t, err)

	result, err := svc.Rate(u3.ID, news.Slug, 4)
	require.NoError(t, err)
	assert.Equal(t, 4.0, result.AverageRating)
	assert.Equal(t, int64(3), result.RatingCount)
	assert.Equal(t, 4, result.UserRating)

	// 新闻行上的冗余字段随评分同步
	var stored model.News
	require.NoError(t, db.First(&stored, news.ID).Error)
	require.NotNil(t, stored.AverageRating)
	assert.Equal(t, 4.0, *stored.AverageRating)
	assert.Equal(t, int64(3), stored.RatingCount)

	// 再来一个低分，均值保留两位小数
	u4 := createTestUser(t, db, "rater4")
	result, err = svc.Rate(u4.ID, news.Slug, 2)
	require.NoError(t, err)
	assert.Equal(t, 3.5, result.AverageRating)
	assert.Equal(t, int64(4), result.RatingCount)
}

func TestRateRounding(t *testing.T) {
	db := setupTestDB(t)
	svc := newRatingService(db)

	author := createTestUser(t, db, "author")
	news := createTestNews(t, db, author.ID, "zelda-review", model.NewsStatusPublished)

	u1 := createTestUser(t, db, "rater1")
	u2 := createTestUser(t, db, "rater2")
	u3 := createTestUser(t, db, "rater3")

	_, err := svc.Rate(u1.ID, news.Slug, 5)
	require.NoError(t, err)
	_, err = svc.Rate(u2.ID, news.Slug, 5)
	require.NoError(t, err)

	// (5+5+4)/3 = 4.666... 四舍五入到 4.67
	result, err := svc.Rate(u3.ID, news.Slug, 4)
	require.NoError(t, err)
	assert.Equal(t, 4.67, result.AverageRating)
}

func TestRateWriteOnce(t *testing.T) {
	db := setupTestDB(t)
	svc := newRatingService(db)

	author := createTestUser(t, db, "author")
	rater := createTestUser(t, db, "rater")
	news := createTestNews(t, db, author.ID, "starfield-update", model.NewsStatusPublished)

	_, err := svc.Rate(rater.ID, news.Slug, 5)
	require.NoError(t, err)

	_, err = svc.Rate(rater.ID, news.Slug, 1)
	assert.ErrorIs(t, err, ErrAlreadyRated)

	// 被拒绝的评分不得影响已有聚合
	var stored model.News
	require.NoError(t, db.First(&stored, news.ID).Error)
	require.NotNil(t, stored.AverageRating)
	assert.Equal(t, 5.0, *stored.AverageRating)
	assert.Equal(t, int64(1), stored.RatingCount)

	var rows int64
	require.NoError(t, db.Model(&model.NewsRating{}).
		Where("news_id = ?", news.ID).Count(&rows).Error)
	assert.Equal(t, int64(1), rows)
}

func TestRateValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := newRatingService(db)

	author := createTestUser(t, db, "author")
	rater := createTestUser(t, db, "rater")
	published := createTestNews(t, db, author.ID, "published-news", model.NewsStatusPublished)
	draft := createTestNews(t, db, author.ID, "draft-news", model.NewsStatusDraft)

	t.Run("rating out of range", func(t *testing.T) {
		_, err := svc.Rate(rater.ID, published.Slug, 0)
		assert.ErrorIs(t, err, ErrInvalidRating)
		_, err = svc.Rate(rater.ID, published.Slug, 6)
		assert.ErrorIs(t, err, ErrInvalidRating)
	})

	t.Run("news not found", func(t *testing.T) {
		_, err := svc.Rate(rater.ID, "no-such-slug", 4)
		assert.ErrorIs(t, err, ErrNewsNotFound)
	})

	t.Run("draft news not ratable", func(t *testing.T) {
		_, err := svc.Rate(rater.ID, draft.Slug, 4)
		assert.ErrorIs(t, err, ErrNewsNotFound)
	})
}

func TestGetUserRating(t *testing.T) {
	db := setupTestDB(t)
	svc := newRatingService(db)

	author := createTestUser(t, db, "author")
	rater := createTestUser(t, db, "rater")
	news := createTestNews(t, db, author.ID, "some-news", model.NewsStatusPublished)

	rating, err := svc.GetUserRating(rater.ID, news.ID)
	require.NoError(t, err)
	assert.Nil(t, rating)

	_, err = svc.Rate(rater.ID, news.Slug, 4)
	require.NoError(t, err)

	rating, err = svc.GetUserRating(rater.ID, news.ID)
	require.NoError(t, err)
	require.NotNil(t, rating)
	assert.Equal(t, 4, *rating)
}
