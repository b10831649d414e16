package service

import (
	"testing"

	"gamepulse-go/internal/model"
	"gamepulse-go/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newMaintenanceService(db *gorm.DB) *MaintenanceService {
	return NewMaintenanceService(db,
		repository.NewCommentRepository(db),
		repository.NewVoteRepository(db),
		repository.NewNewsRepository(db),
		repository.NewRatingRepository(db),
	)
}

func TestRecountVotes(t *testing.T) {
	db := setupTestDB(t)
	svc := newMaintenanceService(db)

	author := createTestUser(t, db, "author")
	voter := createTestUser(t, db, "voter")
	news := createTestNews(t, db, author.ID, "some-news", model.NewsStatusPublished)
	drifted := createTestComment(t, db, author.ID, news.ID)
	healthy := createTestComment(t, db, author.ID, news.ID)

	require.NoError(t, db.Create(&model.CommentVote{
		UserID: voter.ID, CommentID: drifted.ID, VoteType: model.VoteTypeLike,
	}).Error)

	// 人为制造漂移
	require.NoError(t, db.Model(&model.Comment{}).Where("id = ?", drifted.ID).
		UpdateColumn("likes_count", 42).Error)

	result, err := svc.RecountVotes()
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.Scanned)
	assert.Equal(t, int64(1), result.Repaired)

	var repaired model.Comment
	require.NoError(t, db.First(&repaired, drifted.ID).Error)
	assert.Equal(t, int64(1), repaired.LikesCount)
	assert.Equal(t, int64(0), repaired.DislikesCount)

	var untouched model.Comment
	require.NoError(t, db.First(&untouched, healthy.ID).Error)
	assert.Equal(t, int64(0), untouched.LikesCount)
}

func TestRecountRatings(t *testing.T) {
	db := setupTestDB(t)
	svc := newMaintenanceService(db)

	author := createTestUser(t, db, "author")
	rater := createTestUser(t, db, "rater")
	rated := createTestNews(t, db, author.ID, "rated-news", model.NewsStatusPublished)
	unrated := createTestNews(t, db, author.ID, "unrated-news", model.NewsStatusPublished)

	require.NoError(t, db.Create(&model.NewsRating{
		UserID: rater.ID, NewsID: rated.ID, Rating: 4,
	}).Error)

	// 人为制造漂移：均值错误、无评分的新闻挂着残留均值
	require.NoError(t, db.Model(&model.News{}).Where("id = ?", rated.ID).
		UpdateColumns(map[string]interface{}{"average_rating": 1.0, "rating_count": 9}).Error)
	require.NoError(t, db.Model(&model.News{}).Where("id = ?", unrated.ID).
		UpdateColumns(map[string]interface{}{"average_rating": 3.0, "rating_count": 7}).Error)

	result, err := svc.RecountRatings()
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.Scanned)

	var repaired model.News
	require.NoError(t, db.First(&repaired, rated.ID).Error)
	require.NotNil(t, repaired.AverageRating)
	assert.Equal(t, 4.0, *repaired.AverageRating)
	assert.Equal(t, int64(1), repaired.RatingCount)

	var cleared model.News
	require.NoError(t, db.First(&cleared, unrated.ID).Error)
	assert.Nil(t, cleared.AverageRating, "无评分的新闻均值应清空")
	assert.Equal(t, int64(0), cleared.RatingCount)
}
