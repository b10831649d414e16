package service

import (
	"testing"

	"gamepulse-go/internal/model"
	"gamepulse-go/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCommentService(db *gorm.DB) *CommentService {
	return NewCommentService(db,
		repository.NewCommentRepository(db),
		repository.NewVoteRepository(db),
		repository.NewReportRepository(db),
		repository.NewNewsRepository(db),
	)
}

func TestCommentCreate(t *testing.T) {
	db := setupTestDB(t)
	svc := newCommentService(db)

	author := createTestUser(t, db, "author")
	published := createTestNews(t, db, author.ID, "published-news", model.NewsStatusPublished)
	draft := createTestNews(t, db, author.ID, "draft-news", model.NewsStatusDraft)

	t.Run("success", func(t *testing.T) {
		info, err := svc.Create(author.ID, published.Slug, "  好评论  ")
		require.NoError(t, err)
		assert.Equal(t, "好评论", info.Content, "内容应去除首尾空白")
		assert.Equal(t, author.ID, info.AuthorID)
		require.NotNil(t, info.Author)
		assert.Equal(t, author.UserName, info.Author.Username)
	})

	t.Run("empty content", func(t *testing.T) {
		_, err := svc.Create(author.ID, published.Slug, "   ")
		assert.ErrorIs(t, err, ErrCommentEmpty)
	})

	t.Run("draft news rejects comments", func(t *testing.T) {
		_, err := svc.Create(author.ID, draft.Slug, "内容")
		assert.ErrorIs(t, err, ErrNewsNotFound)
	})

	t.Run("news not found", func(t *testing.T) {
		_, err := svc.Create(author.ID, "no-such-slug", "内容")
		assert.ErrorIs(t, err, ErrNewsNotFound)
	})
}

func TestCommentListWithUserVotes(t *testing.T) {
	db := setupTestDB(t)
	svc := newCommentService(db)
	voteSvc := newVoteService(db)

	author := createTestUser(t, db, "author")
	viewer := createTestUser(t, db, "viewer")
	news := createTestNews(t, db, author.ID, "some-news", model.NewsStatusPublished)
	c1 := createTestComment(t, db, author.ID, news.ID)
	createTestComment(t, db, author.ID, news.ID)

	_, err := voteSvc.Vote(viewer.ID, c1.ID, model.VoteTypeLike)
	require.NoError(t, err)

	// 登录用户看到自己的投票标记
	data, err := svc.ListByNews(news.Slug, 1, 20, viewer.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), data.Total)

	var marked int
	for _, item := range data.Comments {
		if item.ID == c1.ID {
			require.NotNil(t, item.UserVote)
			assert.Equal(t, model.VoteTypeLike, *item.UserVote)
			marked++
		} else {
			assert.Nil(t, item.UserVote)
		}
	}
	assert.Equal(t, 1, marked)

	// 匿名访问无投票标记
	data, err = svc.ListByNews(news.Slug, 1, 20, 0)
	require.NoError(t, err)
	for _, item := range data.Comments {
		assert.Nil(t, item.UserVote)
	}
}

func TestCommentDelete(t *testing.T) {
	db := setupTestDB(t)
	svc := newCommentService(db)

	author := createTestUser(t, db, "author")
	stranger := createTestUser(t, db, "stranger")
	news := createTestNews(t, db, author.ID, "some-news", model.NewsStatusPublished)
	comment := createTestComment(t, db, author.ID, news.ID)

	require.NoError(t, db.Create(&model.CommentVote{
		UserID: stranger.ID, CommentID: comment.ID, VoteType: model.VoteTypeLike,
	}).Error)
	require.NoError(t, db.Create(&model.Report{
		ReporterID: stranger.ID, CommentID: &comment.ID,
		Reason: "spam", Description: "广告", Status: model.ReportStatusPending,
	}).Error)

	t.Run("only author can delete", func(t *testing.T) {
		err := svc.Delete(comment.ID, stranger.ID)
		assert.ErrorIs(t, err, ErrCommentNoPermission)
	})

	t.Run("delete cascades votes and reports", func(t *testing.T) {
		require.NoError(t, svc.Delete(comment.ID, author.ID))

		var count int64
		require.NoError(t, db.Model(&model.Comment{}).Where("id = ?", comment.ID).Count(&count).Error)
		assert.Equal(t, int64(0), count)
		require.NoError(t, db.Model(&model.CommentVote{}).Where("comment_id = ?", comment.ID).Count(&count).Error)
		assert.Equal(t, int64(0), count)
		require.NoError(t, db.Model(&model.Report{}).Where("comment_id = ?", comment.ID).Count(&count).Error)
		assert.Equal(t, int64(0), count)
	})

	t.Run("comment not found", func(t *testing.T) {
		err := svc.Delete(comment.ID, author.ID)
		assert.ErrorIs(t, err, ErrCommentNotFound)
	})
}
