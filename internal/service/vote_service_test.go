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

func newVoteService(db *gorm.DB) *VoteService {
	return NewVoteService(db, repository.NewVoteRepository(db), repository.NewCommentRepository(db))
}

// 校验冗余计数与投票表实际行数一致
func assertCountersMatchVotes(t *testing.T, db *gorm.DB, commentID int64) {
	t.Helper()

	var comment model.Comment
	require.NoError(t, db.First(&comment, commentID).Error)

	var likes, dislikes int64
	require.NoError(t, db.Model(&model.CommentVote{}).
		Where("comment_id = ? AND vote_type = ?", commentID, model.VoteTypeLike).Count(&likes).Error)
	require.NoError(t, db.Model(&model.CommentVote{}).
		Where("comment_id = ? AND vote_type = ?", commentID, model.VoteTypeDislike).Count(&dislikes).Error)

	assert.Equal(t, likes, comment.LikesCount, "likes_count 与投票行数不一致")
	assert.Equal(t, dislikes, comment.DislikesCount, "dislikes_count 与投票行数不一致")
}

func TestVoteToggle(t *testing.T) {
	db := setupTestDB(t)
	svc := newVoteService(db)

	author := createTestUser(t, db, "author")
	voter := createTestUser(t, db, "voter")
	news := createTestNews(t, db, author.ID, "elden-ring-dlc", model.NewsStatusPublished)
	comment := createTestComment(t, db, author.ID, news.ID)

	t.Run("first vote creates row and bumps counter", func(t *testing.T) {
		result, err := svc.Vote(voter.ID, comment.ID, model.VoteTypeLike)
		require.NoError(t, err)
		assert.Equal(t, dto.VoteActionAdded, result.Action)
		assert.Equal(t, int64(1), result.LikesCount)
		assert.Equal(t, int64(0), result.DislikesCount)
		assertCountersMatchVotes(t, db, comment.ID)
	})

	t.Run("opposite vote switches both counters", func(t *testing.T) {
		result, err := svc.Vote(voter.ID, comment.ID, model.VoteTypeDislike)
		require.NoError(t, err)
		assert.Equal(t, dto.VoteActionChanged, result.Action)
		assert.Equal(t, int64(0), result.LikesCount)
		assert.Equal(t, int64(1), result.DislikesCount)

		var total int64
		require.NoError(t, db.Model(&model.CommentVote{}).
			Where("comment_id = ?", comment.ID).Count(&total).Error)
		assert.Equal(t, int64(1), total, "换票不应产生新行")
		assertCountersMatchVotes(t, db, comment.ID)
	})

	t.Run("same vote again removes it", func(t *testing.T) {
		result, err := svc.Vote(voter.ID, comment.ID, model.VoteTypeDislike)
		require.NoError(t, err)
		assert.Equal(t, dto.VoteActionRemoved, result.Action)
		assert.Equal(t, int64(0), result.LikesCount)
		assert.Equal(t, int64(0), result.DislikesCount)

		var total int64
		require.NoError(t, db.Model(&model.CommentVote{}).
			Where("comment_id = ?", comment.ID).Count(&total).Error)
		assert.Equal(t, int64(0), total)
		assertCountersMatchVotes(t, db, comment.ID)
	})
}

func TestVoteMultipleUsers(t *testing.T) {
	db := setupTestDB(t)
	svc := newVoteService(db)

	author := createTestUser(t, db, "author")
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	news := createTestNews(t, db, author.ID, "patch-notes", model.NewsStatusPublished)
	comment := createTestComment(t, db, author.ID, news.ID)

	_, err := svc.Vote(alice.ID, comment.ID, model.VoteTypeLike)
	require.NoError(t, err)
	result, err := svc.Vote(bob.ID, comment.ID, model.VoteTypeLike)
	require.NoError(t, err)

	assert.Equal(t, int64(2), result.LikesCount)

	// alice 换踩不影响 bob 的赞
	result, err = svc.Vote(alice.ID, comment.ID, model.VoteTypeDislike)
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.LikesCount)
	assert.Equal(t, int64(1), result.DislikesCount)
	assertCountersMatchVotes(t, db, comment.ID)
}

func TestVoteStaleRowConflict(t *testing.T) {
	db := setupTestDB(t)
	svc := newVoteService(db)
	voteRepo := repository.NewVoteRepository(db)

	author := createTestUser(t, db, "author")
	voter := createTestUser(t, db, "voter")
	news := createTestNews(t, db, author.ID, "speedrun-record", model.NewsStatusPublished)
	comment := createTestComment(t, db, author.ID, news.ID)

	result, err := svc.Vote(voter.ID, comment.ID, model.VoteTypeLike)
	require.NoError(t, err)
	voteID := mustFindVoteID(t, db, voter.ID, comment.ID)

	t.Run("typed update misses moved row", func(t *testing.T) {
		// 带旧类型条件的换票：行已不是 dislike，必须命中 0 行且不改数据
		rows, err := voteRepo.UpdateType(voteID, model.VoteTypeDislike, model.VoteTypeLike)
		require.NoError(t, err)
		assert.Equal(t, int64(0), rows)

		var vote model.CommentVote
		require.NoError(t, db.First(&vote, voteID).Error)
		assert.Equal(t, model.VoteTypeLike, vote.VoteType)
	})

	t.Run("typed delete misses moved row", func(t *testing.T) {
		rows, err := voteRepo.Delete(voteID, model.VoteTypeDislike)
		require.NoError(t, err)
		assert.Equal(t, int64(0), rows)

		var total int64
		require.NoError(t, db.Model(&model.CommentVote{}).
			Where("id = ?", voteID).Count(&total).Error)
		assert.Equal(t, int64(1), total)
	})

	// 守卫不影响正常 toggle，计数始终与投票行一致
	result, err = svc.Vote(voter.ID, comment.ID, model.VoteTypeDislike)
	require.NoError(t, err)
	assert.Equal(t, dto.VoteActionChanged, result.Action)
	assertCountersMatchVotes(t, db, comment.ID)
}

func mustFindVoteID(t *testing.T, db *gorm.DB, userID, commentID int64) int64 {
	t.Helper()
	var vote model.CommentVote
	require.NoError(t, db.Where("user_id = ? AND comment_id = ?", userID, commentID).
		First(&vote).Error)
	return vote.ID
}

func TestVoteValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := newVoteService(db)

	author := createTestUser(t, db, "author")
	voter := createTestUser(t, db, "voter")
	news := createTestNews(t, db, author.ID, "some-news", model.NewsStatusPublished)
	comment := createTestComment(t, db, author.ID, news.ID)

	t.Run("invalid vote type", func(t *testing.T) {
		_, err := svc.Vote(voter.ID, comment.ID, "love")
		assert.ErrorIs(t, err, ErrInvalidVoteType)
	})

	t.Run("comment not found", func(t *testing.T) {
		_, err := svc.Vote(voter.ID, 99999, model.VoteTypeLike)
		assert.ErrorIs(t, err, ErrCommentNotFound)
	})
}

func TestGetUserVotes(t *testing.T) {
	db := setupTestDB(t)
	svc := newVoteService(db)

	author := createTestUser(t, db, "author")
	voter := createTestUser(t, db, "voter")
	news := createTestNews(t, db, author.ID, "review", model.NewsStatusPublished)
	c1 := createTestComment(t, db, author.ID, news.ID)
	c2 := createTestComment(t, db, author.ID, news.ID)
	c3 := createTestComment(t, db, author.ID, news.ID)

	_, err := svc.Vote(voter.ID, c1.ID, model.VoteTypeLike)
	require.NoError(t, err)
	_, err = svc.Vote(voter.ID, c2.ID, model.VoteTypeDislike)
	require.NoError(t, err)

	votes, err := svc.GetUserVotes(voter.ID, []int64{c1.ID, c2.ID, c3.ID})
	require.NoError(t, err)
	assert.Equal(t, model.VoteTypeLike, votes[c1.ID])
	assert.Equal(t, model.VoteTypeDislike, votes[c2.ID])
	_, ok := votes[c3.ID]
	assert.False(t, ok)
}
