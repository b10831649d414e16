package service

import (
	"testing"

	"gamepulse-go/internal/model"
	"gamepulse-go/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newModerationService(db *gorm.DB) *ModerationService {
	return NewModerationService(db,
		repository.NewReportRepository(db),
		repository.NewCommentRepository(db),
		repository.NewVoteRepository(db),
	)
}

func createTestReport(t *testing.T, db *gorm.DB, reporterID int64, commentID *int64) *model.Report {
	t.Helper()
	report := &model.Report{
		ReporterID:  reporterID,
		CommentID:   commentID,
		Reason:      "spam",
		Description: "垃圾广告",
		Status:      model.ReportStatusPending,
	}
	if err := db.Create(report).Error; err != nil {
		t.Fatalf("create report: %v", err)
	}
	return report
}

func TestResolveDeleteComment(t *testing.T) {
	db := setupTestDB(t)
	svc := newModerationService(db)

	author := createTestUser(t, db, "author")
	reporter := createTestUser(t, db, "reporter")
	other := createTestUser(t, db, "other")
	news := createTestNews(t, db, author.ID, "some-news", model.NewsStatusPublished)
	comment := createTestComment(t, db, author.ID, news.ID)
	keep := createTestComment(t, db, author.ID, news.ID)

	// 评论上有投票、两条举报，另一条评论的举报不受影响
	require.NoError(t, db.Create(&model.CommentVote{
		UserID: reporter.ID, CommentID: comment.ID, VoteType: model.VoteTypeLike,
	}).Error)
	current := createTestReport(t, db, reporter.ID, &comment.ID)
	duplicate := createTestReport(t, db, other.ID, &comment.ID)
	unrelated := createTestReport(t, db, other.ID, &keep.ID)

	info, err := svc.Resolve(current.ID, ModerateActionDeleteComment)
	require.NoError(t, err)
	assert.Equal(t, model.ReportStatusResolved, info.Status)
	assert.Nil(t, info.CommentID)
	assert.NotNil(t, info.ResolvedAt)

	// 评论及其投票已删除
	var count int64
	require.NoError(t, db.Model(&model.Comment{}).Where("id = ?", comment.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count, "评论应被删除")
	require.NoError(t, db.Model(&model.CommentVote{}).Where("comment_id = ?", comment.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count, "投票应随评论删除")

	// 同一评论的其他举报被清除，当前举报保留为审计记录
	require.NoError(t, db.Model(&model.Report{}).Where("id = ?", duplicate.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count, "重复举报应被清除")

	var stored model.Report
	require.NoError(t, db.First(&stored, current.ID).Error)
	assert.Equal(t, model.ReportStatusResolved, stored.Status)
	assert.Nil(t, stored.CommentID)

	// 无关评论与举报完好
	require.NoError(t, db.Model(&model.Comment{}).Where("id = ?", keep.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
	var untouched model.Report
	require.NoError(t, db.First(&untouched, unrelated.ID).Error)
	assert.Equal(t, model.ReportStatusPending, untouched.Status)
}

func TestResolveDismiss(t *testing.T) {
	db := setupTestDB(t)
	svc := newModerationService(db)

	author := createTestUser(t, db, "author")
	reporter := createTestUser(t, db, "reporter")
	news := createTestNews(t, db, author.ID, "some-news", model.NewsStatusPublished)
	comment := createTestComment(t, db, author.ID, news.ID)
	report := createTestReport(t, db, reporter.ID, &comment.ID)

	info, err := svc.Resolve(report.ID, ModerateActionDismiss)
	require.NoError(t, err)
	assert.Equal(t, model.ReportStatusDismissed, info.Status)
	assert.NotNil(t, info.ResolvedAt)

	// 驳回不动评论
	var count int64
	require.NoError(t, db.Model(&model.Comment{}).Where("id = ?", comment.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
	require.NotNil(t, info.CommentID)
}

func TestResolveOrphanReport(t *testing.T) {
	db := setupTestDB(t)
	svc := newModerationService(db)

	reporter := createTestUser(t, db, "reporter")

	// 评论已被删除，举报的 comment_id 为空，仍可标记处理完成
	report := createTestReport(t, db, reporter.ID, nil)

	info, err := svc.Resolve(report.ID, ModerateActionDeleteComment)
	require.NoError(t, err)
	assert.Equal(t, model.ReportStatusResolved, info.Status)
	assert.Nil(t, info.CommentID)
}

func TestResolveGuards(t *testing.T) {
	db := setupTestDB(t)
	svc := newModerationService(db)

	author := createTestUser(t, db, "author")
	reporter := createTestUser(t, db, "reporter")
	news := createTestNews(t, db, author.ID, "some-news", model.NewsStatusPublished)
	comment := createTestComment(t, db, author.ID, news.ID)
	report := createTestReport(t, db, reporter.ID, &comment.ID)

	t.Run("invalid action", func(t *testing.T) {
		_, err := svc.Resolve(report.ID, "ban_user")
		assert.ErrorIs(t, err, ErrInvalidModerateAction)
	})

	t.Run("report not found", func(t *testing.T) {
		_, err := svc.Resolve(99999, ModerateActionDismiss)
		assert.ErrorIs(t, err, ErrReportNotFound)
	})

	t.Run("already handled", func(t *testing.T) {
		_, err := svc.Resolve(report.ID, ModerateActionDismiss)
		require.NoError(t, err)
		_, err = svc.Resolve(report.ID, ModerateActionDeleteComment)
		assert.ErrorIs(t, err, ErrReportAlreadyHandled)
	})
}

func TestListReports(t *testing.T) {
	db := setupTestDB(t)
	svc := newModerationService(db)

	author := createTestUser(t, db, "author")
	reporter := createTestUser(t, db, "reporter")
	news := createTestNews(t, db, author.ID, "some-news", model.NewsStatusPublished)
	comment := createTestComment(t, db, author.ID, news.ID)

	r1 := createTestReport(t, db, reporter.ID, &comment.ID)
	createTestReport(t, db, reporter.ID, &comment.ID)

	_, err := svc.Resolve(r1.ID, ModerateActionDismiss)
	require.NoError(t, err)

	all, err := svc.ListReports(1, 20, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), all.Total)

	pending := model.ReportStatusPending
	filtered, err := svc.ListReports(1, 20, &pending)
	require.NoError(t, err)
	assert.Equal(t, int64(1), filtered.Total)
	require.Len(t, filtered.Reports, 1)
	assert.Equal(t, model.ReportStatusPending, filtered.Reports[0].Status)
}
