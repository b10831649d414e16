package service

import (
	"errors"
	"strings"

	"gamepulse-go/internal/api/dto"
	"gamepulse-go/internal/model"
	"gamepulse-go/internal/repository"

	"gorm.io/gorm"
)

var (
	ErrCommentEmpty        = errors.New("评论内容不能为空")
	ErrCommentNoPermission = errors.New("没有权限删除该评论")
)

type CommentService struct {
	db          *gorm.DB
	commentRepo *repository.CommentRepository
	voteRepo    *repository.VoteRepository
	reportRepo  *repository.ReportRepository
	newsRepo    *repository.NewsRepository
}

func NewCommentService(db *gorm.DB, commentRepo *repository.CommentRepository, voteRepo *repository.VoteRepository, reportRepo *repository.ReportRepository, newsRepo *repository.NewsRepository) *CommentService {
	return &CommentService{db: db, commentRepo: commentRepo, voteRepo: voteRepo, reportRepo: reportRepo, newsRepo: newsRepo}
}

// Create 发表评论（需登录，新闻必须已发布）
func (s *CommentService) Create(authorID int64, slug, content string) (*dto.CommentInfo, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrCommentEmpty
	}

	news, err := s.newsRepo.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNewsNotFound
		}
		return nil, err
	}
	if !news.IsPublished() {
		return nil, ErrNewsNotFound
	}

	comment := &model.Comment{
		AuthorID:   authorID,
		NewsID:     news.ID,
		Content:    content,
		IsApproved: true,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}

	full, err := s.commentRepo.GetByIDWithAuthor(comment.ID)
	if err != nil {
		return nil, err
	}
	info := toCommentInfo(full, "")
	return &info, nil
}

// ListByNews 新闻评论列表（已审核通过）
// userID 非零时每条评论带上当前用户的投票类型。
func (s *CommentService) ListByNews(slug string, page, pageSize int, userID int64) (*dto.CommentListData, error) {
	news, err := s.newsRepo.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNewsNotFound
		}
		return nil, err
	}

	skip := (page - 1) * pageSize
	comments, total, err := s.commentRepo.ListByNews(news.ID, skip, pageSize)
	if err != nil {
		return nil, err
	}

	userVotes := map[int64]string{}
	if userID != 0 && len(comments) > 0 {
		ids := make([]int64, 0, len(comments))
		for i := range comments {
			ids = append(ids, comments[i].ID)
		}
		userVotes, err = s.voteRepo.MapByUserForComments(userID, ids)
		if err != nil {
			return nil, err
		}
	}

	items := make([]dto.CommentInfo, 0, len(comments))
	for i := range comments {
		items = append(items, toCommentInfo(&comments[i], userVotes[comments[i].ID]))
	}

	totalPages := (total + int64(pageSize) - 1) / int64(pageSize)

	return &dto.CommentListData{
		Comments:   items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// Delete 删除自己的评论
// 投票与关联举报在同一事务内清除。
func (s *CommentService) Delete(commentID, currentUserID int64) error {
	comment, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return err
	}
	if comment.AuthorID != currentUserID {
		return ErrCommentNoPermission
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		voteRepo := s.voteRepo.WithTx(tx)
		commentRepo := s.commentRepo.WithTx(tx)

		if err := voteRepo.DeleteByComment(commentID); err != nil {
			return err
		}
		if err := tx.Where("comment_id = ?", commentID).Delete(&model.Report{}).Error; err != nil {
			return err
		}
		return commentRepo.Delete(commentID)
	})
}

func toCommentInfo(c *model.Comment, userVote string) dto.CommentInfo {
	info := dto.CommentInfo{
		ID:            c.ID,
		AuthorID:      c.AuthorID,
		NewsID:        c.NewsID,
		Content:       c.Content,
		LikesCount:    c.LikesCount,
		DislikesCount: c.DislikesCount,
		CreatedAt:     c.CreatedAt,
	}
	if userVote != "" {
		info.UserVote = &userVote
	}
	if c.Author.ID != 0 {
		info.Author = &dto.AuthorBrief{
			ID:           c.Author.ID,
			Username:     c.Author.UserName,
			ProfileImage: c.Author.ProfileImage,
		}
	}
	return info
}
