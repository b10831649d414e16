package service

import (
	"errors"

	"gamepulse-go/internal/api/dto"
	"gamepulse-go/internal/model"
	"gamepulse-go/internal/repository"

	"gorm.io/gorm"
)

var (
	ErrCommentNotFound = errors.New("评论不存在")
	ErrInvalidVoteType = errors.New("无效的投票类型")
	ErrVoteConflict    = errors.New("投票请求冲突，请重试")
)

type VoteService struct {
	db          *gorm.DB
	voteRepo    *repository.VoteRepository
	commentRepo *repository.CommentRepository
}

func NewVoteService(db *gorm.DB, voteRepo *repository.VoteRepository, commentRepo *repository.CommentRepository) *VoteService {
	return &VoteService{db: db, voteRepo: voteRepo, commentRepo: commentRepo}
}

// Vote 对评论投票（toggle 语义）
// 无票则创建并 +1；同类型再投则撤票并 -1；不同类型则换票，
// 两个计数各移动 1。投票行与冗余计数在同一事务内落库。
func (s *VoteService) Vote(userID, commentID int64, voteType string) (*dto.VoteResult, error) {
	if voteType != model.VoteTypeLike && voteType != model.VoteTypeDislike {
		return nil, ErrInvalidVoteType
	}

	if _, err := s.commentRepo.GetByID(commentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}

	var action string
	err := s.db.Transaction(func(tx *gorm.DB) error {
		voteRepo := s.voteRepo.WithTx(tx)
		commentRepo := s.commentRepo.WithTx(tx)

		existing, err := voteRepo.Find(userID, commentID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		switch {
		case existing == nil:
			vote := &model.CommentVote{
				UserID:    userID,
				CommentID: commentID,
				VoteType:  voteType,
			}
			if err := voteRepo.Create(vote); err != nil {
				return err
			}
			if err := commentRepo.AdjustCounter(commentID, voteType, 1); err != nil {
				return err
			}
			action = dto.VoteActionAdded

		case existing.VoteType == voteType:
			rows, err := voteRepo.Delete(existing.ID, existing.VoteType)
			if err != nil {
				return err
			}
			// 行已被并发事务删除或改走，回滚整个事务避免计数漂移
			if rows == 0 {
				return ErrVoteConflict
			}
			if err := commentRepo.AdjustCounter(commentID, voteType, -1); err != nil {
				return err
			}
			action = dto.VoteActionRemoved

		default:
			rows, err := voteRepo.UpdateType(existing.ID, existing.VoteType, voteType)
			if err != nil {
				return err
			}
			if rows == 0 {
				return ErrVoteConflict
			}
			if err := commentRepo.AdjustCounter(commentID, existing.VoteType, -1); err != nil {
				return err
			}
			if err := commentRepo.AdjustCounter(commentID, voteType, 1); err != nil {
				return err
			}
			action = dto.VoteActionChanged
		}

		return nil
	})
	if err != nil {
		// 唯一索引兜底：并发双写时后到的事务在此失败
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrVoteConflict
		}
		return nil, err
	}

	comment, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		return nil, err
	}

	return &dto.VoteResult{
		Action:        action,
		LikesCount:    comment.LikesCount,
		DislikesCount: comment.DislikesCount,
	}, nil
}

// GetUserVotes 查询用户对一组评论的投票类型
func (s *VoteService) GetUserVotes(userID int64, commentIDs []int64) (map[int64]string, error) {
	return s.voteRepo.MapByUserForComments(userID, commentIDs)
}
