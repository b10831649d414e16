package handler

import (
	"errors"
	"strconv"

	"gamepulse-go/internal/api/dto"
	"gamepulse-go/internal/api/middleware"
	"gamepulse-go/internal/api/response"
	"gamepulse-go/internal/service"
	"gamepulse-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type VoteHandler struct {
	voteService *service.VoteService
}

func NewVoteHandler(voteService *service.VoteService) *VoteHandler {
	return &VoteHandler{voteService: voteService}
}

// Vote 评论投票
// @Summary 评论投票
// @Description 点赞/点踩评论；重复同类型投票为撤票，换类型为换票
// @Tags 投票
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "评论ID"
// @Param request body dto.VoteRequest true "投票类型"
// @Success 200 {object} response.Response{data=dto.VoteResult} "投票成功"
// @Failure 404 {object} response.ErrorResponse "评论不存在"
// @Failure 409 {object} response.ErrorResponse "并发冲突"
// @Router /comments/{id}/vote [post]
func (h *VoteHandler) Vote(c *gin.Context) {
	commentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的评论ID")
		return
	}

	var req dto.VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)

	result, err := h.voteService.Vote(userID, commentID, req.VoteType)
	if err != nil {
		handleVoteError(c, err)
		return
	}

	response.OK(c, "投票成功", result)
}

func handleVoteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCommentNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrInvalidVoteType):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrVoteConflict):
		response.Conflict(c, err.Error())
	default:
		logger.Error("Vote operation failed", zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
	}
}
