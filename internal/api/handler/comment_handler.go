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

type CommentHandler struct {
	commentService *service.CommentService
}

func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// Create 发表评论
// @Summary 发表评论
// @Description 在指定新闻下发表评论
// @Tags 评论
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param slug path string true "新闻 slug"
// @Param request body dto.CommentCreateRequest true "评论内容"
// @Success 201 {object} response.Response{data=dto.CommentInfo} "发表成功"
// @Failure 404 {object} response.ErrorResponse "新闻不存在"
// @Router /news/{slug}/comments [post]
func (h *CommentHandler) Create(c *gin.Context) {
	slug := c.Param("slug")

	var req dto.CommentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)

	info, err := h.commentService.Create(userID, slug, req.Content)
	if err != nil {
		handleCommentError(c, err)
		return
	}

	response.Created(c, "发表评论成功", info)
}

// ListByNews 新闻评论列表
// @Summary 新闻评论列表
// @Description 指定新闻下的评论，登录用户附带本人投票状态
// @Tags 评论
// @Produce json
// @Param slug path string true "新闻 slug"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Success 200 {object} response.Response{data=dto.CommentListData} "获取成功"
// @Router /news/{slug}/comments [get]
func (h *CommentHandler) ListByNews(c *gin.Context) {
	slug := c.Param("slug")
	page, pageSize := parsePagination(c)

	userID, _ := middleware.GetCurrentUserID(c)

	data, err := h.commentService.ListByNews(slug, page, pageSize, userID)
	if err != nil {
		handleCommentError(c, err)
		return
	}

	response.OK(c, "获取评论列表成功", data)
}

// Delete 删除自己的评论
// @Summary 删除评论
// @Description 删除自己发表的评论
// @Tags 评论
// @Produce json
// @Security BearerAuth
// @Param id path int true "评论ID"
// @Success 200 {object} response.Response "删除成功"
// @Failure 403 {object} response.ErrorResponse "没有权限"
// @Router /comments/{id} [delete]
func (h *CommentHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的评论ID")
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)

	if err := h.commentService.Delete(id, userID); err != nil {
		handleCommentError(c, err)
		return
	}

	response.OK(c, "删除评论成功", gin.H{"id": id})
}

func handleCommentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCommentNotFound),
		errors.Is(err, service.ErrNewsNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrCommentNoPermission):
		response.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrCommentEmpty):
		response.BadRequest(c, err.Error())
	default:
		logger.Error("Comment operation failed", zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
	}
}
