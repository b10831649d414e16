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

type ReportHandler struct {
	reportService *service.ReportService
}

func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Create 举报评论
// @Summary 举报评论
// @Description 举报违规评论，等待管理员处理
// @Tags 举报
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "评论ID"
// @Param request body dto.ReportCreateRequest true "举报原因"
// @Success 201 {object} response.Response{data=dto.ReportInfo} "举报成功"
// @Failure 404 {object} response.ErrorResponse "评论不存在"
// @Router /comments/{id}/report [post]
func (h *ReportHandler) Create(c *gin.Context) {
	commentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的评论ID")
		return
	}

	var req dto.ReportCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)

	info, err := h.reportService.Create(userID, commentID, req.Reason, req.Description)
	if err != nil {
		handleReportError(c, err)
		return
	}

	response.Created(c, "举报成功", info)
}

func handleReportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCommentNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrReportReasonEmpty):
		response.BadRequest(c, err.Error())
	default:
		logger.Error("Report operation failed", zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
	}
}
