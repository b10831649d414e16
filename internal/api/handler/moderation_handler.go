package handler

import (
	"errors"
	"strconv"

	"gamepulse-go/internal/api/dto"
	"gamepulse-go/internal/api/response"
	"gamepulse-go/internal/service"
	"gamepulse-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ModerationHandler struct {
	moderationService *service.ModerationService
}

func NewModerationHandler(moderationService *service.ModerationService) *ModerationHandler {
	return &ModerationHandler{moderationService: moderationService}
}

// ListReports 举报列表
// @Summary 举报列表
// @Description 后台举报审核列表，可按状态筛选（管理员）
// @Tags 举报审核
// @Produce json
// @Security BearerAuth
// @Param status query string false "状态 pending/resolved/dismissed"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Success 200 {object} response.Response{data=dto.ReportListData} "获取成功"
// @Router /admin/reports [get]
func (h *ModerationHandler) ListReports(c *gin.Context) {
	page, pageSize := parsePagination(c)

	var status *string
	if s := c.Query("status"); s != "" {
		status = &s
	}

	data, err := h.moderationService.ListReports(page, pageSize, status)
	if err != nil {
		logger.Error("List reports failed", zap.Error(err))
		response.InternalError(c, "获取举报列表失败")
		return
	}

	response.OK(c, "获取举报列表成功", data)
}

// GetReport 举报详情
// @Summary 举报详情
// @Description 举报详情，含被举报评论及其作者（管理员）
// @Tags 举报审核
// @Produce json
// @Security BearerAuth
// @Param id path int true "举报ID"
// @Success 200 {object} response.Response{data=dto.ReportInfo} "获取成功"
// @Failure 404 {object} response.ErrorResponse "举报不存在"
// @Router /admin/reports/{id} [get]
func (h *ModerationHandler) GetReport(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的举报ID")
		return
	}

	info, err := h.moderationService.GetReport(id)
	if err != nil {
		handleModerationError(c, err)
		return
	}

	response.OK(c, "获取举报详情成功", info)
}

// Resolve 处理举报
// @Summary 处理举报
// @Description delete_comment 删除评论并结案，dismiss 驳回举报（管理员）
// @Tags 举报审核
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "举报ID"
// @Param request body dto.ReportResolveRequest true "处理动作"
// @Success 200 {object} response.Response{data=dto.ReportInfo} "处理成功"
// @Failure 404 {object} response.ErrorResponse "举报不存在"
// @Failure 409 {object} response.ErrorResponse "已处理"
// @Router /admin/reports/{id}/resolve [post]
func (h *ModerationHandler) Resolve(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的举报ID")
		return
	}

	var req dto.ReportResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	info, err := h.moderationService.Resolve(id, req.Action)
	if err != nil {
		handleModerationError(c, err)
		return
	}

	response.OK(c, "处理举报成功", info)
}

func handleModerationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrReportNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrReportAlreadyHandled):
		response.Conflict(c, err.Error())
	case errors.Is(err, service.ErrInvalidModerateAction):
		response.BadRequest(c, err.Error())
	default:
		logger.Error("Moderation operation failed", zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
	}
}
