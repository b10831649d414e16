package handler

import (
	"gamepulse-go/internal/api/response"
	"gamepulse-go/internal/service"
	"gamepulse-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler 后台仪表盘与维护操作
type AdminHandler struct {
	statsService       *service.StatsService
	maintenanceService *service.MaintenanceService
}

func NewAdminHandler(statsService *service.StatsService, maintenanceService *service.MaintenanceService) *AdminHandler {
	return &AdminHandler{statsService: statsService, maintenanceService: maintenanceService}
}

// Dashboard 仪表盘
// @Summary 仪表盘
// @Description 后台汇总统计：用户数、新闻数、评论数、待处理举报数（管理员）
// @Tags 后台
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=dto.DashboardData} "获取成功"
// @Router /admin/dashboard [get]
func (h *AdminHandler) Dashboard(c *gin.Context) {
	data, err := h.statsService.GetDashboard()
	if err != nil {
		logger.Error("Get dashboard failed", zap.Error(err))
		response.InternalError(c, "获取仪表盘数据失败")
		return
	}

	response.OK(c, "获取仪表盘数据成功", data)
}

// RecountVotes 重算投票计数
// @Summary 重算投票计数
// @Description 全量重算评论点赞/点踩冗余计数（管理员）
// @Tags 后台
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=dto.RecountResult} "重算完成"
// @Router /admin/maintenance/recount-votes [post]
func (h *AdminHandler) RecountVotes(c *gin.Context) {
	result, err := h.maintenanceService.RecountVotes()
	if err != nil {
		logger.Error("Recount votes failed", zap.Error(err))
		response.InternalError(c, "重算投票计数失败")
		return
	}

	response.OK(c, "重算投票计数完成", result)
}

// RecountRatings 重算评分均值
// @Summary 重算评分均值
// @Description 全量重算新闻平均评分与评分人数（管理员）
// @Tags 后台
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=dto.RecountResult} "重算完成"
// @Router /admin/maintenance/recount-ratings [post]
func (h *AdminHandler) RecountRatings(c *gin.Context) {
	result, err := h.maintenanceService.RecountRatings()
	if err != nil {
		logger.Error("Recount ratings failed", zap.Error(err))
		response.InternalError(c, "重算评分均值失败")
		return
	}

	response.OK(c, "重算评分均值完成", result)
}
