package handler

import (
	"errors"

	"gamepulse-go/internal/api/dto"
	"gamepulse-go/internal/api/response"
	"gamepulse-go/internal/service"
	"gamepulse-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type NewsletterHandler struct {
	newsletterService *service.NewsletterService
}

func NewNewsletterHandler(newsletterService *service.NewsletterService) *NewsletterHandler {
	return &NewsletterHandler{newsletterService: newsletterService}
}

// ListSubscribers 订阅用户列表
// @Summary 订阅用户列表
// @Description 订阅资讯邮件的活跃用户（编辑/管理员）
// @Tags 资讯邮件
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Success 200 {object} response.Response{data=dto.SubscriberListData} "获取成功"
// @Router /admin/newsletter/subscribers [get]
func (h *NewsletterHandler) ListSubscribers(c *gin.Context) {
	page, pageSize := parsePagination(c)

	data, err := h.newsletterService.ListSubscribers(page, pageSize)
	if err != nil {
		logger.Error("List subscribers failed", zap.Error(err))
		response.InternalError(c, "获取订阅列表失败")
		return
	}

	response.OK(c, "获取订阅列表成功", data)
}

// SendDigest 推送资讯邮件
// @Summary 推送资讯邮件
// @Description 向全部订阅用户入队推送近一周发布的新闻（编辑/管理员）
// @Tags 资讯邮件
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.DigestSendRequest false "邮件主题"
// @Success 200 {object} response.Response{data=dto.DigestEnqueueResult} "入队成功"
// @Failure 400 {object} response.ErrorResponse "近期没有新闻"
// @Router /admin/newsletter/send [post]
func (h *NewsletterHandler) SendDigest(c *gin.Context) {
	// body 可为空，主题缺省时由服务端生成
	var req dto.DigestSendRequest
	_ = c.ShouldBindJSON(&req)

	result, err := h.newsletterService.SendDigest(req.Subject)
	if err != nil {
		if errors.Is(err, service.ErrNoRecentNews) {
			response.BadRequest(c, err.Error())
			return
		}
		logger.Error("Send digest failed", zap.Error(err))
		response.InternalError(c, "推送资讯邮件失败")
		return
	}

	response.OK(c, "资讯邮件已入队", result)
}
