package handler

import (
	"gamepulse-go/internal/api/dto"
	"gamepulse-go/internal/api/response"
	"gamepulse-go/internal/service"
	"gamepulse-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SearchHandler struct {
	searchService *service.SearchService
}

func NewSearchHandler(searchService *service.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// Search 搜索新闻
// @Summary 搜索新闻
// @Description 全文搜索已发布新闻，支持分类/标签/日期过滤与排序
// @Tags 搜索
// @Produce json
// @Param q query string false "关键词"
// @Param category query string false "分类 slug"
// @Param tag query string false "标签 slug"
// @Param date_from query string false "起始日期 2006-01-02"
// @Param date_to query string false "截止日期 2006-01-02"
// @Param sort query string false "排序 relevance/date/rating/views"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Success 200 {object} response.Response{data=dto.SearchNewsData} "搜索成功"
// @Router /search [get]
func (h *SearchHandler) Search(c *gin.Context) {
	var req dto.SearchNewsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	data, err := h.searchService.SearchNews(&req)
	if err != nil {
		logger.Error("Search news failed", zap.Error(err))
		response.InternalError(c, "搜索失败，请稍后重试")
		return
	}

	response.OK(c, "搜索成功", data)
}

// Reindex 全量重建搜索索引
// @Summary 重建搜索索引
// @Description 将全部已发布新闻重新同步到 Elasticsearch（管理员）
// @Tags 搜索
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response "同步完成"
// @Router /admin/search/reindex [post]
func (h *SearchHandler) Reindex(c *gin.Context) {
	success, failed, err := h.searchService.SyncNewsToES()
	if err != nil {
		logger.Error("Reindex news failed", zap.Error(err))
		response.InternalError(c, "重建索引失败")
		return
	}

	response.OK(c, "重建索引完成", gin.H{"success": success, "failed": failed})
}
