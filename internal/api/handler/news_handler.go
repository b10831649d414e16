package handler

import (
	"errors"
	"strconv"
	"time"

	"gamepulse-go/internal/api/dto"
	"gamepulse-go/internal/api/middleware"
	"gamepulse-go/internal/api/response"
	"gamepulse-go/internal/model"
	"gamepulse-go/internal/repository"
	"gamepulse-go/internal/service"
	"gamepulse-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type NewsHandler struct {
	newsService   *service.NewsService
	ratingService *service.RatingService
}

func NewNewsHandler(newsService *service.NewsService, ratingService *service.RatingService) *NewsHandler {
	return &NewsHandler{newsService: newsService, ratingService: ratingService}
}

// List 新闻列表
// @Summary 新闻列表
// @Description 已发布新闻列表，支持关键词、分类、标签、日期筛选
// @Tags 新闻
// @Produce json
// @Param q query string false "关键词"
// @Param category query string false "分类 slug"
// @Param tag query string false "标签 slug"
// @Param date_from query string false "起始日期 2006-01-02"
// @Param date_to query string false "截止日期 2006-01-02"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Success 200 {object} response.Response{data=dto.NewsListData} "获取成功"
// @Router /news [get]
func (h *NewsHandler) List(c *gin.Context) {
	page, pageSize := parsePagination(c)

	filter := &repository.NewsFilter{}
	if q := c.Query("q"); q != "" {
		filter.Query = &q
	}
	if category := c.Query("category"); category != "" {
		filter.CategorySlug = &category
	}
	if tag := c.Query("tag"); tag != "" {
		filter.TagSlug = &tag
	}
	if from := c.Query("date_from"); from != "" {
		if t, err := time.Parse("2006-01-02", from); err == nil {
			filter.DateFrom = &t
		}
	}
	if to := c.Query("date_to"); to != "" {
		if t, err := time.Parse("2006-01-02", to); err == nil {
			end := t.Add(24*time.Hour - time.Second)
			filter.DateTo = &end
		}
	}

	data, err := h.newsService.List(page, pageSize, filter)
	if err != nil {
		logger.Error("List news failed", zap.Error(err))
		response.InternalError(c, "获取新闻列表失败")
		return
	}

	response.OK(c, "获取新闻列表成功", data)
}

// Featured 首页精选
// @Summary 首页精选
// @Description 评分靠前的近期新闻
// @Tags 新闻
// @Produce json
// @Param limit query int false "数量" default(5)
// @Success 200 {object} response.Response "获取成功"
// @Router /news/featured [get]
func (h *NewsHandler) Featured(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))
	if limit < 1 || limit > 20 {
		limit = 5
	}

	items, err := h.newsService.ListFeatured(limit)
	if err != nil {
		logger.Error("List featured news failed", zap.Error(err))
		response.InternalError(c, "获取精选新闻失败")
		return
	}

	response.OK(c, "获取精选新闻成功", gin.H{"news": items})
}

// Detail 新闻详情
// @Summary 新闻详情
// @Description 根据 slug 获取已发布新闻详情，浏览量 +1
// @Tags 新闻
// @Produce json
// @Param slug path string true "新闻 slug"
// @Success 200 {object} response.Response{data=dto.NewsInfo} "获取成功"
// @Failure 404 {object} response.ErrorResponse "新闻不存在"
// @Router /news/{slug} [get]
func (h *NewsHandler) Detail(c *gin.Context) {
	slug := c.Param("slug")

	info, err := h.newsService.GetDetail(slug)
	if err != nil {
		handleNewsError(c, err)
		return
	}

	// 登录用户返回本人评分
	if userID, ok := middleware.GetCurrentUserID(c); ok {
		if rating, err := h.ratingService.GetUserRating(userID, info.ID); err == nil {
			info.UserRating = rating
		}
	}

	response.OK(c, "获取新闻详情成功", info)
}

// ListBackoffice 后台新闻列表
// @Summary 后台新闻列表
// @Description 含草稿的全部新闻（编辑/管理员）
// @Tags 新闻管理
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Success 200 {object} response.Response{data=dto.NewsListData} "获取成功"
// @Router /admin/news [get]
func (h *NewsHandler) ListBackoffice(c *gin.Context) {
	page, pageSize := parsePagination(c)

	data, err := h.newsService.ListBackoffice(page, pageSize)
	if err != nil {
		logger.Error("List backoffice news failed", zap.Error(err))
		response.InternalError(c, "获取新闻列表失败")
		return
	}

	response.OK(c, "获取新闻列表成功", data)
}

// GetBackoffice 后台新闻详情
// @Summary 后台新闻详情
// @Description 根据 ID 获取新闻（含草稿，编辑/管理员）
// @Tags 新闻管理
// @Produce json
// @Security BearerAuth
// @Param id path int true "新闻ID"
// @Success 200 {object} response.Response{data=dto.NewsInfo} "获取成功"
// @Router /admin/news/{id} [get]
func (h *NewsHandler) GetBackoffice(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的新闻ID")
		return
	}

	info, err := h.newsService.GetBackoffice(id)
	if err != nil {
		handleNewsError(c, err)
		return
	}

	response.OK(c, "获取新闻详情成功", info)
}

// Create 创建新闻
// @Summary 创建新闻
// @Description 创建新闻（编辑/管理员），publish 为 true 时直接发布
// @Tags 新闻管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.NewsCreateRequest true "新闻内容"
// @Success 201 {object} response.Response{data=dto.NewsInfo} "创建成功"
// @Failure 400 {object} response.ErrorResponse "参数错误"
// @Router /admin/news [post]
func (h *NewsHandler) Create(c *gin.Context) {
	var req dto.NewsCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)

	info, err := h.newsService.Create(userID, &req)
	if err != nil {
		handleNewsError(c, err)
		return
	}

	response.Created(c, "创建新闻成功", info)
}

// Update 更新新闻
// @Summary 更新新闻
// @Description 更新新闻内容/状态（编辑仅限本人，管理员不限）
// @Tags 新闻管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "新闻ID"
// @Param request body dto.NewsUpdateRequest true "更新内容"
// @Success 200 {object} response.Response{data=dto.NewsInfo} "更新成功"
// @Failure 403 {object} response.ErrorResponse "没有权限"
// @Router /admin/news/{id} [put]
func (h *NewsHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的新闻ID")
		return
	}

	var req dto.NewsUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)
	role, _ := middleware.GetCurrentUserRole(c)

	info, err := h.newsService.Update(id, userID, role == model.RoleAdmin, &req)
	if err != nil {
		handleNewsError(c, err)
		return
	}

	response.OK(c, "更新新闻成功", info)
}

// UploadImage 上传新闻头图
// @Summary 上传新闻头图
// @Description 上传头图到对象存储并绑定到新闻
// @Tags 新闻管理
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "新闻ID"
// @Param image formData file true "图片文件"
// @Success 200 {object} response.Response "上传成功"
// @Router /admin/news/{id}/image [post]
func (h *NewsHandler) UploadImage(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的新闻ID")
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		response.BadRequest(c, "缺少图片文件")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "无法读取图片文件")
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	userID, _ := middleware.GetCurrentUserID(c)
	role, _ := middleware.GetCurrentUserRole(c)

	imageURL, err := h.newsService.UploadFeaturedImage(id, userID, role == model.RoleAdmin,
		file, fileHeader.Size, fileHeader.Filename, contentType)
	if err != nil {
		handleNewsError(c, err)
		return
	}

	response.OK(c, "上传头图成功", gin.H{"featured_image": imageURL})
}

// Delete 删除新闻
// @Summary 删除新闻
// @Description 删除新闻及其评论、投票、评分（编辑仅限本人，管理员不限）
// @Tags 新闻管理
// @Produce json
// @Security BearerAuth
// @Param id path int true "新闻ID"
// @Success 200 {object} response.Response "删除成功"
// @Failure 403 {object} response.ErrorResponse "没有权限"
// @Router /admin/news/{id} [delete]
func (h *NewsHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的新闻ID")
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)
	role, _ := middleware.GetCurrentUserRole(c)

	if err := h.newsService.Delete(id, userID, role == model.RoleAdmin); err != nil {
		handleNewsError(c, err)
		return
	}

	response.OK(c, "删除新闻成功", gin.H{"id": id})
}

func handleNewsError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNewsNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrNewsNoPermission):
		response.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrCategoryNotFound),
		errors.Is(err, service.ErrTagNotFound),
		errors.Is(err, service.ErrNoFieldsToUpdate):
		response.BadRequest(c, err.Error())
	default:
		logger.Error("News operation failed", zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
	}
}
