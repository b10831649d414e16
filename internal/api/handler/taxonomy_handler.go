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

type TaxonomyHandler struct {
	categoryService *service.CategoryService
	tagService      *service.TagService
}

func NewTaxonomyHandler(categoryService *service.CategoryService, tagService *service.TagService) *TaxonomyHandler {
	return &TaxonomyHandler{categoryService: categoryService, tagService: tagService}
}

// ListCategories 分类列表
// @Summary 分类列表
// @Description 全部新闻分类
// @Tags 分类标签
// @Produce json
// @Success 200 {object} response.Response "获取成功"
// @Router /categories [get]
func (h *TaxonomyHandler) ListCategories(c *gin.Context) {
	items, err := h.categoryService.ListAll()
	if err != nil {
		logger.Error("List categories failed", zap.Error(err))
		response.InternalError(c, "获取分类列表失败")
		return
	}
	response.OK(c, "获取分类列表成功", gin.H{"categories": items})
}

// CreateCategory 创建分类
// @Summary 创建分类
// @Description 创建新闻分类（管理员）
// @Tags 分类标签
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CategoryCreateRequest true "分类信息"
// @Success 201 {object} response.Response{data=dto.CategoryInfo} "创建成功"
// @Router /admin/categories [post]
func (h *TaxonomyHandler) CreateCategory(c *gin.Context) {
	var req dto.CategoryCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	info, err := h.categoryService.Create(&req)
	if err != nil {
		handleTaxonomyError(c, err)
		return
	}

	response.Created(c, "创建分类成功", info)
}

// UpdateCategory 更新分类
// @Summary 更新分类
// @Description 更新分类名称/描述（管理员）
// @Tags 分类标签
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "分类ID"
// @Param request body dto.CategoryUpdateRequest true "更新内容"
// @Success 200 {object} response.Response{data=dto.CategoryInfo} "更新成功"
// @Router /admin/categories/{id} [put]
func (h *TaxonomyHandler) UpdateCategory(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的分类ID")
		return
	}

	var req dto.CategoryUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	info, err := h.categoryService.Update(id, &req)
	if err != nil {
		handleTaxonomyError(c, err)
		return
	}

	response.OK(c, "更新分类成功", info)
}

// DeleteCategory 删除分类
// @Summary 删除分类
// @Description 删除新闻分类（管理员）
// @Tags 分类标签
// @Produce json
// @Security BearerAuth
// @Param id path int true "分类ID"
// @Success 200 {object} response.Response "删除成功"
// @Router /admin/categories/{id} [delete]
func (h *TaxonomyHandler) DeleteCategory(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的分类ID")
		return
	}

	if err := h.categoryService.Delete(id); err != nil {
		handleTaxonomyError(c, err)
		return
	}

	response.OK(c, "删除分类成功", gin.H{"id": id})
}

// ListTags 标签列表
// @Summary 标签列表
// @Description 全部新闻标签
// @Tags 分类标签
// @Produce json
// @Success 200 {object} response.Response "获取成功"
// @Router /tags [get]
func (h *TaxonomyHandler) ListTags(c *gin.Context) {
	items, err := h.tagService.ListAll()
	if err != nil {
		logger.Error("List tags failed", zap.Error(err))
		response.InternalError(c, "获取标签列表失败")
		return
	}
	response.OK(c, "获取标签列表成功", gin.H{"tags": items})
}

// CreateTag 创建标签
// @Summary 创建标签
// @Description 创建新闻标签（管理员）
// @Tags 分类标签
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.TagCreateRequest true "标签信息"
// @Success 201 {object} response.Response{data=dto.TagInfo} "创建成功"
// @Router /admin/tags [post]
func (h *TaxonomyHandler) CreateTag(c *gin.Context) {
	var req dto.TagCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	info, err := h.tagService.Create(&req)
	if err != nil {
		handleTaxonomyError(c, err)
		return
	}

	response.Created(c, "创建标签成功", info)
}

// UpdateTag 更新标签
// @Summary 更新标签
// @Description 更新标签名称/描述/同义词（管理员）
// @Tags 分类标签
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "标签ID"
// @Param request body dto.TagUpdateRequest true "更新内容"
// @Success 200 {object} response.Response{data=dto.TagInfo} "更新成功"
// @Router /admin/tags/{id} [put]
func (h *TaxonomyHandler) UpdateTag(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的标签ID")
		return
	}

	var req dto.TagUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	info, err := h.tagService.Update(id, &req)
	if err != nil {
		handleTaxonomyError(c, err)
		return
	}

	response.OK(c, "更新标签成功", info)
}

// DeleteTag 删除标签
// @Summary 删除标签
// @Description 删除新闻标签（管理员）
// @Tags 分类标签
// @Produce json
// @Security BearerAuth
// @Param id path int true "标签ID"
// @Success 200 {object} response.Response "删除成功"
// @Router /admin/tags/{id} [delete]
func (h *TaxonomyHandler) DeleteTag(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的标签ID")
		return
	}

	if err := h.tagService.Delete(id); err != nil {
		handleTaxonomyError(c, err)
		return
	}

	response.OK(c, "删除标签成功", gin.H{"id": id})
}

func handleTaxonomyError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCategoryNotFound),
		errors.Is(err, service.ErrTagNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrCategoryNameEmpty),
		errors.Is(err, service.ErrCategoryNameExists),
		errors.Is(err, service.ErrTagNameEmpty),
		errors.Is(err, service.ErrTagNameExists),
		errors.Is(err, service.ErrNoFieldsToUpdate):
		response.BadRequest(c, err.Error())
	default:
		logger.Error("Taxonomy operation failed", zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
	}
}
