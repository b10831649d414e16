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

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// UpdateProfile 更新个人资料
// @Summary 更新个人资料
// @Description 修改用户名、头像、订阅设置
// @Tags 用户
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UserUpdateRequest true "更新内容"
// @Success 200 {object} response.Response{data=dto.UserInfo} "更新成功"
// @Router /users/me [put]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req dto.UserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)

	info, err := h.userService.UpdateProfile(userID, &req)
	if err != nil {
		handleUserError(c, err)
		return
	}

	response.OK(c, "更新资料成功", info)
}

// List 用户列表
// @Summary 用户列表
// @Description 后台用户管理，支持用户名/角色筛选（管理员）
// @Tags 用户管理
// @Produce json
// @Security BearerAuth
// @Param username query string false "用户名模糊匹配"
// @Param role query string false "角色 user/editor/admin"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Success 200 {object} response.Response{data=dto.UserListData} "获取成功"
// @Router /admin/users [get]
func (h *UserHandler) List(c *gin.Context) {
	page, pageSize := parsePagination(c)

	var username, role *string
	if u := c.Query("username"); u != "" {
		username = &u
	}
	if r := c.Query("role"); r != "" {
		role = &r
	}

	data, err := h.userService.ListUsers(page, pageSize, username, role)
	if err != nil {
		logger.Error("List users failed", zap.Error(err))
		response.InternalError(c, "获取用户列表失败")
		return
	}

	response.OK(c, "获取用户列表成功", data)
}

// SetActive 启用/停用账号
// @Summary 启用/停用账号
// @Description 切换用户 is_active 标记（管理员）
// @Tags 用户管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "用户ID"
// @Param request body dto.UserSetActiveRequest true "active 标记"
// @Success 200 {object} response.Response{data=dto.UserInfo} "操作成功"
// @Router /admin/users/{id}/active [put]
func (h *UserHandler) SetActive(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的用户ID")
		return
	}

	var req dto.UserSetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	operatorID, _ := middleware.GetCurrentUserID(c)

	info, err := h.userService.SetActive(id, operatorID, *req.Active)
	if err != nil {
		handleUserError(c, err)
		return
	}

	response.OK(c, "操作成功", info)
}

// SetRole 调整用户角色
// @Summary 调整用户角色
// @Description 设置用户角色 user/editor/admin（管理员）
// @Tags 用户管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "用户ID"
// @Param request body dto.UserSetRoleRequest true "角色"
// @Success 200 {object} response.Response{data=dto.UserInfo} "操作成功"
// @Router /admin/users/{id}/role [put]
func (h *UserHandler) SetRole(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的用户ID")
		return
	}

	var req dto.UserSetRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	operatorID, _ := middleware.GetCurrentUserID(c)

	info, err := h.userService.SetRole(id, operatorID, req.Role)
	if err != nil {
		handleUserError(c, err)
		return
	}

	response.OK(c, "操作成功", info)
}

func handleUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrUsernameExists),
		errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrCannotDemoteSelf),
		errors.Is(err, service.ErrCannotDisableSelf):
		response.BadRequest(c, err.Error())
	default:
		logger.Error("User operation failed", zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
	}
}
