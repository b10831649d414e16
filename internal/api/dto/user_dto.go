package dto

// UserUpdateRequest 更新个人资料请求
type UserUpdateRequest struct {
	Username        *string `json:"username" binding:"omitempty,min=2,max=50"`
	ProfileImage    *string `json:"profile_image" binding:"omitempty,max=500"`
	NewsletterOptIn *bool   `json:"newsletter_opt_in"`
}

// UserSetActiveRequest 启用/停用账号请求（管理员）
type UserSetActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// UserSetRoleRequest 调整角色请求（管理员）
type UserSetRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=user editor admin"`
}

// UserListData 用户列表响应数据
type UserListData struct {
	Users      []UserInfo `json:"users"`
	Total      int64      `json:"total"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	TotalPages int64      `json:"total_pages"`
}
