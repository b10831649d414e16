package dto

// CategoryCreateRequest 创建分类请求（管理员）
type CategoryCreateRequest struct {
	Name        string  `json:"name" binding:"required,min=1,max=100"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
}

// CategoryUpdateRequest 更新分类请求
type CategoryUpdateRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=100"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
}

// CategoryInfo 分类信息
type CategoryInfo struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description"`
}

// TagCreateRequest 创建标签请求（管理员）
type TagCreateRequest struct {
	Name        string  `json:"name" binding:"required,min=1,max=100"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	Synonyms    *string `json:"synonyms" binding:"omitempty,max=500"`
}

// TagUpdateRequest 更新标签请求
type TagUpdateRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=100"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	Synonyms    *string `json:"synonyms" binding:"omitempty,max=500"`
}

// TagInfo 标签信息
type TagInfo struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description"`
	Synonyms    *string `json:"synonyms"`
}
