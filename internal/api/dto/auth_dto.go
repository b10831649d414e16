package dto

import "time"

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email,max=180"`
	Password string `json:"password" binding:"required,min=6,max=255"`
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Email           string `json:"email" binding:"required,email,max=180"`
	Username        string `json:"username" binding:"required,min=2,max=50"`
	Password        string `json:"password" binding:"required,min=6,max=255"`
	NewsletterOptIn bool   `json:"newsletter_opt_in"`
}

// TokenData 登录成功返回的 Token 信息
type TokenData struct {
	Token     string   `json:"token"`
	TokenType string   `json:"token_type"`
	ExpiresIn int      `json:"expires_in"`
	User      UserInfo `json:"user"`
}

// UserInfo 用户公开信息（不含密码）
type UserInfo struct {
	ID              int64      `json:"id"`
	Email           string     `json:"email"`
	Username        string     `json:"user_name"`
	UserRole        string     `json:"user_role"`
	ProfileImage    *string    `json:"profile_image"`
	IsActive        bool       `json:"is_active"`
	NewsletterOptIn bool       `json:"newsletter_opt_in"`
	LastLoginAt     *time.Time `json:"last_login_at"`
	CreatedAt       time.Time  `json:"created_at"`
}
