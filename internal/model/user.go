package model

import "time"

// User 用户模型
type User struct {
	ID                 int64      `gorm:"primaryKey;autoIncrement;comment:用户标识" json:"id"`
	Email              string     `gorm:"size:180;not null;uniqueIndex;comment:邮箱" json:"email"`
	UserName           string     `gorm:"size:50;not null;uniqueIndex;comment:用户名" json:"user_name"`
	Password           string     `gorm:"size:255;not null;comment:密码" json:"-"` // json:"-" 序列化时忽略密码
	UserRole           string     `gorm:"size:20;not null;default:'user';comment:用户角色 user/editor/admin" json:"user_role"`
	ProfileImage       *string    `gorm:"size:500;comment:头像" json:"profile_image"`
	IsActive           bool       `gorm:"not null;default:true;comment:账号是否启用" json:"is_active"`
	NewsletterOptIn    bool       `gorm:"not null;default:false;comment:是否订阅资讯邮件" json:"newsletter_opt_in"`
	FailedLoginAttempts int       `gorm:"not null;default:0;comment:连续登录失败次数" json:"-"`
	BlockedUntil       *time.Time `gorm:"comment:封禁解除时间" json:"-"`
	LastLoginAt        *time.Time `gorm:"comment:最近登录时间" json:"last_login_at"`
	CreatedAt          time.Time  `gorm:"autoCreateTime;comment:注册时间" json:"created_at"`

	// 关联关系
	News     []News        `gorm:"foreignKey:AuthorID" json:"news,omitempty"`
	Comments []Comment     `gorm:"foreignKey:AuthorID" json:"comments,omitempty"`
	Votes    []CommentVote `gorm:"foreignKey:UserID" json:"votes,omitempty"`
	Ratings  []NewsRating  `gorm:"foreignKey:UserID" json:"ratings,omitempty"`
	Reports  []Report      `gorm:"foreignKey:ReporterID" json:"reports,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// 角色常量
const (
	RoleUser   = "user"
	RoleEditor = "editor"
	RoleAdmin  = "admin"
)
