package service

import (
	"errors"
	"time"

	"gamepulse-go/internal/api/dto"
	"gamepulse-go/internal/config"
	"gamepulse-go/internal/model"
	"gamepulse-go/internal/repository"
	"gamepulse-go/pkg/logger"
	"gamepulse-go/pkg/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("用户不存在")
	ErrUsernameExists    = errors.New("用户名已存在")
	ErrEmailExists       = errors.New("该邮箱已注册")
	ErrInvalidCredential = errors.New("邮箱或密码错误")
	ErrUserDisabled      = errors.New("该账号已被停用")
	ErrUserBlocked       = errors.New("登录失败次数过多，账号已被临时锁定")
)

// 连续失败 maxFailedLogins 次后锁定 loginBlockDuration
const (
	maxFailedLogins    = 5
	loginBlockDuration = 15 * time.Minute
)

type AuthService struct {
	userRepo *repository.UserRepository
}

func NewAuthService(userRepo *repository.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// Register 用户注册
func (s *AuthService) Register(req *dto.RegisterRequest) (*dto.UserInfo, error) {
	exists, err := s.userRepo.ExistsByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}

	exists, err = s.userRepo.ExistsByUsername(req.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUsernameExists
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:           req.Email,
		UserName:        req.Username,
		Password:        hashedPassword,
		UserRole:        model.RoleUser,
		IsActive:        true,
		NewsletterOptIn: req.NewsletterOptIn,
	}

	if err := s.userRepo.Create(user); err != nil {
		// 唯一索引兜底：并发注册同名/同邮箱
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailExists
		}
		return nil, err
	}

	return toUserInfo(user), nil
}

// Login 用户登录，返回 token 数据
// 连续失败会累计计数并临时锁定账号，成功后清零。
func (s *AuthService) Login(req *dto.LoginRequest) (*dto.TokenData, error) {
	user, err := s.userRepo.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredential
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, ErrUserDisabled
	}

	now := time.Now()
	if user.BlockedUntil != nil && user.BlockedUntil.After(now) {
		return nil, ErrUserBlocked
	}

	if !utils.VerifyPassword(req.Password, user.Password) {
		attempts := user.FailedLoginAttempts + 1
		updates := map[string]interface{}{"failed_login_attempts": attempts}
		if attempts >= maxFailedLogins {
			updates["blocked_until"] = now.Add(loginBlockDuration)
			logger.Warn("Account temporarily blocked after failed logins",
				zap.Int64("user_id", user.ID), zap.Int("attempts", attempts))
		}
		_, _ = s.userRepo.Update(user.ID, updates)
		return nil, ErrInvalidCredential
	}

	_, _ = s.userRepo.Update(user.ID, map[string]interface{}{
		"failed_login_attempts": 0,
		"blocked_until":         nil,
		"last_login_at":         now,
	})

	token, err := utils.GenerateToken(user.ID)
	if err != nil {
		return nil, err
	}

	expireSeconds := config.GetJWT().ExpireHours * 3600

	return &dto.TokenData{
		Token:     token,
		TokenType: "bearer",
		ExpiresIn: expireSeconds,
		User:      *toUserInfo(user),
	}, nil
}

// GetCurrentUser 根据用户 ID 获取用户信息
func (s *AuthService) GetCurrentUser(userID int64) (*dto.UserInfo, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, ErrUserDisabled
	}

	return toUserInfo(user), nil
}

func toUserInfo(user *model.User) *dto.UserInfo {
	return &dto.UserInfo{
		ID:              user.ID,
		Email:           user.Email,
		Username:        user.UserName,
		UserRole:        user.UserRole,
		ProfileImage:    user.ProfileImage,
		IsActive:        user.IsActive,
		NewsletterOptIn: user.NewsletterOptIn,
		LastLoginAt:     user.LastLoginAt,
		CreatedAt:       user.CreatedAt,
	}
}
