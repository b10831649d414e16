package service

import (
	"testing"

	"gamepulse-go/internal/api/dto"
	"gamepulse-go/internal/model"
	"gamepulse-go/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuthService(db *gorm.DB) *AuthService {
	return NewAuthService(repository.NewUserRepository(db))
}

func TestRegister(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)

	req := &dto.RegisterRequest{
		Email:    "gamer@example.com",
		Username: "gamer",
		Password: "password123",
	}

	info, err := svc.Register(req)
	require.NoError(t, err)
	assert.Equal(t, "gamer", info.Username)
	assert.Equal(t, model.RoleUser, info.UserRole)
	assert.True(t, info.IsActive)

	// 密码落库为哈希
	var user model.User
	require.NoError(t, db.First(&user, info.ID).Error)
	assert.NotEqual(t, "password123", user.Password)

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.Register(&dto.RegisterRequest{
			Email: "gamer@example.com", Username: "another", Password: "password123",
		})
		assert.ErrorIs(t, err, ErrEmailExists)
	})

	t.Run("duplicate username", func(t *testing.T) {
		_, err := svc.Register(&dto.RegisterRequest{
			Email: "other@example.com", Username: "gamer", Password: "password123",
		})
		assert.ErrorIs(t, err, ErrUsernameExists)
	})
}

func TestLogin(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)

	_, err := svc.Register(&dto.RegisterRequest{
		Email: "gamer@example.com", Username: "gamer", Password: "password123",
	})
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		data, err := svc.Login(&dto.LoginRequest{Email: "gamer@example.com", Password: "password123"})
		require.NoError(t, err)
		assert.NotEmpty(t, data.Token)
		assert.Equal(t, "bearer", data.TokenType)
		assert.Equal(t, "gamer", data.User.Username)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(&dto.LoginRequest{Email: "gamer@example.com", Password: "wrong"})
		assert.ErrorIs(t, err, ErrInvalidCredential)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(&dto.LoginRequest{Email: "nobody@example.com", Password: "password123"})
		assert.ErrorIs(t, err, ErrInvalidCredential)
	})
}

func TestLoginThrottling(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)

	_, err := svc.Register(&dto.RegisterRequest{
		Email: "gamer@example.com", Username: "gamer", Password: "password123",
	})
	require.NoError(t, err)

	// 连续失败到阈值后账号被临时锁定
	for i := 0; i < maxFailedLogins; i++ {
		_, err := svc.Login(&dto.LoginRequest{Email: "gamer@example.com", Password: "wrong"})
		assert.ErrorIs(t, err, ErrInvalidCredential)
	}

	_, err = svc.Login(&dto.LoginRequest{Email: "gamer@example.com", Password: "password123"})
	assert.ErrorIs(t, err, ErrUserBlocked, "锁定期内正确密码也应被拒绝")

	// 解锁后成功登录清零计数
	require.NoError(t, db.Model(&model.User{}).
		Where("email = ?", "gamer@example.com").
		UpdateColumn("blocked_until", nil).Error)

	_, err = svc.Login(&dto.LoginRequest{Email: "gamer@example.com", Password: "password123"})
	require.NoError(t, err)

	var user model.User
	require.NoError(t, db.Where("email = ?", "gamer@example.com").First(&user).Error)
	assert.Equal(t, 0, user.FailedLoginAttempts)
	assert.Nil(t, user.BlockedUntil)
	assert.NotNil(t, user.LastLoginAt)
}

func TestLoginDisabledAccount(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)

	info, err := svc.Register(&dto.RegisterRequest{
		Email: "gamer@example.com", Username: "gamer", Password: "password123",
	})
	require.NoError(t, err)

	require.NoError(t, db.Model(&model.User{}).
		Where("id = ?", info.ID).UpdateColumn("is_active", false).Error)

	_, err = svc.Login(&dto.LoginRequest{Email: "gamer@example.com", Password: "password123"})
	assert.ErrorIs(t, err, ErrUserDisabled)
}
