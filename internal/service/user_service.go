package service

import (
	"errors"

	"gamepulse-go/internal/api/dto"
	"gamepulse-go/internal/model"
	"gamepulse-go/internal/repository"
	"gamepulse-go/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrInvalidRole       = errors.New("无效的用户角色")
	ErrCannotDemoteSelf  = errors.New("不能修改自己的角色")
	ErrCannotDisableSelf = errors.New("不能停用自己的账号")
)

type UserService struct {
	userRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// GetUserByID 获取用户信息
func (s *UserService) GetUserByID(id int64) (*dto.UserInfo, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return toUserInfo(user), nil
}

// UpdateProfile 更新个人资料（本人）
func (s *UserService) UpdateProfile(userID int64, req *dto.UserUpdateRequest) (*dto.UserInfo, error) {
	updates := make(map[string]interface{})
	if req.Username != nil {
		exists, err := s.userRepo.ExistsByUsername(*req.Username)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrUsernameExists
		}
		updates["user_name"] = *req.Username
	}
	if req.ProfileImage != nil {
		updates["profile_image"] = *req.ProfileImage
	}
	if req.NewsletterOptIn != nil {
		updates["newsletter_opt_in"] = *req.NewsletterOptIn
	}

	if len(updates) == 0 {
		return s.GetUserByID(userID)
	}

	user, err := s.userRepo.Update(userID, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return toUserInfo(user), nil
}

// SetActive 启用/停用账号（管理员）
func (s *UserService) SetActive(targetID, operatorID int64, active bool) (*dto.UserInfo, error) {
	if targetID == operatorID && !active {
		return nil, ErrCannotDisableSelf
	}

	user, err := s.userRepo.Update(targetID, map[string]interface{}{"is_active": active})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	logger.Info("User active flag changed",
		zap.Int64("user_id", targetID),
		zap.Int64("operator", operatorID),
		zap.Bool("active", active))

	return toUserInfo(user), nil
}

// SetRole 调整用户角色（管理员）
func (s *UserService) SetRole(targetID, operatorID int64, role string) (*dto.UserInfo, error) {
	if role != model.RoleUser && role != model.RoleEditor && role != model.RoleAdmin {
		return nil, ErrInvalidRole
	}
	if targetID == operatorID {
		return nil, ErrCannotDemoteSelf
	}

	user, err := s.userRepo.Update(targetID, map[string]interface{}{"user_role": role})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	logger.Info("User role changed",
		zap.Int64("user_id", targetID),
		zap.Int64("operator", operatorID),
		zap.String("role", role))

	return toUserInfo(user), nil
}

// ListUsers 用户列表（管理员，带筛选和分页）
func (s *UserService) ListUsers(page, pageSize int, username, userRole *string) (*dto.UserListData, error) {
	skip := (page - 1) * pageSize
	users, total, err := s.userRepo.ListWithFilters(skip, pageSize, username, userRole)
	if err != nil {
		return nil, err
	}

	items := make([]dto.UserInfo, 0, len(users))
	for i := range users {
		items = append(items, *toUserInfo(&users[i]))
	}

	totalPages := (total + int64(pageSize) - 1) / int64(pageSize)

	return &dto.UserListData{
		Users:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}
