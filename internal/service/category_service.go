package service

import (
	"errors"
	"strings"

	"gamepulse-go/internal/api/dto"
	"gamepulse-go/internal/model"
	"gamepulse-go/internal/repository"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

var (
	ErrCategoryNameEmpty  = errors.New("分类名称不能为空")
	ErrCategoryNameExists = errors.New("分类名称已存在")
)

type CategoryService struct {
	categoryRepo *repository.CategoryRepository
}

func NewCategoryService(categoryRepo *repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// ListAll 全部分类（公开）
func (s *CategoryService) ListAll() ([]dto.CategoryInfo, error) {
	categories, err := s.categoryRepo.ListAll()
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryInfo, 0, len(categories))
	for i := range categories {
		items = append(items, toCategoryInfo(&categories[i]))
	}
	return items, nil
}

// Create 创建分类（管理员）
func (s *CategoryService) Create(req *dto.CategoryCreateRequest) (*dto.CategoryInfo, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrCategoryNameEmpty
	}

	exists, err := s.categoryRepo.ExistsByName(name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrCategoryNameExists
	}

	category := &model.Category{
		Name:        name,
		Slug:        slug.Make(name),
		Description: req.Description,
	}
	if err := s.categoryRepo.Create(category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrCategoryNameExists
		}
		return nil, err
	}

	info := toCategoryInfo(category)
	return &info, nil
}

// Update 更新分类（管理员）
func (s *CategoryService) Update(id int64, req *dto.CategoryUpdateRequest) (*dto.CategoryInfo, error) {
	updates := make(map[string]interface{})
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrCategoryNameEmpty
		}
		updates["name"] = name
		updates["slug"] = slug.Make(name)
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}

	if len(updates) == 0 {
		return nil, ErrNoFieldsToUpdate
	}

	category, err := s.categoryRepo.Update(id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrCategoryNameExists
		}
		return nil, err
	}

	info := toCategoryInfo(category)
	return &info, nil
}

// Delete 删除分类（管理员，关联表行随之清除）
func (s *CategoryService) Delete(id int64) error {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}
	if err := s.categoryRepo.Delete(category.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}
	return nil
}

func toCategoryInfo(c *model.Category) dto.CategoryInfo {
	return dto.CategoryInfo{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
	}
}
