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
	ErrTagNameEmpty  = errors.New("标签名称不能为空")
	ErrTagNameExists = errors.New("标签名称已存在")
)

type TagService struct {
	tagRepo *repository.TagRepository
}

func NewTagService(tagRepo *repository.TagRepository) *TagService {
	return &TagService{tagRepo: tagRepo}
}

// ListAll 全部标签（公开）
func (s *TagService) ListAll() ([]dto.TagInfo, error) {
	tags, err := s.tagRepo.ListAll()
	if err != nil {
		return nil, err
	}
	items := make([]dto.TagInfo, 0, len(tags))
	for i := range tags {
		items = append(items, toTagInfo(&tags[i]))
	}
	return items, nil
}

// Create 创建标签（管理员）
func (s *TagService) Create(req *dto.TagCreateRequest) (*dto.TagInfo, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrTagNameEmpty
	}

	exists, err := s.tagRepo.ExistsByName(name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrTagNameExists
	}

	tag := &model.Tag{
		Name:        name,
		Slug:        slug.Make(name),
		Description: req.Description,
		Synonyms:    req.Synonyms,
	}
	if err := s.tagRepo.Create(tag); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrTagNameExists
		}
		return nil, err
	}

	info := toTagInfo(tag)
	return &info, nil
}

// Update 更新标签（管理员）
func (s *TagService) Update(id int64, req *dto.TagUpdateRequest) (*dto.TagInfo, error) {
	updates := make(map[string]interface{})
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrTagNameEmpty
		}
		updates["name"] = name
		updates["slug"] = slug.Make(name)
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Synonyms != nil {
		updates["synonyms"] = *req.Synonyms
	}

	if len(updates) == 0 {
		return nil, ErrNoFieldsToUpdate
	}

	tag, err := s.tagRepo.Update(id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTagNotFound
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrTagNameExists
		}
		return nil, err
	}

	info := toTagInfo(tag)
	return &info, nil
}

// Delete 删除标签（管理员）
func (s *TagService) Delete(id int64) error {
	if err := s.tagRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTagNotFound
		}
		return err
	}
	return nil
}

func toTagInfo(t *model.Tag) dto.TagInfo {
	return dto.TagInfo{
		ID:          t.ID,
		Name:        t.Name,
		Slug:        t.Slug,
		Description: t.Description,
		Synonyms:    t.Synonyms,
	}
}
