package service

import (
	"strings"

	"github.com/petmart-next/internal/models"
	"github.com/petmart-next/internal/repository"
)

// CategoryInput 分类创建/更新输入
type CategoryInput struct {
	Slug        string `json:"slug" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	SortOrder   int    `json:"sort_order"`
}

// CategoryService 分类服务
type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService 创建分类服务
func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// ListAll 全部分类
func (s *CategoryService) ListAll() ([]models.Category, error) {
	return s.categoryRepo.ListAll()
}

// GetBySlug 根据 slug 获取分类
func (s *CategoryService) GetBySlug(slug string) (*models.Category, error) {
	category, err := s.categoryRepo.GetBySlug(strings.TrimSpace(slug))
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	return category, nil
}

// GetByID 根据 ID 获取分类
func (s *CategoryService) GetByID(id string) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	return category, nil
}

// Create 创建分类
func (s *CategoryService) Create(input CategoryInput) (*models.Category, error) {
	if err := s.validateInput(&input, nil); err != nil {
		return nil, err
	}
	category := &models.Category{
		Slug:        input.Slug,
		Name:        input.Name,
		Description: input.Description,
		Icon:        input.Icon,
		SortOrder:   input.SortOrder,
	}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

// Update 更新分类
func (s *CategoryService) Update(id string, input CategoryInput) (*models.Category, error) {
	category, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.validateInput(&input, &id); err != nil {
		return nil, err
	}
	category.Slug = input.Slug
	category.Name = input.Name
	category.Description = input.Description
	category.Icon = input.Icon
	category.SortOrder = input.SortOrder
	if err := s.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete 删除分类（分类下仍有商品时拒绝）
func (s *CategoryService) Delete(id string) error {
	category, err := s.GetByID(id)
	if err != nil {
		return err
	}
	count, err := s.categoryRepo.CountProducts(category.ID)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryInUse
	}
	return s.categoryRepo.Delete(id)
}

func (s *CategoryService) validateInput(input *CategoryInput, excludeID *string) error {
	input.Slug = strings.ToLower(strings.TrimSpace(input.Slug))
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" || !slugPattern.MatchString(input.Slug) {
		return ErrInvalidParams
	}
	count, err := s.categoryRepo.CountBySlug(input.Slug, excludeID)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrSlugExists
	}
	return nil
}
