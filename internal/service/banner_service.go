package service

import (
	"strings"
	"time"

	"github.com/petmart-next/internal/models"
	"github.com/petmart-next/internal/repository"
)

// BannerInput Banner 创建/更新输入
type BannerInput struct {
	Name        string     `json:"name" binding:"required"`
	Title       string     `json:"title"`
	Subtitle    string     `json:"subtitle"`
	Image       string     `json:"image" binding:"required"`
	MobileImage string     `json:"mobile_image"`
	LinkType    string     `json:"link_type"`
	LinkValue   string     `json:"link_value"`
	IsActive    *bool      `json:"is_active"`
	StartAt     *time.Time `json:"start_at"`
	EndAt       *time.Time `json:"end_at"`
	SortOrder   int        `json:"sort_order"`
}

var bannerLinkTypes = map[string]bool{
	"none":     true,
	"product":  true,
	"category": true,
	"url":      true,
}

// BannerService Banner 服务
type BannerService struct {
	bannerRepo repository.BannerRepository
}

// NewBannerService 创建 Banner 服务
func NewBannerService(bannerRepo repository.BannerRepository) *BannerService {
	return &BannerService{bannerRepo: bannerRepo}
}

// ListValid 当前生效的 Banner（前台）
func (s *BannerService) ListValid() ([]models.Banner, error) {
	return s.bannerRepo.ListValid(time.Now())
}

// List Banner 列表（后台）
func (s *BannerService) List(filter repository.BannerListFilter) ([]models.Banner, int64, error) {
	return s.bannerRepo.List(filter)
}

// GetByID 根据 ID 获取 Banner
func (s *BannerService) GetByID(id string) (*models.Banner, error) {
	banner, err := s.bannerRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if banner == nil {
		return nil, ErrBannerNotFound
	}
	return banner, nil
}

// Create 创建 Banner
func (s *BannerService) Create(input BannerInput) (*models.Banner, error) {
	if err := validateBannerInput(&input); err != nil {
		return nil, err
	}
	banner := &models.Banner{
		Name:        input.Name,
		Title:       input.Title,
		Subtitle:    input.Subtitle,
		Image:       input.Image,
		MobileImage: input.MobileImage,
		LinkType:    input.LinkType,
		LinkValue:   input.LinkValue,
		IsActive:    input.IsActive == nil || *input.IsActive,
		StartAt:     input.StartAt,
		EndAt:       input.EndAt,
		SortOrder:   input.SortOrder,
	}
	if err := s.bannerRepo.Create(banner); err != nil {
		return nil, err
	}
	return banner, nil
}

// Update 更新 Banner
func (s *BannerService) Update(id string, input BannerInput) (*models.Banner, error) {
	banner, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := validateBannerInput(&input); err != nil {
		return nil, err
	}
	banner.Name = input.Name
	banner.Title = input.Title
	banner.Subtitle = input.Subtitle
	banner.Image = input.Image
	banner.MobileImage = input.MobileImage
	banner.LinkType = input.LinkType
	banner.LinkValue = input.LinkValue
	if input.IsActive != nil {
		banner.IsActive = *input.IsActive
	}
	banner.StartAt = input.StartAt
	banner.EndAt = input.EndAt
	banner.SortOrder = input.SortOrder
	if err := s.bannerRepo.Update(banner); err != nil {
		return nil, err
	}
	return banner, nil
}

// Delete 删除 Banner
func (s *BannerService) Delete(id string) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	return s.bannerRepo.Delete(id)
}

func validateBannerInput(input *BannerInput) error {
	input.Name = strings.TrimSpace(input.Name)
	input.Image = strings.TrimSpace(input.Image)
	if input.Name == "" || input.Image == "" {
		return ErrInvalidParams
	}
	input.LinkType = strings.TrimSpace(input.LinkType)
	if input.LinkType == "" {
		input.LinkType = "none"
	}
	if !bannerLinkTypes[input.LinkType] {
		return ErrInvalidParams
	}
	if input.StartAt != nil && input.EndAt != nil && input.EndAt.Before(*input.StartAt) {
		return ErrInvalidParams
	}
	return nil
}
