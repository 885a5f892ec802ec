package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/petmart-next/internal/models"

	"gorm.io/gorm"
)

// BannerRepository Banner 数据访问接口
type BannerRepository interface {
	List(filter BannerListFilter) ([]models.Banner, int64, error)
	ListValid(now time.Time) ([]models.Banner, error)
	GetByID(id string) (*models.Banner, error)
	Create(banner *models.Banner) error
	Update(banner *models.Banner) error
	Delete(id string) error
	WithTx(tx *gorm.DB) BannerRepository
}

// GormBannerRepository GORM 实现
type GormBannerRepository struct {
	db *gorm.DB
}

// NewBannerRepository 创建 Banner 仓库
func NewBannerRepository(db *gorm.DB) *GormBannerRepository {
	return &GormBannerRepository{db: db}
}

// WithTx 绑定事务
func (r *GormBannerRepository) WithTx(tx *gorm.DB) BannerRepository {
	if tx == nil {
		return r
	}
	return &GormBannerRepository{db: tx}
}

// List Banner 列表（后台）
func (r *GormBannerRepository) List(filter BannerListFilter) ([]models.Banner, int64, error) {
	var banners []models.Banner

	query := r.db.Model(&models.Banner{})
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR title LIKE ?", like, like)
	}
	if filter.OnlyValid {
		now := time.Now()
		query = applyBannerWindow(query, now)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("sort_order DESC, id ASC").Find(&banners).Error; err != nil {
		return nil, 0, err
	}
	return banners, total, nil
}

// ListValid 当前生效的 Banner（前台首页）
func (r *GormBannerRepository) ListValid(now time.Time) ([]models.Banner, error) {
	var banners []models.Banner
	query := r.db.Where("is_active = ?", true)
	query = applyBannerWindow(query, now)
	if err := query.Order("sort_order DESC, id ASC").Find(&banners).Error; err != nil {
		return nil, err
	}
	return banners, nil
}

func applyBannerWindow(query *gorm.DB, now time.Time) *gorm.DB {
	return query.
		Where("start_at IS NULL OR start_at <= ?", now).
		Where("end_at IS NULL OR end_at >= ?", now)
}

// GetByID 根据 ID 获取 Banner
func (r *GormBannerRepository) GetByID(id string) (*models.Banner, error) {
	var banner models.Banner
	if err := r.db.First(&banner, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &banner, nil
}

// Create 创建 Banner
func (r *GormBannerRepository) Create(banner *models.Banner) error {
	return r.db.Create(banner).Error
}

// Update 更新 Banner
func (r *GormBannerRepository) Update(banner *models.Banner) error {
	return r.db.Save(banner).Error
}

// Delete 删除 Banner
func (r *GormBannerRepository) Delete(id string) error {
	return r.db.Delete(&models.Banner{}, id).Error
}
