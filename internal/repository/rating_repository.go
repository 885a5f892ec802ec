package repository

import (
	"errors"

	"github.com/petmart-next/internal/models"

	"gorm.io/gorm"
)

// RatingRepository 评分数据访问接口
type RatingRepository interface {
	List(filter RatingListFilter) ([]models.Rating, int64, error)
	GetByUserAndProduct(userID, productID uint) (*models.Rating, error)
	Upsert(rating *models.Rating) error
	Delete(id string) error
	SummaryByProduct(productID uint) (*RatingSummary, error)
	SummaryByProducts(productIDs []uint) (map[uint]RatingSummary, error)
	WithTx(tx *gorm.DB) RatingRepository
}

// GormRatingRepository GORM 实现
type GormRatingRepository struct {
	db *gorm.DB
}

// NewRatingRepository 创建评分仓库
func NewRatingRepository(db *gorm.DB) *GormRatingRepository {
	return &GormRatingRepository{db: db}
}

// WithTx 绑定事务
func (r *GormRatingRepository) WithTx(tx *gorm.DB) RatingRepository {
	if tx == nil {
		return r
	}
	return &GormRatingRepository{db: tx}
}

// List 评分列表
func (r *GormRatingRepository) List(filter RatingListFilter) ([]models.Rating, int64, error) {
	var ratings []models.Rating

	query := r.db.Model(&models.Rating{}).Preload("User")
	if filter.ProductID != 0 {
		query = query.Where("product_id = ?", filter.ProductID)
	}
	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.MinScore > 0 {
		query = query.Where("score >= ?", filter.MinScore)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("created_at DESC, id DESC").Find(&ratings).Error; err != nil {
		return nil, 0, err
	}
	return ratings, total, nil
}

// GetByUserAndProduct 获取用户对商品的评分
func (r *GormRatingRepository) GetByUserAndProduct(userID, productID uint) (*models.Rating, error) {
	var rating models.Rating
	err := r.db.Where("user_id = ? AND product_id = ?", userID, productID).First(&rating).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// Upsert 新增或覆盖评分（同一用户对同一商品仅一条）
func (r *GormRatingRepository) Upsert(rating *models.Rating) error {
	if rating == nil {
		return nil
	}
	existing, err := r.GetByUserAndProduct(rating.UserID, rating.ProductID)
	if err != nil {
		return err
	}
	if existing == nil {
		return r.db.Create(rating).Error
	}
	rating.ID = existing.ID
	rating.CreatedAt = existing.CreatedAt
	return r.db.Model(&models.Rating{}).Where("id = ?", existing.ID).Updates(map[string]interface{}{
		"score":   rating.Score,
		"comment": rating.Comment,
	}).Error
}

// Delete 删除评分
func (r *GormRatingRepository) Delete(id string) error {
	return r.db.Delete(&models.Rating{}, id).Error
}

// SummaryByProduct 单个商品评分汇总
func (r *GormRatingRepository) SummaryByProduct(productID uint) (*RatingSummary, error) {
	summaries, err := r.SummaryByProducts([]uint{productID})
	if err != nil {
		return nil, err
	}
	summary, ok := summaries[productID]
	if !ok {
		return &RatingSummary{ProductID: productID}, nil
	}
	return &summary, nil
}

// SummaryByProducts 批量商品评分汇总
func (r *GormRatingRepository) SummaryByProducts(productIDs []uint) (map[uint]RatingSummary, error) {
	result := make(map[uint]RatingSummary, len(productIDs))
	if len(productIDs) == 0 {
		return result, nil
	}
	var rows []RatingSummary
	err := r.db.Model(&models.Rating{}).
		Select("product_id, AVG(score) AS average, COUNT(*) AS count").
		Where("product_id IN ?", productIDs).
		Group("product_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.ProductID] = row
	}
	return result, nil
}
