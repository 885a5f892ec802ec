package service

import (
	"strings"

	"github.com/petmart-next/internal/constants"
	"github.com/petmart-next/internal/models"
	"github.com/petmart-next/internal/repository"
)

// RateInput 评分输入
type RateInput struct {
	UserID    uint
	ProductID uint
	Score     int
	Comment   string
}

// RatingService 商品评分服务
type RatingService struct {
	ratingRepo  repository.RatingRepository
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
}

// NewRatingService 创建评分服务
func NewRatingService(ratingRepo repository.RatingRepository, productRepo repository.ProductRepository, orderRepo repository.OrderRepository) *RatingService {
	return &RatingService{
		ratingRepo:  ratingRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
	}
}

// ListByProduct 商品评分列表
func (s *RatingService) ListByProduct(productID uint, page, pageSize int) ([]models.Rating, int64, error) {
	if productID == 0 {
		return nil, 0, ErrInvalidParams
	}
	return s.ratingRepo.List(repository.RatingListFilter{
		Page:      page,
		PageSize:  pageSize,
		ProductID: productID,
	})
}

// List 评分列表（后台）
func (s *RatingService) List(filter repository.RatingListFilter) ([]models.Rating, int64, error) {
	return s.ratingRepo.List(filter)
}

// Rate 提交评分（仅限购买过该商品的用户，重复提交覆盖旧评分）
func (s *RatingService) Rate(input RateInput) (*models.Rating, error) {
	if input.UserID == 0 || input.ProductID == 0 {
		return nil, ErrInvalidParams
	}
	if input.Score < constants.RatingScoreMin || input.Score > constants.RatingScoreMax {
		return nil, ErrRatingScoreInvalid
	}
	product, err := s.productRepo.GetByID(uintToID(input.ProductID))
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	purchased, err := s.orderRepo.HasPurchased(input.UserID, input.ProductID)
	if err != nil {
		return nil, err
	}
	if !purchased {
		return nil, ErrRatingNotPermitted
	}

	rating := &models.Rating{
		UserID:    input.UserID,
		ProductID: input.ProductID,
		Score:     input.Score,
		Comment:   strings.TrimSpace(input.Comment),
	}
	if err := s.ratingRepo.Upsert(rating); err != nil {
		return nil, err
	}
	return rating, nil
}

// Delete 删除评分（后台）
func (s *RatingService) Delete(id string) error {
	return s.ratingRepo.Delete(id)
}

// Summary 商品评分汇总
func (s *RatingService) Summary(productID uint) (*repository.RatingSummary, error) {
	if productID == 0 {
		return nil, ErrInvalidParams
	}
	return s.ratingRepo.SummaryByProduct(productID)
}
