package service

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/petmart-next/internal/models"
	"github.com/petmart-next/internal/repository"
)

func uintToID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// ProductInput 商品创建/更新输入
type ProductInput struct {
	CategoryID  uint         `json:"category_id" binding:"required"`
	Slug        string       `json:"slug" binding:"required"`
	Name        string       `json:"name" binding:"required"`
	Description string       `json:"description"`
	Price       models.Money `json:"price"`
	Stock       int          `json:"stock"`
	Images      []string     `json:"images"`
	Brand       string       `json:"brand"`
	PetKind     string       `json:"pet_kind"`
	IsActive    *bool        `json:"is_active"`
	SortOrder   int          `json:"sort_order"`
}

// ProductService 商品服务
type ProductService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	ratingRepo   repository.RatingRepository
}

// NewProductService 创建商品服务
func NewProductService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository, ratingRepo repository.RatingRepository) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		ratingRepo:   ratingRepo,
	}
}

// List 商品列表（附带评分汇总）
func (s *ProductService) List(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	products, total, err := s.productRepo.List(filter)
	if err != nil {
		return nil, 0, err
	}
	if err := s.attachRatings(products); err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// GetBySlug 前台商品详情（仅上架商品）
func (s *ProductService) GetBySlug(slug string) (*models.Product, error) {
	product, err := s.productRepo.GetBySlug(strings.TrimSpace(slug), true)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	summary, err := s.ratingRepo.SummaryByProduct(product.ID)
	if err != nil {
		return nil, err
	}
	product.RatingAvg = summary.Average
	product.RatingCount = summary.Count
	return product, nil
}

// GetByID 后台商品详情
func (s *ProductService) GetByID(id string) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// Create 创建商品
func (s *ProductService) Create(input ProductInput) (*models.Product, error) {
	if err := s.validateInput(&input, nil); err != nil {
		return nil, err
	}
	product := &models.Product{
		CategoryID:  input.CategoryID,
		Slug:        input.Slug,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
		Images:      input.Images,
		Brand:       strings.TrimSpace(input.Brand),
		PetKind:     strings.TrimSpace(input.PetKind),
		IsActive:    input.IsActive == nil || *input.IsActive,
		SortOrder:   input.SortOrder,
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Update 更新商品
func (s *ProductService) Update(id string, input ProductInput) (*models.Product, error) {
	product, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.validateInput(&input, &id); err != nil {
		return nil, err
	}
	product.CategoryID = input.CategoryID
	product.Slug = input.Slug
	product.Name = input.Name
	product.Description = input.Description
	product.Price = input.Price
	product.Stock = input.Stock
	product.Images = input.Images
	product.Brand = strings.TrimSpace(input.Brand)
	product.PetKind = strings.TrimSpace(input.PetKind)
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	product.SortOrder = input.SortOrder
	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete 删除商品
func (s *ProductService) Delete(id string) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	return s.productRepo.Delete(id)
}

func (s *ProductService) validateInput(input *ProductInput, excludeID *string) error {
	input.Slug = strings.ToLower(strings.TrimSpace(input.Slug))
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" || !slugPattern.MatchString(input.Slug) {
		return ErrInvalidParams
	}
	if input.Price < 0 || input.Stock < 0 {
		return ErrInvalidParams
	}
	if input.CategoryID != 0 {
		category, err := s.categoryRepo.GetByID(uintToID(input.CategoryID))
		if err != nil {
			return err
		}
		if category == nil {
			return ErrCategoryNotFound
		}
	}
	count, err := s.productRepo.CountBySlug(input.Slug, excludeID)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrSlugExists
	}
	return nil
}

func (s *ProductService) attachRatings(products []models.Product) error {
	if len(products) == 0 {
		return nil
	}
	ids := make([]uint, 0, len(products))
	for _, product := range products {
		ids = append(ids, product.ID)
	}
	summaries, err := s.ratingRepo.SummaryByProducts(ids)
	if err != nil {
		return err
	}
	for i := range products {
		if summary, ok := summaries[products[i].ID]; ok {
			products[i].RatingAvg = summary.Average
			products[i].RatingCount = summary.Count
		}
	}
	return nil
}
