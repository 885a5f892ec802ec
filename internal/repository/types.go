package repository

import "time"

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	Page         int
	PageSize     int
	CategoryID   string
	PetKind      string
	Brand        string
	Search       string
	OnlyActive   bool
	OnlyInStock  bool
	WithCategory bool
	OrderBy      string
}

// BannerListFilter 查询 Banner 列表的过滤条件
type BannerListFilter struct {
	Page      int
	PageSize  int
	Search    string
	IsActive  *bool
	OnlyValid bool
}

// RatingListFilter 查询评分列表的过滤条件
type RatingListFilter struct {
	Page      int
	PageSize  int
	ProductID uint
	UserID    uint
	MinScore  int
}

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	Page        int
	PageSize    int
	UserID      uint
	Status      string
	OrderNo     string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// UserListFilter 查询用户列表的过滤条件
type UserListFilter struct {
	Page        int
	PageSize    int
	Keyword     string
	Status      string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// RatingSummary 商品评分汇总
type RatingSummary struct {
	ProductID uint    `json:"product_id"`
	Average   float64 `json:"average"`
	Count     int64   `json:"count"`
}
