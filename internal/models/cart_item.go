package models

import (
	"time"

	"gorm.io/gorm"
)

// CartItem 登录用户购物车项。
// name/unit_price/stock_available 为加入时的商品快照，后续不随商品变动刷新，
// 下单时由订单服务以商品表为准重新校验。
type CartItem struct {
	ID             uint           `gorm:"primarykey" json:"id"`                                         // 主键
	UserID         uint           `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"user_id"`    // 用户ID
	ProductID      uint           `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"product_id"` // 商品ID
	Name           string         `gorm:"type:varchar(200);not null" json:"name"`                       // 商品名称快照
	Image          string         `gorm:"type:varchar(500)" json:"image"`                               // 商品主图快照
	UnitPrice      Money          `gorm:"not null;default:0" json:"unit_price"`                         // 单价快照（最小货币单位）
	StockAvailable int            `gorm:"not null;default:0" json:"stock_available"`                    // 库存快照
	Quantity       int            `gorm:"not null" json:"quantity"`                                     // 数量
	SortOrder      int            `gorm:"not null;default:0" json:"-"`                                  // 行序（保持加入顺序展示）
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`                                      // 创建时间
	UpdatedAt      time.Time      `gorm:"index" json:"updated_at"`                                      // 更新时间
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`                                               // 软删除时间
}

// TableName 指定表名
func (CartItem) TableName() string {
	return "cart_items"
}
