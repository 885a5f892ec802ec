package models

import (
	"time"

	"gorm.io/gorm"
)

// Rating 商品评分表（同一用户对同一商品仅保留一条）
type Rating struct {
	ID        uint           `gorm:"primarykey" json:"id"`                                         // 主键
	UserID    uint           `gorm:"not null;uniqueIndex:idx_rating_user_product" json:"user_id"`  // 用户ID
	ProductID uint           `gorm:"not null;uniqueIndex:idx_rating_user_product" json:"product_id"` // 商品ID
	Score     int            `gorm:"not null" json:"score"`                                        // 评分（1-5）
	Comment   string         `gorm:"type:varchar(1000)" json:"comment"`                            // 评价内容
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                                      // 创建时间
	UpdatedAt time.Time      `json:"updated_at"`                                                   // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                                               // 软删除时间

	User    *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`       // 评价用户
	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 关联商品
}

// TableName 指定表名
func (Rating) TableName() string {
	return "ratings"
}
