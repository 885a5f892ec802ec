package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表
type Order struct {
	ID              uint           `gorm:"primarykey" json:"id"`                           // 主键
	OrderNo         string         `gorm:"uniqueIndex;not null" json:"order_no"`           // 订单编号
	UserID          uint           `gorm:"index;not null" json:"user_id"`                  // 用户ID
	Status          string         `gorm:"index;not null" json:"status"`                   // 订单状态
	Subtotal        Money          `gorm:"not null;default:0" json:"subtotal"`             // 商品小计
	ShippingFee     Money          `gorm:"not null;default:0" json:"shipping_fee"`         // 运费
	TotalAmount     Money          `gorm:"not null;default:0" json:"total_amount"`         // 实付金额
	DeliveryAddress string         `gorm:"type:varchar(500);not null" json:"delivery_address"` // 收货地址
	City            string         `gorm:"type:varchar(120)" json:"city"`                  // 城市
	Region          string         `gorm:"type:varchar(120)" json:"region"`                // 省/州
	Country         string         `gorm:"type:varchar(120)" json:"country"`               // 国家
	ContactPhone    string         `gorm:"type:varchar(40);not null" json:"contact_phone"` // 联系电话
	PaymentMethod   string         `gorm:"type:varchar(40);not null" json:"payment_method"` // 支付方式（透传）
	Note            string         `gorm:"type:varchar(1000)" json:"note"`                 // 备注
	PaidAt          *time.Time     `gorm:"index" json:"paid_at"`                           // 支付时间
	CanceledAt      *time.Time     `gorm:"index" json:"canceled_at"`                       // 取消时间
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`                        // 创建时间
	UpdatedAt       time.Time      `gorm:"index" json:"updated_at"`                        // 更新时间
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`                                 // 软删除时间

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"` // 订单项
	User  *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`   // 下单用户
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
