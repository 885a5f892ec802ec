package constants

// 订单状态常量
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCanceled  = "canceled"
)

// 支付方式常量（仅作为订单载荷的透传字段，不做网关对接）
const (
	PaymentMethodCash     = "cash"
	PaymentMethodCard     = "card"
	PaymentMethodTransfer = "transfer"
)

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 队列与任务名称常量
const (
	QueueDefault = "default"

	TaskOrderConfirmEmail = "order:confirm_email"
	TaskLowStockAlert     = "stock:low_alert"
)

// 购物车常量
const (
	// CartSnapshotVersion 持久化快照版本号，解析到未知版本时按损坏处理
	CartSnapshotVersion = 1
	// CartSessionHeader 匿名购物车会话标识请求头
	CartSessionHeader = "X-Cart-Session"
)

// 评分常量
const (
	RatingScoreMin = 1
	RatingScoreMax = 5
)

// LowStockThreshold 低库存告警阈值
const LowStockThreshold = 5
