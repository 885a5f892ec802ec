package queue

import (
	"encoding/json"

	"github.com/petmart-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderConfirmEmail 下单确认邮件任务
	TaskOrderConfirmEmail = constants.TaskOrderConfirmEmail
	// TaskLowStockAlert 低库存提醒任务
	TaskLowStockAlert = constants.TaskLowStockAlert
)

// OrderConfirmEmailPayload 下单确认邮件任务载荷
type OrderConfirmEmailPayload struct {
	OrderID uint `json:"order_id"`
}

// LowStockAlertPayload 低库存提醒任务载荷
type LowStockAlertPayload struct {
	ProductID uint `json:"product_id"`
	Stock     int  `json:"stock"`
}

// NewOrderConfirmEmailTask 创建下单确认邮件任务
func NewOrderConfirmEmailTask(payload OrderConfirmEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderConfirmEmail, body), nil
}

// NewLowStockAlertTask 创建低库存提醒任务
func NewLowStockAlertTask(payload LowStockAlertPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLowStockAlert, body), nil
}
