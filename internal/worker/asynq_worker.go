package worker

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/petmart-next/internal/logger"
	"github.com/petmart-next/internal/provider"
	"github.com/petmart-next/internal/queue"
	"github.com/petmart-next/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderConfirmEmail, c.handleOrderConfirmEmail)
	mux.HandleFunc(queue.TaskLowStockAlert, c.handleLowStockAlert)
}

func (c *Consumer) handleOrderConfirmEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_confirm_email_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderConfirmEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_confirm_email_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_order_confirm_email_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}

	order, err := c.OrderRepo.GetByID(strconv.FormatUint(uint64(payload.OrderID), 10))
	if err != nil {
		logger.Warnw("worker_order_confirm_email_fetch_order_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	if order == nil {
		logger.Debugw("worker_order_confirm_email_skip_order_not_found", "order_id", payload.OrderID)
		return nil
	}
	user, err := c.UserRepo.GetByID(order.UserID)
	if err != nil {
		logger.Warnw("worker_order_confirm_email_fetch_user_failed", "order_id", order.ID, "user_id", order.UserID, "error", err)
		return err
	}
	if user == nil || strings.TrimSpace(user.Email) == "" {
		logger.Debugw("worker_order_confirm_email_skip_empty_receiver", "order_id", order.ID, "order_no", order.OrderNo)
		return nil
	}

	itemCount := 0
	for _, item := range order.Items {
		itemCount += item.Quantity
	}
	input := service.OrderConfirmEmailInput{
		OrderNo:     order.OrderNo,
		TotalAmount: order.TotalAmount,
		ItemCount:   itemCount,
		Address:     order.DeliveryAddress,
	}
	if err := c.EmailService.SendOrderConfirmEmail(user.Email, input); err != nil {
		if errors.Is(err, service.ErrEmailServiceDisabled) || errors.Is(err, service.ErrEmailServiceNotConfigured) {
			logger.Debugw("worker_order_confirm_email_skip_email_disabled", "order_no", order.OrderNo)
			return nil
		}
		logger.Warnw("worker_order_confirm_email_send_failed",
			"order_id", order.ID,
			"order_no", order.OrderNo,
			"receiver_email", user.Email,
			"error", err,
		)
		return err
	}
	return nil
}

// handleLowStockAlert 低库存提醒发往商家配置的发件邮箱
func (c *Consumer) handleLowStockAlert(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_low_stock_alert_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.LowStockAlertPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_low_stock_alert_unmarshal_failed", "error", err)
		return err
	}
	if payload.ProductID == 0 {
		logger.Debugw("worker_low_stock_alert_skip_invalid_payload", "product_id", payload.ProductID)
		return nil
	}

	product, err := c.ProductRepo.GetByID(strconv.FormatUint(uint64(payload.ProductID), 10))
	if err != nil {
		logger.Warnw("worker_low_stock_alert_fetch_product_failed", "product_id", payload.ProductID, "error", err)
		return err
	}
	if product == nil {
		logger.Debugw("worker_low_stock_alert_skip_product_not_found", "product_id", payload.ProductID)
		return nil
	}

	receiver := strings.TrimSpace(c.Config.Email.From)
	if receiver == "" {
		logger.Debugw("worker_low_stock_alert_skip_empty_receiver", "product_id", product.ID)
		return nil
	}
	if err := c.EmailService.SendLowStockAlert(receiver, product.Name, payload.Stock); err != nil {
		if errors.Is(err, service.ErrEmailServiceDisabled) || errors.Is(err, service.ErrEmailServiceNotConfigured) {
			logger.Debugw("worker_low_stock_alert_skip_email_disabled", "product_id", product.ID)
			return nil
		}
		logger.Warnw("worker_low_stock_alert_send_failed", "product_id", product.ID, "error", err)
		return err
	}
	return nil
}
