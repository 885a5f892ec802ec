package service

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/petmart-next/internal/cart"
	"github.com/petmart-next/internal/constants"
	"github.com/petmart-next/internal/logger"
	"github.com/petmart-next/internal/models"
	"github.com/petmart-next/internal/queue"
	"github.com/petmart-next/internal/repository"

	"gorm.io/gorm"
)

// 订单状态机：仅允许表内列出的流转
var orderTransitions = map[string][]string{
	constants.OrderStatusPending: {constants.OrderStatusPaid, constants.OrderStatusCanceled},
	constants.OrderStatusPaid:    {constants.OrderStatusShipped, constants.OrderStatusCanceled},
	constants.OrderStatusShipped: {constants.OrderStatusDelivered},
}

func orderTransitionAllowed(from, to string) bool {
	for _, allowed := range orderTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// OrderService 订单服务
type OrderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	cartRepo    repository.CartRepository
	cartService *CartService
	queueClient *queue.Client
}

// NewOrderService 创建订单服务
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	cartRepo repository.CartRepository,
	cartService *CartService,
	queueClient *queue.Client,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		cartRepo:    cartRepo,
		cartService: cartService,
		queueClient: queueClient,
	}
}

// Checkout 从用户购物车创建订单。
// 购物车内的价格与库存只是快照，这里以商品表为准重新校验：
// 价格以当前价结算，库存不足直接失败，购物车保持原样由用户调整。
func (s *OrderService) Checkout(ctx context.Context, userID uint, form cart.CheckoutForm) (*models.Order, error) {
	if userID == 0 {
		return nil, ErrInvalidParams
	}
	if err := validateCheckoutForm(&form); err != nil {
		return nil, err
	}

	// 从装配到清空购物车全程持有归属锁：并发的购物车写入
	// 要么在下单前生效、要么排队到清空之后，不会被清空吞掉
	owner := UserOwner(userID)
	unlock := s.cartService.lockOwner(owner)
	defer unlock()

	state, err := s.cartService.load(ctx, owner)
	if err != nil {
		return nil, err
	}
	payload, err := cart.AssembleOrder(userID, state, s.cartService.ShippingFee(), form)
	if err != nil {
		return nil, err
	}

	products, err := s.productRepo.ListByIDs(payloadProductIDs(payload))
	if err != nil {
		return nil, err
	}
	productByID := make(map[uint]models.Product, len(products))
	for _, product := range products {
		productByID[product.ID] = product
	}

	now := time.Now()
	order := &models.Order{
		OrderNo:         generateOrderNo(now),
		UserID:          userID,
		Status:          constants.OrderStatusPending,
		ShippingFee:     models.MoneyFromCents(payload.ShippingFee),
		DeliveryAddress: payload.DeliveryAddress,
		City:            payload.City,
		Region:          payload.Region,
		Country:         payload.Country,
		ContactPhone:    payload.ContactPhone,
		PaymentMethod:   payload.PaymentMethod,
		Note:            payload.Note,
	}

	var lowStock []queue.LowStockAlertPayload
	err = s.orderRepo.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		productRepo := s.productRepo.WithTx(tx)
		cartRepo := s.cartRepo.WithTx(tx)

		var subtotal int64
		items := make([]models.OrderItem, 0, len(payload.Items))
		for _, payloadItem := range payload.Items {
			product, ok := productByID[payloadItem.ProductID]
			if !ok || !product.IsActive {
				return ErrProductNotAvailable
			}
			affected, err := productRepo.DecrementStock(payloadItem.ProductID, payloadItem.Quantity)
			if err != nil {
				return err
			}
			if affected == 0 {
				return ErrStockChanged
			}
			unitPrice := product.Price.Cents()
			lineTotal := unitPrice * int64(payloadItem.Quantity)
			subtotal += lineTotal

			image := ""
			if len(product.Images) > 0 {
				image = product.Images[0]
			}
			items = append(items, models.OrderItem{
				ProductID:  payloadItem.ProductID,
				Name:       product.Name,
				Image:      image,
				UnitPrice:  models.MoneyFromCents(unitPrice),
				Quantity:   payloadItem.Quantity,
				TotalPrice: models.MoneyFromCents(lineTotal),
			})

			if remaining := product.Stock - payloadItem.Quantity; remaining <= constants.LowStockThreshold {
				lowStock = append(lowStock, queue.LowStockAlertPayload{ProductID: product.ID, Stock: remaining})
			}
		}

		order.Subtotal = models.MoneyFromCents(subtotal)
		order.TotalAmount = models.MoneyFromCents(subtotal + payload.ShippingFee)
		order.Items = items
		if err := orderRepo.Create(order); err != nil {
			return err
		}
		return cartRepo.ClearByUser(userID)
	})
	if err != nil {
		return nil, err
	}

	if err := s.queueClient.EnqueueOrderConfirmEmail(queue.OrderConfirmEmailPayload{OrderID: order.ID}); err != nil {
		logger.Warnw("order_confirm_email_enqueue_failed", "order_no", order.OrderNo, "error", err)
	}
	for _, alert := range lowStock {
		if err := s.queueClient.EnqueueLowStockAlert(alert); err != nil {
			logger.Warnw("low_stock_alert_enqueue_failed", "product_id", alert.ProductID, "error", err)
		}
	}

	return order, nil
}

// ListByUser 用户订单列表
func (s *OrderService) ListByUser(userID uint, page, pageSize int, status string) ([]models.Order, int64, error) {
	if userID == 0 {
		return nil, 0, ErrInvalidParams
	}
	return s.orderRepo.List(repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   userID,
		Status:   status,
	})
}

// GetForUser 获取用户订单详情
func (s *OrderService) GetForUser(orderNo string, userID uint) (*models.Order, error) {
	if userID == 0 || strings.TrimSpace(orderNo) == "" {
		return nil, ErrInvalidParams
	}
	order, err := s.orderRepo.GetByOrderNoForUser(orderNo, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// CancelByUser 用户取消待支付订单并回补库存
func (s *OrderService) CancelByUser(orderNo string, userID uint) (*models.Order, error) {
	order, err := s.GetForUser(orderNo, userID)
	if err != nil {
		return nil, err
	}
	return s.cancel(order)
}

// List 订单列表（后台）
func (s *OrderService) List(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.List(filter)
}

// GetByOrderNo 根据订单号获取订单（后台）
func (s *OrderService) GetByOrderNo(orderNo string) (*models.Order, error) {
	order, err := s.orderRepo.GetByOrderNo(orderNo)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// UpdateStatus 后台订单状态流转
func (s *OrderService) UpdateStatus(orderNo, toStatus string) (*models.Order, error) {
	order, err := s.GetByOrderNo(orderNo)
	if err != nil {
		return nil, err
	}
	if toStatus == constants.OrderStatusCanceled {
		return s.cancel(order)
	}
	if !orderTransitionAllowed(order.Status, toStatus) {
		return nil, ErrOrderStatusInvalid
	}

	updates := map[string]interface{}{}
	if toStatus == constants.OrderStatusPaid {
		updates["paid_at"] = time.Now()
	}
	affected, err := s.orderRepo.UpdateStatus(order.ID, order.Status, toStatus, updates)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrOrderStatusInvalid
	}
	return s.orderRepo.GetByOrderNo(orderNo)
}

// cancel 取消订单并回补库存（仅限待支付/已支付）
func (s *OrderService) cancel(order *models.Order) (*models.Order, error) {
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if !orderTransitionAllowed(order.Status, constants.OrderStatusCanceled) {
		return nil, ErrOrderStatusInvalid
	}

	err := s.orderRepo.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		productRepo := s.productRepo.WithTx(tx)

		affected, err := orderRepo.UpdateStatus(order.ID, order.Status, constants.OrderStatusCanceled, map[string]interface{}{
			"canceled_at": time.Now(),
		})
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrOrderStatusInvalid
		}
		for _, item := range order.Items {
			if _, err := productRepo.RestoreStock(item.ProductID, item.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.orderRepo.GetByOrderNo(order.OrderNo)
}

func validateCheckoutForm(form *cart.CheckoutForm) error {
	if strings.TrimSpace(form.DeliveryAddress) == "" || strings.TrimSpace(form.ContactPhone) == "" {
		return ErrCheckoutFormInvalid
	}
	method := strings.TrimSpace(form.PaymentMethod)
	switch method {
	case constants.PaymentMethodCash, constants.PaymentMethodCard, constants.PaymentMethodTransfer:
		return nil
	default:
		return ErrPaymentMethodInvalid
	}
}

func payloadProductIDs(payload *cart.OrderPayload) []uint {
	ids := make([]uint, 0, len(payload.Items))
	for _, item := range payload.Items {
		ids = append(ids, item.ProductID)
	}
	return ids
}

// generateOrderNo 生成订单号：PM + 时间戳 + 随机尾号
func generateOrderNo(now time.Time) string {
	return fmt.Sprintf("PM%s%04d", now.Format("20060102150405"), rand.Intn(10000))
}
