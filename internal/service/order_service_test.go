package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/petmart-next/internal/cart"
	"github.com/petmart-next/internal/config"
	"github.com/petmart-next/internal/constants"
	"github.com/petmart-next/internal/models"
	"github.com/petmart-next/internal/queue"
	"github.com/petmart-next/internal/repository"

	"gorm.io/gorm"
)

func newOrderTestServices(t *testing.T, db *gorm.DB) (*CartService, *OrderService) {
	t.Helper()
	cartService := newCartTestService(t, db)
	queueClient, err := queue.NewClient(&config.QueueConfig{Enabled: false})
	if err != nil {
		t.Fatalf("new queue client failed: %v", err)
	}
	orderService := NewOrderService(
		repository.NewOrderRepository(db),
		repository.NewProductRepository(db),
		repository.NewCartRepository(db),
		cartService,
		queueClient,
	)
	return cartService, orderService
}

func checkoutForm() cart.CheckoutForm {
	return cart.CheckoutForm{
		DeliveryAddress: "Av. Mariscal López 1234",
		City:            "Asunción",
		Country:         "PY",
		ContactPhone:    "+595981123456",
		PaymentMethod:   constants.PaymentMethodCash,
	}
}

func TestOrderServiceCheckout(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	cartService, orderService := newOrderTestServices(t, db)
	seedProduct(t, db, 1, 2000, 10)
	seedProduct(t, db, 2, 4000, 5)

	owner := UserOwner(1)
	if _, err := cartService.AddItem(ctx, owner, 1, 3); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, err := cartService.AddItem(ctx, owner, 2, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	order, err := orderService.Checkout(ctx, 1, checkoutForm())
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if order.OrderNo == "" || order.Status != constants.OrderStatusPending {
		t.Fatalf("unexpected order: %+v", order)
	}
	if order.Subtotal.Cents() != 10000 || order.ShippingFee.Cents() != 5000 || order.TotalAmount.Cents() != 15000 {
		t.Fatalf("unexpected amounts: subtotal=%d shipping=%d total=%d",
			order.Subtotal.Cents(), order.ShippingFee.Cents(), order.TotalAmount.Cents())
	}
	if len(order.Items) != 2 {
		t.Fatalf("expected 2 order items, got: %d", len(order.Items))
	}

	// 库存已扣减
	var product models.Product
	if err := db.First(&product, 1).Error; err != nil {
		t.Fatalf("load product failed: %v", err)
	}
	if product.Stock != 7 {
		t.Fatalf("expected stock 7 after checkout, got: %d", product.Stock)
	}

	// 购物车已清空
	view, err := cartService.Get(ctx, owner)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if len(view.Items) != 0 {
		t.Fatalf("cart should be cleared after checkout, got: %+v", view.Items)
	}
}

// blockingOrderRepo 在进入事务前阻塞，用于观察下单临界区内的并发行为
type blockingOrderRepo struct {
	repository.OrderRepository
	entered chan struct{}
	release chan struct{}
}

func (r *blockingOrderRepo) Transaction(fn func(tx *gorm.DB) error) error {
	close(r.entered)
	<-r.release
	return r.OrderRepository.Transaction(fn)
}

func TestOrderServiceCheckoutSerializesCartWrites(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	cartService := newCartTestService(t, db)
	blocking := &blockingOrderRepo{
		OrderRepository: repository.NewOrderRepository(db),
		entered:         make(chan struct{}),
		release:         make(chan struct{}),
	}
	queueClient, err := queue.NewClient(&config.QueueConfig{Enabled: false})
	if err != nil {
		t.Fatalf("new queue client failed: %v", err)
	}
	orderService := NewOrderService(
		blocking,
		repository.NewProductRepository(db),
		repository.NewCartRepository(db),
		cartService,
		queueClient,
	)
	seedProduct(t, db, 1, 2000, 10)
	seedProduct(t, db, 2, 3000, 10)

	owner := UserOwner(1)
	if _, err := cartService.AddItem(ctx, owner, 1, 2); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	checkoutDone := make(chan error, 1)
	go func() {
		_, err := orderService.Checkout(ctx, 1, checkoutForm())
		checkoutDone <- err
	}()
	<-blocking.entered

	// 下单进行中的加购必须排队到购物车清空之后，而不是被清空吞掉
	addDone := make(chan error, 1)
	go func() {
		_, err := cartService.AddItem(ctx, owner, 2, 1)
		addDone <- err
	}()
	select {
	case <-addDone:
		t.Fatal("add item should wait for checkout to release the cart")
	case <-time.After(50 * time.Millisecond):
	}

	close(blocking.release)
	if err := <-checkoutDone; err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if err := <-addDone; err != nil {
		t.Fatalf("add item failed: %v", err)
	}

	view, err := cartService.Get(ctx, owner)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if len(view.Items) != 1 || view.Items[0].ProductID != 2 || view.Items[0].Quantity != 1 {
		t.Fatalf("queued add should survive the checkout clear, got: %+v", view.Items)
	}
}

func TestOrderServiceCheckoutEmptyCart(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	_, orderService := newOrderTestServices(t, db)

	_, err := orderService.Checkout(ctx, 1, checkoutForm())
	if !errors.Is(err, cart.ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got: %v", err)
	}
}

func TestOrderServiceCheckoutStockChanged(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	cartService, orderService := newOrderTestServices(t, db)
	product := seedProduct(t, db, 1, 2000, 5)

	owner := UserOwner(1)
	if _, err := cartService.AddItem(ctx, owner, 1, 4); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	// 下单前库存被其他订单买走
	product.Stock = 2
	if err := db.Save(product).Error; err != nil {
		t.Fatalf("update stock failed: %v", err)
	}

	_, err := orderService.Checkout(ctx, 1, checkoutForm())
	if !errors.Is(err, ErrStockChanged) {
		t.Fatalf("expected ErrStockChanged, got: %v", err)
	}

	// 失败后购物车保持原样，库存不被扣减
	view, err := cartService.Get(ctx, owner)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if len(view.Items) != 1 || view.Items[0].Quantity != 4 {
		t.Fatalf("cart should stay intact after failed checkout: %+v", view.Items)
	}
	var reloaded models.Product
	if err := db.First(&reloaded, 1).Error; err != nil {
		t.Fatalf("load product failed: %v", err)
	}
	if reloaded.Stock != 2 {
		t.Fatalf("stock should be untouched, got: %d", reloaded.Stock)
	}
}

func TestOrderServiceCheckoutInvalidForm(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	cartService, orderService := newOrderTestServices(t, db)
	seedProduct(t, db, 1, 2000, 5)
	if _, err := cartService.AddItem(ctx, UserOwner(1), 1, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	form := checkoutForm()
	form.DeliveryAddress = "  "
	if _, err := orderService.Checkout(ctx, 1, form); !errors.Is(err, ErrCheckoutFormInvalid) {
		t.Fatalf("expected ErrCheckoutFormInvalid, got: %v", err)
	}

	form = checkoutForm()
	form.PaymentMethod = "bitcoin"
	if _, err := orderService.Checkout(ctx, 1, form); !errors.Is(err, ErrPaymentMethodInvalid) {
		t.Fatalf("expected ErrPaymentMethodInvalid, got: %v", err)
	}
}

func TestOrderServiceCancelRestoresStock(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	cartService, orderService := newOrderTestServices(t, db)
	seedProduct(t, db, 1, 2000, 5)

	if _, err := cartService.AddItem(ctx, UserOwner(1), 1, 3); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	order, err := orderService.Checkout(ctx, 1, checkoutForm())
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	canceled, err := orderService.CancelByUser(order.OrderNo, 1)
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if canceled.Status != constants.OrderStatusCanceled || canceled.CanceledAt == nil {
		t.Fatalf("unexpected canceled order: %+v", canceled)
	}

	var product models.Product
	if err := db.First(&product, 1).Error; err != nil {
		t.Fatalf("load product failed: %v", err)
	}
	if product.Stock != 5 {
		t.Fatalf("expected stock restored to 5, got: %d", product.Stock)
	}

	// 已取消订单不允许再次取消
	if _, err := orderService.CancelByUser(order.OrderNo, 1); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected ErrOrderStatusInvalid, got: %v", err)
	}
}

func TestOrderServiceStatusTransitions(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	cartService, orderService := newOrderTestServices(t, db)
	seedProduct(t, db, 1, 2000, 5)
	if _, err := cartService.AddItem(ctx, UserOwner(1), 1, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	order, err := orderService.Checkout(ctx, 1, checkoutForm())
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	// pending 不能直接发货
	if _, err := orderService.UpdateStatus(order.OrderNo, constants.OrderStatusShipped); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected ErrOrderStatusInvalid, got: %v", err)
	}

	paid, err := orderService.UpdateStatus(order.OrderNo, constants.OrderStatusPaid)
	if err != nil {
		t.Fatalf("mark paid failed: %v", err)
	}
	if paid.Status != constants.OrderStatusPaid || paid.PaidAt == nil {
		t.Fatalf("unexpected paid order: %+v", paid)
	}

	shipped, err := orderService.UpdateStatus(order.OrderNo, constants.OrderStatusShipped)
	if err != nil {
		t.Fatalf("mark shipped failed: %v", err)
	}
	delivered, err := orderService.UpdateStatus(shipped.OrderNo, constants.OrderStatusDelivered)
	if err != nil {
		t.Fatalf("mark delivered failed: %v", err)
	}
	if delivered.Status != constants.OrderStatusDelivered {
		t.Fatalf("unexpected status: %s", delivered.Status)
	}

	// 已送达订单不能取消
	if _, err := orderService.UpdateStatus(delivered.OrderNo, constants.OrderStatusCanceled); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected ErrOrderStatusInvalid, got: %v", err)
	}
}

func TestOrderServiceGetForUserScoped(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	cartService, orderService := newOrderTestServices(t, db)
	seedProduct(t, db, 1, 2000, 5)
	if _, err := cartService.AddItem(ctx, UserOwner(1), 1, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	order, err := orderService.Checkout(ctx, 1, checkoutForm())
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	// 其他用户不能读取该订单
	if _, err := orderService.GetForUser(order.OrderNo, 2); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound for another user, got: %v", err)
	}
	got, err := orderService.GetForUser(order.OrderNo, 1)
	if err != nil {
		t.Fatalf("get for owner failed: %v", err)
	}
	if got.OrderNo != order.OrderNo {
		t.Fatalf("unexpected order: %+v", got)
	}
}
