package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/petmart-next/internal/cart"
	"github.com/petmart-next/internal/config"
	"github.com/petmart-next/internal/models"
	"github.com/petmart-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

var testDBSeq atomic.Int64

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:svc_%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Rating{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return db
}

func newCartTestService(t *testing.T, db *gorm.DB) *CartService {
	t.Helper()
	return NewCartService(
		repository.NewCartRepository(db),
		repository.NewProductRepository(db),
		cart.NewMemoryStore(),
		config.CartConfig{ShippingFlatFee: 5000, SessionKeyLength: 8},
	)
}

func seedProduct(t *testing.T, db *gorm.DB, id uint, price int64, stock int) *models.Product {
	t.Helper()
	product := &models.Product{
		ID:         id,
		CategoryID: 1,
		Slug:       fmt.Sprintf("producto-%d", id),
		Name:       fmt.Sprintf("宠物商品 %d", id),
		Price:      models.MoneyFromCents(price),
		Stock:      stock,
		Images:     models.StringArray{fmt.Sprintf("/img/%d.jpg", id)},
		IsActive:   true,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("seed product failed: %v", err)
	}
	return product
}

func TestCartServiceSessionAddAndGet(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	svc := newCartTestService(t, db)
	seedProduct(t, db, 1, 2000, 10)

	owner := SessionOwner("session-abc-123")
	view, err := svc.AddItem(ctx, owner, 1, 3)
	if err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	if view.ItemCount != 3 || view.Subtotal.Cents() != 6000 {
		t.Fatalf("unexpected view after add: %+v", view)
	}
	if view.Shipping.Cents() != 5000 || view.Total.Cents() != 11000 {
		t.Fatalf("unexpected totals: %+v", view)
	}

	// 重新读取会话快照
	got, err := svc.Get(ctx, owner)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(got.Items) != 1 || got.Items[0].Quantity != 3 {
		t.Fatalf("session cart not persisted: %+v", got.Items)
	}
}

func TestCartServiceUserCartSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	svc := newCartTestService(t, db)
	seedProduct(t, db, 1, 1500, 4)

	owner := UserOwner(7)
	if _, err := svc.AddItem(ctx, owner, 1, 2); err != nil {
		t.Fatalf("add item failed: %v", err)
	}

	// 新的服务实例模拟进程重启，状态应从数据库恢复
	restarted := newCartTestService(t, db)
	view, err := restarted.Get(ctx, owner)
	if err != nil {
		t.Fatalf("get after restart failed: %v", err)
	}
	if len(view.Items) != 1 || view.Items[0].Quantity != 2 || view.Items[0].UnitPrice != 1500 {
		t.Fatalf("user cart not restored: %+v", view.Items)
	}
}

func TestCartServiceAddOutOfStock(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	svc := newCartTestService(t, db)
	seedProduct(t, db, 1, 1000, 0)

	_, err := svc.AddItem(ctx, SessionOwner("session-abc-123"), 1, 1)
	if !errors.Is(err, cart.ErrOutOfStock) {
		t.Fatalf("expected ErrOutOfStock, got: %v", err)
	}
}

func TestCartServiceAddInactiveProduct(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	svc := newCartTestService(t, db)
	product := seedProduct(t, db, 1, 1000, 5)
	product.IsActive = false
	if err := db.Save(product).Error; err != nil {
		t.Fatalf("deactivate product failed: %v", err)
	}

	_, err := svc.AddItem(ctx, SessionOwner("session-abc-123"), 1, 1)
	if !errors.Is(err, ErrProductNotAvailable) {
		t.Fatalf("expected ErrProductNotAvailable, got: %v", err)
	}
}

func TestCartServiceSetQuantityAndRemove(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	svc := newCartTestService(t, db)
	seedProduct(t, db, 1, 1000, 5)
	seedProduct(t, db, 2, 700, 3)

	owner := UserOwner(3)
	if _, err := svc.AddItem(ctx, owner, 1, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, err := svc.AddItem(ctx, owner, 2, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	view, err := svc.SetQuantity(ctx, owner, 1, 99)
	if err != nil {
		t.Fatalf("set quantity failed: %v", err)
	}
	if view.Items[0].Quantity != 5 {
		t.Fatalf("expected quantity clamped to stock 5, got: %+v", view.Items[0])
	}

	view, err = svc.RemoveItem(ctx, owner, 2)
	if err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if len(view.Items) != 1 || view.Items[0].ProductID != 1 {
		t.Fatalf("unexpected items after remove: %+v", view.Items)
	}

	// 幂等：再次移除同一行不报错
	if _, err := svc.RemoveItem(ctx, owner, 2); err != nil {
		t.Fatalf("second remove failed: %v", err)
	}
}

func TestCartServiceMergeOnLogin(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	svc := newCartTestService(t, db)
	seedProduct(t, db, 1, 1000, 3)
	seedProduct(t, db, 2, 500, 8)

	userOwner := UserOwner(9)
	sessionOwner := SessionOwner("session-merge-001")

	// 服务端购物车：商品1 x2
	if _, err := svc.AddItem(ctx, userOwner, 1, 2); err != nil {
		t.Fatalf("seed user cart failed: %v", err)
	}
	// 匿名购物车：商品1 x2、商品2 x1
	if _, err := svc.AddItem(ctx, sessionOwner, 1, 2); err != nil {
		t.Fatalf("seed session cart failed: %v", err)
	}
	if _, err := svc.AddItem(ctx, sessionOwner, 2, 1); err != nil {
		t.Fatalf("seed session cart failed: %v", err)
	}

	view, err := svc.MergeOnLogin(ctx, 9, "session-merge-001")
	if err != nil {
		t.Fatalf("merge failed: %v", err)
	}
	if len(view.Items) != 2 {
		t.Fatalf("expected 2 merged lines, got: %+v", view.Items)
	}
	// 同商品数量相加后按库存收口：min(3, 2+2) = 3
	if view.Items[0].ProductID != 1 || view.Items[0].Quantity != 3 {
		t.Fatalf("unexpected merged line: %+v", view.Items[0])
	}
	if view.Items[1].ProductID != 2 || view.Items[1].Quantity != 1 {
		t.Fatalf("unexpected appended line: %+v", view.Items[1])
	}

	// 合并后会话快照应被丢弃
	sessionView, err := svc.Get(ctx, sessionOwner)
	if err != nil {
		t.Fatalf("get session after merge failed: %v", err)
	}
	if len(sessionView.Items) != 0 {
		t.Fatalf("session cart should be dropped after merge, got: %+v", sessionView.Items)
	}
}

func TestCartServiceValidSessionKey(t *testing.T) {
	svc := newCartTestService(t, newTestDB(t))
	if !svc.ValidSessionKey(svc.NewSessionKey()) {
		t.Fatal("generated session key should be valid")
	}
	if svc.ValidSessionKey("short") {
		t.Fatal("short key should be rejected")
	}
	if svc.ValidSessionKey("bad key with spaces!") {
		t.Fatal("key with invalid characters should be rejected")
	}
}
