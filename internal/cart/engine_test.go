package cart

import (
	"errors"
	"testing"
)

func testProduct(id uint, price int64, stock int) ProductInfo {
	return ProductInfo{ID: id, Name: "测试商品", Price: price, Stock: stock}
}

func assertInvariant(t *testing.T, s *State) {
	t.Helper()
	for _, line := range s.Lines() {
		if line.Quantity < 1 || line.Quantity > line.StockAvailable {
			t.Fatalf("quantity invariant violated: qty=%d stock=%d", line.Quantity, line.StockAvailable)
		}
	}
}

func TestEngineAddItem(t *testing.T) {
	e := NewEngine(NewState(), 0)
	if err := e.AddItem(testProduct(1, 1000, 5), 3); err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	if e.State().Len() != 1 {
		t.Fatalf("expected 1 line, got: %d", e.State().Len())
	}
	line, ok := e.State().Get(1)
	if !ok || line.Quantity != 3 {
		t.Fatalf("expected quantity 3, got: %+v", line)
	}
	d := e.Derived()
	if d.Subtotal != 3000 {
		t.Fatalf("expected subtotal 3000, got: %d", d.Subtotal)
	}
	assertInvariant(t, e.State())
}

func TestEngineAddItemClampsToStoredStock(t *testing.T) {
	e := NewEngine(NewState(), 0)
	if err := e.AddItem(testProduct(1, 1000, 5), 3); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	// 二次加购按已存行项目的库存快照钳制，而非重新查询
	if err := e.AddItem(testProduct(1, 1000, 99), 4); err != nil {
		t.Fatalf("second add failed: %v", err)
	}
	line, _ := e.State().Get(1)
	if line.Quantity != 5 {
		t.Fatalf("expected quantity clamped to 5, got: %d", line.Quantity)
	}
	if d := e.Derived(); d.Subtotal != 5000 {
		t.Fatalf("expected subtotal 5000, got: %d", d.Subtotal)
	}
	assertInvariant(t, e.State())
}

func TestEngineAddItemOutOfStock(t *testing.T) {
	e := NewEngine(NewState(), 0)
	err := e.AddItem(testProduct(1, 1000, 0), 1)
	if !errors.Is(err, ErrOutOfStock) {
		t.Fatalf("expected ErrOutOfStock, got: %v", err)
	}
	if e.State().Len() != 0 {
		t.Fatalf("cart should stay empty, got %d lines", e.State().Len())
	}
}

func TestEngineAddItemOutOfStockWithExistingLine(t *testing.T) {
	// 购物车里已有该商品时，传入库存为 0 的加购同样拒绝且不改动已有行项目
	e := NewEngine(NewState(), 0)
	if err := e.AddItem(testProduct(1, 1000, 5), 2); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	if err := e.AddItem(testProduct(1, 1000, 0), 1); !errors.Is(err, ErrOutOfStock) {
		t.Fatalf("expected ErrOutOfStock, got: %v", err)
	}
	line, ok := e.State().Get(1)
	if !ok || line.Quantity != 2 {
		t.Fatalf("existing line should stay unchanged, got: %+v", line)
	}
	assertInvariant(t, e.State())
}

func TestEngineAddItemZeroQuantityNoop(t *testing.T) {
	e := NewEngine(NewState(), 0)
	if err := e.AddItem(testProduct(1, 1000, 5), 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := e.AddItem(testProduct(1, 1000, 5), -2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.State().Len() != 0 {
		t.Fatalf("expected empty cart, got %d lines", e.State().Len())
	}
}

func TestEngineRemoveItemIdempotent(t *testing.T) {
	e := NewEngine(NewState(), 0)
	if err := e.AddItem(testProduct(1, 1000, 5), 2); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := e.AddItem(testProduct(2, 500, 3), 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	e.RemoveItem(1)
	first := e.State().Lines()
	e.RemoveItem(1)
	second := e.State().Lines()
	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("expected 1 remaining line, got: %d / %d", len(first), len(second))
	}
	if first[0].ProductID != 2 || second[0].ProductID != 2 {
		t.Fatalf("wrong remaining line: %+v", second[0])
	}
}

func TestEngineSetQuantityClampsBelowOne(t *testing.T) {
	// 前端个别调用点期望减到 0 即删除；引擎契约是收口为 1 而非删除，
	// 该差异为既定行为，由本测试固定。
	e := NewEngine(NewState(), 0)
	if err := e.AddItem(testProduct(1, 1000, 5), 3); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	e.SetQuantity(1, -1)
	line, ok := e.State().Get(1)
	if !ok {
		t.Fatal("line should not be removed")
	}
	if line.Quantity != 1 {
		t.Fatalf("expected quantity clamped to 1, got: %d", line.Quantity)
	}
	assertInvariant(t, e.State())
}

func TestEngineSetQuantityClampsToStock(t *testing.T) {
	e := NewEngine(NewState(), 0)
	if err := e.AddItem(testProduct(1, 1000, 5), 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	e.SetQuantity(1, 10)
	line, _ := e.State().Get(1)
	if line.Quantity != 5 {
		t.Fatalf("expected quantity clamped to 5, got: %d", line.Quantity)
	}
	e.SetQuantity(99, 3) // 不存在的行项目：空操作
	if e.State().Len() != 1 {
		t.Fatalf("expected 1 line, got: %d", e.State().Len())
	}
}

func TestEngineDerivedShipping(t *testing.T) {
	e := NewEngine(NewState(), 5000)
	if d := e.Derived(); d.Shipping != 0 || d.Total != 0 {
		t.Fatalf("empty cart should have zero shipping and total, got: %+v", d)
	}
	if err := e.AddItem(testProduct(1, 2500, 10), 4); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	d := e.Derived()
	if d.Subtotal != 10000 {
		t.Fatalf("expected subtotal 10000, got: %d", d.Subtotal)
	}
	if d.Shipping != 5000 {
		t.Fatalf("expected flat shipping 5000, got: %d", d.Shipping)
	}
	if d.Total != 15000 {
		t.Fatalf("expected total 15000, got: %d", d.Total)
	}
	if d.ItemCount != 4 {
		t.Fatalf("expected item count 4, got: %d", d.ItemCount)
	}
}

func TestEngineDerivedRecomputedAfterEveryMutation(t *testing.T) {
	e := NewEngine(NewState(), 1000)
	if err := e.AddItem(testProduct(1, 300, 9), 2); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := e.AddItem(testProduct(2, 700, 4), 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if d := e.Derived(); d.Subtotal != 1300 || d.Total != 2300 {
		t.Fatalf("unexpected derived: %+v", d)
	}
	e.SetQuantity(1, 3)
	if d := e.Derived(); d.Subtotal != 1600 || d.ItemCount != 4 {
		t.Fatalf("unexpected derived after set quantity: %+v", d)
	}
	e.RemoveItem(2)
	if d := e.Derived(); d.Subtotal != 900 || d.Total != 1900 {
		t.Fatalf("unexpected derived after remove: %+v", d)
	}
	e.Clear()
	if d := e.Derived(); d.Subtotal != 0 || d.Shipping != 0 || d.Total != 0 {
		t.Fatalf("unexpected derived after clear: %+v", d)
	}
}

func TestEnginePreservesInsertionOrder(t *testing.T) {
	e := NewEngine(NewState(), 0)
	for _, id := range []uint{3, 1, 2} {
		if err := e.AddItem(testProduct(id, 100, 5), 1); err != nil {
			t.Fatalf("add failed: %v", err)
		}
	}
	e.RemoveItem(1)
	lines := e.State().Lines()
	if len(lines) != 2 || lines[0].ProductID != 3 || lines[1].ProductID != 2 {
		t.Fatalf("insertion order not preserved: %+v", lines)
	}
	// 删除后索引仍然一致
	if _, ok := e.State().Get(2); !ok {
		t.Fatal("line 2 should be reachable after removal of line 1")
	}
}
