package cart

import (
	"context"
	"reflect"
	"testing"
)

func TestSnapshotRoundTrip(t *testing.T) {
	state := NewStateFromLines([]Line{
		{ProductID: 1, Name: "猫砂", Image: "/img/litter.jpg", UnitPrice: 3500, StockAvailable: 8, Quantity: 2},
		{ProductID: 2, Name: "狗粮", UnitPrice: 12000, StockAvailable: 3, Quantity: 3},
	})
	data, err := EncodeSnapshot(state)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	decoded, err := DecodeSnapshot(data)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !reflect.DeepEqual(state.Lines(), decoded.Lines()) {
		t.Fatalf("round trip drifted:\n want %+v\n got  %+v", state.Lines(), decoded.Lines())
	}
}

func TestSnapshotRejectsUnknownVersion(t *testing.T) {
	if _, err := DecodeSnapshot([]byte(`{"version":99,"items":[]}`)); err == nil {
		t.Fatal("expected unknown version error")
	}
	if _, err := DecodeSnapshot([]byte(`not json`)); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	state := NewStateFromLines([]Line{
		{ProductID: 7, Name: "磨牙棒", UnitPrice: 900, StockAvailable: 20, Quantity: 5},
	})
	store.Save(ctx, "sess-1", state)
	loaded := store.Load(ctx, "sess-1")
	if !reflect.DeepEqual(state.Lines(), loaded.Lines()) {
		t.Fatalf("load(save(x)) drifted:\n want %+v\n got  %+v", state.Lines(), loaded.Lines())
	}
}

func TestMemoryStoreMissingSlotYieldsEmpty(t *testing.T) {
	store := NewMemoryStore()
	state := store.Load(context.Background(), "missing")
	if state == nil || state.Len() != 0 {
		t.Fatalf("expected empty state, got: %+v", state)
	}
}

func TestMemoryStoreCorruptSlotYieldsEmpty(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	store.Corrupt("sess-1", []byte("{{{"))
	state := store.Load(ctx, "sess-1")
	if state.Len() != 0 {
		t.Fatalf("corrupt slot should fall back to empty cart, got: %+v", state.Lines())
	}

	store.Corrupt("sess-2", []byte(`{"version":42,"items":[{"product_id":1,"quantity":1,"stock_available":1}]}`))
	if state := store.Load(ctx, "sess-2"); state.Len() != 0 {
		t.Fatalf("unknown version should fall back to empty cart, got: %+v", state.Lines())
	}
}

func TestMemoryStoreDrop(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	store.Save(ctx, "sess-1", NewStateFromLines([]Line{{ProductID: 1, UnitPrice: 1, StockAvailable: 1, Quantity: 1}}))
	store.Drop(ctx, "sess-1")
	if state := store.Load(ctx, "sess-1"); state.Len() != 0 {
		t.Fatalf("expected dropped slot to be empty, got: %+v", state.Lines())
	}
}
