package cart

import "testing"

func stateOf(t *testing.T, lines ...Line) *State {
	t.Helper()
	return NewStateFromLines(lines)
}

func TestMergeAdditiveClamped(t *testing.T) {
	server := stateOf(t, Line{ProductID: 2, Name: "狗粮", UnitPrice: 1000, StockAvailable: 3, Quantity: 2})
	local := stateOf(t, Line{ProductID: 2, Name: "狗粮", UnitPrice: 1000, StockAvailable: 3, Quantity: 2})
	result := Merge(server, local)
	line, ok := result.Get(2)
	if !ok {
		t.Fatal("merged line missing")
	}
	if line.Quantity != 3 {
		t.Fatalf("expected min(3, 2+2)=3, got: %d", line.Quantity)
	}
}

func TestMergeEmptyLocalYieldsServer(t *testing.T) {
	server := stateOf(t,
		Line{ProductID: 1, UnitPrice: 500, StockAvailable: 5, Quantity: 2},
		Line{ProductID: 2, UnitPrice: 800, StockAvailable: 2, Quantity: 1},
	)
	result := Merge(server, NewState())
	if result.Len() != 2 {
		t.Fatalf("expected server cart unchanged, got %d lines", result.Len())
	}
	for _, want := range server.Lines() {
		got, ok := result.Get(want.ProductID)
		if !ok || got != want {
			t.Fatalf("line drifted: want %+v got %+v", want, got)
		}
	}
}

func TestMergeEmptyServerYieldsClampedLocal(t *testing.T) {
	local := stateOf(t,
		Line{ProductID: 1, UnitPrice: 500, StockAvailable: 2, Quantity: 9},
		Line{ProductID: 2, UnitPrice: 800, StockAvailable: 4, Quantity: 3},
	)
	result := Merge(NewState(), local)
	if result.Len() != 2 {
		t.Fatalf("expected 2 lines, got %d", result.Len())
	}
	first, _ := result.Get(1)
	if first.Quantity != 2 {
		t.Fatalf("expected quantity clamped to stock 2, got: %d", first.Quantity)
	}
	second, _ := result.Get(2)
	if second.Quantity != 3 {
		t.Fatalf("expected quantity 3, got: %d", second.Quantity)
	}
}

func TestMergeDropsZeroStockLocalLines(t *testing.T) {
	local := stateOf(t,
		Line{ProductID: 1, UnitPrice: 500, StockAvailable: 0, Quantity: 1},
		Line{ProductID: 2, UnitPrice: 800, StockAvailable: 4, Quantity: 1},
	)
	result := Merge(NewState(), local)
	if result.Len() != 1 {
		t.Fatalf("expected zero-stock line dropped, got %d lines", result.Len())
	}
	if _, ok := result.Get(1); ok {
		t.Fatal("zero-stock line should be dropped silently")
	}
}

func TestMergeServerBaseOrderFirst(t *testing.T) {
	server := stateOf(t, Line{ProductID: 5, UnitPrice: 100, StockAvailable: 9, Quantity: 1})
	local := stateOf(t,
		Line{ProductID: 7, UnitPrice: 200, StockAvailable: 9, Quantity: 1},
		Line{ProductID: 5, UnitPrice: 100, StockAvailable: 9, Quantity: 2},
	)
	result := Merge(server, local)
	lines := result.Lines()
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	// 服务端行保持在前，本地新行按序追加
	if lines[0].ProductID != 5 || lines[1].ProductID != 7 {
		t.Fatalf("unexpected order: %+v", lines)
	}
	if lines[0].Quantity != 3 {
		t.Fatalf("expected additive quantity 3, got: %d", lines[0].Quantity)
	}
}

func TestMergeDoesNotMutateInputs(t *testing.T) {
	server := stateOf(t, Line{ProductID: 1, UnitPrice: 100, StockAvailable: 5, Quantity: 1})
	local := stateOf(t, Line{ProductID: 1, UnitPrice: 100, StockAvailable: 5, Quantity: 2})
	_ = Merge(server, local)
	if line, _ := server.Get(1); line.Quantity != 1 {
		t.Fatalf("server input mutated: %+v", line)
	}
	if line, _ := local.Get(1); line.Quantity != 2 {
		t.Fatalf("local input mutated: %+v", line)
	}
}
