package cart

import (
	"errors"
	"testing"
)

func TestAssembleOrderEmptyCart(t *testing.T) {
	_, err := AssembleOrder(1, NewState(), 5000, CheckoutForm{DeliveryAddress: "Av. España 123"})
	if !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got: %v", err)
	}
	_, err = AssembleOrder(1, nil, 5000, CheckoutForm{})
	if !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart for nil state, got: %v", err)
	}
}

func TestAssembleOrderPayload(t *testing.T) {
	state := NewStateFromLines([]Line{
		{ProductID: 1, Name: "猫粮", UnitPrice: 2000, StockAvailable: 10, Quantity: 3},
		{ProductID: 2, Name: "牵引绳", UnitPrice: 4000, StockAvailable: 5, Quantity: 1},
	})
	form := CheckoutForm{
		DeliveryAddress: "  Av. España 123 ",
		City:            "Asunción",
		Region:          "Central",
		Country:         "PY",
		ContactPhone:    "+595 981 000000",
		PaymentMethod:   "cash",
		Note:            "portería",
	}
	payload, err := AssembleOrder(42, state, 5000, form)
	if err != nil {
		t.Fatalf("assemble failed: %v", err)
	}
	if payload.BuyerID != 42 {
		t.Fatalf("expected buyer 42, got: %d", payload.BuyerID)
	}
	if len(payload.Items) != 2 {
		t.Fatalf("expected 2 payload items, got: %d", len(payload.Items))
	}
	if payload.Items[0] != (PayloadItem{ProductID: 1, Quantity: 3, UnitPrice: 2000}) {
		t.Fatalf("unexpected first item: %+v", payload.Items[0])
	}
	if payload.Subtotal != 10000 || payload.ShippingFee != 5000 || payload.Total != 15000 {
		t.Fatalf("unexpected amounts: %+v", payload)
	}
	if payload.DeliveryAddress != "Av. España 123" {
		t.Fatalf("address not trimmed: %q", payload.DeliveryAddress)
	}
	if payload.PaymentMethod != "cash" || payload.Note != "portería" {
		t.Fatalf("form fields not carried: %+v", payload)
	}
}

func TestAssembleOrderHasNoSideEffects(t *testing.T) {
	state := NewStateFromLines([]Line{
		{ProductID: 1, Name: "猫粮", UnitPrice: 2000, StockAvailable: 10, Quantity: 3},
	})
	if _, err := AssembleOrder(1, state, 0, CheckoutForm{}); err != nil {
		t.Fatalf("assemble failed: %v", err)
	}
	if state.Len() != 1 {
		t.Fatalf("assembler must not mutate cart state, got %d lines", state.Len())
	}
}
