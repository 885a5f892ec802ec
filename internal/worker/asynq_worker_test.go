package worker

import (
	"context"
	"testing"

	"github.com/hibiken/asynq"

	"github.com/petmart-next/internal/queue"
)

func TestHandleOrderConfirmEmailInvalidPayload(t *testing.T) {
	consumer := NewConsumer(nil)

	task := asynq.NewTask(queue.TaskOrderConfirmEmail, []byte("not-json"))
	if err := consumer.handleOrderConfirmEmail(context.Background(), task); err == nil {
		t.Fatalf("broken payload should fail")
	}
}

func TestHandleOrderConfirmEmailZeroOrderSkipped(t *testing.T) {
	consumer := NewConsumer(nil)

	task, err := queue.NewOrderConfirmEmailTask(queue.OrderConfirmEmailPayload{OrderID: 0})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := consumer.handleOrderConfirmEmail(context.Background(), task); err != nil {
		t.Fatalf("zero order id should be skipped, got %v", err)
	}
}

func TestHandleLowStockAlertZeroProductSkipped(t *testing.T) {
	consumer := NewConsumer(nil)

	task, err := queue.NewLowStockAlertTask(queue.LowStockAlertPayload{ProductID: 0, Stock: 0})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := consumer.handleLowStockAlert(context.Background(), task); err != nil {
		t.Fatalf("zero product id should be skipped, got %v", err)
	}
}

func TestRegisterNilMuxNoPanic(t *testing.T) {
	consumer := NewConsumer(nil)
	consumer.Register(nil)

	var nilConsumer *Consumer
	nilConsumer.Register(asynq.NewServeMux())
}
