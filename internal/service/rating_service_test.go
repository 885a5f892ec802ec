package service

import (
	"context"
	"errors"
	"testing"

	"github.com/petmart-next/internal/repository"
)

func newRatingTestService(t *testing.T) (*RatingService, *CartService, *OrderService) {
	t.Helper()
	db := newTestDB(t)
	cartService, orderService := newOrderTestServices(t, db)
	ratingService := NewRatingService(
		repository.NewRatingRepository(db),
		repository.NewProductRepository(db),
		repository.NewOrderRepository(db),
	)
	seedProduct(t, db, 1, 2000, 10)
	return ratingService, cartService, orderService
}

func TestRatingServiceRequiresPurchase(t *testing.T) {
	ratingService, _, _ := newRatingTestService(t)

	_, err := ratingService.Rate(RateInput{UserID: 1, ProductID: 1, Score: 5})
	if !errors.Is(err, ErrRatingNotPermitted) {
		t.Fatalf("expected ErrRatingNotPermitted, got: %v", err)
	}
}

func TestRatingServiceUpsertAndSummary(t *testing.T) {
	ctx := context.Background()
	ratingService, cartService, orderService := newRatingTestService(t)

	if _, err := cartService.AddItem(ctx, UserOwner(1), 1, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, err := orderService.Checkout(ctx, 1, checkoutForm()); err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	if _, err := ratingService.Rate(RateInput{UserID: 1, ProductID: 1, Score: 4, Comment: "buena comida"}); err != nil {
		t.Fatalf("rate failed: %v", err)
	}
	// 重复评分覆盖旧值而不是新增
	if _, err := ratingService.Rate(RateInput{UserID: 1, ProductID: 1, Score: 2}); err != nil {
		t.Fatalf("re-rate failed: %v", err)
	}

	ratings, total, err := ratingService.ListByProduct(1, 1, 10)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || len(ratings) != 1 || ratings[0].Score != 2 {
		t.Fatalf("expected single overwritten rating, got total=%d ratings=%+v", total, ratings)
	}

	summary, err := ratingService.Summary(1)
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if summary.Count != 1 || summary.Average != 2 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestRatingServiceScoreBounds(t *testing.T) {
	ratingService, _, _ := newRatingTestService(t)
	for _, score := range []int{0, 6, -1} {
		if _, err := ratingService.Rate(RateInput{UserID: 1, ProductID: 1, Score: score}); !errors.Is(err, ErrRatingScoreInvalid) {
			t.Fatalf("expected ErrRatingScoreInvalid for score %d, got: %v", score, err)
		}
	}
}
