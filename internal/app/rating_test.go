package app_test

import (
	"context"
	"testing"

	"quiz-arena-service/internal/app"
	"quiz-arena-service/internal/infra/memory"
)

func TestNextRating(t *testing.T) {
	testCases := []struct {
		prior, score, want uint8
	}{
		{0, 0, 0},
		{0, 4, 4},
		{0, 5, 5},
		{3, 5, 3},
		{5, 5, 5},
		{5, 0, 4},
		{1, 5, 1},
		{2, 5, 2},
		{4, 5, 4},
	}
	for _, tc := range testCases {
		if got := app.NextRating(tc.prior, tc.score); got != tc.want {
			t.Fatalf("NextRating(%d, %d) = %d, want %d", tc.prior, tc.score, got, tc.want)
		}
	}
}

func TestPassesGate(t *testing.T) {
	for gate := 0; gate <= 6; gate++ {
		for rating := 0; rating <= 6; rating++ {
			want := gate == 0 || rating >= gate-1
			if got := app.PassesGate(uint8(rating), uint8(gate)); got != want {
				t.Fatalf("PassesGate(%d, %d) = %v, want %v", rating, gate, got, want)
			}
		}
	}
}

func TestRatingLedgerUpdate(t *testing.T) {
	ctx := context.Background()
	ledger := app.NewRatingLedger(memory.NewRatingStore())

	if r, _ := ledger.Get(ctx, "bob"); r != 0 {
		t.Fatalf("expected default rating 0, got %d", r)
	}
	next, err := ledger.Update(ctx, "bob", 4, 0)
	if err != nil || next != 4 {
		t.Fatalf("Update = (%d, %v), want (4, nil)", next, err)
	}
	if r, _ := ledger.Get(ctx, "bob"); r != 4 {
		t.Fatalf("expected stored rating 4, got %d", r)
	}
}
