package app

import (
	"context"
	"fmt"

	"quiz-arena-service/internal/domain"
)

// RatingStore persists per-account ratings. Missing accounts read as 0.
type RatingStore interface {
	GetRating(ctx context.Context, account domain.AccountID) (uint8, error)
	SetRating(ctx context.Context, account domain.AccountID, rating uint8) error
}

// RatingLedger applies the rating rule on top of a RatingStore.
type RatingLedger struct {
	store RatingStore
}

func NewRatingLedger(store RatingStore) *RatingLedger {
	return &RatingLedger{store: store}
}

func (l *RatingLedger) Get(ctx context.Context, account domain.AccountID) (uint8, error) {
	rating, err := l.store.GetRating(ctx, account)
	if err != nil {
		return 0, fmt.Errorf("get rating: %w", err)
	}
	return rating, nil
}

// Update stores the blend of prior and score for account and returns it.
func (l *RatingLedger) Update(ctx context.Context, account domain.AccountID, score, prior uint8) (uint8, error) {
	next := NextRating(prior, score)
	if err := l.store.SetRating(ctx, account, next); err != nil {
		return 0, fmt.Errorf("set rating: %w", err)
	}
	return next, nil
}

// NextRating weights history 5:1 against the latest score. An account without
// history takes its first score as its rating.
func NextRating(prior, score uint8) uint8 {
	divisor := 6
	if prior == 0 {
		divisor = 1
	}
	next := (int(prior)*5 + int(score)) / divisor
	if next > 255 {
		next = 255
	}
	return uint8(next)
}

// PassesGate reports whether rating may attempt a quiz gated at gate. The gate
// is one point lenient; gate 0 admits everyone.
func PassesGate(rating, gate uint8) bool {
	if gate == 0 {
		return true
	}
	return rating >= gate-1
}
