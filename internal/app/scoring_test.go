package app_test

import (
	"testing"

	"quiz-arena-service/internal/app"
	"quiz-arena-service/internal/domain"
)

func TestScore(t *testing.T) {
	key := domain.Solution{1, 2, 3, 4, 1}
	testCases := []struct {
		name       string
		submission domain.Solution
		want       uint8
	}{
		{"identical", key, 5},
		{"one wrong", domain.Solution{2, 2, 3, 4, 1}, 4},
		{"last wrong", domain.Solution{1, 2, 3, 4, 2}, 4},
		{"three wrong", domain.Solution{1, 1, 1, 4, 2}, 2},
		{"all wrong", domain.Solution{4, 4, 4, 1, 4}, 0},
		{"out of range never matches", domain.Solution{0, 0, 0, 0, 0}, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := app.Score(tc.submission, key); got != tc.want {
				t.Fatalf("Score = %d, want %d", got, tc.want)
			}
			if got := app.Score(key, tc.submission); got != tc.want {
				t.Fatalf("Score is not symmetric: %d, want %d", got, tc.want)
			}
		})
	}
}
