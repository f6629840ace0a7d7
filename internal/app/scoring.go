package app

import "quiz-arena-service/internal/domain"

// Score counts the positions where submission and key agree.
func Score(submission, key domain.Solution) uint8 {
	var score uint8
	for i := range key {
		if submission[i] == key[i] {
			score++
		}
	}
	return score
}
