package memory

import (
	"context"
	"errors"
	"testing"

	"quiz-arena-service/internal/domain"
)

func TestQuizStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewQuizStore()
	id := domain.ID{1}

	if err := store.CreateQuiz(ctx, id, sampleQuiz("alice"), domain.Solution{1, 2, 3, 4, 1}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := store.CreateQuiz(ctx, id, sampleQuiz("bob"), domain.Solution{1, 1, 1, 1, 1}); !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected already exists, got %v", err)
	}

	quiz, err := store.GetQuiz(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if quiz.Owner != "alice" || quiz.Questions[4].Statement != "Q5" {
		t.Fatalf("unexpected quiz %+v", quiz)
	}

	removed, err := store.DeleteQuiz(ctx, id)
	if err != nil || !removed {
		t.Fatalf("delete = (%v, %v), want (true, nil)", removed, err)
	}
	if _, err := store.GetSolution(ctx, id); !errors.Is(err, domain.ErrQuizNotFound) {
		t.Fatalf("expected solution removed with quiz, got %v", err)
	}

	removed, err = store.DeleteQuiz(ctx, id)
	if err != nil || removed {
		t.Fatalf("second delete = (%v, %v), want (false, nil)", removed, err)
	}
}

func sampleQuiz(owner domain.AccountID) domain.Quiz {
	quiz := domain.Quiz{Owner: owner, Rating: 1}
	for i := range quiz.Questions {
		quiz.Questions[i] = domain.Question{
			Statement: "Q" + string(rune('1'+i)),
			Options:   [domain.OptionsPerQuestion]string{"a", "b", "c", "d"},
		}
	}
	return quiz
}
