package memory

import (
	"context"
	"sync"

	"quiz-arena-service/internal/domain"
)

// QuizStore is an in-memory implementation of app.QuizStore.
type QuizStore struct {
	mu        sync.RWMutex
	quizzes   map[domain.ID]domain.Quiz
	solutions map[domain.ID]domain.Solution
}

func NewQuizStore() *QuizStore {
	return &QuizStore{
		quizzes:   make(map[domain.ID]domain.Quiz),
		solutions: make(map[domain.ID]domain.Solution),
	}
}

func (s *QuizStore) CreateQuiz(_ context.Context, id domain.ID, quiz domain.Quiz, solution domain.Solution) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.quizzes[id]; ok {
		return domain.ErrAlreadyExists
	}
	s.quizzes[id] = quiz
	s.solutions[id] = solution
	return nil
}

func (s *QuizStore) GetQuiz(_ context.Context, id domain.ID) (domain.Quiz, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	quiz, ok := s.quizzes[id]
	if !ok {
		return domain.Quiz{}, domain.ErrQuizNotFound
	}
	return quiz, nil
}

func (s *QuizStore) GetSolution(_ context.Context, id domain.ID) (domain.Solution, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	solution, ok := s.solutions[id]
	if !ok {
		return domain.Solution{}, domain.ErrQuizNotFound
	}
	return solution, nil
}

func (s *QuizStore) DeleteQuiz(_ context.Context, id domain.ID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.quizzes[id]
	delete(s.quizzes, id)
	delete(s.solutions, id)
	return ok, nil
}

// Len reports how many quizzes are stored.
func (s *QuizStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.quizzes)
}
