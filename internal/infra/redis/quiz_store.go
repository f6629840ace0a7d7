package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"quiz-arena-service/internal/domain"
)

// QuizStore keeps quizzes and their answer keys in Redis as JSON strings.
// Quiz is stored as:     SET quiz:{id}:data     {json}
// Solution is stored as: SET quiz:{id}:solution {json}
// Both keys are written with one MSETNX and removed with one DEL.
type QuizStore struct {
	client *redis.Client
}

func NewQuizStore(client *redis.Client) *QuizStore {
	return &QuizStore{client: client}
}

func (s *QuizStore) CreateQuiz(ctx context.Context, id domain.ID, quiz domain.Quiz, solution domain.Solution) error {
	quizData, err := json.Marshal(quiz)
	if err != nil {
		return fmt.Errorf("marshal quiz: %w", err)
	}
	solutionData, err := json.Marshal(solution)
	if err != nil {
		return fmt.Errorf("marshal solution: %w", err)
	}

	ok, err := s.client.MSetNX(ctx, dataKey(id), quizData, solutionKey(id), solutionData).Result()
	if err != nil {
		return fmt.Errorf("store quiz: %w", err)
	}
	if !ok {
		return domain.ErrAlreadyExists
	}
	return nil
}

func (s *QuizStore) GetQuiz(ctx context.Context, id domain.ID) (domain.Quiz, error) {
	var quiz domain.Quiz
	if err := s.getJSON(ctx, dataKey(id), &quiz); err != nil {
		return domain.Quiz{}, err
	}
	return quiz, nil
}

func (s *QuizStore) GetSolution(ctx context.Context, id domain.ID) (domain.Solution, error) {
	var solution domain.Solution
	if err := s.getJSON(ctx, solutionKey(id), &solution); err != nil {
		return domain.Solution{}, err
	}
	return solution, nil
}

func (s *QuizStore) DeleteQuiz(ctx context.Context, id domain.ID) (bool, error) {
	n, err := s.client.Del(ctx, dataKey(id), solutionKey(id)).Result()
	if err != nil {
		return false, fmt.Errorf("delete quiz: %w", err)
	}
	return n > 0, nil
}

func (s *QuizStore) getJSON(ctx context.Context, key string, dst any) error {
	raw, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.ErrQuizNotFound
	}
	if err != nil {
		return fmt.Errorf("load %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("unmarshal %s: %w", key, err)
	}
	return nil
}

func dataKey(id domain.ID) string {
	return "quiz:" + id.String() + ":data"
}

func solutionKey(id domain.ID) string {
	return "quiz:" + id.String() + ":solution"
}
