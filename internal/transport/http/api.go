package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"quiz-arena-service/internal/app"
	"quiz-arena-service/internal/domain"
)

// OriginResolver turns a caller credential into an account.
type OriginResolver interface {
	Resolve(ctx context.Context, credential string) (domain.AccountID, error)
}

// API exposes the quiz use cases over JSON/HTTP.
type API struct {
	service  *app.QuizService
	resolver OriginResolver
}

func NewAPI(service *app.QuizService, resolver OriginResolver) *API {
	return &API{service: service, resolver: resolver}
}

type createQuizRequest struct {
	Questions []domain.Question `json:"questions"`
	Solution  []int             `json:"solution"`
	Rating    int               `json:"rating"`
}

type attemptRequest struct {
	Submission []int `json:"submission"`
}

type createQuizResponse struct {
	Sequence uint64 `json:"sequence"`
}

type attemptResponse struct {
	Sequence uint64 `json:"sequence"`
	Score    uint8  `json:"score"`
}

type quizResponse struct {
	Sequence uint64 `json:"sequence"`
	domain.Quiz
}

type latestResponse struct {
	Sequence uint64 `json:"sequence"`
}

type ratingResponse struct {
	Account domain.AccountID `json:"account"`
	Rating  uint8            `json:"rating"`
}

type balanceResponse struct {
	Account domain.AccountID `json:"account"`
	Balance domain.Amount    `json:"balance"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (a *API) HandleCreateQuiz(w http.ResponseWriter, r *http.Request) {
	sender, ok := a.authenticate(w, r)
	if !ok {
		return
	}

	var request createQuizRequest
	if err := decodeJSON(r, &request); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	if len(request.Questions) != domain.QuestionsPerQuiz {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("exactly %d questions are required", domain.QuestionsPerQuiz)})
		return
	}
	solution, err := toSolution(request.Solution)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if request.Rating < 0 || request.Rating > 255 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "rating must be between 0 and 255"})
		return
	}

	var questions [domain.QuestionsPerQuiz]domain.Question
	copy(questions[:], request.Questions)

	sequence, err := a.service.CreateQuiz(r.Context(), sender, questions, solution, uint8(request.Rating))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, createQuizResponse{Sequence: sequence})
}

func (a *API) HandleGetQuiz(w http.ResponseWriter, r *http.Request) {
	sequence, ok := parseSequence(w, r)
	if !ok {
		return
	}
	quiz, err := a.service.GetQuiz(r.Context(), sequence)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quizResponse{Sequence: sequence, Quiz: quiz})
}

// HandleLatest reports the sequence number of the newest quiz, 0 if none was created.
func (a *API) HandleLatest(w http.ResponseWriter, r *http.Request) {
	sequence, err := a.service.LatestSequence(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, latestResponse{Sequence: sequence})
}

func (a *API) HandleAttemptQuiz(w http.ResponseWriter, r *http.Request) {
	sender, ok := a.authenticate(w, r)
	if !ok {
		return
	}
	sequence, ok := parseSequence(w, r)
	if !ok {
		return
	}

	var request attemptRequest
	if err := decodeJSON(r, &request); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	if len(request.Submission) != domain.QuestionsPerQuiz {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("exactly %d answers are required", domain.QuestionsPerQuiz)})
		return
	}
	var submission domain.Solution
	for i, answer := range request.Submission {
		if answer < 0 || answer > 255 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "answers must be between 0 and 255"})
			return
		}
		submission[i] = uint8(answer)
	}

	score, err := a.service.AttemptQuiz(r.Context(), sender, sequence, submission)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, attemptResponse{Sequence: sequence, Score: score})
}

func (a *API) HandleDeleteQuiz(w http.ResponseWriter, r *http.Request) {
	sender, ok := a.authenticate(w, r)
	if !ok {
		return
	}
	sequence, ok := parseSequence(w, r)
	if !ok {
		return
	}
	if err := a.service.DeleteQuiz(r.Context(), sender, sequence); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) HandleRating(w http.ResponseWriter, r *http.Request) {
	account := domain.AccountID(r.PathValue("account"))
	rating, err := a.service.Rating(r.Context(), account)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ratingResponse{Account: account, Rating: rating})
}

func (a *API) HandleBalance(w http.ResponseWriter, r *http.Request) {
	account := domain.AccountID(r.PathValue("account"))
	balance, err := a.service.Balance(r.Context(), account)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, balanceResponse{Account: account, Balance: balance})
}

func (a *API) authenticate(w http.ResponseWriter, r *http.Request) (domain.AccountID, bool) {
	account, err := a.resolver.Resolve(r.Context(), r.Header.Get("Authorization"))
	if err != nil {
		writeServiceError(w, err)
		return "", false
	}
	return account, true
}

func parseSequence(w http.ResponseWriter, r *http.Request) (uint64, bool) {
	sequence, err := strconv.ParseUint(r.PathValue("sequence"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "sequence must be an unsigned integer"})
		return 0, false
	}
	return sequence, true
}

func toSolution(answers []int) (domain.Solution, error) {
	var solution domain.Solution
	if len(answers) != domain.QuestionsPerQuiz {
		return solution, fmt.Errorf("%w: exactly %d answers are required", domain.ErrInvalidSolution, domain.QuestionsPerQuiz)
	}
	for i, answer := range answers {
		if answer < 1 || answer > domain.OptionsPerQuestion {
			return solution, fmt.Errorf("%w: answer %d is %d", domain.ErrInvalidSolution, i+1, answer)
		}
		solution[i] = uint8(answer)
	}
	return solution, nil
}

func decodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.New("invalid JSON body")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("write response: %v", err)
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Printf("request failed: %v", err)
		writeJSON(w, status, errorResponse{Error: "internal error"})
		return
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidSolution):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrInsufficientBalance):
		return http.StatusPaymentRequired
	case errors.Is(err, domain.ErrNotOwner),
		errors.Is(err, domain.ErrOwnerCannotAttempt),
		errors.Is(err, domain.ErrRatingTooLow):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrQuizNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
