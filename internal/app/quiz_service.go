package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"quiz-arena-service/internal/domain"
)

// QuizStore abstracts where quizzes and their answer keys live (in-memory, Redis, etc).
// A quiz and its solution are created and deleted together.
type QuizStore interface {
	// CreateQuiz fails with domain.ErrAlreadyExists if id is taken.
	CreateQuiz(ctx context.Context, id domain.ID, quiz domain.Quiz, solution domain.Solution) error
	// GetQuiz returns domain.ErrQuizNotFound if id is absent.
	GetQuiz(ctx context.Context, id domain.ID) (domain.Quiz, error)
	// GetSolution returns domain.ErrQuizNotFound if id is absent.
	GetSolution(ctx context.Context, id domain.ID) (domain.Solution, error)
	// DeleteQuiz removes both records and reports whether anything was removed.
	DeleteQuiz(ctx context.Context, id domain.ID) (bool, error)
}

// SequenceCounter holds the last issued quiz sequence number.
type SequenceCounter interface {
	Current(ctx context.Context) (uint64, error)
	Set(ctx context.Context, sequence uint64) error
}

// Ledger moves tokens between accounts.
type Ledger interface {
	FreeBalance(ctx context.Context, account domain.AccountID) (domain.Amount, error)
	// Transfer fails with domain.ErrInsufficientBalance when from cannot pay
	// amount and stay alive.
	Transfer(ctx context.Context, from, to domain.AccountID, amount domain.Amount) error
	// Refund moves amount back from to to without the keep-alive check. It
	// undoes a Transfer made in the same command.
	Refund(ctx context.Context, from, to domain.AccountID, amount domain.Amount) error
}

// EventSink receives committed events. Emit must not block.
type EventSink interface {
	Emit(event domain.Event)
}

// Clock reports the host's current tick.
type Clock interface {
	CurrentTick(ctx context.Context) (uint64, error)
}

// Deps wires the collaborators of a QuizService.
type Deps struct {
	IDs       IdentifierDeriver
	Quizzes   QuizStore
	Ratings   *RatingLedger
	Scheduler *DeletionScheduler
	Sequence  SequenceCounter
	Ledger    Ledger
	Events    EventSink
	Clock     Clock
	// TokensPerQuestion is charged for every wrong answer.
	TokensPerQuestion domain.Amount
}

// QuizService contains the quiz use cases. Commands run one at a time.
type QuizService struct {
	mu sync.Mutex

	ids       IdentifierDeriver
	quizzes   QuizStore
	ratings   *RatingLedger
	scheduler *DeletionScheduler
	sequence  SequenceCounter
	ledger    Ledger
	events    EventSink
	clock     Clock
	rate      domain.Amount
}

func NewQuizService(d Deps) *QuizService {
	events := d.Events
	if events == nil {
		events = discardSink{}
	}
	return &QuizService{
		ids:       d.IDs,
		quizzes:   d.Quizzes,
		ratings:   d.Ratings,
		scheduler: d.Scheduler,
		sequence:  d.Sequence,
		ledger:    d.Ledger,
		events:    events,
		clock:     d.Clock,
		rate:      d.TokensPerQuestion,
	}
}

// CreateQuiz stores a new quiz owned by sender and schedules its deletion.
// It returns the sequence number that identifies the quiz.
func (s *QuizService) CreateQuiz(ctx context.Context, sender domain.AccountID, questions [domain.QuestionsPerQuiz]domain.Question, solution domain.Solution, rating uint8) (uint64, error) {
	if err := solution.Validate(); err != nil {
		return 0, err
	}
	if rating > domain.MaxRating {
		rating = domain.MaxRating
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	last, err := s.sequence.Current(ctx)
	if err != nil {
		return 0, fmt.Errorf("read quiz sequence: %w", err)
	}
	sequence := last + 1
	id := s.ids.QuizID(sequence)

	tick, err := s.clock.CurrentTick(ctx)
	if err != nil {
		return 0, fmt.Errorf("read current tick: %w", err)
	}

	// No bucket entry may outlive a failed create.
	quiz := domain.Quiz{Owner: sender, Questions: questions, Rating: rating}
	if err := s.quizzes.CreateQuiz(ctx, id, quiz, solution); err != nil {
		return 0, fmt.Errorf("create quiz %d: %w", sequence, err)
	}
	if err := s.sequence.Set(ctx, sequence); err != nil {
		return 0, errors.Join(fmt.Errorf("advance quiz sequence: %w", err), s.rollbackCreate(ctx, id))
	}
	if _, err := s.scheduler.Schedule(ctx, tick, id); err != nil {
		return 0, errors.Join(err, s.rollbackCreate(ctx, id), s.rollbackSequence(ctx, last))
	}

	s.events.Emit(domain.QuizCreated(sequence, sender, rating))
	return sequence, nil
}

// rollbackCreate undoes the store insert.
func (s *QuizService) rollbackCreate(ctx context.Context, id domain.ID) error {
	if _, err := s.quizzes.DeleteQuiz(context.WithoutCancel(ctx), id); err != nil {
		return fmt.Errorf("rollback quiz %s: %w", id, err)
	}
	return nil
}

func (s *QuizService) rollbackSequence(ctx context.Context, last uint64) error {
	if err := s.sequence.Set(context.WithoutCancel(ctx), last); err != nil {
		return fmt.Errorf("rollback quiz sequence: %w", err)
	}
	return nil
}

// AttemptQuiz scores submission against the quiz answer key, charges sender
// for every wrong answer and updates sender's rating. It returns the score.
func (s *QuizService) AttemptQuiz(ctx context.Context, sender domain.AccountID, sequence uint64, submission domain.Solution) (uint8, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.ids.QuizID(sequence)
	quiz, err := s.quizzes.GetQuiz(ctx, id)
	if err != nil {
		return 0, err
	}
	if sender == quiz.Owner {
		return 0, domain.ErrOwnerCannotAttempt
	}

	prior, err := s.ratings.Get(ctx, sender)
	if err != nil {
		return 0, err
	}
	if !PassesGate(prior, quiz.Rating) {
		return 0, domain.ErrRatingTooLow
	}

	key, err := s.quizzes.GetSolution(ctx, id)
	if err != nil {
		return 0, err
	}
	score := Score(submission, key)

	reward := domain.Amount(domain.QuestionsPerQuiz-int(score)) * s.rate
	if err := s.pay(ctx, sender, quiz.Owner, reward); err != nil {
		return 0, err
	}

	if _, err := s.ratings.Update(ctx, sender, score, prior); err != nil {
		return 0, errors.Join(err, s.refund(ctx, quiz.Owner, sender, reward))
	}

	s.events.Emit(domain.QuizScored(sequence, sender, score))
	return score, nil
}

func (s *QuizService) pay(ctx context.Context, from, to domain.AccountID, amount domain.Amount) error {
	if amount == 0 {
		return nil
	}
	free, err := s.ledger.FreeBalance(ctx, from)
	if err != nil {
		return fmt.Errorf("read balance: %w", err)
	}
	if free < amount {
		return domain.ErrInsufficientBalance
	}
	if err := s.ledger.Transfer(ctx, from, to, amount); err != nil {
		if errors.Is(err, domain.ErrInsufficientBalance) {
			return domain.ErrInsufficientBalance
		}
		return fmt.Errorf("transfer reward: %w", err)
	}
	return nil
}

// refund runs even when ctx is already cancelled, so a failed attempt leaves
// balances as they were.
func (s *QuizService) refund(ctx context.Context, from, to domain.AccountID, amount domain.Amount) error {
	if amount == 0 {
		return nil
	}
	if err := s.ledger.Refund(context.WithoutCancel(ctx), from, to, amount); err != nil {
		return fmt.Errorf("refund reward: %w", err)
	}
	return nil
}

// DeleteQuiz removes a quiz on behalf of its owner.
func (s *QuizService) DeleteQuiz(ctx context.Context, sender domain.AccountID, sequence uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.ids.QuizID(sequence)
	quiz, err := s.quizzes.GetQuiz(ctx, id)
	if err != nil {
		return err
	}
	if sender != quiz.Owner {
		return domain.ErrNotOwner
	}
	if _, err := s.quizzes.DeleteQuiz(ctx, id); err != nil {
		return fmt.Errorf("delete quiz %d: %w", sequence, err)
	}
	return nil
}

// OnTick deletes every quiz whose deletion falls due at tick and emits one
// QuizDeleted per bucket entry, including entries whose quiz the owner already
// removed. It returns the number of quizzes actually removed. On failure the
// unhandled entries stay queued, so calling OnTick again for the same tick
// resumes where it stopped.
func (s *QuizService) OnTick(ctx context.Context, tick uint64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	due, err := s.scheduler.Due(ctx, tick)
	if err != nil {
		return 0, err
	}
	removed := 0
	for i, id := range due {
		ok, err := s.quizzes.DeleteQuiz(ctx, id)
		if err != nil {
			err = fmt.Errorf("delete quiz %s at tick %d: %w", id, tick, err)
			return removed, errors.Join(err, s.scheduler.Settle(context.WithoutCancel(ctx), tick, i))
		}
		if ok {
			removed++
		}
		s.events.Emit(domain.QuizDeleted(tick, id))
	}
	if err := s.scheduler.Settle(ctx, tick, len(due)); err != nil {
		return removed, err
	}
	return removed, nil
}

// GetQuiz returns the public part of a quiz. The answer key is never exposed.
func (s *QuizService) GetQuiz(ctx context.Context, sequence uint64) (domain.Quiz, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.quizzes.GetQuiz(ctx, s.ids.QuizID(sequence))
}

// LatestSequence returns the sequence number of the most recently created quiz.
func (s *QuizService) LatestSequence(ctx context.Context) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sequence.Current(ctx)
}

func (s *QuizService) Rating(ctx context.Context, account domain.AccountID) (uint8, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ratings.Get(ctx, account)
}

func (s *QuizService) Balance(ctx context.Context, account domain.AccountID) (domain.Amount, error) {
	return s.ledger.FreeBalance(ctx, account)
}

type discardSink struct{}

func (discardSink) Emit(domain.Event) {}
