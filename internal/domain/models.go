package domain

import (
	"encoding/hex"
	"fmt"
)

const (
	// QuestionsPerQuiz is the fixed number of questions every quiz carries.
	QuestionsPerQuiz = 5
	// OptionsPerQuestion is the number of answer options on a question.
	OptionsPerQuestion = 4
	// MaxRating is the highest rating an account can reach (a perfect score).
	MaxRating uint8 = QuestionsPerQuiz
)

// ID is a derived identifier (hash output) used as a storage key.
type ID [32]byte

func (id ID) String() string {
	return hex.EncodeToString(id[:])
}

// ParseID decodes a hex encoded ID.
func ParseID(raw string) (ID, error) {
	var id ID
	b, err := hex.DecodeString(raw)
	if err != nil {
		return id, fmt.Errorf("decode id: %w", err)
	}
	if len(b) != len(id) {
		return id, fmt.Errorf("decode id: want %d bytes, got %d", len(id), len(b))
	}
	copy(id[:], b)
	return id, nil
}

// MarshalText lets IDs appear as hex in JSON payloads.
func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *ID) UnmarshalText(text []byte) error {
	parsed, err := ParseID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// AccountID identifies a participant as resolved from the caller's credentials.
type AccountID string

// Amount is a balance in the smallest token unit.
type Amount uint64

// Question is a single multiple choice question with four options.
type Question struct {
	Statement string                     `json:"statement"`
	Options   [OptionsPerQuestion]string `json:"options"`
}

// Solution holds one answer (1..4) per question, in question order.
type Solution [QuestionsPerQuiz]uint8

// Validate reports whether every slot names one of the four options.
func (s Solution) Validate() error {
	for i, answer := range s {
		if answer < 1 || answer > OptionsPerQuestion {
			return fmt.Errorf("%w: answer %d is %d", ErrInvalidSolution, i+1, answer)
		}
	}
	return nil
}

// Quiz is the public part of a quiz. Its Solution is stored separately.
type Quiz struct {
	Owner     AccountID                  `json:"owner"`
	Questions [QuestionsPerQuiz]Question `json:"questions"`
	Rating    uint8                      `json:"rating"`
}

// EventType names the kind of a domain event.
type EventType string

const (
	EventQuizCreated EventType = "quizCreated"
	EventQuizScored  EventType = "quizScored"
	EventQuizDeleted EventType = "quizDeleted"
)

// Event is emitted by the quiz service after a command commits.
// Fields not relevant to Type are left zero. Rating, Score and Tick are always
// encoded; zero is a valid value for each.
type Event struct {
	Type     EventType `json:"type"`
	Sequence uint64    `json:"sequence,omitempty"`
	Account  AccountID `json:"account,omitempty"`
	Rating   uint8     `json:"rating"`
	Score    uint8     `json:"score"`
	Tick     uint64    `json:"tick"`
	QuizID   *ID       `json:"quizId,omitempty"`
}

func QuizCreated(sequence uint64, owner AccountID, rating uint8) Event {
	return Event{Type: EventQuizCreated, Sequence: sequence, Account: owner, Rating: rating}
}

func QuizScored(sequence uint64, account AccountID, score uint8) Event {
	return Event{Type: EventQuizScored, Sequence: sequence, Account: account, Score: score}
}

func QuizDeleted(tick uint64, quizID ID) Event {
	return Event{Type: EventQuizDeleted, Tick: tick, QuizID: &quizID}
}
