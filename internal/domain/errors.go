package domain

import "errors"

var (
	// ErrInvalidSolution is returned when an answer key names an option outside 1..4.
	ErrInvalidSolution = errors.New("invalid solution")
	// ErrQuizNotFound indicates no quiz is stored under the derived ID.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrOwnerCannotAttempt is returned when a quiz owner tries to solve their own quiz.
	ErrOwnerCannotAttempt = errors.New("owner cannot attempt own quiz")
	// ErrRatingTooLow is returned when the attempting account does not pass the quiz gate.
	ErrRatingTooLow = errors.New("rating too low")
	// ErrInsufficientBalance is returned when the reward transfer is rejected by the ledger.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrNotOwner is returned when a non-owner tries to delete a quiz.
	ErrNotOwner = errors.New("not the quiz owner")
	// ErrAlreadyExists signals a quiz ID collision. It should be unreachable.
	ErrAlreadyExists = errors.New("quiz already exists")
	// ErrUnauthenticated is returned for anonymous or badly signed calls.
	ErrUnauthenticated = errors.New("unauthenticated")
)
