package app_test

import (
	"testing"

	"quiz-arena-service/internal/app"
	"quiz-arena-service/internal/domain"
)

func TestIdentifierDeriverIsDeterministic(t *testing.T) {
	a := app.NewIdentifierDeriver(nil)
	b := app.NewIdentifierDeriver(app.Blake2bHasher{})

	if a.QuizID(7) != b.QuizID(7) {
		t.Fatalf("expected same ID for same sequence")
	}
	if a.QuizID(7) == a.QuizID(8) {
		t.Fatalf("expected distinct IDs for distinct sequences")
	}
	if a.BucketID(100) == a.BucketID(101) {
		t.Fatalf("expected distinct bucket IDs")
	}
	if a.QuizID(1) == (domain.ID{}) {
		t.Fatalf("expected non-zero ID")
	}
}

type prefixHasher struct{}

func (prefixHasher) Sum(data []byte) domain.ID {
	var id domain.ID
	copy(id[:], data)
	id[31] = 0xff
	return id
}

func TestIdentifierDeriverUsesHasher(t *testing.T) {
	ids := app.NewIdentifierDeriver(prefixHasher{})
	got := ids.QuizID(1)
	if got[0] != 1 || got[31] != 0xff {
		t.Fatalf("expected little-endian sequence through custom hasher, got %s", got)
	}
}
