package domain

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestSolutionValidate(t *testing.T) {
	cases := []struct {
		name     string
		solution Solution
		valid    bool
	}{
		{"all in range", Solution{1, 2, 3, 4, 1}, true},
		{"zero slot", Solution{1, 0, 3, 4, 1}, false},
		{"fifth slot out of range", Solution{1, 2, 3, 4, 5}, false},
		{"first slot out of range", Solution{7, 2, 3, 4, 1}, false},
	}
	for _, tc := range cases {
		err := tc.solution.Validate()
		if tc.valid && err != nil {
			t.Fatalf("%s: unexpected error %v", tc.name, err)
		}
		if !tc.valid && !errors.Is(err, ErrInvalidSolution) {
			t.Fatalf("%s: expected ErrInvalidSolution, got %v", tc.name, err)
		}
	}
}

func TestIDTextRoundTrip(t *testing.T) {
	var id ID
	id[0], id[31] = 0xab, 0x01

	raw, err := json.Marshal(QuizDeleted(7, id))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(raw), id.String()) {
		t.Fatalf("expected hex id in %s", raw)
	}

	var event Event
	if err := json.Unmarshal(raw, &event); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if event.QuizID == nil || *event.QuizID != id || event.Tick != 7 {
		t.Fatalf("unexpected event %+v", event)
	}
}

func TestParseIDRejectsBadInput(t *testing.T) {
	if _, err := ParseID("zz"); err == nil {
		t.Fatal("expected error for non-hex input")
	}
	if _, err := ParseID("abcd"); err == nil {
		t.Fatal("expected error for short input")
	}
}

func TestEventKeepsZeroPayloadFields(t *testing.T) {
	raw, err := json.Marshal(QuizScored(3, "bob", 0))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, field := range []string{`"score":0`, `"rating":0`, `"tick":0`} {
		if !strings.Contains(string(raw), field) {
			t.Fatalf("expected %s in %s", field, raw)
		}
	}
}
