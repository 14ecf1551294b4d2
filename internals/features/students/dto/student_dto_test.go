package dto

import (
	"testing"

	"studentresults_backend/internals/features/students/model"
)

func str(s string) *string { return &s }

// Saving the same email twice applies the second upload over the first
// record in full. This is the decision half of the upsert; the controller
// only routes it through one transaction per record.
func TestApplyToSecondUploadWinsCompletely(t *testing.T) {
	var m model.StudentModel

	first := IncomingStudent{
		StudentID: str("STU001"),
		Name:      str("Ann"),
		Email:     "ann@example.com",
		Score:     float64(60),
		Subject:   str("Math"),
		Batch:     str("2025A"),
		Comment:   str("needs work"),
		ExtraData: map[string]any{"hw1": float64(5), "_column_order": []any{"hw1"}},
	}
	first.ApplyTo(&m)

	second := IncomingStudent{
		Name:      str("Ann Lee"),
		Email:     "ann@example.com",
		Score:     "92.5",
		Subject:   str("Physics"),
		ExtraData: map[string]any{"q1": float64(9), "_column_order": []any{"q1"}},
	}
	second.ApplyTo(&m)

	if m.StudentName != "Ann Lee" || m.StudentEmail != "ann@example.com" {
		t.Errorf("identity = %q/%q, want second upload's values", m.StudentName, m.StudentEmail)
	}
	if m.StudentScore != 92.5 {
		t.Errorf("score = %v, want 92.5 (string score coerced)", m.StudentScore)
	}
	if m.StudentSubject == nil || *m.StudentSubject != "Physics" {
		t.Errorf("subject = %v, want Physics", m.StudentSubject)
	}
	// Fields absent from the second upload clear rather than linger.
	if m.StudentCode != nil {
		t.Errorf("student code = %v, want cleared", *m.StudentCode)
	}
	if m.StudentBatch != nil {
		t.Errorf("batch = %v, want cleared", *m.StudentBatch)
	}
	if m.StudentComment != nil {
		t.Errorf("comment = %v, want cleared", *m.StudentComment)
	}
	// The extension bag is replaced wholesale, not merged.
	extra := m.ExtraMap()
	if _, stale := extra["hw1"]; stale {
		t.Errorf("first upload's bag leaked into the second: %v", extra)
	}
	if _, ok := extra["q1"]; !ok {
		t.Errorf("second upload's bag missing: %v", extra)
	}
	if _, stale := extra["comment"]; stale {
		t.Errorf("cleared comment still mirrored in the bag: %v", extra)
	}
}

func TestApplyToMirrorsCommentIntoBag(t *testing.T) {
	var m model.StudentModel
	in := IncomingStudent{
		Email:     "b@example.com",
		Comment:   str("well done"),
		ExtraData: map[string]any{"hw1": float64(7)},
	}
	in.ApplyTo(&m)
	if got := m.ExtraMap()["comment"]; got != "well done" {
		t.Errorf("bag comment = %v, want mirror of the field", got)
	}
}

func TestScoreValueCoercion(t *testing.T) {
	cases := []struct {
		in   any
		want float64
	}{
		{nil, 0},
		{float64(85), 85},
		{int64(70), 70},
		{"89.9", 89.9},
		{"not-a-number", 0},
	}
	for _, tc := range cases {
		s := IncomingStudent{Score: tc.in}
		if got := s.ScoreValue(); got != tc.want {
			t.Errorf("ScoreValue(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
