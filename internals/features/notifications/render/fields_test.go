package render

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
	"time"

	"gorm.io/datatypes"

	studentModel "studentresults_backend/internals/features/students/model"
)

func studentWithExtra(t *testing.T, score float64, comment *string, extra map[string]any) *studentModel.StudentModel {
	t.Helper()
	s := &studentModel.StudentModel{
		StudentName:  "Ann",
		StudentEmail: "ann@example.com",
		StudentScore: score,
	}
	s.StudentComment = comment
	if extra != nil {
		raw, err := json.Marshal(extra)
		if err != nil {
			t.Fatalf("marshal extra: %v", err)
		}
		s.StudentExtraData = datatypes.JSON(raw)
	}
	return s
}

func labels(fields []Field) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.Label
	}
	return out
}

func TestSelectFieldsOrderGuarantee(t *testing.T) {
	s := studentWithExtra(t, 88, nil, map[string]any{
		"hw1":            8,
		"final khmer":    45,
		"q1":             7,
		"grade":          "A",
		"total":          999, // must never surface; TOTAL comes from score
		"_column_order":  []string{"hw1", "q1", "final khmer", "total", "grade"},
		"first_name":     "Ann",
	})
	// first_name is not in the order list, so it replays after the ordered
	// keys but still before the pinned tail.
	fields := SelectFields(s)
	want := []string{"HW1", "Q1", "FINAL KHMER", "FIRST NAME", "TOTAL", "GRADE", "COMMENT"}
	if got := labels(fields); !reflect.DeepEqual(got, want) {
		t.Errorf("labels = %v, want %v", got, want)
	}
}

func TestSelectFieldsTotalAuthoritative(t *testing.T) {
	s := studentWithExtra(t, 85, nil, map[string]any{
		"total":         50,
		"_column_order": []string{"total"},
	})
	fields := SelectFields(s)
	totals := 0
	for _, f := range fields {
		if f.Label == "TOTAL" {
			totals++
			if f.Value != "85" {
				t.Errorf("TOTAL = %q, want %q (canonical score wins)", f.Value, "85")
			}
			if !f.Highlight {
				t.Error("TOTAL must be highlighted")
			}
		}
	}
	if totals != 1 {
		t.Errorf("TOTAL emitted %d times, want exactly 1", totals)
	}
}

func TestSelectFieldsIdempotent(t *testing.T) {
	s := studentWithExtra(t, 72.5, nil, map[string]any{
		"hw1":           9,
		"grade":         "B",
		"_column_order": []string{"hw1", "grade"},
	})
	first := SelectFields(s)
	second := SelectFields(s)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("re-render differs:\n%v\n%v", first, second)
	}
}

func TestSelectFieldsCommentPrecedence(t *testing.T) {
	own := "teacher says hi"
	s := studentWithExtra(t, 40, &own, map[string]any{
		"comment":       "bag comment",
		"_column_order": []string{"comment"},
	})
	fields := SelectFields(s)
	last := fields[len(fields)-1]
	if last.Label != "COMMENT" || last.Value != own {
		t.Errorf("comment = %+v, want stored comment last", last)
	}

	// no stored comment: the bag entry wins
	s2 := studentWithExtra(t, 40, nil, map[string]any{
		"comment":       "bag comment",
		"_column_order": []string{"comment"},
	})
	fields2 := SelectFields(s2)
	if got := fields2[len(fields2)-1].Value; got != "bag comment" {
		t.Errorf("comment = %q, want bag comment", got)
	}

	// neither: the auto ladder kicks in
	s3 := studentWithExtra(t, 95, nil, nil)
	fields3 := SelectFields(s3)
	if got := fields3[len(fields3)-1].Value; got != "Excellent work! Outstanding performance!" {
		t.Errorf("auto comment = %q", got)
	}
}

func TestSelectFieldsSingleCommentEntry(t *testing.T) {
	s := studentWithExtra(t, 66, nil, map[string]any{
		"comments":      "alias comment",
		"_column_order": []string{"comments"},
	})
	fields := SelectFields(s)
	count := 0
	for _, f := range fields {
		if f.Label == "COMMENT" {
			count++
		}
		if f.Label == "COMMENTS" {
			t.Error("comment-like key leaked into the table")
		}
	}
	if count != 1 {
		t.Errorf("COMMENT emitted %d times, want 1", count)
	}
}

func TestAutoCommentLadder(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{90, "Excellent work! Outstanding performance!"},
		{89.9, "Great job! Keep up the excellent work!"},
		{85, "Great job! Keep up the excellent work!"},
		{80, "Very good! You're doing great!"},
		{75, "Good work! Keep pushing forward!"},
		{70, "Nice effort! Keep improving!"},
		{65, "Good try! You can do better!"},
		{60, "Keep working! You're making progress!"},
		{59.99, "Try more! Don't give up!"},
		{0, "Try more! Don't give up!"},
	}
	for _, tc := range cases {
		if got := AutoComment(tc.score); got != tc.want {
			t.Errorf("AutoComment(%v) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestAutoCommentOfNonNumeric(t *testing.T) {
	if got := AutoCommentOf("not-a-score"); got != "Keep learning and growing!" {
		t.Errorf("non-numeric fallback = %q", got)
	}
	if got := AutoCommentOf(nil); got != "Try more! Don't give up!" {
		t.Errorf("nil score = %q, want floor tier", got)
	}
}

func TestIsHighlight(t *testing.T) {
	for _, key := range []string{"total", "Grade", "SCORE", " total "} {
		if !IsHighlight(key) {
			t.Errorf("IsHighlight(%q) = false, want true", key)
		}
	}
	if IsHighlight("hw1") {
		t.Error("hw1 must not highlight")
	}
}

func TestBuildResultEmailEscapesAndOrders(t *testing.T) {
	s := studentWithExtra(t, 90, nil, map[string]any{
		"note":          "<script>alert(1)</script>",
		"_column_order": []string{"note"},
	})
	body := BuildResultEmail(s, time.Date(2025, 5, 1, 9, 30, 0, 0, time.UTC))
	if strings.Contains(body, "<script>") {
		t.Error("uploaded value reached markup unescaped")
	}
	if !strings.Contains(body, "Hello ANN!") {
		t.Error("greeting missing or not upper-cased")
	}
	if strings.Index(body, "NOTE") > strings.Index(body, "TOTAL") {
		t.Error("extension field must precede TOTAL")
	}
}

func TestSubjectLine(t *testing.T) {
	s := studentWithExtra(t, 1, nil, nil)
	if got := Subject(s); got != "Your Academic Result - Assessment" {
		t.Errorf("subject = %q", got)
	}
	subj := "Math"
	s.StudentSubject = &subj
	if got := Subject(s); got != "Your Academic Result - Math" {
		t.Errorf("subject = %q", got)
	}
}
