package pipeline

import (
	"errors"
	"reflect"
	"testing"
)

func TestNormalizeHeaderLowercasesAndTrims(t *testing.T) {
	n, err := NormalizeHeader([][]string{
		{" Name ", "EMAIL", "Score"},
		{"Ann", "ann@example.com", "90"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"name", "email", "score"}
	if !reflect.DeepEqual(n.Columns, want) {
		t.Errorf("columns = %v, want %v", n.Columns, want)
	}
	if len(n.Rows) != 1 {
		t.Errorf("rows = %d, want 1", len(n.Rows))
	}
}

func TestNormalizeHeaderHeaderlessEmailDetection(t *testing.T) {
	// Column 2 (index 1) holds the email in row 1: synthesize email there
	// and positional placeholders everywhere else.
	n, err := NormalizeHeader([][]string{
		{"Ann", "a@b.com", "90"},
		{"Ben", "ben@b.com", "75"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantCols := []string{"col_0", "email", "col_2"}
	if !reflect.DeepEqual(n.Columns[:3], wantCols) {
		t.Errorf("columns = %v, want prefix %v", n.Columns, wantCols)
	}
	// Both physical rows stay data.
	if len(n.Rows) != 2 {
		t.Errorf("rows = %d, want 2", len(n.Rows))
	}
}

func TestNormalizeHeaderNoHeaderDetected(t *testing.T) {
	_, err := NormalizeHeader([][]string{
		{"1", "2", "3"},
		{"4", "5", "6"},
	})
	var nhe *NoHeaderError
	if !errors.As(err, &nhe) {
		t.Fatalf("want NoHeaderError, got %v", err)
	}
	if len(nhe.Attempted) != 3 {
		t.Errorf("attempted columns = %v", nhe.Attempted)
	}
}

func TestNormalizeHeaderMissingEmail(t *testing.T) {
	_, err := NormalizeHeader([][]string{
		{"name", "score"},
		{"Ann", "90"},
	})
	var mee *MissingEmailError
	if !errors.As(err, &mee) {
		t.Fatalf("want MissingEmailError, got %v", err)
	}
	if !reflect.DeepEqual(mee.Found, []string{"name", "score"}) {
		t.Errorf("found columns = %v", mee.Found)
	}
}

func TestNormalizeHeaderNameSynthesis(t *testing.T) {
	n, err := NormalizeHeader([][]string{
		{"First Name", "Last Name", "Email"},
		{" Ann ", " Lee ", "ann@example.com"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ni := n.indexOf("name")
	if ni < 0 {
		t.Fatalf("name column not synthesized: %v", n.Columns)
	}
	if got := n.Rows[0][ni]; got != "Ann Lee" {
		t.Errorf("synthesized name = %q, want %q", got, "Ann Lee")
	}
	// Source columns survive for the extension bag.
	if n.indexOf("first name") < 0 || n.indexOf("last name") < 0 {
		t.Error("alias source columns must not be renamed away")
	}
}

func TestNormalizeHeaderScoreAliasPriority(t *testing.T) {
	// "total" wins over "marks" because it comes first in the rule.
	n, err := NormalizeHeader([][]string{
		{"email", "marks", "total"},
		{"a@b.com", "50", "88"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	si := n.indexOf("score")
	if si < 0 {
		t.Fatalf("score not filled from alias: %v", n.Columns)
	}
	if got := n.Rows[0][si]; got != "88" {
		t.Errorf("score from alias = %q, want %q (total has priority)", got, "88")
	}
}

func TestNormalizeHeaderAliasNeverOverwrites(t *testing.T) {
	n, err := NormalizeHeader([][]string{
		{"email", "score", "total"},
		{"a@b.com", "70", "99"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	si := n.indexOf("score")
	if got := n.Rows[0][si]; got != "70" {
		t.Errorf("existing score overwritten by alias: got %q", got)
	}
}

func TestNormalizeHeaderDefaults(t *testing.T) {
	n, err := NormalizeHeader([][]string{
		{"email"},
		{"a@b.com"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ni, si := n.indexOf("name"), n.indexOf("score")
	if ni < 0 || si < 0 {
		t.Fatalf("defaults not appended: %v", n.Columns)
	}
	if n.Rows[0][ni] != DefaultName || n.Rows[0][si] != "0" {
		t.Errorf("defaults = %q/%q, want %q/%q", n.Rows[0][ni], n.Rows[0][si], DefaultName, "0")
	}
}

func TestNormalizeHeaderDuplicateColumnFailsLoudly(t *testing.T) {
	_, err := NormalizeHeader([][]string{
		{"Email", " email ", "score"},
		{"a@b.com", "x", "1"},
	})
	var dce *DuplicateColumnError
	if !errors.As(err, &dce) {
		t.Fatalf("want DuplicateColumnError, got %v", err)
	}
	if dce.Column != "email" {
		t.Errorf("colliding column = %q", dce.Column)
	}
}

func TestNormalizeHeaderSyntheticClassMapsToBatch(t *testing.T) {
	n, err := NormalizeHeader([][]string{
		{"email", "class", "comments", "id"},
		{"a@b.com", "B7", "solid", "S-1"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, col := range []string{"batch", "comment", "student_id"} {
		if n.indexOf(col) < 0 {
			t.Errorf("%s not filled from alias: %v", col, n.Columns)
		}
	}
}

func TestNormalizeHeaderEmptyFile(t *testing.T) {
	if _, err := NormalizeHeader(nil); !errors.Is(err, ErrEmptyFile) {
		t.Fatalf("want ErrEmptyFile, got %v", err)
	}
}

func TestNormalizeHeaderRaggedRowsPadded(t *testing.T) {
	n, err := NormalizeHeader([][]string{
		{"name", "email", "score", "hw1"},
		{"Ann", "ann@example.com"},
		{"Ben", "ben@example.com", "70", "9", "spill"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, row := range n.Rows {
		if len(row) != len(n.Columns) {
			t.Errorf("row %d width = %d, want %d", i, len(row), len(n.Columns))
		}
	}
}
