package controller

import (
	"reflect"
	"testing"

	"studentresults_backend/internals/features/imports/dto"
)

func TestColumnOrderOfHonorsExplicitOrder(t *testing.T) {
	p := &dto.MapColumnsRequest{
		Data: []map[string]any{
			{"b": 1, "a": 2, "zz": 3},
			{"b": 4, "extra": 5},
		},
		ColumnOrder: []string{"zz", "b", "ghost"},
	}
	got := columnOrderOf(p)
	// ordered keys first, "ghost" dropped (never present in the data),
	// stragglers alphabetical
	want := []string{"zz", "b", "a", "extra"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("columnOrderOf = %v, want %v", got, want)
	}
}

func TestColumnOrderOfWithoutOrderList(t *testing.T) {
	p := &dto.MapColumnsRequest{
		Data: []map[string]any{{"c": 1, "a": 2, "b": 3}},
	}
	if got := columnOrderOf(p); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("columnOrderOf = %v, want alphabetical fallback", got)
	}
}

func TestCellString(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"hello", "hello"},
		{float64(85), "85"},
		{float64(85.5), "85.5"},
		{true, "true"},
	}
	for _, tc := range cases {
		if got := cellString(tc.in); got != tc.want {
			t.Errorf("cellString(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestRunPipelineDefaultsWithoutNameAndScore(t *testing.T) {
	// A mapping that only supplies email must not be rejected as
	// incomplete: name and score fall back to their defaults.
	grid := [][]string{
		{"email", "hw1"},
		{"ann@example.com", "8"},
	}
	records, err := runPipeline(grid)
	if err != nil {
		t.Fatalf("runPipeline: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
	if records[0].Name != "Student" || records[0].Score != 0 {
		t.Errorf("defaults = %v/%v, want Student/0", records[0].Name, records[0].Score)
	}
}

func TestRunPipelineEndToEnd(t *testing.T) {
	grid := [][]string{
		{"Name", "Email", "Total", "HW1"},
		{"Ann", "ann@example.com", "90", "8"},
		{"", "", "", ""},
		{"Bob", "bob@example.com", "71.5", "n/a"},
	}
	records, err := runPipeline(grid)
	if err != nil {
		t.Fatalf("runPipeline: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2 (blank row dropped)", len(records))
	}
	if records[0].Score != 90 || records[1].Score != 71.5 {
		t.Errorf("scores = %v, %v", records[0].Score, records[1].Score)
	}
	// "total" fed the score alias but survives as an extension column
	extra := records[0].Extra.ToMap()
	if _, ok := extra["total"]; !ok {
		t.Errorf("alias source column lost from extras: %v", extra)
	}
	// HW1 absent for Bob, so his bag holds only total
	if _, ok := records[1].Extra.ToMap()["hw1"]; ok {
		t.Error("absent extension value must be skipped")
	}
}
