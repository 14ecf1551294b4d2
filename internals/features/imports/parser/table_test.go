package parser

import (
	"reflect"
	"testing"
)

func TestDecodeCSVStripsBOMAndRaggedRows(t *testing.T) {
	data := []byte("\xEF\xBB\xBFname,email,score\nAnn,ann@example.com,90\nBob,bob@example.com\n")
	grid, err := Decode("results.csv", data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	want := [][]string{
		{"name", "email", "score"},
		{"Ann", "ann@example.com", "90"},
		{"Bob", "bob@example.com"},
	}
	if !reflect.DeepEqual(grid, want) {
		t.Errorf("grid = %v, want %v", grid, want)
	}
}

func TestDecodeRejectsUnknownExtension(t *testing.T) {
	if _, err := Decode("results.pdf", []byte("x")); err == nil {
		t.Error("pdf accepted")
	}
}

func TestAllowedFile(t *testing.T) {
	for _, name := range []string{"a.csv", "b.XLSX", "c.xls"} {
		if !AllowedFile(name) {
			t.Errorf("AllowedFile(%q) = false", name)
		}
	}
	for _, name := range []string{"a.txt", "b.pdf", "noext"} {
		if AllowedFile(name) {
			t.Errorf("AllowedFile(%q) = true", name)
		}
	}
}
