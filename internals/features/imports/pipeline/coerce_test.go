package pipeline

import "testing"

func TestCoerce(t *testing.T) {
	cases := []struct {
		in   string
		want any
	}{
		{"", nil},
		{"   ", nil},
		{"n/a", nil},
		{"N/A", nil},
		{"None", nil},
		{"NaN", nil},
		{"nan", nil},
		{"null", nil},
		{"90", int64(90)},
		{" 90 ", int64(90)},
		{"90.0", int64(90)},
		{"89.9", 89.9},
		{"-5", int64(-5)},
		{"hello", "hello"},
		{"  padded  ", "padded"},
		{"12a", "12a"},
	}
	for _, tc := range cases {
		if got := Coerce(tc.in); got != tc.want {
			t.Errorf("Coerce(%q) = %v (%T), want %v (%T)", tc.in, got, got, tc.want, tc.want)
		}
	}
}

func TestCoerceScoreLenient(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"85", 85},
		{"89.9", 89.9},
		{"", 0},
		{"n/a", 0},
		{"not-a-number", 0},
		{"NaN", 0},
	}
	for _, tc := range cases {
		if got := CoerceScore(tc.in); got != tc.want {
			t.Errorf("CoerceScore(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestIsAbsentValue(t *testing.T) {
	if !IsAbsentValue(nil) {
		t.Error("nil should be absent")
	}
	if !IsAbsentValue("  n/a ") {
		t.Error("sentinel string should be absent")
	}
	if IsAbsentValue(int64(0)) {
		t.Error("zero is a value, not absent")
	}
	if IsAbsentValue("0") {
		t.Error("string zero is a value, not absent")
	}
}

func TestStringify(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{int64(90), "90"},
		{90.0, "90"},
		{89.9, "89.9"},
		{" text ", "text"},
	}
	for _, tc := range cases {
		if got := Stringify(tc.in); got != tc.want {
			t.Errorf("Stringify(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
