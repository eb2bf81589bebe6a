package clock

import "testing"

func TestFormatTime(t *testing.T) {
	cases := []struct {
		seconds int
		want    string
	}{
		{0, "00:00"},
		{5, "00:05"},
		{60, "01:00"},
		{125, "02:05"},
		{1500, "25:00"},
		{5400, "90:00"},
		{-3, "00:00"},
	}
	for _, tc := range cases {
		if got := FormatTime(tc.seconds); got != tc.want {
			t.Fatalf("FormatTime(%d): expected %q, got %q", tc.seconds, tc.want, got)
		}
	}
}

func TestParseDuration(t *testing.T) {
	valid := map[string]int{
		"25":     1500,
		"5:30":   330,
		"05:30":  330,
		" 10 ":   600,
		"0:05":   5,
		"90:00":  5400,
		"0":      0,
		"120:59": 7259,
	}
	for text, want := range valid {
		got, ok := ParseDuration(text)
		if !ok {
			t.Fatalf("ParseDuration(%q): expected ok", text)
		}
		if got != want {
			t.Fatalf("ParseDuration(%q): expected %d, got %d", text, want, got)
		}
	}

	invalid := []string{"", "abc", "5:", ":30", "5:60", "-5", "+5", "1:2:3", "5.5", "12345"}
	for _, text := range invalid {
		if _, ok := ParseDuration(text); ok {
			t.Fatalf("ParseDuration(%q): expected rejection", text)
		}
	}
}

func TestParseThenFormatRoundTrip(t *testing.T) {
	seconds, ok := ParseDuration("5:30")
	if !ok {
		t.Fatalf("expected 5:30 to parse")
	}
	if got := FormatTime(seconds); got != "05:30" {
		t.Fatalf("expected 05:30, got %q", got)
	}
}
