package naming

import (
	"testing"
)

func TestExpand(t *testing.T) {
	meta := map[string]string{
		"year":     "2024",
		"month":    "01",
		"day":      "15",
		"filename": "IMG_0001",
		"camera":   "Model: X/1",
		"weird":    "{year}",
	}

	cases := []struct {
		name    string
		pattern string
		want    string
	}{
		{"metadata placeholders", "{year}-{month}-{day}_{filename}", "2024-01-15_IMG_0001"},
		{"case insensitive", "{YEAR}-{Month}-{DAY}", "2024-01-15"},
		{"unknown placeholder kept", "{year}_{nope}", "2024_{nope}"},
		{"bare counter", "IMG_{counter}", "IMG_{counter:3}"},
		{"counter width", "IMG_{counter:4}", "IMG_{counter:4}"},
		{"counter any case", "IMG_{Counter:2}", "IMG_{counter:2}"},
		{"value sanitised", "{camera}", "Model X1"},
		{"separators stripped", "{year}/{month}/{filename}", "202401IMG_0001"},
		{"trimmed", "  {filename}  ", "IMG_0001"},
		{"day_number is its own key", "{day_number}", "{day_number}"},
		{"values are not rescanned", "{weird}", "{year}"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Expand(tc.pattern, meta); got != tc.want {
				t.Errorf("Expand(%q) = %q, want %q", tc.pattern, got, tc.want)
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	meta := map[string]string{"year": "2024", "month": "01"}

	cases := []struct {
		pattern string
		want    string
	}{
		{"{year}/{month}", "2024/01"},
		{`{year}\{month}`, "2024/01"},
		{"/{year}//{month}/", "2024/01"},
		{"../{year}/./x", "2024/x"},
		{" Day 1 / {month} ", "Day 1/01"},
		{"{year}/{counter:2}", "2024/{counter:2}"},
	}

	for _, tc := range cases {
		if got := ExpandPath(tc.pattern, meta); got != tc.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tc.pattern, got, tc.want)
		}
	}
}

func TestApplyCounter(t *testing.T) {
	cases := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{"padded", "IMG_{counter:4}", 7, "IMG_0007"},
		{"every occurrence", "{counter:2}-{counter:3}", 5, "05-005"},
		{"wider than padding", "x{counter:1}", 12, "x12"},
		{"no token", "plain", 3, "plain"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ApplyCounter(tc.in, tc.n); got != tc.want {
				t.Errorf("ApplyCounter(%q, %d) = %q, want %q", tc.in, tc.n, got, tc.want)
			}
		})
	}

	if !HasCounter("a_{counter:3}") || HasCounter("a_{counter}") {
		t.Error("HasCounter should only match the canonical form")
	}
}

func TestSanitizeFilename(t *testing.T) {
	cases := map[string]string{
		"test/filename":      "testfilename",
		"  testfile  ":       "testfile",
		`a<b>c:d"e\f|g?h*i`: "abcdefghi",
		"tab\there":          "tabhere",
		"normal name.txt":    "normal name.txt",
	}
	for in, want := range cases {
		if got := SanitizeFilename(in); got != want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSanitizeIdempotent(t *testing.T) {
	inputs := []string{
		"  a / b  ",
		"x: y? z*",
		" /../Day 1/ sub \\ leaf ",
		"\x01ctrl\x1f",
		"",
		"   ",
	}
	for _, in := range inputs {
		once := SanitizeFilename(in)
		if twice := SanitizeFilename(once); twice != once {
			t.Errorf("SanitizeFilename not idempotent for %q: %q then %q", in, once, twice)
		}
		once = SanitizePath(in)
		if twice := SanitizePath(once); twice != once {
			t.Errorf("SanitizePath not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}
