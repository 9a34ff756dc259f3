package main

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRanking(t *testing.T) {
	scores := map[string]int{
		"carol#0003": 5,
		"alice#0001": 9,
		"bob#0002":   5,
	}

	want := []Player{
		{"alice#0001", 9},
		{"bob#0002", 5},
		{"carol#0003", 5},
	}
	got := ranking(scores)
	if !cmp.Equal(want, got) {
		t.Errorf("ranking mismatch: %s", cmp.Diff(want, got))
	}
}

func TestFormatRanking(t *testing.T) {
	top := []Player{
		{"alice#0001", 9},
		{"bob#0002", 5},
	}

	want := "**1.** **alice#0001** - 9 points\n**2.** **bob#0002** - 5 points\n"
	if got := formatRanking(top); got != want {
		t.Errorf("formatRanking() = %q, want %q", got, want)
	}
}

func TestCapitalize(t *testing.T) {
	cases := map[string]string{
		"":       "",
		"python": "Python",
		"Go":     "Go",
		"a":      "A",
	}
	for in, want := range cases {
		if got := capitalize(in); got != want {
			t.Errorf("capitalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate should leave short strings alone, got %q", got)
	}

	long := "abcdefghijklmnop"
	got := truncate(long, 10)
	if got != "abcd [...]" {
		t.Errorf("truncate(%q, 10) = %q", long, got)
	}
}
