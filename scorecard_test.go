package main

import "testing"

func TestGenerateScorecardWithoutFont(t *testing.T) {
	fontTtf = nil

	rows := []Player{{"alice#0001", 9}}
	if buf := GenerateScorecard("Leaderboard", rows); buf != nil {
		t.Error("scorecard rendering requires a loaded font")
	}
	if buf := GenerateScorecard("Leaderboard", nil); buf != nil {
		t.Error("empty leaderboards have nothing to render")
	}
}
