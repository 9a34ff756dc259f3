package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SessionResult summarizes one finished quiz attempt
type SessionResult struct {
	Score int
	Total int
}

// runQuizSession runs one scored attempt for a user. The pre-checks report
// via sentinel errors and leave all documents untouched; once the questions
// start, the commit happens no matter how many of them timed out.
func runQuizSession(conv Conversation, store *Store, userID, username, category, subcategory string, questionTimeout time.Duration) (SessionResult, error) {

	if store.Attempted(userID, category, subcategory) {
		return SessionResult{}, ErrAlreadyAttempted
	}

	questions, ok := store.Questions(category, subcategory)
	if !ok {
		return SessionResult{}, ErrUnknownQuiz
	}

	var score int
	for _, q := range questions {
		conv.Send(renderPrompt(q))

		reply, answered := conv.Await(userID, questionTimeout)
		if !answered {
			conv.Send("⏳ Time's up! Moving to the next question.")
			continue
		}

		if grade(q, reply) {
			score++
		}
	}

	// Commit order matters: score the leaderboard first, then set the
	// permanent attempt mark
	if _, err := store.AddScore(username, score); err != nil {
		conv.Send("⚠️ Could not save your score.")
	}
	if err := store.MarkAttempted(userID, category, subcategory); err != nil {
		conv.Send("⚠️ Could not record your attempt.")
	}

	conv.Send(fmt.Sprintf("✅ Quiz finished! Your score: %d", score))

	return SessionResult{Score: score, Total: len(questions)}, nil
}

// renderPrompt formats a question for the channel
func renderPrompt(q Question) string {
	switch q.Type {
	case TypeMCQ:
		var b strings.Builder
		fmt.Fprintf(&b, "**%s**", q.Question)
		for i, opt := range q.Options {
			fmt.Fprintf(&b, "\n%d. %s", i+1, opt)
		}
		return b.String()
	case TypeTrueFalse:
		return fmt.Sprintf("**%s** (True/False)", q.Question)
	default:
		return fmt.Sprintf("**%s** (One-word answer)", q.Question)
	}
}

// grade checks one reply against a question. Multiple choice replies are a
// 1-based option index; anything unparsable or out of range is just wrong.
func grade(q Question, reply string) bool {
	if q.Type == TypeMCQ {
		idx, err := strconv.Atoi(strings.TrimSpace(reply))
		if err != nil || idx < 1 || idx > len(q.Options) {
			return false
		}
		return q.Options[idx-1] == q.Answer
	}

	return strings.EqualFold(reply, q.Answer)
}
