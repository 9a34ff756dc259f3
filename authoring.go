package main

import (
	"fmt"
	"strings"
)

// Flow control keywords
const (
	doneKeyword    = "done"
	listKeyword    = "list"
	allKeyword     = "all"
	confirmKeyword = "confirm"
)

const (
	creationTimeoutMsg = "⏳ You took too long to respond. Quiz creation canceled."
	deletionTimeoutMsg = "⏳ You took too long to respond. Deletion canceled."
)

// runCreateQuiz walks an admin through adding questions to the quiz bank.
// A timeout at any prompt cancels the whole flow without saving anything.
func runCreateQuiz(conv Conversation, store *Store, userID string, timeouts Timeouts) {

	conv.Send("📝 **Let's create a new quiz!** Enter the category name (e.g., Python, JavaScript).")
	category, ok := conv.Await(userID, timeouts.Field)
	if !ok {
		conv.Send(creationTimeoutMsg)
		return
	}
	category = strings.ToLower(strings.TrimSpace(category))

	conv.Send(fmt.Sprintf("✅ Category **%s** set! Now, enter the subcategory name (e.g., Variables, Strings).", category))
	subcategory, ok := conv.Await(userID, timeouts.Field)
	if !ok {
		conv.Send(creationTimeoutMsg)
		return
	}
	subcategory = strings.ToLower(strings.TrimSpace(subcategory))

	conv.Send(fmt.Sprintf("✅ Subcategory **%s** set! Now, let's add questions.", subcategory))

	var questions []Question
	for {
		conv.Send("✍️ Enter the question (or type `done` to finish):")
		text, ok := conv.Await(userID, timeouts.Text)
		if !ok {
			conv.Send(creationTimeoutMsg)
			return
		}
		if strings.EqualFold(strings.TrimSpace(text), doneKeyword) {
			break
		}

		q := Question{Question: text}

		// Invalid type tokens re-prompt without losing the question text
		for {
			conv.Send("🤖 Select question type: `mcq`, `one_word`, or `true_false`")
			kind, ok := conv.Await(userID, timeouts.Field)
			if !ok {
				conv.Send(creationTimeoutMsg)
				return
			}

			kind = strings.ToLower(strings.TrimSpace(kind))
			if kind != TypeMCQ && kind != TypeOneWord && kind != TypeTrueFalse {
				conv.Send("⚠️ Invalid type! Try again.")
				continue
			}

			q.Type = kind
			break
		}

		if q.Type == TypeMCQ {
			conv.Send("🔢 Enter answer choices separated by commas (e.g., Yes, No, Maybe).")
			raw, ok := conv.Await(userID, timeouts.Field)
			if !ok {
				conv.Send(creationTimeoutMsg)
				return
			}
			for _, opt := range strings.Split(raw, ",") {
				q.Options = append(q.Options, strings.TrimSpace(opt))
			}
		}

		conv.Send("✅ Now, enter the correct answer:")
		answer, ok := conv.Await(userID, timeouts.Field)
		if !ok {
			conv.Send(creationTimeoutMsg)
			return
		}
		q.Answer = strings.TrimSpace(answer)

		questions = append(questions, q)
		conv.Send("✅ Question added! Type `done` if you're finished or continue adding more.")
	}

	if err := store.AppendQuestions(category, subcategory, questions); err != nil {
		conv.Send("⚠️ Failed to save the quiz bank.")
		return
	}

	conv.Send(fmt.Sprintf("🎉 Quiz for `%s -> %s` has been saved successfully!", category, subcategory))
}

// runDeleteQuiz deletes a category or one subcategory after explicit
// confirmation. Unknown names and declined confirmations leave the quiz
// bank untouched.
func runDeleteQuiz(conv Conversation, store *Store, userID string, timeouts Timeouts) {

	conv.Send("📌 Enter the category name you want to delete (or type `list` to view categories):")
	category, ok := conv.Await(userID, timeouts.Field)
	if !ok {
		conv.Send(deletionTimeoutMsg)
		return
	}
	category = strings.ToLower(strings.TrimSpace(category))

	if category == listKeyword {
		listings := store.Categories()
		if len(listings) == 0 {
			conv.Send("⚠️ No categories found.")
			return
		}

		names := make([]string, len(listings))
		for i, listing := range listings {
			names[i] = listing.Name
		}
		conv.Send("📚 Available Categories:\n" + strings.Join(names, "\n"))
		return
	}

	if !store.HasCategory(category) {
		conv.Send(fmt.Sprintf("⚠️ Category `%s` not found.", category))
		return
	}

	conv.Send(fmt.Sprintf("📌 Enter the subcategory to delete (or type `all` to delete the whole category `%s`):", category))
	subcategory, ok := conv.Await(userID, timeouts.Field)
	if !ok {
		conv.Send(deletionTimeoutMsg)
		return
	}
	subcategory = strings.ToLower(strings.TrimSpace(subcategory))

	if subcategory == allKeyword {
		conv.Send(fmt.Sprintf("⚠️ Are you sure you want to delete the entire category `%s`? Type `confirm` to proceed.", category))
		if !awaitConfirmation(conv, userID, timeouts) {
			return
		}

		if err := store.DeleteCategory(category); err != nil {
			conv.Send("⚠️ Failed to save the quiz bank.")
			return
		}
		conv.Send(fmt.Sprintf("✅ Category `%s` and all its quizzes have been deleted!", category))
		return
	}

	if !store.HasSubcategory(category, subcategory) {
		conv.Send(fmt.Sprintf("⚠️ Subcategory `%s` not found in `%s`.", subcategory, category))
		return
	}

	conv.Send(fmt.Sprintf("⚠️ Are you sure you want to delete `%s -> %s`? Type `confirm` to proceed.", category, subcategory))
	if !awaitConfirmation(conv, userID, timeouts) {
		return
	}

	if err := store.DeleteSubcategory(category, subcategory); err != nil {
		conv.Send("⚠️ Failed to save the quiz bank.")
		return
	}
	conv.Send(fmt.Sprintf("✅ Subcategory `%s` in `%s` has been deleted!", subcategory, category))
}

// awaitConfirmation waits for the confirmation keyword; anything else,
// including a timeout, cancels
func awaitConfirmation(conv Conversation, userID string, timeouts Timeouts) bool {
	reply, ok := conv.Await(userID, timeouts.Confirm)
	if !ok {
		conv.Send(deletionTimeoutMsg)
		return false
	}

	if !strings.EqualFold(strings.TrimSpace(reply), confirmKeyword) {
		conv.Send("❌ Deletion canceled.")
		return false
	}

	return true
}
