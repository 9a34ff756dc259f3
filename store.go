package main

import (
	"encoding/json"
	"errors"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// Question type tokens as stored in the quiz bank
const (
	TypeMCQ       = "mcq"
	TypeOneWord   = "one_word"
	TypeTrueFalse = "true_false"
)

// Document filenames inside the data directory
const (
	bankFile     = "quizzes.json"
	boardFile    = "leaderboard.json"
	attemptsFile = "quiz_attempts.json"
)

var (
	// ErrAlreadyAttempted is returned when a user retries a quiz they finished before
	ErrAlreadyAttempted = errors.New("quiz already attempted")
	// ErrUnknownQuiz is returned when a category or subcategory doesn't exist
	ErrUnknownQuiz = errors.New("unknown category or subcategory")
)

// Question holds a single quiz bank entry
type Question struct {
	Type     string   `json:"type"`
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Options  []string `json:"options,omitempty"`
}

// Bank maps category -> subcategory -> ordered question list
type Bank map[string]map[string][]Question

// Board maps display name -> cumulative score
type Board map[string]int

// Attempts maps user ID -> category -> subcategory -> attempted
type Attempts map[string]map[string]map[string]bool

// CategoryListing pairs a category name with its subcategory names
type CategoryListing struct {
	Name          string
	Subcategories []string
}

// Store owns the three on-disk JSON documents. Every operation reads its
// document fresh and writes the whole thing back; the per-document locks keep
// concurrent flows from overwriting each other's updates.
type Store struct {
	dir        string
	bankMu     sync.Mutex
	boardMu    sync.Mutex
	attemptsMu sync.Mutex
}

// NewStore returns a store backed by JSON documents in dir
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Reads a JSON document into out; reports whether anything valid was read.
// A missing or corrupt file counts as an empty document.
func (st *Store) loadDoc(name string, out interface{}) bool {
	data, err := os.ReadFile(filepath.Join(st.dir, name))
	if err != nil {
		return false
	}

	if err := json.Unmarshal(data, out); err != nil {
		log.Printf("ERROR, Unmarshalling %s: %s\n", name, err)
		return false
	}

	return true
}

// Writes a document back to disk as indented JSON
func (st *Store) saveDoc(name string, doc interface{}) error {
	b, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		log.Printf("ERROR, Marshalling %s: %s\n", name, err)
		return err
	}

	if err := os.WriteFile(filepath.Join(st.dir, name), b, 0644); err != nil {
		log.Printf("ERROR, Writing %s: %s\n", name, err)
		return err
	}

	return nil
}

func (st *Store) loadBank() Bank {
	var bank Bank
	if !st.loadDoc(bankFile, &bank) || bank == nil {
		return make(Bank)
	}
	return bank
}

func (st *Store) loadBoard() Board {
	var board Board
	if !st.loadDoc(boardFile, &board) || board == nil {
		return make(Board)
	}
	return board
}

func (st *Store) loadAttempts() Attempts {
	var attempts Attempts
	if !st.loadDoc(attemptsFile, &attempts) || attempts == nil {
		return make(Attempts)
	}
	return attempts
}

// Questions returns the ordered question list for a subcategory
func (st *Store) Questions(category, subcategory string) ([]Question, bool) {
	st.bankMu.Lock()
	defer st.bankMu.Unlock()

	subs, ok := st.loadBank()[category]
	if !ok {
		return nil, false
	}
	questions, ok := subs[subcategory]
	return questions, ok
}

// HasCategory checks whether a category exists in the quiz bank
func (st *Store) HasCategory(category string) bool {
	st.bankMu.Lock()
	defer st.bankMu.Unlock()

	_, ok := st.loadBank()[category]
	return ok
}

// HasSubcategory checks whether a subcategory exists within a category
func (st *Store) HasSubcategory(category, subcategory string) bool {
	st.bankMu.Lock()
	defer st.bankMu.Unlock()

	_, ok := st.loadBank()[category][subcategory]
	return ok
}

// Categories returns every category with its subcategories in name order
func (st *Store) Categories() []CategoryListing {
	st.bankMu.Lock()
	bank := st.loadBank()
	st.bankMu.Unlock()

	listings := make([]CategoryListing, 0, len(bank))
	for category, subs := range bank {
		names := make([]string, 0, len(subs))
		for sub := range subs {
			names = append(names, sub)
		}
		sort.Strings(names)
		listings = append(listings, CategoryListing{Name: category, Subcategories: names})
	}
	sort.Slice(listings, func(i, j int) bool { return listings[i].Name < listings[j].Name })

	return listings
}

// AppendQuestions adds questions to the end of a subcategory, creating the
// category and subcategory entries when needed. An empty batch still rewrites
// the document, with its content unchanged.
func (st *Store) AppendQuestions(category, subcategory string, questions []Question) error {
	st.bankMu.Lock()
	defer st.bankMu.Unlock()

	bank := st.loadBank()
	if len(questions) > 0 {
		if bank[category] == nil {
			bank[category] = make(map[string][]Question)
		}
		bank[category][subcategory] = append(bank[category][subcategory], questions...)
	}

	return st.saveDoc(bankFile, bank)
}

// DeleteCategory removes a whole category and everything under it
func (st *Store) DeleteCategory(category string) error {
	st.bankMu.Lock()
	defer st.bankMu.Unlock()

	bank := st.loadBank()
	delete(bank, category)

	return st.saveDoc(bankFile, bank)
}

// DeleteSubcategory removes one subcategory, dropping the category once empty
func (st *Store) DeleteSubcategory(category, subcategory string) error {
	st.bankMu.Lock()
	defer st.bankMu.Unlock()

	bank := st.loadBank()
	if subs, ok := bank[category]; ok {
		delete(subs, subcategory)
		if len(subs) == 0 {
			delete(bank, category)
		}
	}

	return st.saveDoc(bankFile, bank)
}

// Attempted reports whether a user already ran a given quiz
func (st *Store) Attempted(userID, category, subcategory string) bool {
	st.attemptsMu.Lock()
	defer st.attemptsMu.Unlock()

	return st.loadAttempts()[userID][category][subcategory]
}

// MarkAttempted permanently records an attempt; never reset afterwards
func (st *Store) MarkAttempted(userID, category, subcategory string) error {
	st.attemptsMu.Lock()
	defer st.attemptsMu.Unlock()

	attempts := st.loadAttempts()
	if attempts[userID] == nil {
		attempts[userID] = make(map[string]map[string]bool)
	}
	if attempts[userID][category] == nil {
		attempts[userID][category] = make(map[string]bool)
	}
	attempts[userID][category][subcategory] = true

	return st.saveDoc(attemptsFile, attempts)
}

// AddScore adds points to a user's total and returns the new total
func (st *Store) AddScore(name string, points int) (int, error) {
	st.boardMu.Lock()
	defer st.boardMu.Unlock()

	board := st.loadBoard()
	board[name] += points

	return board[name], st.saveDoc(boardFile, board)
}

// Score returns a user's cumulative total, 0 when absent
func (st *Store) Score(name string) int {
	st.boardMu.Lock()
	defer st.boardMu.Unlock()

	return st.loadBoard()[name]
}

// Top returns the highest scores in descending order
func (st *Store) Top(n int) []Player {
	st.boardMu.Lock()
	board := st.loadBoard()
	st.boardMu.Unlock()

	result := ranking(board)
	if len(result) > n {
		result = result[:n]
	}
	return result
}
