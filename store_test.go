package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(t.TempDir())
}

func TestBankRoundTrip(t *testing.T) {
	st := testStore(t)

	questions := []Question{
		{Type: TypeTrueFalse, Question: "Python is interpreted", Answer: "true"},
		{Type: TypeMCQ, Question: "Pick the right one", Answer: "Yes", Options: []string{"Yes", "No"}},
		{Type: TypeOneWord, Question: "Capital of France?", Answer: "Paris"},
	}
	if err := st.AppendQuestions("python", "basics", questions); err != nil {
		t.Fatal(err)
	}

	got, ok := st.Questions("python", "basics")
	if !ok {
		t.Fatal("expected subcategory to exist after append")
	}
	if !cmp.Equal(questions, got) {
		t.Errorf("round trip mismatch: %s", cmp.Diff(questions, got))
	}
}

func TestMissingDocumentsActEmpty(t *testing.T) {
	st := testStore(t)

	if listings := st.Categories(); len(listings) != 0 {
		t.Errorf("expected no categories, got %+v", listings)
	}
	if score := st.Score("alice#0001"); score != 0 {
		t.Errorf("expected score 0, got %d", score)
	}
	if st.Attempted("1", "python", "basics") {
		t.Error("expected no attempt on empty store")
	}
}

func TestCorruptDocumentsActEmpty(t *testing.T) {
	st := testStore(t)

	for _, name := range []string{bankFile, boardFile, attemptsFile} {
		if err := os.WriteFile(filepath.Join(st.dir, name), []byte("{broken json"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	if listings := st.Categories(); len(listings) != 0 {
		t.Errorf("expected no categories from corrupt bank, got %+v", listings)
	}
	if score := st.Score("alice#0001"); score != 0 {
		t.Errorf("expected score 0 from corrupt leaderboard, got %d", score)
	}
	if st.Attempted("1", "python", "basics") {
		t.Error("expected no attempt from corrupt log")
	}

	// And the store keeps working on top of the rubble
	if _, err := st.AddScore("alice#0001", 3); err != nil {
		t.Fatal(err)
	}
	if score := st.Score("alice#0001"); score != 3 {
		t.Errorf("expected score 3 after recovery, got %d", score)
	}
}

func TestAppendPreservesOrderAndExistingContent(t *testing.T) {
	st := testStore(t)

	first := []Question{{Type: TypeOneWord, Question: "q1", Answer: "a1"}}
	second := []Question{
		{Type: TypeOneWord, Question: "q2", Answer: "a2"},
		{Type: TypeOneWord, Question: "q3", Answer: "a3"},
	}

	if err := st.AppendQuestions("python", "basics", first); err != nil {
		t.Fatal(err)
	}
	if err := st.AppendQuestions("python", "basics", second); err != nil {
		t.Fatal(err)
	}

	got, _ := st.Questions("python", "basics")
	want := append(append([]Question{}, first...), second...)
	if !cmp.Equal(want, got) {
		t.Errorf("append should extend in order: %s", cmp.Diff(want, got))
	}
}

func TestEmptyAppendLeavesBankUnchanged(t *testing.T) {
	st := testStore(t)

	if err := st.AppendQuestions("python", "basics", []Question{{Type: TypeOneWord, Question: "q", Answer: "a"}}); err != nil {
		t.Fatal(err)
	}

	if err := st.AppendQuestions("go", "slices", nil); err != nil {
		t.Fatal(err)
	}

	listings := st.Categories()
	if len(listings) != 1 || listings[0].Name != "python" {
		t.Errorf("empty append must not create entries, got %+v", listings)
	}
}

func TestDeleteSubcategory(t *testing.T) {
	st := testStore(t)

	q := []Question{{Type: TypeOneWord, Question: "q", Answer: "a"}}
	st.AppendQuestions("python", "basics", q)
	st.AppendQuestions("python", "advanced", q)

	if err := st.DeleteSubcategory("python", "basics"); err != nil {
		t.Fatal(err)
	}

	if st.HasSubcategory("python", "basics") {
		t.Error("deleted subcategory still present")
	}
	if !st.HasSubcategory("python", "advanced") {
		t.Error("sibling subcategory should survive")
	}
	if !st.HasCategory("python") {
		t.Error("category with remaining subcategories should survive")
	}
}

func TestDeletingLastSubcategoryRemovesCategory(t *testing.T) {
	st := testStore(t)

	st.AppendQuestions("python", "basics", []Question{{Type: TypeOneWord, Question: "q", Answer: "a"}})

	if err := st.DeleteSubcategory("python", "basics"); err != nil {
		t.Fatal(err)
	}

	if st.HasCategory("python") {
		t.Error("category should disappear with its last subcategory")
	}
}

func TestDeleteCategory(t *testing.T) {
	st := testStore(t)

	q := []Question{{Type: TypeOneWord, Question: "q", Answer: "a"}}
	st.AppendQuestions("python", "basics", q)
	st.AppendQuestions("go", "slices", q)

	if err := st.DeleteCategory("python"); err != nil {
		t.Fatal(err)
	}

	if st.HasCategory("python") {
		t.Error("deleted category still present")
	}
	if !st.HasCategory("go") {
		t.Error("unrelated category should survive")
	}
}

func TestAttemptMarkIsPermanent(t *testing.T) {
	st := testStore(t)

	if err := st.MarkAttempted("42", "python", "basics"); err != nil {
		t.Fatal(err)
	}

	if !st.Attempted("42", "python", "basics") {
		t.Error("attempt not recorded")
	}
	if st.Attempted("42", "python", "advanced") {
		t.Error("unrelated subcategory marked")
	}
	if st.Attempted("7", "python", "basics") {
		t.Error("unrelated user marked")
	}

	// Survives a fresh store over the same directory
	again := NewStore(st.dir)
	if !again.Attempted("42", "python", "basics") {
		t.Error("attempt not persisted")
	}
}

func TestAttemptLogLayout(t *testing.T) {
	st := testStore(t)

	if err := st.MarkAttempted("42", "python", "basics"); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(st.dir, attemptsFile))
	if err != nil {
		t.Fatal(err)
	}

	var doc map[string]map[string]map[string]bool
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	if !doc["42"]["python"]["basics"] {
		t.Errorf("unexpected attempt log layout: %s", data)
	}
}

func TestAddScoreIsAdditive(t *testing.T) {
	st := testStore(t)

	total, err := st.AddScore("alice#0001", 2)
	if err != nil {
		t.Fatal(err)
	}
	if total != 2 {
		t.Errorf("expected total 2, got %d", total)
	}

	total, err = st.AddScore("alice#0001", 3)
	if err != nil {
		t.Fatal(err)
	}
	if total != 5 {
		t.Errorf("expected total 5, got %d", total)
	}

	if score := st.Score("alice#0001"); score != 5 {
		t.Errorf("expected persisted score 5, got %d", score)
	}
}

func TestTopOrderingAndLimit(t *testing.T) {
	st := testStore(t)

	st.AddScore("carol", 7)
	st.AddScore("alice", 9)
	st.AddScore("bob", 7)
	st.AddScore("dave", 1)

	want := []Player{{"alice", 9}, {"bob", 7}, {"carol", 7}, {"dave", 1}}
	if got := st.Top(10); !cmp.Equal(want, got) {
		t.Errorf("ranking mismatch: %s", cmp.Diff(want, got))
	}

	if got := st.Top(2); !cmp.Equal(want[:2], got) {
		t.Errorf("limit mismatch: %s", cmp.Diff(want[:2], got))
	}
}
