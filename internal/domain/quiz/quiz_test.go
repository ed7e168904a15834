package quiz

import (
	"reflect"
	"strings"
	"testing"
)

func words(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}

func TestGeneratorsAreDeterministic(t *testing.T) {
	a := ForSkill("Python")
	b := ForSkill("Python")
	if len(a) != 4 || len(b) != 4 {
		t.Fatalf("expected 4 questions, got %d and %d", len(a), len(b))
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatal("generated questions differ between generations")
	}
	if !strings.Contains(a[0].Prompt, "Python") {
		t.Fatalf("prompt must mention the skill: %q", a[0].Prompt)
	}
}

func TestGeneratorShapes(t *testing.T) {
	for name, qs := range map[string][]Question{
		"skill":      ForSkill("Go"),
		"experience": ForExperience("Acme"),
		"project":    ForProject("Inventory API"),
	} {
		if len(qs) != 4 {
			t.Fatalf("%s: expected 4 questions, got %d", name, len(qs))
		}
		seen := map[int]bool{}
		for _, q := range qs {
			if seen[q.ID] {
				t.Fatalf("%s: duplicate question id %d", name, q.ID)
			}
			seen[q.ID] = true
			if q.Kind == KindMultipleChoice && len(q.Options) == 0 {
				t.Fatalf("%s: multiple choice question %d without options", name, q.ID)
			}
		}
	}
}

func TestEvaluateNoQuestions(t *testing.T) {
	if got := Evaluate(nil, map[string]string{"1": "yes"}); got != 0 {
		t.Fatalf("got %v, want 0", got)
	}
}

func TestEvaluateEmptyAnswers(t *testing.T) {
	qs := ForSkill("Go")
	if got := Evaluate(qs, nil); got != 0 {
		t.Fatalf("got %v, want 0", got)
	}
	if got := Evaluate(qs, map[string]string{"1": "   "}); got != 0 {
		t.Fatalf("whitespace answer must not score: got %v", got)
	}
}

func TestEvaluateWordBonuses(t *testing.T) {
	qs := []Question{{ID: 1, Kind: KindText, MinWords: 20}}

	// Base points only: 15/25 = 60.
	if got := Evaluate(qs, map[string]string{"1": words(5)}); got != 60 {
		t.Fatalf("short answer: got %v, want 60", got)
	}
	// Partial bonus at 70% of the minimum: 20/25 = 80.
	if got := Evaluate(qs, map[string]string{"1": words(14)}); got != 80 {
		t.Fatalf("partial answer: got %v, want 80", got)
	}
	// Full bonus at the minimum: 25/25 = 100.
	if got := Evaluate(qs, map[string]string{"1": words(20)}); got != 100 {
		t.Fatalf("full answer: got %v, want 100", got)
	}
}

func TestEvaluateMonotoneInAnswerCount(t *testing.T) {
	qs := ForSkill("Go")
	one := Evaluate(qs, map[string]string{"1": "Advanced"})
	two := Evaluate(qs, map[string]string{"1": "Advanced", "2": "3 years"})
	if two <= one {
		t.Fatalf("more answers must not lower the score: %v then %v", one, two)
	}
}

func TestEvaluateFullSubmissionPasses(t *testing.T) {
	qs := ForSkill("Go")
	answers := map[string]string{
		"1": "Advanced",
		"2": "4",
		"3": words(25),
		"4": words(12),
	}
	score := Evaluate(qs, answers)
	if !Passed(score) {
		t.Fatalf("complete submission should pass, got %v", score)
	}
	if score > 100 {
		t.Fatalf("score above 100: %v", score)
	}
}

func TestPassedThreshold(t *testing.T) {
	if Passed(59.99) {
		t.Fatal("59.99 must not pass")
	}
	if !Passed(60) {
		t.Fatal("60 must pass")
	}
}
