package grading

import (
	"testing"

	"github.com/abhisek/factz/internal/selector"
)

func TestParseAnswer(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"42", 42},
		{" 42 ", 42},
		{"042", 42},
		{"+7", 7},
		{"0", 0},
		{"", Unanswered},
		{"   ", Unanswered},
		{"abc", Unanswered},
		{"4 2", Unanswered},
		{"3.5", Unanswered},
		{"-6", Unanswered},
		{"99999999999999999999", Unanswered},
	}

	for _, tc := range tests {
		if got := ParseAnswer(tc.input); got != tc.want {
			t.Errorf("ParseAnswer(%q) = %d, want %d", tc.input, got, tc.want)
		}
	}
}

func TestGrade(t *testing.T) {
	q := selector.Question{Row: 7, Col: 8}

	tests := []struct {
		input string
		want  bool
	}{
		{"56", true},
		{"056", true},
		{" 56\t", true},
		{"54", false},
		{"", false},
		{"fifty-six", false},
	}

	for _, tc := range tests {
		r := Grade(q, tc.input)
		if r.Correct != tc.want {
			t.Errorf("Grade(7 × 8, %q).Correct = %v, want %v", tc.input, r.Correct, tc.want)
		}
		if r.Expected != 56 {
			t.Errorf("Expected = %d, want 56", r.Expected)
		}
	}
}

func TestGradeBatch_MissingInputsUnanswered(t *testing.T) {
	batch := selector.Batch{Questions: []selector.Question{
		{Row: 2, Col: 3},
		{Row: 4, Col: 4},
		{Row: 5, Col: 6},
	}}

	results := GradeBatch(batch, []string{"6", "15"})
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	if !results[0].Correct {
		t.Error("2 × 3 = 6 should be correct")
	}
	if results[1].Correct {
		t.Error("4 × 4 = 15 should be wrong")
	}
	if results[2].Answered() || results[2].Correct {
		t.Errorf("missing input should be unanswered, got %+v", results[2])
	}
	if got := CountCorrect(results); got != 1 {
		t.Errorf("CountCorrect = %d, want 1", got)
	}
}

func TestRecords(t *testing.T) {
	results := []Result{
		Grade(selector.Question{Row: 3, Col: 4}, "12"),
		Grade(selector.Question{Row: 9, Col: 9}, "18"),
	}

	recs := Records(results)
	want := []selector.AnswerRecord{
		{Row: 3, Col: 4, Correct: true},
		{Row: 9, Col: 9, Correct: false},
	}
	for i := range want {
		if recs[i] != want[i] {
			t.Errorf("Records[%d] = %+v, want %+v", i, recs[i], want[i])
		}
	}
}
