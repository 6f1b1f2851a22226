package grading

import (
	"strconv"
	"strings"

	"github.com/abhisek/factz/internal/selector"
)

// Unanswered is the parsed value of blank or malformed input. No product
// of positive factors equals it, so it always grades as wrong.
const Unanswered = -1

// ParseAnswer converts a learner's input into an integer.
//
// Normalization rules:
// - Whitespace is trimmed
// - Leading zeros and a leading '+' are accepted ("007" is 7)
// - Empty, negative, non-numeric or overflowing input yields Unanswered
func ParseAnswer(input string) int {
	input = strings.TrimSpace(input)
	if input == "" {
		return Unanswered
	}
	n, err := strconv.ParseInt(input, 10, 32)
	if err != nil || n < 0 {
		return Unanswered
	}
	return int(n)
}

// Result is the graded outcome of one question.
type Result struct {
	Question selector.Question
	Input    string
	Parsed   int
	Expected int
	Correct  bool
}

// Answered reports whether the learner entered a usable number.
func (r Result) Answered() bool {
	return r.Parsed != Unanswered
}

// Record converts the result into the selector's feedback form.
func (r Result) Record() selector.AnswerRecord {
	return selector.AnswerRecord{Row: r.Question.Row, Col: r.Question.Col, Correct: r.Correct}
}

// Grade checks one input against its question.
func Grade(q selector.Question, input string) Result {
	parsed := ParseAnswer(input)
	expected := q.Product()
	return Result{
		Question: q,
		Input:    input,
		Parsed:   parsed,
		Expected: expected,
		Correct:  parsed == expected,
	}
}

// GradeBatch grades inputs positionally against the batch. Missing
// inputs count as unanswered; extra inputs are ignored.
func GradeBatch(batch selector.Batch, inputs []string) []Result {
	results := make([]Result, len(batch.Questions))
	for i, q := range batch.Questions {
		var in string
		if i < len(inputs) {
			in = inputs[i]
		}
		results[i] = Grade(q, in)
	}
	return results
}

// Records converts results for RecordFeedback.
func Records(results []Result) []selector.AnswerRecord {
	out := make([]selector.AnswerRecord, len(results))
	for i, r := range results {
		out[i] = r.Record()
	}
	return out
}

// CountCorrect returns the number of correct results.
func CountCorrect(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Correct {
			n++
		}
	}
	return n
}
