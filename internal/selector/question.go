package selector

import (
	"fmt"
	"strconv"
	"strings"
)

// Question is a single multiplication fact row × col.
type Question struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Product returns the expected answer.
func (q Question) Product() int {
	return q.Row * q.Col
}

func (q Question) String() string {
	return fmt.Sprintf("%d × %d", q.Row, q.Col)
}

// ParseQuestion reads a fact written as "7x8", "7 × 8" or "7*8".
func ParseQuestion(s string) (Question, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, sep := range []string{"×", "x", "*"} {
		a, b, ok := strings.Cut(s, sep)
		if !ok {
			continue
		}
		row, err1 := strconv.Atoi(strings.TrimSpace(a))
		col, err2 := strconv.Atoi(strings.TrimSpace(b))
		if err1 != nil || err2 != nil || row < 1 || col < 1 {
			break
		}
		return Question{Row: row, Col: col}, nil
	}
	return Question{}, fmt.Errorf("invalid fact %q: want ROWxCOL", s)
}

// Batch is one round of distinct questions.
type Batch struct {
	Questions []Question

	// Attempts is the number of rejection-sampling draws made.
	Attempts int

	// Fallback is set when uniform sampling filled slots after
	// MaxAttempts draws were exhausted.
	Fallback bool
}

// Len returns the number of questions in the batch.
func (b Batch) Len() int {
	return len(b.Questions)
}

// AnswerRecord is the graded outcome for one question of a batch.
type AnswerRecord struct {
	Row     int
	Col     int
	Correct bool
}
