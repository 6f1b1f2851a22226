package drill

import (
	"errors"
	"fmt"

	"github.com/abhisek/factz/internal/selector"
)

// DefaultStartLevel is the smallest level whose range holds a full batch of ten.
const DefaultStartLevel = 4

var (
	ErrNotStarted         = errors.New("drill not started")
	ErrAlreadyStarted     = errors.New("drill already started")
	ErrNotAwaitingAnswers = errors.New("no round is awaiting answers")
	ErrRoundOutstanding   = errors.New("current round has not been graded")
	ErrAnswerCount        = errors.New("answer count does not match batch size")
)

// Phase is the round lifecycle: questions are served, then graded.
type Phase int

const (
	PhaseAwaitingAnswers Phase = iota // Batch served, waiting for submission
	PhaseGraded                       // Feedback applied, waiting for Next
)

func (p Phase) String() string {
	switch p {
	case PhaseAwaitingAnswers:
		return "awaiting-answers"
	case PhaseGraded:
		return "graded"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Config controls a drill session.
type Config struct {
	Selector   selector.Config `yaml:"selector"`
	StartLevel int             `yaml:"start_level"`
}

// DefaultConfig returns the leveled drill starting at DefaultStartLevel.
func DefaultConfig() Config {
	return Config{
		Selector:   selector.DefaultConfig(),
		StartLevel: DefaultStartLevel,
	}
}

// Validate checks the selector settings and that the start level can
// serve a full batch.
func (c Config) Validate() error {
	if err := c.Selector.Validate(); err != nil {
		return err
	}
	if c.StartLevel < 1 || c.StartLevel > c.Selector.MaxLevel {
		return fmt.Errorf("%w: start level %d not in [1, %d]",
			selector.ErrInvalidLevel, c.StartLevel, c.Selector.MaxLevel)
	}
	if minLevel := c.Selector.MinLevel(); c.StartLevel < minLevel {
		return fmt.Errorf("%w: start level %d is below %d",
			selector.ErrBatchTooLarge, c.StartLevel, minLevel)
	}
	return nil
}

// State is the persistent part of a drill: enough to resume practice later.
type State struct {
	Level   int       `json:"level"`
	Size    int       `json:"size"`
	Weights []float64 `json:"weights"`
	Rounds  int       `json:"rounds"`
}

// Table rebuilds the weight table captured in the state.
func (s State) Table() (*selector.WeightTable, error) {
	return selector.NewWeightTableFrom(s.Size, s.Weights)
}
