package store

import (
	"context"
	"time"

	"github.com/abhisek/factz/internal/drill"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit     int       // max results (0 = unlimited)
	After     int64     // sequence > After
	Before    int64     // sequence < Before
	From      time.Time // timestamp >= From
	To        time.Time // timestamp <= To
	SessionID string    // exact match when set
}

// SnapshotData captures the learner state at a point in time.
type SnapshotData struct {
	Version int          `json:"version"`
	Drill   *drill.State `json:"drill,omitempty"`
}

// Snapshot represents a point-in-time capture of learner state.
type Snapshot struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	Data      SnapshotData
}

// SnapshotRepo manages learner state snapshots.
type SnapshotRepo interface {
	// Save stores a new snapshot.
	Save(ctx context.Context, snap *Snapshot) error

	// Latest returns the most recent snapshot, or nil if none exist.
	Latest(ctx context.Context) (*Snapshot, error)

	// Prune deletes all but the N most recent snapshots.
	Prune(ctx context.Context, keep int) error
}

// Session event actions.
const (
	ActionStart = "start"
	ActionEnd   = "end"
)

// SessionEventData captures the start or end of a drill session.
type SessionEventData struct {
	SessionID    string
	Action       string
	Level        int
	Rounds       int
	Questions    int
	Correct      int
	DurationSecs int
}

// RoundEventData captures one graded round and its answers.
type RoundEventData struct {
	SessionID   string
	Round       int
	LevelBefore int
	LevelAfter  int
	Correct     int
	Total       int
	Fallback    bool
	Answers     []AnswerEventData
}

// AnswerEventData captures one graded answer.
type AnswerEventData struct {
	Row           int
	Col           int
	LearnerAnswer string
	Parsed        int
	Correct       bool
	WeightBefore  float64
	WeightAfter   float64
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// SessionRecord is a session folded from its start and end events.
type SessionRecord struct {
	SessionID    string
	StartedAt    time.Time
	EndedAt      time.Time // zero if the session never ended cleanly
	StartLevel   int
	EndLevel     int
	Rounds       int
	Questions    int
	Correct      int
	DurationSecs int
}

// Ended reports whether an end event was recorded.
func (s SessionRecord) Ended() bool {
	return !s.EndedAt.IsZero()
}

// RoundRecord is a stored round event.
type RoundRecord struct {
	Sequence    int64
	Timestamp   time.Time
	SessionID   string
	Round       int
	LevelBefore int
	LevelAfter  int
	Correct     int
	Total       int
	Fallback    bool
}

// FactAccuracy aggregates answers for one fact across all sessions.
type FactAccuracy struct {
	Row      int
	Col      int
	Attempts int
	Correct  int
}

// Accuracy returns the fraction answered correctly, 0 without attempts.
func (f FactAccuracy) Accuracy() float64 {
	if f.Attempts == 0 {
		return 0
	}
	return float64(f.Correct) / float64(f.Attempts)
}

// LLMEvent is a stored LLM request event.
type LLMEvent struct {
	ID           int
	Sequence     int64
	Timestamp    time.Time
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMUsageStat aggregates LLM usage for one purpose.
type LLMUsageStat struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int
}

// LLMModelUsage aggregates LLM usage for one model.
type LLMModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendSessionEvent records a session start or end.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// AppendRound records a round and its answers in one transaction and
	// returns the round's sequence number.
	AppendRound(ctx context.Context, data RoundEventData) (int64, error)

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QuerySessionSummaries returns up to limit sessions, most recent first.
	QuerySessionSummaries(ctx context.Context, limit int) ([]SessionRecord, error)

	// QueryRounds returns round events matching opts, most recent first.
	QueryRounds(ctx context.Context, opts QueryOpts) ([]RoundRecord, error)

	// FactAccuracy returns per-fact answer totals ordered by (row, col).
	FactAccuracy(ctx context.Context) ([]FactAccuracy, error)

	// QueryLLMEvents returns LLM events matching opts, most recent first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns one LLM event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)

	// LLMUsageByPurpose aggregates token usage per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStat, error)

	// LLMUsageByModel aggregates token usage per model.
	LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error)
}
