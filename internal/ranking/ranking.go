package ranking

import (
	"errors"
	"time"

	"github.com/auklet-oj/auklet/internal/database/models"
)

var (
	// ErrNotFound is returned when the requested contest does not exist.
	ErrNotFound = errors.New("contest not found")
	// ErrNotYetRunning is returned when the contest has not reached its
	// start time. There is no admin exemption: admins are rejected too.
	ErrNotYetRunning = errors.New("contest has not started")
)

// InvariantViolationError reports data handed to the ranking engine that
// breaks an upstream guarantee, e.g. a judgment with a status outside the
// closed set or referencing a problem the contest does not have. Guessing a
// classification would silently corrupt penalty accounting, so the
// computation fails instead.
type InvariantViolationError struct {
	Reason string
}

func (e *InvariantViolationError) Error() string {
	return "ranking invariant violated: " + e.Reason
}

// Contest is the slice of contest data the ranking engine needs.
type Contest struct {
	ID        string
	StartTime time.Time
	EndTime   time.Time
	Penalty   time.Duration
}

// Problem pairs a problem id with its score value.
type Problem struct {
	ID    string
	Score int
}

// Participant is one row of the participant roster.
type Participant struct {
	ID    string
	Name  string
	Admin bool
}

// Judgment is one raw submission judgment.
type Judgment struct {
	UserID    string
	ProblemID string
	Status    models.JudgeStatus
	Created   time.Time
}

// Store supplies the snapshot a ranking is computed from. Implementations
// should serve all four reads from a single consistent view (one
// transaction): a judgment set newer than the problem or participant roster
// would make score totals disagree with the problems actually present.
type Store interface {
	// GetContest returns ErrNotFound when no such contest exists.
	GetContest(id string) (*Contest, error)
	ListProblems(contestID string) ([]Problem, error)
	// ListParticipants enumerates the full roster in a stable order; that
	// order decides ties beyond the sort key and the order of the
	// never-submitted tail.
	ListParticipants() ([]Participant, error)
	// ListJudgments may pre-filter to [windowStart, windowEnd) as an
	// optimization; the engine re-applies the boundary itself either way.
	ListJudgments(contestID string, windowStart, windowEnd time.Time) ([]Judgment, error)
}

// ProblemOutcome is one participant's result on one problem. Score and Time
// are set only when the problem was solved; Penalties counts penalizing
// attempts before acceptance (or all of them when never accepted), and
// Pending reports whether any judgment is still Waiting or Running.
type ProblemOutcome struct {
	Score     *int     `json:"score,omitempty"`
	Time      *float64 `json:"time,omitempty"` // seconds since contest start
	Penalties int      `json:"penalties"`
	Pending   bool     `json:"pending"`
}

// Entry is one row of the final leaderboard. For participants who never
// submitted, everything except Ranking, UserID and Problems stays unset.
type Entry struct {
	Ranking      int                       `json:"ranking"`
	UserID       string                    `json:"user_id"`
	UserName     string                    `json:"user_name,omitempty"`
	Score        *int                      `json:"score,omitempty"`
	Time         *float64                  `json:"time,omitempty"` // seconds
	Penalties    *int                      `json:"penalties,omitempty"`
	AdjustedTime *float64                  `json:"adjusted_time,omitempty"` // seconds
	Problems     map[string]ProblemOutcome `json:"problems"`
}
