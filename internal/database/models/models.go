package models

import (
	"time"

	"gorm.io/gorm"
)

// JudgeStatus is the closed set of judgment states a submission can be in.
type JudgeStatus string

const (
	StatusWaiting             JudgeStatus = "Waiting"
	StatusRunning             JudgeStatus = "Running"
	StatusAccepted            JudgeStatus = "Accepted"
	StatusCompilationError    JudgeStatus = "CompilationError"
	StatusRuntimeError        JudgeStatus = "RuntimeError"
	StatusWrongAnswer         JudgeStatus = "WrongAnswer"
	StatusMemoryLimitExceeded JudgeStatus = "MemoryLimitExceeded"
	StatusTimeLimitExceeded   JudgeStatus = "TimeLimitExceeded"
	StatusOutputLimitExceeded JudgeStatus = "OutputLimitExceeded"
	StatusInternalError       JudgeStatus = "InternalError"
)

// AllStatuses lists every valid judge status.
var AllStatuses = []JudgeStatus{
	StatusWaiting,
	StatusRunning,
	StatusAccepted,
	StatusCompilationError,
	StatusRuntimeError,
	StatusWrongAnswer,
	StatusMemoryLimitExceeded,
	StatusTimeLimitExceeded,
	StatusOutputLimitExceeded,
	StatusInternalError,
}

// IsValid reports whether s is a member of the closed status set.
func (s JudgeStatus) IsValid() bool {
	for _, v := range AllStatuses {
		if s == v {
			return true
		}
	}
	return false
}

type User struct {
	ID        string `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	Username     string `gorm:"uniqueIndex" json:"username"`
	PasswordHash string `json:"-"`
	Name         string `gorm:"uniqueIndex" json:"name"`
	Admin        bool   `json:"admin"`
}

type Contest struct {
	ID        string `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Published   bool      `json:"published"`
	// PenaltySeconds is added to the adjusted time once per counted
	// penalty.
	PenaltySeconds int `json:"penalty"`
}

// Penalty returns the penalty as a duration.
func (c *Contest) Penalty() time.Duration {
	return time.Duration(c.PenaltySeconds) * time.Second
}

// IsBegun reports whether the contest has reached its start time.
func (c *Contest) IsBegun(now time.Time) bool {
	return !now.Before(c.StartTime)
}

// IsFinished reports whether the contest has reached its end time.
func (c *Contest) IsFinished(now time.Time) bool {
	return !now.Before(c.EndTime)
}

// IsAccessible reports whether the contest is visible to the requester.
func (c *Contest) IsAccessible(isAdmin bool) bool {
	return c.Published || isAdmin
}

type Problem struct {
	ContestID string `gorm:"primaryKey" json:"contest_id"`
	ID        string `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Title       string `json:"title"`
	Description string `json:"description"`
	TimeLimit   int    `json:"time_limit"`   // seconds
	MemoryLimit int    `json:"memory_limit"` // MiB
	Score       int    `json:"score"`
}

type Environment struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Name             string `json:"name"`
	Active           bool   `json:"active"`
	Published        bool   `json:"published"`
	CompileImageName string `json:"compile_image_name,omitempty"`
	TestImageName    string `json:"test_image_name,omitempty"`
}

type Submission struct {
	ID        string `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time
	UpdatedAt time.Time

	ContestID     string `gorm:"index:submissions_contest_problem_idx" json:"contest_id"`
	ProblemID     string `gorm:"index:submissions_contest_problem_idx" json:"problem_id"`
	UserID        string `gorm:"index" json:"user_id"`
	User          User   `json:"user"`
	EnvironmentID uint   `json:"environment_id"`

	Code      []byte      `json:"-"`
	CodeBytes int         `json:"code_bytes"`
	Status    JudgeStatus `gorm:"index" json:"status"`

	MaxTime   *time.Duration `json:"max_time,omitempty"`
	MaxMemory *int           `json:"max_memory,omitempty"` // KiB

	JudgeResults []JudgeResult `gorm:"foreignKey:SubmissionID;constraint:OnDelete:CASCADE" json:"judge_results,omitempty"`
}

// IsAccessible reports whether the submission code is visible to the
// requester. Everything is public once the contest is over; before that only
// the owner and admins may look.
func (s *Submission) IsAccessible(contest *Contest, userID string, isAdmin bool, now time.Time) bool {
	if contest.IsFinished(now) || isAdmin {
		return true
	}
	return s.UserID == userID
}

type JudgeResult struct {
	ID        uint `gorm:"primaryKey" json:"-"`
	CreatedAt time.Time

	SubmissionID string      `gorm:"index" json:"submission_id"`
	ContestID    string      `json:"contest_id"`
	ProblemID    string      `json:"problem_id"`
	TestID       string      `json:"test_id"`
	Status       JudgeStatus `json:"status"`

	Time   *time.Duration `json:"time,omitempty"`
	Memory *int           `json:"memory,omitempty"` // KiB
}
