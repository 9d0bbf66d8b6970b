package ranking

import (
	"fmt"

	"github.com/auklet-oj/auklet/internal/database/models"
)

// Category groups judge statuses by how the ranking engine treats them.
type Category int

const (
	// CategoryAccepted marks a solve; scanning the problem stops here.
	CategoryAccepted Category = iota
	// CategoryPending marks a judgment still in flight.
	CategoryPending
	// CategoryNonPenalizing marks failures that never count as an attempt
	// (compiler trouble, judge-side faults).
	CategoryNonPenalizing
	// CategoryPenalizing marks failures that cost a penalty once the
	// problem is eventually solved.
	CategoryPenalizing
)

// Classify maps a judge status to its ranking category. A status outside the
// closed set is an upstream data-integrity defect and yields an
// InvariantViolationError.
func Classify(s models.JudgeStatus) (Category, error) {
	switch s {
	case models.StatusAccepted:
		return CategoryAccepted, nil
	case models.StatusWaiting, models.StatusRunning:
		return CategoryPending, nil
	case models.StatusCompilationError, models.StatusInternalError:
		return CategoryNonPenalizing, nil
	case models.StatusRuntimeError,
		models.StatusWrongAnswer,
		models.StatusMemoryLimitExceeded,
		models.StatusTimeLimitExceeded,
		models.StatusOutputLimitExceeded:
		return CategoryPenalizing, nil
	default:
		return 0, &InvariantViolationError{Reason: fmt.Sprintf("unknown judge status %q", s)}
	}
}
