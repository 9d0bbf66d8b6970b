package ranking_test

import (
	"testing"

	"github.com/auklet-oj/auklet/internal/database/models"
	"github.com/auklet-oj/auklet/internal/ranking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		status models.JudgeStatus
		want   ranking.Category
	}{
		{models.StatusAccepted, ranking.CategoryAccepted},
		{models.StatusWaiting, ranking.CategoryPending},
		{models.StatusRunning, ranking.CategoryPending},
		{models.StatusCompilationError, ranking.CategoryNonPenalizing},
		{models.StatusInternalError, ranking.CategoryNonPenalizing},
		{models.StatusRuntimeError, ranking.CategoryPenalizing},
		{models.StatusWrongAnswer, ranking.CategoryPenalizing},
		{models.StatusMemoryLimitExceeded, ranking.CategoryPenalizing},
		{models.StatusTimeLimitExceeded, ranking.CategoryPenalizing},
		{models.StatusOutputLimitExceeded, ranking.CategoryPenalizing},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			got, err := ranking.Classify(tt.status)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifyCoversClosedSet(t *testing.T) {
	for _, s := range models.AllStatuses {
		_, err := ranking.Classify(s)
		assert.NoError(t, err, "status %s must classify", s)
	}
}

func TestClassifyUnknownStatus(t *testing.T) {
	_, err := ranking.Classify(models.JudgeStatus("SegmentationFault"))
	require.Error(t, err)

	var violation *ranking.InvariantViolationError
	require.ErrorAs(t, err, &violation)
	assert.Contains(t, violation.Error(), "SegmentationFault")
}
