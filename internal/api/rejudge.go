package api

import (
	"errors"
	"net/http"

	"github.com/auklet-oj/auklet/internal/database"
	"github.com/auklet-oj/auklet/internal/pubsub"
	"github.com/auklet-oj/auklet/internal/util"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// rejudge wipes the judge results of one (contest, problem) pair, resets
// every submission to Waiting and re-enqueues them for the judge worker.
func (h *Handler) rejudge(c *gin.Context) {
	contest := h.loadVisibleContest(c)
	if contest == nil {
		return
	}

	problem, err := database.GetProblem(h.db, contest.ID, c.Param("pid"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, "problem not found")
		} else {
			util.Error(c, http.StatusInternalServerError, err)
		}
		return
	}

	ids, err := database.ResetSubmissionsForRejudge(h.db, contest.ID, problem.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}

	for _, id := range ids {
		h.broker.PublishJudgeTask(pubsub.JudgeTask{
			ContestID:    contest.ID,
			ProblemID:    problem.ID,
			SubmissionID: id,
		})
	}

	zap.S().Infof("rejudge queued for contest %s problem %s: %d submissions", contest.ID, problem.ID, len(ids))
	util.Success(c, gin.H{"requeued": len(ids)}, "Rejudge queued")
}
