package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/auklet-oj/auklet/internal/database"
	"github.com/auklet-oj/auklet/internal/database/models"
	"github.com/auklet-oj/auklet/internal/pubsub"
	"github.com/auklet-oj/auklet/internal/util"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func (h *Handler) createSubmission(c *gin.Context) {
	userID := c.GetString("userID")

	contest := h.loadVisibleContest(c)
	if contest == nil {
		return
	}

	now := time.Now()
	if !contest.IsBegun(now) {
		util.Error(c, http.StatusForbidden, "contest has not started")
		return
	}
	if contest.IsFinished(now) {
		util.Error(c, http.StatusForbidden, "contest has ended")
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

	var req struct {
		Code          string `json:"code" binding:"required"`
		EnvironmentID uint   `json:"environment_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, err)
		return
	}

	env, err := database.GetEnvironment(h.db, req.EnvironmentID)
	if err != nil || !env.Active {
		util.Error(c, http.StatusBadRequest, "unknown or inactive environment")
		return
	}

	sub := models.Submission{
		ID:            uuid.NewString(),
		ContestID:     contest.ID,
		ProblemID:     problem.ID,
		UserID:        userID,
		EnvironmentID: env.ID,
		Code:          []byte(req.Code),
		CodeBytes:     len(req.Code),
		Status:        models.StatusWaiting,
	}
	if err := database.CreateSubmission(h.db, &sub); err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}

	h.broker.PublishJudgeTask(pubsub.JudgeTask{
		ContestID:    contest.ID,
		ProblemID:    problem.ID,
		SubmissionID: sub.ID,
	})

	zap.S().Infof("submission %s queued for judging (contest %s, problem %s)", sub.ID, contest.ID, problem.ID)
	util.Created(c, sub, "Submission accepted")
}

func (h *Handler) listSubmissions(c *gin.Context) {
	contest := h.loadVisibleContest(c)
	if contest == nil {
		return
	}

	p := util.ParsePagination(c)
	subs, total, err := database.ListSubmissions(h.db, contest.ID, c.Query("problem_id"), c.Query("user_id"), p)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}

	p.SetHeaders(c, total)
	util.Success(c, subs, "Submissions retrieved")
}

func (h *Handler) getSubmission(c *gin.Context) {
	userID := c.GetString("userID")
	isAdmin := c.GetBool("isAdmin")

	sub, err := database.GetSubmission(h.db, c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, "submission not found")
		} else {
			util.Error(c, http.StatusInternalServerError, err)
		}
		return
	}

	contest, err := database.GetContest(h.db, sub.ContestID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}

	if !sub.IsAccessible(contest, userID, isAdmin, time.Now()) {
		util.Error(c, http.StatusForbidden, "you can only view your own submissions until the contest ends")
		return
	}

	util.Success(c, gin.H{"submission": sub, "code": string(sub.Code)}, "Submission retrieved")
}

// updateSubmissionStatus is the write-back path of the out-of-process judge
// worker: it records the new status and fans it out to live listeners.
func (h *Handler) updateSubmissionStatus(c *gin.Context) {
	var req struct {
		Status models.JudgeStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, err)
		return
	}
	if !req.Status.IsValid() {
		util.Error(c, http.StatusBadRequest, "unknown judge status")
		return
	}

	sub, err := database.GetSubmission(h.db, c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, "submission not found")
		} else {
			util.Error(c, http.StatusInternalServerError, err)
		}
		return
	}

	if err := database.UpdateSubmissionStatus(h.db, sub.ID, req.Status); err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}

	h.broker.PublishStatusUpdate(pubsub.StatusUpdate{
		SubmissionID: sub.ID,
		ContestID:    sub.ContestID,
		ProblemID:    sub.ProblemID,
		UserID:       sub.UserID,
		Status:       req.Status,
	})

	util.Success(c, nil, "Submission status updated")
}
