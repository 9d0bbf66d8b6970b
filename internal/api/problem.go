package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/auklet-oj/auklet/internal/database"
	"github.com/auklet-oj/auklet/internal/database/models"
	"github.com/auklet-oj/auklet/internal/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// loadVisibleContest fetches a contest and applies the visibility rules
// shared by the problem and submission handlers. It writes the error
// response itself and returns nil when the caller should stop.
func (h *Handler) loadVisibleContest(c *gin.Context) *models.Contest {
	isAdmin := c.GetBool("isAdmin")

	contest, err := database.GetContest(h.db, c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, "contest not found")
		} else {
			util.Error(c, http.StatusInternalServerError, err)
		}
		return nil
	}
	if !contest.IsAccessible(isAdmin) {
		util.Error(c, http.StatusNotFound, "contest not found")
		return nil
	}
	return contest
}

func (h *Handler) listProblems(c *gin.Context) {
	contest := h.loadVisibleContest(c)
	if contest == nil {
		return
	}
	if !contest.IsBegun(time.Now()) && !c.GetBool("isAdmin") {
		util.Error(c, http.StatusForbidden, "contest has not started")
		return
	}

	problems, err := database.ListProblems(h.db, contest.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}
	util.Success(c, problems, "Problems retrieved")
}

func (h *Handler) getProblem(c *gin.Context) {
	contest := h.loadVisibleContest(c)
	if contest == nil {
		return
	}
	if !contest.IsBegun(time.Now()) && !c.GetBool("isAdmin") {
		util.Error(c, http.StatusForbidden, "contest has not started")
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
	util.Success(c, problem, "Problem found")
}

func (h *Handler) createProblem(c *gin.Context) {
	contest := h.loadVisibleContest(c)
	if contest == nil {
		return
	}

	var req struct {
		ID          string `json:"id" binding:"required"`
		Title       string `json:"title" binding:"required"`
		Description string `json:"description"`
		TimeLimit   int    `json:"time_limit"`
		MemoryLimit int    `json:"memory_limit"`
		Score       int    `json:"score"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, err)
		return
	}
	if req.Score < 0 {
		util.Error(c, http.StatusBadRequest, "score must not be negative")
		return
	}

	problem := models.Problem{
		ContestID:   contest.ID,
		ID:          req.ID,
		Title:       req.Title,
		Description: req.Description,
		TimeLimit:   req.TimeLimit,
		MemoryLimit: req.MemoryLimit,
		Score:       req.Score,
	}
	if err := database.CreateProblem(h.db, &problem); err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}
	util.Created(c, problem, "Problem created")
}

func (h *Handler) updateProblem(c *gin.Context) {
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

	var req struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		TimeLimit   *int    `json:"time_limit"`
		MemoryLimit *int    `json:"memory_limit"`
		Score       *int    `json:"score"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, err)
		return
	}

	if req.Title != nil {
		problem.Title = *req.Title
	}
	if req.Description != nil {
		problem.Description = *req.Description
	}
	if req.TimeLimit != nil {
		problem.TimeLimit = *req.TimeLimit
	}
	if req.MemoryLimit != nil {
		problem.MemoryLimit = *req.MemoryLimit
	}
	if req.Score != nil {
		if *req.Score < 0 {
			util.Error(c, http.StatusBadRequest, "score must not be negative")
			return
		}
		problem.Score = *req.Score
	}

	if err := database.UpdateProblem(h.db, problem); err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}
	util.Success(c, problem, "Problem updated")
}

func (h *Handler) deleteProblem(c *gin.Context) {
	contest := h.loadVisibleContest(c)
	if contest == nil {
		return
	}

	if err := database.DeleteProblem(h.db, contest.ID, c.Param("pid")); err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}
	util.Success(c, nil, "Problem deleted")
}
