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

func (h *Handler) listContests(c *gin.Context) {
	isAdmin := c.GetBool("isAdmin")
	status := database.ContestStatus(c.Query("status"))
	p := util.ParsePagination(c)

	contests, total, err := database.ListContests(h.db, isAdmin, status, time.Now(), p)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}

	p.SetHeaders(c, total)
	util.Success(c, contests, "Contests retrieved")
}

func (h *Handler) getContest(c *gin.Context) {
	isAdmin := c.GetBool("isAdmin")

	contest, err := database.GetContest(h.db, c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, "contest not found")
		} else {
			util.Error(c, http.StatusInternalServerError, err)
		}
		return
	}
	// Unpublished contests are invisible to non-admins, indistinguishable
	// from missing ones.
	if !contest.IsAccessible(isAdmin) {
		util.Error(c, http.StatusNotFound, "contest not found")
		return
	}

	resp := gin.H{"contest": contest}
	// The problem set stays hidden until the contest begins.
	if contest.IsBegun(time.Now()) || isAdmin {
		problems, err := database.ListProblems(h.db, contest.ID)
		if err != nil {
			util.Error(c, http.StatusInternalServerError, err)
			return
		}
		resp["problems"] = problems
	}
	util.Success(c, resp, "Contest found")
}

func (h *Handler) createContest(c *gin.Context) {
	var req struct {
		ID          string    `json:"id" binding:"required"`
		Title       string    `json:"title" binding:"required"`
		Description string    `json:"description"`
		StartTime   time.Time `json:"start_time" binding:"required"`
		EndTime     time.Time `json:"end_time" binding:"required"`
		Published   bool      `json:"published"`
		Penalty     int       `json:"penalty"` // seconds
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, err)
		return
	}
	if !req.StartTime.Before(req.EndTime) {
		util.Error(c, http.StatusBadRequest, "start_time must be lesser than end_time")
		return
	}

	penalty := req.Penalty
	if penalty <= 0 {
		penalty = h.cfg.Contest.DefaultPenaltySeconds
	}

	contest := models.Contest{
		ID:             req.ID,
		Title:          req.Title,
		Description:    req.Description,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		Published:      req.Published,
		PenaltySeconds: penalty,
	}
	if err := database.CreateContest(h.db, &contest); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			util.Error(c, http.StatusConflict, "contest id already exists")
		} else {
			util.Error(c, http.StatusInternalServerError, err)
		}
		return
	}
	util.Created(c, contest, "Contest created")
}

func (h *Handler) updateContest(c *gin.Context) {
	contest, err := database.GetContest(h.db, c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, "contest not found")
		} else {
			util.Error(c, http.StatusInternalServerError, err)
		}
		return
	}

	var req struct {
		Title       *string    `json:"title"`
		Description *string    `json:"description"`
		StartTime   *time.Time `json:"start_time"`
		EndTime     *time.Time `json:"end_time"`
		Published   *bool      `json:"published"`
		Penalty     *int       `json:"penalty"` // seconds
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, err)
		return
	}

	if req.Title != nil {
		contest.Title = *req.Title
	}
	if req.Description != nil {
		contest.Description = *req.Description
	}
	if req.StartTime != nil {
		contest.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		contest.EndTime = *req.EndTime
	}
	if req.Published != nil {
		contest.Published = *req.Published
	}
	if req.Penalty != nil {
		contest.PenaltySeconds = *req.Penalty
	}

	if !contest.StartTime.Before(contest.EndTime) {
		util.Error(c, http.StatusBadRequest, "start_time must be lesser than end_time")
		return
	}

	if err := database.UpdateContest(h.db, contest); err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}
	util.Success(c, contest, "Contest updated")
}
