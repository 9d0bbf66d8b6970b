package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/auklet-oj/auklet/internal/database"
	"github.com/auklet-oj/auklet/internal/database/models"
	"github.com/auklet-oj/auklet/internal/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func (h *Handler) listEnvironments(c *gin.Context) {
	// Non-admins only see environments submissions may target.
	activeOnly := !c.GetBool("isAdmin")
	envs, err := database.ListEnvironments(h.db, activeOnly)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}
	util.Success(c, envs, "Environments retrieved")
}

func (h *Handler) createEnvironment(c *gin.Context) {
	var req struct {
		Name             string `json:"name" binding:"required"`
		Active           bool   `json:"active"`
		Published        bool   `json:"published"`
		CompileImageName string `json:"compile_image_name"`
		TestImageName    string `json:"test_image_name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, err)
		return
	}

	env := models.Environment{
		Name:             req.Name,
		Active:           req.Active,
		Published:        req.Published,
		CompileImageName: req.CompileImageName,
		TestImageName:    req.TestImageName,
	}
	if err := database.CreateEnvironment(h.db, &env); err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}
	util.Created(c, env, "Environment created")
}

func (h *Handler) updateEnvironment(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		util.Error(c, http.StatusBadRequest, "invalid environment id")
		return
	}

	env, err := database.GetEnvironment(h.db, uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, "environment not found")
		} else {
			util.Error(c, http.StatusInternalServerError, err)
		}
		return
	}

	var req struct {
		Name             *string `json:"name"`
		Active           *bool   `json:"active"`
		Published        *bool   `json:"published"`
		CompileImageName *string `json:"compile_image_name"`
		TestImageName    *string `json:"test_image_name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, err)
		return
	}

	if req.Name != nil {
		env.Name = *req.Name
	}
	if req.Active != nil {
		env.Active = *req.Active
	}
	if req.Published != nil {
		env.Published = *req.Published
	}
	if req.CompileImageName != nil {
		env.CompileImageName = *req.CompileImageName
	}
	if req.TestImageName != nil {
		env.TestImageName = *req.TestImageName
	}

	if err := database.UpdateEnvironment(h.db, env); err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}
	util.Success(c, env, "Environment updated")
}
