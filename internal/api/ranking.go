package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/auklet-oj/auklet/internal/database"
	"github.com/auklet-oj/auklet/internal/ranking"
	"github.com/auklet-oj/auklet/internal/util"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// getRankings serves the contest leaderboard, recomputed from a consistent
// snapshot on every request. A contest that has not begun is rejected for
// admins and regular users alike.
func (h *Handler) getRankings(c *gin.Context) {
	// Unpublished contests must look missing to non-admins, same as getContest.
	if contest, err := database.GetContest(h.db, c.Param("id")); err == nil {
		if !contest.IsAccessible(c.GetBool("isAdmin")) {
			util.Error(c, http.StatusNotFound, "contest not found")
			return
		}
	}

	entries, err := database.ComputeRanking(h.db, c.Param("id"), time.Now())
	if err != nil {
		switch {
		case errors.Is(err, ranking.ErrNotFound):
			util.Error(c, http.StatusNotFound, "contest not found")
		case errors.Is(err, ranking.ErrNotYetRunning):
			util.Error(c, http.StatusForbidden, "contest has not started")
		default:
			var violation *ranking.InvariantViolationError
			if errors.As(err, &violation) {
				zap.S().Errorf("ranking invariant violation for contest %s: %v", c.Param("id"), violation)
			}
			util.Error(c, http.StatusInternalServerError, err)
		}
		return
	}

	util.Success(c, entries, "Rankings retrieved")
}
