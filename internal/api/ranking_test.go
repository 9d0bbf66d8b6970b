package api_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/auklet-oj/auklet/internal/api"
	"github.com/auklet-oj/auklet/internal/auth"
	"github.com/auklet-oj/auklet/internal/config"
	"github.com/auklet-oj/auklet/internal/database"
	"github.com/auklet-oj/auklet/internal/database/models"
	"github.com/auklet-oj/auklet/internal/pubsub"
	"github.com/auklet-oj/auklet/internal/ranking"
	"github.com/auklet-oj/auklet/internal/util"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestServer(t *testing.T) (*gin.Engine, *gorm.DB, *config.Config) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.Auth.JWT.Secret = "test-secret"
	cfg.Auth.JWT.ExpireHours = 1
	cfg.Contest.DefaultPenaltySeconds = 1200

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := database.Init(dsn)
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, err := db.DB()
		require.NoError(t, err)
		sqlDB.Close()
	})

	return api.NewRouter(cfg, db, pubsub.NewBroker()), db, cfg
}

func seedRunningContest(t *testing.T, db *gorm.DB, id string, published bool, start time.Time) {
	t.Helper()
	require.NoError(t, db.Create(&models.Contest{
		ID:             id,
		Title:          "Contest " + id,
		StartTime:      start,
		EndTime:        start.Add(2 * time.Hour),
		Published:      published,
		PenaltySeconds: 1200,
	}).Error)
	require.NoError(t, db.Create(&models.Problem{
		ContestID: id, ID: "a", Title: "A", Score: 100,
	}).Error)
	require.NoError(t, db.Create(&models.User{
		ID: "u1", Username: "solver", Name: "Solver",
	}).Error)
	require.NoError(t, db.Create(&models.Submission{
		ID:        "s1",
		ContestID: id,
		ProblemID: "a",
		UserID:    "u1",
		Status:    models.StatusAccepted,
		CreatedAt: start.Add(10 * time.Minute),
	}).Error)
}

func getRankings(t *testing.T, r *gin.Engine, contestID, token string) (*httptest.ResponseRecorder, []ranking.Entry) {
	t.Helper()
	req := httptest.NewRequest("GET", "/api/v1/contests/"+contestID+"/rankings", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		return w, nil
	}
	var resp util.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	raw, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var entries []ranking.Entry
	require.NoError(t, json.Unmarshal(raw, &entries))
	return w, entries
}

func TestGetRankings(t *testing.T) {
	r, db, _ := newTestServer(t)
	seedRunningContest(t, db, "spring", true, time.Now().Add(-time.Hour))

	w, entries := getRankings(t, r, "spring", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, entries, 1)

	assert.Equal(t, 1, entries[0].Ranking)
	assert.Equal(t, "u1", entries[0].UserID)
	assert.Equal(t, "Solver", entries[0].UserName)
	require.NotNil(t, entries[0].Score)
	assert.Equal(t, 100, *entries[0].Score)
	require.NotNil(t, entries[0].AdjustedTime)
	assert.InDelta(t, (10 * time.Minute).Seconds(), *entries[0].AdjustedTime, 1.0)
}

func TestGetRankingsContestNotFound(t *testing.T) {
	r, _, _ := newTestServer(t)

	w, _ := getRankings(t, r, "missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetRankingsNotYetStarted(t *testing.T) {
	r, db, cfg := newTestServer(t)
	seedRunningContest(t, db, "future", true, time.Now().Add(time.Hour))

	w, _ := getRankings(t, r, "future", "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Admins get no early access either.
	token, err := auth.GenerateJWT("root", true, cfg.Auth.JWT.Secret, 1)
	require.NoError(t, err)
	w, _ = getRankings(t, r, "future", token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestGetRankingsUnpublishedContest(t *testing.T) {
	r, db, cfg := newTestServer(t)
	seedRunningContest(t, db, "hidden", false, time.Now().Add(-time.Hour))

	// Hidden from anonymous users, indistinguishable from a missing contest.
	w, _ := getRankings(t, r, "hidden", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	token, err := auth.GenerateJWT("root", true, cfg.Auth.JWT.Secret, 1)
	require.NoError(t, err)
	w, entries := getRankings(t, r, "hidden", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, entries, 1)
}
