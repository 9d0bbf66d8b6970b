package util_test

import (
	"net/http/httptest"
	"testing"

	"github.com/auklet-oj/auklet/internal/util"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newTestContext(t *testing.T, url string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", url, nil)
	return c, w
}

func TestParsePaginationDefaults(t *testing.T) {
	c, _ := newTestContext(t, "/contests")
	p := util.ParsePagination(c)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.PerPage)
	assert.Equal(t, 0, p.Offset())
}

func TestParsePagination(t *testing.T) {
	c, _ := newTestContext(t, "/contests?page=3&per_page=50")
	p := util.ParsePagination(c)
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 50, p.PerPage)
	assert.Equal(t, 100, p.Offset())
	assert.Equal(t, 50, p.Limit())
}

func TestParsePaginationBounds(t *testing.T) {
	c, _ := newTestContext(t, "/contests?page=0&per_page=5000")
	p := util.ParsePagination(c)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 1000, p.PerPage)

	c, _ = newTestContext(t, "/contests?page=-1&per_page=abc")
	p = util.ParsePagination(c)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.PerPage)
}

func TestSetHeaders(t *testing.T) {
	c, w := newTestContext(t, "/contests?page=2&per_page=10")
	p := util.ParsePagination(c)
	p.SetHeaders(c, 25)

	assert.Equal(t, "25", w.Header().Get("X-Total"))
	assert.Equal(t, "3", w.Header().Get("X-Total-Pages"))
	assert.Equal(t, "10", w.Header().Get("X-Per-Page"))
	assert.Equal(t, "2", w.Header().Get("X-Page"))
}
