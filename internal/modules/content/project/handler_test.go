package project

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mx-space/folio/internal/database/dbtest"
	"github.com/mx-space/folio/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	authMW := func(c *gin.Context) {
		if c.GetHeader("Authorization") != "Bearer admin" {
			c.AbortWithStatus(http.StatusUnauthorized)
		}
	}
	NewHandler(NewService(dbtest.New(t))).RegisterRoutes(r.Group("/api"), authMW)
	return r
}

func do(r http.Handler, method, target, body string, admin bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if admin {
		req.Header.Set("Authorization", "Bearer admin")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeProject(t *testing.T, w *httptest.ResponseRecorder) models.Project {
	t.Helper()
	var p models.Project
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p), w.Body.String())
	return p
}

func TestHandler_Scenario(t *testing.T) {
	r := newRouter(t)

	w := do(r, http.MethodPost, "/api/projects", `{"title":"Demo","technologies":[{"name":"React"}]}`, true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	created := decodeProject(t, w)
	require.NotEmpty(t, created.ID)

	w = do(r, http.MethodPut, "/api/projects/"+created.ID, `{"technologies":[{"name":"Vue"}]}`, true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(r, http.MethodGet, "/api/projects/"+created.ID, "", false)
	require.Equal(t, http.StatusOK, w.Code)
	got := decodeProject(t, w)
	require.Len(t, got.Technologies, 1)
	assert.Equal(t, "Vue", got.Technologies[0].Name)

	w = do(r, http.MethodDelete, "/api/projects/"+created.ID, "", true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())

	w = do(r, http.MethodGet, "/api/projects/"+created.ID, "", false)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Project not found")
}

func TestHandler_ListIsAPlainArray(t *testing.T) {
	r := newRouter(t)

	w := do(r, http.MethodGet, "/api/projects", "", false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())

	do(r, http.MethodPost, "/api/projects", `{"title":"Hidden","published":false}`, true)
	do(r, http.MethodPost, "/api/projects", `{"title":"Shown","featured":true}`, true)

	w = do(r, http.MethodGet, "/api/projects?published=true", "", false)
	var items []models.Project
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Shown", items[0].Title)

	// Only the literal "true" filters.
	w = do(r, http.MethodGet, "/api/projects?published=false&featured=1", "", false)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	assert.Len(t, items, 2)
}

func TestHandler_MutationsRequireAdmin(t *testing.T) {
	r := newRouter(t)

	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodPost, "/api/projects", `{"title":"x"}`, false).Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodPut, "/api/projects/x", `{}`, false).Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodDelete, "/api/projects/x", "", false).Code)
}

func TestHandler_BadPayloads(t *testing.T) {
	r := newRouter(t)

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/api/projects", `{}`, true).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/api/projects", `{"title":`, true).Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodPut, "/api/projects/missing", `{"title":"x"}`, true).Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodDelete, "/api/projects/missing", "", true).Code)
}
