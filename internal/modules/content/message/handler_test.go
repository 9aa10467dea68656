package message

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

func TestHandler_ReadScenario(t *testing.T) {
	r := newRouter(t)

	w := do(r, http.MethodPost, "/api/messages", `{"name":"Ann","email":"ann@example.com","content":"**hi**"}`, false)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var first models.Message
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &first))
	require.Equal(t, http.StatusOK, do(r, http.MethodPost, "/api/messages", `{"name":"Bo","email":"bo@example.com","content":"yo"}`, false).Code)

	w = do(r, http.MethodPut, "/api/messages/"+first.ID, `{"id":"`+first.ID+`","read":true}`, true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(r, http.MethodGet, "/api/messages", "", true)
	require.Equal(t, http.StatusOK, w.Code)
	var items []models.Message
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 2)
	for _, m := range items {
		assert.Equal(t, m.ID == first.ID, m.Read, m.Name)
	}

	w = do(r, http.MethodGet, "/api/messages/"+first.ID, "", true)
	require.Equal(t, http.StatusOK, w.Code)
	var detail Detail
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	assert.True(t, detail.Read)
	assert.Equal(t, "<p><strong>hi</strong></p>\n", detail.ContentHTML)
}

func TestHandler_InboxIsAdminOnly(t *testing.T) {
	r := newRouter(t)

	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/api/messages", "", false).Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/api/messages/x", "", false).Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodDelete, "/api/messages/x", "", false).Code)
}

func TestHandler_PagedInbox(t *testing.T) {
	r := newRouter(t)
	for _, n := range []string{"a", "b", "c"} {
		do(r, http.MethodPost, "/api/messages", `{"name":"`+n+`","email":"`+n+`@example.com","content":"x"}`, false)
	}

	w := do(r, http.MethodGet, "/api/messages?page=1&size=2", "", true)
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data       []models.Message `json:"data"`
		Pagination struct {
			Total       int64 `json:"total"`
			HasNextPage bool  `json:"hasNextPage"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Data, 2)
	assert.EqualValues(t, 3, body.Pagination.Total)
	assert.True(t, body.Pagination.HasNextPage)

	w = do(r, http.MethodGet, "/api/messages/unread", "", true)
	assert.JSONEq(t, `{"count":3}`, w.Body.String())
}

func TestHandler_ContactValidation(t *testing.T) {
	r := newRouter(t)

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/api/messages", `{"name":"Ann","content":"x"}`, false).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/api/messages", `{"name":"Ann","email":"not-an-email","content":"x"}`, false).Code)
}
