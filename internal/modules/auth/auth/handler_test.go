package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mx-space/folio/internal/database/dbtest"
	"github.com/mx-space/folio/internal/middleware"
	"github.com/mx-space/folio/internal/modules/auth/authn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(t *testing.T, v authn.Verifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	db := dbtest.New(t)
	r := gin.New()
	NewHandler(NewService(db, v, 0), db, nil).RegisterRoutes(r.Group("/api"))
	return r
}

func post(r http.Handler, target, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func getSession(r http.Handler, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/auth/session", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.CookieName {
			return c
		}
	}
	t.Fatalf("no %s cookie in response", middleware.CookieName)
	return nil
}

func TestLoginSessionLogout(t *testing.T) {
	r := newRouter(t, authn.StaticVerifier{Email: "admin@example.com", Password: "pw"})

	assert.Equal(t, "null", getSession(r, nil).Body.String())

	w := post(r, "/api/auth/login", `{"email":"admin@example.com","password":"pw"}`, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var body loginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Token)
	assert.Equal(t, &authn.Principal{ID: "1", Email: "admin@example.com", Name: "Admin"}, body.User)

	cookie := sessionCookie(t, w)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, body.Token, cookie.Value)

	w = getSession(r, cookie)
	assert.JSONEq(t, `{"id":"1","email":"admin@example.com","name":"Admin"}`, w.Body.String())

	w = post(r, "/api/auth/logout", "", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())
	assert.Equal(t, "null", getSession(r, cookie).Body.String())
}

func TestLoginFailures(t *testing.T) {
	r := newRouter(t, authn.StaticVerifier{Email: "admin@example.com", Password: "pw"})

	w := post(r, "/api/auth/login", `{"email":"admin@example.com","password":"wrong"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid credentials")
	assert.Empty(t, w.Result().Cookies())

	assert.Equal(t, http.StatusUnauthorized, post(r, "/api/auth/login", `{}`, nil).Code)
	assert.Equal(t, http.StatusBadRequest, post(r, "/api/auth/login", `not json`, nil).Code)
}

func TestLoginFailsClosedWithoutCredentials(t *testing.T) {
	r := newRouter(t, authn.StaticVerifier{})

	w := post(r, "/api/auth/login", `{"email":"a@b.c","password":"x"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "admin credentials not configured")
}

func TestLogoutWithoutTokenSucceeds(t *testing.T) {
	r := newRouter(t, authn.StaticVerifier{})
	assert.Equal(t, http.StatusOK, post(r, "/api/auth/logout", "", nil).Code)
}
