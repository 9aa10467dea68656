package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mx-space/folio/internal/middleware"
	"github.com/mx-space/folio/internal/pkg/response"
	"gorm.io/gorm"
)

type Handler struct {
	svc     *Service
	db      *gorm.DB
	limiter gin.HandlerFunc
}

// NewHandler builds the auth endpoints. limiter guards login and may be nil.
func NewHandler(svc *Service, db *gorm.DB, limiter gin.HandlerFunc) *Handler {
	return &Handler{svc: svc, db: db, limiter: limiter}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	a := rg.Group("/auth")

	login := []gin.HandlerFunc{h.login}
	if h.limiter != nil {
		login = append([]gin.HandlerFunc{h.limiter}, login...)
	}
	a.POST("/login", login...)
	a.POST("/logout", h.logout)
	a.GET("/session", middleware.OptionalAuth(h.db), h.session)
}

// POST /auth/login
func (h *Handler) login(c *gin.Context) {
	var dto LoginDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	token, p, err := h.svc.Login(c.Request.Context(), dto.Email, dto.Password, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		response.Error(c, err, "Failed to sign in")
		return
	}
	setAuthTokenCookie(c, token, int(h.svc.ttl.Seconds()))
	response.OK(c, loginResponse{Token: token, User: p})
}

// POST /auth/logout
func (h *Handler) logout(c *gin.Context) {
	if err := h.svc.Logout(c.Request.Context(), middleware.ExtractToken(c)); err != nil {
		response.Error(c, err, "Failed to sign out")
		return
	}
	clearAuthTokenCookie(c)
	response.Success(c)
}

// GET /auth/session
func (h *Handler) session(c *gin.Context) {
	response.OK(c, middleware.CurrentPrincipal(c))
}

func setAuthTokenCookie(c *gin.Context, token string, maxAge int) {
	secure := c.Request.TLS != nil
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.CookieName, token, maxAge, "/", "", secure, true)
}

func clearAuthTokenCookie(c *gin.Context) {
	secure := c.Request.TLS != nil
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.CookieName, "", -1, "/", "", secure, true)
}
