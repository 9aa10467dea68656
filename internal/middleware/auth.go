package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mx-space/folio/internal/modules/auth/authn"
	"github.com/mx-space/folio/internal/pkg/jwt"
	"github.com/mx-space/folio/internal/pkg/response"
	sessionpkg "github.com/mx-space/folio/internal/pkg/session"
	"gorm.io/gorm"
)

const (
	// CookieName carries the admin token for browser clients.
	CookieName = "folio-token"

	ContextKeyPrincipal = "principal"
	ContextKeySID       = "session_id"
)

// Auth returns a middleware that rejects requests without a live admin session.
func Auth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := ValidateTokenClaims(c, db, ExtractToken(c))
		if err != nil {
			response.Unauthorized(c)
			return
		}
		setClaims(c, claims)
		c.Next()
	}
}

// OptionalAuth sets the principal if a valid token is present, but does not block the request.
func OptionalAuth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, err := ValidateTokenClaims(c, db, ExtractToken(c)); err == nil {
			setClaims(c, claims)
		}
		c.Next()
	}
}

// AdminGate guards the dashboard pages. Browsers are redirected to the
// login page, other clients get 401.
func AdminGate(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var p *authn.Principal
		if claims, err := ValidateTokenClaims(c, db, ExtractToken(c)); err == nil {
			setClaims(c, claims)
			p = CurrentPrincipal(c)
		}
		if authn.Authorized(c.Request.URL.Path, p) {
			c.Next()
			return
		}
		if strings.Contains(c.GetHeader("Accept"), "text/html") {
			c.Redirect(http.StatusFound, authn.LoginPath)
			c.Abort()
			return
		}
		response.Unauthorized(c)
	}
}

// ValidateTokenClaims parses a JWT and checks that its session is still active.
func ValidateTokenClaims(c *gin.Context, db *gorm.DB, rawToken string) (*jwt.Claims, error) {
	token := NormalizeToken(rawToken)
	if token == "" {
		return nil, errors.New("token is required")
	}

	claims, err := jwt.Parse(token)
	if err != nil {
		return nil, err
	}
	active, err := sessionpkg.IsActive(c.Request.Context(), db, claims.UserID, claims.SessionID)
	if err != nil {
		return nil, err
	}
	if !active {
		return nil, errors.New("session expired or revoked")
	}
	return claims, nil
}

func setClaims(c *gin.Context, claims *jwt.Claims) {
	c.Set(ContextKeyPrincipal, &authn.Principal{ID: claims.UserID, Email: claims.Email, Name: claims.Name})
	c.Set(ContextKeySID, claims.SessionID)
}

// CurrentPrincipal returns the authenticated principal or nil.
func CurrentPrincipal(c *gin.Context) *authn.Principal {
	v, _ := c.Get(ContextKeyPrincipal)
	p, _ := v.(*authn.Principal)
	return p
}

// ExtractToken reads the token from the Authorization header, the token
// query parameter or the session cookie, in that order.
func ExtractToken(c *gin.Context) string {
	if token := NormalizeToken(c.GetHeader("Authorization")); token != "" {
		return token
	}
	if token := NormalizeToken(c.Query("token")); token != "" {
		return token
	}
	if raw, err := c.Cookie(CookieName); err == nil {
		return NormalizeToken(raw)
	}
	return ""
}

// NormalizeToken trims spaces and strips optional Bearer prefix.
func NormalizeToken(raw string) string {
	token := strings.TrimSpace(raw)
	if token == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(token), "bearer ") {
		return strings.TrimSpace(token[7:])
	}
	return token
}
