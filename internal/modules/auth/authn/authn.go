// Package authn decides who the caller is and what they may reach.
package authn

import (
	"context"
	"crypto/subtle"
	"strings"

	"github.com/mx-space/folio/internal/pkg/apperr"
	"golang.org/x/crypto/bcrypt"
)

const (
	AdminPrefix = "/admin"
	LoginPath   = AdminPrefix + "/login"

	adminID   = "1"
	adminName = "Admin"
)

// Principal is the identity attached to an authenticated session.
type Principal struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Verifier checks a credential pair and returns the matching principal.
type Verifier interface {
	Verify(ctx context.Context, identity, secret string) (*Principal, error)
}

func admin(email string) *Principal {
	return &Principal{ID: adminID, Email: email, Name: adminName}
}

// StaticVerifier compares credentials against a configured plaintext pair.
type StaticVerifier struct {
	Email    string
	Password string
}

func (v StaticVerifier) Verify(_ context.Context, identity, secret string) (*Principal, error) {
	if identity == "" || secret == "" {
		return nil, apperr.Auth("missing email or password")
	}
	if v.Email == "" || v.Password == "" {
		return nil, apperr.Auth("admin credentials not configured")
	}
	emailOK := subtle.ConstantTimeCompare([]byte(identity), []byte(v.Email)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(secret), []byte(v.Password)) == 1
	if !emailOK || !passOK {
		return nil, apperr.Auth("invalid credentials")
	}
	return admin(v.Email), nil
}

// BcryptVerifier is StaticVerifier with a bcrypt hash in place of the password.
type BcryptVerifier struct {
	Email string
	Hash  string
}

func (v BcryptVerifier) Verify(_ context.Context, identity, secret string) (*Principal, error) {
	if identity == "" || secret == "" {
		return nil, apperr.Auth("missing email or password")
	}
	if v.Email == "" || v.Hash == "" {
		return nil, apperr.Auth("admin credentials not configured")
	}
	emailOK := subtle.ConstantTimeCompare([]byte(identity), []byte(v.Email)) == 1
	hashErr := bcrypt.CompareHashAndPassword([]byte(v.Hash), []byte(secret))
	if !emailOK || hashErr != nil {
		return nil, apperr.Auth("invalid credentials")
	}
	return admin(v.Email), nil
}

// NewVerifier prefers a bcrypt hash when one is configured.
func NewVerifier(email, password, hash string) Verifier {
	if hash != "" {
		return BcryptVerifier{Email: email, Hash: hash}
	}
	return StaticVerifier{Email: email, Password: password}
}

// Authorized reports whether a request for path may proceed. Paths under
// AdminPrefix need a principal; the login page and everything else are open.
func Authorized(path string, p *Principal) bool {
	if !IsAdminPath(path) || path == LoginPath || strings.HasPrefix(path, LoginPath+"/") {
		return true
	}
	return p != nil
}

func IsAdminPath(path string) bool {
	return path == AdminPrefix || strings.HasPrefix(path, AdminPrefix+"/")
}
