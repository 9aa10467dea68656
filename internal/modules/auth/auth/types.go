package auth

import "github.com/mx-space/folio/internal/modules/auth/authn"

type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string           `json:"token"`
	User  *authn.Principal `json:"user"`
}
