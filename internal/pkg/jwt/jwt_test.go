package jwt

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignParse(t *testing.T) {
	token, err := Sign(Identity{ID: "1", Email: "a@b.c", Name: "Admin"}, "sid-1", time.Hour)
	require.NoError(t, err)

	claims, err := Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "1", claims.UserID)
	assert.Equal(t, "a@b.c", claims.Email)
	assert.Equal(t, "Admin", claims.Name)
	assert.Equal(t, "sid-1", claims.SessionID)
}

func TestParseRejects(t *testing.T) {
	expired, err := Sign(Identity{ID: "1"}, "", -time.Minute)
	require.NoError(t, err)
	_, err = Parse(expired)
	assert.Error(t, err)

	foreign, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, Claims{UserID: "1"}).SignedString([]byte("other"))
	require.NoError(t, err)
	_, err = Parse(foreign)
	assert.Error(t, err)

	none, err := jwtlib.NewWithClaims(jwtlib.SigningMethodNone, Claims{UserID: "1"}).SignedString(jwtlib.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = Parse(none)
	assert.Error(t, err)
}
