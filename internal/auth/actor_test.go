package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/academic-admin-service/internal/domain"
)

const testSecret = "test-secret"

func signedToken(t *testing.T, claims ActorClaims, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestVerifyValidToken(t *testing.T) {
	v := NewTokenVerifier(testSecret)
	tokenStr := signedToken(t, ActorClaims{
		Role: domain.RoleAdministrator,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}, testSecret)

	actor, err := v.Verify(tokenStr)
	require.NoError(t, err)
	require.Equal(t, "user-1", actor.ID)
	require.Equal(t, domain.RoleAdministrator, actor.Role)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	v := NewTokenVerifier(testSecret)
	tokenStr := signedToken(t, ActorClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"},
	}, "different-secret")

	_, err := v.Verify(tokenStr)
	require.Error(t, err)
}

func TestVerifyRejectsExpired(t *testing.T) {
	v := NewTokenVerifier(testSecret)
	tokenStr := signedToken(t, ActorClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}, testSecret)

	_, err := v.Verify(tokenStr)
	require.Error(t, err)
}

func TestVerifyRejectsMissingSubject(t *testing.T) {
	v := NewTokenVerifier(testSecret)
	tokenStr := signedToken(t, ActorClaims{Role: domain.RoleFaculty}, testSecret)

	_, err := v.Verify(tokenStr)
	require.Error(t, err)
}

func TestVerifyRejectsWrongAlgorithm(t *testing.T) {
	v := NewTokenVerifier(testSecret)
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, ActorClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"},
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = v.Verify(signed)
	require.Error(t, err)
}
