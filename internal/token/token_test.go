package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSignAndVerifyUser(t *testing.T) {
	s := &Service{JWTSecret: []byte("secret"), AdminJWTSecret: []byte("admin-secret")}

	raw, err := s.SignUser(42)
	require.NoError(t, err)

	id, err := s.VerifyUser(raw)
	require.NoError(t, err)
	require.Equal(t, uint(42), id)

	_, err = s.VerifyUser("garbage")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestAdminAndUserTokensAreNotInterchangeable(t *testing.T) {
	s := &Service{JWTSecret: []byte("secret"), AdminJWTSecret: []byte("admin-secret")}

	userTok, err := s.SignUser(1)
	require.NoError(t, err)
	adminTok, err := s.SignAdmin(2)
	require.NoError(t, err)

	_, err = s.VerifyAdmin(userTok)
	require.ErrorIs(t, err, ErrInvalidToken)

	_, err = s.VerifyUser(adminTok)
	require.ErrorIs(t, err, ErrInvalidToken)

	id, err := s.VerifyAdmin(adminTok)
	require.NoError(t, err)
	require.Equal(t, uint(2), id)
}

func TestWrongSecretRejected(t *testing.T) {
	a := &Service{JWTSecret: []byte("secret-a"), AdminJWTSecret: []byte("admin-a")}
	b := &Service{JWTSecret: []byte("secret-b"), AdminJWTSecret: []byte("admin-b")}

	raw, err := a.SignUser(7)
	require.NoError(t, err)

	_, err = b.VerifyUser(raw)
	require.ErrorIs(t, err, ErrInvalidToken)
}
