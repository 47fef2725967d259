package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// Service signs and verifies the two credential kinds the API uses:
// customer tokens carry only the user id, admin tokens additionally carry
// role=admin and are signed with a separate secret.
type Service struct {
	JWTSecret      []byte
	AdminJWTSecret []byte
}

func (s *Service) SignUser(userID uint) (string, error) {
	exp := time.Now().Add(24 * time.Hour)
	claims := jwt.MapClaims{
		"sub": float64(userID),
		"exp": exp.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.JWTSecret)
}

func (s *Service) SignAdmin(adminID uint) (string, error) {
	exp := time.Now().Add(12 * time.Hour)
	claims := jwt.MapClaims{
		"sub":  float64(adminID),
		"role": "admin",
		"exp":  exp.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.AdminJWTSecret)
}

func (s *Service) VerifyUser(raw string) (uint, error) {
	return verify(raw, s.JWTSecret, "")
}

func (s *Service) VerifyAdmin(raw string) (uint, error) {
	return verify(raw, s.AdminJWTSecret, "admin")
}

func verify(raw string, secret []byte, wantRole string) (uint, error) {
	t, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signature method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !t.Valid {
		return 0, ErrInvalidToken
	}

	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidToken
	}

	sub, ok := claims["sub"].(float64)
	if !ok {
		return 0, ErrInvalidToken
	}

	if wantRole != "" {
		role, ok := claims["role"].(string)
		if !ok || role != wantRole {
			return 0, ErrInvalidToken
		}
	}

	return uint(sub), nil
}
