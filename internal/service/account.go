package service

import (
	"context"
	"fmt"

	"github.com/shopnext/backend/internal/hash"
	"github.com/shopnext/backend/internal/models"
	"github.com/shopnext/backend/internal/repo"
	"github.com/shopnext/backend/internal/token"
)

type AccountService struct {
	Repo   *repo.GormRepo
	Tokens *token.Service
}

func (s *AccountService) Info(ctx context.Context, rawToken string) (*models.User, error) {
	userID, err := s.Tokens.VerifyUser(rawToken)
	if err != nil {
		return nil, ErrUnauthorized
	}
	user, err := s.Repo.UserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: user", ErrNotFound)
	}
	return user, nil
}

func (s *AccountService) Update(ctx context.Context, rawToken, field, value string) error {
	userID, err := s.Tokens.VerifyUser(rawToken)
	if err != nil {
		return ErrUnauthorized
	}

	var column string
	switch field {
	case "name":
		column = "name"
	case "email":
		column = "email"
	case "password":
		column = "password_hash"
		value, err = hash.HashPassword(value)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: Invalid field", ErrValidation)
	}

	return s.Repo.UpdateUserField(ctx, userID, column, value)
}

func (s *AccountService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.Repo.ListUsers(ctx)
}

func (s *AccountService) Delete(ctx context.Context, rawToken string) error {
	userID, err := s.Tokens.VerifyUser(rawToken)
	if err != nil {
		return ErrUnauthorized
	}
	return s.Repo.DeleteUser(ctx, userID)
}
