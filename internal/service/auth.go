package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopnext/backend/internal/events"
	"github.com/shopnext/backend/internal/hash"
	"github.com/shopnext/backend/internal/logging"
	"github.com/shopnext/backend/internal/mail"
	"github.com/shopnext/backend/internal/models"
	"github.com/shopnext/backend/internal/otp"
	"github.com/shopnext/backend/internal/repo"
	"github.com/shopnext/backend/internal/token"
)

var (
	ErrEmailTaken      = errors.New("Exists")
	ErrEmailNotFound   = errors.New("Email not found")
	ErrInvalidPassword = errors.New("Invalid password")
)

type AuthService struct {
	Repo     *repo.GormRepo
	Tokens   *token.Service
	OTP      *otp.Store
	Notifier mail.Notifier
	Producer events.Producer
}

func (s *AuthService) Register(ctx context.Context, name, email, password string) error {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	taken, err := s.Repo.EmailTaken(ctx, email)
	if err != nil {
		return err
	}
	if taken {
		return ErrEmailTaken
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		l.Error("register failed", "reason", "cannot hash password", "error", err)
		return err
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: pwHash,
		CreatedAt:    time.Now(),
	}
	if err := s.Repo.CreateUser(ctx, user); err != nil {
		return err
	}

	s.publish(ctx, map[string]any{
		"type":    "user_registered",
		"user_id": user.ID,
		"email":   user.Email,
	}, fmt.Sprint(user.ID))

	return nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.Repo.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", ErrEmailNotFound
		}
		return "", err
	}

	if !hash.CheckPassword(user.PasswordHash, password) {
		return "", ErrInvalidPassword
	}

	return s.Tokens.SignUser(user.ID)
}

func (s *AuthService) AdminLogin(ctx context.Context, email, password string) (string, error) {
	admin, err := s.Repo.AdminByEmail(ctx, email)
	if err != nil {
		return "", ErrUnauthorized
	}
	if !hash.CheckPassword(admin.PasswordHash, password) {
		return "", ErrUnauthorized
	}
	return s.Tokens.SignAdmin(admin.ID)
}

// SendOTP mails a registration code. OTP mail goes out synchronously: if
// the channel is down the caller should know immediately, unlike order
// notifications which must not block on it.
func (s *AuthService) SendOTP(ctx context.Context, email string) error {
	taken, err := s.Repo.EmailTaken(ctx, email)
	if err != nil {
		return err
	}
	if taken {
		return fmt.Errorf("%w: Email already registered", ErrValidation)
	}

	code, err := s.OTP.Issue(email)
	if err != nil {
		return err
	}
	return s.Notifier.Send(email, mail.SubjectOTP, mail.OTPBody(code))
}

func (s *AuthService) VerifyOTP(ctx context.Context, email, code string) error {
	if err := s.OTP.Verify(email, code); err != nil {
		return fmt.Errorf("%w: %s", ErrValidation, err)
	}
	return nil
}

func (s *AuthService) SendResetOTP(ctx context.Context, email string) error {
	taken, err := s.Repo.EmailTaken(ctx, email)
	if err != nil {
		return err
	}
	if !taken {
		return fmt.Errorf("%w: user email not registered", ErrValidation)
	}

	code, err := s.OTP.Issue(email)
	if err != nil {
		return err
	}
	return s.Notifier.Send(email, mail.SubjectResetOTP, mail.OTPBody(code))
}

func (s *AuthService) ResetPassword(ctx context.Context, email, code, password string) error {
	l := logging.FromContext(ctx).With("svc", "auth.reset_password")

	if err := s.OTP.Consume(email, code); err != nil {
		return fmt.Errorf("%w: %s", ErrValidation, err)
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		return err
	}
	if err := s.Repo.UpdateUserPasswordByEmail(ctx, email, pwHash); err != nil {
		return err
	}

	// The password is already changed; a failed courtesy mail should not
	// make the reset look failed.
	if err := s.Notifier.Send(email, mail.SubjectPasswordChanged, mail.PasswordChangedBody()); err != nil {
		l.Error("password changed mail failed", "error", err)
	}
	return nil
}

func (s *AuthService) publish(ctx context.Context, event map[string]any, key string) {
	if s.Producer == nil {
		return
	}
	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Producer.PublishEvent(pubCtx, events.TopicUserEvents, key, event); err != nil {
		logging.FromContext(ctx).Error("kafka publish error", "error", err)
	}
}
