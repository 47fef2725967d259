package service

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shopnext/backend/internal/hash"
	"github.com/shopnext/backend/internal/models"
	"github.com/shopnext/backend/internal/otp"
	"github.com/shopnext/backend/internal/repo"
)

var otpPattern = regexp.MustCompile(`\d{6}`)

func extractOTP(t *testing.T, body string) string {
	t.Helper()
	code := otpPattern.FindString(body)
	require.NotEmpty(t, code, "no OTP found in mail body: %s", body)
	return code
}

type fakeNotifier struct {
	fail bool
	sent []sentMail
}

type sentMail struct {
	to, subject, body string
}

func (f *fakeNotifier) Send(to, subject, body string) error {
	if f.fail {
		return errors.New("smtp down")
	}
	f.sent = append(f.sent, sentMail{to, subject, body})
	return nil
}

func newAuthService(t *testing.T) (*AuthService, *fakeNotifier) {
	t.Helper()
	db := initTestDB(t)
	notifier := &fakeNotifier{}
	store := otp.NewStore(otp.DefaultTTL)
	t.Cleanup(store.Close)
	return &AuthService{
		Repo:     repo.New(db),
		Tokens:   testTokens(),
		OTP:      store,
		Notifier: notifier,
	}, notifier
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "Alice", "alice@example.com", "password"))

	err := svc.Register(ctx, "Alice Again", "alice@example.com", "password")
	require.ErrorIs(t, err, ErrEmailTaken)

	tok, err := svc.Login(ctx, "alice@example.com", "password")
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, err := svc.Tokens.VerifyUser(tok)
	require.NoError(t, err)
	require.NotZero(t, userID)

	_, err = svc.Login(ctx, "alice@example.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidPassword)

	_, err = svc.Login(ctx, "nobody@example.com", "password")
	require.ErrorIs(t, err, ErrEmailNotFound)

	var stored models.User
	require.NoError(t, svc.Repo.DB.Where("email = ?", "alice@example.com").First(&stored).Error)
	require.NotEqual(t, "password", stored.PasswordHash)
}

func TestAdminLogin(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	pw, err := hash.HashPassword("adminpass")
	require.NoError(t, err)
	require.NoError(t, svc.Repo.DB.Create(&models.Admin{Email: "admin@shopnext.test", PasswordHash: pw}).Error)

	tok, err := svc.AdminLogin(ctx, "admin@shopnext.test", "adminpass")
	require.NoError(t, err)

	_, err = svc.Tokens.VerifyAdmin(tok)
	require.NoError(t, err)

	// A customer token never passes the admin check.
	userTok, err := svc.Tokens.SignUser(1)
	require.NoError(t, err)
	_, err = svc.Tokens.VerifyAdmin(userTok)
	require.Error(t, err)

	_, err = svc.AdminLogin(ctx, "admin@shopnext.test", "wrong")
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestSendOTPRefusesRegisteredEmail(t *testing.T) {
	svc, notifier := newAuthService(t)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "Alice", "alice@example.com", "password"))

	err := svc.SendOTP(ctx, "alice@example.com")
	require.ErrorIs(t, err, ErrValidation)
	require.Empty(t, notifier.sent)

	require.NoError(t, svc.SendOTP(ctx, "new@example.com"))
	require.Len(t, notifier.sent, 1)
	require.Equal(t, "new@example.com", notifier.sent[0].to)
}

func TestResetPasswordFlow(t *testing.T) {
	svc, notifier := newAuthService(t)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "Alice", "alice@example.com", "oldpassword"))

	err := svc.SendResetOTP(ctx, "stranger@example.com")
	require.ErrorIs(t, err, ErrValidation)

	require.NoError(t, svc.SendResetOTP(ctx, "alice@example.com"))
	require.Len(t, notifier.sent, 1)

	code := extractOTP(t, notifier.sent[0].body)

	err = svc.ResetPassword(ctx, "alice@example.com", "000000", "newpassword")
	require.ErrorIs(t, err, ErrValidation)

	require.NoError(t, svc.ResetPassword(ctx, "alice@example.com", code, "newpassword"))

	_, err = svc.Login(ctx, "alice@example.com", "oldpassword")
	require.ErrorIs(t, err, ErrInvalidPassword)

	tok, err := svc.Login(ctx, "alice@example.com", "newpassword")
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	// The code is consumed, a replay must fail.
	err = svc.ResetPassword(ctx, "alice@example.com", code, "anotherpassword")
	require.ErrorIs(t, err, ErrValidation)
}

func TestResetPasswordSurvivesMailFailure(t *testing.T) {
	svc, notifier := newAuthService(t)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "Alice", "alice@example.com", "oldpassword"))
	require.NoError(t, svc.SendResetOTP(ctx, "alice@example.com"))
	code := extractOTP(t, notifier.sent[0].body)

	notifier.fail = true
	require.NoError(t, svc.ResetPassword(ctx, "alice@example.com", code, "newpassword"))

	notifier.fail = false
	_, err := svc.Login(ctx, "alice@example.com", "newpassword")
	require.NoError(t, err)
}
