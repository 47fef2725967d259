package service

import (
	"context"
	"time"

	"github.com/shopnext/backend/internal/mail"
	"github.com/shopnext/backend/internal/models"
	"github.com/shopnext/backend/internal/repo"
)

type SupportService struct {
	Repo       *repo.GormRepo
	Notifier   mail.Notifier
	AdminEmail string
}

// Submit stores the message, forwards it to the support inbox and sends an
// auto-reply. Mail failure fails the request: a support message nobody
// will read is worth a retry from the customer.
func (s *SupportService) Submit(ctx context.Context, name, email, message string) error {
	contact := &models.Contact{
		Name:      name,
		Email:     email,
		Message:   message,
		CreatedAt: time.Now(),
	}
	if err := s.Repo.CreateContact(ctx, contact); err != nil {
		return err
	}

	if err := s.Notifier.Send(s.AdminEmail, mail.SubjectContactAdmin, mail.ContactAdminBody(name, email, message)); err != nil {
		return err
	}
	return s.Notifier.Send(email, mail.SubjectContactReply, mail.ContactReplyBody(name))
}
