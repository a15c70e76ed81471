package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/campusadmit/internal/app/models"
	"github.com/yigit/campusadmit/internal/app/models/dto"
	"github.com/yigit/campusadmit/internal/app/repositories"
	"github.com/yigit/campusadmit/internal/pkg/validation"
)

// ContactNotifier delivers admin responses to the person who wrote in.
type ContactNotifier interface {
	SendContactResponseEmail(toEmail, toName, subject, response string) error
}

// ContactService handles contact form submissions
type ContactService struct {
	repo     repositories.IContactRepository
	notifier ContactNotifier
	logger   zerolog.Logger
	now      func() time.Time
}

// NewContactService creates a new ContactService
func NewContactService(repo repositories.IContactRepository, notifier ContactNotifier, logger zerolog.Logger) *ContactService {
	return &ContactService{repo: repo, notifier: notifier, logger: logger, now: time.Now}
}

// Create stores a new contact request
func (s *ContactService) Create(ctx context.Context, req *dto.CreateContactRequest) (*models.Contact, error) {
	req.Normalize()
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	contact := &models.Contact{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
		Status:  models.ContactNew,
	}
	if err := s.repo.Create(ctx, contact); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("contactID", contact.ID).Msg("Contact request received")
	return contact, nil
}

// List returns every contact request, newest first
func (s *ContactService) List(ctx context.Context) ([]*models.Contact, error) {
	return s.repo.List(ctx)
}

// Update records a status change and/or a response. A response stamps the
// responding admin and time and is mailed to the sender.
func (s *ContactService) Update(ctx context.Context, admin models.Principal, id int64, req *dto.UpdateContactRequest) (*models.Contact, error) {
	req.Normalize()
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	contact, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		contact.Status = models.ContactStatus(*req.Status)
	}
	responded := req.Response != nil && *req.Response != ""
	if responded {
		now := s.now()
		responder := admin.UserID
		contact.Response = *req.Response
		contact.RespondedBy = &responder
		contact.RespondedAt = &now
	}

	if err := s.repo.Update(ctx, contact); err != nil {
		return nil, err
	}

	if responded && s.notifier != nil {
		if err := s.notifier.SendContactResponseEmail(contact.Email, contact.Name, contact.Subject, contact.Response); err != nil {
			s.logger.Error().Err(err).Int64("contactID", id).Msg("Failed to send contact response email")
		}
	}
	return contact, nil
}

// Delete removes a contact request
func (s *ContactService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
