package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/yigit/campusadmit/internal/app/models"
	"github.com/yigit/campusadmit/internal/app/models/dto"
	"github.com/yigit/campusadmit/internal/app/repositories"
	"github.com/yigit/campusadmit/internal/pkg/validation"
)

// SimpleAdmissionService handles the public enquiry form. Enquiries never
// touch course seats.
type SimpleAdmissionService struct {
	repo      repositories.ISimpleAdmissionRepository
	sequences repositories.ISequenceRepository
	numbers   *ApplicationNumberGenerator
	logger    zerolog.Logger
}

// NewSimpleAdmissionService creates a new SimpleAdmissionService
func NewSimpleAdmissionService(
	repo repositories.ISimpleAdmissionRepository,
	sequences repositories.ISequenceRepository,
	numbers *ApplicationNumberGenerator,
	logger zerolog.Logger,
) *SimpleAdmissionService {
	return &SimpleAdmissionService{repo: repo, sequences: sequences, numbers: numbers, logger: logger}
}

// Create stores an enquiry with a fresh application number
func (s *SimpleAdmissionService) Create(ctx context.Context, req *dto.CreateSimpleAdmissionRequest) (*models.SimpleAdmission, error) {
	req.Normalize()
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	number, err := s.numbers.Next(ctx, s.sequences)
	if err != nil {
		return nil, err
	}

	admission := &models.SimpleAdmission{
		FullName:          req.FullName,
		Email:             req.Email,
		Phone:             req.Phone,
		Course:            req.Course,
		Message:           req.Message,
		Status:            models.AdmissionPending,
		ApplicationNumber: number,
	}
	if err := s.repo.Create(ctx, admission); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("simpleAdmissionID", admission.ID).Str("applicationNumber", number).Msg("Admission enquiry received")
	return admission, nil
}

// List returns every enquiry, newest first
func (s *SimpleAdmissionService) List(ctx context.Context) ([]*models.SimpleAdmission, error) {
	return s.repo.List(ctx)
}

// UpdateStatus sets the review status of an enquiry
func (s *SimpleAdmissionService) UpdateStatus(ctx context.Context, id int64, req *dto.UpdateStatusRequest) (*models.SimpleAdmission, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	status := models.AdmissionStatus(req.Status)
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// Delete removes an enquiry
func (s *SimpleAdmissionService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
