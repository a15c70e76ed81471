package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/campusadmit/internal/app/models"
	"github.com/yigit/campusadmit/internal/app/models/dto"
	"github.com/yigit/campusadmit/internal/app/repositories"
	"github.com/yigit/campusadmit/internal/pkg/apperrors"
	"github.com/yigit/campusadmit/internal/pkg/validation"
)

// AdmissionNotifier is told about admission status changes after commit.
type AdmissionNotifier interface {
	SendAdmissionStatusEmail(toEmail, toName, courseName, applicationNumber, status string) error
}

// AdmissionDetails is an admission with its applicant and course joined in.
// Either reference may be nil when it could not be loaded.
type AdmissionDetails struct {
	Admission *models.Admission
	User      *models.User
	Course    *models.Course
}

// AdmissionService runs the admission lifecycle: submit, review, delete.
// Every operation that touches seats runs in a single transaction.
type AdmissionService struct {
	admissions   repositories.IAdmissionRepository
	courses      repositories.ICourseRepository
	users        repositories.IUserRepository
	tx           repositories.Transactor
	numbers      *ApplicationNumberGenerator
	notifier     AdmissionNotifier
	seatAttempts int
	logger       zerolog.Logger
}

// NewAdmissionService creates a new AdmissionService
func NewAdmissionService(
	admissions repositories.IAdmissionRepository,
	courses repositories.ICourseRepository,
	users repositories.IUserRepository,
	tx repositories.Transactor,
	numbers *ApplicationNumberGenerator,
	notifier AdmissionNotifier,
	seatAttempts int,
	logger zerolog.Logger,
) *AdmissionService {
	if seatAttempts < 1 {
		seatAttempts = DefaultSeatUpdateAttempts
	}
	return &AdmissionService{
		admissions:   admissions,
		courses:      courses,
		users:        users,
		tx:           tx,
		numbers:      numbers,
		notifier:     notifier,
		seatAttempts: seatAttempts,
		logger:       logger,
	}
}

// Submit files a new pending application for the principal. The capacity
// gate is checked inside the transaction; seats are only taken on approval.
func (s *AdmissionService) Submit(ctx context.Context, principal models.Principal, req *dto.CreateAdmissionRequest) (*AdmissionDetails, error) {
	req.Normalize()
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	dob, err := validation.ParseDate(req.PersonalInfo.DateOfBirth)
	if err != nil {
		return nil, apperrors.NewValidationError("personalInfo.dateOfBirth", "must be a valid ISO-8601 date")
	}

	admission := &models.Admission{
		UserID:   principal.UserID,
		CourseID: req.CourseID,
		PersonalInfo: models.PersonalInfo{
			FullName:    req.PersonalInfo.FullName,
			DateOfBirth: dob,
			Gender:      models.Gender(req.PersonalInfo.Gender),
			Address:     req.PersonalInfo.Address,
			City:        req.PersonalInfo.City,
			State:       req.PersonalInfo.State,
			Pincode:     req.PersonalInfo.Pincode,
		},
		AcademicInfo: models.AcademicInfo{
			TenthMarks:   *req.AcademicInfo.TenthMarks,
			TwelfthMarks: *req.AcademicInfo.TwelfthMarks,
			Stream:       req.AcademicInfo.Stream,
		},
		Status: models.AdmissionPending,
	}

	var course *models.Course
	err = s.tx.WithinTx(ctx, func(ctx context.Context, repos *repositories.TxRepositories) error {
		var err error
		if course, err = repos.Courses.GetByID(ctx, req.CourseID); err != nil {
			return err
		}
		if !course.IsActive {
			return apperrors.ErrCourseInactive
		}
		if !course.HasCapacity() {
			return apperrors.ErrCourseFull
		}

		exists, err := repos.Admissions.ExistsForUserCourse(ctx, principal.UserID, req.CourseID)
		if err != nil {
			return err
		}
		if exists {
			return apperrors.ErrDuplicateApplication
		}

		if admission.ApplicationNumber, err = s.numbers.Next(ctx, repos.Sequences); err != nil {
			return err
		}
		return repos.Admissions.Create(ctx, admission)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("admissionID", admission.ID).
		Int64("courseID", course.ID).
		Int("availableSeats", course.AvailableSeats).
		Str("applicationNumber", admission.ApplicationNumber).
		Msg("Admission submitted")

	return &AdmissionDetails{Admission: admission, User: s.loadUser(ctx, principal.UserID), Course: course}, nil
}

// Transition moves an admission to status and reconciles the course seats
// in the same transaction. Any status may follow any other.
func (s *AdmissionService) Transition(ctx context.Context, id int64, req *dto.UpdateStatusRequest) (*AdmissionDetails, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	to := models.AdmissionStatus(req.Status)

	var (
		admission *models.Admission
		course    *models.Course
		from      models.AdmissionStatus
	)
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos *repositories.TxRepositories) error {
		var err error
		if admission, err = repos.Admissions.GetByIDForUpdate(ctx, id); err != nil {
			return err
		}
		from = admission.Status

		if err := repos.Admissions.UpdateStatus(ctx, id, to); err != nil {
			return err
		}
		admission.Status = to

		course, err = updateSeats(ctx, repos.Courses, admission.CourseID, s.seatAttempts, transitionSeats(from, to))
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("admissionID", id).
		Str("from", string(from)).
		Str("to", string(to)).
		Int("availableSeats", course.AvailableSeats).
		Msg("Admission status updated")

	details := &AdmissionDetails{Admission: admission, User: s.loadUser(ctx, admission.UserID), Course: course}
	if from != to {
		s.notifyStatus(details)
	}
	return details, nil
}

// Delete removes an admission, returning its seat first when it was approved.
func (s *AdmissionService) Delete(ctx context.Context, id int64) error {
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos *repositories.TxRepositories) error {
		admission, err := repos.Admissions.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}

		if admission.Status == models.AdmissionApproved {
			_, err := updateSeats(ctx, repos.Courses, admission.CourseID, s.seatAttempts,
				transitionSeats(models.AdmissionApproved, models.AdmissionPending))
			if err != nil {
				return err
			}
		}

		return repos.Admissions.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info().Int64("admissionID", id).Msg("Admission deleted")
	return nil
}

// Get returns an admission visible to principal: its owner or an admin.
func (s *AdmissionService) Get(ctx context.Context, principal models.Principal, id int64) (*AdmissionDetails, error) {
	admission, err := s.admissions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !principal.IsAdmin() && admission.UserID != principal.UserID {
		return nil, apperrors.NewForbiddenError("access denied")
	}

	course, err := s.courses.GetByID(ctx, admission.CourseID)
	if err != nil && !apperrors.Is(err, apperrors.ErrResourceNotFound) {
		return nil, err
	}
	return &AdmissionDetails{Admission: admission, User: s.loadUser(ctx, admission.UserID), Course: course}, nil
}

// ListMine returns the principal's own applications with their courses.
func (s *AdmissionService) ListMine(ctx context.Context, principal models.Principal) ([]*AdmissionDetails, error) {
	admissions, err := s.admissions.ListByUser(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}
	return s.join(ctx, admissions, false)
}

// ListAll returns every application joined with applicant and course.
func (s *AdmissionService) ListAll(ctx context.Context) ([]*AdmissionDetails, error) {
	admissions, err := s.admissions.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.join(ctx, admissions, true)
}

func (s *AdmissionService) join(ctx context.Context, admissions []*models.Admission, withUsers bool) ([]*AdmissionDetails, error) {
	courseIDs := make([]int64, 0, len(admissions))
	userIDs := make([]int64, 0, len(admissions))
	for _, a := range admissions {
		courseIDs = append(courseIDs, a.CourseID)
		userIDs = append(userIDs, a.UserID)
	}

	courses, err := s.courses.GetByIDs(ctx, uniqueIDs(courseIDs))
	if err != nil {
		return nil, fmt.Errorf("load admission courses: %w", err)
	}

	var users map[int64]*models.User
	if withUsers {
		if users, err = s.users.GetByIDs(ctx, uniqueIDs(userIDs)); err != nil {
			return nil, fmt.Errorf("load admission applicants: %w", err)
		}
	}

	out := make([]*AdmissionDetails, 0, len(admissions))
	for _, a := range admissions {
		out = append(out, &AdmissionDetails{Admission: a, User: users[a.UserID], Course: courses[a.CourseID]})
	}
	return out, nil
}

func (s *AdmissionService) loadUser(ctx context.Context, id int64) *models.User {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		s.logger.Warn().Err(err).Int64("userID", id).Msg("Could not load applicant for admission response")
		return nil
	}
	return user
}

func (s *AdmissionService) notifyStatus(d *AdmissionDetails) {
	if s.notifier == nil || d.User == nil {
		return
	}
	courseName := ""
	if d.Course != nil {
		courseName = d.Course.Name
	}
	err := s.notifier.SendAdmissionStatusEmail(d.User.Email, d.User.Name, courseName,
		d.Admission.ApplicationNumber, string(d.Admission.Status))
	if err != nil {
		s.logger.Error().Err(err).Int64("admissionID", d.Admission.ID).Msg("Failed to send admission status email")
	}
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
