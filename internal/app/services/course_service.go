package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/yigit/campusadmit/internal/app/models"
	"github.com/yigit/campusadmit/internal/app/models/dto"
	"github.com/yigit/campusadmit/internal/app/repositories"
	"github.com/yigit/campusadmit/internal/pkg/apperrors"
	"github.com/yigit/campusadmit/internal/pkg/validation"
)

// CourseService manages the course catalogue
type CourseService struct {
	courses      repositories.ICourseRepository
	tx           repositories.Transactor
	seatAttempts int
	logger       zerolog.Logger
}

// NewCourseService creates a new CourseService
func NewCourseService(courses repositories.ICourseRepository, tx repositories.Transactor, seatAttempts int, logger zerolog.Logger) *CourseService {
	if seatAttempts < 1 {
		seatAttempts = DefaultSeatUpdateAttempts
	}
	return &CourseService{courses: courses, tx: tx, seatAttempts: seatAttempts, logger: logger}
}

// ListActive returns the courses open to applicants
func (s *CourseService) ListActive(ctx context.Context) ([]*models.Course, error) {
	return s.courses.List(ctx, true)
}

// ListAll returns every course including inactive ones
func (s *CourseService) ListAll(ctx context.Context) ([]*models.Course, error) {
	return s.courses.List(ctx, false)
}

// Get returns a single course
func (s *CourseService) Get(ctx context.Context, id int64) (*models.Course, error) {
	return s.courses.GetByID(ctx, id)
}

// Create adds a course owned by the creating admin
func (s *CourseService) Create(ctx context.Context, admin models.Principal, req *dto.CreateCourseRequest) (*models.Course, error) {
	req.Normalize()
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	course := models.NewCourse(req.Name, req.Description, req.Duration, *req.Fees,
		models.CourseCategory(req.Category), req.Eligibility, *req.Seats, admin.UserID)
	if err := s.courses.Create(ctx, course); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("courseID", course.ID).Int64("adminID", admin.UserID).Msg("Course created")
	return course, nil
}

// Update applies a partial update. Changing seats shifts available seats by
// the same amount, clamped to [0, seats].
func (s *CourseService) Update(ctx context.Context, id int64, req *dto.UpdateCourseRequest) (*models.Course, error) {
	req.Normalize()
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	return s.modify(ctx, id, func(c *models.Course) {
		if req.Name != nil {
			c.Name = *req.Name
		}
		if req.Description != nil {
			c.Description = *req.Description
		}
		if req.Duration != nil {
			c.Duration = *req.Duration
		}
		if req.Fees != nil {
			c.Fees = *req.Fees
		}
		if req.Category != nil {
			c.Category = models.CourseCategory(*req.Category)
		}
		if req.Eligibility != nil {
			c.Eligibility = *req.Eligibility
		}
		if req.IsActive != nil {
			c.IsActive = *req.IsActive
		}
		if req.Seats != nil {
			c.Resize(*req.Seats)
		}
	})
}

// ToggleStatus flips whether a course accepts applications
func (s *CourseService) ToggleStatus(ctx context.Context, id int64) (*models.Course, error) {
	return s.modify(ctx, id, func(c *models.Course) {
		c.IsActive = !c.IsActive
	})
}

// modify re-reads and re-applies mutate until the versioned write succeeds,
// so admin edits never overwrite a concurrent seat reconciliation.
func (s *CourseService) modify(ctx context.Context, id int64, mutate func(c *models.Course)) (*models.Course, error) {
	for i := 0; i < s.seatAttempts; i++ {
		course, err := s.courses.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}

		mutate(course)
		err = s.courses.Update(ctx, course)
		if errors.Is(err, repositories.ErrVersionConflict) {
			continue
		}
		if err != nil {
			return nil, err
		}

		s.logger.Info().Int64("courseID", id).Bool("isActive", course.IsActive).
			Int("seats", course.Seats).Int("availableSeats", course.AvailableSeats).Msg("Course updated")
		return course, nil
	}
	return nil, apperrors.ErrSeatUpdateConflict
}

// Delete removes a course that no pending or approved admission holds.
// Rejected admissions for the course are removed with it.
func (s *CourseService) Delete(ctx context.Context, id int64) error {
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos *repositories.TxRepositories) error {
		if _, err := repos.Courses.GetByID(ctx, id); err != nil {
			return err
		}

		holding, err := repos.Admissions.CountHoldingByCourse(ctx, id)
		if err != nil {
			return err
		}
		if holding > 0 {
			return apperrors.ErrCourseHasRequests
		}

		if _, err := repos.Admissions.DeleteByCourse(ctx, id); err != nil {
			return err
		}
		return repos.Courses.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info().Int64("courseID", id).Msg("Course deleted")
	return nil
}
