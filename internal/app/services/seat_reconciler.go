package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yigit/campusadmit/internal/app/models"
	"github.com/yigit/campusadmit/internal/app/repositories"
	"github.com/yigit/campusadmit/internal/pkg/apperrors"
)

// DefaultSeatUpdateAttempts bounds the compare-and-set loop on course seats.
const DefaultSeatUpdateAttempts = 3

// ReconcileSeats returns the available seats of course after an admission
// moves from one status to another. Only transitions into or out of
// approved change the count, and the result always stays in [0, seats].
func ReconcileSeats(course *models.Course, from, to models.AdmissionStatus) int {
	available := course.AvailableSeats
	switch {
	case from != models.AdmissionApproved && to == models.AdmissionApproved:
		available--
	case from == models.AdmissionApproved && to != models.AdmissionApproved:
		available++
	}
	return models.ClampSeats(available, course.Seats)
}

// seatFunc computes the new available seat count from a freshly read course.
// Returning an error aborts the update.
type seatFunc func(course *models.Course) (int, error)

// updateSeats applies fn to the course with an optimistic compare-and-set on
// its version, re-reading and recomputing when another writer got there
// first. It gives up with ErrSeatUpdateConflict after attempts tries.
func updateSeats(ctx context.Context, courses repositories.ICourseRepository, courseID int64, attempts int, fn seatFunc) (*models.Course, error) {
	if attempts < 1 {
		attempts = DefaultSeatUpdateAttempts
	}

	for i := 0; i < attempts; i++ {
		course, err := courses.GetByID(ctx, courseID)
		if err != nil {
			return nil, err
		}

		available, err := fn(course)
		if err != nil {
			return nil, err
		}
		available = models.ClampSeats(available, course.Seats)
		if available == course.AvailableSeats {
			return course, nil
		}

		version, err := courses.UpdateSeats(ctx, courseID, course.Version, available)
		if errors.Is(err, repositories.ErrVersionConflict) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("update course seats: %w", err)
		}

		course.AvailableSeats = available
		course.Version = version
		return course, nil
	}

	return nil, apperrors.ErrSeatUpdateConflict
}

// transitionSeats reconciles seats for an admission status change.
func transitionSeats(from, to models.AdmissionStatus) seatFunc {
	return func(course *models.Course) (int, error) {
		return ReconcileSeats(course, from, to), nil
	}
}
