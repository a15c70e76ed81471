package jobs

import (
	"context"
	"fmt"

	"github.com/yigit/campusadmit/internal/app/models"
)

// SeatViolation is a course whose available seats left [0, seats].
type SeatViolation struct {
	CourseID       int64
	Name           string
	Seats          int
	AvailableSeats int
}

// PurgeTokens deletes expired and long-revoked refresh tokens
func (m *Manager) PurgeTokens(ctx context.Context) (int64, error) {
	n, err := m.tokens.CleanupExpiredTokens(ctx, m.now())
	if err != nil {
		return 0, fmt.Errorf("purge refresh tokens: %w", err)
	}
	if n > 0 {
		m.logger.Info().Int64("deleted", n).Msg("Purged refresh tokens")
	}
	return n, nil
}

// AuditSeats checks every course against the seat range invariant and logs
// each violation. It reports, never repairs.
func (m *Manager) AuditSeats(ctx context.Context) ([]SeatViolation, error) {
	courses, err := m.courses.List(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("audit course seats: %w", err)
	}

	var violations []SeatViolation
	for _, c := range courses {
		if seatsInRange(c) {
			continue
		}
		v := SeatViolation{CourseID: c.ID, Name: c.Name, Seats: c.Seats, AvailableSeats: c.AvailableSeats}
		violations = append(violations, v)
		m.logger.Error().
			Int64("courseID", v.CourseID).
			Int("seats", v.Seats).
			Int("availableSeats", v.AvailableSeats).
			Msg("Course seat count out of range")
	}
	return violations, nil
}

func seatsInRange(c *models.Course) bool {
	return c.AvailableSeats >= 0 && c.AvailableSeats <= c.Seats
}
