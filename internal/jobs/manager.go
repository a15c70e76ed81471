// Package jobs runs periodic maintenance on a cron schedule.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/yigit/campusadmit/internal/app/repositories"
)

// jobTimeout bounds a single job run.
const jobTimeout = 2 * time.Minute

// Schedules holds six-field (seconds first) cron expressions.
type Schedules struct {
	TokenPurge string
	SeatAudit  string
}

// Manager manages all scheduled jobs
type Manager struct {
	cron      *cron.Cron
	schedules Schedules
	tokens    repositories.ITokenRepository
	courses   repositories.ICourseRepository
	logger    zerolog.Logger
	now       func() time.Time
}

// NewManager creates a new job manager
func NewManager(schedules Schedules, tokens repositories.ITokenRepository, courses repositories.ICourseRepository, logger zerolog.Logger) *Manager {
	return &Manager{
		cron:      cron.New(cron.WithSeconds()),
		schedules: schedules,
		tokens:    tokens,
		courses:   courses,
		logger:    logger,
		now:       time.Now,
	}
}

// Start registers every job and starts the scheduler
func (m *Manager) Start() error {
	if err := m.registerJobs(); err != nil {
		return err
	}
	m.cron.Start()
	m.logger.Info().Int("jobs", len(m.cron.Entries())).Msg("Scheduled jobs started")
	return nil
}

// Stop stops the scheduler and waits for running jobs to finish
func (m *Manager) Stop() {
	<-m.cron.Stop().Done()
	m.logger.Info().Msg("Scheduled jobs stopped")
}

func (m *Manager) registerJobs() error {
	jobs := []struct {
		name     string
		schedule string
		run      func(ctx context.Context) error
	}{
		{"purge_refresh_tokens", m.schedules.TokenPurge, func(ctx context.Context) error {
			_, err := m.PurgeTokens(ctx)
			return err
		}},
		{"audit_course_seats", m.schedules.SeatAudit, func(ctx context.Context) error {
			_, err := m.AuditSeats(ctx)
			return err
		}},
	}

	for _, job := range jobs {
		if job.schedule == "" {
			m.logger.Info().Str("job", job.name).Msg("Job disabled, no schedule")
			continue
		}
		job := job
		if _, err := m.cron.AddFunc(job.schedule, func() { m.runJob(job.name, job.run) }); err != nil {
			return fmt.Errorf("schedule %s: %w", job.name, err)
		}
	}
	return nil
}

func (m *Manager) runJob(name string, run func(ctx context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	start := m.now()
	if err := run(ctx); err != nil {
		m.logger.Error().Err(err).Str("job", name).Msg("Scheduled job failed")
		return
	}
	m.logger.Debug().Str("job", name).Dur("took", time.Since(start)).Msg("Scheduled job completed")
}
