package services

import (
	"context"
	"fmt"

	"github.com/yigit/campusadmit/internal/app/models"
	"github.com/yigit/campusadmit/internal/app/models/dto"
	"github.com/yigit/campusadmit/internal/app/repositories"
)

const dashboardRecentLimit = 5

// DashboardService builds the admin overview
type DashboardService struct {
	users            repositories.IUserRepository
	courses          repositories.ICourseRepository
	admissions       repositories.IAdmissionRepository
	simpleAdmissions repositories.ISimpleAdmissionRepository
	contacts         repositories.IContactRepository
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	users repositories.IUserRepository,
	courses repositories.ICourseRepository,
	admissions repositories.IAdmissionRepository,
	simpleAdmissions repositories.ISimpleAdmissionRepository,
	contacts repositories.IContactRepository,
) *DashboardService {
	return &DashboardService{
		users:            users,
		courses:          courses,
		admissions:       admissions,
		simpleAdmissions: simpleAdmissions,
		contacts:         contacts,
	}
}

// Stats gathers counts and the most recent activity
func (s *DashboardService) Stats(ctx context.Context) (*dto.DashboardStats, error) {
	var (
		stats dto.DashboardStats
		err   error
	)

	if stats.TotalUsers, stats.TotalAdmins, err = s.users.Count(ctx); err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	if stats.TotalCourses, err = s.courses.Count(ctx); err != nil {
		return nil, fmt.Errorf("count courses: %w", err)
	}
	if stats.TotalContacts, err = s.contacts.Count(ctx); err != nil {
		return nil, fmt.Errorf("count contacts: %w", err)
	}
	if stats.TotalSimpleAdmissions, err = s.simpleAdmissions.Count(ctx); err != nil {
		return nil, fmt.Errorf("count simple admissions: %w", err)
	}

	byStatus, err := s.admissions.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("count admissions: %w", err)
	}
	stats.Admissions = dto.AdmissionCounts{
		Pending:  byStatus[models.AdmissionPending],
		Approved: byStatus[models.AdmissionApproved],
		Rejected: byStatus[models.AdmissionRejected],
	}
	stats.Admissions.Total = stats.Admissions.Pending + stats.Admissions.Approved + stats.Admissions.Rejected

	recentUsers, err := s.users.ListRecent(ctx, dashboardRecentLimit)
	if err != nil {
		return nil, fmt.Errorf("recent users: %w", err)
	}
	stats.RecentUsers = dto.NewUserResponses(recentUsers)

	if stats.RecentContacts, err = s.contacts.ListRecent(ctx, dashboardRecentLimit); err != nil {
		return nil, fmt.Errorf("recent contacts: %w", err)
	}
	if stats.RecentSimpleAdmissions, err = s.simpleAdmissions.ListRecent(ctx, dashboardRecentLimit); err != nil {
		return nil, fmt.Errorf("recent simple admissions: %w", err)
	}

	return &stats, nil
}
