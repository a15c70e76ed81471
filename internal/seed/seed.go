package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	appModels "github.com/yigit/campusadmit/internal/app/models"
	appRepos "github.com/yigit/campusadmit/internal/app/repositories"
	"github.com/yigit/campusadmit/internal/pkg/apperrors"
	"github.com/yigit/campusadmit/internal/pkg/auth"
)

// Admin describes the bootstrap administrator account.
type Admin struct {
	Name     string
	Email    string
	Password string
	Phone    string
}

// defaultCourses is the catalogue created on an empty database.
var defaultCourses = []struct {
	name        string
	description string
	duration    string
	fees        float64
	category    appModels.CourseCategory
	eligibility string
	seats       int
}{
	{"B.Tech Computer Science", "Undergraduate programme in computer science and engineering", "4 years", 150000, appModels.CategoryEngineering, "12th with PCM, minimum 60%", 60},
	{"MBBS", "Bachelor of Medicine and Bachelor of Surgery", "5.5 years", 450000, appModels.CategoryMedical, "12th with PCB, qualifying entrance score", 30},
	{"BBA", "Bachelor of Business Administration", "3 years", 90000, appModels.CategoryManagement, "12th in any stream, minimum 50%", 40},
	{"B.Com", "Bachelor of Commerce", "3 years", 60000, appModels.CategoryCommerce, "12th in any stream", 50},
	{"B.Sc Physics", "Undergraduate programme in physics", "3 years", 55000, appModels.CategoryScience, "12th with PCM", 35},
	{"BA English", "Bachelor of Arts in English literature", "3 years", 45000, appModels.CategoryArts, "12th in any stream", 40},
}

// CreateDefaultData creates the admin account and, on an empty catalogue,
// a default set of courses. Errors are collected so one failure does not
// stop the rest.
func CreateDefaultData(ctx context.Context, users appRepos.IUserRepository, courses appRepos.ICourseRepository, admin Admin, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data (admin/courses)...")
	var finalErr error

	adminID, err := ensureAdmin(ctx, users, admin, lgr)
	if err != nil {
		lgr.Error().Err(err).Msg("Error creating admin user")
		finalErr = errors.Join(finalErr, err)
	}

	if adminID > 0 {
		if err := ensureCourses(ctx, courses, adminID, lgr); err != nil {
			lgr.Error().Err(err).Msg("Error creating default courses")
			finalErr = errors.Join(finalErr, err)
		}
	}

	lgr.Info().Msg("Default data check/creation finished.")
	return finalErr
}

func ensureAdmin(ctx context.Context, users appRepos.IUserRepository, admin Admin, lgr zerolog.Logger) (int64, error) {
	if admin.Email == "" || admin.Password == "" {
		return 0, errors.New("seed admin email and password are required")
	}

	existing, err := users.GetByEmail(ctx, admin.Email)
	switch {
	case err == nil:
		lgr.Info().Msg("Admin user already exists, skipping creation")
		return existing.ID, nil
	case !errors.Is(err, apperrors.ErrResourceNotFound):
		return 0, fmt.Errorf("checking admin user: %w", err)
	}

	hashedPassword, err := auth.HashPassword(admin.Password)
	if err != nil {
		return 0, fmt.Errorf("hashing admin password: %w", err)
	}

	user := &appModels.User{
		Name:     admin.Name,
		Email:    admin.Email,
		Password: hashedPassword,
		Phone:    admin.Phone,
		RoleType: appModels.RoleAdmin,
		IsActive: true,
	}
	if err := users.Create(ctx, user); err != nil {
		return 0, err
	}
	lgr.Info().Int64("adminID", user.ID).Msg("Default admin user created successfully")
	return user.ID, nil
}

func ensureCourses(ctx context.Context, courses appRepos.ICourseRepository, createdBy int64, lgr zerolog.Logger) error {
	total, err := courses.Count(ctx)
	if err != nil {
		return fmt.Errorf("counting courses: %w", err)
	}
	if total > 0 {
		lgr.Info().Int64("courses", total).Msg("Course catalogue not empty, skipping defaults")
		return nil
	}

	var finalErr error
	for _, c := range defaultCourses {
		course := appModels.NewCourse(c.name, c.description, c.duration, c.fees, c.category, c.eligibility, c.seats, createdBy)
		if err := courses.Create(ctx, course); err != nil {
			finalErr = errors.Join(finalErr, fmt.Errorf("course %q: %w", c.name, err))
			continue
		}
		lgr.Debug().Int64("courseID", course.ID).Str("name", course.Name).Msg("Default course created")
	}
	return finalErr
}
