package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/campusadmit/internal/app/models"
	"github.com/yigit/campusadmit/internal/pkg/apperrors"
	"github.com/yigit/campusadmit/internal/pkg/dberrors"
	"github.com/yigit/campusadmit/internal/pkg/logger"
)

// ErrVersionConflict is returned by compare-and-set writes when the row was
// modified since it was read.
var ErrVersionConflict = errors.New("course was modified concurrently")

var courseColumns = []string{
	"id", "name", "description", "duration", "fees", "category", "eligibility",
	"seats", "available_seats", "is_active", "created_by", "version", "created_at", "updated_at",
}

// CourseRepository handles course database operations
type CourseRepository struct {
	db Querier
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db Querier) *CourseRepository {
	return &CourseRepository{
		db: db,
		sb: statementBuilder(),
	}
}

func scanCourse(row pgx.Row) (*models.Course, error) {
	c := &models.Course{}
	err := row.Scan(
		&c.ID, &c.Name, &c.Description, &c.Duration, &c.Fees, &c.Category, &c.Eligibility,
		&c.Seats, &c.AvailableSeats, &c.IsActive, &c.CreatedBy, &c.Version, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Create inserts a course and fills in ID, version and timestamps
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	sql, args, err := r.sb.Insert("courses").
		Columns("name", "description", "duration", "fees", "category", "eligibility",
			"seats", "available_seats", "is_active", "created_by").
		Values(course.Name, course.Description, course.Duration, course.Fees, course.Category,
			course.Eligibility, course.Seats, course.AvailableSeats, course.IsActive, course.CreatedBy).
		Suffix("RETURNING id, version, created_at, updated_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create course SQL")
		return fmt.Errorf("failed to build create course query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&course.ID, &course.Version, &course.CreatedAt, &course.UpdatedAt)
	if err != nil {
		if dberrors.IsForeignKeyError(err) {
			return apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Str("name", course.Name).Msg("Error executing create course query")
		return fmt.Errorf("error creating course: %w", err)
	}
	return nil
}

// GetByID retrieves a course by ID
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	sql, args, err := r.sb.Select(courseColumns...).From("courses").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get course SQL")
		return nil, fmt.Errorf("failed to build get course query: %w", err)
	}

	course, err := scanCourse(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Int64("courseID", id).Msg("Error scanning course row")
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}
	return course, nil
}

func (r *CourseRepository) queryCourses(ctx context.Context, query squirrel.SelectBuilder) ([]*models.Course, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list courses SQL")
		return nil, fmt.Errorf("failed to build list courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list courses query")
		return nil, fmt.Errorf("error listing courses: %w", err)
	}
	defer rows.Close()

	courses := make([]*models.Course, 0)
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning course row")
			return nil, fmt.Errorf("error scanning course: %w", err)
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating courses: %w", err)
	}
	return courses, nil
}

// List returns courses newest first, optionally only active ones
func (r *CourseRepository) List(ctx context.Context, activeOnly bool) ([]*models.Course, error) {
	query := r.sb.Select(courseColumns...).From("courses").OrderBy("created_at DESC", "id DESC")
	if activeOnly {
		query = query.Where(squirrel.Eq{"is_active": true})
	}
	return r.queryCourses(ctx, query)
}

// GetByIDs loads the given courses keyed by ID; unknown IDs are omitted
func (r *CourseRepository) GetByIDs(ctx context.Context, ids []int64) (map[int64]*models.Course, error) {
	out := make(map[int64]*models.Course, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	courses, err := r.queryCourses(ctx, r.sb.Select(courseColumns...).From("courses").Where(squirrel.Eq{"id": ids}))
	if err != nil {
		return nil, err
	}
	for _, c := range courses {
		out[c.ID] = c
	}
	return out, nil
}

// Count returns the number of courses
func (r *CourseRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM courses`).Scan(&n); err != nil {
		logger.Error().Err(err).Msg("Error counting courses")
		return 0, fmt.Errorf("error counting courses: %w", err)
	}
	return n, nil
}

// Update writes all mutable columns guarded by the course version
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	now := time.Now()
	sql, args, err := r.sb.Update("courses").
		SetMap(map[string]interface{}{
			"name":            course.Name,
			"description":     course.Description,
			"duration":        course.Duration,
			"fees":            course.Fees,
			"category":        course.Category,
			"eligibility":     course.Eligibility,
			"seats":           course.Seats,
			"available_seats": course.AvailableSeats,
			"is_active":       course.IsActive,
			"updated_at":      now,
		}).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": course.ID, "version": course.Version}).
		Suffix("RETURNING version").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update course SQL")
		return fmt.Errorf("failed to build update course query: %w", err)
	}

	var version int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&version); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return r.missingOrStale(ctx, course.ID)
		}
		logger.Error().Err(err).Int64("courseID", course.ID).Msg("Error executing update course query")
		return fmt.Errorf("error updating course: %w", err)
	}
	course.Version = version
	course.UpdatedAt = now
	return nil
}

// UpdateSeats writes available_seats only if the version is unchanged
func (r *CourseRepository) UpdateSeats(ctx context.Context, id, expectedVersion int64, availableSeats int) (int64, error) {
	sql, args, err := r.sb.Update("courses").
		Set("available_seats", availableSeats).
		Set("updated_at", time.Now()).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": id, "version": expectedVersion}).
		Suffix("RETURNING version").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update seats SQL")
		return 0, fmt.Errorf("failed to build update seats query: %w", err)
	}

	var version int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&version); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, r.missingOrStale(ctx, id)
		}
		logger.Error().Err(err).Int64("courseID", id).Msg("Error executing update seats query")
		return 0, fmt.Errorf("error updating course seats: %w", err)
	}
	return version, nil
}

// missingOrStale distinguishes a deleted course from a lost version race.
func (r *CourseRepository) missingOrStale(ctx context.Context, id int64) error {
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM courses WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("error checking course existence: %w", err)
	}
	if !exists {
		return apperrors.ErrCourseNotFound
	}
	return ErrVersionConflict
}

// Delete removes a course
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("courses").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete course SQL")
		return fmt.Errorf("failed to build delete course query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsForeignKeyError(err) {
			return apperrors.ErrCourseHasRequests
		}
		logger.Error().Err(err).Int64("courseID", id).Msg("Error executing delete course query")
		return fmt.Errorf("error deleting course: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}
