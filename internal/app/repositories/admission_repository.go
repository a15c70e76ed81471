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

var admissionColumns = []string{
	"id", "user_id", "course_id",
	"full_name", "date_of_birth", "gender", "address", "city", "state", "pincode",
	"tenth_marks", "twelfth_marks", "stream",
	"status", "application_number", "submitted_at", "created_at", "updated_at",
}

// AdmissionRepository handles admission database operations
type AdmissionRepository struct {
	db Querier
	sb squirrel.StatementBuilderType
}

// NewAdmissionRepository creates a new AdmissionRepository
func NewAdmissionRepository(db Querier) *AdmissionRepository {
	return &AdmissionRepository{
		db: db,
		sb: statementBuilder(),
	}
}

func scanAdmission(row pgx.Row) (*models.Admission, error) {
	a := &models.Admission{}
	p, ac := &a.PersonalInfo, &a.AcademicInfo
	err := row.Scan(
		&a.ID, &a.UserID, &a.CourseID,
		&p.FullName, &p.DateOfBirth, &p.Gender, &p.Address, &p.City, &p.State, &p.Pincode,
		&ac.TenthMarks, &ac.TwelfthMarks, &ac.Stream,
		&a.Status, &a.ApplicationNumber, &a.SubmittedAt, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Create inserts an admission. Unique violations surface as Conflict errors.
func (r *AdmissionRepository) Create(ctx context.Context, a *models.Admission) error {
	p, ac := a.PersonalInfo, a.AcademicInfo
	sql, args, err := r.sb.Insert("admissions").
		Columns("user_id", "course_id",
			"full_name", "date_of_birth", "gender", "address", "city", "state", "pincode",
			"tenth_marks", "twelfth_marks", "stream", "status", "application_number").
		Values(a.UserID, a.CourseID,
			p.FullName, p.DateOfBirth, p.Gender, p.Address, p.City, p.State, p.Pincode,
			ac.TenthMarks, ac.TwelfthMarks, ac.Stream, a.Status, a.ApplicationNumber).
		Suffix("RETURNING id, submitted_at, created_at, updated_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create admission SQL")
		return fmt.Errorf("failed to build create admission query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&a.ID, &a.SubmittedAt, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		switch {
		case dberrors.IsDuplicateConstraintError(err, "admissions_user_course_key"):
			return apperrors.ErrDuplicateApplication
		case dberrors.IsDuplicateConstraintError(err, "admissions_application_number_key"):
			return apperrors.ErrApplicationNumberExists
		case dberrors.IsForeignKeyError(err):
			return apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Int64("userID", a.UserID).Int64("courseID", a.CourseID).Msg("Error executing create admission query")
		return fmt.Errorf("error creating admission: %w", err)
	}
	return nil
}

// admissionByID selects one admission. With lock set the row is held
// FOR UPDATE until the surrounding transaction ends.
func admissionByID(sb squirrel.StatementBuilderType, id int64, lock bool) squirrel.SelectBuilder {
	query := sb.Select(admissionColumns...).From("admissions").Where(squirrel.Eq{"id": id})
	if lock {
		query = query.Suffix("FOR UPDATE")
	}
	return query
}

// GetByID retrieves an admission by ID
func (r *AdmissionRepository) GetByID(ctx context.Context, id int64) (*models.Admission, error) {
	return r.getAdmission(ctx, admissionByID(r.sb, id, false), id)
}

// GetByIDForUpdate retrieves an admission and locks its row. Concurrent
// status changes of the same admission queue behind the lock and then see
// the committed status. Only meaningful inside a transaction.
func (r *AdmissionRepository) GetByIDForUpdate(ctx context.Context, id int64) (*models.Admission, error) {
	return r.getAdmission(ctx, admissionByID(r.sb, id, true), id)
}

func (r *AdmissionRepository) getAdmission(ctx context.Context, query squirrel.SelectBuilder, id int64) (*models.Admission, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get admission SQL")
		return nil, fmt.Errorf("failed to build get admission query: %w", err)
	}

	a, err := scanAdmission(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAdmissionNotFound
		}
		logger.Error().Err(err).Int64("admissionID", id).Msg("Error scanning admission row")
		return nil, fmt.Errorf("error retrieving admission: %w", err)
	}
	return a, nil
}

// ExistsForUserCourse reports whether the user already applied to the course
func (r *AdmissionRepository) ExistsForUserCourse(ctx context.Context, userID, courseID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM admissions WHERE user_id = $1 AND course_id = $2)`,
		userID, courseID).Scan(&exists)
	if err != nil {
		logger.Error().Err(err).Msg("Error checking duplicate admission")
		return false, fmt.Errorf("error checking admission: %w", err)
	}
	return exists, nil
}

func (r *AdmissionRepository) queryAdmissions(ctx context.Context, query squirrel.SelectBuilder) ([]*models.Admission, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list admissions SQL")
		return nil, fmt.Errorf("failed to build list admissions query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list admissions query")
		return nil, fmt.Errorf("error listing admissions: %w", err)
	}
	defer rows.Close()

	admissions := make([]*models.Admission, 0)
	for rows.Next() {
		a, err := scanAdmission(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning admission row")
			return nil, fmt.Errorf("error scanning admission: %w", err)
		}
		admissions = append(admissions, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating admissions: %w", err)
	}
	return admissions, nil
}

// ListByUser returns a user's admissions, newest first
func (r *AdmissionRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Admission, error) {
	return r.queryAdmissions(ctx, r.sb.Select(admissionColumns...).From("admissions").
		Where(squirrel.Eq{"user_id": userID}).OrderBy("submitted_at DESC", "id DESC"))
}

// ListAll returns every admission, newest first
func (r *AdmissionRepository) ListAll(ctx context.Context) ([]*models.Admission, error) {
	return r.queryAdmissions(ctx, r.sb.Select(admissionColumns...).From("admissions").
		OrderBy("submitted_at DESC", "id DESC"))
}

// UpdateStatus sets the review status of an admission
func (r *AdmissionRepository) UpdateStatus(ctx context.Context, id int64, status models.AdmissionStatus) error {
	sql, args, err := r.sb.Update("admissions").
		Set("status", status).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update admission status SQL")
		return fmt.Errorf("failed to build update admission status query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("admissionID", id).Msg("Error executing update admission status query")
		return fmt.Errorf("error updating admission status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAdmissionNotFound
	}
	return nil
}

// Delete removes an admission
func (r *AdmissionRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("admissions").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete admission SQL")
		return fmt.Errorf("failed to build delete admission query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("admissionID", id).Msg("Error executing delete admission query")
		return fmt.Errorf("error deleting admission: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAdmissionNotFound
	}
	return nil
}

// DeleteByCourse removes every admission of a course
func (r *AdmissionRepository) DeleteByCourse(ctx context.Context, courseID int64) (int64, error) {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM admissions WHERE course_id = $1`, courseID)
	if err != nil {
		logger.Error().Err(err).Int64("courseID", courseID).Msg("Error deleting course admissions")
		return 0, fmt.Errorf("error deleting course admissions: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}

// CountHoldingByCourse counts pending and approved admissions for a course
func (r *AdmissionRepository) CountHoldingByCourse(ctx context.Context, courseID int64) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(*)").From("admissions").
		Where(squirrel.Eq{
			"course_id": courseID,
			"status":    []models.AdmissionStatus{models.AdmissionPending, models.AdmissionApproved},
		}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count admissions query: %w", err)
	}

	var n int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		logger.Error().Err(err).Int64("courseID", courseID).Msg("Error counting course admissions")
		return 0, fmt.Errorf("error counting admissions: %w", err)
	}
	return n, nil
}

// CountByStatus returns the number of admissions per status
func (r *AdmissionRepository) CountByStatus(ctx context.Context) (map[models.AdmissionStatus]int64, error) {
	rows, err := r.db.Query(ctx, `SELECT status, COUNT(*) FROM admissions GROUP BY status`)
	if err != nil {
		logger.Error().Err(err).Msg("Error counting admissions by status")
		return nil, fmt.Errorf("error counting admissions: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.AdmissionStatus]int64, len(models.AdmissionStatuses))
	for _, s := range models.AdmissionStatuses {
		counts[s] = 0
	}
	for rows.Next() {
		var (
			status models.AdmissionStatus
			n      int64
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("error scanning admission count: %w", err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}
