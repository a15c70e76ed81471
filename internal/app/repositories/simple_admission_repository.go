package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/campusadmit/internal/app/models"
	"github.com/yigit/campusadmit/internal/pkg/apperrors"
	"github.com/yigit/campusadmit/internal/pkg/dberrors"
	"github.com/yigit/campusadmit/internal/pkg/logger"
)

var simpleAdmissionColumns = []string{
	"id", "full_name", "email", "phone", "course", "message", "status",
	"application_number", "created_at", "updated_at",
}

// SimpleAdmissionRepository handles enquiry admissions
type SimpleAdmissionRepository struct {
	db Querier
	sb squirrel.StatementBuilderType
}

// NewSimpleAdmissionRepository creates a new SimpleAdmissionRepository
func NewSimpleAdmissionRepository(db Querier) *SimpleAdmissionRepository {
	return &SimpleAdmissionRepository{
		db: db,
		sb: statementBuilder(),
	}
}

func scanSimpleAdmission(row pgx.Row) (*models.SimpleAdmission, error) {
	s := &models.SimpleAdmission{}
	err := row.Scan(&s.ID, &s.FullName, &s.Email, &s.Phone, &s.Course, &s.Message, &s.Status,
		&s.ApplicationNumber, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Create inserts an enquiry admission
func (r *SimpleAdmissionRepository) Create(ctx context.Context, s *models.SimpleAdmission) error {
	s.Email = strings.ToLower(strings.TrimSpace(s.Email))

	sql, args, err := r.sb.Insert("simple_admissions").
		Columns("full_name", "email", "phone", "course", "message", "status", "application_number").
		Values(s.FullName, s.Email, s.Phone, s.Course, s.Message, s.Status, s.ApplicationNumber).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create simple admission SQL")
		return fmt.Errorf("failed to build create simple admission query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "simple_admissions_application_number_key") {
			return apperrors.ErrApplicationNumberExists
		}
		logger.Error().Err(err).Msg("Error executing create simple admission query")
		return fmt.Errorf("error creating simple admission: %w", err)
	}
	return nil
}

// GetByID retrieves an enquiry admission by ID
func (r *SimpleAdmissionRepository) GetByID(ctx context.Context, id int64) (*models.SimpleAdmission, error) {
	sql, args, err := r.sb.Select(simpleAdmissionColumns...).From("simple_admissions").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get simple admission query: %w", err)
	}

	s, err := scanSimpleAdmission(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSimpleAdmissionNotFound
		}
		logger.Error().Err(err).Int64("simpleAdmissionID", id).Msg("Error scanning simple admission row")
		return nil, fmt.Errorf("error retrieving simple admission: %w", err)
	}
	return s, nil
}

func (r *SimpleAdmissionRepository) query(ctx context.Context, query squirrel.SelectBuilder) ([]*models.SimpleAdmission, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list simple admissions query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list simple admissions query")
		return nil, fmt.Errorf("error listing simple admissions: %w", err)
	}
	defer rows.Close()

	out := make([]*models.SimpleAdmission, 0)
	for rows.Next() {
		s, err := scanSimpleAdmission(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning simple admission: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// List returns every enquiry admission, newest first
func (r *SimpleAdmissionRepository) List(ctx context.Context) ([]*models.SimpleAdmission, error) {
	return r.query(ctx, r.sb.Select(simpleAdmissionColumns...).From("simple_admissions").
		OrderBy("created_at DESC", "id DESC"))
}

// ListRecent returns the newest enquiry admissions
func (r *SimpleAdmissionRepository) ListRecent(ctx context.Context, limit int) ([]*models.SimpleAdmission, error) {
	return r.query(ctx, r.sb.Select(simpleAdmissionColumns...).From("simple_admissions").
		OrderBy("created_at DESC", "id DESC").Limit(uint64(limit)))
}

// Count returns the number of enquiry admissions
func (r *SimpleAdmissionRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM simple_admissions`).Scan(&n); err != nil {
		logger.Error().Err(err).Msg("Error counting simple admissions")
		return 0, fmt.Errorf("error counting simple admissions: %w", err)
	}
	return n, nil
}

// UpdateStatus sets the status of an enquiry admission
func (r *SimpleAdmissionRepository) UpdateStatus(ctx context.Context, id int64, status models.AdmissionStatus) error {
	sql, args, err := r.sb.Update("simple_admissions").
		Set("status", status).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update simple admission query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("simpleAdmissionID", id).Msg("Error updating simple admission status")
		return fmt.Errorf("error updating simple admission: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSimpleAdmissionNotFound
	}
	return nil
}

// Delete removes an enquiry admission
func (r *SimpleAdmissionRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM simple_admissions WHERE id = $1`, id)
	if err != nil {
		logger.Error().Err(err).Int64("simpleAdmissionID", id).Msg("Error deleting simple admission")
		return fmt.Errorf("error deleting simple admission: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSimpleAdmissionNotFound
	}
	return nil
}
