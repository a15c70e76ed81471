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
	"github.com/yigit/campusadmit/internal/pkg/logger"
)

var contactColumns = []string{
	"id", "name", "email", "phone", "subject", "message", "status", "response",
	"responded_by", "responded_at", "created_at", "updated_at",
}

// ContactRepository handles contact request database operations
type ContactRepository struct {
	db Querier
	sb squirrel.StatementBuilderType
}

// NewContactRepository creates a new ContactRepository
func NewContactRepository(db Querier) *ContactRepository {
	return &ContactRepository{
		db: db,
		sb: statementBuilder(),
	}
}

func scanContact(row pgx.Row) (*models.Contact, error) {
	c := &models.Contact{}
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Subject, &c.Message, &c.Status, &c.Response,
		&c.RespondedBy, &c.RespondedAt, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Create inserts a contact request
func (r *ContactRepository) Create(ctx context.Context, c *models.Contact) error {
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))

	sql, args, err := r.sb.Insert("contacts").
		Columns("name", "email", "phone", "subject", "message", "status").
		Values(c.Name, c.Email, c.Phone, c.Subject, c.Message, c.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create contact SQL")
		return fmt.Errorf("failed to build create contact query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		logger.Error().Err(err).Msg("Error executing create contact query")
		return fmt.Errorf("error creating contact: %w", err)
	}
	return nil
}

// GetByID retrieves a contact request by ID
func (r *ContactRepository) GetByID(ctx context.Context, id int64) (*models.Contact, error) {
	sql, args, err := r.sb.Select(contactColumns...).From("contacts").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get contact query: %w", err)
	}

	c, err := scanContact(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrContactNotFound
		}
		logger.Error().Err(err).Int64("contactID", id).Msg("Error scanning contact row")
		return nil, fmt.Errorf("error retrieving contact: %w", err)
	}
	return c, nil
}

func (r *ContactRepository) query(ctx context.Context, query squirrel.SelectBuilder) ([]*models.Contact, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list contacts query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list contacts query")
		return nil, fmt.Errorf("error listing contacts: %w", err)
	}
	defer rows.Close()

	out := make([]*models.Contact, 0)
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning contact: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// List returns every contact request, newest first
func (r *ContactRepository) List(ctx context.Context) ([]*models.Contact, error) {
	return r.query(ctx, r.sb.Select(contactColumns...).From("contacts").OrderBy("created_at DESC", "id DESC"))
}

// ListRecent returns the newest contact requests
func (r *ContactRepository) ListRecent(ctx context.Context, limit int) ([]*models.Contact, error) {
	return r.query(ctx, r.sb.Select(contactColumns...).From("contacts").
		OrderBy("created_at DESC", "id DESC").Limit(uint64(limit)))
}

// Count returns the number of contact requests
func (r *ContactRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM contacts`).Scan(&n); err != nil {
		logger.Error().Err(err).Msg("Error counting contacts")
		return 0, fmt.Errorf("error counting contacts: %w", err)
	}
	return n, nil
}

// Update writes the handling fields (status, response, responder)
func (r *ContactRepository) Update(ctx context.Context, c *models.Contact) error {
	c.UpdatedAt = time.Now()
	sql, args, err := r.sb.Update("contacts").
		SetMap(map[string]interface{}{
			"status":       c.Status,
			"response":     c.Response,
			"responded_by": c.RespondedBy,
			"responded_at": c.RespondedAt,
			"updated_at":   c.UpdatedAt,
		}).
		Where(squirrel.Eq{"id": c.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update contact query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("contactID", c.ID).Msg("Error executing update contact query")
		return fmt.Errorf("error updating contact: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrContactNotFound
	}
	return nil
}

// Delete removes a contact request
func (r *ContactRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		logger.Error().Err(err).Int64("contactID", id).Msg("Error deleting contact")
		return fmt.Errorf("error deleting contact: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrContactNotFound
	}
	return nil
}
